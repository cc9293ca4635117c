package flint

import "fmt"

// IdentifierLocation classifies a resolved name relative to the current
// scope (spec.md §4.2).
type IdentifierLocation uint8

const (
	LocationGlobal IdentifierLocation = iota
	LocationParam
	LocationLocal
)

func (l IdentifierLocation) String() string {
	switch l {
	case LocationGlobal:
		return "global"
	case LocationParam:
		return "param"
	default:
		return "local"
	}
}

// globalOwner is the sentinel owner of scope 0, the only scope that may
// exist before the program body is entered.
var globalOwner = &Identifier{Name: "global", Type: TypeProgram}

// scope is one lexical frame: a flat mapping from name to its Identifier,
// plus the identifier (or the global sentinel) that opened it.
type scope struct {
	owner   *Identifier
	entries map[string]*Identifier
}

func newScope(owner *Identifier) *scope {
	return &scope{owner: owner, entries: make(map[string]*Identifier)}
}

// SymbolTable is a stack of lexical scopes, index 0 being global (spec.md
// §4.2). It is mutated only by the Parser; see spec.md §5.
type SymbolTable struct {
	scopes []*scope
}

// NewSymbolTable creates a symbol table with just the global scope open.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []*scope{newScope(globalOwner)}}
}

// PushScope opens a new scope owned by owner (a procedure/program
// Identifier). Invariant (I2): globals may be declared only while at most
// one non-global scope is open (before the program scope is pushed, or in
// the program body).
func (t *SymbolTable) PushScope(owner *Identifier) {
	t.scopes = append(t.scopes, newScope(owner))
}

// PopScope closes the innermost scope. It must never be called against the
// global scope.
func (t *SymbolTable) PopScope() {
	if len(t.scopes) <= 1 {
		panic("flint: cannot pop the global scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth returns the number of open scopes, global scope included.
func (t *SymbolTable) Depth() int {
	return len(t.scopes)
}

// Add installs id in the current scope, or in the global scope when
// isGlobal is set. It fails with a name-already-declared error if the
// chosen scope already holds that name, and fails if isGlobal is requested
// from anywhere deeper than the program body (spec.md §4.2).
func (t *SymbolTable) Add(id *Identifier, isGlobal bool) error {
	if isGlobal && len(t.scopes) > 2 {
		return fmt.Errorf("%s: globals may only be declared in the program body", id.Name)
	}

	target := t.current()
	if isGlobal {
		target = t.scopes[0]
	}

	if _, exists := target.entries[id.Name]; exists {
		return fmt.Errorf("%s: name already declared at this scope", id.Name)
	}

	target.entries[id.Name] = id
	return nil
}

// Find resolves name using lexical shadowing over exactly two levels: the
// current scope, then the global scope. Intermediate enclosing scopes are
// never searched (spec.md §4.2).
func (t *SymbolTable) Find(name string) (*Identifier, error) {
	if id, ok := t.current().entries[name]; ok {
		return id, nil
	}

	if id, ok := t.scopes[0].entries[name]; ok {
		return id, nil
	}

	return nil, fmt.Errorf("%s: not declared in this scope", name)
}

// Location classifies a resolved name as global, a parameter of the current
// scope's owner, or local.
func (t *SymbolTable) Location(name string) IdentifierLocation {
	cur := t.current()
	if _, ok := cur.entries[name]; !ok {
		return LocationGlobal
	}

	for _, p := range cur.owner.Params {
		if p.ID.Name == name {
			return LocationParam
		}
	}

	if len(t.scopes) == 1 {
		return LocationGlobal
	}

	return LocationLocal
}

// ParamDirection returns the binding direction of name, which must resolve
// to LocationParam in the current scope.
func (t *SymbolTable) ParamDirection(name string) (Direction, bool) {
	cur := t.current()
	for _, p := range cur.owner.Params {
		if p.ID.Name == name {
			return p.Direction, true
		}
	}

	return DirectionIn, false
}

// Owner returns the Identifier that opened the current scope (or the global
// sentinel before any scope has been pushed).
func (t *SymbolTable) Owner() *Identifier {
	return t.current().owner
}

func (t *SymbolTable) current() *scope {
	return t.scopes[len(t.scopes)-1]
}
