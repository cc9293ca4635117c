package flint

import (
	"fmt"
	"strconv"
)

// Parser is the single-pass LL(2) recursive-descent front end: it
// recognizes the grammar, mutates the SymbolTable, checks types, and drives
// the Emitter as it goes. There is no intermediate AST — each production
// either succeeds and leaves behind emitted target text and table entries,
// or fails and unwinds to the nearest ';' (spec.md §4.3, §5, §9).
//
// Parser owns a Lexer, which owns a Source; composition all the way down,
// no interfaces needed since there is exactly one implementation of each.
type Parser struct {
	lex   *Lexer
	diag  *Diagnostics
	table *SymbolTable
	em    *Emitter

	current Token
	future  Token
}

// NewParser creates a Parser reading tokens from lex, recording diagnostics
// to diag, resolving/declaring names in table, and emitting target text
// through em. It primes the two-token lookahead immediately.
func NewParser(lex *Lexer, diag *Diagnostics, table *SymbolTable, em *Emitter) *Parser {
	p := &Parser{lex: lex, diag: diag, table: table, em: em}
	p.current = lex.NextToken()
	p.future = lex.NextToken()
	return p
}

// Parse recognizes a complete program. Errors are already recorded in the
// Parser's Diagnostics by the time this returns; the caller should check
// diag.HasErrors() rather than inspect a return value.
func (p *Parser) Parse() {
	p.parseProgram()
}

// declKind distinguishes the three places a variable_declaration can be
// used, each with its own memory allocation strategy.
type declKind int

const (
	declLocal declKind = iota
	declGlobal
	declParam
)

// --- token plumbing -------------------------------------------------------

func (p *Parser) advance() Token {
	cur := p.current
	p.current = p.future
	p.future = p.lex.NextToken()
	return cur
}

func (p *Parser) atKeyword(keywords ...string) bool {
	for _, k := range keywords {
		if p.current.IsKeyword(k) {
			return true
		}
	}
	return false
}

// fail records a CompileError of the given kind at line and returns the
// resync sentinel, so every call site can simply `return err` and let the
// nearest statement/declaration loop perform recovery (spec.md §9,
// "exceptions-for-control-flow ... expressed as a result type").
func (p *Parser) fail(kind ErrorKind, line int, format string, args ...interface{}) error {
	p.diag.Error(kind, line, fmt.Sprintf(format, args...))
	return errResync
}

func (p *Parser) expect(kind TokenKind, what string) (Token, error) {
	if p.current.Kind != kind {
		return Token{}, p.fail(ErrorSyntax, p.current.Line, "expected %s", what)
	}
	return p.advance(), nil
}

func (p *Parser) expectIdentifier() (Token, error) {
	return p.expect(TokenIdentifier, "an identifier")
}

func (p *Parser) expectKeyword(value string) (Token, error) {
	if !p.current.IsKeyword(value) {
		return Token{}, p.fail(ErrorSyntax, p.current.Line, "expected '%s'", value)
	}
	return p.advance(), nil
}

func (p *Parser) expectSymbol(value string) (Token, error) {
	if !p.current.IsSymbol(value) {
		return Token{}, p.fail(ErrorSyntax, p.current.Line, "expected '%s'", value)
	}
	return p.advance(), nil
}

// resync advances past tokens until it consumes a ';' or reaches end of
// file, abandoning whatever statement or declaration was in progress.
func (p *Parser) resync() {
	for p.current.Kind != TokenEOF {
		if p.current.IsSymbol(";") {
			p.advance()
			return
		}
		p.advance()
	}
}

// --- program / declarations ------------------------------------------------

func (p *Parser) parseProgram() error {
	if _, err := p.expectKeyword("program"); err != nil {
		return err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return err
	}
	if _, err := p.expectKeyword("is"); err != nil {
		return err
	}

	labelID := p.em.MintLabel()
	id := &Identifier{Name: nameTok.Value, Type: TypeProgram, MemPtr: labelID}
	if err := p.table.Add(id, true); err != nil {
		return p.fail(ErrorName, nameTok.Line, "%s", err.Error())
	}

	p.table.PushScope(id)
	p.em.ResetLocalPtr()
	p.em.ResetParamPtr()
	p.em.ProgramEntry(nameTok.Value, labelID)

	p.parseDeclarationList()

	if _, err := p.expectKeyword("begin"); err != nil {
		return err
	}

	p.em.BodyBegin(nameTok.Value, labelID, p.em.LocalFrameSize())
	p.parseStatementList("end")

	if _, err := p.expectKeyword("end"); err != nil {
		return err
	}
	if _, err := p.expectKeyword("program"); err != nil {
		return err
	}

	p.em.ProcedureEnd()
	p.em.EndBody()
	p.table.PopScope()

	if p.current.Kind != TokenEOF {
		p.diag.Warning(p.current.Line, "trailing tokens after end program")
	}

	return nil
}

func (p *Parser) parseDeclarationList() {
	for !p.atKeyword("begin") && p.current.Kind != TokenEOF {
		if err := p.parseDeclaration(); err != nil {
			p.resync()
			continue
		}
		if _, err := p.expectSymbol(";"); err != nil {
			p.resync()
		}
	}
}

func (p *Parser) parseDeclaration() error {
	isGlobal := false
	if p.current.IsKeyword("global") {
		p.advance()
		isGlobal = true
	}

	if p.current.IsKeyword("procedure") {
		return p.parseProcedureDeclaration(isGlobal)
	}

	kind := declLocal
	if isGlobal {
		kind = declGlobal
	}
	_, err := p.parseVariableDeclaration(kind)
	return err
}

func (p *Parser) parseVariableDeclaration(kind declKind) (*Identifier, error) {
	typ, err := p.parseTypeMark()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	var size *int
	if p.current.IsSymbol("[") {
		p.advance()
		szTok, err := p.expect(TokenInteger, "an array size")
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(szTok.Value)
		if convErr != nil || n <= 0 {
			return nil, p.fail(ErrorSyntax, szTok.Line, "invalid array size")
		}
		size = &n
		if _, err := p.expectSymbol("]"); err != nil {
			return nil, err
		}
	}

	id := &Identifier{Name: nameTok.Value, Type: typ, Size: size}

	switch kind {
	case declGlobal:
		id.MemPtr = p.em.AllocGlobal(id.ElementCount())
	case declParam:
		id.MemPtr = p.em.AllocParam()
	default:
		id.MemPtr = p.em.AllocLocal(id.ElementCount())
	}

	if err := p.table.Add(id, kind == declGlobal); err != nil {
		return nil, p.fail(ErrorName, nameTok.Line, "%s", err.Error())
	}

	return id, nil
}

func (p *Parser) parseProcedureDeclaration(isGlobal bool) error {
	p.advance() // 'procedure'

	nameTok, err := p.expectIdentifier()
	if err != nil {
		return err
	}

	labelID := p.em.MintLabel()
	id := &Identifier{Name: nameTok.Value, Type: TypeProcedure, MemPtr: labelID}
	if err := p.table.Add(id, isGlobal); err != nil {
		return p.fail(ErrorName, nameTok.Line, "%s", err.Error())
	}

	p.table.PushScope(id)
	p.em.ResetParamPtr()
	p.em.ResetLocalPtr()

	if _, err := p.expectSymbol("("); err != nil {
		p.table.PopScope()
		return err
	}

	var params []Parameter
	if !p.current.IsSymbol(")") {
		params, err = p.parseParameterList()
		if err != nil {
			p.table.PopScope()
			return err
		}
	}
	id.Params = params

	if _, err := p.expectSymbol(")"); err != nil {
		p.table.PopScope()
		return err
	}

	p.em.ProcedureHeader(nameTok.Value, labelID)

	p.parseDeclarationList()

	if _, err := p.expectKeyword("begin"); err != nil {
		p.table.PopScope()
		return err
	}

	p.em.BodyBegin(nameTok.Value, labelID, p.em.LocalFrameSize())
	p.parseStatementList("end")

	if _, err := p.expectKeyword("end"); err != nil {
		p.table.PopScope()
		return err
	}
	if _, err := p.expectKeyword("procedure"); err != nil {
		p.table.PopScope()
		return err
	}

	p.em.ProcedureEnd()
	p.em.EndBody()
	p.em.EndHeader()
	p.table.PopScope()

	return nil
}

func (p *Parser) parseParameterList() ([]Parameter, error) {
	var params []Parameter

	for {
		id, err := p.parseVariableDeclaration(declParam)
		if err != nil {
			return nil, err
		}

		var direction Direction
		switch {
		case p.current.IsKeyword("in"):
			p.advance()
			direction = DirectionIn
		case p.current.IsKeyword("out"):
			p.advance()
			direction = DirectionOut
		default:
			return nil, p.fail(ErrorSyntax, p.current.Line, "expected 'in' or 'out'")
		}

		params = append(params, Parameter{ID: id, Direction: direction})

		if p.current.IsSymbol(",") {
			p.advance()
			continue
		}
		break
	}

	return params, nil
}

func (p *Parser) parseTypeMark() (Type, error) {
	if p.current.Kind == TokenKeyword {
		if typ, ok := typeKeywords[p.current.Value]; ok {
			p.advance()
			return typ, nil
		}
	}
	return 0, p.fail(ErrorSyntax, p.current.Line, "expected a type keyword")
}

// --- statements -------------------------------------------------------------

func (p *Parser) parseStatementList(stop ...string) {
	for !p.atKeyword(stop...) && p.current.Kind != TokenEOF {
		if err := p.parseStatement(); err != nil {
			p.resync()
			continue
		}
		if _, err := p.expectSymbol(";"); err != nil {
			p.resync()
		}
	}
}

func (p *Parser) parseStatement() error {
	switch {
	case p.current.IsKeyword("if"):
		return p.parseIfStatement()
	case p.current.IsKeyword("for"):
		return p.parseForStatement()
	case p.current.IsKeyword("return"):
		p.advance()
		p.em.ProcedureEnd()
		return nil
	case p.current.Kind == TokenIdentifier:
		if p.future.IsSymbol("(") {
			return p.parseProcedureCallStatement()
		}
		return p.parseAssignmentStatement()
	default:
		return p.fail(ErrorSyntax, p.current.Line, "expected a statement")
	}
}

// parseIfStatement branches on the condition register's runtime value
// without requiring its static type to be bool — the original parser's
// _parse_if_statement performs no type check on the condition either, so an
// `integer` condition is accepted the same as a relation's bool result (see
// DESIGN.md).
func (p *Parser) parseIfStatement() error {
	p.advance() // 'if'
	if _, err := p.expectSymbol("("); err != nil {
		return err
	}
	condReg, _, err := p.parseExpression()
	if err != nil {
		return err
	}
	if _, err := p.expectSymbol(")"); err != nil {
		return err
	}
	if _, err := p.expectKeyword("then"); err != nil {
		return err
	}

	labelID := p.em.MintLabel()
	p.em.IfBranch(condReg, labelID)
	p.parseStatementList("else", "end")
	p.em.IfThenEnd(labelID)

	if p.current.IsKeyword("else") {
		p.advance()
		p.parseStatementList("end")
	}
	p.em.IfEnd(labelID)

	if _, err := p.expectKeyword("end"); err != nil {
		return err
	}
	if _, err := p.expectKeyword("if"); err != nil {
		return err
	}
	return nil
}

// parseForStatement, like parseIfStatement, does not require the loop
// condition's static type to be bool (see DESIGN.md).
func (p *Parser) parseForStatement() error {
	p.advance() // 'for'
	if _, err := p.expectSymbol("("); err != nil {
		return err
	}
	if err := p.parseAssignmentStatement(); err != nil {
		return err
	}
	if _, err := p.expectSymbol(";"); err != nil {
		return err
	}

	labelID := p.em.MintLabel()
	p.em.LoopHeader(labelID)

	condReg, _, err := p.parseExpression()
	if err != nil {
		return err
	}
	p.em.LoopBranch(condReg, labelID)

	if _, err := p.expectSymbol(")"); err != nil {
		return err
	}

	p.parseStatementList("end")
	p.em.LoopEnd(labelID)

	if _, err := p.expectKeyword("end"); err != nil {
		return err
	}
	if _, err := p.expectKeyword("for"); err != nil {
		return err
	}
	return nil
}

func (p *Parser) parseAssignmentStatement() error {
	destID, location, idxReg, destTyp, nameTok, err := p.parseDestination()
	if err != nil {
		return err
	}
	if _, err := p.expectSymbol(":="); err != nil {
		return err
	}

	addrReg := p.em.NameAddress(destID, location, idxReg)

	exprReg, exprTyp, err := p.parseExpression()
	if err != nil {
		return err
	}
	if exprTyp != destTyp {
		return p.fail(ErrorType, nameTok.Line, "cannot assign %s to %s", exprTyp, destTyp)
	}

	p.em.Store(addrReg, exprReg)
	return nil
}

func (p *Parser) parseProcedureCallStatement() error {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return err
	}

	id, ferr := p.table.Find(nameTok.Value)
	if ferr != nil {
		return p.fail(ErrorName, nameTok.Line, "%s", ferr.Error())
	}
	if id.Type != TypeProcedure {
		return p.fail(ErrorType, nameTok.Line, "%s is not a procedure", id.Name)
	}

	if _, err := p.expectSymbol("("); err != nil {
		return err
	}

	type argument struct {
		reg     int
		isOut   bool
		addrReg int
	}
	var args []argument

	if !p.current.IsSymbol(")") {
		for {
			idx := len(args)
			var want *Parameter
			if idx < len(id.Params) {
				want = &id.Params[idx]
			}

			if want != nil && want.Direction == DirectionOut {
				destID, loc, destIdxReg, destTyp, dnameTok, derr := p.parseDestination()
				if derr != nil {
					return derr
				}
				if destTyp != want.ID.Type {
					return p.fail(ErrorType, dnameTok.Line, "argument %d type mismatch for out parameter %s", idx+1, want.ID.Name)
				}
				addrReg := p.em.NameAddress(destID, loc, destIdxReg)
				valReg := p.em.LoadAt(addrReg)
				args = append(args, argument{reg: valReg, isOut: true, addrReg: addrReg})
			} else {
				reg, typ, aerr := p.parseExpression()
				if aerr != nil {
					return aerr
				}
				if want != nil && typ != want.ID.Type {
					return p.fail(ErrorType, p.current.Line, "argument %d type mismatch for parameter %s", idx+1, want.ID.Name)
				}
				args = append(args, argument{reg: reg, isOut: false, addrReg: -1})
			}

			if p.current.IsSymbol(",") {
				p.advance()
				continue
			}
			break
		}
	}

	if _, err := p.expectSymbol(")"); err != nil {
		return err
	}

	if len(args) != len(id.Params) {
		return p.fail(ErrorRuntime, nameTok.Line, "%s expects %d argument(s), got %d", id.Name, len(id.Params), len(args))
	}

	for i := len(args) - 1; i >= 0; i-- {
		p.em.PushArgument(args[i].reg)
	}

	callID := p.em.MintCallID()
	p.em.CallBegin()
	p.em.CallInvoke(id.Name, id.MemPtr, callID)
	p.em.CallRestoreFP()
	for _, a := range args {
		p.em.CallPopParam(a.isOut, a.addrReg)
	}
	p.em.CallEnd()

	return nil
}

// parseDestination parses a name usable as an assignment target or an
// `out` call argument: it must be a declared variable, must not be an
// `in`-direction parameter, and (if an array) must carry an index.
func (p *Parser) parseDestination() (*Identifier, IdentifierLocation, int, Type, Token, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, 0, 0, 0, nameTok, err
	}

	id, ferr := p.table.Find(nameTok.Value)
	if ferr != nil {
		return nil, 0, 0, 0, nameTok, p.fail(ErrorName, nameTok.Line, "%s", ferr.Error())
	}
	if !id.Type.IsValue() {
		return nil, 0, 0, 0, nameTok, p.fail(ErrorType, nameTok.Line, "%s is not a variable", id.Name)
	}

	location := p.table.Location(nameTok.Value)
	if location == LocationParam {
		if dir, ok := p.table.ParamDirection(nameTok.Value); ok && dir == DirectionIn {
			return nil, 0, 0, 0, nameTok, p.fail(ErrorType, nameTok.Line, "expected 'out' param, encountered 'in' param")
		}
	}

	idxReg, err := p.parseOptionalIndex(id, nameTok)
	if err != nil {
		return nil, 0, 0, 0, nameTok, err
	}

	return id, location, idxReg, id.Type, nameTok, nil
}

// parseNameExpr parses a name used for reading inside an expression: it
// must not be an `out`-direction parameter.
func (p *Parser) parseNameExpr() (int, Type, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return 0, 0, err
	}

	id, ferr := p.table.Find(nameTok.Value)
	if ferr != nil {
		return 0, 0, p.fail(ErrorName, nameTok.Line, "%s", ferr.Error())
	}
	if !id.Type.IsValue() {
		return 0, 0, p.fail(ErrorType, nameTok.Line, "%s is not a variable", id.Name)
	}

	location := p.table.Location(nameTok.Value)
	if location == LocationParam {
		if dir, ok := p.table.ParamDirection(nameTok.Value); ok && dir == DirectionOut {
			return 0, 0, p.fail(ErrorType, nameTok.Line, "expected 'in' param, encountered 'out' param")
		}
	}

	idxReg, err := p.parseOptionalIndex(id, nameTok)
	if err != nil {
		return 0, 0, err
	}

	return p.em.LoadName(id, location, idxReg), id.Type, nil
}

// parseOptionalIndex parses a '[' expression ']' suffix when present,
// requiring it for arrays and forbidding it otherwise (spec.md §4.3: "array
// variable used without […] is a runtime (static) error").
func (p *Parser) parseOptionalIndex(id *Identifier, nameTok Token) (int, error) {
	if p.current.IsSymbol("[") {
		if !id.IsArray() {
			return 0, p.fail(ErrorType, nameTok.Line, "%s is not an array", id.Name)
		}
		p.advance()
		idxReg, idxTyp, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if idxTyp != TypeInteger {
			return 0, p.fail(ErrorType, nameTok.Line, "array index must be integer, got %s", idxTyp)
		}
		if _, err := p.expectSymbol("]"); err != nil {
			return 0, err
		}
		return idxReg, nil
	}

	if id.IsArray() {
		return 0, p.fail(ErrorRuntime, nameTok.Line, "array requires index")
	}
	return 0, nil
}

// --- expressions -------------------------------------------------------------

// parseExpression implements ['not'] relation {('&'|'|') relation}. Unlike
// some snapshots of the system this is modeled on, `not` always takes
// effect on its immediate operand, even when no '&'/'|' follows — see
// DESIGN.md for why that diverges from the source being imitated.
func (p *Parser) parseExpression() (int, Type, error) {
	negate := false
	if p.current.IsKeyword("not") {
		p.advance()
		negate = true
	}

	reg, typ, err := p.parseRelation()
	if err != nil {
		return 0, 0, err
	}

	if negate {
		if !typ.IsLogical() {
			return 0, 0, p.fail(ErrorType, p.current.Line, "'not' requires an integer or bool operand, got %s", typ)
		}
		p.em.Negate(reg)
	}

	for p.current.IsSymbol("&") || p.current.IsSymbol("|") {
		opTok := p.advance()
		rReg, rTyp, err := p.parseRelation()
		if err != nil {
			return 0, 0, err
		}
		if !typ.IsLogical() || !rTyp.IsLogical() {
			return 0, 0, p.fail(ErrorType, opTok.Line, "operands of '%s' must be bool or integer", opTok.Value)
		}
		reg = p.em.Operation(reg, typ, rReg, rTyp, opTok.Value)
	}

	return reg, typ, nil
}

// parseRelation implements arith [relop arith]. The result's static type is
// the left operand's type, unchanged by the comparison — Flint has no
// distinct comparison type (spec.md §4.3; the original's _parse_relation
// never reassigns its `type` local after the comparison either).
func (p *Parser) parseRelation() (int, Type, error) {
	reg, typ, err := p.parseArith()
	if err != nil {
		return 0, 0, err
	}

	if isRelationalOp(p.current) {
		opTok := p.advance()
		rReg, rTyp, err := p.parseArith()
		if err != nil {
			return 0, 0, err
		}
		if !typ.IsLogical() || !rTyp.IsLogical() {
			return 0, 0, p.fail(ErrorType, opTok.Line, "operands of '%s' must be bool or integer", opTok.Value)
		}
		reg = p.em.Operation(reg, typ, rReg, rTyp, opTok.Value)
	}

	return reg, typ, nil
}

func isRelationalOp(t Token) bool {
	if t.Kind != TokenSymbol {
		return false
	}
	switch t.Value {
	case "<", "<=", ">", ">=", "==", "!=":
		return true
	default:
		return false
	}
}

// parseArith implements term {('+'|'-') term}. The result's static type is
// the left operand's type throughout the chain — spec.md §4.3 gives +/-/*//
// the same "result is the left operand's type" rule as relations, and the
// original's _parse_arith_op captures `type` once and never reassigns it,
// even when a later operand is float. The emitted Operation still widens
// through the float scratch registers when either operand is float; that's
// an emission detail, not a change to the expression's static type.
func (p *Parser) parseArith() (int, Type, error) {
	reg, typ, err := p.parseTerm()
	if err != nil {
		return 0, 0, err
	}

	for p.current.IsSymbol("+") || p.current.IsSymbol("-") {
		opTok := p.advance()
		rReg, rTyp, err := p.parseTerm()
		if err != nil {
			return 0, 0, err
		}
		if !typ.IsNumeric() || !rTyp.IsNumeric() {
			return 0, 0, p.fail(ErrorType, opTok.Line, "operands of '%s' must be numeric", opTok.Value)
		}
		reg = p.em.Operation(reg, typ, rReg, rTyp, opTok.Value)
	}

	return reg, typ, nil
}

// parseTerm implements factor {('*'|'/') factor}, with the same
// left-operand-type rule as parseArith (spec.md §4.3).
func (p *Parser) parseTerm() (int, Type, error) {
	reg, typ, err := p.parseFactor()
	if err != nil {
		return 0, 0, err
	}

	for p.current.IsSymbol("*") || p.current.IsSymbol("/") {
		opTok := p.advance()
		rReg, rTyp, err := p.parseFactor()
		if err != nil {
			return 0, 0, err
		}
		if !typ.IsNumeric() || !rTyp.IsNumeric() {
			return 0, 0, p.fail(ErrorType, opTok.Line, "operands of '%s' must be numeric", opTok.Value)
		}
		reg = p.em.Operation(reg, typ, rReg, rTyp, opTok.Value)
	}

	return reg, typ, nil
}

func (p *Parser) parseFactor() (int, Type, error) {
	switch {
	case p.current.IsSymbol("("):
		p.advance()
		reg, typ, err := p.parseExpression()
		if err != nil {
			return 0, 0, err
		}
		if _, err := p.expectSymbol(")"); err != nil {
			return 0, 0, err
		}
		return reg, typ, nil

	case p.current.IsSymbol("-"):
		p.advance()
		return p.parseSignedFactor()

	case p.current.Kind == TokenInteger:
		tok := p.advance()
		return p.em.IntegerLiteral(tok.Value, false), TypeInteger, nil

	case p.current.Kind == TokenFloat:
		tok := p.advance()
		return p.em.FloatLiteral(tok.Value, false), TypeFloat, nil

	case p.current.Kind == TokenString:
		tok := p.advance()
		return p.em.StringLiteral(tok.Value), TypeString, nil

	case p.current.IsKeyword("true"):
		p.advance()
		return p.em.BoolLiteral(true), TypeBool, nil

	case p.current.IsKeyword("false"):
		p.advance()
		return p.em.BoolLiteral(false), TypeBool, nil

	case p.current.Kind == TokenIdentifier:
		return p.parseNameExpr()

	default:
		return 0, 0, p.fail(ErrorSyntax, p.current.Line, "expected an expression")
	}
}

// parseSignedFactor handles a unary '-' already consumed by the caller. A
// literal operand folds the sign directly into the literal; anything else
// is negated via a 0-minus-operand subtraction (spec.md §4.4's operation()
// covers both integer and float operands uniformly).
func (p *Parser) parseSignedFactor() (int, Type, error) {
	switch {
	case p.current.Kind == TokenInteger:
		tok := p.advance()
		return p.em.IntegerLiteral(tok.Value, true), TypeInteger, nil

	case p.current.Kind == TokenFloat:
		tok := p.advance()
		return p.em.FloatLiteral(tok.Value, true), TypeFloat, nil

	default:
		reg, typ, err := p.parseFactor()
		if err != nil {
			return 0, 0, err
		}
		if !typ.IsNumeric() {
			return 0, 0, p.fail(ErrorType, p.current.Line, "unary '-' requires a numeric operand, got %s", typ)
		}

		var zeroReg int
		if typ == TypeFloat {
			zeroReg = p.em.FloatLiteral("0.0", false)
		} else {
			zeroReg = p.em.IntegerLiteral("0", false)
		}

		return p.em.Operation(zeroReg, typ, reg, typ, "-"), typ, nil
	}
}
