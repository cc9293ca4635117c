package flint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, src string) (*Parser, *Diagnostics, *bytes.Buffer) {
	t.Helper()

	source, err := NewSourceFromReader("t.fl", strings.NewReader(src))
	require.NoError(t, err)

	var diagOut bytes.Buffer
	diag := NewDiagnostics(&diagOut, source)
	table := NewSymbolTable()
	em := NewEmitter(false)
	InstallRuntimeProcedures(table, em)
	lex := NewLexer(source, diag)

	return NewParser(lex, diag, table, em), diag, &diagOut
}

func TestParserProcedureWithNoParametersJumpsStraightToBegin(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  procedure noop()
  begin
  end procedure;
begin
end program`)

	p.Parse()
	require.False(t, diag.HasErrors())

	text := p.em.Text()
	assert.Regexp(t, `noop_\d+:\s*\n\s*goto noop_\d+_begin;`, text)
}

func TestParserUndeclaredNameIsNameError(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
begin
  x := 1;
end program`)

	p.Parse()
	require.True(t, diag.HasErrors())
	assert.Equal(t, ErrorName, diag.Errors()[0].Kind)
}

func TestParserArrayWithoutIndexIsRuntimeError(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  integer xs[2];
  integer y;
begin
  y := xs;
end program`)

	p.Parse()
	require.True(t, diag.HasErrors())
	assert.Equal(t, ErrorRuntime, diag.Errors()[0].Kind)
}

func TestParserOutParamCannotBeReadAsIn(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  procedure q(integer n out)
  begin
    n := n + 1;
  end procedure;
begin
end program`)

	p.Parse()
	require.True(t, diag.HasErrors())
	assert.Equal(t, ErrorType, diag.Errors()[0].Kind)
}

func TestParserInParamCannotBeAssigned(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  procedure q(integer n in)
  begin
    n := 1;
  end procedure;
begin
end program`)

	p.Parse()
	require.True(t, diag.HasErrors())
	assert.Equal(t, ErrorType, diag.Errors()[0].Kind)
}

func TestParserWrongArgumentCountIsRuntimeError(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  procedure q(integer n in)
  begin
    return;
  end procedure;
begin
  q();
end program`)

	p.Parse()
	require.True(t, diag.HasErrors())
	assert.Equal(t, ErrorRuntime, diag.Errors()[0].Kind)
}

func TestParserRecoversAtSemicolonAfterSyntaxError(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  integer x;
begin
  x ;
  x := 2;
end program`)

	p.Parse()
	require.True(t, diag.HasErrors())
	// Despite the first malformed statement, the parser resynced and
	// compiled the second assignment, so its store still shows up.
	assert.Regexp(t, `MM\[R\[\d+\]\] = R\[\d+\];`, p.em.Text())
}

func TestParserNotNegatesWithoutCombinator(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  bool a;
  bool b;
begin
  a := not b;
end program`)

	p.Parse()
	require.False(t, diag.HasErrors())
	assert.Contains(t, p.em.Text(), "~R[")
}

func TestParserCallsRuntimeProcedure(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  integer n;
begin
  putInteger(n);
end program`)

	p.Parse()
	require.False(t, diag.HasErrors())
	assert.Contains(t, p.em.Text(), "goto putInteger_1;")
}

// An `if`/`for` condition needs no particular static type — it branches on
// the register's runtime value, not its declared type (spec.md §4.3; the
// original parser performs no type check here either).
func TestParserIfConditionAcceptsPlainInteger(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  integer flag;
begin
  if (flag) then flag := 1; end if;
end program`)

	p.Parse()
	require.False(t, diag.HasErrors())
}

func TestParserForConditionAcceptsPlainInteger(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  integer i;
begin
  for (i := 0; i) end for;
end program`)

	p.Parse()
	require.False(t, diag.HasErrors())
}

// A relation's result type is its left operand's type, not bool (spec.md
// §4.3: "the language does not have a distinct comparison type") — so an
// `if` or assignment can use its result as if it were still that type.
func TestParserRelationResultKeepsLeftOperandType(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  integer a;
  integer b;
  integer c;
begin
  c := a < b;
end program`)

	p.Parse()
	require.False(t, diag.HasErrors())
}

// Arithmetic's result type is the left operand's type even when the other
// operand is float (spec.md §4.3), so assigning back into an integer
// destination must still type-check.
func TestParserArithResultKeepsLeftOperandType(t *testing.T) {
	p, diag, _ := newParser(t, `program p is
  integer b;
  float a;
  integer c;
begin
  c := b + a;
end program`)

	p.Parse()
	require.False(t, diag.HasErrors())
}
