package flint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTableGlobalShadowing(t *testing.T) {
	st := NewSymbolTable()

	global := &Identifier{Name: "x", Type: TypeInteger}
	assert.NoError(t, st.Add(global, true))

	program := &Identifier{Name: "p", Type: TypeProgram}
	st.PushScope(program)

	local := &Identifier{Name: "x", Type: TypeFloat}
	assert.NoError(t, st.Add(local, false))

	found, err := st.Find("x")
	assert.NoError(t, err)
	assert.Same(t, local, found)
	assert.Equal(t, LocationLocal, st.Location("x"))

	st.PopScope()
	found, err = st.Find("x")
	assert.NoError(t, err)
	assert.Same(t, global, found)
}

func TestSymbolTableDuplicateNameFails(t *testing.T) {
	st := NewSymbolTable()
	assert.NoError(t, st.Add(&Identifier{Name: "x", Type: TypeInteger}, true))
	assert.Error(t, st.Add(&Identifier{Name: "x", Type: TypeFloat}, true))
}

func TestSymbolTableGlobalOnlyFromProgramBody(t *testing.T) {
	st := NewSymbolTable()
	st.PushScope(&Identifier{Name: "p", Type: TypeProgram})
	st.PushScope(&Identifier{Name: "q", Type: TypeProcedure})

	err := st.Add(&Identifier{Name: "x", Type: TypeInteger}, true)
	assert.Error(t, err)
}

func TestSymbolTableUnresolvedNameFails(t *testing.T) {
	st := NewSymbolTable()
	_, err := st.Find("missing")
	assert.Error(t, err)
}

func TestSymbolTableParamDirection(t *testing.T) {
	st := NewSymbolTable()

	param := &Identifier{Name: "n", Type: TypeInteger}
	proc := &Identifier{Name: "q", Type: TypeProcedure, Params: []Parameter{{ID: param, Direction: DirectionOut}}}

	assert.NoError(t, st.Add(proc, true))
	st.PushScope(proc)
	assert.NoError(t, st.Add(param, false))

	assert.Equal(t, LocationParam, st.Location("n"))
	dir, ok := st.ParamDirection("n")
	assert.True(t, ok)
	assert.Equal(t, DirectionOut, dir)
}

func TestSymbolTablePopGlobalPanics(t *testing.T) {
	st := NewSymbolTable()
	assert.Panics(t, func() { st.PopScope() })
}
