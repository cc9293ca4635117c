package flint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypePredicates(t *testing.T) {
	assert.True(t, TypeInteger.IsNumeric())
	assert.True(t, TypeFloat.IsNumeric())
	assert.False(t, TypeBool.IsNumeric())
	assert.False(t, TypeString.IsNumeric())

	assert.True(t, TypeInteger.IsLogical())
	assert.True(t, TypeBool.IsLogical())
	assert.False(t, TypeFloat.IsLogical())
	assert.False(t, TypeString.IsLogical())

	assert.True(t, TypeString.IsValue())
	assert.False(t, TypeProcedure.IsValue())
	assert.False(t, TypeProgram.IsValue())
}

func TestIdentifierElementCount(t *testing.T) {
	scalar := &Identifier{Name: "x", Type: TypeInteger}
	assert.Equal(t, 1, scalar.ElementCount())
	assert.False(t, scalar.IsArray())

	size := 4
	array := &Identifier{Name: "xs", Type: TypeInteger, Size: &size}
	assert.Equal(t, 4, array.ElementCount())
	assert.True(t, array.IsArray())
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "in", DirectionIn.String())
	assert.Equal(t, "out", DirectionOut.String())
}
