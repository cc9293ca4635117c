package flint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterCountersAreMonotonic(t *testing.T) {
	e := NewEmitter(false)

	assert.Equal(t, firstGPRegister, e.MintRegister())
	assert.Equal(t, firstGPRegister+1, e.MintRegister())
	assert.Equal(t, firstGPRegister+1, e.CurrentRegister())

	assert.Equal(t, 1, e.MintLabel())
	assert.Equal(t, 2, e.MintLabel())

	assert.Equal(t, 1, e.MintCallID())
	assert.Equal(t, 2, e.MintCallID())
}

func TestEmitterGlobalAddressGrowsDownFromTop(t *testing.T) {
	e := NewEmitter(false)

	first := e.AllocGlobal(1)
	second := e.AllocGlobal(3)

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, mmSize-1, e.globalAddress(first))
	assert.Equal(t, mmSize-2, e.globalAddress(second))
}

func TestEmitterResetPointers(t *testing.T) {
	e := NewEmitter(false)

	e.AllocLocal(3)
	e.AllocParam()
	e.AllocParam()

	e.ResetLocalPtr()
	e.ResetParamPtr()

	assert.Equal(t, 1, e.AllocLocal(1))
	assert.Equal(t, 1, e.AllocParam())
}

func TestEmitterDebugGatesComments(t *testing.T) {
	quiet := NewEmitter(false)
	quiet.commentf("should not appear")
	assert.Empty(t, quiet.Text())

	verbose := NewEmitter(true)
	verbose.commentf("should appear")
	assert.Contains(t, verbose.Text(), "should appear")
}

func TestEmitterOperationWidensFloat(t *testing.T) {
	e := NewEmitter(false)
	intReg := e.IntegerLiteral("1", false)
	floatReg := e.FloatLiteral("2.5", false)

	e.Operation(intReg, TypeInteger, floatReg, TypeFloat, "+")

	assert.Contains(t, e.Text(), "R_FLOAT_1 = R[4];")
	assert.Contains(t, e.Text(), "memcpy(&R_FLOAT_2")
}
