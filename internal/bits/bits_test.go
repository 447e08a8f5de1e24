package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	assert.True(t, Bit(0x80000000, 31))
	assert.False(t, Bit(0x7FFFFFFF, 31))
	assert.True(t, Bit(1, 0))
}

func TestCarryFrom(t *testing.T) {
	assert.False(t, CarryFrom(1, 1))
	assert.True(t, CarryFrom(0xFFFFFFFF, 1))
	assert.True(t, CarryFrom(0x80000000, 0x80000000))
}

func TestCarryFromWithCarry(t *testing.T) {
	assert.False(t, CarryFromWithCarry(0xFFFFFFFE, 0, 1))
	assert.True(t, CarryFromWithCarry(0xFFFFFFFF, 0, 1))
	assert.True(t, CarryFromWithCarry(0xFFFFFFFF, 1, 1))
}

func TestNotBorrowFrom(t *testing.T) {
	assert.True(t, NotBorrowFrom(5, 5))
	assert.True(t, NotBorrowFrom(5, 3))
	assert.False(t, NotBorrowFrom(3, 5))
}

func TestNotBorrowFromWithCarry(t *testing.T) {
	// a - b - (1-c): with c=1 (no incoming borrow) this is a plain a>=b.
	assert.True(t, NotBorrowFromWithCarry(5, 5, 1))
	assert.False(t, NotBorrowFromWithCarry(5, 5, 0))
	assert.True(t, NotBorrowFromWithCarry(5, 4, 0))
}

func TestAdditionOverflow(t *testing.T) {
	// MaxInt32 + 1 overflows into negative: signed overflow.
	r := uint32(0x7FFFFFFF) + 1
	assert.True(t, AdditionOverflow(0x7FFFFFFF, 1, r))
	// Two negatives adding to something representable: no overflow.
	minusOne := uint32(0xFFFFFFFF)
	r2 := minusOne + minusOne
	assert.False(t, AdditionOverflow(0xFFFFFFFF, 0xFFFFFFFF, r2))
}

func TestSubtractionOverflow(t *testing.T) {
	// MinInt32 - 1 overflows into positive.
	r := uint32(0x80000000) - 1
	assert.True(t, SubtractionOverflow(0x80000000, 1, r))
	assert.False(t, SubtractionOverflow(5, 3, 2))
}

func TestRotateRight(t *testing.T) {
	assert.Equal(t, uint32(0x80000000), RotateRight(1, 1))
	assert.Equal(t, uint32(1), RotateRight(1, 0))
	assert.Equal(t, uint32(1), RotateRight(1, 32))
	assert.Equal(t, uint32(0x00000001), RotateRight(0x80000000, 31))
}

func TestBoolToU32(t *testing.T) {
	assert.Equal(t, uint32(1), BoolToU32(true))
	assert.Equal(t, uint32(0), BoolToU32(false))
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, uint32(0xFFFFFFFF), SignExtend(0x1FF, 9))
	assert.Equal(t, uint32(0x000000FF), SignExtend(0x0FF, 9))
	assert.Equal(t, uint32(0xFFFFFFFE), SignExtend(0xFFFFFE, 24))
}
