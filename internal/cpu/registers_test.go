package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersResetState(t *testing.T) {
	r := NewRegisters()
	assert.Equal(t, uint8(SVCMode), r.GetMode())
	assert.True(t, r.IsIRQDisabled())
	assert.True(t, r.IsFIQDisabled())
	assert.False(t, r.IsThumb())
	assert.Equal(t, uint32(0), r.GetPC())
}

func TestBankedRegistersIsolatedPerMode(t *testing.T) {
	r := NewRegisters()

	r.SetMode(USRMode)
	r.SetReg(13, 0x1000) // sp_usr

	r.SetMode(SVCMode)
	r.SetReg(13, 0x2000) // sp_svc, distinct bank

	r.SetMode(USRMode)
	assert.Equal(t, uint32(0x1000), r.GetReg(13), "USR sp must survive an SVC write to its own bank")

	r.SetMode(SVCMode)
	assert.Equal(t, uint32(0x2000), r.GetReg(13))
}

func TestSysModeSharesUsrBank(t *testing.T) {
	r := NewRegisters()
	r.SetMode(USRMode)
	r.SetReg(14, 0xCAFE)

	r.SetMode(SYSMode)
	assert.Equal(t, uint32(0xCAFE), r.GetReg(14), "SYS and USR share one r14 bank")
}

func TestFIQBanksR8ThroughR12(t *testing.T) {
	r := NewRegisters()
	r.SetMode(USRMode)
	r.SetReg(8, 0x1111)

	r.SetMode(FIQMode)
	r.SetReg(8, 0x2222)

	r.SetMode(USRMode)
	assert.Equal(t, uint32(0x1111), r.GetReg(8), "FIQ's r8 bank must not clobber USR's")
}

func TestSPSRUndefinedInUsrAndSys(t *testing.T) {
	r := NewRegisters()
	r.SetMode(USRMode)
	_, ok := r.GetSPSR()
	assert.False(t, ok)
	assert.False(t, r.SetSPSR(0x12345678))

	r.SetMode(SYSMode)
	_, ok = r.GetSPSR()
	assert.False(t, ok)
}

func TestSPSRBankedPerPrivilegedMode(t *testing.T) {
	r := NewRegisters()

	r.SetMode(IRQMode)
	require.True(t, r.SetSPSR(0xAAAA0000))

	r.SetMode(SVCMode)
	require.True(t, r.SetSPSR(0xBBBB0000))

	r.SetMode(IRQMode)
	v, ok := r.GetSPSR()
	require.True(t, ok)
	assert.Equal(t, uint32(0xAAAA0000), v)
}

func TestSetModePreservesNZCV(t *testing.T) {
	r := NewRegisters()
	r.SetNZCV(true, false, true, false)
	r.SetMode(IRQMode)
	assert.True(t, r.GetFlagN())
	assert.False(t, r.GetFlagZ())
	assert.True(t, r.GetFlagC())
	assert.False(t, r.GetFlagV())
	assert.Equal(t, uint8(IRQMode), r.GetMode())
}

func TestCheckConditionAllCodes(t *testing.T) {
	r := NewRegisters()

	cases := []struct {
		name       string
		n, z, c, v bool
		cond       uint8
		want       bool
	}{
		{"EQ true", false, true, false, false, 0x0, true},
		{"NE true", false, false, false, false, 0x1, true},
		{"CS true", false, false, true, false, 0x2, true},
		{"CC true", false, false, false, false, 0x3, true},
		{"MI true", true, false, false, false, 0x4, true},
		{"PL true", false, false, false, false, 0x5, true},
		{"VS true", false, false, false, true, 0x6, true},
		{"VC true", false, false, false, false, 0x7, true},
		{"HI true", false, false, true, false, 0x8, true},
		{"LS (z)", false, true, true, false, 0x9, true},
		{"GE (n==v)", true, false, false, true, 0xA, true},
		{"LT (n!=v)", true, false, false, false, 0xB, true},
		{"GT (!z && n==v)", false, false, false, false, 0xC, true},
		{"LE (z)", false, true, false, false, 0xD, true},
		{"AL always true", false, false, false, false, 0xE, true},
		{"NV always false", true, true, true, true, 0xF, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r.SetNZCV(tc.n, tc.z, tc.c, tc.v)
			assert.Equal(t, tc.want, r.CheckCondition(tc.cond))
		})
	}
}

func TestGetRegModeUserBankAccessFromPrivilegedMode(t *testing.T) {
	r := NewRegisters()
	r.SetMode(USRMode)
	r.SetReg(13, 0x5555)

	r.SetMode(SVCMode)
	// GetRegMode lets an LDM user-bank transfer read USR's sp without a
	// mode switch.
	assert.Equal(t, uint32(0x5555), r.GetRegMode(13, USRMode))
}
