package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/memory"
	"nitro-core-dx/internal/rom"
)

func testBus() *memory.Bus {
	bank1 := make([]byte, rom.PROMBankSize)
	// Reset vector: SP = 0x00200000, PC = 0x00000400.
	bank1[0], bank1[1], bank1[2], bank1[3] = 0x00, 0x20, 0x00, 0x00
	bank1[4], bank1[5], bank1[6], bank1[7] = 0x00, 0x00, 0x04, 0x00
	return memory.NewBus(nil, &rom.Cartridge{PROMBank1: bank1})
}

func TestResetReadsVectorTable(t *testing.T) {
	c := New(testBus(), nil)
	c.Reset()
	require.Equal(t, uint32(0x00200000), c.State.A[7])
	require.Equal(t, uint32(0x00000400), c.State.PC)
}

func TestExecuteAccountsForBudget(t *testing.T) {
	c := New(testBus(), nil)
	c.Reset()
	spent, err := c.Execute(100)
	require.NoError(t, err)
	require.Equal(t, 100, spent)
	require.Equal(t, uint64(100), c.State.Cycles)
}

func TestRaiseIRQPushesStackAndFetchesVector(t *testing.T) {
	bus := testBus()
	// Autovector #4 at 0x70. P-ROM ignores bus writes, so the vector goes
	// into the ROM image itself.
	copy(bus.Cart.PROMBank1[0x70:], []byte{0xDE, 0xAD, 0xBE, 0xEF})
	vec, err := bus.Read32(0x70)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), vec)
	c := New(bus, nil)
	c.Reset()
	c.State.SR &^= SRIntMask // Reset leaves the mask at 7; open it for level 4
	sp0 := c.State.A[7]

	c.RaiseIRQ(4)
	_, err = c.Execute(4)
	require.NoError(t, err)

	require.Equal(t, uint32(0xDEADBEEF), c.State.PC)
	require.Equal(t, sp0-6, c.State.A[7])
	require.Equal(t, uint16(4), (c.State.SR&SRIntMask)>>8)
}

func TestMaskedIRQIsNotServiced(t *testing.T) {
	c := New(testBus(), nil)
	c.Reset()
	pc0 := c.State.PC
	c.State.SR |= SRIntMask // mask level 7, nothing can interrupt

	c.RaiseIRQ(3)
	_, err := c.Execute(4)
	require.NoError(t, err)
	require.Equal(t, pc0, c.State.PC)
}
