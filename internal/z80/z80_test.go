package z80

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/mailbox"
)

func TestFixedWindowReadsM1Start(t *testing.T) {
	rom := make([]byte, 0x10000)
	rom[0] = 0xC3
	mm := NewMappedMemory(rom)
	require.Equal(t, uint8(0xC3), mm.Read(0))
}

func TestBankLatchSelectsWindow(t *testing.T) {
	rom := make([]byte, 0x20000)
	rom[3*0x4000] = 0xAA // bank 3 of the 0x8000 window
	mm := NewMappedMemory(rom)
	mm.LatchBank(3, 3)
	require.Equal(t, uint8(0xAA), mm.Read(0x8000))
}

func TestWorkRAMReadWrite(t *testing.T) {
	mm := NewMappedMemory(nil)
	mm.Write(0xF800, 0x42)
	require.Equal(t, uint8(0x42), mm.Read(0xF800))
}

func TestROMWindowsIgnoreWrites(t *testing.T) {
	rom := make([]byte, 0x10000)
	rom[0] = 0x11
	mm := NewMappedMemory(rom)
	mm.Write(0, 0x99)
	require.Equal(t, uint8(0x11), mm.Read(0))
}

func TestPort0x00ReadsCommandAndClearsNMI(t *testing.T) {
	mb := &mailbox.SoundMailbox{}
	mb.WriteCommand(0x7F)
	io := &IOPorts{Mailbox: mb}
	require.True(t, mb.NMIPending())
	v := io.ReadPort(0x0000)
	require.Equal(t, uint8(0x7F), v)
	require.False(t, mb.NMIPending())
}

func TestBankPortReadOnlyLatchesBankAndLeavesNMIMaskAlone(t *testing.T) {
	rom := make([]byte, 0x10000)
	mm := NewMappedMemory(rom)
	io := &IOPorts{Mem: mm}
	io.WritePort(0x18, 0) // mask NMI
	io.ReadPort(0x0208)   // port 0x08, bank 2 in the high byte
	require.Equal(t, 2, mm.bank0)
	require.True(t, io.nmiMasked)
}

func TestBankPortWriteEnablesNMI(t *testing.T) {
	rom := make([]byte, 0x10000)
	mm := NewMappedMemory(rom)
	io := &IOPorts{Mem: mm}
	io.WritePort(0x18, 0) // mask NMI
	require.True(t, io.nmiMasked)
	io.WritePort(0x08, 0) // NMI enable
	require.False(t, io.nmiMasked)
}

func TestResultPortWrite(t *testing.T) {
	mb := &mailbox.SoundMailbox{}
	io := &IOPorts{Mailbox: mb}
	io.WritePort(0x0C, 0x55)
	require.Equal(t, uint8(0x55), mb.ReadResult())
}

func TestExecuteServicesNMI(t *testing.T) {
	mb := &mailbox.SoundMailbox{}
	mb.WriteCommand(1)
	c := New(NewMappedMemory(nil), mb)
	c.Reset()
	c.Halted = true
	spent, err := c.Execute(10)
	require.NoError(t, err)
	require.Equal(t, 10, spent)
	require.Equal(t, uint16(0x0066), c.PC)
	require.False(t, c.Halted)
}

func TestExecuteMaskedNMINotServiced(t *testing.T) {
	mb := &mailbox.SoundMailbox{}
	mb.WriteCommand(1)
	c := New(NewMappedMemory(nil), mb)
	c.Reset()
	c.IO.nmiMasked = true
	_, err := c.Execute(10)
	require.NoError(t, err)
	require.Equal(t, uint16(0), c.PC)
}
