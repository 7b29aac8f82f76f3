package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/rom"
)

func testCart() *rom.Cartridge {
	bank1 := make([]byte, rom.PROMBankSize)
	bank1[0x100] = 'X'
	candidate := make([]byte, rom.PROMBankSize)
	candidate[0] = 0xAB
	return &rom.Cartridge{
		PROMBank1:          bank1,
		PROMBankCandidates: [][]byte{candidate, {0xCD}},
	}
}

func TestBusWorkRAMAndMirror(t *testing.T) {
	b := NewBus(nil, testCart())
	require.NoError(t, b.Write8(WorkRAMStart+5, 0x42))
	v, err := b.Read8(WorkRAMStart + 5)
	require.NoError(t, err)
	require.Equal(t, uint8(0x42), v)

	// Mirror range reflects the same underlying store (modulo 64 KiB).
	v, err = b.Read8(WorkRAMStart + 0x10000 + 5)
	require.NoError(t, err)
	require.Equal(t, uint8(0x42), v)
}

func TestBusPROMBank1Read(t *testing.T) {
	b := NewBus(nil, testCart())
	v, err := b.Read8(0x100)
	require.NoError(t, err)
	require.Equal(t, uint8('X'), v)

	// Writes to ROM are silently ignored.
	require.NoError(t, b.Write8(0x100, 0x00))
	v, _ = b.Read8(0x100)
	require.Equal(t, uint8('X'), v)
}

func TestBusBank2Switch(t *testing.T) {
	b := NewBus(nil, testCart())
	v, err := b.Read8(PROMBank2Start)
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), v)

	require.NoError(t, b.Write8(PROMBank2Start, 0x01))
	v, err = b.Read8(PROMBank2Start)
	require.NoError(t, err)
	require.Equal(t, uint8(0xCD), v)
}

func TestBusPaletteBankToggleIsIdempotent(t *testing.T) {
	b := NewBus(nil, testCart())
	require.NoError(t, b.Write8(PaletteStart, 0x34))
	require.NoError(t, b.Write8(PaletteStart+1, 0x12))

	b.applySystemControlWrite(0x3A000F, 0) // PALBANK1
	b.applySystemControlWrite(0x3A000F, 0) // select bank 1 again: idempotent

	v, err := b.Read8(PaletteStart)
	require.NoError(t, err)
	require.Equal(t, uint8(0), v, "bank 1 was never written, must not see bank 0's data")

	b.applySystemControlWrite(0x3A001F, 0) // back to bank 0
	v, err = b.Read8(PaletteStart)
	require.NoError(t, err)
	require.Equal(t, uint8(0x34), v)
}

func TestBusUnmappedAddressIsBusError(t *testing.T) {
	b := NewBus(nil, testCart())
	_, err := b.Read8(0x500000)
	require.Error(t, err)
	var busErr *BusError
	require.ErrorAs(t, err, &busErr)
	require.Equal(t, uint32(0x500000), busErr.Address)
}

func TestBackupRAMMirror(t *testing.T) {
	b := NewBus(nil, testCart())
	require.NoError(t, b.Write8(BackupRAMStart+10, 0x99))
	v, err := b.Read8(BackupRAMStart + 0x20000 + 10)
	require.NoError(t, err)
	require.Equal(t, uint8(0x99), v)
}
