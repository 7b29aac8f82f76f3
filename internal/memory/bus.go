// Package memory implements the main-CPU memory bus: a 24-bit address space
// routed to typed regions (ROM banks with mid-frame bank switching, mirrors,
// palette RAM with dual banks, the I/O/system/video register window, work
// and backup RAM, memory card) per the neogeo memory map.
package memory

import (
	"fmt"

	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/rom"
)

// Address-space boundaries, word-addressable, 24-bit main-CPU bus.
const (
	PROMBank1Start  = 0x000000
	PROMBank1End    = 0x0FFFFF
	WorkRAMStart    = 0x100000
	WorkRAMEnd      = 0x10FFFF
	WorkRAMMirrorEnd = 0x1FFFFF
	PROMBank2Start  = 0x200000
	PROMBank2End    = 0x2FFFFF
	IOSysStart      = 0x300000
	VideoWindowStart = 0x3C0000
	IOSysEnd        = 0x3FFFFF
	PaletteStart    = 0x400000
	PaletteEnd      = 0x401FFF
	PaletteMirrorEnd = 0x403FFF
	MemCardStart    = 0x800000
	MemCardEnd      = 0xBFFFFF
	SystemROMStart  = 0xC00000
	SystemROMEnd    = 0xC1FFFF
	SystemROMMirrorEnd = 0xC3FFFF
	BackupRAMStart  = 0xD00000
	BackupRAMEnd    = 0xD0FFFF
	BackupRAMMirrorEnd = 0xD3FFFF

	VectorTableBytes = 0x80
)

// IOHandler is the register-window interface shared by the video register
// file and other byte/word addressable peripherals hung off the I/O window.
type IOHandler interface {
	Read8(offset uint32) uint8
	Write8(offset uint32, value uint8)
	Read16(offset uint32) uint16
	Write16(offset uint32, value uint16)
}

// BusError is raised when an access lands outside every mapped region,
// modeling the main CPU's bus-error exception (vector #2).
type BusError struct {
	Address uint32
	Write   bool
}

func (e *BusError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("bus error: %s at 0x%06X", op, e.Address)
}

// Bus is the main-CPU's view of the system: region dispatch plus the
// mutable module-level flags (BIOS-vs-cart vector source, fix ROM source,
// palette bank, bank-2 selection) that the I/O register file toggles.
type Bus struct {
	System *rom.System
	Cart   *rom.Cartridge

	WorkRAM   WorkRAM
	BackupRAM BackupRAM
	Palette   PaletteRAM
	MemCard   MemCard

	IOSys IOHandler // system/input/sound-mailbox register window, [0x300000, 0x3BFFFF]
	Video IOHandler // video register window, [0x3C0000, 0x3FFFFF]

	// Module-level flags, toggled by writes to the system-control region
	// (see SPEC_FULL §4.2/§6): SWPBIOS/SWPROM select the vector source,
	// BRDFIX/CRTFIX the fix ROM source, PALBANK0/1 the palette bank.
	UseSystemVectors bool
	UseSystemFix     bool
	PaletteBank      int
	bank2Selected    int

	logger *debug.Logger
}

// NewBus constructs a Bus for the given BIOS system and cartridge. Either
// may be nil at construction time and set later via LoadCart/LoadSystem on
// the emulator, but a Bus used before both are set will bus-error on any
// ROM-region access.
func NewBus(system *rom.System, cart *rom.Cartridge) *Bus {
	return &Bus{System: system, Cart: cart}
}

// SetLogger attaches a debug logger; nil disables logging.
func (b *Bus) SetLogger(logger *debug.Logger) { b.logger = logger }

// SelectBank2 replaces the bank-2 window's backing store, per a write to
// ROM_BANK2_START whose low byte selects candidate n.
func (b *Bus) SelectBank2(n int) {
	if b.Cart == nil || len(b.Cart.PROMBankCandidates) == 0 {
		return
	}
	if n < 0 || n >= len(b.Cart.PROMBankCandidates) {
		return
	}
	b.bank2Selected = n
}

// Read8 reads one byte from the 24-bit address space.
func (b *Bus) Read8(addr uint32) (uint8, error) {
	addr &= 0xFFFFFF
	switch {
	case addr <= PROMBank1End:
		return b.readPROMBank1(addr), nil
	case addr <= WorkRAMMirrorEnd:
		return b.WorkRAM.Read8(addr - WorkRAMStart), nil
	case addr <= PROMBank2End:
		return b.readPROMBank2(addr - PROMBank2Start), nil
	case addr <= IOSysEnd:
		return b.readIOWindow8(addr), nil
	case addr <= PaletteMirrorEnd:
		return b.Palette.Read8((addr - PaletteStart) % (PaletteEnd - PaletteStart + 1)), nil
	case addr >= MemCardStart && addr <= MemCardEnd:
		return b.MemCard.Read8(addr - MemCardStart), nil
	case addr >= SystemROMStart && addr <= SystemROMMirrorEnd:
		return b.readSystemROM(addr), nil
	case addr >= BackupRAMStart && addr <= BackupRAMMirrorEnd:
		return b.BackupRAM.Read8((addr - BackupRAMStart) % (BackupRAMEnd - BackupRAMStart + 1)), nil
	default:
		return 0, &BusError{Address: addr, Write: false}
	}
}

// Write8 writes one byte to the 24-bit address space.
func (b *Bus) Write8(addr uint32, value uint8) error {
	addr &= 0xFFFFFF
	switch {
	case addr <= PROMBank1End:
		return nil // ROM: writes ignored
	case addr <= WorkRAMMirrorEnd:
		b.WorkRAM.Write8(addr-WorkRAMStart, value)
		return nil
	case addr <= PROMBank2End:
		if addr-PROMBank2Start < 4 {
			b.SelectBank2(int(value & 0x3))
		}
		return nil
	case addr <= IOSysEnd:
		b.writeIOWindow8(addr, value)
		return nil
	case addr <= PaletteMirrorEnd:
		b.Palette.Write8((addr-PaletteStart)%(PaletteEnd-PaletteStart+1), value)
		return nil
	case addr >= MemCardStart && addr <= MemCardEnd:
		b.MemCard.Write8(addr-MemCardStart, value)
		return nil
	case addr >= SystemROMStart && addr <= SystemROMMirrorEnd:
		return nil // system ROM is read-only
	case addr >= BackupRAMStart && addr <= BackupRAMMirrorEnd:
		b.BackupRAM.Write8((addr-BackupRAMStart)%(BackupRAMEnd-BackupRAMStart+1), value)
		return nil
	default:
		return &BusError{Address: addr, Write: true}
	}
}

// Read16 reads a big-endian word, except across the palette window, which
// is stored little-endian, and the video register window, where the word is
// one register access (so VRAMRW advances the VRAM cursor once).
func (b *Bus) Read16(addr uint32) (uint16, error) {
	if a := addr & 0xFFFFFF; a >= VideoWindowStart && a <= IOSysEnd {
		if b.Video == nil {
			return 0, nil
		}
		return b.Video.Read16(a - VideoWindowStart), nil
	}
	if addr >= PaletteStart && addr <= PaletteMirrorEnd {
		lo, err := b.Read8(addr)
		if err != nil {
			return 0, err
		}
		hi, err := b.Read8(addr + 1)
		if err != nil {
			return 0, err
		}
		return uint16(lo) | uint16(hi)<<8, nil
	}
	hi, err := b.Read8(addr)
	if err != nil {
		return 0, err
	}
	lo, err := b.Read8(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Write16 writes a big-endian word, except across the palette window
// (stored little-endian) and the video register window (one register
// access per word).
func (b *Bus) Write16(addr uint32, value uint16) error {
	if a := addr & 0xFFFFFF; a >= VideoWindowStart && a <= IOSysEnd {
		if b.Video != nil {
			b.Video.Write16(a-VideoWindowStart, value)
		}
		return nil
	}
	if addr >= PaletteStart && addr <= PaletteMirrorEnd {
		if err := b.Write8(addr, uint8(value)); err != nil {
			return err
		}
		return b.Write8(addr+1, uint8(value>>8))
	}
	if err := b.Write8(addr, uint8(value>>8)); err != nil {
		return err
	}
	return b.Write8(addr+1, uint8(value))
}

// Read32 reads a big-endian long word.
func (b *Bus) Read32(addr uint32) (uint32, error) {
	hi, err := b.Read16(addr)
	if err != nil {
		return 0, err
	}
	lo, err := b.Read16(addr + 2)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// Write32 writes a big-endian long word.
func (b *Bus) Write32(addr uint32, value uint32) error {
	if err := b.Write16(addr, uint16(value>>16)); err != nil {
		return err
	}
	return b.Write16(addr+2, uint16(value))
}

func (b *Bus) readPROMBank1(addr uint32) uint8 {
	if addr < VectorTableBytes && b.UseSystemVectors && b.System != nil && len(b.System.ProgramROM) > int(addr) {
		return b.System.ProgramROM[addr]
	}
	if b.Cart == nil || addr >= uint32(len(b.Cart.PROMBank1)) {
		return 0
	}
	return b.Cart.PROMBank1[addr]
}

func (b *Bus) readPROMBank2(offset uint32) uint8 {
	if b.Cart == nil {
		return 0
	}
	bank := b.Cart.PROMBank2(b.bank2Selected)
	if bank == nil || offset >= uint32(len(bank)) {
		return 0
	}
	return bank[offset]
}

func (b *Bus) readSystemROM(addr uint32) uint8 {
	if b.System == nil {
		return 0
	}
	off := (addr - SystemROMStart) % uint32(len(b.System.ProgramROM))
	return b.System.ProgramROM[off]
}

func (b *Bus) readIOWindow8(addr uint32) uint8 {
	if addr >= VideoWindowStart {
		if b.Video == nil {
			return 0
		}
		return b.Video.Read8(addr - VideoWindowStart)
	}
	if b.IOSys == nil {
		return 0
	}
	v := b.IOSys.Read8(addr - IOSysStart)
	if b.logger != nil && b.logger.IsComponentEnabled(debug.ComponentInput) {
		b.logger.LogInput(debug.LogLevelDebug, fmt.Sprintf("io read: addr=0x%06X value=0x%02X", addr, v), nil)
	}
	return v
}

func (b *Bus) writeIOWindow8(addr uint32, value uint8) {
	if addr >= VideoWindowStart {
		if b.Video != nil {
			b.Video.Write8(addr-VideoWindowStart, value)
		}
		return
	}
	b.applySystemControlWrite(addr, value)
	if b.IOSys != nil {
		b.IOSys.Write8(addr-IOSysStart, value)
		if b.logger != nil && b.logger.IsComponentEnabled(debug.ComponentInput) {
			b.logger.LogInput(debug.LogLevelDebug, fmt.Sprintf("io write: addr=0x%06X value=0x%02X", addr, value), nil)
		}
	}
}

// applySystemControlWrite handles the write-only system-control bit
// registers that the Bus itself owns (vector/fix/palette-bank selection),
// per SPEC_FULL §6's fixed address list.
func (b *Bus) applySystemControlWrite(addr uint32, value uint8) {
	switch addr {
	case 0x3A0003: // SWPBIOS
		b.UseSystemVectors = true
	case 0x3A0013: // SWPROM
		b.UseSystemVectors = false
	case 0x3A000B: // BRDFIX
		b.UseSystemFix = true
	case 0x3A001B: // CRTFIX
		b.UseSystemFix = false
	case 0x3A000F: // PALBANK1
		b.PaletteBank = 1
		b.Palette.SelectBank(1)
	case 0x3A001F: // PALBANK0
		b.PaletteBank = 0
		b.Palette.SelectBank(0)
	}
	_ = value
}
