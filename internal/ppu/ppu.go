// Package ppu implements the Neo Geo LSPC video hardware: the VRAM register
// window (cursor/auto-increment, scanline timer, auto-animation), the
// per-scanline sprite pipeline, and the 8x8 fix-tile layer, per SPEC_FULL
// §4.4/§4.5.
package ppu

import (
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/rom"
)

const (
	// VRAMWords is the LSPC's addressable VRAM, word-addressed: SCB1
	// tilemaps, FIXMAP, SCB2-4 sprite control blocks, and the per-line
	// sprite-list scratchpads.
	VRAMWords = 0x8800

	ScreenWidth  = 320
	ScreenHeight = 224

	FirstActiveLine = 16
	VBlankLine      = 240
	TotalScanlines  = 264

	MaxSpritesPerScreen = 381
	MaxSpritesPerLine   = 96

	// BackdropColorIndex is the last color of a 4096-color bank: the fill
	// used for scanline pixels no layer claims.
	BackdropColorIndex = 4095
)

const (
	regVRAMAddr   = 0x00
	regVRAMRW     = 0x02
	regVRAMMod    = 0x04
	regLSPCMode   = 0x06
	regTimerHigh  = 0x08
	regTimerLow   = 0x0A
	regIRQAck     = 0x0C
	regTimerStop  = 0x0E
)

// Timer-control bitfield, per original_source/video.h.
const (
	timerCtrlIRQEnabled       = 0x10
	timerCtrlReloadLowWrite   = 0x20
	timerCtrlReloadFrameStart = 0x40
	timerCtrlReloadEmpty      = 0x80
)

// Pending-IRQ bits acknowledged by a write to REG_IRQACK.
const (
	IRQVBlank uint8 = 1 << 0
	IRQTimer  uint8 = 1 << 1
)

// PaletteSource resolves a 12-bit palette color index to its live RGB565
// value; satisfied by *memory.PaletteRAM without importing memory here.
type PaletteSource interface {
	Color(i uint32) uint16
}

// PPU is the video hardware: VRAM plus the register file, driven one
// scanline at a time by the frame orchestrator.
type PPU struct {
	VRAM        [VRAMWords]uint16
	FrameBuffer [ScreenWidth * ScreenHeight]uint16

	vramAddr uint16
	vramMod  int16

	autoAnimSpeed        uint8
	autoAnimDisabled     bool
	autoAnimCounter      uint32
	autoAnimFrameCounter uint32

	timerControl uint8
	timerCounter uint32
	timerRegHigh uint16
	timerRegLow  uint16

	pendingIRQ      uint8
	currentScanline uint32

	// Sprite-raster carry state: a sticky sprite inherits the previous
	// sprite's y/zoomY/clip and places itself at the previous x plus the
	// previous zoomX plus one, reading only its own SCB2 horizontal zoom,
	// so these persist across sprites (and, per hardware, across frames).
	spriteX     uint32
	spriteY     uint32
	spriteZoomX uint32
	spriteZoomY uint32
	spriteClip  uint32

	Cart         *rom.Cartridge
	System       *rom.System
	Palette      PaletteSource
	UseSystemFix bool

	logger *debug.Logger
}

// NewPPU constructs a PPU with empty VRAM and no attached ROMs; AttachROMs
// and SetPaletteSource must be called before RunScanline produces anything
// but the backdrop color.
func NewPPU(logger *debug.Logger) *PPU {
	p := &PPU{logger: logger}
	p.Reset()
	return p
}

// Reset restores power-on state: VRAM is cleared, the cursor and timer
// registers return to zero, auto-animation restarts.
func (p *PPU) Reset() {
	for i := range p.VRAM {
		p.VRAM[i] = 0
	}
	for i := range p.FrameBuffer {
		p.FrameBuffer[i] = 0
	}
	p.vramAddr = 0
	p.vramMod = 0
	p.autoAnimSpeed = 0
	p.autoAnimDisabled = false
	p.autoAnimCounter = 0
	p.autoAnimFrameCounter = 0
	p.timerControl = 0
	p.timerCounter = 0
	p.timerRegHigh = 0
	p.timerRegLow = 0
	p.pendingIRQ = 0
	p.currentScanline = 0
	p.spriteX = 0
	p.spriteY = 0
	p.spriteZoomX = 0x0F
	p.spriteZoomY = 0xFF
	p.spriteClip = 32
}

// AttachROMs wires the cartridge's pre-serialized C-ROM/S-ROM and the
// system's fix/Y-zoom ROMs for the raster path to blit from.
func (p *PPU) AttachROMs(cart *rom.Cartridge, system *rom.System) {
	p.Cart = cart
	p.System = system
}

// SetPaletteSource wires the live palette-color resolver (normally the
// main bus's *memory.PaletteRAM).
func (p *PPU) SetPaletteSource(src PaletteSource) { p.Palette = src }

// SetFixSource toggles BRDFIX/CRTFIX: true selects the system's SFIX ROM
// for the fix layer, false the cartridge's own S-ROM.
func (p *PPU) SetFixSource(useSystem bool) { p.UseSystemFix = useSystem }

func (p *PPU) readVRAM() uint16 {
	v := uint16(0)
	if int(p.vramAddr) < len(p.VRAM) {
		v = p.VRAM[p.vramAddr]
	}
	p.vramAddr = uint16(int32(p.vramAddr) + int32(p.vramMod))
	return v
}

func (p *PPU) writeVRAM(data uint16) {
	if int(p.vramAddr) < len(p.VRAM) {
		p.VRAM[p.vramAddr] = data
	}
	p.vramAddr = uint16(int32(p.vramAddr) + int32(p.vramMod))
}

// Read16 services a word read from the video register window (offsets
// relative to VideoWindowStart).
func (p *PPU) Read16(offset uint32) uint16 {
	switch offset {
	case regVRAMAddr, regVRAMRW:
		return p.readVRAM()
	case regVRAMMod:
		return uint16(p.vramMod)
	case regLSPCMode:
		lineCounter := p.currentScanline + 0x100
		const screenFreq = 1 // 1 = 50Hz, matching the reference board's default
		return uint16(lineCounter<<7) | (screenFreq << 3) | uint16(p.autoAnimCounter&0x07)
	case regTimerHigh:
		return uint16(p.timerCounter >> 16)
	case regTimerLow:
		return uint16(p.timerCounter)
	default:
		return 0
	}
}

// Write16 services a word write to the video register window.
func (p *PPU) Write16(offset uint32, data uint16) {
	switch offset {
	case regVRAMAddr:
		p.vramAddr = data
	case regVRAMRW:
		p.writeVRAM(data)
	case regVRAMMod:
		p.vramMod = int16(data)
	case regLSPCMode:
		p.autoAnimSpeed = uint8(data >> 8)
		p.autoAnimDisabled = data&0x0008 != 0
		p.timerControl = uint8(data & 0x00F0)
	case regTimerHigh:
		p.timerRegHigh = data
	case regTimerLow:
		p.timerRegLow = data
		if p.timerControl&timerCtrlReloadLowWrite != 0 {
			p.reloadTimer()
		}
	case regIRQAck:
		p.pendingIRQ &^= uint8(data & 0x07)
	case regTimerStop:
		// Unimplemented on the reference board beyond LSPCMODE-style stop;
		// no observable effect here.
	}
}

// Read8/Write8 satisfy memory.IOHandler for byte accesses; the LSPC is a
// 16-bit-only peripheral on real hardware, so a byte access degrades to the
// low byte of the word operation (matching original_source/video.c's own
// vram_read_byte/vram_write_byte).
func (p *PPU) Read8(offset uint32) uint8 {
	return uint8(p.Read16(offset &^ 1))
}

func (p *PPU) Write8(offset uint32, value uint8) {
	p.Write16(offset&^1, uint16(value))
}

// reloadTimer reloads the down-counter from REG_TIMERHIGH/REG_TIMERLOW and,
// per original_source/timer.c's arm-then-check_timeout semantics, fires the
// IRQ immediately if the reloaded value is already zero.
func (p *PPU) reloadTimer() {
	p.timerCounter = uint32(p.timerRegHigh)<<16 | uint32(p.timerRegLow)
	if p.timerCounter == 0 {
		p.raiseTimerIRQ()
	}
}

func (p *PPU) raiseTimerIRQ() {
	if p.timerControl&timerCtrlIRQEnabled != 0 {
		p.pendingIRQ |= IRQTimer
	}
}

// VBlankIRQPending reports whether the VBlank IRQ bit is set.
func (p *PPU) VBlankIRQPending() bool { return p.pendingIRQ&IRQVBlank != 0 }

// TimerIRQPending reports whether the raster timer IRQ bit is set.
func (p *PPU) TimerIRQPending() bool { return p.pendingIRQ&IRQTimer != 0 }

// AckIRQ clears the given bits of the pending-IRQ mask, as REG_IRQACK does.
func (p *PPU) AckIRQ(mask uint8) { p.pendingIRQ &^= mask }

// StepPixels advances the scanline timer down-counter by n pixel clocks,
// firing the timer IRQ (if enabled) and reloading (if the empty-reload bit
// is set) whenever the counter reaches (or starts at, per TimerUnderflow)
// zero. Nothing silences the timer once it lands on zero: a counter stuck
// at zero fires again on every later call, exactly as RELOAD_EMPTY_MASK
// firing once per scanline's worth of master cycles requires.
func (p *PPU) StepPixels(n uint32) {
	if n >= p.timerCounter {
		p.timerCounter = 0
		p.raiseTimerIRQ()
		if p.timerControl&timerCtrlReloadEmpty != 0 {
			p.reloadTimer()
		}
		return
	}
	p.timerCounter -= n
}
