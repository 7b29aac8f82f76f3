package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
	"nitro-core-dx/internal/rom"
)

type fakePalette map[uint32]uint16

func (f fakePalette) Color(i uint32) uint16 { return f[i%4096] }

func TestVRAMCursorAutoIncrement(t *testing.T) {
	p := NewPPU(nil)
	p.Write16(regVRAMAddr, 0x0010)
	p.Write16(regVRAMMod, 2)
	p.Write16(regVRAMRW, 0xAAAA)
	p.Write16(regVRAMRW, 0xBBBB)

	require.Equal(t, uint16(0xAAAA), p.VRAM[0x10])
	require.Equal(t, uint16(0xBBBB), p.VRAM[0x12])
	require.Equal(t, uint16(0x14), p.vramAddr)
}

func TestLSPCModePacking(t *testing.T) {
	p := NewPPU(nil)
	p.currentScanline = 50
	p.autoAnimCounter = 0x05
	got := p.Read16(regLSPCMode)
	want := uint16((50+0x100)<<7) | (1 << 3) | 0x05
	require.Equal(t, want, got)
}

func TestTimerReloadOnLowWriteAndIRQAck(t *testing.T) {
	p := NewPPU(nil)
	p.Write16(regLSPCMode, uint16(timerCtrlReloadLowWrite|timerCtrlIRQEnabled))
	p.Write16(regTimerHigh, 0)
	p.Write16(regTimerLow, 5)
	require.Equal(t, uint32(5), p.timerCounter)

	p.StepPixels(5)
	require.True(t, p.TimerIRQPending())

	p.Write16(regIRQAck, 0x02)
	require.False(t, p.TimerIRQPending())
}

func TestTimerReloadToZeroFiresImmediatelyAndKeepsFiring(t *testing.T) {
	p := NewPPU(nil)
	p.Write16(regLSPCMode, uint16(timerCtrlReloadLowWrite|timerCtrlIRQEnabled))
	p.Write16(regTimerHigh, 0)
	p.Write16(regTimerLow, 0)

	require.True(t, p.TimerIRQPending(), "reload landing on zero must fire immediately")

	p.Write16(regIRQAck, 0x02)
	require.False(t, p.TimerIRQPending())

	// The counter stays pinned at zero; nothing should permanently silence
	// it, so the next step fires the IRQ again.
	p.StepPixels(1)
	require.True(t, p.TimerIRQPending(), "a counter stuck at zero must keep firing on later steps")

	p.Write16(regIRQAck, 0x02)
	p.StepPixels(1)
	require.True(t, p.TimerIRQPending(), "a counter stuck at zero must fire again after each acknowledge")
}

func TestSpriteBlitAtExpectedFrameBufferRow(t *testing.T) {
	p := NewPPU(nil)

	cart := &rom.Cartridge{CROM: make([]byte, 256)}
	for i := range cart.CROM {
		cart.CROM[i] = 0x33
	}
	system := &rom.System{YZoomROM: make([]byte, rom.YZoomROMSize)}
	for line := uint32(0); line < 16; line++ {
		system.YZoomROM[255*256+line] = byte(line)
	}
	p.AttachROMs(cart, system)
	p.SetPaletteSource(fakePalette{3: 0x4321, BackdropColorIndex: 0x0000})

	const spriteNumber = 0
	p.VRAM[vramSCB1Base+spriteNumber*64] = 0    // tile index
	p.VRAM[vramSCB1Base+spriteNumber*64+1] = 0  // control: no flip, palette 0
	p.VRAM[vramSCB2Base+spriteNumber] = 0x0FFF  // zoomX=0xF (full), zoomY=0xFF
	p.VRAM[vramSCB3Base+spriteNumber] = 0xE701  // non-sticky, y=50, verticalSize=1
	p.VRAM[vramSCB4Base+spriteNumber] = 0x3200  // x = 0x3200>>7 = 100

	p.RunScanline(50)

	row := 50 - FirstActiveLine
	require.Equal(t, uint16(0x4321), p.FrameBuffer[row*ScreenWidth+100])
	require.Equal(t, uint16(0x0000), p.FrameBuffer[row*ScreenWidth+84])
}

func TestDrawSpriteInvertsZoomLineBeforeYZoomLookupWhenFlipped(t *testing.T) {
	p := NewPPU(nil)

	cart := &rom.Cartridge{CROM: make([]byte, 1536)}
	cart.CROM[760] = 0x30 // colorIndex=3 for pixel 0, the only non-zero byte in range

	system := &rom.System{YZoomROM: make([]byte, rom.YZoomROMSize)}
	// scanline=50, y=51 gives spriteLine=(50-51)&0x1FF=0x1FF, so invert is set
	// and the fixed zoomLine is 0xFF^0xFF=0, not the raw 0xFF.
	system.YZoomROM[0xFF*256+0] = 0x00     // fixed index: tileNumber=0, tileLine=0
	system.YZoomROM[0xFF*256+0xFF] = 0x10 // raw (unfixed) index: tileNumber=1, tileLine=0

	p.AttachROMs(cart, system)
	p.SetPaletteSource(fakePalette{3: 0xABCD, BackdropColorIndex: 0x0000})

	// After invert, tileNumber 0 becomes 0x1F (scb1Base 62); tileNumber 1
	// becomes 0x1E (scb1Base 60). Only the fixed-index chip (62) points at a
	// tile whose CROM bytes are non-zero.
	p.VRAM[62] = 5 // tileIndex
	p.VRAM[63] = 0 // control: no flip, palette 0
	p.VRAM[60] = 9 // tileIndex
	p.VRAM[61] = 0 // control: no flip, palette 0

	p.drawSprite(0, 100, 51, 0xF, 0xFF, 50, 0)

	row := 50 - FirstActiveLine
	require.Equal(t, uint16(0xABCD), p.FrameBuffer[row*ScreenWidth+100])
}

func TestFixLayerRendersTileFromCartridgeSROM(t *testing.T) {
	p := NewPPU(nil)
	cart := &rom.Cartridge{SROM: make([]byte, 64)}
	// Tile 0, scanline 0: bytes at offsets {0x10,0x18,0x00,0x08}.
	cart.SROM[0x00] = 0x21 // left=1, right=2 -> pixels (x=4,x=5) of column block 2
	p.AttachROMs(cart, nil)
	p.SetPaletteSource(fakePalette{1: 0x1111, 2: 0x2222, BackdropColorIndex: 0x0000})

	// Scanline 16 maps to FIXMAP row 16/8=2, column 0 (matches
	// original_source/video.c's absolute-scanline row index).
	p.VRAM[vramFixMapBase+2] = 0x0000 // palette 0, tile 0

	p.RunScanline(FirstActiveLine)

	require.Equal(t, uint16(0x1111), p.FrameBuffer[4])
	require.Equal(t, uint16(0x2222), p.FrameBuffer[5])
}

func TestBackdropFillsUnclaimedPixels(t *testing.T) {
	p := NewPPU(nil)
	p.SetPaletteSource(fakePalette{BackdropColorIndex: 0x7777})
	p.RunScanline(FirstActiveLine)
	for x := 0; x < ScreenWidth; x++ {
		require.Equal(t, uint16(0x7777), p.FrameBuffer[x])
	}
}

func TestVBlankAdvancesAutoAnimationAndSetsIRQ(t *testing.T) {
	p := NewPPU(nil)
	p.autoAnimSpeed = 0
	require.False(t, p.VBlankIRQPending())
	p.RunScanline(VBlankLine)
	require.True(t, p.VBlankIRQPending())
	require.Equal(t, uint32(1), p.autoAnimCounter)
}
