package ppu

// VRAM region bases, per SPEC_FULL §6 / original_source/video.c.
const (
	vramSCB1Base   = 0x0000
	vramFixMapBase = 0x7000
	vramSCB2Base   = 0x8000
	vramSCB3Base   = 0x8200
	vramSCB4Base   = 0x8400
)

// fixOffsetMapping is the S-ROM's oddly-interleaved column byte order for
// one 8x8 tile's 8 scanline rows, per original_source/video.c's
// fix_framebuffer_offset_mapping.
var fixOffsetMapping = [4]uint8{0x10, 0x18, 0x00, 0x08}

// RunScanline renders one scanline into FrameBuffer (backdrop, sprites,
// fix layer, in back-to-front order) and, at the VBlank line, advances
// auto-animation and services the frame-start timer reload.
func (p *PPU) RunScanline(scanline uint32) {
	p.currentScanline = scanline

	if scanline >= FirstActiveLine && scanline < VBlankLine {
		p.drawBackdrop(scanline)
		list := p.buildSpriteList(scanline)
		p.drawSprites(scanline, list)
		p.drawFixLayer(scanline)
	}

	if scanline == VBlankLine {
		p.pendingIRQ |= IRQVBlank
		p.advanceAutoAnimation()
		if p.timerControl&timerCtrlReloadFrameStart != 0 {
			p.reloadTimer()
		}
	}
}

func (p *PPU) advanceAutoAnimation() {
	if p.autoAnimDisabled {
		return
	}
	p.autoAnimFrameCounter++
	if p.autoAnimFrameCounter > uint32(p.autoAnimSpeed) {
		p.autoAnimFrameCounter = 0
		p.autoAnimCounter++
	}
}

// buildSpriteList walks the SCB3 table once, honoring the sticky-bit chain
// (a sticky sprite reuses the last non-sticky sprite's y/verticalSize), and
// collects up to MaxSpritesPerLine indices on-screen at this scanline.
func (p *PPU) buildSpriteList(scanline uint32) []uint16 {
	list := make([]uint16, 0, MaxSpritesPerLine)
	y := uint32(0)
	verticalSize := uint32(32)

	for n := 0; n < MaxSpritesPerScreen; n++ {
		idx := uint32(n)
		if int(vramSCB3Base+idx) >= len(p.VRAM) {
			break
		}
		attrs := p.VRAM[vramSCB3Base+idx]
		if attrs&0x0040 == 0 {
			y = (496 - uint32(attrs>>7)) + 16
			verticalSize = uint32(attrs) & 0x3F
		}

		onLine := verticalSize != 0 && (verticalSize >= 0x20 || ((scanline-y)&0x1FF) < verticalSize*0x10)
		if !onLine {
			continue
		}
		list = append(list, uint16(n))
		if len(list) >= MaxSpritesPerLine {
			break
		}
	}
	return list
}

// drawSprites rasters a scanline's sprite list in order, resolving each
// sprite's (x, y, zoomX, zoomY, clip) per the sticky chain, matching
// original_source/video.c's video_draw_sprites.
func (p *PPU) drawSprites(scanline uint32, list []uint16) {
	for _, spriteNumber := range list {
		idx := uint32(spriteNumber)
		if int(vramSCB2Base+idx) >= len(p.VRAM) || int(vramSCB3Base+idx) >= len(p.VRAM) {
			continue
		}
		shrink := p.VRAM[vramSCB2Base+idx]
		vpos := p.VRAM[vramSCB3Base+idx]

		if vpos&0x0040 != 0 {
			p.spriteX = (p.spriteX + p.spriteZoomX + 1) & 0x1FF
			p.spriteZoomX = uint32(shrink>>8) & 0xF
		} else {
			if int(vramSCB4Base+idx) >= len(p.VRAM) {
				continue
			}
			hpos := p.VRAM[vramSCB4Base+idx]
			p.spriteZoomY = uint32(shrink) & 0xFF
			p.spriteZoomX = (uint32(shrink) & 0x0F00) >> 8
			p.spriteClip = uint32(vpos) & 0x3F
			p.spriteY = (496 - uint32(vpos>>7)) + 16
			p.spriteX = uint32(hpos) >> 7
		}

		p.drawSprite(spriteNumber, p.spriteX, p.spriteY, p.spriteZoomX, p.spriteZoomY, scanline, p.spriteClip)
	}
}

// drawSprite blits one 16-pixel sprite line, resolving the tile/line
// through the Y-zoom ROM and the tall-sprite double-pump, then reading the
// pixel quartet from the pre-serialized C-ROM.
func (p *PPU) drawSprite(spriteNumber uint16, x, y, zoomX, zoomY, scanline, clip uint32) {
	if p.System == nil || p.System.YZoomROM == nil || p.Cart == nil || p.Cart.CROM == nil || p.Palette == nil {
		return
	}

	spriteLine := (scanline - y) & 0x1FF
	zoomLine := spriteLine & 0xFF
	invert := spriteLine&0x100 != 0

	if invert {
		zoomLine ^= 0xFF
	}

	if clip > 0x20 {
		period := (zoomY + 1) * 2
		zoomLine = zoomLine % period
		if zoomLine > zoomY {
			zoomLine = period - 1 - zoomLine
			invert = !invert
		}
	}

	yzIdx := zoomY*256 + zoomLine
	if int(yzIdx) >= len(p.System.YZoomROM) {
		return
	}
	entry := uint32(p.System.YZoomROM[yzIdx])
	tileLine := entry & 0xF
	tileNumber := entry >> 4

	if invert {
		tileLine ^= 0x0F
		tileNumber ^= 0x1F
	}

	scb1Base := uint32(spriteNumber)*64 + tileNumber*2
	if int(scb1Base+1) >= len(p.VRAM) {
		return
	}
	tileIndex := uint32(p.VRAM[scb1Base])
	control := uint32(p.VRAM[scb1Base+1])
	tileIndex += (control & 0x00F0) << 12

	if control&0x02 != 0 {
		tileLine ^= 0x0F
	}
	if !p.autoAnimDisabled {
		if control&0x0008 != 0 {
			tileIndex = (tileIndex &^ 0x07) | (p.autoAnimCounter & 0x07)
		} else if control&0x0004 != 0 {
			tileIndex = (tileIndex &^ 0x03) | (p.autoAnimCounter & 0x03)
		}
	}

	pixelsOffset := tileIndex*128 + tileLine*8
	if int(pixelsOffset+8) > len(p.Cart.CROM) {
		return
	}
	paletteBase := (control >> 8) * 16

	xCursor := int32(x)
	if x > 0x1F0 {
		xCursor -= 0x200
	}
	increment := int32(1)
	if control&0x01 != 0 {
		xCursor += int32(zoomX)
		increment = -1
	}

	rowBase := int32(scanline-FirstActiveLine) * ScreenWidth
	shrinkBase := zoomX * 16

	for i := uint32(0); i < 16; i++ {
		if xShrinkTable[shrinkBase+i] != 0 {
			b := p.Cart.CROM[pixelsOffset+i/2]
			var colorIndex uint8
			if i%2 == 0 {
				colorIndex = b >> 4
			} else {
				colorIndex = b & 0x0F
			}
			if colorIndex != 0 && xCursor >= 0 && xCursor < ScreenWidth {
				fbIdx := rowBase + xCursor
				if fbIdx >= 0 && int(fbIdx) < len(p.FrameBuffer) {
					p.FrameBuffer[fbIdx] = p.Palette.Color(paletteBase + uint32(colorIndex))
				}
			}
			xCursor += increment
		}
	}
}

// drawFixLayer renders the 40x32 8x8 fix-tile layer for one scanline,
// reading from the system SFIX ROM or cartridge S-ROM depending on the
// BRDFIX/CRTFIX selection.
func (p *PPU) drawFixLayer(scanline uint32) {
	if p.Palette == nil {
		return
	}
	var fixROM []byte
	if p.UseSystemFix {
		if p.System == nil {
			return
		}
		fixROM = p.System.FixROM
	} else {
		if p.Cart == nil {
			return
		}
		fixROM = p.Cart.SROM
	}
	if fixROM == nil {
		return
	}

	row := scanline / 8
	rowBase := int32(scanline-FirstActiveLine) * ScreenWidth

	for col := uint32(0); col < 40; col++ {
		vramIdx := vramFixMapBase + col*32 + row
		if int(vramIdx) >= len(p.VRAM) {
			continue
		}
		fix := p.VRAM[vramIdx]
		paletteBase := (uint32(fix>>12) & 0xF) * 16
		tileNumber := uint32(fix) & 0x0FFF
		tileBase := tileNumber*32 + (scanline % 8)

		for col2 := 0; col2 < 4; col2++ {
			byteIdx := tileBase + uint32(fixOffsetMapping[col2])
			if int(byteIdx) >= len(fixROM) {
				continue
			}
			pair := fixROM[byteIdx]
			left := pair & 0x0F
			right := pair >> 4
			x := int32(col)*8 + int32(col2)*2

			if left != 0 {
				if fbIdx := rowBase + x; fbIdx >= 0 && int(fbIdx) < len(p.FrameBuffer) {
					p.FrameBuffer[fbIdx] = p.Palette.Color(paletteBase + uint32(left))
				}
			}
			if right != 0 {
				if fbIdx := rowBase + x + 1; fbIdx >= 0 && int(fbIdx) < len(p.FrameBuffer) {
					p.FrameBuffer[fbIdx] = p.Palette.Color(paletteBase + uint32(right))
				}
			}
		}
	}
}

// drawBackdrop fills a scanline with the backdrop color (the last color of
// the active palette bank) before sprites/fix are painted over it.
func (p *PPU) drawBackdrop(scanline uint32) {
	if p.Palette == nil {
		return
	}
	color := p.Palette.Color(BackdropColorIndex)
	rowBase := int32(scanline-FirstActiveLine) * ScreenWidth
	for x := int32(0); x < ScreenWidth; x++ {
		if fbIdx := rowBase + x; fbIdx >= 0 && int(fbIdx) < len(p.FrameBuffer) {
			p.FrameBuffer[fbIdx] = color
		}
	}
}
