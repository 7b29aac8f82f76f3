package memory

// PaletteRAM holds both palette banks (A/B); only the bank selected via
// PALBANK0/PALBANK1 is visible through the palette address window, matching
// the "idempotent toggle, reads reflect current selection only" invariant.
type PaletteRAM struct {
	Banks       [2][8192]uint8
	activeBank  int
	shadowRGB16 [2][4096]uint16 // cached RGB565, one entry per color (2 bytes/color)
}

// SelectBank switches which bank the address window and RGB cache serve.
func (p *PaletteRAM) SelectBank(bank int) {
	if bank != 0 && bank != 1 {
		bank = 0
	}
	p.activeBank = bank
}

func (p *PaletteRAM) Read8(offset uint32) uint8 {
	return p.Banks[p.activeBank][offset%8192]
}

func (p *PaletteRAM) Write8(offset uint32, value uint8) {
	idx := offset % 8192
	p.Banks[p.activeBank][idx] = value
	p.refreshColor(p.activeBank, idx/2)
}

// Color returns the live RGB565 value for color index i (0..4095) in the
// currently active bank, as consumed directly by the raster without a
// per-pixel little-endian reassembly.
func (p *PaletteRAM) Color(i uint32) uint16 {
	return p.shadowRGB16[p.activeBank][i%4096]
}

func (p *PaletteRAM) refreshColor(bank int, colorIndex uint32) {
	lo := p.Banks[bank][colorIndex*2]
	hi := p.Banks[bank][colorIndex*2+1]
	// VRAM/palette RAM is little-endian on real hardware.
	word := uint16(lo) | uint16(hi)<<8
	p.shadowRGB16[bank][colorIndex%4096] = neogeoColorToRGB565(word)
}

// neogeoColorToRGB565 expands the Neo Geo's packed 16-bit palette word
// (1-bit dark flag, 5-bit R/G/B with a shared low-bit "half" mix bit) into
// a straightforward RGB565 value for presentation.
func neogeoColorToRGB565(word uint16) uint16 {
	dark := (word >> 15) & 1
	r := (word >> 10) & 0x1F
	g := (word >> 5) & 0x1F
	b := word & 0x1F
	if dark != 0 {
		r >>= 1
		g >>= 1
		b >>= 1
	}
	r5 := r
	g6 := (g << 1) | (g >> 4)
	b5 := b
	return (r5 << 11) | (g6 << 5) | b5
}
