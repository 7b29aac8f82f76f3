package rom

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
)

// CartBuilder assembles a synthetic, minimal-but-valid Neo Geo cartridge
// archive: the handful of named ROM chip members LoadCart's classify()
// recognizes (p1, s1, c1/c2, m1, v1, v2), built up in memory and written out
// as a ZIP file a romtool consumer or a test can feed straight back into
// LoadCart. It exists for test-fixture and tooling use, not for emulation.
type CartBuilder struct {
	ngh            uint16
	prom, srom     []byte
	c1, c2         []byte
	m1, v1, v2     []byte
}

// NewCartBuilder starts a builder for a cartridge with the given NGH
// (house) code; P-ROM defaults to one bank, pre-stamped with the NEO-GEO
// marker and the NGH, everything else empty until the With* calls below.
func NewCartBuilder(ngh uint16) *CartBuilder {
	b := &CartBuilder{ngh: ngh}
	b.prom = make([]byte, PROMBankSize)
	// Default reset SP at the start of work RAM: its MSW 0x0010 is what tells
	// LoadCart the image is already in load order (no byte swap).
	putLong(b.prom[0:4], 0x00100000)
	copy(b.prom[NeoGeoMarkerOffset:], []byte("NEO-GEO"))
	b.prom[NGHOffset] = bcdByte(uint8(ngh / 100))
	b.prom[NGHOffset+1] = bcdByte(uint8(ngh % 100))
	return b
}

// WithProgram overwrites the P-ROM bank-1 image entirely (still re-stamping
// the marker/NGH afterward, so the caller's data doesn't need to carry
// them).
func (b *CartBuilder) WithProgram(data []byte) *CartBuilder {
	b.prom = padTo(data, PROMBankSize)
	copy(b.prom[NeoGeoMarkerOffset:], []byte("NEO-GEO"))
	b.prom[NGHOffset] = bcdByte(uint8(b.ngh / 100))
	b.prom[NGHOffset+1] = bcdByte(uint8(b.ngh % 100))
	return b
}

// WithResetVectors sets the P-ROM's first two longwords: the initial
// supervisor stack pointer and the initial program counter.
func (b *CartBuilder) WithResetVectors(sp, pc uint32) *CartBuilder {
	putLong(b.prom[0:4], sp)
	putLong(b.prom[4:8], pc)
	return b
}

// WithFix sets the S-ROM (fix-tile) image.
func (b *CartBuilder) WithFix(data []byte) *CartBuilder {
	b.srom = data
	return b
}

// WithSprites sets the C-ROM odd/even chip pair (pre-interleave; SerializeCROM
// runs when the archive is loaded back through LoadCart, not here).
func (b *CartBuilder) WithSprites(c1, c2 []byte) *CartBuilder {
	b.c1, b.c2 = c1, c2
	return b
}

// WithSound sets the Z80 program ROM (M1) and the two ADPCM sample ROMs.
func (b *CartBuilder) WithSound(m1, v1, v2 []byte) *CartBuilder {
	b.m1, b.v1, b.v2 = m1, v1, v2
	return b
}

// Bytes serializes the cartridge to an in-memory ZIP archive.
func (b *CartBuilder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	members := []struct {
		name string
		data []byte
	}{
		{"p1.p1", b.prom},
		{"s1.s1", b.srom},
		{"c1.c1", b.c1},
		{"c2.c2", b.c2},
		{"m1.m1", b.m1},
		{"v1.v1", b.v1},
		{"v2.v2", b.v2},
	}
	for _, m := range members {
		if len(m.data) == 0 {
			continue
		}
		w, err := zw.Create(m.name)
		if err != nil {
			return nil, fmt.Errorf("cart builder: creating %s: %w", m.name, err)
		}
		if _, err := w.Write(m.data); err != nil {
			return nil, fmt.Errorf("cart builder: writing %s: %w", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("cart builder: closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile serializes and writes the cartridge archive to path.
func (b *CartBuilder) WriteFile(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func bcdByte(decimal uint8) byte {
	return byte((decimal/10)<<4 | (decimal % 10))
}

func putLong(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}
