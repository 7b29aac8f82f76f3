package rom

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildZip packs a set of named byte blobs into an in-memory ZIP archive,
// mimicking a MAME-style ROM set.
func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// validPROM builds a minimal 1 MiB P-ROM image already in native (swapped)
// byte order: reset SP MSW 0x0010 at offset 0, "NEO-GEO" marker at 0x100,
// BCD NGH 0043 at 0x108.
func validPROM() []byte {
	p := make([]byte, PROMBankSize)
	p[0], p[1] = 0x00, 0x10
	copy(p[NeoGeoMarkerOffset:], "NEO-GEO")
	p[NGHOffset] = 0x00
	p[NGHOffset+1] = 0x43
	return p
}

func cRomPairTile() (even, odd []byte) {
	// One tile's worth of two chips, all bits set to exercise every plane.
	even = make([]byte, 64)
	odd = make([]byte, 64)
	for i := range even {
		even[i] = 0xFF
		odd[i] = 0xFF
	}
	return even, odd
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		wantKind  string
		wantIndex int
		wantOK    bool
	}{
		{"p1.p1", "p", 1, true},
		{"P2.bin", "p", 2, true},
		{"s1.s1", "s", 1, true},
		{"c1.c1", "c", 1, true},
		{"c12.bin", "c", 12, true},
		{"m1.m1", "m1", 0, true},
		{"v1.v1", "v1", 0, true},
		{"v21.bin", "v2", 1, true},
		{"readme.txt", "", 0, false},
	}
	for _, tc := range cases {
		kind, idx, ok := classify(tc.name)
		require.Equal(t, tc.wantOK, ok, tc.name)
		if !tc.wantOK {
			continue
		}
		require.Equal(t, tc.wantKind, kind, tc.name)
		require.Equal(t, tc.wantIndex, idx, tc.name)
	}
}

func TestByteSwapPROMIfNeeded(t *testing.T) {
	alreadySwapped := []byte{0x00, 0x10, 0xAB, 0xCD}
	require.Equal(t, alreadySwapped, byteSwapPROMIfNeeded(alreadySwapped))

	needsSwap := []byte{0x10, 0x00, 0xCD, 0xAB}
	want := []byte{0x00, 0x10, 0xAB, 0xCD}
	require.Equal(t, want, byteSwapPROMIfNeeded(needsSwap))
}

func TestBCDWord(t *testing.T) {
	require.Equal(t, uint16(43), bcdWord(0x00, 0x43))
	require.Equal(t, uint16(1234), bcdWord(0x12, 0x34))
}

func TestLoadCartMinimalSet(t *testing.T) {
	even, odd := cRomPairTile()
	data := buildZip(t, map[string][]byte{
		"p1.p1": validPROM(),
		"s1.s1": make([]byte, FixTileBytes),
		"c1.c1": even,
		"c2.c2": odd,
	})

	cart, err := LoadCart(data)
	require.NoError(t, err)
	require.Equal(t, uint16(43), cart.NGH)
	require.Len(t, cart.PROMBank1, PROMBankSize)
	require.Empty(t, cart.PROMBankCandidates)
	require.Len(t, cart.CROM, CROMTileBytes)
	for _, b := range cart.CROM {
		require.Equal(t, byte(0xFF), b, "all-ones chip pair should decode to all-ones nibbles")
	}
}

func TestLoadCartSplitsOversizedPROMAcrossBankCandidates(t *testing.T) {
	even, odd := cRomPairTile()
	bigP := append(validPROM(), make([]byte, PROMBankSize+PROMBankSize/2)...)
	data := buildZip(t, map[string][]byte{
		"p1.p1": bigP,
		"s1.s1": make([]byte, FixTileBytes),
		"c1.c1": even,
		"c2.c2": odd,
	})

	cart, err := LoadCart(data)
	require.NoError(t, err)
	require.Len(t, cart.PROMBank1, PROMBankSize)
	require.Len(t, cart.PROMBankCandidates, 2)
	require.Len(t, cart.PROMBankCandidates[0], PROMBankSize)
}

func TestLoadCartRejectsMissingMarker(t *testing.T) {
	badP := make([]byte, PROMBankSize)
	badP[0], badP[1] = 0x00, 0x10
	even, odd := cRomPairTile()
	data := buildZip(t, map[string][]byte{
		"p1.p1": badP,
		"s1.s1": make([]byte, FixTileBytes),
		"c1.c1": even,
		"c2.c2": odd,
	})

	_, err := LoadCart(data)
	require.Error(t, err)
	var invalid *ErrInvalidCart
	require.ErrorAs(t, err, &invalid)
}

func TestLoadCartRequiresCROMPair(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"p1.p1": validPROM(),
		"s1.s1": make([]byte, FixTileBytes),
	})

	_, err := LoadCart(data)
	require.Error(t, err)
}
