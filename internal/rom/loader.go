package rom

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// chipPattern classifies a cartridge archive member by its MAME-style
// filename convention: a chip-letter prefix, an optional numeric suffix
// distinguishing multiple chips of the same kind, then any extension.
// Matching is case-insensitive, grounded on original_source/cartridge.c's
// cartridge_load_roms pattern table.
var chipPattern = regexp.MustCompile(`(?i)^(p|s|c|m1|v1|v2)(\d*)\.`)

type chipFile struct {
	index int
	data  []byte
}

// classify returns the chip kind ("p", "s", "c", "m1", "v1", "v2") and its
// ordinal index (0 if no digit suffix was present) for a zip member name.
func classify(name string) (kind string, index int, ok bool) {
	base := name
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	m := chipPattern.FindStringSubmatch(strings.ToLower(base))
	if m == nil {
		return "", 0, false
	}
	kind = m[1]
	if m[2] != "" {
		idx, _ := strconv.Atoi(m[2])
		index = idx
	}
	return kind, index, true
}

// LoadCart opens a ZIP-packaged Neo Geo ROM set and returns a validated,
// pre-serialized Cartridge. See SPEC_FULL.md §6 load_cart for the exact
// extraction/validation contract.
func LoadCart(data []byte) (*Cartridge, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ErrInvalidCart{Reason: "not a zip archive: " + err.Error()}
	}

	groups := map[string][]chipFile{}
	for _, f := range zr.File {
		kind, idx, ok := classify(f.Name)
		if !ok {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &ErrInvalidCart{Reason: "reading " + f.Name + ": " + err.Error()}
		}
		buf, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &ErrInvalidCart{Reason: "reading " + f.Name + ": " + err.Error()}
		}
		groups[kind] = append(groups[kind], chipFile{index: idx, data: buf})
	}

	pData, ok := concatSorted(groups["p"])
	if !ok {
		return nil, &ErrInvalidCart{Reason: "no P-ROM found"}
	}
	sData, ok := concatSorted(groups["s"])
	if !ok {
		return nil, &ErrInvalidCart{Reason: "no S-ROM found"}
	}
	cFiles := groups["c"]
	if len(cFiles) < 2 {
		return nil, &ErrInvalidCart{Reason: "C-ROM pair missing (need at least c1/c2)"}
	}
	cChips := sortedGroup(cFiles)
	m1Data, _ := concatSorted(groups["m1"])
	v1Data, _ := concatSorted(groups["v1"])
	v2Data, _ := concatSorted(groups["v2"])

	pData = byteSwapPROMIfNeeded(pData)

	cart := &Cartridge{
		SROM:  sData,
		M1ROM: m1Data,
		V1ROM: v1Data,
		V2ROM: v2Data,
	}

	if len(pData) <= PROMBankSize {
		cart.PROMBank1 = padTo(pData, PROMBankSize)
	} else {
		cart.PROMBank1 = pData[:PROMBankSize]
		rest := pData[PROMBankSize:]
		for len(rest) > 0 && len(cart.PROMBankCandidates) < MaxPROMBankCandidates {
			n := PROMBankSize
			if n > len(rest) {
				n = len(rest)
			}
			cart.PROMBankCandidates = append(cart.PROMBankCandidates, padTo(rest[:n], PROMBankSize))
			rest = rest[n:]
		}
	}

	if len(cart.PROMBank1) < NeoGeoMarkerOffset+7 ||
		string(cart.PROMBank1[NeoGeoMarkerOffset:NeoGeoMarkerOffset+7]) != "NEO-GEO" {
		return nil, &ErrInvalidCart{Reason: "NEO-GEO marker not found at P-ROM offset 0x100"}
	}

	cart.NGH = bcdWord(cart.PROMBank1[NGHOffset], cart.PROMBank1[NGHOffset+1])

	serialized, err := SerializeCROM(cChips)
	if err != nil {
		return nil, err
	}
	cart.CROM = serialized

	return cart, nil
}

// concatSorted concatenates a chip group's files in ascending index order,
// matching the hardware convention that e.g. c1/c2/c3/c4 form one logical
// ROM stream.
func concatSorted(files []chipFile) ([]byte, bool) {
	if len(files) == 0 {
		return nil, false
	}
	sorted := append([]chipFile(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })
	var out []byte
	for _, f := range sorted {
		out = append(out, f.data...)
	}
	return out, true
}

// sortedGroup returns a chip group's file contents sorted by ascending
// index, without concatenating them: used where pairing structure (not just
// byte order) matters, as with the C-ROM odd/even chip pairs.
func sortedGroup(files []chipFile) [][]byte {
	sorted := append([]chipFile(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })
	out := make([][]byte, len(sorted))
	for i, f := range sorted {
		out[i] = f.data
	}
	return out
}

// byteSwapPROMIfNeeded swaps every byte pair in the P-ROM unless the first
// word already reads 0x0010 (the M68000 reset stack-pointer MSW for any
// valid vector table), per SPEC_FULL.md §6.
func byteSwapPROMIfNeeded(p []byte) []byte {
	if len(p) < 2 || (p[0] == 0x00 && p[1] == 0x10) {
		return p
	}
	out := make([]byte, len(p))
	copy(out, p)
	for i := 0; i+1 < len(out); i += 2 {
		out[i], out[i+1] = out[i+1], out[i]
	}
	return out
}

func padTo(b []byte, size int) []byte {
	if len(b) >= size {
		return b[:size]
	}
	out := make([]byte, size)
	copy(out, b)
	return out
}

// bcdWord decodes two BCD-packed bytes into a 4-digit decimal value, as used
// by the NGH house-code field.
func bcdWord(hi, lo byte) uint16 {
	d := func(b byte) uint16 { return uint16((b>>4)&0xF)*10 + uint16(b&0xF) }
	return d(hi)*100 + d(lo)
}
