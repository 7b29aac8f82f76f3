package rom

import "errors"

var errEmptyFile = errors.New("file is empty")

// LoadSystem builds the BIOS-family System from three already-read files:
// the system program ROM, the board's SFIX fix-tile ROM, and the Y-zoom
// lookup table. Unlike cartridge P-ROM, the BIOS program ROM's endianness is
// fixed by convention (no "first word" heuristic) since it ships as a single
// known dump; callers are expected to have byte-swapped it at rest if their
// source file needs it.
func LoadSystem(programROM, fixROM, yZoomROM []byte, isMVS bool) (*System, error) {
	if len(programROM) == 0 {
		return nil, &ErrBiosMissing{Path: "system program ROM", Err: errEmptyFile}
	}
	if len(fixROM) == 0 {
		return nil, &ErrBiosMissing{Path: "SFIX ROM", Err: errEmptyFile}
	}
	if len(yZoomROM) != YZoomROMSize {
		return nil, &ErrInvalidCart{Reason: "Y-zoom ROM must be exactly 64 KiB"}
	}

	return &System{
		ProgramROM: programROM,
		FixROM:     fixROM,
		YZoomROM:   yZoomROM,
		IsMVS:      isMVS,
	}, nil
}
