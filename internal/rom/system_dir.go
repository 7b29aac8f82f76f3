package rom

import (
	"os"
	"path/filepath"
)

// LoadSystemDir implements the Host ABI's init(system_dir): reads the three
// named BIOS-family files out of dir and builds a System, per SPEC_FULL §6.
// The filenames follow the MAME neogeo.zip convention's unzipped layout.
func LoadSystemDir(dir string, isMVS bool) (*System, error) {
	programROM, err := readSystemFile(dir, "sp-s2.sp1")
	if err != nil {
		return nil, err
	}
	fixROM, err := readSystemFile(dir, "sfix.sfix")
	if err != nil {
		return nil, err
	}
	yZoomROM, err := readSystemFile(dir, "000-lo.lo")
	if err != nil {
		return nil, err
	}
	return LoadSystem(programROM, fixROM, yZoomROM, isMVS)
}

func readSystemFile(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrBiosMissing{Path: path, Err: err}
	}
	return data, nil
}
