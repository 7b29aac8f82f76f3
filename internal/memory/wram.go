package memory

// WorkRAM is the 64 KiB big-endian work RAM region.
type WorkRAM [64 * 1024]uint8

func (w *WorkRAM) Read8(offset uint32) uint8 {
	return w[offset%uint32(len(w))]
}

func (w *WorkRAM) Write8(offset uint32, value uint8) {
	w[offset%uint32(len(w))] = value
}

// BackupRAM is the 64 KiB battery-backed settings RAM region. Unlike work
// RAM it is not byte-swapped at load (it has no load step at all: it is
// zero-initialized and persists only for the session, per the save-state
// non-goal).
type BackupRAM [64 * 1024]uint8

func (r *BackupRAM) Read8(offset uint32) uint8 {
	return r[offset%uint32(len(r))]
}

func (r *BackupRAM) Write8(offset uint32, value uint8) {
	r[offset%uint32(len(r))] = value
}

// MemCard is the memory-card pseudo-RAM window. The real AES memory-card
// protocol is a non-goal; this behaves as plain battery-backed storage.
type MemCard [8 * 1024 * 1024]uint8

func (m *MemCard) Read8(offset uint32) uint8 {
	return m[offset%uint32(len(m))]
}

func (m *MemCard) Write8(offset uint32, value uint8) {
	m[offset%uint32(len(m))] = value
}
