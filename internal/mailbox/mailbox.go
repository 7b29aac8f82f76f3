// Package mailbox implements the main-CPU/sound-CPU command mailbox: a
// byte-wide bidirectional register pair with NMI delivery semantics, shared
// by the memory bus's SOUND register and the Z80's I/O port 0x00/0x0C.
package mailbox

// SoundMailbox is the single shared instance both CPUs' bus code reaches
// into. It has no stepping of its own; it is pure shared state plus the
// NMI-acknowledge side effect described in SPEC_FULL §4.7.
type SoundMailbox struct {
	cmd        uint8
	result     uint8
	nmiPending bool
}

// WriteCommand is the main CPU's write to REG_SOUND: stores cmd and raises
// the pending NMI line.
func (m *SoundMailbox) WriteCommand(cmd uint8) {
	m.cmd = cmd
	m.nmiPending = true
}

// ReadCommand is the Z80's read of I/O port 0x00: returns the stored
// command and, as a side effect, acknowledges (clears) the pending NMI.
func (m *SoundMailbox) ReadCommand() uint8 {
	m.nmiPending = false
	return m.cmd
}

// WriteResult is the Z80's write to I/O port 0x0C.
func (m *SoundMailbox) WriteResult(v uint8) { m.result = v }

// ReadResult is the main CPU's read of REG_SOUND.
func (m *SoundMailbox) ReadResult() uint8 { return m.result }

// NMIPending reports whether the Z80's NMI line is currently asserted.
func (m *SoundMailbox) NMIPending() bool { return m.nmiPending }

// Reset clears both register halves and drops any pending NMI, matching
// the host's reset() contract ("in-flight timers/state are cleared").
func (m *SoundMailbox) Reset() {
	m.cmd = 0
	m.result = 0
	m.nmiPending = false
}
