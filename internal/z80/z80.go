// Package z80 implements the sound CPU as a black-box stepping contract:
// its bank-switched memory map and NMI acknowledge/mask semantics are
// exact; full Z80 instruction decoding is out of scope (see
// SPEC_FULL.md §1).
package z80

import "nitro-core-dx/internal/mailbox"

// IOPorts is the sound CPU's I/O port space: port 0x00 reads the mailbox
// command and clears NMI as a side effect; ports 0x08-0x0B read-latch a
// ROM bank window and write-enable NMI; port 0x0C writes the mailbox
// result; port 0x18 write-disables NMI, per original_source/z80intf.c.
type IOPorts struct {
	Mem     *MappedMemory
	Mailbox *mailbox.SoundMailbox

	nmiMasked bool
}

// ReadPort services an I/O port read. port is the full 16-bit I/O
// address: the low byte selects the port, the high byte (for bank-select
// ports) carries the bank number to latch, matching how the Z80's IN
// instruction presents both halves of BC on the address bus. Reading the
// bank-select ports only latches the bank window; it has no effect on the
// NMI mask.
func (p *IOPorts) ReadPort(port uint16) uint8 {
	low := uint8(port)
	switch {
	case low == 0x00:
		if p.Mailbox != nil {
			return p.Mailbox.ReadCommand()
		}
		return 0
	case low >= 0x08 && low <= 0x0B:
		bank := uint8(port >> 8)
		if p.Mem != nil {
			p.Mem.LatchBank(int(low-0x08), bank)
		}
		return bank
	default:
		return 0xFF
	}
}

// WritePort services an I/O port write: storing the mailbox result
// (0x0C), enabling NMI (0x08-0x0B), or disabling it (0x18).
func (p *IOPorts) WritePort(port uint16, value uint8) {
	low := uint8(port)
	switch {
	case low == 0x0C:
		if p.Mailbox != nil {
			p.Mailbox.WriteResult(value)
		}
	case low >= 0x08 && low <= 0x0B:
		p.nmiMasked = false
	case low == 0x18:
		p.nmiMasked = true
	}
}

// NMIAsserted reports whether the mailbox's pending command should raise
// the Z80's NMI line right now.
func (p *IOPorts) NMIAsserted() bool {
	return !p.nmiMasked && p.Mailbox != nil && p.Mailbox.NMIPending()
}

// CPU is the Z80 stepping-contract consumer.
type CPU struct {
	PC     uint16
	Halted bool
	Cycles uint64

	Mem *MappedMemory
	IO  *IOPorts
}

// New constructs a Z80 bound to the given bank-switched memory map and
// mailbox.
func New(mem *MappedMemory, mb *mailbox.SoundMailbox) *CPU {
	return &CPU{
		Mem: mem,
		IO:  &IOPorts{Mem: mem, Mailbox: mb},
	}
}

// Reset sets PC to the Z80 reset vector, 0x0000, the fixed window's first
// byte.
func (c *CPU) Reset() {
	c.PC = 0
	c.Halted = false
	c.Cycles = 0
}

// Execute advances by up to budget cycles, servicing a pending NMI at the
// start of the slice by jumping to the NMI vector (0x0066) and clearing
// Halted, matching the real chip waking from a HALT instruction on NMI.
// It does not decode Z80 instructions (out of scope); see cpu.CPU.Execute
// for the identical contract on the main side.
func (c *CPU) Execute(budget int) (int, error) {
	if budget <= 0 {
		return 0, nil
	}
	if c.IO != nil && c.IO.NMIAsserted() {
		c.PC = 0x0066
		c.Halted = false
	}
	c.Cycles += uint64(budget)
	return budget, nil
}
