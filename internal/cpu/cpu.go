// Package cpu implements the main CPU as a black-box stepping contract: its
// host-visible surface (registers, reset/vector fetch, interrupt
// acknowledgement, the Execute budget contract) is exact; full M68000
// instruction decoding is out of scope (see SPEC_FULL.md §1) and is not
// attempted here.
package cpu

import "nitro-core-dx/internal/memory"

// State is the visible M68000 register file.
type State struct {
	D [8]uint32 // data registers D0-D7
	A [8]uint32 // address registers A0-A7 (A7 is the active stack pointer)
	PC uint32
	SR uint16 // status register: T-S--III---XNZVC

	Cycles uint64
	Halted bool
}

// Status register bits this core cares about.
const (
	SRTrace    = 1 << 15
	SRSupervisor = 1 << 13
	SRIntMask  = 0x0700
)

// CPU is the main-CPU stepping contract consumer: Bus-driving reset/vector
// fetch and interrupt acknowledgement, without instruction decode.
type CPU struct {
	State  State
	Bus    *memory.Bus
	Logger *LoggerAdapter

	pendingIRQLevel int
}

// New constructs a CPU wired to bus.
func New(bus *memory.Bus, logger *LoggerAdapter) *CPU {
	return &CPU{Bus: bus, Logger: logger}
}

// Reset performs the M68000 reset sequence: supervisor stack pointer from
// vector 0, program counter from vector 1, both big-endian longs at the
// head of whichever P-ROM/system ROM the vector-source flag currently
// selects (handled transparently by Bus.readPROMBank1).
func (c *CPU) Reset() {
	c.State = State{}
	c.State.SR = SRSupervisor | SRIntMask
	if c.Bus == nil {
		return
	}
	sp, err := c.Bus.Read32(0)
	if err == nil {
		c.State.A[7] = sp
	}
	pc, err := c.Bus.Read32(4)
	if err == nil {
		c.State.PC = pc
	}
}

// RaiseIRQ requests an interrupt at the given priority level (1-7); the
// next Execute call services it if not masked by SR's interrupt-priority
// field, matching the stepping-contract hook the video IRQs rely on.
func (c *CPU) RaiseIRQ(level int) {
	if level > c.pendingIRQLevel {
		c.pendingIRQLevel = level
	}
}

// Execute advances the CPU by up to budget cycles and returns how many
// were actually spent. It does not decode M68000 instructions (out of
// scope); it services pending IRQs against SR's interrupt mask and
// otherwise accounts for elapsed cycles uniformly, enough to keep the bus,
// vector fetch, and interrupt-acknowledge semantics the rest of the core
// depends on exercised and testable.
func (c *CPU) Execute(budget int) (int, error) {
	if budget <= 0 {
		return 0, nil
	}
	if c.State.Halted {
		c.State.Cycles += uint64(budget)
		return budget, nil
	}

	if c.pendingIRQLevel > 0 {
		mask := int((c.State.SR & SRIntMask) >> 8)
		if c.pendingIRQLevel > mask {
			c.serviceIRQ(c.pendingIRQLevel)
			c.pendingIRQLevel = 0
		}
	}

	c.State.Cycles += uint64(budget)
	c.Logger.logTrace(c.State, budget)
	return budget, nil
}

// serviceIRQ pushes SR/PC onto the supervisor stack and raises the
// interrupt priority mask, the visible half of M68000 exception entry.
func (c *CPU) serviceIRQ(level int) {
	if c.Bus == nil {
		return
	}
	c.State.A[7] -= 4
	_ = c.Bus.Write32(c.State.A[7], c.State.PC)
	c.State.A[7] -= 2
	_ = c.Bus.Write16(c.State.A[7], c.State.SR)
	c.State.SR = (c.State.SR &^ SRIntMask) | uint16(level<<8) | SRSupervisor
	vectorAddr := uint32(0x60 + level*4) // autovector #level
	if pc, err := c.Bus.Read32(vectorAddr); err == nil {
		c.State.PC = pc
	}
	c.Logger.logIRQ(level, c.State)
}
