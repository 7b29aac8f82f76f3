// Package apu implements the Neo Geo sound chip, a YM2610: 4 FM channels
// of 4 operators each, an embedded SSG, 6-voice ADPCM-A sample playback,
// and a single ADPCM-B (DELTA-T) voice, per SPEC_FULL §4.8. The FM/SSG/
// ADPCM synthesis matches the real chip's shape (register layout, voice
// count, envelope/phase structure) without claiming bit-exact output —
// the same license this core's main CPU and RTC emulation document.
package apu

import "nitro-core-dx/internal/debug"

// APU is the sound chip behind a 4-port ReadPort/WritePort surface (port
// number taken modulo 4). The z80 package's IOPorts does not forward any
// sound-CPU I/O port to it; callers drive these methods directly.
type APU struct {
	Chip   *YM2610
	logger *debug.Logger
}

// New constructs an APU backed by the cartridge's V1 (ADPCM-A) and V2
// (ADPCM-B) sample ROMs.
func New(sampleRate uint32, v1rom, v2rom []byte, logger *debug.Logger) *APU {
	return &APU{
		Chip:   NewYM2610(sampleRate, v1rom, v2rom, logger),
		logger: logger,
	}
}

// ReadPort services a Z80 IN from one of the chip's 4 ports.
func (a *APU) ReadPort(port uint8) uint8 {
	return a.Chip.ReadPort(port & 3)
}

// WritePort services a Z80 OUT to one of the chip's 4 ports.
func (a *APU) WritePort(port uint8, value uint8) {
	a.Chip.WritePort(port&3, value)
}

// Step advances the chip's timer state by cycles sound-chip clock ticks.
func (a *APU) Step(cycles uint64) {
	a.Chip.Step(cycles)
}

// IRQPending reports whether the chip's FM timers are requesting the
// Z80's interrupt line.
func (a *APU) IRQPending() bool {
	return a.Chip.IRQPending()
}

// GenerateSample produces the next mono PCM sample at the APU's
// configured sample rate.
func (a *APU) GenerateSample() int16 {
	return a.Chip.GenerateSample()
}

// GenerateSamples fills count consecutive samples, typically called once
// per video frame.
func (a *APU) GenerateSamples(count int) []int16 {
	out := make([]int16, count)
	for i := range out {
		out[i] = a.Chip.GenerateSample()
	}
	return out
}
