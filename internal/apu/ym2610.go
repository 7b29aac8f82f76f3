package apu

import "nitro-core-dx/internal/debug"

// YM2610 is the Neo Geo sound chip: 4 audible FM channels (4 operators
// each), an embedded SSG, a 6-voice ADPCM-A unit fed from the V1 ROM, and
// a single ADPCM-B (DELTA-T) voice fed from the V2 ROM, addressed through
// two address/data port pairs exactly as original_source/ym2610.c's
// ym2610_write/ym2610_read dispatch on (a&3).
type YM2610 struct {
	logger *debug.Logger

	addrA uint8
	addrB uint8

	FM [fmChannelCount]fmChannel

	SSG    *ssg
	ADPCMA *adpcmA
	ADPCMB *adpcmB

	sampleRate uint32
	irq        bool

	timerARaw uint16
	timerBRaw uint8
	timerAOn  bool
	timerBOn  bool
	timerAIRQ bool
	timerBIRQ bool
	timerAAcc uint64
	timerBAcc uint64
	status    uint8
}

const (
	ym2610StatusTimerA = 1 << 0
	ym2610StatusTimerB = 1 << 1
)

// NewYM2610 constructs a chip instance. v1rom/v2rom back the ADPCM-A and
// ADPCM-B sample playback units respectively.
func NewYM2610(sampleRate uint32, v1rom, v2rom []byte, logger *debug.Logger) *YM2610 {
	y := &YM2610{
		logger:     logger,
		sampleRate: sampleRate,
		SSG:        newSSG(),
		ADPCMA:     newADPCMA(),
		ADPCMB:     newADPCMB(),
	}
	y.ADPCMA.Samples = v1rom
	y.ADPCMB.Samples = v2rom
	return y
}

// WritePort writes the register-set port addressed by a&3, mirroring
// ym2610_write's dispatch: 0=address A, 1=data A (SSG/DELTA-T/mode/FM1-2),
// 2=address B, 3=data B (FM3-4/ADPCM-A).
func (y *YM2610) WritePort(a uint8, v uint8) {
	switch a & 3 {
	case 0:
		y.addrA = v
	case 1:
		addr := y.addrA
		switch {
		case addr < 0x10:
			y.SSG.WriteReg(addr, v)
		case addr >= 0x10 && addr <= 0x1C:
			y.ADPCMB.WriteReg(addr-0x10, v)
		case addr&0xF0 == 0x20 && addr == 0x28:
			y.KeyOn(v)
		case addr&0xF0 == 0x20:
			// mode register group: timer start/stop/reset bits (0x24-0x27).
			y.writeModeReg(v)
		default:
			y.writeFMReg(0, addr, v)
		}
	case 2:
		y.addrB = v
	case 3:
		addr := y.addrB
		if addr < 0x30 {
			y.ADPCMA.WriteReg(addr, v)
		} else {
			y.writeFMReg(1, addr, v)
		}
	}
}

// ReadPort reads the register-set port addressed by a&3, mirroring
// ym2610_read: 0=status0 (timer flags), 1=SSG data, 2=ADPCM status,
// 3=unused.
func (y *YM2610) ReadPort(a uint8) uint8 {
	switch a & 3 {
	case 0:
		return y.status & 0x83
	case 1:
		if y.addrA < 0x10 {
			return y.SSG.ReadReg()
		}
		return 0
	case 2:
		v := y.ADPCMA.arrivedMask
		if y.ADPCMB.EndOfSample() {
			v |= 0x80
		}
		return v
	default:
		return 0
	}
}

func (y *YM2610) writeModeReg(v uint8) {
	switch y.addrA {
	case 0x24:
		y.timerARaw = (y.timerARaw & 0x0003) | uint16(v)<<2
	case 0x25:
		y.timerARaw = (y.timerARaw &^ 0x0003) | uint16(v&0x03)
	case 0x26:
		y.timerBRaw = v
	case 0x27:
		y.timerAOn = v&0x01 != 0
		y.timerBOn = v&0x02 != 0
		if v&0x04 != 0 {
			y.status &^= ym2610StatusTimerA
		}
		if v&0x08 != 0 {
			y.status &^= ym2610StatusTimerB
		}
		y.timerAIRQ = v&0x10 != 0
		y.timerBIRQ = v&0x20 != 0
	}
}

// writeFMReg routes an FM operator/channel register write to one of the
// device's 4 audible channels. set selects the A/B register group (the
// Neo Geo driver only ever addresses channel slots 0 and 1 of each group;
// slot 2's 3-channel-mode registers are left unused, matching hardware).
func (y *YM2610) writeFMReg(set int, addr uint8, v uint8) {
	slot := int(addr & 0x03)
	if slot > 1 {
		return
	}
	ch := set*2 + slot
	c := &y.FM[ch]

	switch {
	case addr >= 0x30 && addr <= 0x3E && (addr&0x0F) < 4:
		op := operatorIndexFromReg(addr)
		c.Ops[op].Det = (v >> 4) & 0x07
		c.Ops[op].Mul = v & 0x0F
		c.recomputeIncrements(y.sampleRate)
	case addr >= 0x40 && addr <= 0x4E && (addr&0x0F) < 4:
		op := operatorIndexFromReg(addr - 0x10)
		c.Ops[op].TL = v & 0x7F
	case addr >= 0x50 && addr <= 0x5E && (addr&0x0F) < 4:
		op := operatorIndexFromReg(addr - 0x20)
		c.Ops[op].AR = v & 0x1F
	case addr >= 0x60 && addr <= 0x6E && (addr&0x0F) < 4:
		op := operatorIndexFromReg(addr - 0x30)
		c.Ops[op].DR = v & 0x1F
	case addr >= 0x70 && addr <= 0x7E && (addr&0x0F) < 4:
		op := operatorIndexFromReg(addr - 0x40)
		c.Ops[op].SR = v & 0x1F
	case addr >= 0x80 && addr <= 0x8E && (addr&0x0F) < 4:
		op := operatorIndexFromReg(addr - 0x50)
		c.Ops[op].SL = (v >> 4) & 0x0F
		c.Ops[op].RR = v & 0x0F
	case addr&0xFC == 0xA0:
		switch addr & 0x03 {
		case 0:
			c.keyFrac = v
			c.recomputeIncrements(y.sampleRate)
		case 1:
			c.keyCode = v & 0x3F
			c.recomputeIncrements(y.sampleRate)
		}
	case addr&0xFC == 0xB0:
		switch addr & 0x03 {
		case 0:
			c.Algorithm = v & 0x07
			fb := (v >> 3) & 0x07
			c.Feedback = fb
		case 1:
			c.PanLeft = v&0x80 != 0
			c.PanRight = v&0x40 != 0
		}
	}
}

func operatorIndexFromReg(addr uint8) int {
	return int(addr & 0x03)
}

// KeyOn services the OPN key-on register write (register 0x28, common to
// both sets): bits 0-1 select the channel, bits 4-7 the operator mask.
func (y *YM2610) KeyOn(value uint8) {
	ch := int(value & 0x03)
	if ch > 1 {
		return
	}
	set := int((value >> 2) & 0x01)
	y.FM[set*2+ch].setKeyOn((value >> 4) & 0x0F)
}

// Step advances the timer/IRQ state by the given FM-clock cycle count.
func (y *YM2610) Step(cycles uint64) {
	if y.timerAOn {
		y.timerAAcc += cycles
		period := y.timerAPeriod()
		for y.timerAAcc >= period {
			y.timerAAcc -= period
			y.status |= ym2610StatusTimerA
		}
	}
	if y.timerBOn {
		y.timerBAcc += cycles
		period := y.timerBPeriod()
		for y.timerBAcc >= period {
			y.timerBAcc -= period
			y.status |= ym2610StatusTimerB
		}
	}
	y.irq = (y.timerAIRQ && y.status&ym2610StatusTimerA != 0) ||
		(y.timerBIRQ && y.status&ym2610StatusTimerB != 0)
}

func (y *YM2610) timerAPeriod() uint64 {
	raw := uint64(y.timerARaw & 0x03FF)
	units := uint64(0x400) - raw
	if units == 0 {
		units = 1
	}
	return units * 18
}

func (y *YM2610) timerBPeriod() uint64 {
	raw := uint64(y.timerBRaw)
	units := uint64(0x100) - raw
	if units == 0 {
		units = 1
	}
	return units * 288
}

// IRQPending reports whether a timer interrupt should be forwarded to the
// Z80's interrupt line.
func (y *YM2610) IRQPending() bool { return y.irq }

// GenerateSample mixes FM, SSG, ADPCM-A, and ADPCM-B into one mono sample,
// matching the chip's internal mono-summed DAC (stereo panning is a
// per-channel attenuation the driver rarely exercises on Neo Geo, so a
// mono mix is the faithful-shape choice here).
func (y *YM2610) GenerateSample() int16 {
	var mix int32
	for i := range y.FM {
		mix += int32(y.FM[i].render())
	}
	mix += y.SSG.Step(16)
	mix += y.ADPCMA.Step()
	mix += y.ADPCMB.Step(16)

	mix /= 3
	if mix > 32767 {
		mix = 32767
	} else if mix < -32768 {
		mix = -32768
	}
	return int16(mix)
}
