package apu

import "math"

const (
	fmChannelCount  = 4
	fmOperatorCount = 4
	fmSineTableSize = 1024
	fmSineTableShift = 32 - 10
)

var fmSineTable = func() [fmSineTableSize]int16 {
	var table [fmSineTableSize]int16
	for i := range table {
		phase := (2.0 * math.Pi * float64(i)) / float64(fmSineTableSize)
		table[i] = int16(math.Round(math.Sin(phase) * 32767.0))
	}
	return table
}()

func fmSineLookup(phase uint32) int16 {
	idx := (phase >> fmSineTableShift) & (fmSineTableSize - 1)
	return fmSineTable[idx]
}

func tlToLinear(tl uint8) int32 {
	if tl >= 127 {
		return 0
	}
	return int32(127-tl) * 2
}

// fmOperator is one of the four operators feeding a channel's algorithm
// graph, grounded on original_source/ym2610.c's SLOT params (DT/MUL, TL,
// AR/DR/SR/RR, SL, SSG-EG).
type fmOperator struct {
	Mul uint8
	Det uint8
	TL  uint8
	AR  uint8
	DR  uint8
	SR  uint8
	RR  uint8
	SL  uint8

	phase uint32
	inc   uint32

	envLevel uint16 // 0..256, attack/decay/sustain/release envelope
	keyOn    bool
	lastOut  int16
}

func (op *fmOperator) setKeyOn(on bool) {
	if on && !op.keyOn {
		op.phase = 0
		op.envLevel = 0
	}
	if !on {
		op.envLevel = 0
	}
	op.keyOn = on
}

func (op *fmOperator) stepEnvelope() {
	if !op.keyOn {
		return
	}
	target := uint16(256 - int(op.SL)*2)
	if target > 256 {
		target = 256
	}
	rate := uint16(op.AR/2 + 4)
	if op.envLevel < target {
		op.envLevel += rate
		if op.envLevel > target {
			op.envLevel = target
		}
	} else if op.envLevel > target {
		decay := uint16(op.DR/4 + 1)
		if op.envLevel > decay {
			op.envLevel -= decay
		} else {
			op.envLevel = 0
		}
	}
}

// recomputeIncrement derives this operator's phase increment from the
// channel's base frequency and the operator's MUL/DET, per the OPN
// MUL/detune model (faithful shape, not the exact detune LUT).
func (op *fmOperator) recomputeIncrement(baseInc uint32) {
	mul := op.Mul
	if mul == 0 {
		mul = 1
	}
	detShift := int32(op.Det&0x03) - 1
	inc := uint64(baseInc) * uint64(mul)
	if detShift != 0 {
		inc += uint64(int64(inc) * int64(detShift) / 128)
	}
	op.inc = uint32(inc)
}

func (op *fmOperator) render(modulation int16) int16 {
	phase := op.phase + uint32(int32(modulation)<<2)
	raw := fmSineLookup(phase)
	level := tlToLinear(op.TL)
	out := int32(raw) * level / 255
	out = (out * int32(op.envLevel)) / 256
	op.lastOut = int16(out)
	op.phase += op.inc
	return op.lastOut
}

// fmChannel is one of the YM2610's 4 audible FM channels (of its 6 total
// slots; the Neo Geo driver leaves the two 3-slot-mode channels unused),
// each with 4 operators routed through one of 8 algorithms.
type fmChannel struct {
	Ops [fmOperatorCount]fmOperator

	Algorithm uint8
	Feedback  uint8
	PanLeft   bool
	PanRight  bool

	keyCode uint8
	keyFrac uint8
	baseInc uint32

	feedbackHist [2]int16
}

func (c *fmChannel) setKeyOn(opMask uint8) {
	for i := range c.Ops {
		c.Ops[i].setKeyOn(opMask&(1<<uint(i)) != 0)
	}
}

func (c *fmChannel) recomputeIncrements(sampleRate uint32) {
	hz := fmKeyToHz(c.keyCode, c.keyFrac)
	c.baseInc = hzToPhaseInc(hz, sampleRate)
	for i := range c.Ops {
		c.Ops[i].recomputeIncrement(c.baseInc)
	}
}

// render produces one sample by walking this channel's algorithm graph.
// The 8 algorithms model increasing parallelism between the standard
// 4-operator serial chain (algorithm 0) and all-operator additive mixing
// (algorithm 7), matching the OPN family's general shape.
func (c *fmChannel) render() int16 {
	op1, op2, op3, op4 := &c.Ops[0], &c.Ops[1], &c.Ops[2], &c.Ops[3]

	fbShift := uint(0)
	if c.Feedback > 0 {
		fbShift = uint(9 - c.Feedback)
	}
	fbMod := int16(0)
	if fbShift < 16 {
		fbMod = int16((int32(c.feedbackHist[0]) + int32(c.feedbackHist[1])) >> (fbShift + 1))
	}

	var out int32
	switch c.Algorithm {
	case 0: // op1 -> op2 -> op3 -> op4, serial
		o1 := op1.render(fbMod)
		o2 := op2.render(o1)
		o3 := op3.render(o2)
		o4 := op4.render(o3)
		out = int32(o4)
	case 1: // (op1+op2) -> op3 -> op4
		o1 := op1.render(fbMod)
		o2 := op2.render(0)
		o3 := op3.render(o1 + o2)
		o4 := op4.render(o3)
		out = int32(o4)
	case 2: // op2 -> op3; op1 and op3 together modulate op4
		o1 := op1.render(fbMod)
		o2 := op2.render(0)
		o3 := op3.render(o2)
		o4 := op4.render(o1 + o3)
		out = int32(o4)
	case 3: // op1->op2, op3 standalone, both feed op4
		o1 := op1.render(fbMod)
		o2 := op2.render(o1)
		o3 := op3.render(0)
		o4 := op4.render(o2 + o3)
		out = int32(o4)
	case 4: // (op1->op2) and (op3->op4) additive
		o1 := op1.render(fbMod)
		o2 := op2.render(o1)
		o3 := op3.render(0)
		o4 := op4.render(o3)
		out = int32(o2) + int32(o4)
	case 5: // op1 modulates op2, op3, op4 independently
		o1 := op1.render(fbMod)
		o2 := op2.render(o1)
		o3 := op3.render(o1)
		o4 := op4.render(o1)
		out = int32(o2) + int32(o3) + int32(o4)
	case 6: // op1->op2, op3 and op4 standalone additive
		o1 := op1.render(fbMod)
		o2 := op2.render(o1)
		o3 := op3.render(0)
		o4 := op4.render(0)
		out = int32(o2) + int32(o3) + int32(o4)
	default: // algorithm 7: all 4 operators additive
		o1 := op1.render(fbMod)
		o2 := op2.render(0)
		o3 := op3.render(0)
		o4 := op4.render(0)
		out = int32(o1) + int32(o2) + int32(o3) + int32(o4)
	}

	c.feedbackHist[1] = c.feedbackHist[0]
	c.feedbackHist[0] = op1.lastOut

	for i := range c.Ops {
		c.Ops[i].stepEnvelope()
	}

	if out > 32767 {
		out = 32767
	} else if out < -32768 {
		out = -32768
	}
	return int16(out)
}

func fmKeyToHz(kc, kf uint8) float64 {
	semi := float64(int(kc) - 24)
	semi += float64(kf) / 256.0
	return 32.70319566257483 * math.Pow(2.0, semi/12.0)
}

func hzToPhaseInc(hz float64, sampleRate uint32) uint32 {
	if hz <= 0 || sampleRate == 0 {
		return 0
	}
	inc := (hz * 4294967296.0) / float64(sampleRate)
	if inc >= 4294967295.0 {
		return 0xFFFFFFFF
	}
	return uint32(inc)
}
