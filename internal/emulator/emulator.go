// Package emulator wires the memory bus, both CPUs, the LSPC video chip,
// the YM2610 sound chip, the input/RTC peripherals, and the master clock
// scheduler into the frame-at-a-time Host ABI described in SPEC_FULL §6.
package emulator

import (
	"math"

	"nitro-core-dx/internal/apu"
	"nitro-core-dx/internal/clock"
	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/input"
	"nitro-core-dx/internal/mailbox"
	"nitro-core-dx/internal/memory"
	"nitro-core-dx/internal/pd4990a"
	"nitro-core-dx/internal/ppu"
	"nitro-core-dx/internal/rom"
	"nitro-core-dx/internal/z80"
)

// framesPerSecond is MasterHz/MasterCyclesPerFrame, the exact (non-60)
// refresh rate the raster timer and audio sample accumulator run against.
const framesPerSecond = float64(clock.MasterHz) / float64(clock.MasterCyclesPerFrame)

// Emulator is the host-facing Neo Geo core: one instance per running
// system, holding every component and the master clock that sequences them.
type Emulator struct {
	System *rom.System
	Cart   *rom.Cartridge

	Bus *memory.Bus
	CPU *cpu.CPU

	z80Mem *z80.MappedMemory
	Z80    *z80.CPU
	APU    *apu.APU

	PPU     *ppu.PPU
	Mailbox *mailbox.SoundMailbox
	RTC     *pd4990a.RTC
	Input   *input.System

	Clock      *clock.MasterClock
	rasterTmr  *clock.Timer
	rasterLine uint32

	sampleRate uint32
	sampleAccF float64

	logger *debug.Logger
}

// NewEmulator constructs an Emulator with no system or cartridge attached.
// LoadBIOS and LoadCart must both run before RunFrame produces anything
// useful.
func NewEmulator(sampleRate uint32, logger *debug.Logger) *Emulator {
	e := &Emulator{
		Mailbox:    &mailbox.SoundMailbox{},
		RTC:        pd4990a.New(),
		sampleRate: sampleRate,
		logger:     logger,
	}
	e.Input = input.New(e.Mailbox, e.RTC)
	e.PPU = ppu.NewPPU(logger)
	e.Clock = clock.NewMasterClock()
	e.armRasterTimer()
	return e
}

// armRasterTimer (re-)arms the per-scanline video timer: one master clock
// event every HPixels*MasterPerPixel cycles, advancing the PPU one scanline
// and wrapping at VPixels. The timer is registered once, at construction;
// later calls (from Reset) just re-arm the same Timer rather than
// registering a duplicate.
func (e *Emulator) armRasterTimer() {
	e.rasterLine = 0
	if e.rasterTmr == nil {
		e.rasterTmr = &clock.Timer{
			Name:     "video-raster",
			Callback: e.onRasterTimer,
		}
		e.Clock.Register(e.rasterTmr)
	}
	e.rasterTmr.Arm(clock.HPixels * clock.MasterPerPixel)
}

func (e *Emulator) onRasterTimer(t *clock.Timer) {
	e.PPU.SetFixSource(e.Bus.UseSystemFix)
	e.PPU.RunScanline(e.rasterLine)
	e.rasterLine++
	if e.rasterLine >= clock.VPixels {
		e.rasterLine = 0
	}
	t.ArmRelative(clock.HPixels * clock.MasterPerPixel)
}

// LoadBIOS loads the fixed system ROM set (program BIOS, SFIX, Y-zoom) and
// rewires the bus/CPU/PPU onto it. Returns rom.ErrBiosMissing on failure.
func (e *Emulator) LoadBIOS(programROM, fixROM, yZoomROM []byte, isMVS bool) error {
	system, err := rom.LoadSystem(programROM, fixROM, yZoomROM, isMVS)
	if err != nil {
		return err
	}
	e.System = system
	e.wireBus()
	return nil
}

// Init implements the Host ABI's init(system_dir): reads the BIOS-family
// ROMs from a directory by their conventional filenames.
func (e *Emulator) Init(systemDir string, isMVS bool) error {
	system, err := rom.LoadSystemDir(systemDir, isMVS)
	if err != nil {
		return err
	}
	e.System = system
	e.wireBus()
	return nil
}

// LoadCart loads a cartridge image and rebuilds every component that holds
// a cartridge ROM reference: the bus, the PPU's C-ROM/S-ROM attachment, and
// the sound subsystem (Z80 memory map + YM2610), since none of those expose
// a way to swap ROMs in place. Real hardware requires a power cycle to swap
// a cartridge too, so this mirrors that.
func (e *Emulator) LoadCart(data []byte) error {
	cart, err := rom.LoadCart(data)
	if err != nil {
		return err
	}
	e.Cart = cart
	e.wireBus()
	return nil
}

// wireBus (re)builds the bus and every component that reads ROMs from it,
// called after either LoadBIOS or LoadCart since either can leave the other
// half already attached.
func (e *Emulator) wireBus() {
	e.Bus = memory.NewBus(e.System, e.Cart)
	e.Bus.SetLogger(e.logger)
	e.Bus.Video = e.PPU
	e.Bus.IOSys = e.Input

	cpuLogger := cpu.NewLoggerAdapter(e.logger, cpu.LogNone)
	e.CPU = cpu.New(e.Bus, cpuLogger)

	e.PPU.AttachROMs(e.Cart, e.System)
	e.PPU.SetPaletteSource(&e.Bus.Palette)

	if e.Cart != nil {
		e.z80Mem = z80.NewMappedMemory(e.Cart.M1ROM)
		e.Z80 = z80.New(e.z80Mem, e.Mailbox)
		e.APU = apu.New(e.sampleRate, e.Cart.V1ROM, e.Cart.V2ROM, e.logger)
	}
}

// Reset restores power-on state for everything except battery-backed
// storage: work RAM is left as-is (boot code always re-initializes it),
// backup RAM is left as-is (it is the save data real hardware preserves
// across a reset), and the RTC keeps running (it is a battery-backed clock
// chip, not something a system reset touches).
func (e *Emulator) Reset() {
	if e.CPU != nil {
		e.CPU.Reset()
	}
	if e.Z80 != nil {
		e.Z80.Reset()
	}
	e.PPU.Reset()
	e.Mailbox.Reset()
	e.Clock.Reset()
	e.armRasterTimer()
	e.sampleAccF = 0
}

// RunFrame advances every component by exactly one video frame's worth of
// master clock cycles, slicing the frame at whichever comes first: the next
// scheduled timer event or the remaining frame budget. Each slice steps the
// 68000 for its master-cycle-converted budget, credits the elapsed cycles
// (converted again) to the Z80 in case it under- or over-ran its own last
// slice, and keeps the YM2610 and the scanline timer in lockstep with the
// 68000's actual progress rather than the slice's nominal length.
func (e *Emulator) RunFrame() {
	remaining := int64(clock.MasterCyclesPerFrame)
	var z80Credit int64

	for remaining > 0 {
		slice := e.Clock.NextEventCycles()
		if slice <= 0 || slice > remaining {
			slice = remaining
		}

		cpuBudget := clock.ToCPU1FromMaster(slice)
		if cpuBudget <= 0 {
			cpuBudget = 1
		}
		cpuSpent, err := e.CPU.Execute(int(cpuBudget))
		if err != nil {
			break
		}
		elapsedMaster := clock.ToMasterFromCPU1(int64(cpuSpent))
		if elapsedMaster <= 0 {
			elapsedMaster = slice
		}

		z80Credit += elapsedMaster
		if z80Credit > 0 && e.Z80 != nil {
			z80Budget := clock.ToCPU2FromMaster(z80Credit)
			if z80Budget > 0 {
				z80Spent, err := e.Z80.Execute(int(z80Budget))
				if err == nil {
					z80Credit -= clock.ToMasterFromCPU2(int64(z80Spent))
				}
			}
		}

		if e.APU != nil {
			chipCycles := clock.ToChipFromMaster(elapsedMaster)
			if chipCycles > 0 {
				e.APU.Step(uint64(chipCycles))
			}
		}

		pixels := clock.ToPixelFromMaster(elapsedMaster)
		if pixels > 0 {
			e.PPU.StepPixels(uint32(pixels))
		}

		e.Clock.Consume(elapsedMaster)
		e.syncIRQs()

		remaining -= elapsedMaster
	}

	e.RTC.AddRetrace()
}

// syncIRQs translates the PPU's pending VBlank/timer IRQ bits into the
// level the 68000 should see, per original_source/neogeo.c's
// cpu_68k_update_interrupts: VBlank is level 1, the raster timer is level 2
// and takes priority when both are pending.
func (e *Emulator) syncIRQs() {
	level := 0
	if e.PPU.VBlankIRQPending() {
		level = 1
	}
	if e.PPU.TimerIRQPending() {
		level = 2
	}
	if level > 0 {
		e.CPU.RaiseIRQ(level)
	}
}

// generateAudioSamples advances the fractional sample-count accumulator by
// one frame's worth of output at the host sample rate and pulls that many
// mono samples from the YM2610, duplicating each into an interleaved
// stereo L/R pair for the Host ABI's int16 PCM buffer.
func (e *Emulator) generateAudioSamples() []int16 {
	if e.APU == nil {
		return nil
	}
	e.sampleAccF += float64(e.sampleRate) / framesPerSecond
	count := int(math.Ceil(e.sampleAccF))
	e.sampleAccF -= float64(count)

	mono := e.APU.GenerateSamples(count)
	stereo := make([]int16, len(mono)*2)
	for i, s := range mono {
		stereo[i*2] = s
		stereo[i*2+1] = s
	}
	return stereo
}

// SetJoypad sets one of the two 8-bit active-low joypad registers directly,
// per SPEC_FULL §6 ("each port is 8 active-low bits").
func (e *Emulator) SetJoypad(port int, bits uint8) {
	switch port {
	case 1:
		e.Input.Joypad1 = bits
	case 2:
		e.Input.Joypad2 = bits
	}
}

// SetStartSelect sets a port's START/SELECT button state.
func (e *Emulator) SetStartSelect(port int, start, selectPressed bool) {
	e.Input.SetStartSelect(port, start, selectPressed)
}

// SetBoardType switches the AUX input register between AES and MVS.
func (e *Emulator) SetBoardType(isMVS bool) {
	e.Input.SetBoardType(isMVS)
}

// SetDIP sets the MVS DIP switch byte read through the AUX register.
func (e *Emulator) SetDIP(mask uint8) {
	e.Input.SetDIP(mask)
}

// ReadFrameBuffer returns the most recently rendered frame, RGB565 words in
// row-major order.
func (e *Emulator) ReadFrameBuffer() []uint16 {
	return e.PPU.FrameBuffer[:]
}

// ReadAudioBuffer generates and returns this frame's interleaved stereo
// PCM samples.
func (e *Emulator) ReadAudioBuffer() []int16 {
	return e.generateAudioSamples()
}
