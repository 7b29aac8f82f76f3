package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
	"nitro-core-dx/internal/rom"
)

// newTestEmulator wires a minimal BIOS + cartridge directly (bypassing the
// file-format loaders, which aren't under test here) so RunFrame has a
// reset vector and some P-ROM to fetch an IRQ autovector from.
func newTestEmulator(t *testing.T) *Emulator {
	t.Helper()
	e := NewEmulator(44100, nil)

	e.System = &rom.System{
		ProgramROM: make([]byte, 0x200),
		FixROM:     make([]byte, 32),
		YZoomROM:   make([]byte, rom.YZoomROMSize),
	}

	promBank1 := make([]byte, rom.PROMBankSize)
	// reset SP = 0x100000 (start of work RAM), PC = 0x000400
	promBank1[0], promBank1[1], promBank1[2], promBank1[3] = 0x00, 0x10, 0x00, 0x00
	promBank1[4], promBank1[5], promBank1[6], promBank1[7] = 0x00, 0x00, 0x04, 0x00

	e.Cart = &rom.Cartridge{
		PROMBank1: promBank1,
		SROM:      make([]byte, 32),
		CROM:      make([]byte, 256),
		M1ROM:     make([]byte, 0x8000),
		V1ROM:     make([]byte, 0x100),
	}
	e.wireBus()
	e.CPU.Reset()
	return e
}

func TestNewEmulatorArmsRasterTimerBeforeAnySystemLoaded(t *testing.T) {
	e := NewEmulator(44100, nil)
	require.Equal(t, int64(384*4), e.Clock.NextEventCycles())
}

func TestRunFrameConsumesExactlyOneFrameOfMasterCycles(t *testing.T) {
	e := newTestEmulator(t)
	before := e.Clock.Cycle
	e.RunFrame()
	require.Equal(t, int64(405504), e.Clock.Cycle-before)
}

func TestRunFrameRendersAFullFrameBuffer(t *testing.T) {
	e := newTestEmulator(t)
	e.RunFrame()
	fb := e.ReadFrameBuffer()
	require.Len(t, fb, 320*224)
}

func TestReadAudioBufferReturnsInterleavedStereo(t *testing.T) {
	e := newTestEmulator(t)
	e.RunFrame()
	buf := e.ReadAudioBuffer()
	require.NotEmpty(t, buf)
	require.Equal(t, 0, len(buf)%2)
}

func TestSetJoypadWritesRawActiveLowBits(t *testing.T) {
	e := newTestEmulator(t)
	e.SetJoypad(1, 0xFE)
	e.SetJoypad(2, 0x7F)
	require.Equal(t, uint8(0xFE), e.Input.Joypad1)
	require.Equal(t, uint8(0x7F), e.Input.Joypad2)
}

func TestResetLeavesWorkAndBackupRAMUntouched(t *testing.T) {
	e := newTestEmulator(t)
	e.Bus.WorkRAM[0] = 0x42
	e.Bus.BackupRAM[0] = 0x99
	e.Reset()
	require.Equal(t, uint8(0x42), e.Bus.WorkRAM[0])
	require.Equal(t, uint8(0x99), e.Bus.BackupRAM[0])
}

func TestResetDoesNotDuplicateTheRasterTimerRegistration(t *testing.T) {
	e := newTestEmulator(t)
	e.RunFrame()
	tmr := e.rasterTmr
	e.Reset()
	e.Reset()
	require.Same(t, tmr, e.rasterTmr)
	require.True(t, tmr.Active)
}

func TestRunFrameEventuallySetsVBlank(t *testing.T) {
	e := newTestEmulator(t)
	e.RunFrame()
	require.True(t, e.PPU.VBlankIRQPending())
}
