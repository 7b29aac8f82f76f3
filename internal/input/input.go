// Package input implements the I/O + system register file: joypads, DIPs,
// aux inputs, the RTC controller bit exposure, and the sound command
// mailbox, all addressed through the memory window described in
// SPEC_FULL.md §6 ("Key I/O addresses").
package input

import (
	"nitro-core-dx/internal/mailbox"
	"nitro-core-dx/internal/pd4990a"
)

// Joypad port bit masks, active-low on the real hardware (a pressed button
// clears its bit).
const (
	MaskUp    uint8 = 0x01
	MaskDown  uint8 = 0x02
	MaskLeft  uint8 = 0x04
	MaskRight uint8 = 0x08
	MaskA     uint8 = 0x10
	MaskB     uint8 = 0x20
	MaskC     uint8 = 0x40
	MaskD     uint8 = 0x80

	joypadInit uint8 = 0xFF
)

// Aux input bits, per original_source/aux_inputs.c.
const (
	AuxStart1     uint8 = 0x01
	AuxSelect1    uint8 = 0x02
	AuxStart2     uint8 = 0x04
	AuxSelect2    uint8 = 0x08
	AuxCardInsert uint8 = 0x10
	AuxCardLock   uint8 = 0x20
	AuxBoardIsMVS uint8 = 0x80
)

// MVS DIP bits, per original_source/mvs_dips.c.
const (
	DipSettingsMode  uint8 = 0x01
	DipChuteMask     uint8 = 0x02 // 0 = 1 chute, 1 = 2 chutes
	DipControllerPro uint8 = 0x04
	DipCommID0       uint8 = 0x08
	DipCommID1       uint8 = 0x10
	DipCommID2       uint8 = 0x20
	DipFreePlay      uint8 = 0x40
	DipFreeze        uint8 = 0x80
)

// offsets relative to the I/O window start (0x300000), per SPEC_FULL §6's
// "Key I/O addresses" table.
const (
	offP1CNT   = 0x000000
	offDIPSW   = 0x000001
	offSYSTYPE = 0x000081
	offSOUND   = 0x020000
	offSTATUSA = 0x020001
	offP2CNT   = 0x040000
	offSTATUSB = 0x080000
	offRTCCTRL = 0x080051
)

// System is the I/O register file: the main CPU's window onto joypads,
// DIPs, the RTC, and the sound mailbox.
type System struct {
	Joypad1 uint8
	Joypad2 uint8

	auxInputs uint8
	mvsDips   uint8

	Mailbox *mailbox.SoundMailbox
	RTC     *pd4990a.RTC
}

// New returns a System with both joypad ports at rest (no buttons pressed)
// and an MVS board identity by default.
func New(mb *mailbox.SoundMailbox, rtc *pd4990a.RTC) *System {
	return &System{
		Joypad1:   joypadInit,
		Joypad2:   joypadInit,
		auxInputs: AuxBoardIsMVS,
		Mailbox:   mb,
		RTC:       rtc,
	}
}

// SetButton updates one bit of a joypad port; pressed clears the bit
// (active-low).
func (s *System) SetButton(port int, mask uint8, pressed bool) {
	target := &s.Joypad1
	if port == 2 {
		target = &s.Joypad2
	}
	if pressed {
		*target &^= mask
	} else {
		*target |= mask
	}
}

// SetStartSelect sets the start/select aux bits for a port (active-low,
// matching the joypad convention).
func (s *System) SetStartSelect(port int, startPressed, selectPressed bool) {
	startBit, selectBit := AuxStart1, AuxSelect1
	if port == 2 {
		startBit, selectBit = AuxStart2, AuxSelect2
	}
	setActiveLow(&s.auxInputs, startBit, startPressed)
	setActiveLow(&s.auxInputs, selectBit, selectPressed)
}

// SetBoardType selects AES or MVS identity (read back via SYSTYPE/aux bit).
func (s *System) SetBoardType(isMVS bool) {
	setHigh(&s.auxInputs, AuxBoardIsMVS, isMVS)
}

// SetDIP replaces the full MVS DIP byte.
func (s *System) SetDIP(mask uint8) { s.mvsDips = mask }

func setActiveLow(reg *uint8, mask uint8, active bool) {
	if active {
		*reg &^= mask
	} else {
		*reg |= mask
	}
}

func setHigh(reg *uint8, mask uint8, set bool) {
	if set {
		*reg |= mask
	} else {
		*reg &^= mask
	}
}

// Read8 reads the I/O register at offset (relative to the 0x300000 window).
func (s *System) Read8(offset uint32) uint8 {
	switch offset {
	case offP1CNT:
		return s.Joypad1
	case offDIPSW:
		return s.mvsDips
	case offSYSTYPE:
		if s.auxInputs&AuxBoardIsMVS != 0 {
			return 0x00
		}
		return 0x01
	case offSOUND:
		if s.Mailbox != nil {
			return s.Mailbox.ReadResult()
		}
		return 0
	case offSTATUSA:
		tb, db := 0, 0
		if s.RTC != nil {
			tb = s.RTC.ReadTestBit()
			db = s.RTC.ReadDataBit()
		}
		return 0x1F | uint8(tb&1)<<6 | uint8(db&1)<<7
	case offP2CNT:
		return s.Joypad2
	case offSTATUSB:
		return s.auxInputs
	default:
		return 0
	}
}

// Write8 writes the I/O register at offset.
func (s *System) Write8(offset uint32, value uint8) {
	switch offset {
	case offSOUND:
		if s.Mailbox != nil {
			s.Mailbox.WriteCommand(value)
		}
	case offRTCCTRL:
		if s.RTC != nil {
			s.RTC.WriteControl(value)
		}
	}
}

func (s *System) Read16(offset uint32) uint16 {
	return uint16(s.Read8(offset))<<8 | uint16(s.Read8(offset+1))
}

func (s *System) Write16(offset uint32, value uint16) {
	s.Write8(offset, uint8(value>>8))
	s.Write8(offset+1, uint8(value))
}
