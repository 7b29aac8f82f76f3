package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitro-core-dx/internal/mailbox"
	"nitro-core-dx/internal/pd4990a"
)

func TestJoypadActiveLow(t *testing.T) {
	s := New(&mailbox.SoundMailbox{}, pd4990a.New())
	require.Equal(t, uint8(0xFF), s.Joypad1)

	s.SetButton(1, MaskUp, true)
	require.Equal(t, uint8(0xFF&^MaskUp), s.Joypad1)

	s.SetButton(1, MaskUp, false)
	require.Equal(t, uint8(0xFF), s.Joypad1)
}

func TestSoundMailboxThroughIOWindow(t *testing.T) {
	mb := &mailbox.SoundMailbox{}
	s := New(mb, pd4990a.New())

	s.Write8(offSOUND, 0x42)
	require.True(t, mb.NMIPending())
	require.Equal(t, uint8(0x42), mb.ReadCommand())
	require.False(t, mb.NMIPending())

	mb.WriteResult(0x99)
	require.Equal(t, uint8(0x99), s.Read8(offSOUND))
}

func TestStatusARTCBits(t *testing.T) {
	rtc := pd4990a.New()
	s := New(&mailbox.SoundMailbox{}, rtc)

	v := s.Read8(offSTATUSA)
	require.Equal(t, uint8(0x1F), v&0x1F)
}

func TestBoardTypeAndStartSelect(t *testing.T) {
	s := New(&mailbox.SoundMailbox{}, pd4990a.New())

	s.SetBoardType(false) // AES
	require.Equal(t, uint8(0x01), s.Read8(offSYSTYPE))

	s.SetStartSelect(1, true, false)
	require.Equal(t, uint8(0), s.Read8(offSTATUSB)&AuxStart1)
	require.NotEqual(t, uint8(0), s.Read8(offSTATUSB)&AuxSelect1)
}
