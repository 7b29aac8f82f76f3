package rom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCartBuilderRoundTripsThroughLoadCart(t *testing.T) {
	c1, c2 := cRomPairTile()
	data, err := NewCartBuilder(43).
		WithResetVectors(0x00100000, 0x00000400).
		WithFix(make([]byte, FixTileBytes)).
		WithSprites(c1, c2).
		WithSound(make([]byte, 0x8000), make([]byte, 0x100), nil).
		Bytes()
	require.NoError(t, err)

	cart, err := LoadCart(data)
	require.NoError(t, err)
	require.Equal(t, uint16(43), cart.NGH)
	require.Len(t, cart.CROM, CROMTileBytes)
	require.Equal(t, uint8(0x00), cart.PROMBank1[0])
	require.Equal(t, uint8(0x10), cart.PROMBank1[1])
}

func TestCartBuilderOmitsEmptyOptionalMembers(t *testing.T) {
	c1, c2 := cRomPairTile()
	data, err := NewCartBuilder(1).
		WithFix(make([]byte, FixTileBytes)).
		WithSprites(c1, c2).
		Bytes()
	require.NoError(t, err)

	cart, err := LoadCart(data)
	require.NoError(t, err)
	require.Empty(t, cart.M1ROM)
	require.Empty(t, cart.V1ROM)
	require.Empty(t, cart.V2ROM)
}
