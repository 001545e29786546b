package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpriteEvaluationFindsUpToEight(t *testing.T) {
	p := newTestPPU()
	for i := 0; i < 8; i++ {
		p.oam[i*4+0] = 10 // Y, in range of scanline 10 (8px sprites)
	}
	p.clearSecondaryOAM()
	p.evaluateSprites(10)
	require.Equal(t, 8, p.secondaryCount)
	require.False(t, p.spriteOverflow)
}

func TestSpriteOverflowHardwareBug(t *testing.T) {
	p := newTestPPU()
	// Eight sprites in range of scanline 10.
	for i := 0; i < 8; i++ {
		p.oam[i*4+0] = 10
	}
	// 9th sprite: true Y (scanline field) is out of range, but its
	// tile-index byte (offset 1) happens to equal 10, which the buggy
	// flat-byte walk will misread as a Y coordinate.
	p.oam[8*4+0] = 200 // Y: not on scanline 10
	p.oam[8*4+1] = 10  // tile index: coincidentally "in range"

	p.clearSecondaryOAM()
	p.evaluateSprites(10)

	require.Equal(t, 8, p.secondaryCount, "9th sprite must not be copied, only 8 slots exist")
	require.True(t, p.spriteOverflow, "misread tile-index byte should trigger the overflow bug")
}

func TestSpriteOverflowNotSetWhenNinthGenuinelyOutOfRange(t *testing.T) {
	p := newTestPPU()
	for i := 0; i < 8; i++ {
		p.oam[i*4+0] = 10
	}
	p.oam[8*4+0] = 200
	p.oam[8*4+1] = 200
	p.oam[8*4+2] = 200
	p.oam[8*4+3] = 200

	p.clearSecondaryOAM()
	p.evaluateSprites(10)
	require.False(t, p.spriteOverflow)
}

func TestSpriteZeroHitTracksFirstOAMEntry(t *testing.T) {
	p := newTestPPU()
	p.oam[0] = 10 // sprite 0 Y
	p.clearSecondaryOAM()
	p.evaluateSprites(10)
	require.True(t, p.sprite0OnScanlineNext)
	p.loadSpriteRegisters(10)
	require.True(t, p.sprites[0].isSprite0)
}

func TestReverseBitsFlipsHorizontally(t *testing.T) {
	require.Equal(t, uint8(0b10000000), reverseBits(0b00000001))
	require.Equal(t, uint8(0b11110000), reverseBits(0b00001111))
}
