package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCHR struct {
	data [0x2000]uint8
}

func (f *fakeCHR) ReadCHR(address uint16) uint8 { return f.data[address&0x1FFF] }
func (f *fakeCHR) WriteCHR(address uint16, value uint8) { f.data[address&0x1FFF] = value }

func newTestPPU() *PPU {
	p := New()
	p.AttachCHR(&fakeCHR{}, 0)
	return p
}

func TestResetSetsVBlankAndClearsScroll(t *testing.T) {
	p := newTestPPU()
	require.True(t, p.IsVBlank())
	require.Equal(t, -1, p.Scanline())
	require.Equal(t, uint16(0), p.v)
	require.Equal(t, uint16(0), p.t)
	require.Equal(t, uint8(0), p.x)
}

func TestPPUDataWriteReadRoundTrip(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0x42)

	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.ReadRegister(0x2007) // primes the read buffer
	got := p.ReadRegister(0x2007)
	require.Equal(t, uint8(0x42), got)
}

func TestPaletteReadIsNotBuffered(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0x16)

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	got := p.ReadRegister(0x2007)
	require.Equal(t, uint8(0x16), got)
}

func TestPaletteMirrorFold(t *testing.T) {
	p := newTestPPU()
	p.writePalette(0x3F00, 0x01)
	require.Equal(t, uint8(0x01), p.readPalette(0x3F10))
}

func TestScrollWriteLatchToggles(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2005, 0x7D) // coarse X = 15, fine X = 5
	require.True(t, p.w)
	require.Equal(t, uint8(5), p.x)
	p.WriteRegister(0x2005, 0x5E)
	require.False(t, p.w)
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p := newTestPPU()
	p.w = true
	status := p.ReadRegister(0x2002)
	require.NotZero(t, status&statusVBlank)
	require.False(t, p.IsVBlank())
	require.False(t, p.w)
}

func TestNMIFiresOnceAtScanline241Dot1(t *testing.T) {
	p := newTestPPU()
	fired := 0
	p.SetNMICallback(func() { fired++ })
	// Clear the power-up VBlank first so enabling NMI raises no edge itself.
	p.status &^= statusVBlank
	p.nmiPrevious = false
	p.WriteRegister(0x2000, ctrlNMIEnable)

	// Drive to scanline 241 dot 1, then run that dot.
	for p.scanline != 241 || p.dot != 1 {
		p.Step()
	}
	require.Equal(t, 0, fired)
	p.Step()
	require.Equal(t, 1, fired)
}

func TestOddFrameDotSkipOnlyWhenRenderingEnabled(t *testing.T) {
	p := newTestPPU()
	p.mask = 0 // rendering disabled: no skip
	p.oddFrame = true
	p.scanline = -1
	p.dot = 339
	p.Step()
	require.Equal(t, 340, p.dot)
}

func TestFrameCompleteCallbackFires(t *testing.T) {
	p := newTestPPU()
	completed := 0
	p.SetFrameCompleteCallback(func() { completed++ })
	total := 341 * 262
	for i := 0; i < total; i++ {
		p.Step()
	}
	require.Equal(t, 1, completed)
}
