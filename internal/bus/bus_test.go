package bus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gones/internal/cartridge"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	b := New()
	cart, err := cartridge.New(cartridge.Config{PRGROM: make([]uint8, 0x8000), MapperID: 0})
	require.NoError(t, err)
	b.LoadCartridge(cart)
	return b
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0000, 0x42)
	require.Equal(t, uint8(0x42), b.Read(0x0800))
	require.Equal(t, uint8(0x42), b.Read(0x1800))
}

func TestEveryAccessTicksOnce(t *testing.T) {
	b := newTestBus(t)
	before := b.Cycles()
	b.Read(0x0000)
	require.Equal(t, before+1, b.Cycles())
	b.Write(0x0000, 1)
	require.Equal(t, before+2, b.Cycles())
}

func TestEachTickAdvancesPPUThreeDots(t *testing.T) {
	b := newTestBus(t)
	startDot := b.PPU.Dot()
	b.Tick()
	// dot wraps mod 341; three steps from any start land 3 dots later
	// unless a scanline boundary was crossed, which newly reset state won't.
	require.Equal(t, (startDot+3)%341, b.PPU.Dot())
}

func TestOAMDMATakes513Or514Cycles(t *testing.T) {
	b := newTestBus(t)
	b.ram[0] = 0x11
	before := b.Cycles()
	b.Write(0x4014, 0x00)
	elapsed := b.Cycles() - before
	require.True(t, elapsed == 513 || elapsed == 514, "got %d", elapsed)
}

func TestOAMDMACopiesBytes(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 256; i++ {
		b.ram[i] = uint8(i)
	}
	b.Write(0x4014, 0x00)
	b.PPU.WriteRegister(0x2003, 0) // OAMADDR = 0
	for i := 0; i < 256; i++ {
		require.Equal(t, uint8(i), b.PPU.ReadRegister(0x2004))
		b.PPU.WriteRegister(0x2003, uint8(i+1))
	}
}

func TestCartridgePRGRead(t *testing.T) {
	b := newTestBus(t)
	require.Equal(t, uint8(0), b.Read(0x8000))
}

func TestSRAMWindowReservedReturnsZero(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x6000, 0x55)
	require.Equal(t, uint8(0), b.Read(0x6000))
}

func TestNMIPendingAfterPPUAssertsIt(t *testing.T) {
	b := newTestBus(t)
	b.PPU.WriteRegister(0x2000, 0x80) // enable NMI
	for !b.TakeNMI() {
		b.Tick()
	}
}
