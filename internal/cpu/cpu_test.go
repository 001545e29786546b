package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// flatBus is a 64KB RAM-backed bus used for isolated CPU unit tests: each
// access ticks a cycle counter exactly like the real bus does, without
// needing a PPU/cartridge wired up.
type flatBus struct {
	mem    [0x10000]uint8
	cycles uint64
}

func (b *flatBus) Read(addr uint16) uint8 {
	b.cycles++
	return b.mem[addr]
}

func (b *flatBus) Write(addr uint16, v uint8) {
	b.cycles++
	b.mem[addr] = v
}

func newTestCPU() (*CPU, *flatBus) {
	bus := &flatBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := New(bus)
	c.Reset()
	return c, bus
}

func TestResetVectorAndStackPointer(t *testing.T) {
	c, _ := newTestCPU()
	require.Equal(t, uint16(0x8000), c.PC)
	require.Equal(t, uint8(0xFD), c.SP)
	require.True(t, c.I)
}

func TestResetTicksSevenCycles(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := New(bus)
	c.Reset()
	require.Equal(t, uint64(7), bus.cycles)
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xA9
	bus.mem[0x8001] = 0x00
	require.NoError(t, c.Step())
	require.Equal(t, uint8(0), c.A)
	require.True(t, c.Z)
	require.False(t, c.N)
}

func TestLDAImmediateTwoCycles(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xA9
	bus.mem[0x8001] = 0x42
	before := bus.cycles
	require.NoError(t, c.Step())
	require.Equal(t, uint64(2), bus.cycles-before)
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x7F
	bus.mem[0x8000] = 0x69 // ADC #$01
	bus.mem[0x8001] = 0x01
	require.NoError(t, c.Step())
	require.Equal(t, uint8(0x80), c.A)
	require.True(t, c.V, "signed overflow from $7F+$01")
	require.False(t, c.C)
}

func TestSBCSignedRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x50
	c.C = true // no borrow
	bus.mem[0x8000] = 0xE9
	bus.mem[0x8001] = 0xF0
	require.NoError(t, c.Step())
	require.Equal(t, uint8(0x60), c.A)
}

func TestAbsoluteXPageCrossExtraCycle(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0xFF
	bus.mem[0x8000] = 0xBD // LDA abs,X
	bus.mem[0x8001] = 0x01
	bus.mem[0x8002] = 0x80 // base $8001, +$FF crosses into $8100
	before := bus.cycles
	require.NoError(t, c.Step())
	require.Equal(t, uint64(5), bus.cycles-before)
}

func TestAbsoluteXNoPageCrossFourCycles(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0x01
	bus.mem[0x8000] = 0xBD
	bus.mem[0x8001] = 0x10
	bus.mem[0x8002] = 0x80
	before := bus.cycles
	require.NoError(t, c.Step())
	require.Equal(t, uint64(4), bus.cycles-before)
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0x20 // JSR $9000
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	bus.mem[0x9000] = 0x60 // RTS
	require.NoError(t, c.Step())
	require.Equal(t, uint16(0x9000), c.PC)
	require.NoError(t, c.Step())
	require.Equal(t, uint16(0x8003), c.PC)
}

func TestBRKPushesStatusWithBSet(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x90
	bus.mem[0x8000] = 0x00 // BRK
	require.NoError(t, c.Step())
	require.Equal(t, uint16(0x9000), c.PC)
	pushedStatus := bus.mem[0x0100|uint16(c.SP+1)]
	require.NotZero(t, pushedStatus&flagB)
}

func TestNMITakesPriorityAndPushesStatusWithoutB(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0xA0
	bus.mem[0x8000] = 0xEA // NOP, should not execute
	c.SetNMI()
	require.NoError(t, c.Step())
	require.Equal(t, uint16(0xA000), c.PC)
	pushedStatus := bus.mem[0x0100|uint16(c.SP+1)]
	require.Zero(t, pushedStatus&flagB)
}

func TestBranchNotTakenTwoCycles(t *testing.T) {
	c, bus := newTestCPU()
	c.Z = false
	bus.mem[0x8000] = 0xF0 // BEQ, not taken
	bus.mem[0x8001] = 0x10
	before := bus.cycles
	require.NoError(t, c.Step())
	require.Equal(t, uint64(2), bus.cycles-before)
	require.Equal(t, uint16(0x8002), c.PC)
}

func TestBranchTakenSamePageThreeCycles(t *testing.T) {
	c, bus := newTestCPU()
	c.Z = true
	bus.mem[0x8000] = 0xF0
	bus.mem[0x8001] = 0x10
	before := bus.cycles
	require.NoError(t, c.Step())
	require.Equal(t, uint64(3), bus.cycles-before)
	require.Equal(t, uint16(0x8012), c.PC)
}

func TestUnsupportedOpcodeIsFatal(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0x02 // genuinely unimplemented (KIL-class)
	err := c.Step()
	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, uint8(0x02), fault.Opcode)
}

func TestIndexedIndirectLoadsFromPointer(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0x04
	bus.mem[0x8000] = 0xA1 // LDA ($20,X)
	bus.mem[0x8001] = 0x20
	bus.mem[0x0024] = 0x74
	bus.mem[0x0025] = 0x20
	bus.mem[0x2074] = 0x55
	require.NoError(t, c.Step())
	require.Equal(t, uint8(0x55), c.A)
}

func TestStackPushPullRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x37
	bus.mem[0x8000] = 0x48 // PHA
	bus.mem[0x8001] = 0xA9 // LDA #$00 (clobber A)
	bus.mem[0x8002] = 0x00
	bus.mem[0x8003] = 0x68 // PLA
	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	require.Equal(t, uint8(0), c.A)
	require.NoError(t, c.Step())
	require.Equal(t, uint8(0x37), c.A)
}
