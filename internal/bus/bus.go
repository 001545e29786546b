// Package bus implements the NES address bus: RAM, the CPU-visible
// $0000-$FFFF decode, OAM DMA, and the tick that advances the PPU three
// dots per CPU cycle. The bus exclusively owns the PPU, the APU, the
// controller ports, and the cartridge; the CPU exclusively owns the bus.
package bus

import (
	"github.com/golang/glog"

	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/input"
	"gones/internal/ppu"
)

// Bus is the single point every CPU memory access routes through. Every
// Read/Write call ticks the clock exactly once (a write to $4014 also runs
// the OAM DMA cycles, see Write): a tick advances the PPU three dots and the
// APU one step.
type Bus struct {
	ram [0x0800]uint8

	PPU   *ppu.PPU
	APU   *apu.APU
	Input *input.InputState

	cart *cartridge.Cartridge

	cycles uint64

	openBus uint8

	nmiPending bool
}

// New wires up a bus with its PPU, APU, and controller ports. No cartridge
// is attached until LoadCartridge is called; reads/writes to cartridge
// space before that return open bus.
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}
	b.PPU.SetNMICallback(func() { b.nmiPending = true })
	return b
}

// LoadCartridge attaches a cartridge, wiring its CHR pattern tables and
// mirroring mode into the PPU.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
	b.PPU.AttachCHR(cart, uint8(cart.Mirroring()))
}

// Reset re-initializes bus-owned devices for a power-on/reset sequence. The
// CPU drives its own reset vector fetch through Read, which still ticks.
func (b *Bus) Reset() {
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()
	b.cycles = 0
	b.nmiPending = false
}

// Tick advances the clock by one CPU cycle: three PPU dots, one APU step.
func (b *Bus) Tick() {
	b.cycles++
	b.PPU.Step()
	b.PPU.Step()
	b.PPU.Step()
	b.APU.Step()
}

// Cycles returns the total number of CPU cycles ticked since the last Reset.
func (b *Bus) Cycles() uint64 { return b.cycles }

// TakeNMI reports and clears a pending NMI edge raised by the PPU since the
// last call. The CPU polls this once per instruction boundary.
func (b *Bus) TakeNMI() bool {
	v := b.nmiPending
	b.nmiPending = false
	return v
}

// Read performs a CPU memory read, ticking the bus exactly once.
func (b *Bus) Read(address uint16) uint8 {
	defer b.Tick()
	switch {
	case address < 0x2000:
		v := b.ram[address&0x07FF]
		b.openBus = v
		return v
	case address < 0x4000:
		v := b.PPU.ReadRegister(address)
		b.openBus = v
		return v
	case address == 0x4016, address == 0x4017:
		v := b.Input.Read(address)
		b.openBus = (b.openBus &^ 0x1F) | (v & 0x1F)
		return v
	case address == 0x4015:
		v := b.APU.ReadRegister(address)
		b.openBus = v
		return v
	case address >= 0x6000 && address < 0x8000:
		// $6000-$7FFF is the cartridge SRAM window; this core reserves it
		// without implementing battery-backed RAM and reads it as 0.
		return 0
	case address < 0x6000:
		// Remaining $4000-$5FFF addresses read as open bus.
		return b.openBus
	default:
		if b.cart == nil {
			return b.openBus
		}
		v := b.cart.ReadPRG(address)
		b.openBus = v
		return v
	}
}

// Write performs a CPU memory write, ticking the bus exactly once. A write
// to $4014 additionally runs the 513/514-cycle OAM DMA sequence before
// returning, each of its cycles ticking the bus in turn.
func (b *Bus) Write(address uint16, value uint8) {
	b.openBus = value
	switch {
	case address < 0x2000:
		b.ram[address&0x07FF] = value
		b.Tick()
	case address < 0x4000:
		b.PPU.WriteRegister(address, value)
		b.Tick()
	case address == 0x4014:
		b.Tick()
		b.runOAMDMA(value)
	case address == 0x4016:
		b.Input.Write(address, value)
		b.Tick()
	case address <= 0x4013, address == 0x4015, address == 0x4017:
		b.APU.WriteRegister(address, value)
		b.Tick()
	case address < 0x8000:
		// $6000-$7FFF reserved, see Read.
		b.Tick()
	default:
		if b.cart != nil {
			b.cart.WritePRG(address, value)
		}
		b.Tick()
	}
}

// runOAMDMA copies 256 bytes from page*0x100 into OAM. Real hardware
// suspends the CPU for 513 cycles (514 if the write landed on an odd CPU
// cycle): one alignment cycle, then 256 alternating read/write cycle pairs.
// Every one of those cycles ticks the bus, so the PPU keeps advancing while
// the CPU is stalled.
func (b *Bus) runOAMDMA(page uint8) {
	glog.V(2).Infof("bus: OAM DMA from page $%02X00", page)
	if b.cycles%2 == 1 {
		b.Tick() // extra alignment cycle when DMA starts on an odd CPU cycle
	}
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		v := b.Read(base + uint16(i)) // read cycle (ticks once via Read)
		b.PPU.WriteOAM(uint8(i), v)
		b.Tick() // write cycle
	}
}
