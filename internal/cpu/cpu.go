// Package cpu implements a 6502 core (NMOS subset, no decimal mode). Every
// memory access goes through Bus.Read/Bus.Write, so the bus ticks exactly
// once per access instead of being stepped in a lump sum after the fact.
package cpu

import (
	"fmt"

	"github.com/golang/glog"
)

// Bus is the interconnect a CPU drives. Every Read/Write call is expected to
// advance the rest of the system (PPU, APU) by one tick before returning.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Fault is returned from Step when execution hits an opcode this core does
// not implement. It is the only condition Step ever reports as an error;
// everything else (open-bus reads, stack wrap, address folding) is silent.
type Fault struct {
	PC     uint16
	Opcode uint8
	Cycle  uint64
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu: unimplemented opcode $%02X at PC=$%04X (cycle %d)", f.Opcode, f.PC, f.Cycle)
}

const (
	stackBase   uint16 = 0x0100
	nmiVector   uint16 = 0xFFFA
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE
)

// CPU is a 6502 register file plus the interrupt latches the bus pokes.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	C, Z, I, D, B, V, N bool

	bus Bus

	irqLine    bool
	nmiLatched bool
}

// New builds a CPU driving the given bus.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset performs the 7-cycle 6502 reset sequence: two throwaway reads, three
// stack "pushes" that don't actually write (SP only decrements), and the
// two-byte reset vector read into PC.
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.I = true
	c.B = true

	// 2 dummy reads of the current PC before the stack sequence.
	c.bus.Read(c.PC)
	c.bus.Read(c.PC)
	// 3 "pushes": SP decrements, nothing is written to RAM in real hardware,
	// but each still occupies a bus cycle.
	c.bus.Read(stackBase | uint16(c.SP))
	c.SP--
	c.bus.Read(stackBase | uint16(c.SP))
	c.SP--
	c.bus.Read(stackBase | uint16(c.SP))
	c.SP--

	lo := uint16(c.bus.Read(resetVector))
	hi := uint16(c.bus.Read(resetVector + 1))
	c.PC = (hi << 8) | lo
}

// SetNMI latches an NMI edge for the next Step to service. internal/console
// calls it whenever its bus's TakeNMI reports an edge; tests call it directly.
func (c *CPU) SetNMI() { c.nmiLatched = true }

// SetIRQ sets/clears the level-triggered IRQ line.
func (c *CPU) SetIRQ(asserted bool) { c.irqLine = asserted }

// Step services a pending NMI (edge, highest priority) or else a pending IRQ
// (level, masked by I); a Step that services an interrupt returns without
// executing an instruction. Otherwise it executes exactly one instruction.
// It returns a *Fault only when the fetched opcode has no implementation.
func (c *CPU) Step() error {
	if c.nmiLatched {
		c.nmiLatched = false
		c.serviceInterrupt(nmiVector, false)
		return nil
	}
	if c.irqLine && !c.I {
		c.serviceInterrupt(irqVector, false)
		return nil
	}

	opcode := c.fetch()
	return c.execute(opcode)
}

func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.bus.Read(c.PC) // 2 internal cycles before the sequence proper
	c.bus.Read(c.PC)
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	status := c.statusByte()
	if brk {
		status |= flagB
	} else {
		status &^= flagB
	}
	c.push(status)
	c.I = true
	lo := uint16(c.bus.Read(vector))
	hi := uint16(c.bus.Read(vector + 1))
	c.PC = (hi << 8) | lo
	glog.V(2).Infof("cpu: servicing interrupt vector=$%04X new PC=$%04X", vector, c.PC)
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.bus.Read(stackBase | uint16(c.SP))
}

// Status register bit masks.
const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

func (c *CPU) statusByte() uint8 {
	var s uint8 = flagU
	if c.C {
		s |= flagC
	}
	if c.Z {
		s |= flagZ
	}
	if c.I {
		s |= flagI
	}
	if c.D {
		s |= flagD
	}
	if c.B {
		s |= flagB
	}
	if c.V {
		s |= flagV
	}
	if c.N {
		s |= flagN
	}
	return s
}

func (c *CPU) setStatusByte(s uint8) {
	c.C = s&flagC != 0
	c.Z = s&flagZ != 0
	c.I = s&flagI != 0
	c.D = s&flagD != 0
	c.B = s&flagB != 0
	c.V = s&flagV != 0
	c.N = s&flagN != 0
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

func (c *CPU) fault(opcode uint8) error {
	f := &Fault{PC: c.PC - 1, Opcode: opcode}
	if counter, ok := c.bus.(interface{ Cycles() uint64 }); ok {
		f.Cycle = counter.Cycles()
	}
	glog.Errorf("%s", f.Error())
	return f
}
