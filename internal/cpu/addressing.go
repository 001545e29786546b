package cpu

// AddressingMode names an operand-resolution pattern. Kept mostly for
// disassembly/logging; the address resolvers below are what actually issue
// the bus accesses (and so the correct cycle counts fall out of how many
// reads/writes each one performs, rather than a separate lookup table).
type AddressingMode uint8

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (d,X)
	IndirectIndexed // (d),Y
)

// addrImmediate returns the address of the operand byte (PC, before
// advancing past it) without reading it; the instruction handler performs
// the actual read, which is what ticks the bus.
func (c *CPU) addrImmediate() uint16 {
	addr := c.PC
	c.PC++
	return addr
}

func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) addrZeroPageX() uint16 {
	base := c.fetch()
	c.bus.Read(uint16(base)) // dummy read before the index is added
	return uint16(base + c.X)
}

func (c *CPU) addrZeroPageY() uint16 {
	base := c.fetch()
	c.bus.Read(uint16(base))
	return uint16(base + c.Y)
}

func (c *CPU) addrAbsolute() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

// addrAbsoluteIndexed resolves abs,X or abs,Y. forcePenalty is set by
// write/read-modify-write instructions, which always take the extra cycle
// regardless of whether the index actually crossed a page (the CPU can't
// know it won't need the corrected high byte until it's too late to skip
// the read).
func (c *CPU) addrAbsoluteIndexed(index uint8, forcePenalty bool) (addr uint16, crossed bool) {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	base := hi<<8 | lo
	addr = base + uint16(index)
	crossed = (addr & 0xFF00) != (base & 0xFF00)
	if crossed || forcePenalty {
		wrongHi := base & 0xFF00
		c.bus.Read(wrongHi | (addr & 0x00FF))
	}
	return addr, crossed
}

func (c *CPU) addrIndirect() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	ptr := hi<<8 | lo
	// JMP (indirect) page-wrap bug: if the low byte of the pointer is
	// $FF, the high byte is fetched from the start of the same page.
	loAddr := ptr
	hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
	rlo := uint16(c.bus.Read(loAddr))
	rhi := uint16(c.bus.Read(hiAddr))
	return rhi<<8 | rlo
}

func (c *CPU) addrIndexedIndirect() uint16 {
	base := c.fetch()
	c.bus.Read(uint16(base)) // dummy read before indexing
	ptr := base + c.X
	lo := uint16(c.bus.Read(uint16(ptr)))
	hi := uint16(c.bus.Read(uint16(ptr + 1)))
	return hi<<8 | lo
}

func (c *CPU) addrIndirectIndexed(forcePenalty bool) (addr uint16, crossed bool) {
	base := c.fetch()
	lo := uint16(c.bus.Read(uint16(base)))
	hi := uint16(c.bus.Read(uint16(base + 1)))
	ptrBase := hi<<8 | lo
	addr = ptrBase + uint16(c.Y)
	crossed = (addr & 0xFF00) != (ptrBase & 0xFF00)
	if crossed || forcePenalty {
		wrongHi := ptrBase & 0xFF00
		c.bus.Read(wrongHi | (addr & 0x00FF))
	}
	return addr, crossed
}
