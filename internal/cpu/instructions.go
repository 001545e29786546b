package cpu

// execute dispatches a fetched opcode. Each case resolves its operand
// through the addressing helpers (which themselves perform the bus
// accesses that tick the clock) and then applies the instruction's
// semantics. Read-modify-write instructions always perform a dummy write of
// the unmodified value before the real write, matching the documented NMOS
// behavior that some mapper/register side effects depend on.
func (c *CPU) execute(opcode uint8) error {
	switch opcode {

	// --- Load/Store ---
	case 0xA9:
		c.lda(c.bus.Read(c.addrImmediate()))
	case 0xA5:
		c.lda(c.bus.Read(c.addrZeroPage()))
	case 0xB5:
		c.lda(c.bus.Read(c.addrZeroPageX()))
	case 0xAD:
		c.lda(c.bus.Read(c.addrAbsolute()))
	case 0xBD:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.lda(c.bus.Read(addr))
	case 0xB9:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.lda(c.bus.Read(addr))
	case 0xA1:
		c.lda(c.bus.Read(c.addrIndexedIndirect()))
	case 0xB1:
		addr, _ := c.addrIndirectIndexed(false)
		c.lda(c.bus.Read(addr))

	case 0xA2:
		c.ldx(c.bus.Read(c.addrImmediate()))
	case 0xA6:
		c.ldx(c.bus.Read(c.addrZeroPage()))
	case 0xB6:
		c.ldx(c.bus.Read(c.addrZeroPageY()))
	case 0xAE:
		c.ldx(c.bus.Read(c.addrAbsolute()))
	case 0xBE:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.ldx(c.bus.Read(addr))

	case 0xA0:
		c.ldy(c.bus.Read(c.addrImmediate()))
	case 0xA4:
		c.ldy(c.bus.Read(c.addrZeroPage()))
	case 0xB4:
		c.ldy(c.bus.Read(c.addrZeroPageX()))
	case 0xAC:
		c.ldy(c.bus.Read(c.addrAbsolute()))
	case 0xBC:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.ldy(c.bus.Read(addr))

	case 0x85:
		c.bus.Write(c.addrZeroPage(), c.A)
	case 0x95:
		c.bus.Write(c.addrZeroPageX(), c.A)
	case 0x8D:
		c.bus.Write(c.addrAbsolute(), c.A)
	case 0x9D:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.bus.Write(addr, c.A)
	case 0x99:
		addr, _ := c.addrAbsoluteIndexed(c.Y, true)
		c.bus.Write(addr, c.A)
	case 0x81:
		c.bus.Write(c.addrIndexedIndirect(), c.A)
	case 0x91:
		addr, _ := c.addrIndirectIndexed(true)
		c.bus.Write(addr, c.A)

	case 0x86:
		c.bus.Write(c.addrZeroPage(), c.X)
	case 0x96:
		c.bus.Write(c.addrZeroPageY(), c.X)
	case 0x8E:
		c.bus.Write(c.addrAbsolute(), c.X)

	case 0x84:
		c.bus.Write(c.addrZeroPage(), c.Y)
	case 0x94:
		c.bus.Write(c.addrZeroPageX(), c.Y)
	case 0x8C:
		c.bus.Write(c.addrAbsolute(), c.Y)

	// --- Transfers ---
	case 0xAA:
		c.implied()
		c.X = c.A
		c.setZN(c.X)
	case 0x8A:
		c.implied()
		c.A = c.X
		c.setZN(c.A)
	case 0xA8:
		c.implied()
		c.Y = c.A
		c.setZN(c.Y)
	case 0x98:
		c.implied()
		c.A = c.Y
		c.setZN(c.A)
	case 0xBA:
		c.implied()
		c.X = c.SP
		c.setZN(c.X)
	case 0x9A:
		c.implied()
		c.SP = c.X

	// --- Stack ---
	case 0x48:
		c.implied()
		c.push(c.A)
	case 0x68:
		c.implied()
		c.bus.Read(stackBase | uint16(c.SP)) // dummy read before SP++
		c.A = c.pop()
		c.setZN(c.A)
	case 0x08:
		c.implied()
		c.push(c.statusByte() | flagB)
	case 0x28:
		c.implied()
		c.bus.Read(stackBase | uint16(c.SP))
		c.setStatusByte(c.pop())

	// --- Arithmetic ---
	case 0x69:
		c.adc(c.bus.Read(c.addrImmediate()))
	case 0x65:
		c.adc(c.bus.Read(c.addrZeroPage()))
	case 0x75:
		c.adc(c.bus.Read(c.addrZeroPageX()))
	case 0x6D:
		c.adc(c.bus.Read(c.addrAbsolute()))
	case 0x7D:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.adc(c.bus.Read(addr))
	case 0x79:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.adc(c.bus.Read(addr))
	case 0x61:
		c.adc(c.bus.Read(c.addrIndexedIndirect()))
	case 0x71:
		addr, _ := c.addrIndirectIndexed(false)
		c.adc(c.bus.Read(addr))

	case 0xE9, 0xEB: // SBC, plus unofficial duplicate $EB
		c.sbc(c.bus.Read(c.addrImmediate()))
	case 0xE5:
		c.sbc(c.bus.Read(c.addrZeroPage()))
	case 0xF5:
		c.sbc(c.bus.Read(c.addrZeroPageX()))
	case 0xED:
		c.sbc(c.bus.Read(c.addrAbsolute()))
	case 0xFD:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.sbc(c.bus.Read(addr))
	case 0xF9:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.sbc(c.bus.Read(addr))
	case 0xE1:
		c.sbc(c.bus.Read(c.addrIndexedIndirect()))
	case 0xF1:
		addr, _ := c.addrIndirectIndexed(false)
		c.sbc(c.bus.Read(addr))

	// --- Logic ---
	case 0x29:
		c.and(c.bus.Read(c.addrImmediate()))
	case 0x25:
		c.and(c.bus.Read(c.addrZeroPage()))
	case 0x35:
		c.and(c.bus.Read(c.addrZeroPageX()))
	case 0x2D:
		c.and(c.bus.Read(c.addrAbsolute()))
	case 0x3D:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.and(c.bus.Read(addr))
	case 0x39:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.and(c.bus.Read(addr))
	case 0x21:
		c.and(c.bus.Read(c.addrIndexedIndirect()))
	case 0x31:
		addr, _ := c.addrIndirectIndexed(false)
		c.and(c.bus.Read(addr))

	case 0x09:
		c.ora(c.bus.Read(c.addrImmediate()))
	case 0x05:
		c.ora(c.bus.Read(c.addrZeroPage()))
	case 0x15:
		c.ora(c.bus.Read(c.addrZeroPageX()))
	case 0x0D:
		c.ora(c.bus.Read(c.addrAbsolute()))
	case 0x1D:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.ora(c.bus.Read(addr))
	case 0x19:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.ora(c.bus.Read(addr))
	case 0x01:
		c.ora(c.bus.Read(c.addrIndexedIndirect()))
	case 0x11:
		addr, _ := c.addrIndirectIndexed(false)
		c.ora(c.bus.Read(addr))

	case 0x49:
		c.eor(c.bus.Read(c.addrImmediate()))
	case 0x45:
		c.eor(c.bus.Read(c.addrZeroPage()))
	case 0x55:
		c.eor(c.bus.Read(c.addrZeroPageX()))
	case 0x4D:
		c.eor(c.bus.Read(c.addrAbsolute()))
	case 0x5D:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.eor(c.bus.Read(addr))
	case 0x59:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.eor(c.bus.Read(addr))
	case 0x41:
		c.eor(c.bus.Read(c.addrIndexedIndirect()))
	case 0x51:
		addr, _ := c.addrIndirectIndexed(false)
		c.eor(c.bus.Read(addr))

	case 0x24:
		c.bit(c.bus.Read(c.addrZeroPage()))
	case 0x2C:
		c.bit(c.bus.Read(c.addrAbsolute()))

	// --- Compare ---
	case 0xC9:
		c.compare(c.A, c.bus.Read(c.addrImmediate()))
	case 0xC5:
		c.compare(c.A, c.bus.Read(c.addrZeroPage()))
	case 0xD5:
		c.compare(c.A, c.bus.Read(c.addrZeroPageX()))
	case 0xCD:
		c.compare(c.A, c.bus.Read(c.addrAbsolute()))
	case 0xDD:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.compare(c.A, c.bus.Read(addr))
	case 0xD9:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.compare(c.A, c.bus.Read(addr))
	case 0xC1:
		c.compare(c.A, c.bus.Read(c.addrIndexedIndirect()))
	case 0xD1:
		addr, _ := c.addrIndirectIndexed(false)
		c.compare(c.A, c.bus.Read(addr))

	case 0xE0:
		c.compare(c.X, c.bus.Read(c.addrImmediate()))
	case 0xE4:
		c.compare(c.X, c.bus.Read(c.addrZeroPage()))
	case 0xEC:
		c.compare(c.X, c.bus.Read(c.addrAbsolute()))

	case 0xC0:
		c.compare(c.Y, c.bus.Read(c.addrImmediate()))
	case 0xC4:
		c.compare(c.Y, c.bus.Read(c.addrZeroPage()))
	case 0xCC:
		c.compare(c.Y, c.bus.Read(c.addrAbsolute()))

	// --- Increment/Decrement (memory) ---
	case 0xE6:
		c.rmw(c.addrZeroPage(), incVal(c))
	case 0xF6:
		c.rmw(c.addrZeroPageX(), incVal(c))
	case 0xEE:
		c.rmw(c.addrAbsolute(), incVal(c))
	case 0xFE:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, incVal(c))

	case 0xC6:
		c.rmw(c.addrZeroPage(), decVal(c))
	case 0xD6:
		c.rmw(c.addrZeroPageX(), decVal(c))
	case 0xCE:
		c.rmw(c.addrAbsolute(), decVal(c))
	case 0xDE:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, decVal(c))

	case 0xE8:
		c.implied()
		c.X++
		c.setZN(c.X)
	case 0xCA:
		c.implied()
		c.X--
		c.setZN(c.X)
	case 0xC8:
		c.implied()
		c.Y++
		c.setZN(c.Y)
	case 0x88:
		c.implied()
		c.Y--
		c.setZN(c.Y)

	// --- Shifts/Rotates ---
	case 0x0A:
		c.implied()
		c.A = c.aslVal(c.A)
	case 0x06:
		c.rmw(c.addrZeroPage(), c.aslVal)
	case 0x16:
		c.rmw(c.addrZeroPageX(), c.aslVal)
	case 0x0E:
		c.rmw(c.addrAbsolute(), c.aslVal)
	case 0x1E:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.aslVal)

	case 0x4A:
		c.implied()
		c.A = c.lsrVal(c.A)
	case 0x46:
		c.rmw(c.addrZeroPage(), c.lsrVal)
	case 0x56:
		c.rmw(c.addrZeroPageX(), c.lsrVal)
	case 0x4E:
		c.rmw(c.addrAbsolute(), c.lsrVal)
	case 0x5E:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.lsrVal)

	case 0x2A:
		c.implied()
		c.A = c.rolVal(c.A)
	case 0x26:
		c.rmw(c.addrZeroPage(), c.rolVal)
	case 0x36:
		c.rmw(c.addrZeroPageX(), c.rolVal)
	case 0x2E:
		c.rmw(c.addrAbsolute(), c.rolVal)
	case 0x3E:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.rolVal)

	case 0x6A:
		c.implied()
		c.A = c.rorVal(c.A)
	case 0x66:
		c.rmw(c.addrZeroPage(), c.rorVal)
	case 0x76:
		c.rmw(c.addrZeroPageX(), c.rorVal)
	case 0x6E:
		c.rmw(c.addrAbsolute(), c.rorVal)
	case 0x7E:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.rorVal)

	// --- Jumps/Calls ---
	case 0x4C:
		c.PC = c.addrAbsolute()
	case 0x6C:
		c.PC = c.addrIndirect()
	case 0x20: // JSR
		lo := uint16(c.fetch())
		c.bus.Read(stackBase | uint16(c.SP)) // internal delay cycle
		pushPC := c.PC                       // address of the operand's high byte
		c.push(uint8(pushPC >> 8))
		c.push(uint8(pushPC))
		hi := uint16(c.fetch())
		c.PC = hi<<8 | lo
	case 0x60: // RTS
		c.implied()
		c.bus.Read(stackBase | uint16(c.SP))
		lo := uint16(c.pop())
		hi := uint16(c.pop())
		c.PC = (hi<<8 | lo) + 1
		c.bus.Read(c.PC - 1) // final internal cycle
	case 0x40: // RTI
		c.implied()
		c.bus.Read(stackBase | uint16(c.SP))
		c.setStatusByte(c.pop())
		lo := uint16(c.pop())
		hi := uint16(c.pop())
		c.PC = hi<<8 | lo
	case 0x00: // BRK
		c.fetch() // the padding byte after BRK's opcode
		c.push(uint8(c.PC >> 8))
		c.push(uint8(c.PC))
		c.push(c.statusByte() | flagB)
		c.I = true
		lo := uint16(c.bus.Read(irqVector))
		hi := uint16(c.bus.Read(irqVector + 1))
		c.PC = hi<<8 | lo

	// --- Branches ---
	case 0x90:
		c.branch(!c.C)
	case 0xB0:
		c.branch(c.C)
	case 0xD0:
		c.branch(!c.Z)
	case 0xF0:
		c.branch(c.Z)
	case 0x10:
		c.branch(!c.N)
	case 0x30:
		c.branch(c.N)
	case 0x50:
		c.branch(!c.V)
	case 0x70:
		c.branch(c.V)

	// --- Flags ---
	case 0x18:
		c.implied()
		c.C = false
	case 0x38:
		c.implied()
		c.C = true
	case 0x58:
		c.implied()
		c.I = false
	case 0x78:
		c.implied()
		c.I = true
	case 0xB8:
		c.implied()
		c.V = false
	case 0xD8:
		c.implied()
		c.D = false
	case 0xF8:
		c.implied()
		c.D = true

	// --- NOP ---
	case 0xEA:
		c.implied()

	// --- Unofficial: NOP variants (widths matter for PC advance) ---
	case 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		c.implied()
	case 0x80, 0x82, 0x89, 0xC2, 0xE2:
		c.bus.Read(c.addrImmediate())
	case 0x04, 0x44, 0x64:
		c.bus.Read(c.addrZeroPage())
	case 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4:
		c.bus.Read(c.addrZeroPageX())
	case 0x0C:
		c.bus.Read(c.addrAbsolute())
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		addr, _ := c.addrAbsoluteIndexed(c.X, false)
		c.bus.Read(addr)

	// --- Unofficial: combined loads/stores/RMW ---
	case 0xA7:
		c.lax(c.bus.Read(c.addrZeroPage()))
	case 0xB7:
		c.lax(c.bus.Read(c.addrZeroPageY()))
	case 0xAF:
		c.lax(c.bus.Read(c.addrAbsolute()))
	case 0xBF:
		addr, _ := c.addrAbsoluteIndexed(c.Y, false)
		c.lax(c.bus.Read(addr))
	case 0xA3:
		c.lax(c.bus.Read(c.addrIndexedIndirect()))
	case 0xB3:
		addr, _ := c.addrIndirectIndexed(false)
		c.lax(c.bus.Read(addr))

	case 0x87:
		c.bus.Write(c.addrZeroPage(), c.A&c.X)
	case 0x97:
		c.bus.Write(c.addrZeroPageY(), c.A&c.X)
	case 0x8F:
		c.bus.Write(c.addrAbsolute(), c.A&c.X)
	case 0x83:
		c.bus.Write(c.addrIndexedIndirect(), c.A&c.X)

	case 0xC7:
		c.rmw(c.addrZeroPage(), c.dcpVal)
	case 0xD7:
		c.rmw(c.addrZeroPageX(), c.dcpVal)
	case 0xCF:
		c.rmw(c.addrAbsolute(), c.dcpVal)
	case 0xDF:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.dcpVal)
	case 0xDB:
		addr, _ := c.addrAbsoluteIndexed(c.Y, true)
		c.rmw(addr, c.dcpVal)
	case 0xC3:
		c.rmw(c.addrIndexedIndirect(), c.dcpVal)
	case 0xD3:
		addr, _ := c.addrIndirectIndexed(true)
		c.rmw(addr, c.dcpVal)

	case 0xE7:
		c.rmw(c.addrZeroPage(), c.isbVal)
	case 0xF7:
		c.rmw(c.addrZeroPageX(), c.isbVal)
	case 0xEF:
		c.rmw(c.addrAbsolute(), c.isbVal)
	case 0xFF:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.isbVal)
	case 0xFB:
		addr, _ := c.addrAbsoluteIndexed(c.Y, true)
		c.rmw(addr, c.isbVal)
	case 0xE3:
		c.rmw(c.addrIndexedIndirect(), c.isbVal)
	case 0xF3:
		addr, _ := c.addrIndirectIndexed(true)
		c.rmw(addr, c.isbVal)

	case 0x07:
		c.rmw(c.addrZeroPage(), c.sloVal)
	case 0x17:
		c.rmw(c.addrZeroPageX(), c.sloVal)
	case 0x0F:
		c.rmw(c.addrAbsolute(), c.sloVal)
	case 0x1F:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.sloVal)
	case 0x1B:
		addr, _ := c.addrAbsoluteIndexed(c.Y, true)
		c.rmw(addr, c.sloVal)
	case 0x03:
		c.rmw(c.addrIndexedIndirect(), c.sloVal)
	case 0x13:
		addr, _ := c.addrIndirectIndexed(true)
		c.rmw(addr, c.sloVal)

	case 0x27:
		c.rmw(c.addrZeroPage(), c.rlaVal)
	case 0x37:
		c.rmw(c.addrZeroPageX(), c.rlaVal)
	case 0x2F:
		c.rmw(c.addrAbsolute(), c.rlaVal)
	case 0x3F:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.rlaVal)
	case 0x3B:
		addr, _ := c.addrAbsoluteIndexed(c.Y, true)
		c.rmw(addr, c.rlaVal)
	case 0x23:
		c.rmw(c.addrIndexedIndirect(), c.rlaVal)
	case 0x33:
		addr, _ := c.addrIndirectIndexed(true)
		c.rmw(addr, c.rlaVal)

	case 0x47:
		c.rmw(c.addrZeroPage(), c.sreVal)
	case 0x57:
		c.rmw(c.addrZeroPageX(), c.sreVal)
	case 0x4F:
		c.rmw(c.addrAbsolute(), c.sreVal)
	case 0x5F:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.sreVal)
	case 0x5B:
		addr, _ := c.addrAbsoluteIndexed(c.Y, true)
		c.rmw(addr, c.sreVal)
	case 0x43:
		c.rmw(c.addrIndexedIndirect(), c.sreVal)
	case 0x53:
		addr, _ := c.addrIndirectIndexed(true)
		c.rmw(addr, c.sreVal)

	case 0x67:
		c.rmw(c.addrZeroPage(), c.rraVal)
	case 0x77:
		c.rmw(c.addrZeroPageX(), c.rraVal)
	case 0x6F:
		c.rmw(c.addrAbsolute(), c.rraVal)
	case 0x7F:
		addr, _ := c.addrAbsoluteIndexed(c.X, true)
		c.rmw(addr, c.rraVal)
	case 0x7B:
		addr, _ := c.addrAbsoluteIndexed(c.Y, true)
		c.rmw(addr, c.rraVal)
	case 0x63:
		c.rmw(c.addrIndexedIndirect(), c.rraVal)
	case 0x73:
		addr, _ := c.addrIndirectIndexed(true)
		c.rmw(addr, c.rraVal)

	case 0x0B, 0x2B: // ANC
		v := c.bus.Read(c.addrImmediate())
		c.A &= v
		c.setZN(c.A)
		c.C = c.A&0x80 != 0
	case 0x4B: // ALR
		v := c.bus.Read(c.addrImmediate())
		c.A &= v
		c.A = c.lsrVal(c.A)
	case 0x6B: // ARR
		v := c.bus.Read(c.addrImmediate())
		c.A &= v
		c.A = c.rorVal(c.A)
		c.C = c.A&0x40 != 0
		c.V = (c.A&0x40 != 0) != (c.A&0x20 != 0)
	case 0xCB: // AXS/SBX
		v := c.bus.Read(c.addrImmediate())
		r := (c.A & c.X) - v
		c.C = (c.A & c.X) >= v
		c.X = r
		c.setZN(c.X)

	default:
		// Undocumented opcodes this core doesn't implement are fatal: §4.1/§7
		// require aborting rather than silently treating them as a NOP.
		return c.fault(opcode)
	}
	return nil
}

func (c *CPU) implied() { c.bus.Read(c.PC) }

// branch implements the three-tier branch timing: 2 cycles not taken, 3
// taken (same page), 4 taken (crossing a page).
func (c *CPU) branch(condition bool) {
	offset := int8(c.fetch())
	if !condition {
		return
	}
	c.bus.Read(c.PC) // extra cycle for the taken branch
	target := uint16(int32(c.PC) + int32(offset))
	if target&0xFF00 != c.PC&0xFF00 {
		c.bus.Read((c.PC & 0xFF00) | (target & 0x00FF)) // page-cross cycle
	}
	c.PC = target
}

func (c *CPU) rmw(addr uint16, op func(uint8) uint8) {
	old := c.bus.Read(addr)
	c.bus.Write(addr, old) // dummy write of the unmodified value
	c.bus.Write(addr, op(old))
}

func (c *CPU) lda(v uint8) { c.A = v; c.setZN(c.A) }
func (c *CPU) ldx(v uint8) { c.X = v; c.setZN(c.X) }
func (c *CPU) ldy(v uint8) { c.Y = v; c.setZN(c.Y) }
func (c *CPU) lax(v uint8) { c.A = v; c.X = v; c.setZN(v) }

func (c *CPU) and(v uint8) { c.A &= v; c.setZN(c.A) }
func (c *CPU) ora(v uint8) { c.A |= v; c.setZN(c.A) }
func (c *CPU) eor(v uint8) { c.A ^= v; c.setZN(c.A) }

func (c *CPU) bit(v uint8) {
	c.Z = c.A&v == 0
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
}

func (c *CPU) compare(reg, v uint8) {
	r := reg - v
	c.C = reg >= v
	c.setZN(r)
}

func (c *CPU) adc(v uint8) {
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.V = (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.C = sum > 0xFF
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) sbc(v uint8) {
	c.adc(^v)
}

func (c *CPU) aslVal(v uint8) uint8 {
	c.C = v&0x80 != 0
	r := v << 1
	c.setZN(r)
	return r
}

func (c *CPU) lsrVal(v uint8) uint8 {
	c.C = v&0x01 != 0
	r := v >> 1
	c.setZN(r)
	return r
}

func (c *CPU) rolVal(v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 1
	}
	c.C = v&0x80 != 0
	r := (v << 1) | carryIn
	c.setZN(r)
	return r
}

func (c *CPU) rorVal(v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	c.C = v&0x01 != 0
	r := (v >> 1) | carryIn
	c.setZN(r)
	return r
}

func incVal(c *CPU) func(uint8) uint8 {
	return func(v uint8) uint8 {
		r := v + 1
		c.setZN(r)
		return r
	}
}

func decVal(c *CPU) func(uint8) uint8 {
	return func(v uint8) uint8 {
		r := v - 1
		c.setZN(r)
		return r
	}
}

func (c *CPU) dcpVal(v uint8) uint8 {
	r := v - 1
	c.setZN(r)
	c.compare(c.A, r)
	return r
}

func (c *CPU) isbVal(v uint8) uint8 {
	r := v + 1
	c.sbc(r)
	return r
}

func (c *CPU) sloVal(v uint8) uint8 {
	r := c.aslVal(v)
	c.A |= r
	c.setZN(c.A)
	return r
}

func (c *CPU) rlaVal(v uint8) uint8 {
	r := c.rolVal(v)
	c.A &= r
	c.setZN(c.A)
	return r
}

func (c *CPU) sreVal(v uint8) uint8 {
	r := c.lsrVal(v)
	c.A ^= r
	c.setZN(c.A)
	return r
}

func (c *CPU) rraVal(v uint8) uint8 {
	r := c.rorVal(v)
	c.adc(r)
	return r
}
