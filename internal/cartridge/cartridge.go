// Package cartridge implements the mapper abstraction for NES cartridges.
//
// Parsing an iNES file into PRG/CHR banks, mirroring, and a mapper id is a
// host concern and lives outside this package; New takes an already-parsed
// cartridge image.
package cartridge

import (
	"fmt"
)

// Cartridge holds a cartridge's ROM/RAM banks and routes CPU/PPU accesses
// through its mapper.
type Cartridge struct {
	prgROM []uint8
	chrROM []uint8

	mapperID uint8
	mapper   Mapper

	mirror MirrorMode

	// hasBattery is carried through from Config for hosts that want to
	// know whether a cartridge would normally persist SRAM; this core
	// doesn't implement the $6000-$7FFF SRAM window itself (see
	// internal/bus.Bus.Read/Write), so the flag has no behavior attached.
	hasBattery bool

	hasCHRRAM bool
}

// MirrorMode is the nametable mirroring arrangement a cartridge wires to the
// PPU's two physical nametables.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// Mapper is the per-cartridge address translation a mapper ID selects.
type Mapper interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// ErrUnsupportedMapper reports a mapper id this build does not implement.
// §7 treats this as fatal at load time, not a recoverable condition.
type ErrUnsupportedMapper struct {
	MapperID uint8
}

func (e *ErrUnsupportedMapper) Error() string {
	return fmt.Sprintf("cartridge: unsupported mapper id %d", e.MapperID)
}

// Config describes an already-parsed cartridge image: PRG/CHR banks,
// mirroring, battery presence, and the mapper id that selects bank-switching
// behavior. Producing this from an iNES (or any other) file format is a host
// concern, not this package's.
type Config struct {
	PRGROM     []uint8
	CHRROM     []uint8 // empty/nil means CHR RAM backed by 8KB of zeroed memory
	MapperID   uint8
	Mirror     MirrorMode
	HasBattery bool
}

// New builds a Cartridge from a pre-parsed image. It returns
// *ErrUnsupportedMapper if MapperID does not match an implemented mapper.
func New(cfg Config) (*Cartridge, error) {
	cart := &Cartridge{
		prgROM:     cfg.PRGROM,
		mapperID:   cfg.MapperID,
		mirror:     cfg.Mirror,
		hasBattery: cfg.HasBattery,
	}

	if len(cfg.CHRROM) == 0 {
		cart.chrROM = make([]uint8, 0x2000)
		cart.hasCHRRAM = true
	} else {
		cart.chrROM = cfg.CHRROM
	}

	mapper, err := createMapper(cfg.MapperID, cart)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper
	return cart, nil
}

func (c *Cartridge) ReadPRG(address uint16) uint8 { return c.mapper.ReadPRG(address) }

func (c *Cartridge) WritePRG(address uint16, value uint8) { c.mapper.WritePRG(address, value) }

func (c *Cartridge) ReadCHR(address uint16) uint8 { return c.mapper.ReadCHR(address) }

func (c *Cartridge) WriteCHR(address uint16, value uint8) { c.mapper.WriteCHR(address, value) }

// Mirroring returns the nametable mirroring arrangement this cartridge wires
// to the PPU. MirrorFourScreen is passed through as is; the PPU maps it the
// same as vertical mirroring, since only its 2KB of internal nametable VRAM
// is modeled (see DESIGN.md, Open Question decisions).
func (c *Cartridge) Mirroring() MirrorMode { return c.mirror }

func createMapper(id uint8, cart *Cartridge) (Mapper, error) {
	switch id {
	case 0:
		return NewMapper000(cart), nil
	case 2:
		return NewMapper002(cart), nil
	default:
		return nil, &ErrUnsupportedMapper{MapperID: id}
	}
}

// MockCartridge is a CHR/PRG-backed test double that logs every access, for
// tests that need an addressable cartridge without mapper dispatch.
type MockCartridge struct {
	prgROM    [0x8000]uint8
	chrROM    [0x2000]uint8
	prgRAM    [0x2000]uint8
	chrRAM    [0x2000]uint8
	mirroring MirrorMode

	prgReads  []uint16
	prgWrites []uint16
	chrReads  []uint16
	chrWrites []uint16
}

func NewMockCartridge() *MockCartridge {
	return &MockCartridge{mirroring: MirrorHorizontal}
}

func (c *MockCartridge) ReadPRG(address uint16) uint8 {
	c.prgReads = append(c.prgReads, address)
	if address >= 0x8000 {
		index := address - 0x8000
		if index >= 0x4000 && len(c.prgROM) == 0x4000 {
			index %= 0x4000
		}
		return c.prgROM[index]
	}
	if address >= 0x6000 {
		return c.prgRAM[address-0x6000]
	}
	return 0
}

func (c *MockCartridge) WritePRG(address uint16, value uint8) {
	c.prgWrites = append(c.prgWrites, address)
	if address >= 0x6000 && address < 0x8000 {
		c.prgRAM[address-0x6000] = value
	}
}

func (c *MockCartridge) ReadCHR(address uint16) uint8 {
	c.chrReads = append(c.chrReads, address)
	if address < 0x2000 {
		return c.chrROM[address]
	}
	return 0
}

func (c *MockCartridge) WriteCHR(address uint16, value uint8) {
	c.chrWrites = append(c.chrWrites, address)
	if address < 0x2000 {
		c.chrRAM[address] = value
	}
}

func (c *MockCartridge) LoadPRG(data []uint8) { copy(c.prgROM[:], data) }
func (c *MockCartridge) LoadCHR(data []uint8) { copy(c.chrROM[:], data) }

func (c *MockCartridge) SetMirroring(mode MirrorMode) { c.mirroring = mode }
func (c *MockCartridge) GetMirroring() MirrorMode     { return c.mirroring }
func (c *MockCartridge) Mirroring() MirrorMode        { return c.mirroring }

func (c *MockCartridge) ClearLogs() {
	c.prgReads = c.prgReads[:0]
	c.prgWrites = c.prgWrites[:0]
	c.chrReads = c.chrReads[:0]
	c.chrWrites = c.chrWrites[:0]
}
