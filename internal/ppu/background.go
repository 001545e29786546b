package ppu

// Background rendering uses the documented 2C02 shift-register pipeline: two
// 16-bit pattern shifters and two 8-bit palette-attribute shifters, reloaded
// every 8 dots from a one-tile-ahead set of fetch latches. v/t are kept as
// packed 15-bit registers (fine Y | nametable select | coarse Y | coarse X)
// rather than split fields, matching how the hardware itself is wired.

func (p *PPU) loadBackgroundShifters() {
	p.bgShiftPatternLo = (p.bgShiftPatternLo &^ 0x00FF) | uint16(p.nextTileLSB)
	p.bgShiftPatternHi = (p.bgShiftPatternHi &^ 0x00FF) | uint16(p.nextTileMSB)

	var lo, hi uint8
	if p.nextTileAttr&0x01 != 0 {
		lo = 0xFF
	}
	if p.nextTileAttr&0x02 != 0 {
		hi = 0xFF
	}
	p.bgShiftAttrLo = (p.bgShiftAttrLo &^ 0xFF00) | uint16(lo)<<8
	p.bgShiftAttrHi = (p.bgShiftAttrHi &^ 0xFF00) | uint16(hi)<<8
}

func (p *PPU) updateShifters() {
	if !p.showBackground() {
		return
	}
	p.bgShiftPatternLo <<= 1
	p.bgShiftPatternHi <<= 1
	p.bgShiftAttrLo <<= 1
	p.bgShiftAttrHi <<= 1
}

func (p *PPU) fetchNametableByte() {
	addr := 0x2000 | (p.v & 0x0FFF)
	p.nextTileID = p.readVRAM(addr)
}

func (p *PPU) fetchAttributeByte() {
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	attr := p.readVRAM(addr)
	shift := ((p.v >> 4) & 0x04) | (p.v & 0x02)
	p.nextTileAttr = (attr >> shift) & 0x03
}

func (p *PPU) fetchPatternLow() {
	fineY := (p.v >> 12) & 0x07
	addr := p.backgroundPatternBase() + uint16(p.nextTileID)*16 + fineY
	p.nextTileLSB = p.readVRAM(addr)
}

func (p *PPU) fetchPatternHigh() {
	fineY := (p.v >> 12) & 0x07
	addr := p.backgroundPatternBase() + uint16(p.nextTileID)*16 + fineY + 8
	p.nextTileMSB = p.readVRAM(addr)
}

// incrementCoarseX advances the coarse-X field of v, wrapping into the
// horizontal nametable neighbor at the tile boundary.
func (p *PPU) incrementCoarseX() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY advances fine Y, carrying into coarse Y and wrapping the
// vertical nametable neighbor at the 30-row boundary (the two attribute rows
// beyond row 29 are skipped per the documented quirk).
func (p *PPU) incrementY() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) transferAddressX() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) transferAddressY() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// backgroundPixel returns the palette index (0-15) selected by the shift
// registers for the current fine-x offset, or 0 (transparent) past the left
// clip column when that's masked off.
func (p *PPU) backgroundPixel(dotX int) (paletteIdx uint8, opaque bool) {
	if !p.showBackground() {
		return 0, false
	}
	if dotX < 8 && !p.showBgLeft() {
		return 0, false
	}
	mux := uint16(0x8000) >> p.x
	p0 := uint8(0)
	if p.bgShiftPatternLo&mux != 0 {
		p0 = 1
	}
	p1 := uint8(0)
	if p.bgShiftPatternHi&mux != 0 {
		p1 = 1
	}
	a0 := uint8(0)
	if p.bgShiftAttrLo&mux != 0 {
		a0 = 1
	}
	a1 := uint8(0)
	if p.bgShiftAttrHi&mux != 0 {
		a1 = 1
	}
	pixel := p0 | (p1 << 1)
	if pixel == 0 {
		return 0, false
	}
	attr := a0 | (a1 << 1)
	return (attr << 2) | pixel, true
}
