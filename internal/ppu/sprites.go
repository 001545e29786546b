package ppu

// Sprite evaluation runs once per visible scanline. Secondary OAM is
// populated with the (up to 8) sprites in range for the *next* scanline,
// reproducing the documented hardware overflow bug: once 8 sprites have been
// found, the evaluator keeps walking OAM as a flat byte stream (stepping by
// one byte, not by four) rather than resetting to each candidate's Y byte,
// so it can spuriously flag overflow against a tile-index/attribute/X byte
// that happens to fall in range. Because the walk visits every remaining
// byte, the Y byte of a genuine in-range 9th sprite is still examined, so a
// real overflow is never missed.

type spriteUnit struct {
	patternLo uint8
	patternHi uint8
	attr      uint8
	x         uint8
	isSprite0 bool
}

func (p *PPU) clearSecondaryOAM() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.secondaryCount = 0
	p.spriteOverflow = false
	p.sprite0OnScanlineNext = false
}

// evaluateSprites scans primary OAM against `scanline` (the scanline these
// results will be rendered on, i.e. the next one) and fills secondary OAM.
func (p *PPU) evaluateSprites(scanline int) {
	height := p.spriteHeight()
	n := 0
	for n < 64 && p.secondaryCount < 8 {
		y := int(p.oam[n*4])
		if spriteInRange(scanline, y, height) {
			copy(p.secondaryOAM[p.secondaryCount*4:p.secondaryCount*4+4], p.oam[n*4:n*4+4])
			if n == 0 {
				p.sprite0OnScanlineNext = true
			}
			p.secondaryCount++
		}
		n++
	}

	if p.secondaryCount < 8 {
		return
	}

	// Overflow-bug phase: walk OAM as a flat byte stream starting right
	// after the 8th match, incrementing by one byte per check instead of
	// four, so the "Y" compared on each step drifts into tile-index,
	// attribute, and X bytes of subsequent sprites.
	bytePtr := n * 4
	for bytePtr < 256 {
		y := int(p.oam[bytePtr])
		if spriteInRange(scanline, y, height) {
			p.spriteOverflow = true
			break
		}
		bytePtr++
	}
}

func spriteInRange(scanline, y, height int) bool {
	d := scanline - y
	return d >= 0 && d < height
}

// loadSpriteRegisters fetches pattern bytes for every sprite secondary
// evaluation placed for this scanline, applying horizontal/vertical flip and
// 8x16 tile-pair addressing.
func (p *PPU) loadSpriteRegisters(scanline int) {
	height := p.spriteHeight()
	p.spriteCount = p.secondaryCount
	p.sprite0OnScanline = p.sprite0OnScanlineNext

	for i := 0; i < p.secondaryCount; i++ {
		y := p.secondaryOAM[i*4]
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		x := p.secondaryOAM[i*4+3]

		row := scanline - int(y)
		flipV := attr&0x80 != 0
		flipH := attr&0x40 != 0
		if flipV {
			row = height - 1 - row
		}

		var base uint16
		var patternIdx uint16
		if height == 16 {
			patternIdx = uint16(tile >> 1)
			base = uint16(tile&1) * 0x1000
			if row >= 8 {
				row -= 8
				patternIdx++
			}
		} else {
			patternIdx = uint16(tile)
			base = p.spritePatternBase()
		}

		addr := base + patternIdx*16 + uint16(row)
		lo := p.readVRAM(addr)
		hi := p.readVRAM(addr + 8)
		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.sprites[i] = spriteUnit{
			patternLo: lo,
			patternHi: hi,
			attr:      attr,
			x:         x,
			isSprite0: i == 0 && p.sprite0OnScanline,
		}
	}
	for i := p.secondaryCount; i < 8; i++ {
		p.sprites[i] = spriteUnit{}
	}
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

// spritePixel returns the palette index, priority (true = in front of
// background), and whether sprite 0 is opaque at this dot, evaluated across
// every loaded sprite unit in OAM priority order (lowest index wins ties).
func (p *PPU) spritePixel(dotX int) (paletteIdx uint8, front bool, isSprite0 bool, opaque bool) {
	if !p.showSprites() {
		return 0, false, false, false
	}
	if dotX < 8 && !p.showSpritesLeft() {
		return 0, false, false, false
	}
	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		offset := dotX - int(s.x)
		if offset < 0 || offset > 7 {
			continue
		}
		bit := uint(7 - offset)
		lo := (s.patternLo >> bit) & 1
		hi := (s.patternHi >> bit) & 1
		pixel := lo | (hi << 1)
		if pixel == 0 {
			continue
		}
		palette := (s.attr & 0x03) << 2
		return palette | pixel | 0x10, s.attr&0x20 == 0, s.isSprite0, true
	}
	return 0, false, false, false
}
