// Package ppu implements the 2C02 picture processing unit: the per-dot
// background/sprite pipeline, the register file the CPU sees at $2000-$2007,
// and the framebuffer the host reads once per frame.
package ppu

import "github.com/golang/glog"

// CHRMemory is the pattern-table storage a cartridge's mapper exposes. The
// PPU is handed one at load time and is otherwise the sole owner/mutator of
// its own VRAM (nametables, palette RAM, OAM).
type CHRMemory interface {
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

const (
	screenWidth  = 256
	screenHeight = 240
)

// PPU is a 2C02. Step advances exactly one dot; callers (the bus) are
// expected to call it three times per CPU cycle.
type PPU struct {
	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	v, t uint16
	x    uint8
	w    bool

	openBus    uint8
	readBuffer uint8

	oam          [256]uint8
	secondaryOAM [32]uint8
	secondaryCount int

	nametables [0x800]uint8
	paletteRAM [32]uint8

	chr    CHRMemory
	mirror mirrorMode

	scanline int
	dot      int
	frame    uint64
	oddFrame bool

	nextTileID   uint8
	nextTileAttr uint8
	nextTileLSB  uint8
	nextTileMSB  uint8

	bgShiftPatternLo uint16
	bgShiftPatternHi uint16
	bgShiftAttrLo    uint16
	bgShiftAttrHi    uint16

	spriteCount           int
	spriteOverflow        bool
	sprite0OnScanline     bool
	sprite0OnScanlineNext bool
	sprites               [8]spriteUnit

	sprite0HitThisFrame bool

	frameBuffer [screenWidth * screenHeight]uint32

	nmiLine     bool
	nmiPrevious bool
	nmiCallback func()

	frameCompleteCallback func()
}

// mirrorMode mirrors cartridge.MirrorMode's values so this package doesn't
// need to import cartridge for a single enum; AttachCHR converts.
type mirrorMode uint8

const (
	mirrorHorizontal mirrorMode = iota
	mirrorVertical
	mirrorSingle0
	mirrorSingle1
	mirrorFour
)

func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// Reset matches 2C02 power-up: VBlank set, sprite flags clear, scanline -1.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = statusVBlank
	p.oamAddr = 0
	p.v, p.t = 0, 0
	p.x = 0
	p.w = false
	p.readBuffer = 0
	p.scanline = -1
	p.dot = 0
	p.frame = 0
	p.oddFrame = false
	p.nmiLine = false
	p.nmiPrevious = false
}

// AttachCHR wires the cartridge's pattern tables and nametable mirroring
// into this PPU's VRAM address decode. Called once at cartridge load time.
func (p *PPU) AttachCHR(chr CHRMemory, mirror uint8) {
	p.chr = chr
	p.mirror = mirrorMode(mirror)
}

func (p *PPU) SetNMICallback(cb func())           { p.nmiCallback = cb }
func (p *PPU) SetFrameCompleteCallback(cb func()) { p.frameCompleteCallback = cb }

func (p *PPU) FrameBuffer() []uint32 { return p.frameBuffer[:] }
func (p *PPU) FrameCount() uint64    { return p.frame }
func (p *PPU) Scanline() int         { return p.scanline }
func (p *PPU) Dot() int              { return p.dot }
func (p *PPU) IsVBlank() bool        { return p.status&statusVBlank != 0 }

// Step advances the PPU by exactly one dot (1/3 of a CPU cycle).
func (p *PPU) Step() {
	p.runScanline()
	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.dot++
	maxDot := 341
	if p.scanline == -1 && p.oddFrame && p.renderingEnabled() && p.dot == 340 {
		// Odd-frame dot skip: the idle dot on the pre-render line is
		// cut short by one when rendering is enabled.
		maxDot = 340
	}
	if p.dot >= maxDot {
		p.dot = 0
		p.scanline++
		if p.scanline >= 261 {
			p.scanline = -1
			p.frame++
			p.oddFrame = !p.oddFrame
			if p.frameCompleteCallback != nil {
				p.frameCompleteCallback()
			}
		}
	}
}

func (p *PPU) runScanline() {
	switch {
	case p.scanline == -1:
		p.preRenderScanline()
	case p.scanline >= 0 && p.scanline <= 239:
		p.visibleScanline()
	case p.scanline == 241 && p.dot == 1:
		p.status |= statusVBlank
		p.updateNMILine()
	}
}

func (p *PPU) preRenderScanline() {
	if p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		p.updateNMILine()
	}
	p.backgroundFetchCycle()
	if p.dot >= 280 && p.dot <= 304 {
		p.transferAddressY()
	}
	if p.dot == 65 {
		p.clearSecondaryOAM()
	}
}

func (p *PPU) visibleScanline() {
	if p.dot >= 1 && p.dot <= 256 {
		dotX := p.dot - 1
		p.renderPixel(dotX)
	}
	p.backgroundFetchCycle()

	switch {
	case p.dot == 1:
		p.clearSecondaryOAM()
	case p.dot == 65:
		p.evaluateSprites(p.scanline + 1)
	case p.dot == 257:
		p.loadSpriteRegisters(p.scanline + 1)
	}
}

// backgroundFetchCycle runs the fetch/shift pipeline shared by the
// pre-render and visible scanlines.
func (p *PPU) backgroundFetchCycle() {
	inFetchWindow := (p.dot >= 2 && p.dot <= 257) || (p.dot >= 321 && p.dot <= 337)
	if inFetchWindow {
		p.updateShifters()
		switch (p.dot - 1) % 8 {
		case 0:
			p.loadBackgroundShifters()
			p.fetchNametableByte()
		case 2:
			p.fetchAttributeByte()
		case 4:
			p.fetchPatternLow()
		case 6:
			p.fetchPatternHigh()
		case 7:
			p.incrementCoarseX()
		}
	}
	if p.dot == 256 {
		p.incrementY()
	}
	if p.dot == 257 {
		p.loadBackgroundShifters()
		p.transferAddressX()
	}
}

func (p *PPU) renderPixel(dotX int) {
	bgIdx, bgOpaque := p.backgroundPixel(dotX)
	spIdx, spFront, spIsZero, spOpaque := p.spritePixel(dotX)

	if spOpaque && bgOpaque && spIsZero && dotX != 255 {
		p.status |= statusSprite0Hit
	}

	var finalIdx uint8
	switch {
	case !bgOpaque && !spOpaque:
		finalIdx = 0
	case !bgOpaque && spOpaque:
		finalIdx = spIdx
	case bgOpaque && !spOpaque:
		finalIdx = bgIdx
	case spFront:
		finalIdx = spIdx
	default:
		finalIdx = bgIdx
	}

	color := p.paletteRAM[paletteIndex(0x3F00+uint16(finalIdx))]
	if finalIdx == 0 {
		color = p.paletteRAM[0]
	}
	color = p.applyGreyscale(color)
	p.frameBuffer[p.scanline*screenWidth+dotX] = NESColorToRGB(color & 0x3F)
}

// updateNMILine re-derives the CPU-visible NMI line from VBlank && enable
// and fires the callback on a rising (assert) edge only, matching the
// documented NMI-suppression/retrigger quirks.
func (p *PPU) updateNMILine() {
	line := p.status&statusVBlank != 0 && p.nmiEnabled()
	if line && !p.nmiPrevious && p.nmiCallback != nil {
		glog.V(2).Infof("ppu: NMI asserted at scanline=%d dot=%d frame=%d", p.scanline, p.dot, p.frame)
		p.nmiCallback()
	}
	p.nmiPrevious = line
}
