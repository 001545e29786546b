// Package main implements the gones NES emulator executable: an ebiten
// window that drives an internal/console.Console and blits its framebuffer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gones/internal/console"
	"gones/internal/ines"
	"gones/internal/input"
	"gones/internal/version"
)

const (
	nesWidth  = 256
	nesHeight = 240
)

func main() {
	var (
		romFile = flag.String("rom", "", "path to an iNES ROM file")
		scale   = flag.Int("scale", 3, "window scale factor")
		ver     = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *ver {
		version.PrintBuildInfo()
		return
	}
	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "usage: gones -rom <file.nes>")
		os.Exit(1)
	}

	cfg, err := ines.LoadFile(*romFile)
	if err != nil {
		glog.Exitf("gones: failed to load %s: %v", *romFile, err)
	}

	nes, err := console.Load(cfg, console.Options{})
	if err != nil {
		glog.Exitf("gones: failed to start console: %v", err)
	}

	game := &game{console: nes}
	ebiten.SetWindowTitle(fmt.Sprintf("gones - %s", *romFile))
	ebiten.SetWindowSize(nesWidth*(*scale), nesHeight*(*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		glog.Exitf("gones: %v", err)
	}
}

// keymap is the default player-1 binding: arrow keys plus the usual
// Z/X-as-A/B convention, J/K as an alternative.
var keymap = map[ebiten.Key]input.Button{
	ebiten.KeyArrowUp:    input.Up,
	ebiten.KeyArrowDown:  input.Down,
	ebiten.KeyArrowLeft:  input.Left,
	ebiten.KeyArrowRight: input.Right,
	ebiten.KeyZ:          input.A,
	ebiten.KeyJ:          input.A,
	ebiten.KeyX:          input.B,
	ebiten.KeyK:          input.B,
	ebiten.KeyEnter:      input.Start,
	ebiten.KeyShiftRight: input.Select,
	ebiten.KeyBackspace:  input.Select,
}

// game adapts a console.Console to ebiten's Game interface.
type game struct {
	console *console.Console
	frame   *ebiten.Image
	buf     *image.RGBA
}

func (g *game) Update() error {
	for key, button := range keymap {
		switch {
		case inpututil.IsKeyJustPressed(key):
			g.console.SetButton(1, button, true)
		case inpututil.IsKeyJustReleased(key):
			g.console.SetButton(1, button, false)
		}
	}
	if err := g.console.RunFrame(); err != nil {
		return fmt.Errorf("gones: emulation fault: %w", err)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(nesWidth, nesHeight)
		g.buf = image.NewRGBA(image.Rect(0, 0, nesWidth, nesHeight))
	}

	fb := g.console.Framebuffer()
	for i, pixel := range fb {
		g.buf.Pix[i*4+0] = uint8(pixel >> 16)
		g.buf.Pix[i*4+1] = uint8(pixel >> 8)
		g.buf.Pix[i*4+2] = uint8(pixel)
		g.buf.Pix[i*4+3] = 0xFF
	}
	g.frame.ReplacePixels(g.buf.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX, scaleY := float64(sw)/nesWidth, float64(sh)/nesHeight
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scaleX, scaleY)
	screen.DrawImage(g.frame, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
