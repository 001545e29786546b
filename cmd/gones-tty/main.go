// Package main implements gones-tty, a terminal front end for the NES
// emulation core: it renders the framebuffer as half-block terminal cells
// via bubbletea/lipgloss instead of opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"

	"gones/internal/console"
	"gones/internal/ines"
	"gones/internal/input"
)

// Terminal cells are roughly twice as tall as they are wide, so the
// framebuffer is downsampled 2x horizontally and rendered two source rows
// per terminal row using the upper-half-block glyph (foreground = top
// pixel, background = bottom pixel).
const (
	cols       = 128 // 256 / 2
	rows       = 120 // 240 / 2, two source rows per terminal row
	frameDelay = 16 * time.Millisecond
	keyPulse   = 100 * time.Millisecond
)

// buttonPulse models a transient keypress: bubbletea's terminal input gives
// no key-up event, so a press is held for keyPulse and then released.
type buttonPulse struct {
	button input.Button
}

var keymap = map[string]input.Button{
	"up":    input.Up,
	"down":  input.Down,
	"left":  input.Left,
	"right": input.Right,
	"z":     input.A,
	"x":     input.B,
	"enter": input.Start,
	" ":     input.Select,
}

type model struct {
	console *console.Console
	err     error
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameDelay, func(time.Time) tea.Msg { return frameMsg{} })
}

type frameMsg struct{}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if button, ok := keymap[key]; ok {
			m.console.SetButton(1, button, true)
			return m, tea.Tick(keyPulse, func(time.Time) tea.Msg { return buttonPulse{button} })
		}
	case buttonPulse:
		m.console.SetButton(1, msg.button, false)
	case frameMsg:
		if err := m.console.RunFrame(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("gones-tty: emulation fault: %v\n", m.err)
	}
	return renderFrame(m.console.Framebuffer())
}

func renderFrame(fb []uint32) string {
	var b lipgloss.Style
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		topY := row * 2
		botY := topY + 1
		line := ""
		for col := 0; col < cols; col++ {
			x := col * 2
			top := averagePixel(fb, x, topY)
			bot := averagePixel(fb, x, botY)
			line += b.Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bot))).
				Render("▀") // upper half block
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// averagePixel averages the 2x1 source block starting at (x, y) to soften
// the horizontal downsample.
func averagePixel(fb []uint32, x, y int) uint32 {
	if y < 0 || y >= 240 || x < 0 || x >= 256 {
		return 0
	}
	p0 := fb[y*256+x]
	p1 := p0
	if x+1 < 256 {
		p1 = fb[y*256+x+1]
	}
	r := (uint32(uint8(p0>>16)) + uint32(uint8(p1>>16))) / 2
	g := (uint32(uint8(p0>>8)) + uint32(uint8(p1>>8))) / 2
	bl := (uint32(uint8(p0)) + uint32(uint8(p1))) / 2
	return r<<16 | g<<8 | bl
}

func hex(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xFFFFFF)
}

func main() {
	romFile := flag.String("rom", "", "path to an iNES ROM file")
	flag.Parse()

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "usage: gones-tty -rom <file.nes>")
		os.Exit(1)
	}

	cfg, err := ines.LoadFile(*romFile)
	if err != nil {
		glog.Exitf("gones-tty: failed to load %s: %v", *romFile, err)
	}

	nes, err := console.Load(cfg, console.Options{})
	if err != nil {
		glog.Exitf("gones-tty: failed to start console: %v", err)
	}

	p := tea.NewProgram(model{console: nes}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		glog.Exitf("gones-tty: %v", err)
	}
}
