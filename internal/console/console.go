// Package console is the host-facing surface of the emulation core: load a
// cartridge, step the machine, read back the framebuffer, and feed
// controller input. Everything else (cpu/ppu/bus/cartridge) is an
// implementation detail behind this API.
package console

import (
	"github.com/golang/glog"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
)

// Options configures a Console at Load time. Unsupported-opcode handling is
// unconditionally fatal per §4.1/§7, so there is nothing to toggle there;
// this struct is kept for future load-time settings.
type Options struct{}

// Console is one NES: a CPU driving a bus that owns the PPU, APU, input
// ports, and cartridge.
type Console struct {
	cpu *cpu.CPU
	bus *bus.Bus
}

// Load constructs a Console around the given pre-parsed cartridge image.
// Parsing a ROM file into a cartridge.Config is a host concern and happens
// before this call.
func Load(cfg cartridge.Config, opts Options) (*Console, error) {
	cart, err := cartridge.New(cfg)
	if err != nil {
		glog.Errorf("console: load failed: %v", err)
		return nil, err
	}

	b := bus.New()
	b.LoadCartridge(cart)

	c := cpu.New(b)
	c.Reset()

	return &Console{cpu: c, bus: b}, nil
}

// InterruptSignal reports whether a Step crossed a frame boundary: the PPU
// raised an NMI edge that was serviced (or latched for) this instruction.
type InterruptSignal bool

const (
	NoFrameBoundary InterruptSignal = false
	FrameBoundary   InterruptSignal = true
)

// Step runs one CPU step (plus its bus ticks) and reports whether a frame
// boundary (NMI) was crossed. When the bus has a pending NMI, this step
// services it instead of executing an instruction; otherwise it executes one
// instruction. It returns the error from cpu.Step only when a *cpu.Fault
// occurs; the caller should treat that as fatal (§7).
func (c *Console) Step() (InterruptSignal, error) {
	crossed := c.bus.TakeNMI()
	if crossed {
		c.cpu.SetNMI()
	}
	if err := c.cpu.Step(); err != nil {
		return NoFrameBoundary, err
	}
	return InterruptSignal(crossed), nil
}

// RunFrame drives Step repeatedly until a full PPU frame has completed.
// A convenience for hosts (cmd/gones, cmd/gones-tty) that want to advance
// the emulator one frame at a time rather than one instruction at a time.
func (c *Console) RunFrame() error {
	startFrame := c.bus.PPU.FrameCount()
	for c.bus.PPU.FrameCount() == startFrame {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Framebuffer returns the 256x240 framebuffer as packed 0x00RRGGBB values,
// valid after Step returns.
func (c *Console) Framebuffer() []uint32 { return c.bus.PPU.FrameBuffer() }

// SetButton sets a single button's state on the given controller port
// (1 or 2); any other port number is ignored.
func (c *Console) SetButton(port int, button input.Button, pressed bool) {
	switch port {
	case 1:
		c.bus.Input.Controller1.SetButton(button, pressed)
	case 2:
		c.bus.Input.Controller2.SetButton(button, pressed)
	}
}

// Reset performs a soft reset: the CPU's reset sequence, with PPU/APU/input
// state reinitialized the same way power-on does.
func (c *Console) Reset() {
	c.bus.Reset()
	c.cpu.Reset()
}

// CPUCycles returns the total number of CPU cycles executed since load or
// the last Reset.
func (c *Console) CPUCycles() uint64 { return c.bus.Cycles() }
