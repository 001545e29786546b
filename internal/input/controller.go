// Package input implements the NES controller shift-register protocol.
package input

import "github.com/golang/glog"

// Button is a single NES controller bit.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

// Controller models a single standard NES pad: an 8-bit shift register
// loaded from the live button state on strobe and shifted out one bit per
// read of $4016/$4017.
type Controller struct {
	buttons uint8

	shiftRegister uint8
	strobe        bool
}

func New() *Controller { return &Controller{} }

func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

func (c *Controller) SetButtons(buttons [8]bool) {
	var v uint8
	order := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			v |= uint8(order[i])
		}
	}
	c.buttons = v
}

func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles a write to the controller's strobe line. While strobe is
// held high the shift register continuously reloads from live button state;
// on the falling edge it latches, and reads shift that snapshot out one bit
// at a time.
func (c *Controller) Write(value uint8) {
	wasHigh := c.strobe
	c.strobe = value&1 != 0
	if c.strobe || wasHigh {
		c.shiftRegister = c.buttons
	}
}

// Read shifts one bit out of the register (bit 0 of the result; the upper
// bits are 0, and InputState sets bit 6 on $4017 reads). Past the 8th read the register
// keeps shifting in 1s, matching the documented all-ones tail.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	bit := c.shiftRegister & 1
	c.shiftRegister = (c.shiftRegister >> 1) | 0x80
	return bit
}

func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
}

// InputState is the pair of controller ports wired to $4016/$4017.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

func NewInputState() *InputState {
	return &InputState{Controller1: New(), Controller2: New()}
}

func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

func (is *InputState) SetButtons1(buttons [8]bool) { is.Controller1.SetButtons(buttons) }
func (is *InputState) SetButtons2(buttons [8]bool) { is.Controller2.SetButtons(buttons) }

// Read services $4016/$4017 CPU reads. Bit 6 of $4017 is wired high on real
// hardware (a quirk of the expansion port's open bus), which some games'
// input routines rely on.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		return is.Controller2.Read() | 0x40
	default:
		glog.V(3).Infof("input: read from unmapped port $%04X", address)
		return 0
	}
}

// Write services $4016 CPU writes; the strobe line fans out to both ports.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
