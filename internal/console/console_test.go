package console

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gones/internal/cartridge"
)

func TestLoadUnsupportedMapperFails(t *testing.T) {
	_, err := Load(cartridge.Config{PRGROM: make([]uint8, 0x4000), MapperID: 200}, Options{})
	require.Error(t, err)
}

func TestLoadAndStepOneFrame(t *testing.T) {
	prg := make([]uint8, 0x4000)
	prg[0x3FFC] = 0x00 // reset vector -> $8000
	prg[0x3FFD] = 0x80
	prg[0] = 0x4C // JMP $8000 (infinite loop so Step always has something to run)
	prg[1] = 0x00
	prg[2] = 0x80

	console, err := Load(cartridge.Config{PRGROM: prg, MapperID: 0}, Options{})
	require.NoError(t, err)

	err = console.RunFrame()
	require.NoError(t, err)
	require.Len(t, console.Framebuffer(), 256*240)
}

func TestStepExecutesOneInstructionAtATime(t *testing.T) {
	prg := make([]uint8, 0x4000)
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80
	prg[0], prg[1], prg[2] = 0x4C, 0x00, 0x80 // JMP $8000

	console, err := Load(cartridge.Config{PRGROM: prg, MapperID: 0}, Options{})
	require.NoError(t, err)

	before := console.CPUCycles()
	signal, err := console.Step()
	require.NoError(t, err)
	require.Equal(t, NoFrameBoundary, signal)
	require.Greater(t, console.CPUCycles(), before)
}

func TestSetButtonRoutesToCorrectPort(t *testing.T) {
	prg := make([]uint8, 0x4000)
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80
	console, err := Load(cartridge.Config{PRGROM: prg, MapperID: 0}, Options{})
	require.NoError(t, err)

	console.SetButton(1, 1, true) // ButtonA == 1
	console.SetButton(2, 2, true) // ButtonB == 2
	require.True(t, console.bus.Input.Controller1.IsPressed(1))
	require.False(t, console.bus.Input.Controller1.IsPressed(2))
	require.True(t, console.bus.Input.Controller2.IsPressed(2))
}
