package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

// KeyMap maps a modern keyboard onto the 16-key CHIP-8 pad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var KeyMap = map[sdl.Scancode]byte{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// stateSlots maps the function keys to save-state slots.
var stateSlots = map[sdl.Scancode]int{
	sdl.SCANCODE_F1:  0,
	sdl.SCANCODE_F2:  1,
	sdl.SCANCODE_F3:  2,
	sdl.SCANCODE_F4:  3,
	sdl.SCANCODE_F5:  4,
	sdl.SCANCODE_F6:  5,
	sdl.SCANCODE_F7:  6,
	sdl.SCANCODE_F8:  7,
	sdl.SCANCODE_F9:  8,
	sdl.SCANCODE_F10: 9,
}

// ProcessEvents drains SDL events, feeding mapped keys to the VM and
// handling the emulator hotkeys. It returns false once the window
// should close.
func ProcessEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN {
				if !keyDown(ev) {
					return false
				}
			} else if ev.Type == sdl.KEYUP {
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					VM.ReleaseKey(key)
				}
			}
		}
	}

	return true
}

// keyDown handles a single key press. It returns false to quit.
func keyDown(ev *sdl.KeyboardEvent) bool {
	if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
		VM.PressKey(key)
		return true
	}

	if slot, ok := stateSlots[ev.Keysym.Scancode]; ok {
		// shift saves, plain restores
		if ev.Keysym.Mod&sdl.KMOD_SHIFT != 0 {
			SaveState(slot)
		} else {
			LoadState(slot)
		}
		return true
	}

	switch ev.Keysym.Scancode {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_P, sdl.SCANCODE_SPACE:
		Paused = !Paused
	case sdl.SCANCODE_PERIOD:
		if Paused {
			StepOnce()
		}
	case sdl.SCANCODE_BACKSPACE:
		Reboot()

		// holding control during reset reboots paused
		if ev.Keysym.Mod&sdl.KMOD_CTRL != 0 {
			Paused = true
		}
	}

	return true
}
