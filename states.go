package main

import (
	"github.com/retro8/chip8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// States holds the save-state slots. A slot is a whole-machine snapshot
// taken by value; nil marks it empty.
var States [10]*chip8.VM

// SaveState stores a snapshot of the machine in a slot.
func SaveState(slot int) {
	snap := VM.Snapshot()
	States[slot] = &snap

	Logger.Info("state saved", log.Int("slot", slot))
}

// LoadState restores the machine from a slot, if one was saved.
func LoadState(slot int) {
	if States[slot] == nil {
		Logger.Info("no state in slot", log.Int("slot", slot))
		return
	}

	VM.Restore(*States[slot])

	Logger.Info("state loaded", log.Int("slot", slot))
}
