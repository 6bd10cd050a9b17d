package chip8

import (
	"errors"
	"fmt"
	"math/rand"
)

// Display dimensions and memory layout constants.
const (
	// DisplayWidth and DisplayHeight are the monochrome bitmap
	// dimensions, in pixels.
	DisplayWidth  = 64
	DisplayHeight = 32

	// MemSize is the total addressable memory.
	MemSize = 0x1000

	// ProgStart is where loaded programs begin. Everything below it is
	// reserved for the interpreter and the font sprites.
	ProgStart = 0x200

	// MaxROMSize is the largest program that fits in memory.
	MaxROMSize = MemSize - ProgStart

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// NumKeys is the size of the hex keypad.
	NumKeys = 16
)

// ErrROMTooLarge is returned by LoadROM for programs that do not fit in
// the memory above ProgStart. Oversized programs are rejected outright,
// never truncated.
var ErrROMTooLarge = errors.New("chip8: ROM too large to fit in memory")

// VM is a CHIP-8 virtual machine. All architectural state lives in this
// one struct, so a snapshot of the machine is a plain value copy of it.
type VM struct {
	// Memory addressable by the machine. The font sprites occupy the
	// bottom of the reserved first 512 bytes.
	Memory [MemSize]byte

	// V are the 16 virtual registers. VF doubles as the carry, borrow
	// and collision flag output of several instructions.
	V [16]byte

	// I is the address register, used as the base address by the
	// sprite and memory-block instructions.
	I uint16

	// PC is the program counter.
	PC uint16

	// Stack holds return addresses. SP is the number of live entries,
	// so 0 means empty and StackDepth means full.
	Stack [StackDepth]uint16
	SP    byte

	// DT and ST are the delay and sound timers. The host decrements
	// them at 60 Hz via DecrementTimers.
	DT byte
	ST byte

	// Display is the 64x32 bitmap, one byte per pixel, row-major, 0 or
	// 1. Only CLS and DRW mutate it.
	Display [DisplayWidth * DisplayHeight]byte

	// Keys hold the current state of the 16-key pad.
	Keys [NumKeys]bool

	// dirty is set whenever the display changes and cleared by the
	// host once it has rendered.
	dirty bool

	// waiting latches the machine after LD Vx, K until a key press
	// arrives; waitReg is the register the key lands in.
	waiting bool
	waitReg byte

	// halted latches the machine permanently after a fatal fault.
	halted bool

	// randByte overrides the random source for RND when non-nil. Not
	// architectural state; it survives Restore.
	randByte func() byte

	// diag collects decode/dispatch failure text. Not architectural
	// state; it survives Restore.
	diag *DiagLog
}

// New creates a machine with zeroed state, the font sprites preloaded
// and the program counter at ProgStart.
func New() *VM {
	vm := &VM{
		PC:   ProgStart,
		diag: NewDiagLog(),
	}

	copy(vm.Memory[:], fontSprites[:])

	return vm
}

// LoadROM copies a program into memory at ProgStart. Programs larger
// than MaxROMSize are rejected with ErrROMTooLarge. No other machine
// state is touched; construct a fresh VM for a full reset.
func (vm *VM) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	copy(vm.Memory[ProgStart:], rom)

	return nil
}

// Step executes a single cycle: fetch the word at PC, advance PC by 2,
// decode and dispatch. It is a no-op while the machine waits for a key
// press or has halted on a fatal fault.
func (vm *VM) Step() {
	if vm.halted || vm.waiting {
		return
	}

	// fetch past the last valid 2-byte window is fatal
	if int(vm.PC)+1 >= MemSize {
		vm.fault(fmt.Sprintf("fetch out of bounds at #%04X", vm.PC))
		return
	}

	word := uint16(vm.Memory[vm.PC])<<8 | uint16(vm.Memory[vm.PC+1])
	vm.PC += 2

	vm.exec(Decode(word))
}

// PressKey marks a keypad key as pressed. If the machine is waiting for
// a key, the key value is stored in the target register and execution
// resumes. Keys outside 0-15 are a caller bug.
func (vm *VM) PressKey(key byte) {
	assertKey(key)

	vm.Keys[key] = true

	if vm.waiting {
		vm.V[vm.waitReg] = key
		vm.waiting = false
	}
}

// ReleaseKey marks a keypad key as released. It never resolves a
// pending key wait.
func (vm *VM) ReleaseKey(key byte) {
	assertKey(key)

	vm.Keys[key] = false
}

func assertKey(key byte) {
	if key >= NumKeys {
		panic(fmt.Sprintf("chip8: key %d out of range", key))
	}
}

// DecrementTimers decrements the delay and sound timers, flooring at 0.
// The host must call it at 60 Hz, independent of execution speed.
func (vm *VM) DecrementTimers() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
}

// Snapshot returns a copy of the whole machine. Arrays copy by value,
// so the snapshot shares nothing architectural with the live machine.
func (vm *VM) Snapshot() VM {
	return *vm
}

// Restore overwrites the machine with a snapshot, including the stack
// pointer, timers and key-wait latch. The random source and diagnostics
// log are host collaborators, not machine state, and are kept.
func (vm *VM) Restore(s VM) {
	randByte, diag := vm.randByte, vm.diag
	*vm = s
	vm.randByte, vm.diag = randByte, diag
}

// SetRandFunc overrides the random byte source used by RND. Passing nil
// restores the default uniform source.
func (vm *VM) SetRandFunc(f func() byte) {
	vm.randByte = f
}

// WaitingForKey reports whether the machine is latched waiting for a
// key press.
func (vm *VM) WaitingForKey() bool {
	return vm.waiting
}

// Halted reports whether the machine hit a fatal fault. A halted
// machine ignores all further Step calls.
func (vm *VM) Halted() bool {
	return vm.halted
}

// DisplayDirty reports whether the display changed since the host last
// called ClearDirty.
func (vm *VM) DisplayDirty() bool {
	return vm.dirty
}

// ClearDirty acknowledges a render of the current display.
func (vm *VM) ClearDirty() {
	vm.dirty = false
}

// SoundActive reports whether the sound timer is running.
func (vm *VM) SoundActive() bool {
	return vm.ST > 0
}

// NextWord returns the raw instruction word at PC, for disassembly and
// debug display. It returns 0 when PC is out of range.
func (vm *VM) NextWord() uint16 {
	if int(vm.PC)+1 >= MemSize {
		return 0
	}

	return uint16(vm.Memory[vm.PC])<<8 | uint16(vm.Memory[vm.PC+1])
}

// Diagnostics returns the machine's append-only failure log.
func (vm *VM) Diagnostics() *DiagLog {
	return vm.diag
}

// fault halts the machine permanently and records why.
func (vm *VM) fault(msg string) {
	vm.halted = true
	vm.diag.Append("fault: " + msg)
}

// rnd returns the next uniformly-distributed random byte.
func (vm *VM) rnd() byte {
	if vm.randByte != nil {
		return vm.randByte()
	}

	return byte(rand.Intn(256))
}
