package chip8

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

// Add-with-carry over the whole operand space: the result wraps modulo
// 256 and VF reports the pre-wrap carry.
func TestAddCarryExhaustive(t *testing.T) {
	vm := New()

	for a := 0; a <= 0xFF; a++ {
		for b := 0; b <= 0xFF; b++ {
			vm.V[0] = byte(a)
			vm.V[1] = byte(b)

			vm.exec(Instruction{Op: AddV, X: 0, Y: 1})

			if got, want := vm.V[0], byte((a+b)&0xFF); got != want {
				t.Fatalf("add %d+%d: got %d, want %d", a, b, got, want)
			}

			wantVF := byte(0)
			if a+b > 0xFF {
				wantVF = 1
			}
			if vm.V[0xF] != wantVF {
				t.Fatalf("add %d+%d: VF=%d, want %d", a, b, vm.V[0xF], wantVF)
			}
		}
	}
}

// Subtract over the whole operand space: VF is 1 iff Vx > Vy before the
// operation, and the result wraps.
func TestSubBorrowExhaustive(t *testing.T) {
	vm := New()

	for a := 0; a <= 0xFF; a++ {
		for b := 0; b <= 0xFF; b++ {
			vm.V[0] = byte(a)
			vm.V[1] = byte(b)

			vm.exec(Instruction{Op: Sub, X: 0, Y: 1})

			if got, want := vm.V[0], byte((a-b)&0xFF); got != want {
				t.Fatalf("sub %d-%d: got %d, want %d", a, b, got, want)
			}

			wantVF := byte(0)
			if a > b {
				wantVF = 1
			}
			if vm.V[0xF] != wantVF {
				t.Fatalf("sub %d-%d: VF=%d, want %d", a, b, vm.V[0xF], wantVF)
			}
		}
	}
}

func TestSubnReverse(t *testing.T) {
	tests := []struct {
		name       string
		vx, vy     byte
		want, flag byte
	}{
		{"vy greater", 1, 3, 2, 1},
		{"vx greater", 3, 1, 254, 0},
		{"equal", 7, 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New()
			vm.V[2] = tt.vx
			vm.V[3] = tt.vy

			vm.exec(Instruction{Op: Subn, X: 2, Y: 3})

			assert.Equal(t, tt.want, vm.V[2])
			assert.Equal(t, tt.flag, vm.V[0xF])
		})
	}
}

// The shifts read Vy and store into Vx; VF is the bit shifted out.
func TestShiftRight(t *testing.T) {
	vm := New()
	vm.V[1] = 0b10000001

	vm.exec(Instruction{Op: Shr, X: 0, Y: 1})

	assert.Equal(t, byte(0b01000000), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.Equal(t, byte(0b10000001), vm.V[1])
}

func TestShiftLeft(t *testing.T) {
	vm := New()
	vm.V[1] = 0b10000001

	vm.exec(Instruction{Op: Shl, X: 0, Y: 1})

	assert.Equal(t, byte(0b00000010), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF])
}

func TestShiftFlagZero(t *testing.T) {
	vm := New()
	vm.V[1] = 0b01000010

	vm.exec(Instruction{Op: Shr, X: 0, Y: 1})
	assert.Equal(t, byte(0), vm.V[0xF])

	vm.exec(Instruction{Op: Shl, X: 0, Y: 1})
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestBCD(t *testing.T) {
	tests := []struct {
		v      byte
		digits [3]byte
	}{
		{146, [3]byte{1, 4, 6}},
		{0, [3]byte{0, 0, 0}},
		{255, [3]byte{2, 5, 5}},
	}

	for _, tt := range tests {
		vm := New()
		vm.V[6] = tt.v
		vm.I = 0x300

		vm.exec(Instruction{Op: LdBCD, X: 6})

		assert.Equal(t, tt.digits[0], vm.Memory[0x300])
		assert.Equal(t, tt.digits[1], vm.Memory[0x301])
		assert.Equal(t, tt.digits[2], vm.Memory[0x302])
	}
}

func TestBCDOutOfBoundsHalts(t *testing.T) {
	vm := New()
	vm.I = MemSize - 2

	vm.exec(Instruction{Op: LdBCD, X: 0})

	assert.True(t, vm.Halted())
}

func TestRndUsesMaskedSource(t *testing.T) {
	vm := New()
	vm.SetRandFunc(func() byte { return 0b10101010 })

	vm.exec(Instruction{Op: Rnd, X: 4, B: 0x0F})

	assert.Equal(t, byte(0b00001010), vm.V[4])
}

func TestDrawSetsPixelsAndDirty(t *testing.T) {
	vm := New()
	vm.I = 0 // font sprite for 0
	vm.V[0] = 8
	vm.V[1] = 4

	vm.exec(Instruction{Op: Drw, X: 0, Y: 1, N: 5})

	assert.True(t, vm.DisplayDirty())
	assert.Equal(t, byte(0), vm.V[0xF])

	// top row of the "0" glyph is 0xF0: four set pixels from (8,4)
	for col := 0; col < 4; col++ {
		assert.Equal(t, byte(1), vm.Display[4*DisplayWidth+8+col])
	}
	assert.Equal(t, byte(0), vm.Display[4*DisplayWidth+12])
}

// Drawing the same sprite twice at the same spot XORs the display back
// to its prior state and reports the collision on the second draw.
func TestDrawDoubleXORRestoresDisplay(t *testing.T) {
	vm := New()
	vm.I = 5 // font sprite for 1
	vm.V[0] = 3
	vm.V[1] = 7

	before := vm.Display

	vm.exec(Instruction{Op: Drw, X: 0, Y: 1, N: 5})
	assert.Equal(t, byte(0), vm.V[0xF])

	vm.exec(Instruction{Op: Drw, X: 0, Y: 1, N: 5})
	assert.Equal(t, byte(1), vm.V[0xF])

	if diff := cmp.Diff(before, vm.Display); diff != "" {
		t.Errorf("display not restored (-want +got):\n%s", diff)
	}
}

// Pixels falling outside the frame are clipped, never wrapped around.
func TestDrawClipsAtEdges(t *testing.T) {
	vm := New()
	vm.I = 0x300
	vm.Memory[0x300] = 0xFF
	vm.Memory[0x301] = 0xFF
	vm.V[0] = DisplayWidth - 2
	vm.V[1] = DisplayHeight - 1

	vm.exec(Instruction{Op: Drw, X: 0, Y: 1, N: 2})

	// two pixels fit on the last row
	assert.Equal(t, byte(1), vm.Display[(DisplayHeight-1)*DisplayWidth+DisplayWidth-2])
	assert.Equal(t, byte(1), vm.Display[(DisplayHeight-1)*DisplayWidth+DisplayWidth-1])

	// nothing wrapped to column 0 or row 0
	assert.Equal(t, byte(0), vm.Display[(DisplayHeight-1)*DisplayWidth])
	assert.Equal(t, byte(0), vm.Display[0])
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestDrawSpriteSourceOutOfBoundsHalts(t *testing.T) {
	vm := New()
	vm.I = MemSize - 2

	vm.exec(Instruction{Op: Drw, X: 0, Y: 0, N: 5})

	assert.True(t, vm.Halted())
}

func TestClearDisplay(t *testing.T) {
	vm := New()
	vm.Display[100] = 1
	vm.ClearDirty()

	vm.exec(Instruction{Op: Cls})

	assert.Equal(t, byte(0), vm.Display[100])
	assert.True(t, vm.DisplayDirty())
}

// Register block store advances I past the block.
func TestSaveRegsPostIncrementsI(t *testing.T) {
	vm := New()
	for i := byte(0); i <= 5; i++ {
		vm.V[i] = i + 10
	}
	vm.I = 0x300

	vm.exec(Instruction{Op: SaveRegs, X: 5})

	for i := 0; i <= 5; i++ {
		assert.Equal(t, byte(i+10), vm.Memory[0x300+i])
	}
	assert.Equal(t, uint16(0x306), vm.I)
}

func TestLoadRegsPostIncrementsI(t *testing.T) {
	vm := New()
	copy(vm.Memory[0x300:], []byte{9, 8, 7})
	vm.I = 0x300

	vm.exec(Instruction{Op: LoadRegs, X: 2})

	assert.Equal(t, byte(9), vm.V[0])
	assert.Equal(t, byte(8), vm.V[1])
	assert.Equal(t, byte(7), vm.V[2])
	assert.Equal(t, uint16(0x303), vm.I)
}

func TestRegBlockOutOfBoundsHalts(t *testing.T) {
	vm := New()
	vm.I = MemSize - 3

	vm.exec(Instruction{Op: SaveRegs, X: 3})

	assert.True(t, vm.Halted())
}

func TestFontDigitAddress(t *testing.T) {
	vm := New()
	vm.V[2] = 0xA

	vm.exec(Instruction{Op: LdFont, X: 2})

	assert.Equal(t, uint16(5*0xA), vm.I)
	assert.Equal(t, fontSprites[5*0xA], vm.Memory[vm.I])
}

func TestAddIWraps(t *testing.T) {
	vm := New()
	vm.I = 0x100
	vm.V[7] = 0xFF

	vm.exec(Instruction{Op: AddI, X: 7})

	assert.Equal(t, uint16(0x1FF), vm.I)
}

func TestJumpV0(t *testing.T) {
	vm := New()
	vm.V[0] = 0x10

	vm.exec(Instruction{Op: JpV0, Addr: 0x300})

	assert.Equal(t, uint16(0x310), vm.PC)
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		prep func(vm *VM)
		skip bool
	}{
		{"se byte taken", Instruction{Op: SeB, X: 0, B: 5}, func(vm *VM) { vm.V[0] = 5 }, true},
		{"se byte not taken", Instruction{Op: SeB, X: 0, B: 5}, func(vm *VM) { vm.V[0] = 6 }, false},
		{"sne byte taken", Instruction{Op: SneB, X: 0, B: 5}, func(vm *VM) { vm.V[0] = 6 }, true},
		{"se reg taken", Instruction{Op: SeV, X: 0, Y: 1}, func(vm *VM) { vm.V[0], vm.V[1] = 4, 4 }, true},
		{"sne reg taken", Instruction{Op: SneV, X: 0, Y: 1}, func(vm *VM) { vm.V[0], vm.V[1] = 4, 5 }, true},
		{"skp pressed", Instruction{Op: Skp, X: 0}, func(vm *VM) { vm.V[0] = 3; vm.PressKey(3) }, true},
		{"skp not pressed", Instruction{Op: Skp, X: 0}, func(vm *VM) { vm.V[0] = 3 }, false},
		{"sknp not pressed", Instruction{Op: Sknp, X: 0}, func(vm *VM) { vm.V[0] = 3 }, true},
		{"sknp pressed", Instruction{Op: Sknp, X: 0}, func(vm *VM) { vm.V[0] = 3; vm.PressKey(3) }, false},
		{"skp key value out of pad", Instruction{Op: Skp, X: 0}, func(vm *VM) { vm.V[0] = 200 }, false},
		{"sknp key value out of pad", Instruction{Op: Sknp, X: 0}, func(vm *VM) { vm.V[0] = 200 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := New()
			vm.PC = 0x400
			tt.prep(vm)

			vm.exec(tt.in)

			want := uint16(0x400)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, vm.PC)
		})
	}
}

func TestTimerInstructions(t *testing.T) {
	vm := New()
	vm.V[1] = 42

	vm.exec(Instruction{Op: SetDT, X: 1})
	assert.Equal(t, byte(42), vm.DT)

	vm.exec(Instruction{Op: SetST, X: 1})
	assert.Equal(t, byte(42), vm.ST)

	vm.exec(Instruction{Op: LdDT, X: 2})
	assert.Equal(t, byte(42), vm.V[2])
}

func TestAddByteNoCarryFlag(t *testing.T) {
	vm := New()
	vm.V[0] = 0xFF
	vm.V[0xF] = 9

	vm.exec(Instruction{Op: AddB, X: 0, B: 2})

	assert.Equal(t, byte(1), vm.V[0])
	assert.Equal(t, byte(9), vm.V[0xF])
}

func TestLogicalOps(t *testing.T) {
	vm := New()
	vm.V[0] = 0b1100
	vm.V[1] = 0b1010

	vm.exec(Instruction{Op: Or, X: 0, Y: 1})
	assert.Equal(t, byte(0b1110), vm.V[0])

	vm.V[0] = 0b1100
	vm.exec(Instruction{Op: And, X: 0, Y: 1})
	assert.Equal(t, byte(0b1000), vm.V[0])

	vm.V[0] = 0b1100
	vm.exec(Instruction{Op: Xor, X: 0, Y: 1})
	assert.Equal(t, byte(0b0110), vm.V[0])
}

func TestSysIsNoOp(t *testing.T) {
	vm := New()
	loadWords(t, vm, 0x0300)

	vm.Step()

	assert.False(t, vm.Halted())
	assert.Equal(t, uint16(ProgStart+2), vm.PC)
	assert.Equal(t, 0, vm.Diagnostics().Len())
}
