package chip8

import "fmt"

// exec dispatches a decoded instruction. The match is exhaustive over
// every variant the decoder can produce.
func (vm *VM) exec(in Instruction) {
	switch in.Op {
	case Sys:
		vm.sys(in.Addr)
	case Cls:
		vm.cls()
	case Ret:
		vm.ret()
	case Jp:
		vm.jump(in.Addr)
	case Call:
		vm.call(in.Addr)
	case SeB:
		vm.skipIf(in.X, in.B)
	case SneB:
		vm.skipIfNot(in.X, in.B)
	case SeV:
		vm.skipIfXY(in.X, in.Y)
	case LdB:
		vm.loadX(in.X, in.B)
	case AddB:
		vm.addX(in.X, in.B)
	case LdV:
		vm.loadXY(in.X, in.Y)
	case Or:
		vm.or(in.X, in.Y)
	case And:
		vm.and(in.X, in.Y)
	case Xor:
		vm.xor(in.X, in.Y)
	case AddV:
		vm.addXY(in.X, in.Y)
	case Sub:
		vm.subXY(in.X, in.Y)
	case Shr:
		vm.shr(in.X, in.Y)
	case Subn:
		vm.subYX(in.X, in.Y)
	case Shl:
		vm.shl(in.X, in.Y)
	case SneV:
		vm.skipIfNotXY(in.X, in.Y)
	case LdI:
		vm.loadI(in.Addr)
	case JpV0:
		vm.jumpV0(in.Addr)
	case Rnd:
		vm.rndX(in.X, in.B)
	case Drw:
		vm.drw(in.X, in.Y, in.N)
	case Skp:
		vm.skipIfPressed(in.X)
	case Sknp:
		vm.skipIfNotPressed(in.X)
	case LdDT:
		vm.loadXDT(in.X)
	case LdKey:
		vm.loadXK(in.X)
	case SetDT:
		vm.loadDTX(in.X)
	case SetST:
		vm.loadSTX(in.X)
	case AddI:
		vm.addIX(in.X)
	case LdFont:
		vm.loadF(in.X)
	case LdBCD:
		vm.loadB(in.X)
	case SaveRegs:
		vm.saveRegs(in.X)
	case LoadRegs:
		vm.loadRegs(in.X)
	case Unknown:
		// non-fatal: log and continue with the next cycle
		vm.diag.Append(fmt.Sprintf("unknown opcode #%04X at #%04X", in.Word, vm.PC-2))
	}
}

// sys is the legacy jump to a machine routine. The original hardware
// routines cannot be emulated generically, so it does nothing.
func (vm *VM) sys(addr uint16) {
}

// cls clears the display.
func (vm *VM) cls() {
	vm.Display = [DisplayWidth * DisplayHeight]byte{}
	vm.dirty = true
}

// call a subroutine, pushing the post-fetch program counter.
func (vm *VM) call(addr uint16) {
	if vm.SP >= StackDepth {
		vm.fault(fmt.Sprintf("call depth exceeds %d at #%04X", StackDepth, vm.PC-2))
		return
	}

	vm.Stack[vm.SP] = vm.PC
	vm.SP++
	vm.PC = addr
}

// ret pops the top return address into the program counter.
func (vm *VM) ret() {
	if vm.SP == 0 {
		vm.fault(fmt.Sprintf("return with empty stack at #%04X", vm.PC-2))
		return
	}

	vm.SP--
	vm.PC = vm.Stack[vm.SP]
}

// jump to address.
func (vm *VM) jump(addr uint16) {
	vm.PC = addr
}

// jump to address + v0.
func (vm *VM) jumpV0(addr uint16) {
	vm.PC = addr + uint16(vm.V[0])
}

// skip next instruction if vx == b.
func (vm *VM) skipIf(x, b byte) {
	if vm.V[x] == b {
		vm.PC += 2
	}
}

// skip next instruction if vx != b.
func (vm *VM) skipIfNot(x, b byte) {
	if vm.V[x] != b {
		vm.PC += 2
	}
}

// skip next instruction if vx == vy.
func (vm *VM) skipIfXY(x, y byte) {
	if vm.V[x] == vm.V[y] {
		vm.PC += 2
	}
}

// skip next instruction if vx != vy.
func (vm *VM) skipIfNotXY(x, y byte) {
	if vm.V[x] != vm.V[y] {
		vm.PC += 2
	}
}

// skip next instruction if key(vx) is pressed. Key values above 0xF
// name no key and are never pressed.
func (vm *VM) skipIfPressed(x byte) {
	if k := vm.V[x]; k < NumKeys && vm.Keys[k] {
		vm.PC += 2
	}
}

// skip next instruction if key(vx) is not pressed.
func (vm *VM) skipIfNotPressed(x byte) {
	if k := vm.V[x]; k >= NumKeys || !vm.Keys[k] {
		vm.PC += 2
	}
}

// load b into vx.
func (vm *VM) loadX(x, b byte) {
	vm.V[x] = b
}

// load vy into vx.
func (vm *VM) loadXY(x, y byte) {
	vm.V[x] = vm.V[y]
}

// add b to vx without touching the carry flag.
func (vm *VM) addX(x, b byte) {
	vm.V[x] += b
}

// or vx with vy into vx.
func (vm *VM) or(x, y byte) {
	vm.V[x] |= vm.V[y]
}

// and vx with vy into vx.
func (vm *VM) and(x, y byte) {
	vm.V[x] &= vm.V[y]
}

// xor vx with vy into vx.
func (vm *VM) xor(x, y byte) {
	vm.V[x] ^= vm.V[y]
}

// add vy to vx; vf is the carry out of the pre-wrap 9-bit sum.
func (vm *VM) addXY(x, y byte) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)

	if sum > 0xFF {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

// subtract vy from vx; vf = 1 if vx > vy before the operation.
func (vm *VM) subXY(x, y byte) {
	flag := byte(0)
	if vm.V[x] > vm.V[y] {
		flag = 1
	}

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = flag
}

// subtract vx from vy into vx; vf = 1 if vy > vx before the operation.
func (vm *VM) subYX(x, y byte) {
	flag := byte(0)
	if vm.V[y] > vm.V[x] {
		flag = 1
	}

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = flag
}

// shift vy right one bit into vx; vf is the bit shifted out.
func (vm *VM) shr(x, y byte) {
	flag := vm.V[y] & 1

	vm.V[x] = vm.V[y] >> 1
	vm.V[0xF] = flag
}

// shift vy left one bit into vx; vf is the bit shifted out.
func (vm *VM) shl(x, y byte) {
	flag := vm.V[y] >> 7

	vm.V[x] = vm.V[y] << 1
	vm.V[0xF] = flag
}

// load the address register.
func (vm *VM) loadI(addr uint16) {
	vm.I = addr
}

// load a random byte masked with b into vx.
func (vm *VM) rndX(x, b byte) {
	vm.V[x] = vm.rnd() & b
}

// drw draws an n-byte sprite from memory at I to the display at
// (vx, vy). Pixels are XORed in; rows and columns falling outside the
// frame are clipped, not wrapped. vf reports whether any set pixel was
// cleared, computed once over the whole draw.
func (vm *VM) drw(x, y, n byte) {
	if int(vm.I)+int(n) > MemSize {
		vm.fault(fmt.Sprintf("sprite read out of bounds at I=#%04X, n=%d", vm.I, n))
		return
	}

	collision := byte(0)
	left := int(vm.V[x])
	top := int(vm.V[y])

	for row := 0; row < int(n); row++ {
		py := top + row
		if py >= DisplayHeight {
			continue
		}

		bits := vm.Memory[int(vm.I)+row]

		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := left + col
			if px >= DisplayWidth {
				continue
			}

			p := &vm.Display[py*DisplayWidth+px]
			if *p != 0 {
				collision = 1
			}
			*p ^= 1
		}
	}

	vm.V[0xF] = collision
	vm.dirty = true
}

// load delay timer into vx.
func (vm *VM) loadXDT(x byte) {
	vm.V[x] = vm.DT
}

// load vx into the delay timer.
func (vm *VM) loadDTX(x byte) {
	vm.DT = vm.V[x]
}

// load vx into the sound timer.
func (vm *VM) loadSTX(x byte) {
	vm.ST = vm.V[x]
}

// loadXK arms the key-wait latch targeting vx. No instruction executes
// until PressKey resolves it.
func (vm *VM) loadXK(x byte) {
	vm.waiting = true
	vm.waitReg = x
}

// add vx to the address register.
func (vm *VM) addIX(x byte) {
	vm.I += uint16(vm.V[x])
}

// point the address register at the font sprite for digit vx.
func (vm *VM) loadF(x byte) {
	vm.I = uint16(vm.V[x]) * 5
}

// store the BCD digits of vx at I, I+1 and I+2.
func (vm *VM) loadB(x byte) {
	if int(vm.I)+3 > MemSize {
		vm.fault(fmt.Sprintf("BCD write out of bounds at I=#%04X", vm.I))
		return
	}

	v := vm.V[x]
	vm.Memory[vm.I] = v / 100
	vm.Memory[vm.I+1] = v / 10 % 10
	vm.Memory[vm.I+2] = v % 10
}

// save registers v0..vx to memory at I; I advances past the block.
func (vm *VM) saveRegs(x byte) {
	n := int(x) + 1
	if int(vm.I)+n > MemSize {
		vm.fault(fmt.Sprintf("register store out of bounds at I=#%04X, x=%d", vm.I, x))
		return
	}

	copy(vm.Memory[vm.I:], vm.V[:n])
	vm.I += uint16(n)
}

// load registers v0..vx from memory at I; I advances past the block.
func (vm *VM) loadRegs(x byte) {
	n := int(x) + 1
	if int(vm.I)+n > MemSize {
		vm.fault(fmt.Sprintf("register load out of bounds at I=#%04X, x=%d", vm.I, x))
		return
	}

	copy(vm.V[:n], vm.Memory[vm.I:int(vm.I)+n])
	vm.I += uint16(n)
}
