package chip8

import "fmt"

// String formats the instruction as an assembly mnemonic.
func (in Instruction) String() string {
	switch in.Op {
	case Sys:
		return fmt.Sprintf("SYS    #%03X", in.Addr)
	case Cls:
		return "CLS"
	case Ret:
		return "RET"
	case Jp:
		return fmt.Sprintf("JP     #%03X", in.Addr)
	case Call:
		return fmt.Sprintf("CALL   #%03X", in.Addr)
	case SeB:
		return fmt.Sprintf("SE     V%X, #%02X", in.X, in.B)
	case SneB:
		return fmt.Sprintf("SNE    V%X, #%02X", in.X, in.B)
	case SeV:
		return fmt.Sprintf("SE     V%X, V%X", in.X, in.Y)
	case LdB:
		return fmt.Sprintf("LD     V%X, #%02X", in.X, in.B)
	case AddB:
		return fmt.Sprintf("ADD    V%X, #%02X", in.X, in.B)
	case LdV:
		return fmt.Sprintf("LD     V%X, V%X", in.X, in.Y)
	case Or:
		return fmt.Sprintf("OR     V%X, V%X", in.X, in.Y)
	case And:
		return fmt.Sprintf("AND    V%X, V%X", in.X, in.Y)
	case Xor:
		return fmt.Sprintf("XOR    V%X, V%X", in.X, in.Y)
	case AddV:
		return fmt.Sprintf("ADD    V%X, V%X", in.X, in.Y)
	case Sub:
		return fmt.Sprintf("SUB    V%X, V%X", in.X, in.Y)
	case Shr:
		return fmt.Sprintf("SHR    V%X, V%X", in.X, in.Y)
	case Subn:
		return fmt.Sprintf("SUBN   V%X, V%X", in.X, in.Y)
	case Shl:
		return fmt.Sprintf("SHL    V%X, V%X", in.X, in.Y)
	case SneV:
		return fmt.Sprintf("SNE    V%X, V%X", in.X, in.Y)
	case LdI:
		return fmt.Sprintf("LD     I, #%03X", in.Addr)
	case JpV0:
		return fmt.Sprintf("JP     V0, #%03X", in.Addr)
	case Rnd:
		return fmt.Sprintf("RND    V%X, #%02X", in.X, in.B)
	case Drw:
		return fmt.Sprintf("DRW    V%X, V%X, %d", in.X, in.Y, in.N)
	case Skp:
		return fmt.Sprintf("SKP    V%X", in.X)
	case Sknp:
		return fmt.Sprintf("SKNP   V%X", in.X)
	case LdDT:
		return fmt.Sprintf("LD     V%X, DT", in.X)
	case LdKey:
		return fmt.Sprintf("LD     V%X, K", in.X)
	case SetDT:
		return fmt.Sprintf("LD     DT, V%X", in.X)
	case SetST:
		return fmt.Sprintf("LD     ST, V%X", in.X)
	case AddI:
		return fmt.Sprintf("ADD    I, V%X", in.X)
	case LdFont:
		return fmt.Sprintf("LD     F, V%X", in.X)
	case LdBCD:
		return fmt.Sprintf("LD     B, V%X", in.X)
	case SaveRegs:
		return fmt.Sprintf("LD     [I], V%X", in.X)
	case LoadRegs:
		return fmt.Sprintf("LD     V%X, [I]", in.X)
	}

	return fmt.Sprintf("??     #%04X", in.Word)
}

// Disassemble the instruction at a memory address, formatted with its
// location the way the debugger displays it.
func (vm *VM) Disassemble(addr uint16) string {
	if int(addr)+1 >= len(vm.Memory) {
		return fmt.Sprintf("%03X -", addr)
	}

	word := uint16(vm.Memory[addr])<<8 | uint16(vm.Memory[addr+1])

	// zeroed memory is past the end of the program
	if word == 0 {
		return fmt.Sprintf("%03X -", addr)
	}

	return fmt.Sprintf("%03X - %s", addr, Decode(word))
}
