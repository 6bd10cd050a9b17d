package chip8

// Op selects one variant of the CHIP-8 instruction set.
type Op byte

const (
	// Sys is the legacy 0nnn "jump to machine routine". Modern
	// interpreters treat it as a no-op.
	Sys Op = iota
	Cls
	Ret
	Jp
	Call
	SeB
	SneB
	SeV
	LdB
	AddB
	LdV
	Or
	And
	Xor
	AddV
	Sub
	Shr
	Subn
	Shl
	SneV
	LdI
	JpV0
	Rnd
	Drw
	Skp
	Sknp
	LdDT
	LdKey
	SetDT
	SetST
	AddI
	LdFont
	LdBCD
	SaveRegs
	LoadRegs

	// Unknown is produced for any bit pattern that matches no opcode.
	Unknown
)

// Instruction is a decoded CHIP-8 instruction. Op selects the variant
// and only the operand fields that variant uses are populated. Word
// always holds the raw instruction bits.
type Instruction struct {
	Op Op

	// X and Y are 4-bit register selectors.
	X byte
	Y byte

	// B is the 8-bit immediate (kk).
	B byte

	// N is the 4-bit immediate (sprite height).
	N byte

	// Addr is the 12-bit address operand (nnn).
	Addr uint16

	// Word is the raw 16-bit instruction.
	Word uint16
}

// Decode turns a raw 16-bit instruction word into an Instruction. It is
// total: every bit pattern decodes to exactly one variant, unmatched
// patterns to Unknown. It never fails and touches no machine state.
func Decode(word uint16) Instruction {
	in := Instruction{Op: Unknown, Word: word}

	// operand fields per the fixed 0xFXYN layout
	addr := word & 0xFFF
	x := byte(word >> 8 & 0xF)
	y := byte(word >> 4 & 0xF)
	b := byte(word & 0xFF)
	n := byte(word & 0xF)

	switch word >> 12 {
	case 0x0:
		switch addr {
		case 0x0E0:
			in.Op = Cls
		case 0x0EE:
			in.Op = Ret
		default:
			in.Op = Sys
			in.Addr = addr
		}
	case 0x1:
		in.Op = Jp
		in.Addr = addr
	case 0x2:
		in.Op = Call
		in.Addr = addr
	case 0x3:
		in.Op = SeB
		in.X, in.B = x, b
	case 0x4:
		in.Op = SneB
		in.X, in.B = x, b
	case 0x5:
		if n == 0x0 {
			in.Op = SeV
			in.X, in.Y = x, y
		}
	case 0x6:
		in.Op = LdB
		in.X, in.B = x, b
	case 0x7:
		in.Op = AddB
		in.X, in.B = x, b
	case 0x8:
		switch n {
		case 0x0:
			in.Op = LdV
		case 0x1:
			in.Op = Or
		case 0x2:
			in.Op = And
		case 0x3:
			in.Op = Xor
		case 0x4:
			in.Op = AddV
		case 0x5:
			in.Op = Sub
		case 0x6:
			in.Op = Shr
		case 0x7:
			in.Op = Subn
		case 0xE:
			in.Op = Shl
		}
		if in.Op != Unknown {
			in.X, in.Y = x, y
		}
	case 0x9:
		if n == 0x0 {
			in.Op = SneV
			in.X, in.Y = x, y
		}
	case 0xA:
		in.Op = LdI
		in.Addr = addr
	case 0xB:
		in.Op = JpV0
		in.Addr = addr
	case 0xC:
		in.Op = Rnd
		in.X, in.B = x, b
	case 0xD:
		in.Op = Drw
		in.X, in.Y, in.N = x, y, n
	case 0xE:
		switch b {
		case 0x9E:
			in.Op = Skp
			in.X = x
		case 0xA1:
			in.Op = Sknp
			in.X = x
		}
	case 0xF:
		switch b {
		case 0x07:
			in.Op = LdDT
		case 0x0A:
			in.Op = LdKey
		case 0x15:
			in.Op = SetDT
		case 0x18:
			in.Op = SetST
		case 0x1E:
			in.Op = AddI
		case 0x29:
			in.Op = LdFont
		case 0x33:
			in.Op = LdBCD
		case 0x55:
			in.Op = SaveRegs
		case 0x65:
			in.Op = LoadRegs
		}
		if in.Op != Unknown {
			in.X = x
		}
	}

	return in
}
