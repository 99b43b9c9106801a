package chip8

// opKind tags a decoded instruction with the operation it represents. The
// decoder runs once per fetch and produces one of these; execute() then
// dispatches on kind alone, so the opcode's bit layout only needs parsing
// in one place.
type opKind int

const (
	opUnknown opKind = iota
	opCLS
	opRET
	opSYS
	opJP
	opCALL
	opSEVxByte
	opSNEVxByte
	opSEVxVy
	opLDVxByte
	opADDVxByte
	opLDVxVy
	opORVxVy
	opANDVxVy
	opXORVxVy
	opADDVxVy
	opSUBVxVy
	opSHRVx
	opSUBNVxVy
	opSHLVx
	opSNEVxVy
	opLDIAddr
	opJPV0
	opRNDVxByte
	opDRW
	opSKPVx
	opSKNPVx
	opLDVxDT
	opLDVxK
	opLDDTVx
	opLDSTVx
	opADDIVx
	opLDFVx
	opLDBVx
	opLDIVx
	opLDVxI
)

// instruction is the decoded form of a 16-bit opcode: the operation kind
// plus whichever operand fields it uses. x/y index registers, n is a
// 4-bit immediate (sprite height), nn an 8-bit immediate, nnn a 12-bit
// address.
type instruction struct {
	kind opKind
	x    uint16
	y    uint16
	n    uint16
	nn   byte
	nnn  uint16
}

// decodeOp maps a 16-bit opcode to its semantic operation. This is the
// decoder's only job: execute() never re-inspects the raw opcode bits.
func decodeOp(opcode uint16) instruction {
	x := (opcode & 0x0F00) >> 8
	y := (opcode & 0x00F0) >> 4
	n := opcode & 0x000F
	nn := byte(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	in := instruction{x: x, y: y, n: n, nn: nn, nnn: nnn}

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			in.kind = opCLS
		case 0x00EE:
			in.kind = opRET
		default:
			in.kind = opSYS
		}
	case 0x1000:
		in.kind = opJP
	case 0x2000:
		in.kind = opCALL
	case 0x3000:
		in.kind = opSEVxByte
	case 0x4000:
		in.kind = opSNEVxByte
	case 0x5000:
		if n == 0 {
			in.kind = opSEVxVy
		}
	case 0x6000:
		in.kind = opLDVxByte
	case 0x7000:
		in.kind = opADDVxByte
	case 0x8000:
		switch n {
		case 0x0:
			in.kind = opLDVxVy
		case 0x1:
			in.kind = opORVxVy
		case 0x2:
			in.kind = opANDVxVy
		case 0x3:
			in.kind = opXORVxVy
		case 0x4:
			in.kind = opADDVxVy
		case 0x5:
			in.kind = opSUBVxVy
		case 0x6:
			in.kind = opSHRVx
		case 0x7:
			in.kind = opSUBNVxVy
		case 0xE:
			in.kind = opSHLVx
		}
	case 0x9000:
		if n == 0 {
			in.kind = opSNEVxVy
		}
	case 0xA000:
		in.kind = opLDIAddr
	case 0xB000:
		in.kind = opJPV0
	case 0xC000:
		in.kind = opRNDVxByte
	case 0xD000:
		in.kind = opDRW
	case 0xE000:
		switch nn {
		case 0x9E:
			in.kind = opSKPVx
		case 0xA1:
			in.kind = opSKNPVx
		}
	case 0xF000:
		switch nn {
		case 0x07:
			in.kind = opLDVxDT
		case 0x0A:
			in.kind = opLDVxK
		case 0x15:
			in.kind = opLDDTVx
		case 0x18:
			in.kind = opLDSTVx
		case 0x1E:
			in.kind = opADDIVx
		case 0x29:
			in.kind = opLDFVx
		case 0x33:
			in.kind = opLDBVx
		case 0x55:
			in.kind = opLDIVx
		case 0x65:
			in.kind = opLDVxI
		}
	}

	return in
}
