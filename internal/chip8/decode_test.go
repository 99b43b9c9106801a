package chip8

import "testing"

func TestDecodeOp(t *testing.T) {
	cases := []struct {
		name   string
		opcode uint16
		want   opKind
	}{
		{"CLS", 0x00E0, opCLS},
		{"RET", 0x00EE, opRET},
		{"SYS", 0x0123, opSYS},
		{"JP", 0x1ABC, opJP},
		{"CALL", 0x2ABC, opCALL},
		{"SE Vx,nn", 0x3A12, opSEVxByte},
		{"SNE Vx,nn", 0x4A12, opSNEVxByte},
		{"SE Vx,Vy", 0x5AB0, opSEVxVy},
		{"SE Vx,Vy bad low nibble", 0x5AB1, opUnknown},
		{"LD Vx,nn", 0x6A12, opLDVxByte},
		{"ADD Vx,nn", 0x7A12, opADDVxByte},
		{"LD Vx,Vy", 0x8AB0, opLDVxVy},
		{"OR", 0x8AB1, opORVxVy},
		{"AND", 0x8AB2, opANDVxVy},
		{"XOR", 0x8AB3, opXORVxVy},
		{"ADD Vx,Vy", 0x8AB4, opADDVxVy},
		{"SUB", 0x8AB5, opSUBVxVy},
		{"SHR", 0x8AB6, opSHRVx},
		{"SUBN", 0x8AB7, opSUBNVxVy},
		{"SHL", 0x8ABE, opSHLVx},
		{"8 unknown", 0x8ABF, opUnknown},
		{"SNE Vx,Vy", 0x9AB0, opSNEVxVy},
		{"SNE Vx,Vy bad low nibble", 0x9AB1, opUnknown},
		{"LD I,nnn", 0xAABC, opLDIAddr},
		{"JP V0,nnn", 0xBABC, opJPV0},
		{"RND", 0xCA12, opRNDVxByte},
		{"DRW", 0xDAB5, opDRW},
		{"SKP", 0xEA9E, opSKPVx},
		{"SKNP", 0xEAA1, opSKNPVx},
		{"E unknown", 0xEA00, opUnknown},
		{"LD Vx,DT", 0xFA07, opLDVxDT},
		{"LD Vx,K", 0xFA0A, opLDVxK},
		{"LD DT,Vx", 0xFA15, opLDDTVx},
		{"LD ST,Vx", 0xFA18, opLDSTVx},
		{"ADD I,Vx", 0xFA1E, opADDIVx},
		{"LD F,Vx", 0xFA29, opLDFVx},
		{"LD B,Vx", 0xFA33, opLDBVx},
		{"LD [I],Vx", 0xFA55, opLDIVx},
		{"LD Vx,[I]", 0xFA65, opLDVxI},
		{"F unknown", 0xFA00, opUnknown},
		// regression: the Python original's opcode_map keyed on full
		// opcodes (0xF007, 0xF015, 0xF018, 0xF029) only ever matched when
		// x happened to be 0; decoding x/nn/nnn as separate fields means
		// a nonzero x must behave identically.
		{"LD Vx,DT x!=0", 0xF507, opLDVxDT},
		{"LD DT,Vx x!=0", 0xF515, opLDDTVx},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := decodeOp(c.opcode).kind
			if got != c.want {
				t.Errorf("decodeOp(%#04x).kind = %v, want %v", c.opcode, got, c.want)
			}
		})
	}
}

func TestDecodeOpFieldsExtracted(t *testing.T) {
	in := decodeOp(0xDAB5)
	if in.x != 0xA || in.y != 0xB || in.n != 0x5 {
		t.Errorf("DRW fields x=%x y=%x n=%x, want x=a y=b n=5", in.x, in.y, in.n)
	}

	in = decodeOp(0x7A42)
	if in.x != 0xA || in.nn != 0x42 {
		t.Errorf("ADD fields x=%x nn=%x, want x=a nn=42", in.x, in.nn)
	}

	in = decodeOp(0x1ABC)
	if in.nnn != 0xABC {
		t.Errorf("JP field nnn=%x, want abc", in.nnn)
	}
}
