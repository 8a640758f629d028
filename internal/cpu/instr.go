package cpu

// instr.go decodes the bit fields of a 32-bit R3000A instruction word.
//
// Grounded on the teacher's Instruction bit-accessor methods
// (internal/vm/types.go: Opcode/Cond/DR/SR/SR1/SR2/Imm/Offset/Literal), here
// generalized from the LC-3's 4-bit opcode/12-bit operand layout to MIPS's
// 6-bit opcode/funct fields and R/I/J instruction formats.
type Instruction uint32

// Opcode returns the primary opcode, bits [31:26].
func (i Instruction) Opcode() uint8 { return uint8(i >> 26 & 0x3f) }

// Funct returns the function code used by SPECIAL (opcode 0) instructions,
// bits [5:0].
func (i Instruction) Funct() uint8 { return uint8(i & 0x3f) }

// Rs returns the first source register, bits [25:21].
func (i Instruction) Rs() uint8 { return uint8(i >> 21 & 0x1f) }

// Rt returns the second source register (or destination, for immediate and
// load instructions), bits [20:16].
func (i Instruction) Rt() uint8 { return uint8(i >> 16 & 0x1f) }

// Rd returns the destination register used by register-format instructions,
// bits [15:11].
func (i Instruction) Rd() uint8 { return uint8(i >> 11 & 0x1f) }

// Shamt returns the shift amount, bits [10:6].
func (i Instruction) Shamt() uint8 { return uint8(i >> 6 & 0x1f) }

// Imm16 returns the zero-extended 16-bit immediate, bits [15:0].
func (i Instruction) Imm16() uint16 { return uint16(i) }

// SignedImm16 returns the sign-extended 16-bit immediate.
func (i Instruction) SignedImm16() int32 { return int32(int16(i)) }

// BranchOffset returns the byte offset encoded by a branch instruction's
// immediate field: sign-extended and scaled by four, since branch targets
// are word-aligned relative to the delay slot's address.
func (i Instruction) BranchOffset() int32 { return i.SignedImm16() << 2 }

// Target returns the jump target field, bits [25:0].
func (i Instruction) Target() uint32 { return uint32(i & 0x03ffffff) }

// CopNo returns the coprocessor number a COPz-family opcode (0x10-0x13)
// addresses.
func (i Instruction) CopNo() uint8 { return i.Opcode() & 0x3 }
