package cpu

// opcodes.go names the primary opcodes and SPECIAL/REGIMM/COPz function
// codes used by dispatch.go's nested dispatch table.
//
// Grounded on the original implementation's two decode tables
// (core/src/cpu/cpu.rs's Inst enum and src/core/mips/mips.rs's
// match (opcode, funct) tuple dispatch), renamed to the mnemonics the MIPS
// reference manual uses rather than the enum variant names the original
// chose.
const (
	opSPECIAL uint8 = 0x00
	opREGIMM  uint8 = 0x01
	opJ       uint8 = 0x02
	opJAL     uint8 = 0x03
	opBEQ     uint8 = 0x04
	opBNE     uint8 = 0x05
	opBLEZ    uint8 = 0x06
	opBGTZ    uint8 = 0x07
	opADDI    uint8 = 0x08
	opADDIU   uint8 = 0x09
	opSLTI    uint8 = 0x0A
	opSLTIU   uint8 = 0x0B
	opANDI    uint8 = 0x0C
	opORI     uint8 = 0x0D
	opXORI    uint8 = 0x0E
	opLUI     uint8 = 0x0F
	opCOP0    uint8 = 0x10
	opCOP1    uint8 = 0x11
	opCOP2    uint8 = 0x12
	opCOP3    uint8 = 0x13
	opLB      uint8 = 0x20
	opLH      uint8 = 0x21
	opLWL     uint8 = 0x22
	opLW      uint8 = 0x23
	opLBU     uint8 = 0x24
	opLHU     uint8 = 0x25
	opLWR     uint8 = 0x26
	opSB      uint8 = 0x28
	opSH      uint8 = 0x29
	opSWL     uint8 = 0x2A
	opSW      uint8 = 0x2B
	opSWR     uint8 = 0x2E
	opLWC2    uint8 = 0x32
	opSWC2    uint8 = 0x3A
)

// SPECIAL (opcode 0) function codes.
const (
	fnSLL     uint8 = 0x00
	fnSRL     uint8 = 0x02
	fnSRA     uint8 = 0x03
	fnSLLV    uint8 = 0x04
	fnSRLV    uint8 = 0x06
	fnSRAV    uint8 = 0x07
	fnJR      uint8 = 0x08
	fnJALR    uint8 = 0x09
	fnSYSCALL uint8 = 0x0C
	fnBREAK   uint8 = 0x0D
	fnMFHI    uint8 = 0x10
	fnMTHI    uint8 = 0x11
	fnMFLO    uint8 = 0x12
	fnMTLO    uint8 = 0x13
	fnMULT    uint8 = 0x18
	fnMULTU   uint8 = 0x19
	fnDIV     uint8 = 0x1A
	fnDIVU    uint8 = 0x1B
	fnADD     uint8 = 0x20
	fnADDU    uint8 = 0x21
	fnSUB     uint8 = 0x22
	fnSUBU    uint8 = 0x23
	fnAND     uint8 = 0x24
	fnOR      uint8 = 0x25
	fnXOR     uint8 = 0x26
	fnNOR     uint8 = 0x27
	fnSLT     uint8 = 0x2A
	fnSLTU    uint8 = 0x2B
)

// REGIMM (opcode 1) rt-field sub-opcodes.
const (
	riBLTZ   uint8 = 0x00
	riBGEZ   uint8 = 0x01
	riBLTZAL uint8 = 0x10
	riBGEZAL uint8 = 0x11
)

// COPz rs-field sub-opcodes.
const (
	copMF uint8 = 0x00
	copCF uint8 = 0x02
	copMT uint8 = 0x04
	copCT uint8 = 0x06
)
