package encoder

// Basic opcode table (spec §4.3): opcode bits [3:0] of the instruction word.
const (
	OpSET = 0x1
	OpADD = 0x2
	OpSUB = 0x3
	OpMUL = 0x4
	OpDIV = 0x5
	OpMOD = 0x6
	OpSHL = 0x7
	OpSHR = 0x8
	OpAND = 0x9
	OpBOR = 0xA
	OpXOR = 0xB
	OpIFE = 0xC
	OpIFN = 0xD
	OpIFG = 0xE
	OpIFB = 0xF
)

var basicOpcodes = map[string]uint16{
	"SET": OpSET, "ADD": OpADD, "SUB": OpSUB, "MUL": OpMUL, "DIV": OpDIV,
	"MOD": OpMOD, "SHL": OpSHL, "SHR": OpSHR, "AND": OpAND, "BOR": OpBOR,
	"XOR": OpXOR, "IFE": OpIFE, "IFN": OpIFN, "IFG": OpIFG, "IFB": OpIFB,
}

// Non-basic opcode table (spec §4.3): opcode bits [9:4] when bits [3:0] == 0.
const (
	OpJSR = 0x01
)

var nonBasicOpcodes = map[string]uint16{
	"JSR": OpJSR,
}

// Operand 6-bit value table (spec §4.3).
const (
	ValRegisterBase         = 0x00 // + register index, immediate
	ValRegisterIndirect     = 0x08 // + register index, [register]
	ValRegisterNextWordBase = 0x10 // + register index, [next word + register]
	ValPOP                  = 0x18
	ValPEEK                 = 0x19
	ValPUSH                 = 0x1A
	ValSP                   = 0x1B
	ValPC                   = 0x1C
	ValO                    = 0x1D
	ValNextWordIndirect     = 0x1E // [next word]
	ValNextWordLiteral      = 0x1F // next word
	ValSmallLiteralBase     = 0x20 // + literal 0..0x1F
)

// registerIndex maps a general register name to its 0..7 index (spec §3:
// registers A..J).
var registerIndex = map[string]uint16{
	"A": 0, "B": 1, "C": 2, "X": 3, "Y": 4, "Z": 5, "I": 6, "J": 7,
}
