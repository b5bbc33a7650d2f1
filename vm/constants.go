// Package vm implements the DCPU-16 CPU core spec §4.5 describes: fetch,
// decode and execute over a flat 64 KiW memory image, plus the
// memory-mapped console and keyboard peripherals spec §6 names.
package vm

// Memory map (spec §6): the console framebuffer and the one-word key
// buffer are ordinary RAM addresses with side effects on read/write.
const (
	ConsoleBase   = 0x8000 // console VRAM start
	ConsoleCols   = 32
	ConsoleRows   = 12
	ConsoleWords  = ConsoleCols * ConsoleRows
	KeyBufferAddr = 0x9000 // address of the last key pressed
)

// Key identifies a keypress delivered to the machine. ASCII keys carry
// their byte value; the arrow keys use the special codes below (spec §6).
type Key uint16

const (
	KeyLeft  Key = 1
	KeyRight Key = 2
	KeyUp    Key = 3
	KeyDown  Key = 4
)

// Register name -> index, the same mapping as the encoder's own table
// (spec §3: general registers A..J).
var registerIndex = map[string]int{
	"A": 0, "B": 1, "C": 2, "X": 3, "Y": 4, "Z": 5, "I": 6, "J": 7,
}

var registerNames = [8]string{"A", "B", "C", "X", "Y", "Z", "I", "J"}

// Basic opcodes (instruction bits[3:0], spec §4.3/§4.5).
const (
	opSET = 0x1
	opADD = 0x2
	opSUB = 0x3
	opMUL = 0x4
	opDIV = 0x5
	opMOD = 0x6
	opSHL = 0x7
	opSHR = 0x8
	opAND = 0x9
	opBOR = 0xA
	opXOR = 0xB
	opIFE = 0xC
	opIFN = 0xD
	opIFG = 0xE
	opIFB = 0xF
)

// Non-basic opcodes (instruction bits[3:0] == 0, real op in bits[9:4]).
const (
	opJSR = 0x01
)

// Operand value-table bands (spec §4.3).
const (
	valRegisterBase         = 0x00
	valRegisterIndirect     = 0x08
	valRegisterNextWordBase = 0x10
	valPOP                  = 0x18
	valPEEK                 = 0x19
	valPUSH                 = 0x1A
	valSP                   = 0x1B
	valPC                   = 0x1C
	valO                    = 0x1D
	valNextWordIndirect     = 0x1E
	valNextWordLiteral      = 0x1F
	valSmallLiteralBase     = 0x20
)
