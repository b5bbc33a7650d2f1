package debugger

// DisplayUpdateFrequency controls how often the TUI repaints during
// continuous execution (every N steps), so a fast-running program
// doesn't saturate the terminal.
const DisplayUpdateFrequency = 200

// Console view constants (spec §6: 32x12 memory-mapped console).
const (
	ConsoleViewCols = 32
	ConsoleViewRows = 12
)

// RegisterGroupSize is the number of registers shown per row in both
// the CLI "regs" output and the TUI register panel.
const RegisterGroupSize = 4
