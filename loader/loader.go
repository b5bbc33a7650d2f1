// Package loader copies an assembled RAM image into a Machine, the one
// step that turns assembler output into something the emulator can run.
package loader

import "github.com/lookbusy1344/dcpu16/vm"

// LoadImage copies image into m's memory and resets the CPU to its
// power-on state with PC at 0, the DCPU-16 entry point (spec §6).
func LoadImage(m *vm.Machine, image [65536]uint16) {
	m.CPU.Reset()
	m.Mem.Load(image)
}
