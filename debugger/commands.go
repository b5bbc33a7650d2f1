package debugger

import (
	"fmt"

	"github.com/lookbusy1344/dcpu16/vm"
)

func (d *Debugger) cmdContinue(args []string) error {
	d.Running = true
	d.StepMode = StepNone
	d.Println("Continuing.")
	return nil
}

func (d *Debugger) cmdStep(args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := parseCount(args[0])
		if err != nil {
			return err
		}
		count = n
	}
	for i := 0; i < count; i++ {
		d.Machine.Step()
	}
	d.printCurrentInstruction()
	return nil
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: break <address>")
	}
	addr, err := ParseAddress(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(addr, false)
	d.Printf("Breakpoint %d at 0x%04X\n", bp.ID, bp.Address)
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) != 1 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted.")
		return nil
	}
	var id int
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("invalid breakpoint id %q", args[0])
	}
	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d deleted.\n", id)
	return nil
}

func (d *Debugger) cmdRegs(args []string) error {
	c := d.Machine.CPU
	for i, name := range []string{"A", "B", "C", "X", "Y", "Z", "I", "J"} {
		d.Printf("%s=0x%04X ", name, c.Registers[i])
		if (i+1)%RegisterGroupSize == 0 {
			d.Println()
		}
	}
	d.Println()
	d.Printf("PC=0x%04X SP=0x%04X O=0x%04X\n", c.PC, c.SP, c.O)
	return nil
}

func (d *Debugger) cmdPrint(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: print <register>")
	}
	name := args[0]
	c := d.Machine.CPU
	switch name {
	case "PC", "pc":
		d.Printf("PC = 0x%04X\n", c.PC)
	case "SP", "sp":
		d.Printf("SP = 0x%04X\n", c.SP)
	case "O", "o":
		d.Printf("O = 0x%04X\n", c.O)
	case "A", "B", "C", "X", "Y", "Z", "I", "J":
		d.Printf("%s = 0x%04X\n", name, c.Register(name))
	default:
		return fmt.Errorf("unknown register %q", name)
	}
	return nil
}

func (d *Debugger) cmdReset(args []string) error {
	d.Machine.CPU.Reset()
	d.Running = false
	d.StepMode = StepNone
	d.Println("Machine reset.")
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	d.Println("commands: continue(c) step(s) [n] break(b) <addr> delete(d) [id] regs(i) print(p) <reg> reset help(h)")
	return nil
}

func (d *Debugger) printCurrentInstruction() {
	image := d.Machine.Mem.Snapshot()
	_, text := vm.Disassemble(image, int(d.Machine.CPU.PC))
	d.Printf("0x%04X: %s\n", d.Machine.CPU.PC, text)
}

func parseCount(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid step count %q", s)
	}
	return n, nil
}
