// Package debugger implements the step/continue/breakpoint CLI and the
// tcell/tview console TUI spec §6 names as the emulator's interactive
// surfaces.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/dcpu16/vm"
)

// StepMode distinguishes a single-step request from free-running
// execution.
type StepMode int

const (
	StepNone StepMode = iota
	StepSingle
)

// Debugger wraps a vm.Machine with breakpoints, a step/continue state
// machine and an output buffer the CLI/TUI front ends drain.
type Debugger struct {
	Machine *vm.Machine

	Breakpoints *BreakpointManager

	Running     bool
	StepMode    StepMode
	LastCommand string

	Output strings.Builder
}

// NewDebugger creates a Debugger wrapping machine.
func NewDebugger(machine *vm.Machine) *Debugger {
	return &Debugger{
		Machine:     machine,
		Breakpoints: NewBreakpointManager(),
		StepMode:    StepNone,
	}
}

// ParseAddress parses a "0x..." or decimal address string.
func ParseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if n > 0xFFFF {
		return 0, fmt.Errorf("address %q out of range", s)
	}
	return uint16(n), nil
}

// ExecuteCommand parses and runs one command line.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}
	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s":
		return d.cmdStep(args)
	case "break", "b":
		return d.cmdBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "regs", "registers", "i":
		return d.cmdRegs(args)
	case "print", "p":
		return d.cmdPrint(args)
	case "reset":
		return d.cmdReset(args)
	case "help", "h", "?":
		return d.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak reports whether execution should pause before the
// instruction at the Machine's current PC runs.
func (d *Debugger) ShouldBreak() (bool, string) {
	pc := d.Machine.CPU.PC

	if d.StepMode == StepSingle {
		d.StepMode = StepNone
		return true, "single step"
	}

	if bp := d.Breakpoints.GetBreakpoint(pc); bp != nil && bp.Enabled {
		hit := d.Breakpoints.ProcessHit(pc)
		return true, fmt.Sprintf("breakpoint %d", hit.ID)
	}

	return false, ""
}

// GetOutput returns and clears the accumulated output buffer.
func (d *Debugger) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}
