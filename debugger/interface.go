package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lookbusy1344/dcpu16/config"
)

// RunCLI runs the command-line debugger interface (spec §6).
func RunCLI(dbg *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(dcpu16-dbg) ")

		if !scanner.Scan() {
			break
		}
		cmdLine := strings.TrimSpace(scanner.Text())

		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		if output := dbg.GetOutput(); output != "" {
			fmt.Print(output)
		}

		for dbg.Running {
			if shouldBreak, reason := dbg.ShouldBreak(); shouldBreak {
				dbg.Running = false
				fmt.Printf("Stopped: %s at PC=0x%04X\n", reason, dbg.Machine.CPU.PC)
				break
			}
			pc := dbg.Machine.CPU.PC
			dbg.Machine.Step()
			if dbg.Machine.HaltOnFixpoint && dbg.Machine.CPU.PC == pc {
				dbg.Running = false
				fmt.Printf("Halted at PC=0x%04X\n", pc)
				break
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}

// RunTUI runs the tcell/tview console debugger, painted with cfg's
// palette. A nil cfg falls back to config.DefaultConfig.
func RunTUI(dbg *Debugger, cfg *config.Config) error {
	tui := NewTUI(dbg, cfg)
	return tui.Run()
}
