// Command dcpu16vm loads a DCPU-16 hex-dump image and either runs it
// headlessly, disassembles it, or drops into the interactive debugger
// (spec §6).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lookbusy1344/dcpu16/config"
	"github.com/lookbusy1344/dcpu16/debugger"
	"github.com/lookbusy1344/dcpu16/hexdump"
	"github.com/lookbusy1344/dcpu16/loader"
	"github.com/lookbusy1344/dcpu16/vm"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		bigEndian    bool
		verbose      bool
		disassemble  bool
		haltFixpoint bool
		tuiMode      bool
		debugMode    bool
		showHelp     bool
	)

	flag.BoolVar(&bigEndian, "b", false, "interpret input as big-endian")
	flag.BoolVar(&bigEndian, "bigendian", false, "interpret input as big-endian")
	flag.BoolVar(&verbose, "v", false, "extra diagnostic output")
	flag.BoolVar(&verbose, "verbose", false, "extra diagnostic output")
	flag.BoolVar(&disassemble, "d", false, "read image and print decoded instructions, do not execute")
	flag.BoolVar(&disassemble, "disassemble", false, "read image and print decoded instructions, do not execute")
	flag.BoolVar(&haltFixpoint, "H", cfg.Emulator.HaltOnFixpoint, "stop on pc fixpoint")
	flag.BoolVar(&haltFixpoint, "halt", cfg.Emulator.HaltOnFixpoint, "stop on pc fixpoint")
	flag.BoolVar(&tuiMode, "tui", false, "run the text user interface debugger")
	flag.BoolVar(&debugMode, "debug", false, "run the line-oriented command debugger")
	flag.BoolVar(&showHelp, "h", false, "usage and exit")
	flag.BoolVar(&showHelp, "help", false, "usage and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: dcpu16vm [flags] [image path]\n\n")
		fmt.Fprintf(os.Stderr, "runs a DCPU-16 hex-dump image (stdin or path, '-' for stdin)\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	path := "-"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	in, closeIn, err := openInput(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16vm: %v\n", err)
		os.Exit(1)
	}
	defer closeIn()

	endianness := hexdump.Little
	if bigEndian {
		endianness = hexdump.Big
	}
	image, err := hexdump.Read(in, endianness)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16vm: %v\n", err)
		os.Exit(1)
	}

	if disassemble {
		disassembleImage(image)
		return
	}

	m := vm.NewMachine()
	m.HaltOnFixpoint = haltFixpoint
	loader.LoadImage(m, image)

	if tuiMode || debugMode {
		dbg := debugger.NewDebugger(m)
		var runErr error
		if tuiMode {
			runErr = debugger.RunTUI(dbg, cfg)
		} else {
			runErr = debugger.RunCLI(dbg)
		}
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "dcpu16vm: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	steps := m.Run(0)
	if verbose {
		printRegisters(m)
		fmt.Fprintf(os.Stderr, "executed %d step(s)\n", steps)
	}
	printConsole(m)
}

func disassembleImage(image [65536]uint16) {
	for addr := 0; addr < 65536; {
		next, text := vm.Disassemble(image, addr)
		fmt.Printf("0x%04X: %s\n", addr, text)
		if next <= addr || next >= 65536 {
			break
		}
		addr = next
	}
}

func printRegisters(m *vm.Machine) {
	c := m.CPU
	names := []string{"A", "B", "C", "X", "Y", "Z", "I", "J"}
	for i, name := range names {
		fmt.Fprintf(os.Stderr, "%s=0x%04X ", name, c.Registers[i])
	}
	fmt.Fprintf(os.Stderr, "\nPC=0x%04X SP=0x%04X O=0x%04X\n", c.PC, c.SP, c.O)
}

func printConsole(m *vm.Machine) {
	for row := 0; row < vm.ConsoleRows; row++ {
		for col := 0; col < vm.ConsoleCols; col++ {
			ch := m.ConsoleCell(row, col).Ch
			if ch < 32 || ch >= 127 {
				ch = ' '
			}
			fmt.Print(string(ch))
		}
		fmt.Println()
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
