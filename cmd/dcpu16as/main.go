// Command dcpu16as assembles DCPU-16 source into a hex-dump image (spec
// §6): source in, image out, nothing else.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lookbusy1344/dcpu16/config"
	"github.com/lookbusy1344/dcpu16/encoder"
	"github.com/lookbusy1344/dcpu16/hexdump"
	"github.com/lookbusy1344/dcpu16/parser"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		output    string
		bigEndian bool
		paranoid  bool
		showHelp  bool
	)

	flag.StringVar(&output, "o", "out.hex", "output path")
	flag.BoolVar(&bigEndian, "b", cfg.Assembler.BigEndian, "write big-endian words (default little-endian)")
	flag.BoolVar(&bigEndian, "bigendian", cfg.Assembler.BigEndian, "write big-endian words (default little-endian)")
	flag.BoolVar(&paranoid, "p", cfg.Assembler.Paranoid, "enable non-fatal warnings")
	flag.BoolVar(&paranoid, "paranoid", cfg.Assembler.Paranoid, "enable non-fatal warnings")
	flag.BoolVar(&showHelp, "h", false, "print usage and exit")
	flag.BoolVar(&showHelp, "help", false, "print usage and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: dcpu16as [flags] [path]\n\n")
		fmt.Fprintf(os.Stderr, "assembles DCPU-16 source (stdin or path, '-' for stdin) into a hex-dump image\n\n")
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

	source, filename, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16as: %v\n", err)
		os.Exit(1)
	}

	prog, warnings, err := parser.Parse(source, filename, paranoid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if warnings != nil && len(warnings.Warnings) > 0 {
		fmt.Fprint(os.Stderr, warnings.String())
	}

	enc := encoder.NewEncoder(prog.Symbols, paranoid)
	image, encWarnings, err := enc.Encode(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if encWarnings != nil && len(encWarnings.Warnings) > 0 {
		fmt.Fprint(os.Stderr, encWarnings.String())
	}

	out, closeOut, err := openOutput(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16as: %v\n", err)
		os.Exit(1)
	}
	defer closeOut()

	endianness := hexdump.Little
	if bigEndian {
		endianness = hexdump.Big
	}
	if err := hexdump.Write(out, image, endianness); err != nil {
		fmt.Fprintf(os.Stderr, "dcpu16as: %v\n", err)
		os.Exit(1)
	}
}

func readSource(path string) (source, filename string, err error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), "<stdin>", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), path, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
