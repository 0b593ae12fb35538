package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mython-lang/mython/mython"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) == 3 {
		return runFile(args[1], args[2])
	}
	if len(args) == 2 {
		switch args[1] {
		case "--help", "-h":
			printUsage()
			return nil
		case "--test", "-t":
			return runSelfTest(os.Stdout)
		case "repl":
			return runREPL()
		}
	}
	printUsage()
	return errors.New("invalid command")
}

func runFile(inputPath, outputPath string) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := mython.Interpret(string(source), out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <input_file> <output_file>\n", prog)
	fmt.Fprintf(os.Stderr, "   or: %s repl\n", prog)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  --help, -h")
	fmt.Fprintln(os.Stderr, "    print this usage information")
	fmt.Fprintln(os.Stderr, "  --test, -t")
	fmt.Fprintln(os.Stderr, "    run the built-in interpreter test suite")
}
