package main

import (
	"fmt"
	"log"
	"os"
)

type Command int

const (
	COMMAND_REPL Command = iota
	COMMAND_BUILD
	COMMAND_HELP
)

type CliResult struct {
	Command Command

	Path   string // source file, when 'Command' is build
	Output string // -o target, empty means next to the source
}

var HELP_COMMAND string = `kaleido - The Kaleidoscope language front end and LLVM IR emitter.

Usage:
  kaleido [command] [arguments]

Available Commands:
  (no command)                 Start the interactive session

  build <file.ks> [-o path]    Emit the textual LLVM IR for a source file
      <file.ks>     Path to the source file
      -o path       Where to write the IR ('-' prints it on stdout)

  help                         Show this help message

Examples:
  kaleido                      Start the interactive session
  kaleido build fib.ks         Emit fib.ks's IR next to it, as fib.ll
  kaleido build fib.ks -o -    Print fib.ks's IR on stdout
`

func cli() (CliResult, error) {
	result := CliResult{}

	args := os.Args[1:]
	if len(args) == 0 {
		result.Command = COMMAND_REPL
		return result, nil
	}

	command := args[0]
	switch command {
	case "help":
		result.Command = COMMAND_HELP
	case "build":
		result.Command = COMMAND_BUILD

		if len(args) < 2 {
			return result, fmt.Errorf("build expects a source file, run 'kaleido help'")
		}
		result.Path = args[1]

		_, err := os.Stat(result.Path)
		if err != nil {
			log.Fatalf("no such file or directory: %s\n", result.Path)
		}

		rest := args[2:]
		for i := 0; i < len(rest); i++ {
			switch rest[i] {
			case "-o":
				i++
				if i >= len(rest) {
					return result, fmt.Errorf("-o expects a path")
				}
				result.Output = rest[i]
			default:
				return result, fmt.Errorf("unknown argument '%s', run 'kaleido help'", rest[i])
			}
		}
	default:
		return result, fmt.Errorf("unknown command '%s', run 'kaleido help'", command)
	}
	return result, nil
}
