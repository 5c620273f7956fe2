package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/athmas-shadow/llvm-kaleideoscope/internal/codegen/llvm"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/diagnostics"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/lexer/token"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/parser"
)

func main() {
	args, err := cli()
	if err != nil {
		log.Fatal(err)
	}

	switch args.Command {
	case COMMAND_HELP:
		fmt.Print(HELP_COMMAND)
	case COMMAND_REPL:
		repl()
	case COMMAND_BUILD:
		err := build(args.Path, args.Output)
		if err != nil {
			log.Fatal(err)
		}
	}
}

// build parses and emits every unit of one source file, then writes
// the module's textual IR. Units after a broken one still build, the
// whole run fails if any unit did.
func build(path, output string) error {
	collector := diagnostics.New()

	lex, err := lexer.NewFromFilePath(path)
	if err != nil {
		return err
	}

	p := parser.New(lex, collector)
	cg := llvm.NewCG(moduleName(path), collector)

	p.Advance()
	failed := false
	for p.Cur().Kind != token.EOF {
		if p.Cur().IsOperator(';') {
			p.Advance()
			continue
		}

		node, err := p.ParseUnit()
		if err != nil {
			// Skip one token and resync on the next unit
			failed = true
			p.Advance()
			continue
		}

		_, err = cg.Emit(node)
		if err != nil {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("build failed with %d errors", len(collector.Diags))
	}
	return writeModule(cg.Module().String(), path, output)
}

func writeModule(ir, path, output string) error {
	if output == "-" {
		fmt.Print(ir)
		return nil
	}
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".ll"
	}
	return os.WriteFile(output, []byte(ir), 0o644)
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
