package maincmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/mna/mainer"

	"github.com/syncali/melodyscript/internal/clog"
	"github.com/syncali/melodyscript/lang/emit"
	"github.com/syncali/melodyscript/lang/ir"
	"github.com/syncali/melodyscript/lang/lexer"
	"github.com/syncali/melodyscript/lang/optimize"
	"github.com/syncali/melodyscript/lang/parser"
	"github.com/syncali/melodyscript/lang/sema"
)

// Compile runs the full lexer -> parser -> semantic -> IC -> optimizer ->
// emitter pipeline over sourcePath and writes the resulting artifact to
// outputPath. limits bounds the semantic analyzer's acceptance of constructs
// like repeat() trip counts; audioBackend selects which runtime template
// emit.Emit renders (see emit.PygameBackend / emit.WinsoundBackend). If
// runAfter is set, it execs the artifact with python3 once writing succeeds.
// If dumpIRPath is non-empty, the optimized quadruple list is also written
// there as YAML (ir.DumpYAML), for inspecting what the optimizer did to a
// program without reading the emitted artifact's literal instruction table.
// Any pipeline failure is printed as a single "Error on line <N>: <message>"
// line to stdio.Stdout and returned so Main can translate it to a non-zero
// exit code.
func Compile(ctx context.Context, stdio mainer.Stdio, sourcePath, outputPath, dumpIRPath string, runAfter bool, limits sema.Limits, audioBackend string) error {
	log := clog.New(stdio.Stderr)

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(stdio.Stdout, "Error on line 0: %s\n", err)
		return err
	}

	code, err := pipeline(src, log, limits)
	if err != nil {
		fmt.Fprintf(stdio.Stdout, "%s\n", err)
		return err
	}

	if dumpIRPath != "" {
		yamlCode, err := ir.DumpYAML(code)
		if err != nil {
			fmt.Fprintf(stdio.Stdout, "Error on line 0: %s\n", err)
			return err
		}
		if err := os.WriteFile(dumpIRPath, yamlCode, 0o644); err != nil {
			fmt.Fprintf(stdio.Stdout, "Error on line 0: %s\n", err)
			return err
		}
		log.Stage("dump-ir", "wrote optimized IR to %s", dumpIRPath)
	}

	artifact := emit.Emit(code, audioBackend)
	if err := os.WriteFile(outputPath, []byte(artifact), 0o644); err != nil {
		fmt.Fprintf(stdio.Stdout, "Error on line 0: %s\n", err)
		return err
	}
	log.Stage("emit", "wrote artifact to %s", outputPath)

	if runAfter {
		cmd := exec.CommandContext(ctx, "python3", outputPath)
		cmd.Stdout = stdio.Stdout
		cmd.Stderr = stdio.Stderr
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(stdio.Stdout, "Error on line 0: %s\n", err)
			return err
		}
	}
	return nil
}

// pipeline runs the lexer through the optimizer, logging each stage's
// completion. It stops at the first stage that fails: a fail-fast
// scheduling model with no cancellation, timeouts, or retries.
func pipeline(src []byte, log *clog.Logger, limits sema.Limits) ([]ir.Quadruple, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	log.Stage("lex", "%d tokens", len(toks))

	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	log.Stage("parse", "%d top-level statements", len(prog.Stmts))

	prog, err = sema.AnalyzeWithLimits(prog, limits)
	if err != nil {
		return nil, err
	}
	log.Stage("sema", "ok")

	code, err := ir.Generate(prog)
	if err != nil {
		return nil, err
	}
	log.Stage("ic", "%d quadruples", len(code))

	code, err = optimize.Optimize(code)
	if err != nil {
		return nil, err
	}
	log.Stage("optimize", "%d quadruples after folding", len(code))

	return code, nil
}
