// Package maincmd wires the MelodyScript pipeline into a runnable CLI:
// struct-tag flags parsed by github.com/mna/mainer, a Validate/Main pair,
// errors printed by the command itself before returning mainer.Failure,
// reduced to MelodyScript's single command: compile a source file to an
// artifact, optionally running it afterward.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/syncali/melodyscript/internal/config"
	"github.com/syncali/melodyscript/lang/sema"
)

const binName = "mscript"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<source-path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<source-path>]
       %[1]s -h|--help
       %[1]s -v|--version

Compiles a MelodyScript source file to a standalone playback artifact.

<source-path> defaults to input.ms.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --output <path>           Artifact output path (default output.py).
       --dump-ir <path>          Also write the optimized quadruple list to
                                 <path> as YAML.
       --run                     Execute the emitted artifact after
                                 generation.
       --audio-backend <name>    Runtime the emitted artifact targets:
                                 "pygame" (default) or "winsound".
`, binName)
)

// Cmd is the mscript command line, populated by mainer.Parser from flags and
// positional arguments.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Output       string `flag:"output"`
	DumpIR       string `flag:"dump-ir"`
	Run          bool   `flag:"run"`
	AudioBackend string `flag:"audio-backend"`

	args []string
}

func (c *Cmd) SetArgs(args []string)    { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return fmt.Errorf("at most one source path may be given, got %d", len(c.args))
	}
	return nil
}

func (c *Cmd) sourcePath() string {
	if len(c.args) == 1 {
		return c.args[0]
	}
	return "input.ms"
}

// Main is the mainer.Cmd entry point.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}
	outputPath := c.Output
	if outputPath == "" {
		outputPath = cfg.OutputPath
	}
	audioBackend := c.AudioBackend
	if audioBackend == "" {
		audioBackend = cfg.AudioBackend
	}
	limits := sema.Limits{MaxRepeat: cfg.MaxRepeatCount}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := Compile(ctx, stdio, c.sourcePath(), outputPath, c.DumpIR, c.Run, limits, audioBackend); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}
