// Package config loads the driver's environment-tunable defaults. It exists
// so the CLI's flag defaults (output path, audio backend, the repeat-count
// safety valve) can be overridden per-deployment without a recompile, the
// same role github.com/caarlos0/env/v6 plays as a transitive dependency of
// github.com/mna/mainer's own CLI scaffolding.
package config

import "github.com/caarlos0/env/v6"

// Config holds environment-sourced defaults for the mscript driver.
type Config struct {
	// OutputPath is used when --output is not given on the command line.
	OutputPath string `env:"MSCRIPT_OUTPUT" envDefault:"output.py"`

	// AudioBackend selects which runtime the emitted artifact's play/rest
	// calls target, passed through to emit.Emit. "pygame" (the default)
	// renders a pygame.mixer sine-wave synthesizer; "winsound" renders a
	// simpler stdlib-only runtime built on winsound.Beep, with no
	// third-party Python dependency.
	AudioBackend string `env:"MSCRIPT_AUDIO_BACKEND" envDefault:"pygame"`

	// MaxRepeatCount bounds the trip count a `repeat(n)` may request at
	// compile time, a safety valve against runaway artifacts; 0 means
	// unbounded. Only enforced against a literal repeat count (sema.Limits):
	// a repeat driven by a variable or expression isn't statically known and
	// so isn't checked here.
	MaxRepeatCount int `env:"MSCRIPT_MAX_REPEAT" envDefault:"0"`
}

// Load reads Config from the process environment, applying envDefault tags
// for anything unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
