// Command eafcheck validates ORTOFON .eaf transcripts: structurally against
// the EAF XML Schema, then semantically against the transcription rules.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ortofon/eafcheck/core/batch"
	"github.com/ortofon/eafcheck/core/schema"
	"github.com/ortofon/eafcheck/internal/config"
	"github.com/ortofon/eafcheck/internal/logging"
)

const version = "1.0.0"

// errValidationFailed makes the process exit nonzero after the banner, so
// automation can tell a failed run from a clean one.
var errValidationFailed = errors.New("validation failed")

// CLI defines the command-line interface for eafcheck.
var CLI struct {
	// Global flags
	Config    string `help:"Config file path (skips the layered lookup)" type:"existingfile"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn or error"`
	LogFormat string `name:"log-format" help:"Log format: text or json"`

	Validate ValidateCmd `cmd:"" help:"Validate transcript files" default:"withargs"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ValidateCmd validates a batch of transcript files.
type ValidateCmd struct {
	Schema string   `help:"External XSD overriding the embedded ORTOFON schema" type:"existingfile"`
	Format string   `short:"f" help:"Output format: plain, rich or json"`
	Jobs   int      `short:"j" help:"Number of documents validated concurrently"`
	Paths  []string `arg:"" name:"file" help:"Transcript files to validate" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOverrides(cfg, c)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Init(logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format))

	var validator *schema.Validator
	if cfg.Schema != "" {
		validator, err = schema.NewValidatorFromFile(cfg.Schema)
	} else {
		validator, err = schema.NewValidator()
	}
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	runner := batch.NewRunner(validator)
	runner.Jobs = cfg.Jobs
	result := runner.Run(c.Paths)

	switch cfg.Format {
	case config.FormatJSON:
		if err := batch.RenderJSON(os.Stdout, result); err != nil {
			return err
		}
	case config.FormatRich:
		batch.RenderRich(os.Stdout, result)
	default:
		batch.RenderPlain(os.Stdout, result)
	}

	if result.Failed() {
		return errValidationFailed
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	loader := config.NewLoader(nil)
	if CLI.Config != "" {
		return loader.LoadFile(CLI.Config)
	}
	return loader.Load()
}

// applyOverrides layers command-line flags over the loaded config.
func applyOverrides(cfg *config.Config, c *ValidateCmd) {
	if c.Schema != "" {
		cfg.Schema = c.Schema
	}
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.Jobs != 0 {
		cfg.Jobs = c.Jobs
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.Log.Format = CLI.LogFormat
	}
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("eafcheck %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("eafcheck"),
		kong.Description("ORTOFON EAF transcript validator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
