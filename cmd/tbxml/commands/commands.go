// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tbxml/cmd/tbxml/cli"
	"github.com/bureau-foundation/tbxml/lib/config"
	"github.com/bureau-foundation/tbxml/lib/version"
)

// Streams are the standard streams commands read and write.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// environment is shared by every command of one tree.
type environment struct {
	Streams

	// level is the logger's level, set from config or --log-level once
	// a command has resolved its configuration.
	level *slog.LevelVar
}

// Root returns the tbxml command tree.
func Root(streams Streams) *cli.Command {
	env := &environment{Streams: streams, level: new(slog.LevelVar)}
	env.level.Set(slog.LevelWarn)

	var showVersion bool

	return &cli.Command{
		Name: "tbxml",
		Description: `tbxml: compact binary encoding for XML element trees.

Elements that share a name, attribute names and attribute value kinds
share one template, so each element instance stores only its values,
its child references, and its text.`,
		Logger:     cli.NewCommandLogger(streams.Stderr, env.level),
		HelpOutput: streams.Stderr,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tbxml", pflag.ContinueOnError)
			flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
			return flagSet
		},
		Subcommands: []*cli.Command{
			convertCommand(env),
			inspectCommand(env),
			decodeCommand(env),
			versionCommand(env),
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if showVersion {
				_, err := fmt.Fprintf(env.Stdout, "tbxml %s\n", version.Info())
				return err
			}
			return fmt.Errorf("subcommand required\n\nRun 'tbxml --help' for usage.")
		},
		Examples: []cli.Example{
			{
				Description: "Convert a file (writes catalog.tbx next to it)",
				Command:     "tbxml convert catalog.xml",
			},
			{
				Description: "Convert stdin to stdout with zstd compression",
				Command:     "tbxml convert --compress zstd -o - < catalog.xml > catalog.tbx",
			},
			{
				Description: "Show templates and the node tree",
				Command:     "tbxml inspect catalog.tbx",
			},
			{
				Description: "Turn a document back into XML",
				Command:     "tbxml decode catalog.tbx",
			},
		},
	}
}

// commonFlags are accepted by every command that reads configuration.
type commonFlags struct {
	configPath string
	logLevel   string
}

func (flags *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: from config)")
}

// resolveConfig loads configuration for a command and applies the log
// level.
func (env *environment) resolveConfig(flags commonFlags, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Resolve(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	env.level.Set(level)
	logger.Debug("configuration resolved", "source", cfg.Source())
	return cfg, nil
}

// useColor resolves a color mode against the output stream.
func (env *environment) useColor(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return cli.IsTerminal(env.Stdout), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, always, or never)", mode)
	}
}
