// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tbxml/cmd/tbxml/cli"
	"github.com/bureau-foundation/tbxml/lib/codec"
	"github.com/bureau-foundation/tbxml/lib/version"
)

func versionCommand(env *environment) *cli.Command {
	var jsonOutput bool

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&jsonOutput, "json", false, "print build information as JSON")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("version takes no arguments, got %q", args[0])
			}
			if jsonOutput {
				output, err := codec.MarshalJSON(version.Current(), false)
				if err != nil {
					return err
				}
				_, err = env.Stdout.Write(output)
				return err
			}
			_, err := fmt.Fprintf(env.Stdout, "tbxml %s\n", version.Full())
			return err
		},
	}
}
