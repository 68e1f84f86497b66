// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tbxml/cmd/tbxml/cli"
	"github.com/bureau-foundation/tbxml/lib/codec"
	"github.com/bureau-foundation/tbxml/lib/config"
	"github.com/bureau-foundation/tbxml/lib/digest"
	"github.com/bureau-foundation/tbxml/lib/treeview"
)

func inspectCommand(env *environment) *cli.Command {
	var (
		common  commonFlags
		format  string
		color   string
		compact bool
	)

	return &cli.Command{
		Name:    "inspect",
		Summary: "Describe a tbxml document",
		Description: `Decode a tbxml document from a file or stdin and describe it.

Envelopes written by "tbxml convert --compress" are opened automatically.

Formats:
  text   summary, template table, and indented node tree
  json   manifest of templates, nodes, roots, and digest
  yaml   the same manifest as YAML
  cbor   the same manifest as deterministic CBOR (binary)
  diag   CBOR diagnostic notation of the manifest

The digest is the BLAKE3 document digest of the bare encoding, the
same value "tbxml convert --digest" prints.`,
		Usage: "tbxml inspect [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Show the template table and node tree",
				Command:     "tbxml inspect catalog.tbx",
			},
			{
				Description: "List element names with jq",
				Command:     "tbxml inspect --format json catalog.tbx | jq -r '.templates[].name'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.StringVarP(&format, "format", "f", "", "output format: text, json, yaml, cbor, diag (default: from config)")
			flagSet.StringVar(&color, "color", "", "color text output: auto, always, never (default: from config)")
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact JSON output (no indentation)")
			common.register(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := env.resolveConfig(common, logger)
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Inspect.Format
			}
			if !slices.Contains(config.InspectFormats, format) {
				return fmt.Errorf("unknown format %q (want one of %v)", format, config.InspectFormats)
			}
			if color == "" {
				color = cfg.Inspect.Color
			}

			data, path, err := env.readInput(args)
			if err != nil {
				return err
			}
			logger = logger.With("command", "inspect", "input", inputName(path))

			loaded, err := loadDocument(data, inputName(path), logger)
			if err != nil {
				return err
			}
			hash := digest.Document(loaded.encoded)

			if format == "text" {
				useColor, err := env.useColor(color)
				if err != nil {
					return err
				}
				renderer := treeview.New(env.Stdout, treeview.DefaultTheme(), useColor)
				return renderer.RenderDocument(env.Stdout, loaded.document, hash)
			}

			manifest := codec.NewManifest(loaded.document, hash, len(loaded.encoded))
			if loaded.sealed {
				manifest.Envelope = loaded.compression.String()
			}
			var output []byte
			switch format {
			case "json":
				output, err = codec.MarshalJSON(manifest, compact)
			case "yaml":
				output, err = codec.MarshalYAML(manifest)
			case "cbor":
				output, err = codec.MarshalCBOR(manifest)
			case "diag":
				output, err = diagnoseManifest(manifest)
			}
			if err != nil {
				return err
			}
			_, err = env.Stdout.Write(output)
			return err
		},
	}
}

func diagnoseManifest(manifest *codec.Manifest) ([]byte, error) {
	encoded, err := codec.MarshalCBOR(manifest)
	if err != nil {
		return nil, err
	}
	diagnostic, err := codec.Diagnose(encoded)
	if err != nil {
		return nil, fmt.Errorf("diagnose manifest: %w", err)
	}
	return []byte(diagnostic + "\n"), nil
}
