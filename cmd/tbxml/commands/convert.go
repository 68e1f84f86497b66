// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tbxml/cmd/tbxml/cli"
	"github.com/bureau-foundation/tbxml/lib/digest"
	"github.com/bureau-foundation/tbxml/lib/envelope"
	"github.com/bureau-foundation/tbxml/lib/tbxml"
	"github.com/bureau-foundation/tbxml/lib/xmltree"
)

// emptyInputExitCode is returned when the input has no root element.
const emptyInputExitCode = 3

func convertCommand(env *environment) *cli.Command {
	var (
		common             commonFlags
		output             string
		compression        string
		preserveWhitespace bool
		fragment           bool
		printDigest        bool
	)

	return &cli.Command{
		Name:    "convert",
		Summary: "Convert XML to tbxml",
		Description: `Parse XML from a file or stdin and write its tbxml encoding.

The input must have a single document element. With --fragment several
top-level elements are accepted and each becomes a root. Elements
with the same name, attribute names in the same order, and attribute
values of the same kinds (numeric or text) share a template.

Without --output, a file input is written next to the input with its
extension replaced by convert.output_suffix (default ".tbx"), or into
convert.output_dir when configured. Stdin input is written to stdout.
Binary output is never written to a terminal.

With --compress lz4 or zstd the document is wrapped in an envelope that
"tbxml inspect" and "tbxml decode" open automatically. When compression
would not make the document smaller it is stored uncompressed inside
the envelope.

An input without any element produces no output and exits with code 3.`,
		Usage: "tbxml convert [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Convert a file to catalog.tbx",
				Command:     "tbxml convert catalog.xml",
			},
			{
				Description: "Convert with zstd and print the document digest",
				Command:     "tbxml convert --compress zstd --digest -o catalog.tbx catalog.xml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)
			flagSet.StringVar(&compression, "compress", "", "compression: none, lz4, zstd (default: from config)")
			flagSet.BoolVar(&preserveWhitespace, "preserve-whitespace", false, "keep whitespace-only text as node text")
			flagSet.BoolVar(&fragment, "fragment", false, "accept several top-level elements")
			flagSet.BoolVar(&printDigest, "digest", false, "print the BLAKE3 digest of the encoded document to stderr")
			common.register(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := env.resolveConfig(common, logger)
			if err != nil {
				return err
			}
			if compression == "" {
				compression = cfg.Convert.Compression
			}
			tag, err := envelope.ParseTag(compression)
			if err != nil {
				return fmt.Errorf("--compress: %w", err)
			}

			source, path, err := env.readInput(args)
			if err != nil {
				return err
			}
			logger = logger.With("command", "convert", "input", inputName(path))
			logger.Debug("read input", "bytes", len(source), "source_digest", digest.Source(source).Short())

			converter := tbxml.Converter{Logger: logger}
			encoded, err := converter.ConvertReader(bytes.NewReader(source),
				xmltree.PreserveWhitespace(preserveWhitespace || cfg.Convert.PreserveWhitespace),
				xmltree.Fragment(fragment || cfg.Convert.Fragment))
			if errors.Is(err, tbxml.ErrEmptyInput) {
				fmt.Fprintln(env.Stderr, "no output: input document is empty")
				return &cli.ExitError{Code: emptyInputExitCode}
			}
			if err != nil {
				return fmt.Errorf("convert %s: %w", inputName(path), err)
			}
			hash := digest.Document(encoded)

			result := encoded
			if tag != envelope.None {
				sealed, used, err := envelope.Seal(encoded, tag)
				if err != nil {
					return fmt.Errorf("compress: %w", err)
				}
				if used != tag {
					logger.Info("compression did not reduce size, stored uncompressed", "compression", tag.String())
				}
				result, tag = sealed, used
			}

			destination := output
			if destination == "" && path != "" {
				destination = cfg.OutputPath(path)
			}
			if err := env.writeOutput(destination, result); err != nil {
				return err
			}

			logger.Info("converted",
				"output", outputName(destination),
				"encoded_bytes", len(encoded),
				"written_bytes", len(result),
				"compression", tag.String(),
				"digest", hash.Short(),
			)
			if printDigest {
				fmt.Fprintf(env.Stderr, "%s  %s\n", hash, outputName(destination))
			}
			return nil
		},
	}
}

// writeOutput writes binary data to path, or to stdout when path is
// empty or "-". Stdout is refused when it is a terminal.
func (env *environment) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		if cli.IsTerminal(env.Stdout) {
			return fmt.Errorf("refusing to write binary output to a terminal; use --output or redirect stdout")
		}
		_, err := env.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "<stdout>"
	}
	return path
}
