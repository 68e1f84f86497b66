// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tbxml/cmd/tbxml/cli"
	"github.com/bureau-foundation/tbxml/lib/treeview"
	"github.com/bureau-foundation/tbxml/lib/xmltree"
)

func decodeCommand(env *environment) *cli.Command {
	var (
		common commonFlags
		output string
		indent string
		color  string
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert tbxml back to XML",
		Description: `Decode a tbxml document from a file or stdin and write it as XML.

Envelopes are opened automatically. Each element's text is written
before its child elements, since the encoding keeps an element's text
as one string. Comments, processing instructions, and the XML
declaration are not part of the encoding and do not reappear. Numeric
attribute values are written in their shortest form ("1e3" becomes
"1000").

On a terminal the XML is syntax highlighted unless --color never.`,
		Usage: "tbxml decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Round-trip a document",
				Command:     "tbxml convert -o - catalog.xml | tbxml decode",
			},
			{
				Description: "Write compact XML to a file",
				Command:     "tbxml decode --indent '' -o catalog.xml catalog.tbx",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", `output file (default: stdout)`)
			flagSet.StringVar(&indent, "indent", "  ", "indentation per nesting level; empty for a single line")
			flagSet.StringVar(&color, "color", "", "highlight XML: auto, always, never (default: from config)")
			common.register(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := env.resolveConfig(common, logger)
			if err != nil {
				return err
			}
			if color == "" {
				color = cfg.Inspect.Color
			}

			data, path, err := env.readInput(args)
			if err != nil {
				return err
			}
			logger = logger.With("command", "decode", "input", inputName(path))

			loaded, err := loadDocument(data, inputName(path), logger)
			if err != nil {
				return err
			}

			var builder strings.Builder
			if err := xmltree.Render(&builder, loaded.document.Tree(), indent); err != nil {
				return err
			}
			text := builder.String()
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}

			if output != "" && output != "-" {
				if err := os.WriteFile(output, []byte(text), 0644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				logger.Info("decoded", "output", output, "nodes", len(loaded.document.Nodes))
				return nil
			}

			useColor, err := env.useColor(color)
			if err != nil {
				return err
			}
			if useColor {
				text = treeview.New(env.Stdout, treeview.DefaultTheme(), true).HighlightXML(text)
			}
			_, err = io.WriteString(env.Stdout, text)
			return err
		},
	}
}
