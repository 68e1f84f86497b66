// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
)

// stdinName labels input read from stdin in messages and logs.
const stdinName = "<stdin>"

// readInput reads the single optional positional argument: a file
// path, or stdin when absent or "-". It returns the data and the path,
// which is empty for stdin.
func (env *environment) readInput(args []string) ([]byte, string, error) {
	if len(args) > 1 {
		return nil, "", fmt.Errorf("expected at most one input file, got %d arguments", len(args))
	}

	if len(args) == 1 && args[0] != "-" {
		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("read %s: is a directory", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", path, err)
		}
		return data, path, nil
	}

	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return data, "", nil
}

// inputName returns path, or the stdin label when path is empty.
func inputName(path string) string {
	if path == "" {
		return stdinName
	}
	return path
}
