// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the tbxml command tree: convert, inspect,
// decode, and version. [Root] takes the process streams explicitly so
// tests can drive every command with in-memory buffers.
package commands
