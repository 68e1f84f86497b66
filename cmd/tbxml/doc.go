// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Tbxml converts XML element trees to the tbxml binary encoding and
// back, and describes encoded documents.
//
// Usage:
//
//	tbxml convert [flags] [file]
//	tbxml inspect [flags] [file]
//	tbxml decode [flags] [file]
//	tbxml version
//
// Run "tbxml <command> --help" for the flags of each command.
package main
