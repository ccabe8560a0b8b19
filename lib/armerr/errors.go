// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armerr defines the error-kind taxonomy: InputError,
// ArgumentError, OutputError. The CLI prints any of them to stderr and
// exits with status 1. The mining core itself has no recoverable error
// states — these kinds exist only at the system's edges (file I/O, flag
// validation).
package armerr

import "fmt"

// InputError wraps a failure reading or parsing the input dataset.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("input error: %v", e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// ArgumentError wraps a missing or out-of-range command-line argument.
type ArgumentError struct {
	Flag string
	Err  error
}

func (e *ArgumentError) Error() string { return fmt.Sprintf("argument error: --%s: %v", e.Flag, e.Err) }
func (e *ArgumentError) Unwrap() error { return e.Err }

// OutputError wraps a failure creating or writing the output file.
type OutputError struct {
	Err error
}

func (e *OutputError) Error() string { return fmt.Sprintf("output error: %v", e.Err) }
func (e *OutputError) Unwrap() error { return e.Err }
