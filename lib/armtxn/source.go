// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armtxn implements the transaction source: a lazy, line-oriented
// reader over the input dataset, built on the teacher's streamio rune
// scanner. It is the only place item strings enter the mining core —
// everywhere past this package, items are dense integer IDs.
package armtxn

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/cpearce/arm-go/lib/armerr"
	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/slices"
	"github.com/cpearce/arm-go/lib/streamio"
)

// Source lazily reads transactions from an underlying dataset file: one
// transaction per line, items separated by commas. Each returned
// transaction is deduplicated and sorted ascending by Item ID. Reading is
// done a rune at a time through streamio.RuneScanner, which logs scan
// progress and aborts promptly if ctx is canceled partway through a large
// dataset.
type Source struct {
	runes    streamio.RuneScanner
	itemizer *armitem.Itemizer
}

// NewSource opens fh as a transaction Source, assigning item IDs through
// itemizer as new item strings are seen.
func NewSource(ctx context.Context, fh *os.File, itemizer *armitem.Itemizer) (*Source, error) {
	runes, err := streamio.NewRuneScanner(ctx, fh)
	if err != nil {
		return nil, &armerr.InputError{Err: err}
	}
	return &Source{runes: runes, itemizer: itemizer}, nil
}

// Next reads the next non-empty line and returns it as a deduplicated,
// ascending-sorted Itemset. It returns (nil, false, nil) at EOF, and
// wraps any underlying read failure (including context cancellation) in
// an *armerr.InputError.
func (s *Source) Next() (armitem.Itemset, bool, error) {
	for {
		line, eof, err := s.readLine()
		if err != nil {
			return nil, false, &armerr.InputError{Err: err}
		}
		if strings.TrimFunc(line, unicode.IsSpace) == "" {
			if eof {
				return nil, false, nil
			}
			continue
		}

		fields := strings.Split(line, ",")
		seen := make(map[armitem.Item]bool, len(fields))
		txn := make(armitem.Itemset, 0, len(fields))
		for _, field := range fields {
			tok := strings.TrimFunc(field, unicode.IsSpace)
			if tok == "" {
				continue
			}
			id := s.itemizer.IDOf(tok)
			if seen[id] {
				continue
			}
			seen[id] = true
			txn = append(txn, id)
		}
		if len(txn) == 0 {
			if eof {
				return nil, false, nil
			}
			continue
		}
		slices.Sort(txn)
		return txn, true, nil
	}
}

// readLine reads up to and including the next '\n' (or EOF) a rune at a
// time, returning the line with its terminator stripped.
func (s *Source) readLine() (string, bool, error) {
	var b strings.Builder
	for {
		r, _, err := s.runes.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return b.String(), true, nil
			}
			return "", false, err
		}
		if r == '\n' {
			return b.String(), false, nil
		}
		b.WriteRune(r)
	}
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.runes.Close()
}

// ReadAll drains src into a slice, counting per-item frequencies into
// counter as it goes — the first of the two dataset passes described by
// the mining driver's data flow.
func ReadAll(src *Source, counter *armitem.ItemCounter) ([]armitem.Itemset, error) {
	var txns []armitem.Itemset
	for {
		txn, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return txns, nil
		}
		for _, item := range txn {
			counter.Add(item, 1)
		}
		txns = append(txns, txn)
	}
}
