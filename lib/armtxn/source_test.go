// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armtxn_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armtxn"
)

func writeFixture(t *testing.T, contents string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	fh, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { fh.Close() })
	return fh
}

func TestSourceNormalizesLines(t *testing.T) {
	t.Parallel()
	fh := writeFixture(t, "x, y , x, y, z\n")
	itemizer := armitem.NewItemizer()
	src, err := armtxn.NewSource(context.Background(), fh, itemizer)
	require.NoError(t, err)
	defer src.Close()

	txn, ok, err := src.Next()
	require.NoError(t, err)
	require.True(t, ok)

	got := make([]string, len(txn))
	for i, it := range txn {
		got[i] = itemizer.StrOf(it)
	}
	assert.ElementsMatch(t, []string{"x", "y", "z"}, got)
	assert.Equal(t, 3, len(txn))
	for i := 1; i < len(txn); i++ {
		assert.Less(t, txn[i-1], txn[i])
	}
}

func TestSourceSkipsEmptyLines(t *testing.T) {
	t.Parallel()
	fh := writeFixture(t, "a,b\n\n\nc,d\n")
	itemizer := armitem.NewItemizer()
	src, err := armtxn.NewSource(context.Background(), fh, itemizer)
	require.NoError(t, err)
	defer src.Close()

	var count int
	for {
		_, ok, err := src.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 2, count)
}

func TestReadAllCountsFrequencies(t *testing.T) {
	t.Parallel()
	fh := writeFixture(t, "a,b\na,c\na,b\n")
	itemizer := armitem.NewItemizer()
	src, err := armtxn.NewSource(context.Background(), fh, itemizer)
	require.NoError(t, err)
	defer src.Close()

	counter := armitem.NewItemCounter()
	txns, err := armtxn.ReadAll(src, counter)
	require.NoError(t, err)
	assert.Len(t, txns, 3)

	a := itemizer.IDOf("a")
	b := itemizer.IDOf("b")
	c := itemizer.IDOf("c")
	assert.Equal(t, uint32(3), counter.Get(a))
	assert.Equal(t, uint32(2), counter.Get(b))
	assert.Equal(t, uint32(1), counter.Get(c))
}
