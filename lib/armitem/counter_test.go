// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armitem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cpearce/arm-go/lib/armitem"
)

func TestItemCounterAddGet(t *testing.T) {
	t.Parallel()
	c := armitem.NewItemCounter()
	assert.Equal(t, uint32(0), c.Get(armitem.Item(5)))

	c.Add(armitem.Item(5), 3)
	c.Add(armitem.Item(5), 4)
	assert.Equal(t, uint32(7), c.Get(armitem.Item(5)))

	c.Set(armitem.Item(5), 1)
	assert.Equal(t, uint32(1), c.Get(armitem.Item(5)))
}

func TestItemCounterTake(t *testing.T) {
	t.Parallel()
	a := armitem.NewItemCounter()
	a.Set(armitem.Item(1), 100)
	b := armitem.NewItemCounter()
	b.Set(armitem.Item(2), 200)

	a.Take(b)
	assert.Equal(t, uint32(0), a.Get(armitem.Item(1)))
	assert.Equal(t, uint32(200), a.Get(armitem.Item(2)))
}

func TestItemsWithCountAtLeast(t *testing.T) {
	t.Parallel()
	c := armitem.NewItemCounter()
	c.Set(armitem.Item(1), 5)
	c.Set(armitem.Item(2), 10)
	c.Set(armitem.Item(3), 3)

	got := c.ItemsWithCountAtLeast(5)
	assert.Equal(t, []armitem.Item{1, 2}, got)
}

func TestSortDescending(t *testing.T) {
	t.Parallel()
	c := armitem.NewItemCounter()
	c.Set(armitem.Item(1), 10)
	c.Set(armitem.Item(2), 10)
	c.Set(armitem.Item(3), 20)

	items := []armitem.Item{1, 2, 3}
	c.SortDescending(items)

	// item 3 has the highest count; items 1 and 2 tie, broken by
	// descending ID (2 before 1).
	assert.Equal(t, []armitem.Item{3, 2, 1}, items)
}
