// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armitem

import "sort"

// ItemCounter is a dense array mapping item ID to a frequency count.
// Index 0 (the Null item) is always 0 and is never returned by
// ItemsWithCountAtLeast.
type ItemCounter struct {
	counts []uint32 // counts[id] == count for Item(id); counts[0] unused
}

// NewItemCounter returns an empty ItemCounter.
func NewItemCounter() *ItemCounter {
	return &ItemCounter{}
}

func (c *ItemCounter) grow(id Item) {
	if int(id) >= len(c.counts) {
		grown := make([]uint32, int(id)+1)
		copy(grown, c.counts)
		c.counts = grown
	}
}

// Add adds n to item's count.
func (c *ItemCounter) Add(item Item, n uint32) {
	c.grow(item)
	c.counts[item] += n
}

// Set overwrites item's count with n.
func (c *ItemCounter) Set(item Item, n uint32) {
	c.grow(item)
	c.counts[item] = n
}

// Get returns item's count, or 0 if item has never been counted.
func (c *ItemCounter) Get(item Item) uint32 {
	if int(item) >= len(c.counts) {
		return 0
	}
	return c.counts[item]
}

// Take replaces this counter's contents with other's.
func (c *ItemCounter) Take(other *ItemCounter) {
	c.counts = other.counts
}

// ItemsWithCountAtLeast returns every non-null item whose count is >= min,
// in ascending ID order.
func (c *ItemCounter) ItemsWithCountAtLeast(min uint32) []Item {
	var items []Item
	for id := 1; id < len(c.counts); id++ {
		if c.counts[id] >= min {
			items = append(items, Item(id))
		}
	}
	return items
}

// SortDescending sorts items by this counter's value, descending, with
// ties broken by item ID descending. This is the canonical transaction
// order the FP-tree is built from.
func (c *ItemCounter) SortDescending(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ca, cb := c.Get(a), c.Get(b)
		if ca != cb {
			return ca > cb
		}
		return a > b
	})
}
