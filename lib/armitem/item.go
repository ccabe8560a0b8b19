// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armitem implements the bijection between item strings and the
// dense small integer IDs the mining core operates on.
package armitem

import "sort"

// Item is a dense small positive integer identifying one element of the
// vocabulary. The zero value is the null/root sentinel and is never
// assigned to a real item.
type Item uint32

// Null is the root/sentinel item; it is never returned by Itemizer.IDOf.
const Null Item = 0

// Itemset is a set of Items held in ascending order with no duplicates.
type Itemset []Item

// Less orders itemsets first by length, then lexicographically — this is
// the order rule generation keeps its candidate consequents in.
func (a Itemset) Less(b Itemset) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Itemizer is a bijection between item strings and Items. It is built up
// during the dataset's first pass and is read-only (after an optional
// Reorder) for the remainder of a mining run.
type Itemizer struct {
	strToID map[string]Item
	idToStr []string // idToStr[id-1] == the string for Item(id)
}

// NewItemizer returns an empty Itemizer.
func NewItemizer() *Itemizer {
	return &Itemizer{
		strToID: make(map[string]Item),
	}
}

// IDOf returns the Item for s, assigning a fresh ID if s hasn't been seen
// before. IDs are assigned densely starting at 1, in first-seen order.
func (z *Itemizer) IDOf(s string) Item {
	if id, ok := z.strToID[s]; ok {
		return id
	}
	id := Item(len(z.idToStr) + 1)
	z.strToID[s] = id
	z.idToStr = append(z.idToStr, s)
	return id
}

// StrOf returns the string for id. It panics if id was never assigned by
// IDOf (or is Null) — callers never hold an Item that didn't come from this
// Itemizer.
func (z *Itemizer) StrOf(id Item) string {
	return z.idToStr[id-1]
}

// Len returns the number of distinct items the Itemizer has assigned IDs
// to.
func (z *Itemizer) Len() int {
	return len(z.idToStr)
}

// Reorder sorts the string table lexicographically and reassigns IDs
// 1..=N in that order, rewriting counter so every old ID's count is
// preserved under its new ID. After Reorder, for all ids i < j,
// z.StrOf(i) < z.StrOf(j) lexicographically.
func (z *Itemizer) Reorder(counter *ItemCounter) {
	oldToNew := make([]Item, len(z.idToStr)+1) // index by old ID

	sorted := make([]string, len(z.idToStr))
	copy(sorted, z.idToStr)
	sort.Strings(sorted)

	newStrToID := make(map[string]Item, len(sorted))
	for i, s := range sorted {
		newID := Item(i + 1)
		oldID := z.strToID[s]
		oldToNew[oldID] = newID
		newStrToID[s] = newID
	}

	newCounter := NewItemCounter()
	for oldID := Item(1); int(oldID) <= len(z.idToStr); oldID++ {
		newCounter.Set(oldToNew[oldID], counter.Get(oldID))
	}

	z.idToStr = sorted
	z.strToID = newStrToID
	counter.Take(newCounter)
}
