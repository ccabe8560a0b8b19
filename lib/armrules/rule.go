// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armrules implements association-rule generation from a frequent
// itemset/support table: the AprioriGen-style level-wise consequent
// expansion, plus a naive brute-force generator used only to verify the
// expansion's output by exhaustive comparison.
package armrules

import (
	"strconv"
	"strings"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armmine"
)

// Rule is an association rule antecedent ⇒ consequent together with its
// derived statistics. Antecedent and consequent are disjoint, non-empty,
// and held in ascending-ID order.
type Rule struct {
	Antecedent armitem.Itemset
	Consequent armitem.Itemset
	Confidence float64
	Lift       float64
	Support    float64
}

// Equal compares two rules on (Antecedent, Consequent) only — the derived
// statistics are excluded, matching the reference implementation's rule
// equality (floating-point fields aren't meaningfully comparable for
// dedup purposes).
func (r Rule) Equal(o Rule) bool {
	return itemsetKey(r.Antecedent) == itemsetKey(o.Antecedent) &&
		itemsetKey(r.Consequent) == itemsetKey(o.Consequent)
}

// SupportTable maps an itemset (by its canonical string key) to its
// support fraction in [0,1]. It is built once from the frequent-itemset
// list FP-Growth produced and is read-only for the remainder of a run.
type SupportTable struct {
	m map[string]float64
}

// NewSupportTable builds a SupportTable from FP-Growth's frequent-itemset
// list and the dataset's transaction count.
func NewSupportTable(itemsets []armmine.ItemSet, datasetSize uint32) *SupportTable {
	t := &SupportTable{m: make(map[string]float64, len(itemsets))}
	for _, is := range itemsets {
		t.m[itemsetKey(is.Items)] = float64(is.Count) / float64(datasetSize)
	}
	return t
}

// Get returns the support of items and whether it was present in the
// table. An itemset absent from the table (it was never frequent) yields
// (0, false).
func (t *SupportTable) Get(items armitem.Itemset) (float64, bool) {
	s, ok := t.m[itemsetKey(items)]
	return s, ok
}

// itemsetKey renders items (assumed ascending, deduplicated) as a stable
// map key.
func itemsetKey(items armitem.Itemset) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(it), 10))
	}
	return b.String()
}
