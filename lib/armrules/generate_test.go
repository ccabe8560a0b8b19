// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armrules_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armmine"
	"github.com/cpearce/arm-go/lib/armrules"
)

// tinyDataset is the 11-transaction fixture from the reference
// implementation's own tests: items {a..g} mapped to IDs 1..7 in the
// order they're first seen.
func tinyDataset() (itemsets []armmine.ItemSet, datasetSize uint32) {
	const (
		a armitem.Item = 1
		b armitem.Item = 2
		c armitem.Item = 3
		d armitem.Item = 4
		e armitem.Item = 5
		f armitem.Item = 6
		g armitem.Item = 7
	)
	txns := []armitem.Itemset{
		{a, b, c},
		{d, b, c},
		{a, b, e},
		{f, g, c},
		{d, g, e},
		{f, b, c},
		{f, b, c},
		{a, b, e},
		{a, b, c},
		{a, b, e},
		{a, b, e},
	}
	seen := map[string]bool{}
	vocab := map[armitem.Item]bool{}
	for _, txn := range txns {
		for _, it := range txn {
			vocab[it] = true
		}
	}
	var items []armitem.Item
	for it := range vocab {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	for mask := 1; mask < (1 << len(items)); mask++ {
		var candidate armitem.Itemset
		for i, it := range items {
			if mask&(1<<i) != 0 {
				candidate = append(candidate, it)
			}
		}
		var cnt uint32
		for _, txn := range txns {
			if isSubsetOf(candidate, txn) {
				cnt++
			}
		}
		k := key(candidate)
		if cnt > 0 && !seen[k] {
			seen[k] = true
			itemsets = append(itemsets, armmine.ItemSet{Items: candidate, Count: cnt})
		}
	}
	return itemsets, uint32(len(txns))
}

func isSubsetOf(a, b armitem.Itemset) bool {
	bSet := map[armitem.Item]bool{}
	for _, it := range b {
		bSet[it] = true
	}
	for _, it := range a {
		if !bSet[it] {
			return false
		}
	}
	return true
}

func key(items armitem.Itemset) string {
	return fmt.Sprint([]armitem.Item(items))
}

func TestGenerateRulesSatisfyThresholds(t *testing.T) {
	t.Parallel()
	itemsets, datasetSize := tinyDataset()

	const minConfidence = 0.05
	const minLift = 1.0

	rules, err := armrules.Generate(context.Background(), itemsets, datasetSize, minConfidence, minLift)
	require.NoError(t, err)
	assert.NotEmpty(t, rules)

	table := armrules.NewSupportTable(itemsets, datasetSize)
	for _, r := range rules {
		assertDisjointNonEmptySorted(t, r.Antecedent, r.Consequent)
		assert.GreaterOrEqual(t, r.Confidence, minConfidence)
		assert.GreaterOrEqual(t, r.Lift, minLift)

		union := unionOf(r.Antecedent, r.Consequent)
		unionSup, ok := table.Get(union)
		require.True(t, ok)
		aSup, ok := table.Get(r.Antecedent)
		require.True(t, ok)
		cSup, ok := table.Get(r.Consequent)
		require.True(t, ok)

		assert.InDelta(t, unionSup/aSup, r.Confidence, 1e-9)
		assert.InDelta(t, unionSup/(aSup*cSup), r.Lift, 1e-9)
		assert.InDelta(t, unionSup, r.Support, 1e-9)
	}
}

func TestGenerateMatchesNaiveExhaustive(t *testing.T) {
	t.Parallel()
	itemsets, datasetSize := tinyDataset()
	table := armrules.NewSupportTable(itemsets, datasetSize)

	for _, is := range itemsets {
		is := is
		if len(is.Items) < 2 {
			continue
		}
		t.Run(fmt.Sprint(is.Items), func(t *testing.T) {
			t.Parallel()
			production := generateOneDirect(t, itemsets, datasetSize, is.Items)
			naive := armrules.GenerateNaive(is.Items, table, 0.05, 1.0)

			assert.ElementsMatch(t, ruleKeys(production), ruleKeys(naive))
		})
	}
}

// generateOneDirect runs the full parallel Generate pipeline and filters
// down to the rules derived from a single itemset, for comparison against
// GenerateNaive on that same itemset.
func generateOneDirect(t *testing.T, itemsets []armmine.ItemSet, datasetSize uint32, target armitem.Itemset) []armrules.Rule {
	t.Helper()
	all, err := armrules.Generate(context.Background(), itemsets, datasetSize, 0.05, 1.0)
	require.NoError(t, err)

	var out []armrules.Rule
	for _, r := range all {
		union := unionOf(r.Antecedent, r.Consequent)
		if key(union) == key(target) {
			out = append(out, r)
		}
	}
	return out
}

func ruleKeys(rules []armrules.Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = key(r.Antecedent) + "=>" + key(r.Consequent)
	}
	return out
}

func unionOf(a, b armitem.Itemset) armitem.Itemset {
	seen := map[armitem.Item]bool{}
	var out armitem.Itemset
	for _, it := range a {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	for _, it := range b {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func assertDisjointNonEmptySorted(t *testing.T, a, b armitem.Itemset) {
	t.Helper()
	assert.NotEmpty(t, a)
	assert.NotEmpty(t, b)
	bSet := map[armitem.Item]bool{}
	for _, it := range b {
		bSet[it] = true
	}
	for _, it := range a {
		assert.False(t, bSet[it], "antecedent and consequent must be disjoint")
	}
	for i := 1; i < len(a); i++ {
		assert.Less(t, a[i-1], a[i])
	}
	for i := 1; i < len(b); i++ {
		assert.Less(t, b[i-1], b[i])
	}
}
