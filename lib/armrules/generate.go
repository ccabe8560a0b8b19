// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armrules

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armmine"
	"github.com/cpearce/arm-go/lib/armset"
)

// Generate derives every association rule supported by itemsets (the
// frequent-itemset/count table FPGrowth produced against a dataset of
// datasetSize transactions), subject to minConfidence and minLift. One
// dgroup task is forked per frequent itemset of size ≥ 2, mirroring
// FPGrowth's own per-item fork.
func Generate(ctx context.Context, itemsets []armmine.ItemSet, datasetSize uint32, minConfidence, minLift float64) ([]Rule, error) {
	table := NewSupportTable(itemsets, datasetSize)

	var (
		mu    sync.Mutex
		rules []Rule
	)

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	for i, is := range itemsets {
		is := is
		if len(is.Items) < 2 {
			continue
		}
		i := i
		grp.Go(fmt.Sprintf("itemset-%d", i), func(ctx context.Context) error {
			ctx = dlog.WithField(ctx, "arm.rules.itemset", []armitem.Item(is.Items))
			found := generateForItemset(is.Items, table, minConfidence, minLift)
			dlog.Debugf(ctx, "rulegen: found=%d", len(found))
			mu.Lock()
			rules = append(rules, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return rules, nil
}

// generateForItemset implements the AprioriGen-style level-wise consequent
// expansion for a single frequent itemset I: seed with singleton
// consequents, then repeatedly merge same-length sorted candidates that
// share all but their last item, growing the consequent by one item per
// generation.
func generateForItemset(isItems armitem.Itemset, table *SupportTable, minConfidence, minLift float64) []Rule {
	isSup, ok := table.Get(isItems)
	if !ok {
		return nil
	}

	var rules []Rule
	candidates := make([]armitem.Itemset, 0, len(isItems))

	// Seed generation: consequent size 1.
	for _, i := range isItems {
		antecedent, consequent := armset.SplitOutItem(isItems, i)
		confidence, ok := confidenceOf(isSup, antecedent, table)
		if !ok || confidence < minConfidence {
			continue
		}
		// Retained for level-2 expansion regardless of the lift test: only
		// a failed confidence test drops a candidate (confidence is
		// antitone in antecedent size; lift is not).
		candidates = append(candidates, consequent)
		if rule, ok := makeRule(isSup, antecedent, consequent, confidence, minLift, table); ok {
			rules = append(rules, rule)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Less(candidates[j]) })

	for len(candidates) > 0 && len(candidates[0])+1 < len(isItems) {
		m := len(candidates[0])
		var next []armitem.Itemset

		for i1 := 0; i1 < len(candidates); i1++ {
			c1 := candidates[i1]
			for i2 := i1 + 1; i2 < len(candidates); i2++ {
				c2 := candidates[i2]
				if !samePrefix(c1, c2, m-1) {
					// The candidate list is sorted, so once the shared
					// prefix breaks it cannot recur for larger i2.
					break
				}
				consequent := armset.Union(c1, c2)
				antecedent, err := armset.SplitOut(isItems, consequent)
				if err != nil {
					continue
				}
				confidence, ok := confidenceOf(isSup, antecedent, table)
				if !ok || confidence < minConfidence {
					// Low confidence propagates: removing an item from the
					// antecedent cannot raise sup(I)/sup(A), so this
					// consequent is dropped rather than retained.
					continue
				}
				next = append(next, consequent)
				if rule, ok := makeRule(isSup, antecedent, consequent, confidence, minLift, table); ok {
					rules = append(rules, rule)
				}
			}
		}
		candidates = dedupeSorted(next)
	}

	return rules
}

func confidenceOf(isSup float64, antecedent armitem.Itemset, table *SupportTable) (float64, bool) {
	aSup, ok := table.Get(antecedent)
	if !ok || aSup == 0 {
		return 0, false
	}
	return isSup / aSup, true
}

func makeRule(isSup float64, antecedent, consequent armitem.Itemset, confidence, minLift float64, table *SupportTable) (Rule, bool) {
	aSup, ok := table.Get(antecedent)
	if !ok {
		return Rule{}, false
	}
	cSup, ok := table.Get(consequent)
	if !ok || cSup == 0 {
		return Rule{}, false
	}
	lift := isSup / (aSup * cSup)
	if lift < minLift {
		return Rule{}, false
	}
	return Rule{
		Antecedent: antecedent,
		Consequent: consequent,
		Confidence: confidence,
		Lift:       lift,
		Support:    isSup,
	}, true
}

func samePrefix(a, b armitem.Itemset, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dedupeSorted sorts a candidate list and removes duplicate entries: the
// merge loop above relies on a sorted list with no duplicate entries.
func dedupeSorted(items []armitem.Itemset) []armitem.Itemset {
	if len(items) == 0 {
		return items
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Less(items[j]) })
	out := items[:1]
	for _, it := range items[1:] {
		if !it.Less(out[len(out)-1]) && !out[len(out)-1].Less(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}
