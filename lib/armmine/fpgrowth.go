// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armmine implements the FP-Growth driver: parallel recursive
// enumeration of frequent itemsets from an FP-tree.
package armmine

import (
	"context"
	"fmt"
	"sync"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armtree"
	"github.com/cpearce/arm-go/lib/slices"
)

// ItemSet is a frequent itemset together with its absolute support count.
type ItemSet struct {
	Items armitem.Itemset
	Count uint32
}

// FPGrowth returns every frequent extension of path discoverable within
// tree, where "frequent" means a support count strictly greater than
// minCount (a strict inequality, matching the reference implementation:
// an itemset with count exactly minCount is excluded).
//
// Each item in tree's header table above threshold is explored in its own
// dgroup task: the task builds item's conditional tree, recurses into it,
// and reports path ∪ {item} (with its support count) alongside whatever
// the recursion found. tree is not mutated and not retained past this
// call's return — every task Releases the conditional tree it built.
func FPGrowth(ctx context.Context, tree *armtree.FPTree, minCount uint32, path armitem.Itemset, pathCount uint32) ([]ItemSet, error) {
	var items []armitem.Item
	for _, item := range tree.HeaderItems() {
		if tree.Counter().Get(item) > minCount {
			items = append(items, item)
		}
	}
	slices.Sort(items)

	if len(items) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		itemsets []ItemSet
	)

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	for _, item := range items {
		item := item
		grp.Go(fmt.Sprintf("item-%d", item), func(ctx context.Context) error {
			ctx = dlog.WithField(ctx, "arm.mine.item", item)
			ctx = dlog.WithField(ctx, "arm.mine.depth", len(path)+1)

			newCount := slices.Min(pathCount, tree.Counter().Get(item))

			newPath := extend(path, item)

			conditional := tree.ConstructConditionalTree(item)
			defer conditional.Release()

			inner, err := FPGrowth(ctx, conditional, minCount, newPath, newCount)
			if err != nil {
				return err
			}

			dlog.Debugf(ctx, "fpgrowth: found=%s new_count=%d inner=%d",
				fmtItemset(newPath), newCount, len(inner))

			mu.Lock()
			itemsets = append(itemsets, inner...)
			itemsets = append(itemsets, ItemSet{Items: newPath, Count: newCount})
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return itemsets, nil
}

// extend returns the ascending-ID-sorted union of path and item. path is
// assumed already ascending and not to contain item.
func extend(path armitem.Itemset, item armitem.Item) armitem.Itemset {
	newPath := make(armitem.Itemset, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = item
	slices.Sort(newPath)
	return newPath
}

func fmtItemset(items armitem.Itemset) string {
	return fmt.Sprint([]armitem.Item(items))
}
