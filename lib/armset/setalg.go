// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armset implements set algebra over sorted-ascending item
// vectors, adapted from the repo's generic slice-utility package for the
// mining core's Itemset type.
package armset

import (
	"fmt"

	"github.com/cpearce/arm-go/lib/armitem"
)

// Union returns the sorted-ascending union of a and b, with duplicates
// collapsed. Both a and b must already be sorted ascending.
func Union(a, b armitem.Itemset) armitem.Itemset {
	c := make(armitem.Itemset, 0, len(a)+len(b))
	var ap, bp int
	for ap < len(a) && bp < len(b) {
		switch {
		case a[ap] < b[bp]:
			c = append(c, a[ap])
			ap++
		case b[bp] < a[ap]:
			c = append(c, b[bp])
			bp++
		default:
			c = append(c, a[ap])
			ap++
			bp++
		}
	}
	c = append(c, a[ap:]...)
	c = append(c, b[bp:]...)
	return c
}

// Intersection returns the sorted-ascending intersection of a and b. Both
// a and b must already be sorted ascending.
func Intersection(a, b armitem.Itemset) armitem.Itemset {
	var c armitem.Itemset
	var ap, bp int
	for ap < len(a) && bp < len(b) {
		switch {
		case a[ap] < b[bp]:
			ap++
		case b[bp] < a[ap]:
			bp++
		default:
			c = append(c, a[ap])
			ap++
			bp++
		}
	}
	return c
}

// IntersectionSize returns len(Intersection(a, b)) without allocating.
func IntersectionSize(a, b armitem.Itemset) int {
	var n, ap, bp int
	for ap < len(a) && bp < len(b) {
		switch {
		case a[ap] < b[bp]:
			ap++
		case b[bp] < a[ap]:
			bp++
		default:
			n++
			ap++
			bp++
		}
	}
	return n
}

// Difference returns the items of a that are absent from b, in ascending
// order. Both a and b must already be sorted ascending.
func Difference(a, b armitem.Itemset) armitem.Itemset {
	var c armitem.Itemset
	var ap, bp int
	for ap < len(a) && bp < len(b) {
		switch {
		case a[ap] < b[bp]:
			c = append(c, a[ap])
			ap++
		case b[bp] < a[ap]:
			bp++
		default:
			ap++
			bp++
		}
	}
	c = append(c, a[ap:]...)
	return c
}

// SplitOutItem splits items into (items \ {x}, {x}). It assumes x appears
// in items at most once.
func SplitOutItem(items armitem.Itemset, x armitem.Item) (rest, singleton armitem.Itemset) {
	rest = make(armitem.Itemset, 0, len(items))
	for _, it := range items {
		if it != x {
			rest = append(rest, it)
		}
	}
	return rest, armitem.Itemset{x}
}

// SplitOut returns a \ b, where b must be a subset of a (both sorted
// ascending). It returns an error rather than panicking if b is not a
// subset — the production rule generator never calls it this way, but
// library code shouldn't panic on bad input.
func SplitOut(a, b armitem.Itemset) (armitem.Itemset, error) {
	c := make(armitem.Itemset, 0, len(a))
	var ap, bp int
	for ap < len(a) && bp < len(b) {
		switch {
		case a[ap] < b[bp]:
			c = append(c, a[ap])
			ap++
		case b[bp] < a[ap]:
			return nil, fmt.Errorf("armset.SplitOut: item %v in b is not in a", b[bp])
		default:
			ap++
			bp++
		}
	}
	if bp != len(b) {
		return nil, fmt.Errorf("armset.SplitOut: item %v in b is not in a", b[bp])
	}
	c = append(c, a[ap:]...)
	return c, nil
}
