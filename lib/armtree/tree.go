// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armtree

import (
	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/maps"
)

// FPTree is an arena-allocated prefix tree of transactions, with a
// per-item header table enabling O(header-list length) conditional-tree
// construction. The root is always arena index RootID and carries
// armitem.Null.
//
// An FPTree is built by a single owning goroutine via repeated Insert
// calls; it is never mutated concurrently. ConstructConditionalTree reads
// the receiver without mutating it, so it's safe to call concurrently
// from multiple conditional-tree-building tasks forked over the same
// parent tree.
type FPTree struct {
	nodes   []*FPNode
	counter *armitem.ItemCounter
	header  map[armitem.Item][]int // item -> node IDs carrying it
}

// New returns an empty FPTree containing just a root.
func New() *FPTree {
	root := acquireNode(RootID, armitem.Null, RootID)
	return &FPTree{
		nodes:   []*FPNode{root},
		counter: armitem.NewItemCounter(),
		header:  make(map[armitem.Item][]int),
	}
}

// Counter returns the tree's own per-item support counter: for every item,
// the sum of counts of all nodes in this tree carrying that item.
func (t *FPTree) Counter() *armitem.ItemCounter { return t.counter }

// HeaderItems returns the items that appear anywhere in this tree, in
// ascending ID order — the header table is a map, so this keeps which
// dgroup task gets forked for which item deterministic across runs.
func (t *FPTree) HeaderItems() []armitem.Item {
	return maps.SortedKeys(t.header)
}

// Root returns the tree's root node.
func (t *FPTree) Root() *FPNode { return t.nodes[RootID] }

// Node returns the node at the given arena index.
func (t *FPTree) Node(id int) *FPNode { return t.nodes[id] }

// ChildOf returns the ID of nodeID's child carrying item, if any.
func (t *FPTree) ChildOf(nodeID int, item armitem.Item) (int, bool) {
	for _, c := range t.nodes[nodeID].children {
		if c.item == item {
			return c.id, true
		}
	}
	return 0, false
}

// Insert walks transaction left to right from the root, descending into
// (or creating) the child carrying each item, and adds count to every
// visited node. transaction must already be in the tree's canonical order
// (descending global frequency, ties broken by ID descending) — Insert
// does not sort it.
func (t *FPTree) Insert(transaction armitem.Itemset, count uint32) {
	cur := RootID
	for _, item := range transaction {
		childID, ok := t.ChildOf(cur, item)
		if !ok {
			childID = len(t.nodes)
			node := acquireNode(childID, item, cur)
			t.nodes = append(t.nodes, node)
			t.nodes[cur].children = append(t.nodes[cur].children, childLink{item: item, id: childID})
			t.header[item] = append(t.header[item], childID)
		}
		t.nodes[childID].count += count
		t.counter.Add(item, count)
		cur = childID
	}
}

// pathFromRootExcludingSelf returns the items on the path from the root to
// nodeID, excluding nodeID's own item, in root-to-leaf order.
func (t *FPTree) pathFromRootExcludingSelf(nodeID int) armitem.Itemset {
	var reversed armitem.Itemset
	for cur := t.nodes[nodeID].parent; cur != RootID; cur = t.nodes[cur].parent {
		reversed = append(reversed, t.nodes[cur].item)
	}
	path := make(armitem.Itemset, len(reversed))
	for i, it := range reversed {
		path[len(reversed)-1-i] = it
	}
	return path
}

// ConstructConditionalTree produces the conditional FP-tree for item: a
// fresh tree containing, for every node in this tree's header list for
// item, the path from the root to that node (excluding the node itself),
// inserted with that node's count. item itself never appears in the
// result.
func (t *FPTree) ConstructConditionalTree(item armitem.Item) *FPTree {
	conditional := New()
	for _, nodeID := range t.header[item] {
		path := t.pathFromRootExcludingSelf(nodeID)
		conditional.Insert(path, t.nodes[nodeID].count)
	}
	return conditional
}

// Release returns every node in this tree's arena to the shared node
// pool. The tree must not be used after calling Release.
func (t *FPTree) Release() {
	for _, n := range t.nodes {
		nodePool.Put(n)
	}
	t.nodes = nil
	t.header = nil
}
