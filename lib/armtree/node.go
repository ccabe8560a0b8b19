// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package armtree implements the FP-tree: an arena-allocated prefix tree
// with a per-item header table, as used by FP-Growth.
package armtree

import (
	"git.lukeshu.com/go/typedsync"

	"github.com/cpearce/arm-go/lib/armitem"
)

// RootID is the arena index of every tree's root node.
const RootID = 0

// FPNode is one node of an FP-tree's arena. Nodes are never referenced
// across trees; all links (parent, children) are indices into the owning
// tree's arena.
type FPNode struct {
	id     int
	item   armitem.Item
	count  uint32
	parent int
	// children is a small, linearly-scanned association list: no two
	// entries carry the same item.
	children []childLink
}

type childLink struct {
	item armitem.Item
	id   int
}

// ID is the node's stable arena index.
func (n *FPNode) ID() int { return n.id }

// Item is the item this node carries; it is armitem.Null iff this is the
// tree's root.
func (n *FPNode) Item() armitem.Item { return n.item }

// Count is the number of transactions (weighted by input count) that pass
// through this node.
func (n *FPNode) Count() uint32 { return n.count }

// reset restores a pooled node to a fresh state for reuse in a new arena
// slot.
func (n *FPNode) reset(id int, item armitem.Item, parent int) {
	n.id = id
	n.item = item
	n.count = 0
	n.parent = parent
	n.children = n.children[:0]
}

// nodePool is a process-wide pool of FPNode arena slots, shared by every
// FP-tree and conditional FP-tree built during a mining run, so deep,
// highly-parallel recursion reuses node memory instead of allocating a
// fresh node on every level.
var nodePool = typedsync.Pool[*FPNode]{
	New: func() *FPNode {
		return new(FPNode)
	},
}

func acquireNode(id int, item armitem.Item, parent int) *FPNode {
	n, ok := nodePool.Get()
	if !ok {
		n = new(FPNode)
	}
	n.reset(id, item, parent)
	return n
}
