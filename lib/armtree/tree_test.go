// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package armtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cpearce/arm-go/lib/armitem"
	"github.com/cpearce/arm-go/lib/armtree"
)

func TestInsertSharesPrefixes(t *testing.T) {
	t.Parallel()
	tree := armtree.New()
	tree.Insert(armitem.Itemset{1, 2, 3}, 1)
	tree.Insert(armitem.Itemset{1, 2, 4}, 1)
	tree.Insert(armitem.Itemset{1, 5}, 1)

	// The shared prefix [1, 2] is stored once, as a single chain of nodes;
	// each node's count accumulates every transaction passing through it.
	child1, ok := tree.ChildOf(armtree.RootID, armitem.Item(1))
	assert.True(t, ok)
	assert.Equal(t, uint32(3), tree.Node(child1).Count())

	child2, ok := tree.ChildOf(child1, armitem.Item(2))
	assert.True(t, ok)
	assert.Equal(t, uint32(2), tree.Node(child2).Count())

	child5, ok := tree.ChildOf(child1, armitem.Item(5))
	assert.True(t, ok)
	assert.Equal(t, uint32(1), tree.Node(child5).Count())

	assert.Equal(t, uint32(3), tree.Counter().Get(armitem.Item(1)))
	assert.Equal(t, uint32(2), tree.Counter().Get(armitem.Item(2)))
	assert.Equal(t, uint32(1), tree.Counter().Get(armitem.Item(3)))
	assert.Equal(t, uint32(1), tree.Counter().Get(armitem.Item(4)))
	assert.Equal(t, uint32(1), tree.Counter().Get(armitem.Item(5)))
}

func TestInsertWithCount(t *testing.T) {
	t.Parallel()
	tree := armtree.New()
	tree.Insert(armitem.Itemset{1, 2}, 7)

	child1, ok := tree.ChildOf(armtree.RootID, armitem.Item(1))
	assert.True(t, ok)
	assert.Equal(t, uint32(7), tree.Node(child1).Count())
}

func TestNoDuplicateChildren(t *testing.T) {
	t.Parallel()
	tree := armtree.New()
	tree.Insert(armitem.Itemset{1, 2}, 1)
	tree.Insert(armitem.Itemset{1, 3}, 1)
	tree.Insert(armitem.Itemset{1, 2}, 1)

	// Root has exactly one child for item 1, not three.
	child1, _ := tree.ChildOf(armtree.RootID, armitem.Item(1))
	assert.Equal(t, uint32(3), tree.Node(child1).Count())
}

func TestConstructConditionalTree(t *testing.T) {
	t.Parallel()
	tree := armtree.New()
	// Insert does not sort, so these transactions go in exactly as listed;
	// only the resulting prefix paths matter here.
	tree.Insert(armitem.Itemset{1, 2, 3}, 2)
	tree.Insert(armitem.Itemset{1, 3}, 1)
	tree.Insert(armitem.Itemset{2}, 1)

	cond := tree.ConstructConditionalTree(armitem.Item(3))

	// item 3 itself never appears in its own conditional tree.
	assert.Equal(t, uint32(0), cond.Counter().Get(armitem.Item(3)))
	// prefixes [1,2] (count 2) and [1] (count 1) both feed item 1's
	// conditional support: 2 + 1 = 3.
	assert.Equal(t, uint32(3), cond.Counter().Get(armitem.Item(1)))
	assert.Equal(t, uint32(2), cond.Counter().Get(armitem.Item(2)))
}

func TestRootIsNullItem(t *testing.T) {
	t.Parallel()
	tree := armtree.New()
	assert.Equal(t, armitem.Null, tree.Root().Item())
	assert.Equal(t, armtree.RootID, tree.Root().ID())
}
