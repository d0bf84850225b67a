// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package fstree

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleTree builds the well-known puzzle example by hand:
//
//	/ ── a ── e ── i (584)
//	   │    ├ f (29116), g (2557), h.lst (62596)
//	   ├ b.txt (14848514), c.dat (8504156)
//	   └ d ── j (4060174), d.log (8033020), d.ext (5626152), k (7214296)
//
// It returns the tree and the IDs of its directories by name.
func exampleTree(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()

	tree := New()
	dirs := map[string]NodeID{"/": tree.Root()}

	attach := func(parent, child NodeID) {
		require.NoError(t, tree.AddChild(parent, child))
	}
	file := func(name string, size int64) NodeID {
		return tree.NewFile(name, big.NewInt(size))
	}

	dirs["a"] = tree.NewDirectory("a")
	attach(tree.Root(), dirs["a"])
	attach(tree.Root(), file("b.txt", 14848514))
	attach(tree.Root(), file("c.dat", 8504156))
	dirs["d"] = tree.NewDirectory("d")
	attach(tree.Root(), dirs["d"])

	dirs["e"] = tree.NewDirectory("e")
	attach(dirs["a"], dirs["e"])
	attach(dirs["a"], file("f", 29116))
	attach(dirs["a"], file("g", 2557))
	attach(dirs["a"], file("h.lst", 62596))

	attach(dirs["e"], file("i", 584))

	attach(dirs["d"], file("j", 4060174))
	attach(dirs["d"], file("d.log", 8033020))
	attach(dirs["d"], file("d.ext", 5626152))
	attach(dirs["d"], file("k", 7214296))

	return tree, dirs
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNew_RootOnly(t *testing.T) {
	tree := New()

	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, RootID, tree.Root())
	assert.Equal(t, "/", tree.Name(tree.Root()))
	assert.True(t, tree.IsDir(tree.Root()))
	assert.Empty(t, tree.Children(tree.Root()))
	assert.Equal(t, "0", tree.Size(tree.Root()).String())

	_, ok := tree.Parent(tree.Root())
	assert.False(t, ok, "root has no parent")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "dir", KindDirectory.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestNewFile_CopiesSize(t *testing.T) {
	tree := New()
	size := big.NewInt(10)
	id := tree.NewFile("x", size)

	size.SetInt64(99)
	assert.Equal(t, "10", tree.Size(id).String(), "caller mutation must not leak into the tree")

	got := tree.Size(id)
	got.SetInt64(1)
	assert.Equal(t, "10", tree.Size(id).String(), "returned size must be a copy")
}

func TestAddChild_KeepsOrder(t *testing.T) {
	tree := New()
	names := []string{"z", "a", "m"}
	for _, n := range names {
		require.NoError(t, tree.AddChild(tree.Root(), tree.NewDirectory(n)))
	}

	var got []string
	for _, id := range tree.Children(tree.Root()) {
		got = append(got, tree.Name(id))
	}
	assert.Equal(t, names, got)
}

func TestAddChild_DuplicatesAreKept(t *testing.T) {
	tree := New()
	require.NoError(t, tree.AddChild(tree.Root(), tree.NewFile("a", big.NewInt(5))))
	require.NoError(t, tree.AddChild(tree.Root(), tree.NewFile("a", big.NewInt(5))))

	assert.Len(t, tree.Children(tree.Root()), 2)
	assert.Equal(t, "10", tree.Size(tree.Root()).String(), "duplicate entries are double counted")
}

func TestAddChild_Errors(t *testing.T) {
	tree := New()
	file := tree.NewFile("f", big.NewInt(1))
	dir := tree.NewDirectory("d")
	sub := tree.NewDirectory("s")
	require.NoError(t, tree.AddChild(dir, sub))

	tests := []struct {
		name   string
		parent NodeID
		child  NodeID
		want   error
	}{
		{"unknown parent", NodeID(100), file, ErrUnknownNode},
		{"unknown child", tree.Root(), NodeID(-5), ErrUnknownNode},
		{"file parent", file, tree.NewDirectory("x"), ErrNotDirectory},
		{"root as child", dir, tree.Root(), ErrAttached},
		{"already attached", tree.Root(), sub, ErrAttached},
		{"self", dir, dir, ErrCycle},
		{"under own descendant", sub, dir, ErrCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.AddChild(tt.parent, tt.child)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// =============================================================================
// Size Tests
// =============================================================================

func TestSize_Example(t *testing.T) {
	tree, dirs := exampleTree(t)

	tests := []struct {
		dir  string
		want string
	}{
		{"e", "584"},
		{"a", "94853"},
		{"d", "24933642"},
		{"/", "48381165"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.Size(dirs[tt.dir]).String())
		})
	}
}

func TestSize_Additivity(t *testing.T) {
	tree, _ := exampleTree(t)

	for _, id := range append([]NodeID{tree.Root()}, tree.Successors(tree.Root())...) {
		if !tree.IsDir(id) {
			continue
		}

		childSum := new(big.Int)
		for _, child := range tree.Children(id) {
			childSum.Add(childSum, tree.Size(child))
		}
		leafSum := new(big.Int)
		for _, desc := range tree.Successors(id) {
			if tree.Kind(desc) == KindFile {
				leafSum.Add(leafSum, tree.Size(desc))
			}
		}

		size := tree.Size(id)
		assert.Zero(t, size.Cmp(childSum), "%s: size %s != sum of children %s", tree.Path(id), size, childSum)
		assert.Zero(t, size.Cmp(leafSum), "%s: size %s != sum of leaves %s", tree.Path(id), size, leafSum)
	}
}

func TestSize_BeyondUint64(t *testing.T) {
	tree := New()
	maxU64 := new(big.Int).SetUint64(^uint64(0))

	dir := tree.NewDirectory("big")
	require.NoError(t, tree.AddChild(tree.Root(), dir))
	for i := 0; i < 3; i++ {
		require.NoError(t, tree.AddChild(dir, tree.NewFile("f", maxU64)))
	}
	require.NoError(t, tree.AddChild(tree.Root(), tree.NewFile("one", big.NewInt(1))))

	want := new(big.Int).Mul(maxU64, big.NewInt(3))
	assert.Zero(t, tree.Size(dir).Cmp(want))

	want.Add(want, big.NewInt(1))
	assert.Equal(t, want.String(), tree.Size(tree.Root()).String())
	assert.Equal(t, "55340232221128654846", tree.Size(tree.Root()).String())
}

// =============================================================================
// Traversal Tests
// =============================================================================

func TestSuccessors_PreOrder(t *testing.T) {
	tree, dirs := exampleTree(t)

	var got []string
	for _, id := range tree.Successors(tree.Root()) {
		got = append(got, tree.Name(id))
	}

	want := []string{
		"a", "e", "i", "f", "g", "h.lst",
		"b.txt", "c.dat",
		"d", "j", "d.log", "d.ext", "k",
	}
	assert.Equal(t, want, got)

	assert.Len(t, tree.Successors(dirs["e"]), 1)
	file := tree.Children(dirs["e"])[0]
	assert.Empty(t, tree.Successors(file), "files have no successors")
}

func TestPath(t *testing.T) {
	tree, dirs := exampleTree(t)

	assert.Equal(t, "/", tree.Path(tree.Root()))
	assert.Equal(t, "/a", tree.Path(dirs["a"]))
	assert.Equal(t, "/a/e", tree.Path(dirs["e"]))
	assert.Equal(t, "/a/e/i", tree.Path(tree.Children(dirs["e"])[0]))

	loose := tree.NewDirectory("loose")
	leaf := tree.NewFile("leaf", big.NewInt(1))
	require.NoError(t, tree.AddChild(loose, leaf))
	assert.Equal(t, "loose/leaf", tree.Path(leaf), "detached subtrees have relative paths")
}

func TestNode(t *testing.T) {
	tree := New()
	dir := tree.NewDirectory("a")
	file := tree.NewFile("b.txt", big.NewInt(1))

	root, ok := tree.Node(tree.Root())
	require.True(t, ok)
	assert.Equal(t, Node{ID: RootID, Name: RootName, Kind: KindDirectory}, root)

	got, ok := tree.Node(dir)
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, KindDirectory, got.Kind)

	got, ok = tree.Node(file)
	require.True(t, ok)
	assert.Equal(t, KindFile, got.Kind)

	_, ok = tree.Node(NodeID(99))
	assert.False(t, ok)
	_, ok = tree.Node(NodeID(-1))
	assert.False(t, ok)
}
