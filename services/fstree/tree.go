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
	"fmt"
	"math/big"
	"strings"
)

// RootName is the name of the root directory.
const RootName = "/"

// NodeID addresses a node in a Tree's arena.
type NodeID int

// RootID is the ID of the root directory in every tree.
const RootID NodeID = 0

// noParent marks the root and detached nodes.
const noParent NodeID = -1

// Kind distinguishes files from directories.
type Kind int

const (
	// KindFile is a leaf carrying a size.
	KindFile Kind = iota + 1

	// KindDirectory holds an ordered list of children.
	KindDirectory
)

// String returns "file", "dir", or "unknown".
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	default:
		return "unknown"
	}
}

// node is one arena slot.
type node struct {
	name     string
	kind     Kind
	size     *big.Int // files only; never mutated after creation
	parent   NodeID
	children []NodeID // directories only, in attachment order
}

// Tree owns every node of one reconstructed filesystem.
//
// IDs passed to Tree methods must have been returned by the same tree;
// accessors panic on foreign IDs the same way a slice index would.
type Tree struct {
	nodes []node
}

// New creates a tree holding only the empty root directory.
func New() *Tree {
	return &Tree{
		nodes: []node{{name: RootName, kind: KindDirectory, parent: noParent}},
	}
}

// NewFile allocates a detached file. size is copied.
func (t *Tree) NewFile(name string, size *big.Int) NodeID {
	s := new(big.Int)
	if size != nil {
		s.Set(size)
	}
	return t.alloc(node{name: name, kind: KindFile, size: s, parent: noParent})
}

// NewDirectory allocates a detached, empty directory.
func (t *Tree) NewDirectory(name string) NodeID {
	return t.alloc(node{name: name, kind: KindDirectory, parent: noParent})
}

func (t *Tree) alloc(n node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// AddChild appends child to parent's children.
//
// Children are never deduplicated: listing the same directory twice
// attaches two nodes with the same name and both count towards its size.
func (t *Tree) AddChild(parent, child NodeID) error {
	if !t.valid(parent) || !t.valid(child) {
		return fmt.Errorf("%w: add %d under %d", ErrUnknownNode, child, parent)
	}
	if t.nodes[parent].kind != KindDirectory {
		return fmt.Errorf("%w: %s", ErrNotDirectory, t.nodes[parent].name)
	}
	if child == RootID || t.nodes[child].parent != noParent {
		return fmt.Errorf("%w: %s", ErrAttached, t.nodes[child].name)
	}
	for p := parent; p != noParent; p = t.nodes[p].parent {
		if p == child {
			return fmt.Errorf("%w: %s", ErrCycle, t.nodes[child].name)
		}
	}

	t.nodes[child].parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	return nil
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Len returns the number of allocated nodes, attached or not.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root directory's ID.
func (t *Tree) Root() NodeID {
	return RootID
}

// Node is a read-only view of one node.
type Node struct {
	ID   NodeID
	Name string
	Kind Kind
}

// Node returns a view of id, or false when id is not in the tree.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.valid(id) {
		return Node{}, false
	}
	n := &t.nodes[id]
	return Node{ID: id, Name: n.name, Kind: n.kind}, true
}

// Name returns the node's name.
func (t *Tree) Name(id NodeID) string {
	return t.nodes[id].name
}

// Kind returns whether the node is a file or a directory.
func (t *Tree) Kind(id NodeID) Kind {
	return t.nodes[id].kind
}

// IsDir reports whether the node is a directory.
func (t *Tree) IsDir(id NodeID) bool {
	return t.nodes[id].kind == KindDirectory
}

// Parent returns the node's parent, or false for the root and detached nodes.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.nodes[id].parent
	return p, p != noParent
}

// Children returns a copy of the node's direct children in attachment order.
// Files have no children.
func (t *Tree) Children(id NodeID) []NodeID {
	children := t.nodes[id].children
	out := make([]NodeID, len(children))
	copy(out, children)
	return out
}

// Size returns the node's size.
//
// A file's size is the one it was created with. A directory's size is the
// sum of its children's sizes, recomputed on every call.
func (t *Tree) Size(id NodeID) *big.Int {
	n := &t.nodes[id]
	switch n.kind {
	case KindFile:
		return new(big.Int).Set(n.size)
	case KindDirectory:
		total := new(big.Int)
		for _, child := range n.children {
			total.Add(total, t.Size(child))
		}
		return total
	default:
		panic(fmt.Sprintf("fstree: node %d has invalid kind %d", id, n.kind))
	}
}

// Successors returns every descendant of id in pre-order: each node comes
// before its own children, and siblings keep their attachment order.
// The node itself is not included.
func (t *Tree) Successors(id NodeID) []NodeID {
	var out []NodeID
	t.appendSuccessors(id, &out)
	return out
}

func (t *Tree) appendSuccessors(id NodeID, out *[]NodeID) {
	for _, child := range t.nodes[id].children {
		*out = append(*out, child)
		t.appendSuccessors(child, out)
	}
}

// Path returns the absolute slash-separated path of a node reachable from
// the root. Nodes in a detached subtree get a path relative to its top.
func (t *Tree) Path(id NodeID) string {
	if id == RootID {
		return RootName
	}

	var parts []string
	cur := id
	for cur != noParent && cur != RootID {
		parts = append(parts, t.nodes[cur].name)
		cur = t.nodes[cur].parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	joined := strings.Join(parts, "/")
	if cur == RootID {
		return RootName + joined
	}
	return joined
}
