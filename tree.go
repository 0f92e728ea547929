// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"math"
	"slices"

	"github.com/cockroachdb/arbor/internal/invariants"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// Tree is an arena of nodes linked into a forest of parent/child hierarchies.
// See the package documentation for the identity and ordering guarantees.
//
// A Tree must not be used concurrently without external synchronization.
type Tree struct {
	opts *Options

	// lastID is the most recently allocated id. It only ever grows.
	lastID NodeID
	// arena holds every live node. New nodes are always appended, so a node's
	// index is always greater than its parent's. Remove compacts the slice in
	// place, preserving the relative order of the surviving nodes.
	arena []Node
	// index maps ids to arena positions. It is nil unless Options.IndexByID is
	// set.
	index *swiss.Map[NodeID, int]

	metrics struct {
		created   uint64
		removed   uint64
		removeOps uint64
	}
}

// New returns an empty Tree configured with the given options. A nil opts is
// equivalent to the zero Options.
func New(opts *Options) *Tree {
	opts = opts.Clone().EnsureDefaults()
	t := &Tree{
		opts:  opts,
		arena: make([]Node, 0, opts.InitialCapacity),
	}
	if opts.IndexByID {
		t.index = swiss.New[NodeID, int](opts.InitialCapacity)
	}
	return t
}

// Add appends a new root node and returns its id. Add never fails.
func (t *Tree) Add() NodeID {
	id := t.allocID()
	t.appendNode(Node{id: id})
	t.opts.EventListener.NodeCreated(NodeCreatedInfo{ID: id, Index: len(t.arena) - 1})
	return id
}

// Insert appends a new node as the last child of parent and returns its id.
// It returns an error wrapping ErrInvalidNodeID, and leaves the tree
// unchanged, if parent is not in the tree.
func (t *Tree) Insert(parent NodeID) (NodeID, error) {
	pidx, ok := t.lookup(parent)
	if !ok {
		return NoNode, invalidNodeID("insert under", parent)
	}
	id := t.allocID()
	p := &t.arena[pidx]
	p.childIDs = append(p.childIDs, id)
	t.appendNode(Node{id: id, parentID: parent})
	t.opts.EventListener.NodeCreated(NodeCreatedInfo{ID: id, ParentID: parent, Index: len(t.arena) - 1})
	return id, nil
}

// Remove deletes the node with the given id together with all of its
// descendants. It returns the removed ids with id first, followed by its
// descendants in breadth-first order (children in insertion order). This is
// not necessarily arena order: a grandchild created before an uncle is listed
// after it. The surviving parent of id, if any, no longer lists it as a child.
//
// Remove returns an error wrapping ErrInvalidNodeID, and leaves the tree
// unchanged, if id is not in the tree.
//
// Removal compacts the arena: every surviving node that followed a removed
// node moves towards the front by the number of removed nodes preceding it.
func (t *Tree) Remove(id NodeID) ([]NodeID, error) {
	idx, ok := t.lookup(id)
	if !ok {
		return nil, invalidNodeID("remove", id)
	}
	parentID := t.arena[idx].parentID
	removed := t.subtree(idx)
	if invariants.Enabled {
		t.checkSubtreeSuffix(idx, removed)
	}

	contains := func(x NodeID) bool { return x == id }
	if len(removed) > 1 {
		set := swiss.New[NodeID, struct{}](len(removed))
		for _, r := range removed {
			set.Put(r, struct{}{})
		}
		contains = func(x NodeID) bool {
			_, ok := set.Get(x)
			return ok
		}
	}

	// Compact the arena in place. The removed nodes never precede idx: a
	// node's descendants sit after it in the arena (checked by
	// checkSubtreeSuffix in invariants builds).
	n := idx
	for i := idx; i < len(t.arena); i++ {
		nd := t.arena[i]
		if contains(nd.id) {
			continue
		}
		t.arena[n] = nd
		n++
	}
	clear(t.arena[n:])
	t.arena = t.arena[:n]

	if parentID != NoNode {
		// The parent precedes idx, so compaction did not move it.
		pidx, ok := t.lookupBefore(parentID, idx)
		if !ok {
			t.fatalf("arbor: parent %s of %s missing from arena", parentID, id)
		}
		p := &t.arena[pidx]
		p.childIDs = withoutID(p.childIDs, id)
	}

	if t.index != nil {
		for _, r := range removed {
			t.index.Delete(r)
		}
		for i := idx; i < len(t.arena); i++ {
			t.index.Put(t.arena[i].id, i)
		}
	}

	t.metrics.removed += uint64(len(removed))
	t.metrics.removeOps++
	if h := t.opts.Metrics.RemovedSubtreeSize; h != nil {
		h.Observe(float64(len(removed)))
	}
	t.opts.EventListener.SubtreeRemoved(SubtreeRemovedInfo{
		Root:     id,
		ParentID: parentID,
		Removed:  removed,
	})
	if invariants.Enabled {
		invariants.MaybePanic(t.CheckInvariants())
	}
	return removed, nil
}

// Index returns the current 0-based arena position of the node with the given
// id. Positions are not stable across calls to Remove.
func (t *Tree) Index(id NodeID) (int, error) {
	idx, ok := t.lookup(id)
	if !ok {
		return 0, invalidNodeID("index of", id)
	}
	return idx, nil
}

// Get returns a copy of the node with the given id. The boolean is false if
// there is no such node.
func (t *Tree) Get(id NodeID) (Node, bool) {
	idx, ok := t.lookup(id)
	if !ok {
		return Node{}, false
	}
	return t.arena[idx].clone(), true
}

// Contains returns whether a node with the given id is in the tree.
func (t *Tree) Contains(id NodeID) bool {
	_, ok := t.lookup(id)
	return ok
}

// Arena returns a snapshot of the arena in storage order. The snapshot is not
// affected by later mutations of the tree, but the positions of nodes in it
// should not be assumed to match the tree's once the tree has been mutated.
func (t *Tree) Arena() []Node {
	return slices.Clone(t.arena)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.arena)
}

// LastID returns the most recently allocated id, or NoNode if no node has
// ever been created. Every id handed out so far is <= LastID.
func (t *Tree) LastID() NodeID {
	return t.lastID
}

// Roots returns the ids of all root nodes in arena order.
func (t *Tree) Roots() []NodeID {
	var roots []NodeID
	for i := range t.arena {
		if t.arena[i].IsRoot() {
			roots = append(roots, t.arena[i].id)
		}
	}
	return roots
}

// Walk calls fn for the node with the given id and each of its descendants,
// depth first, parents before children and children in insertion order. The
// depth passed to fn is 0 for id itself. If fn returns false, the walk does
// not descend into that node's children. fn must not mutate the tree.
func (t *Tree) Walk(id NodeID, fn func(n Node, depth int) bool) error {
	idx, ok := t.lookup(id)
	if !ok {
		return invalidNodeID("walk", id)
	}
	t.walk(t.locator(), idx, func(n *Node, depth int) bool {
		return fn(n.clone(), depth)
	})
	return nil
}

// Metrics returns a snapshot of the tree's counters.
func (t *Tree) Metrics() Metrics {
	m := Metrics{
		Nodes:     len(t.arena),
		LastID:    t.lastID,
		Created:   t.metrics.created,
		Removed:   t.metrics.removed,
		RemoveOps: t.metrics.removeOps,
	}
	for i := range t.arena {
		if t.arena[i].IsRoot() {
			m.Roots++
		}
	}
	return m
}

func (t *Tree) allocID() NodeID {
	if t.lastID == math.MaxUint32 {
		t.fatalf("arbor: node id space exhausted")
	}
	t.lastID++
	t.metrics.created++
	return t.lastID
}

// fatalf reports a corrupted tree through the configured logger. It does not
// return, even if the logger's Fatalf does.
func (t *Tree) fatalf(format string, args ...interface{}) {
	err := errors.AssertionFailedf(format, args...)
	t.opts.Logger.Fatalf("%v", err)
	panic(err)
}

func (t *Tree) appendNode(n Node) {
	t.arena = append(t.arena, n)
	if t.index != nil {
		t.index.Put(n.id, len(t.arena)-1)
	}
	if invariants.Enabled {
		invariants.MaybePanic(t.CheckInvariants())
	}
}

// lookup returns the arena position of id.
func (t *Tree) lookup(id NodeID) (int, bool) {
	if id == NoNode {
		return 0, false
	}
	if t.index != nil {
		return t.index.Get(id)
	}
	for i := range t.arena {
		if t.arena[i].id == id {
			return i, true
		}
	}
	return 0, false
}

// lookupBefore is like lookup but only considers positions before limit.
func (t *Tree) lookupBefore(id NodeID, limit int) (int, bool) {
	if t.index != nil {
		if i, ok := t.index.Get(id); ok && i < limit {
			return i, true
		}
		return 0, false
	}
	for i := range t.arena[:limit] {
		if t.arena[i].id == id {
			return i, true
		}
	}
	return 0, false
}

// locator returns a function resolving ids to arena positions. Without an id
// index it builds a temporary one, so that resolving many ids costs a single
// pass over the arena.
func (t *Tree) locator() func(NodeID) (int, bool) {
	if t.index != nil {
		return t.index.Get
	}
	m := swiss.New[NodeID, int](len(t.arena))
	for i := range t.arena {
		m.Put(t.arena[i].id, i)
	}
	return m.Get
}

// subtree returns the id of the node at idx followed by the ids of all of its
// descendants in breadth-first order. It follows child ids rather than
// relying on arena order.
func (t *Tree) subtree(idx int) []NodeID {
	root := &t.arena[idx]
	ids := make([]NodeID, 1, 1+len(root.childIDs))
	ids[0] = root.id
	if len(root.childIDs) == 0 {
		return ids
	}
	locate := t.locator()
	for i := 0; i < len(ids); i++ {
		j, ok := locate(ids[i])
		if !ok {
			t.fatalf("arbor: node %s listed as a child but missing from arena", ids[i])
		}
		ids = append(ids, t.arena[j].childIDs...)
	}
	return ids
}

// walk visits the subtree rooted at idx depth first using an explicit stack.
func (t *Tree) walk(locate func(NodeID) (int, bool), idx int, fn func(n *Node, depth int) bool) {
	type frame struct {
		idx   int
		depth int
	}
	stack := []frame{{idx: idx}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.arena[f.idx]
		if !fn(n, f.depth) {
			continue
		}
		// Push in reverse so that the first child is visited first.
		for i := len(n.childIDs) - 1; i >= 0; i-- {
			j, ok := locate(n.childIDs[i])
			if !ok {
				t.fatalf("arbor: child %s of %s missing from arena", n.childIDs[i], n.id)
			}
			stack = append(stack, frame{idx: j, depth: f.depth + 1})
		}
	}
}

func (n *Node) clone() Node {
	c := *n
	c.childIDs = slices.Clone(n.childIDs)
	return c
}

// withoutID returns a new slice holding ids minus every occurrence of id. A
// fresh slice is allocated so that Arena snapshots sharing the old backing
// array are unaffected. An empty result is nil.
func withoutID(ids []NodeID, id NodeID) []NodeID {
	var out []NodeID
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
