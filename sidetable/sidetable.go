// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sidetable associates caller-defined payloads with the nodes of an
// arbor.Tree. The tree itself only tracks identity and hierarchy; anything a
// component or render tree wants to hang off a node (a style, a component, a
// text run) lives in a Table keyed by the node's id.
//
// A Table bound to a tree drops the entries of every node removed from it, so
// a payload never outlives its node and a stale id never resolves to a
// payload:
//
//	tbl := sidetable.New[sidetable.Payload]()
//	l := tbl.EventListener()
//	tree := arbor.New(&arbor.Options{EventListener: &l})
//	tbl.Bind(tree)
package sidetable

import (
	"github.com/cockroachdb/arbor"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// ErrUnbound is returned by Set on a table that has not been bound to a tree.
var ErrUnbound = errors.New("sidetable: table is not bound to a tree")

// Table maps node ids to payloads of type V.
//
// Like the tree it is bound to, a Table is not safe for concurrent use.
type Table[V any] struct {
	tree *arbor.Tree
	m    swiss.Map[arbor.NodeID, V]
}

// New returns an empty, unbound Table.
func New[V any]() *Table[V] {
	t := &Table[V]{}
	t.m.Init(0)
	return t
}

// EventListener returns an EventListener that drops the payloads of removed
// subtrees. It must be installed on the tree passed to Bind, directly or
// through arbor.TeeEventListener.
func (t *Table[V]) EventListener() arbor.EventListener {
	return arbor.EventListener{
		SubtreeRemoved: func(info arbor.SubtreeRemovedInfo) {
			t.Forget(info.Removed...)
		},
	}
}

// Bind sets the tree whose nodes the table's keys refer to. Binding a table
// to a different tree discards its entries.
func (t *Table[V]) Bind(tree *arbor.Tree) {
	if t.tree != tree && t.m.Len() > 0 {
		t.m = swiss.Map[arbor.NodeID, V]{}
		t.m.Init(0)
	}
	t.tree = tree
}

// Set associates v with id, replacing any previous payload. It returns an
// error wrapping arbor.ErrInvalidNodeID if the bound tree does not contain id.
func (t *Table[V]) Set(id arbor.NodeID, v V) error {
	if t.tree == nil {
		return ErrUnbound
	}
	if !t.tree.Contains(id) {
		return errors.Wrapf(arbor.ErrInvalidNodeID, "sidetable: set %s", id)
	}
	t.m.Put(id, v)
	return nil
}

// Get returns the payload associated with id.
func (t *Table[V]) Get(id arbor.NodeID) (V, bool) {
	return t.m.Get(id)
}

// Delete drops the payload associated with id, if any, and reports whether
// there was one.
func (t *Table[V]) Delete(id arbor.NodeID) bool {
	if _, ok := t.m.Get(id); !ok {
		return false
	}
	t.m.Delete(id)
	return true
}

// Forget drops the payloads of all the given ids.
func (t *Table[V]) Forget(ids ...arbor.NodeID) {
	for _, id := range ids {
		t.m.Delete(id)
	}
}

// Len returns the number of payloads in the table.
func (t *Table[V]) Len() int {
	return t.m.Len()
}

// All calls fn for every entry in the table, in the arena order of the bound
// tree, until fn returns false.
func (t *Table[V]) All(fn func(id arbor.NodeID, v V) bool) {
	if t.tree == nil {
		return
	}
	for _, n := range t.tree.Arena() {
		if v, ok := t.m.Get(n.ID()); ok {
			if !fn(n.ID(), v) {
				return
			}
		}
	}
}
