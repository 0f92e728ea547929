// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package syncarbor wraps an arbor.Tree behind a single mutex so that it can
// be shared between goroutines. Every method holds the lock for the duration
// of the underlying operation; Do runs several operations as one critical
// section.
package syncarbor

import (
	"sync"

	"github.com/cockroachdb/arbor"
)

// Tree is an arbor.Tree guarded by a mutex.
type Tree struct {
	mu struct {
		sync.Mutex
		tree *arbor.Tree
	}
}

// New returns an empty Tree configured with the given options. Event
// listeners installed through opts run with the lock held and must not call
// back into the Tree.
func New(opts *arbor.Options) *Tree {
	t := &Tree{}
	t.mu.tree = arbor.New(opts)
	return t
}

// Do calls fn with exclusive access to the underlying tree. Node ids and
// arena indexes observed inside fn are consistent with each other only until
// fn returns. fn must not retain the tree.
func (t *Tree) Do(fn func(tree *arbor.Tree) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.mu.tree)
}

// Add is like arbor.Tree.Add.
func (t *Tree) Add() arbor.NodeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Add()
}

// Insert is like arbor.Tree.Insert.
func (t *Tree) Insert(parent arbor.NodeID) (arbor.NodeID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Insert(parent)
}

// Remove is like arbor.Tree.Remove.
func (t *Tree) Remove(id arbor.NodeID) ([]arbor.NodeID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Remove(id)
}

// Index is like arbor.Tree.Index. The returned index may be stale as soon as
// the lock is released; use Do to act on it.
func (t *Tree) Index(id arbor.NodeID) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Index(id)
}

// Get is like arbor.Tree.Get.
func (t *Tree) Get(id arbor.NodeID) (arbor.Node, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Get(id)
}

// Arena is like arbor.Tree.Arena.
func (t *Tree) Arena() []arbor.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Arena()
}

// Len is like arbor.Tree.Len.
func (t *Tree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Len()
}

// Metrics is like arbor.Tree.Metrics.
func (t *Tree) Metrics() arbor.Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.Metrics()
}

// String is like arbor.Tree.String.
func (t *Tree) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mu.tree.String()
}
