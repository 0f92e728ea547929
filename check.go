// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// CheckInvariants validates the internal consistency of the tree:
//
//   - every id is non-zero, no greater than LastID, and the arena is ordered
//     by strictly increasing id;
//   - every non-root node's parent is present and precedes it in the arena;
//   - every id listed as a child names a present node whose parent is the
//     listing node, each child is listed once, in allocation order, and every
//     non-root node is listed by its parent;
//   - the id index, if enabled, maps exactly the present ids to their
//     positions.
//
// It returns nil if the tree is consistent. Trees built with the invariants
// build tag run this check after every mutation.
func (t *Tree) CheckInvariants() error {
	pos := swiss.New[NodeID, int](len(t.arena))
	var prev NodeID
	for i := range t.arena {
		n := &t.arena[i]
		if n.id == NoNode || n.id > t.lastID {
			return errors.AssertionFailedf("arbor: node at index %d has id %s outside (0, %s]", i, n.id, t.lastID)
		}
		if n.id <= prev {
			return errors.AssertionFailedf("arbor: node %s at index %d follows node %s", n.id, i, prev)
		}
		prev = n.id
		pos.Put(n.id, i)
	}

	listed := 0
	for i := range t.arena {
		n := &t.arena[i]
		if !n.IsRoot() {
			pidx, ok := pos.Get(n.parentID)
			if !ok {
				return errors.AssertionFailedf("arbor: node %s has missing parent %s", n.id, n.parentID)
			}
			if pidx >= i {
				return errors.AssertionFailedf("arbor: node %s at index %d precedes its parent %s at index %d",
					n.id, i, n.parentID, pidx)
			}
		}
		if !slices.IsSorted(n.childIDs) {
			return errors.AssertionFailedf("arbor: children of %s out of insertion order: %v", n.id, n.childIDs)
		}
		for j, c := range n.childIDs {
			if j > 0 && n.childIDs[j-1] == c {
				return errors.AssertionFailedf("arbor: node %s lists child %s twice", n.id, c)
			}
			cidx, ok := pos.Get(c)
			if !ok {
				return errors.AssertionFailedf("arbor: node %s lists missing child %s", n.id, c)
			}
			if p := t.arena[cidx].parentID; p != n.id {
				return errors.AssertionFailedf("arbor: node %s lists child %s whose parent is %s", n.id, c, p)
			}
		}
		listed += len(n.childIDs)
	}
	if roots := len(t.Roots()); listed != len(t.arena)-roots {
		return errors.AssertionFailedf("arbor: %d non-root nodes but %d child links", len(t.arena)-roots, listed)
	}

	if t.index != nil {
		if t.index.Len() != len(t.arena) {
			return errors.AssertionFailedf("arbor: index has %d entries for %d nodes", t.index.Len(), len(t.arena))
		}
		for i := range t.arena {
			if j, ok := t.index.Get(t.arena[i].id); !ok || j != i {
				return errors.AssertionFailedf("arbor: index maps %s to %d (found=%t), want %d", t.arena[i].id, j, ok, i)
			}
		}
	}
	return nil
}

// checkSubtreeSuffix verifies that the subtree collected by following child
// ids is exactly the set found by a forward scan of the arena from idx. The
// two agree as long as nodes are only ever appended.
func (t *Tree) checkSubtreeSuffix(idx int, removed []NodeID) {
	set := swiss.New[NodeID, struct{}](len(removed))
	set.Put(t.arena[idx].id, struct{}{})
	for i := idx + 1; i < len(t.arena); i++ {
		if _, ok := set.Get(t.arena[i].parentID); ok {
			set.Put(t.arena[i].id, struct{}{})
		}
	}
	if set.Len() != len(removed) {
		t.fatalf("arbor: subtree of %s has %d nodes by walk, %d by scan",
			t.arena[idx].id, len(removed), set.Len())
	}
	for _, id := range removed {
		if _, ok := set.Get(id); !ok {
			t.fatalf("arbor: node %s of subtree %s not found by scan", id, t.arena[idx].id)
		}
	}
}
