// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// model is a straightforward reference implementation of the tree: a set of
// live ids with parent pointers and ordered children.
type model struct {
	lastID   NodeID
	parent   map[NodeID]NodeID
	children map[NodeID][]NodeID
}

func newModel() *model {
	return &model{parent: map[NodeID]NodeID{}, children: map[NodeID][]NodeID{}}
}

func (m *model) live() []NodeID {
	ids := make([]NodeID, 0, len(m.parent))
	for id := range m.parent {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *model) create(parent NodeID) NodeID {
	m.lastID++
	m.parent[m.lastID] = parent
	if parent != NoNode {
		m.children[parent] = append(m.children[parent], m.lastID)
	}
	return m.lastID
}

// remove drops id and its descendants, returning them in breadth-first order.
func (m *model) remove(id NodeID) []NodeID {
	removed := []NodeID{id}
	for i := 0; i < len(removed); i++ {
		removed = append(removed, m.children[removed[i]]...)
	}
	if p := m.parent[id]; p != NoNode {
		m.children[p] = slices.DeleteFunc(m.children[p], func(c NodeID) bool { return c == id })
	}
	for _, r := range removed {
		delete(m.parent, r)
		delete(m.children, r)
	}
	return removed
}

// arena returns the expected arena: live nodes in id order.
func (m *model) arena() []Node {
	nodes := []Node{}
	for _, id := range m.live() {
		nodes = append(nodes, MakeNode(id, m.parent[id], m.children[id]...))
	}
	return nodes
}

func TestRandomOps(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)

	lookupModes(t, func(t *testing.T, opts *Options) {
		rng := rand.New(rand.NewSource(seed))
		tree := New(opts)
		m := newModel()

		pickLive := func() NodeID {
			live := m.live()
			if len(live) == 0 {
				return NoNode
			}
			return live[rng.Intn(len(live))]
		}
		// Occasionally pick an id that is not (or no longer) present.
		pickAny := func() NodeID {
			if rng.Intn(10) == 0 {
				return NodeID(rng.Intn(int(m.lastID) + 2))
			}
			return pickLive()
		}

		for i := 0; i < 2000; i++ {
			switch op := rng.Intn(10); {
			case op < 2:
				require.Equal(t, m.create(NoNode), tree.Add())

			case op < 7:
				parent := pickAny()
				_, present := m.parent[parent]
				id, err := tree.Insert(parent)
				if !present {
					require.ErrorIs(t, err, ErrInvalidNodeID)
					break
				}
				require.NoError(t, err)
				require.Equal(t, m.create(parent), id)

			default:
				target := pickAny()
				_, present := m.parent[target]
				removed, err := tree.Remove(target)
				if !present {
					require.ErrorIs(t, err, ErrInvalidNodeID)
					break
				}
				require.NoError(t, err)
				want := m.remove(target)
				require.Equal(t, want, removed)
				for _, n := range tree.Arena() {
					for _, c := range n.ChildIDs() {
						require.NotContains(t, removed, c)
					}
				}
			}

			require.NoError(t, tree.CheckInvariants())
			require.Equal(t, m.arena(), tree.Arena())
			require.Equal(t, m.lastID, tree.LastID())
		}

		for i, n := range tree.Arena() {
			idx, err := tree.Index(n.ID())
			require.NoError(t, err)
			require.Equal(t, i, idx)
		}
	})
}
