// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

// lookupModes runs fn once with the linear scan and once with the id index.
func lookupModes(t *testing.T, fn func(t *testing.T, opts *Options)) {
	for _, indexByID := range []bool{false, true} {
		t.Run(fmt.Sprintf("index-by-id=%t", indexByID), func(t *testing.T) {
			fn(t, &Options{IndexByID: indexByID})
		})
	}
}

func formatIDList(ids []NodeID) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

func TestTreeDataDriven(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		datadriven.RunTest(t, "testdata/tree", func(t *testing.T, td *datadriven.TestData) string {
			var id int
			switch td.Cmd {
			case "reset":
				tree = New(opts)
				return ""

			case "add":
				n := 1
				td.MaybeScanArgs(t, "n", &n)
				var buf strings.Builder
				for i := 0; i < n; i++ {
					fmt.Fprintf(&buf, "%s\n", tree.Add())
				}
				return buf.String()

			case "insert":
				td.ScanArgs(t, "parent", &id)
				child, err := tree.Insert(NodeID(id))
				if err != nil {
					return err.Error()
				}
				return child.String()

			case "remove":
				td.ScanArgs(t, "id", &id)
				removed, err := tree.Remove(NodeID(id))
				if err != nil {
					return err.Error()
				}
				return "removed: " + formatIDList(removed)

			case "index":
				td.ScanArgs(t, "id", &id)
				idx, err := tree.Index(NodeID(id))
				if err != nil {
					return err.Error()
				}
				return fmt.Sprint(idx)

			case "get":
				td.ScanArgs(t, "id", &id)
				n, ok := tree.Get(NodeID(id))
				if !ok {
					return "not found"
				}
				return n.String()

			case "print":
				return tree.String()

			case "arena":
				return tree.DebugArena()

			case "metrics":
				return tree.Metrics().String()

			case "check":
				if err := tree.CheckInvariants(); err != nil {
					return err.Error()
				}
				return "ok"

			default:
				td.Fatalf(t, "unknown command %q", td.Cmd)
				return ""
			}
		})
	})
}

func TestAddSequentialIDs(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		for k := 1; k <= 100; k++ {
			id := tree.Add()
			require.Equal(t, NodeID(k), id)
		}
		for k := 1; k <= 100; k++ {
			idx, err := tree.Index(NodeID(k))
			require.NoError(t, err)
			require.Equal(t, k-1, idx)
		}
		require.Len(t, tree.Roots(), 100)
		require.NoError(t, tree.CheckInvariants())
	})
}

func TestInsert(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		id1 := tree.Add()
		id2, err := tree.Insert(id1)
		require.NoError(t, err)
		require.Equal(t, NodeID(2), id2)

		parent, ok := tree.Get(id1)
		require.True(t, ok)
		require.Equal(t, []NodeID{id2}, parent.ChildIDs())
		require.True(t, parent.IsRoot())

		child, ok := tree.Get(id2)
		require.True(t, ok)
		p, ok := child.ParentID()
		require.True(t, ok)
		require.Equal(t, id1, p)

		// Every insert returns LastID+1 and appends to the parent's children.
		for i := 0; i < 10; i++ {
			want := tree.LastID() + 1
			id, err := tree.Insert(id1)
			require.NoError(t, err)
			require.Equal(t, want, id)
			parent, _ := tree.Get(id1)
			children := parent.ChildIDs()
			require.Equal(t, id, children[len(children)-1])
		}
	})
}

func TestInvalidNodeIDLeavesTreeUnchanged(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		a := tree.Add()
		b, _ := tree.Insert(a)
		_, _ = tree.Insert(b)
		_, _ = tree.Remove(b)

		before := tree.Arena()
		lastID := tree.LastID()
		for _, id := range []NodeID{NoNode, b, b + 1, 999, 1 << 31} {
			_, err := tree.Insert(id)
			require.True(t, errors.Is(err, ErrInvalidNodeID), "insert %s: %v", id, err)
			_, err = tree.Remove(id)
			require.True(t, errors.Is(err, ErrInvalidNodeID), "remove %s: %v", id, err)
			_, err = tree.Index(id)
			require.True(t, errors.Is(err, ErrInvalidNodeID), "index %s: %v", id, err)
			_, ok := tree.Get(id)
			require.False(t, ok)
			require.False(t, tree.Contains(id))
		}
		if diff := pretty.Diff(before, tree.Arena()); diff != nil {
			t.Fatalf("arena changed by failed operations:\n%s", strings.Join(diff, "\n"))
		}
		require.Equal(t, lastID, tree.LastID())
	})
}

func TestRemoveIndexShift(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		r1 := tree.Add()
		r2 := tree.Add()
		c1, _ := tree.Insert(r2)
		c2, _ := tree.Insert(c1)
		r3 := tree.Add()
		c3, _ := tree.Insert(r3)
		c4, _ := tree.Insert(r2)

		before := map[NodeID]int{}
		for i, n := range tree.Arena() {
			before[n.ID()] = i
		}
		removed, err := tree.Remove(c1)
		require.NoError(t, err)
		require.Equal(t, []NodeID{c1, c2}, removed)

		removedIdx := map[int]bool{before[c1]: true, before[c2]: true}
		for _, id := range []NodeID{r1, r2, r3, c3, c4} {
			shift := 0
			for i := range removedIdx {
				if i < before[id] {
					shift++
				}
			}
			idx, err := tree.Index(id)
			require.NoError(t, err)
			require.Equal(t, before[id]-shift, idx, "node %s", id)
		}
		require.NoError(t, tree.CheckInvariants())
	})
}

func TestIDsNeverReused(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		seen := map[NodeID]bool{}
		record := func(id NodeID) {
			require.False(t, seen[id], "id %s reused", id)
			seen[id] = true
		}
		for round := 0; round < 5; round++ {
			root := tree.Add()
			record(root)
			for i := 0; i < 3; i++ {
				id, err := tree.Insert(root)
				require.NoError(t, err)
				record(id)
			}
			_, err := tree.Remove(root)
			require.NoError(t, err)
			require.Zero(t, tree.Len())
		}
		require.Equal(t, NodeID(20), tree.LastID())
	})
}

func TestArenaSnapshot(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		root := tree.Add()
		a, _ := tree.Insert(root)
		snap := tree.Arena()
		want := []Node{MakeNode(root, NoNode, a), MakeNode(a, root)}
		require.Equal(t, want, snap)

		b, _ := tree.Insert(root)
		_, err := tree.Remove(a)
		require.NoError(t, err)
		require.Equal(t, want, snap)
		require.Equal(t, []Node{MakeNode(root, NoNode, b), MakeNode(b, root)}, tree.Arena())

		// Nodes returned by Get do not alias the tree.
		n, _ := tree.Get(root)
		_, _ = tree.Insert(root)
		require.Equal(t, []NodeID{b}, n.ChildIDs())
	})
}

func TestArenaEmpty(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		require.Equal(t, []Node{}, tree.Arena())

		root := tree.Add()
		_, _ = tree.Insert(root)
		_, err := tree.Remove(root)
		require.NoError(t, err)
		require.Equal(t, []Node{}, tree.Arena())
	})
}

func TestRemoveBreadthFirstOrder(t *testing.T) {
	lookupModes(t, func(t *testing.T, opts *Options) {
		tree := New(opts)
		root := tree.Add()        // 1
		a, _ := tree.Insert(root) // 2
		aa, _ := tree.Insert(a)   // 3
		b, _ := tree.Insert(root) // 4
		_, _ = tree.Insert(aa)    // 5
		_, _ = tree.Insert(b)     // 6

		// Descendants are listed level by level, not in arena order.
		removed, err := tree.Remove(root)
		require.NoError(t, err)
		require.Equal(t, []NodeID{1, 2, 4, 3, 6, 5}, removed)
	})
}

func TestWalk(t *testing.T) {
	tree := New(nil)
	root := tree.Add()
	a, _ := tree.Insert(root)
	b, _ := tree.Insert(root)
	_, _ = tree.Insert(a)
	_, _ = tree.Insert(b)
	_, _ = tree.Insert(a)

	var visited []string
	require.NoError(t, tree.Walk(root, func(n Node, depth int) bool {
		visited = append(visited, fmt.Sprintf("%d:%s", depth, n.ID()))
		return true
	}))
	require.Equal(t, []string{"0:1", "1:2", "2:4", "2:6", "1:3", "2:5"}, visited)

	// Returning false prunes the subtree.
	visited = visited[:0]
	require.NoError(t, tree.Walk(root, func(n Node, depth int) bool {
		visited = append(visited, n.ID().String())
		return n.ID() != a
	}))
	require.Equal(t, []string{"1", "2", "3", "5"}, visited)

	err := tree.Walk(99, func(Node, int) bool { return true })
	require.True(t, errors.Is(err, ErrInvalidNodeID))
}

func TestNodeFormat(t *testing.T) {
	require.Equal(t, "1 | []", MakeNode(1, NoNode).String())
	require.Equal(t, "3 parent=1 | [4, 5]", MakeNode(3, 1, 4, 5).String())
	require.Equal(t, "7", fmt.Sprint(NodeID(7)))
}

func TestErrorMessage(t *testing.T) {
	tree := New(nil)
	_, err := tree.Insert(42)
	require.EqualError(t, err, "insert under 42: arbor: invalid node id")
	// Ids are safe to include in redacted reports.
	require.Equal(t, redact.RedactableString("42"), redact.Sprint(NodeID(42)).Redact())
}
