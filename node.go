// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"slices"
	"strconv"

	"github.com/cockroachdb/redact"
)

// NodeID identifies a node for the lifetime of the Tree that allocated it.
// IDs are allocated in strictly increasing order starting at 1 and are never
// reused. The zero value never names a node.
type NodeID uint32

// NoNode is the zero NodeID. It is never allocated, and is used as the parent
// of root nodes.
const NoNode NodeID = 0

// String implements fmt.Stringer.
func (id NodeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// SafeValue implements redact.SafeValue. Node ids carry no user data.
func (id NodeID) SafeValue() {}

var _ redact.SafeValue = NodeID(0)

// Node is a single entry of the arena. Its id and parent never change once it
// has been created; its list of children is maintained by the Tree as
// children are inserted and removed.
//
// Node values returned by the Tree are copies. Mutating the tree after
// obtaining a Node does not change the copy.
type Node struct {
	id       NodeID
	parentID NodeID
	childIDs []NodeID
}

// MakeNode constructs a Node value. It is intended for tests and for
// comparing against the contents of Tree.Arena; the Tree never accepts Node
// values as input.
func MakeNode(id NodeID, parentID NodeID, childIDs ...NodeID) Node {
	n := Node{id: id, parentID: parentID}
	if len(childIDs) > 0 {
		n.childIDs = slices.Clone(childIDs)
	}
	return n
}

// ID returns the node's identifier.
func (n Node) ID() NodeID {
	return n.id
}

// ParentID returns the id of the node's parent. The boolean is false for root
// nodes.
func (n Node) ParentID() (NodeID, bool) {
	return n.parentID, n.parentID != NoNode
}

// IsRoot returns true if the node has no parent.
func (n Node) IsRoot() bool {
	return n.parentID == NoNode
}

// ChildIDs returns the ids of the node's children in insertion order. The
// returned slice is a copy.
func (n Node) ChildIDs() []NodeID {
	return slices.Clone(n.childIDs)
}

// NumChildren returns the number of direct children of the node.
func (n Node) NumChildren() int {
	return len(n.childIDs)
}

// Equal returns true if both nodes have the same id, parent and children.
func (n Node) Equal(o Node) bool {
	return n.id == o.id && n.parentID == o.parentID && slices.Equal(n.childIDs, o.childIDs)
}

// String implements fmt.Stringer.
func (n Node) String() string {
	return redact.StringWithoutMarkers(n)
}

// SafeFormat implements redact.SafeFormatter.
func (n Node) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s", n.id)
	if !n.IsRoot() {
		w.Printf(" parent=%s", n.parentID)
	}
	w.SafeString(" | ")
	formatIDs(w, n.childIDs)
}

// formatIDs prints ids as a bracketed, comma separated list.
func formatIDs(w redact.SafePrinter, ids []NodeID) {
	w.SafeRune('[')
	for i, id := range ids {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Print(id)
	}
	w.SafeRune(']')
}
