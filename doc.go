// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arbor provides an arena-backed hierarchy of nodes.
//
// A Tree owns every node by value in a single ordered slice (the arena) and
// hands out NodeIDs that stay valid for the lifetime of the node they name.
// IDs are allocated from a monotonic counter starting at 1 and are never
// reused, not even after the node they named has been removed. A node's
// position within the arena (its index) is a storage artifact: removing a node
// shifts the index of every node that follows it.
//
// Nodes are created with [Tree.Add] (a root) or [Tree.Insert] (a child of an
// existing node). [Tree.Remove] deletes a node together with its entire
// descendant subtree and reports the removed ids, target first.
//
// A Tree is not safe for concurrent use. Callers sharing a Tree across
// goroutines must serialize access themselves; package syncarbor provides a
// mutex-guarded wrapper for that purpose.
//
// Payloads that an embedding component tree wants to associate with a node
// (styles, components, text) belong in a side table keyed by NodeID; see
// package sidetable.
package arbor
