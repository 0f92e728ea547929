// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import "github.com/cockroachdb/redact"

// Metrics holds counters describing a Tree, as returned by Tree.Metrics.
type Metrics struct {
	// Nodes is the number of nodes currently in the tree.
	Nodes int
	// Roots is the number of nodes currently in the tree without a parent.
	Roots int
	// LastID is the most recently allocated id.
	LastID NodeID
	// Created is the number of nodes ever created.
	Created uint64
	// Removed is the number of nodes ever removed, counting descendants
	// removed along with their ancestor.
	Removed uint64
	// RemoveOps is the number of successful calls to Remove.
	RemoveOps uint64
}

// String implements fmt.Stringer.
func (m Metrics) String() string {
	return redact.StringWithoutMarkers(m)
}

// SafeFormat implements redact.SafeFormatter.
func (m Metrics) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("nodes: %d (roots %d)\n", redact.Safe(m.Nodes), redact.Safe(m.Roots))
	w.Printf("created: %d (last id %s)\n", redact.Safe(m.Created), m.LastID)
	w.Printf("removed: %d (in %d ops)\n", redact.Safe(m.Removed), redact.Safe(m.RemoveOps))
}
