// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/redact"
)

const indent = "  "

// String returns the forest dump of the tree: one line per node of the form
// "<id> | [<child ids>]", roots first in arena order, each followed by its
// subtree with every level indented by two more spaces than its parent. An
// empty tree renders as the empty string.
func (t *Tree) String() string {
	return redact.StringWithoutMarkers(t)
}

// SafeFormat implements redact.SafeFormatter.
func (t *Tree) SafeFormat(w redact.SafePrinter, _ rune) {
	if len(t.arena) == 0 {
		return
	}
	locate := t.locator()
	for i := range t.arena {
		if !t.arena[i].IsRoot() {
			continue
		}
		t.walk(locate, i, func(n *Node, depth int) bool {
			w.SafeString(redact.SafeString(strings.Repeat(indent, depth)))
			w.Print(n.id)
			w.SafeString(" | ")
			formatIDs(w, n.childIDs)
			w.SafeRune('\n')
			return true
		})
	}
}

// DebugArena returns one line per arena entry, in storage order, of the form
// "<index>: <node>". It is intended for tests and debugging.
func (t *Tree) DebugArena() string {
	var buf strings.Builder
	for i := range t.arena {
		fmt.Fprintf(&buf, "%d: %s\n", i, t.arena[i])
	}
	return buf.String()
}
