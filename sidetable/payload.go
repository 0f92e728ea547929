// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sidetable

import (
	"fmt"

	"github.com/cockroachdb/arbor"
)

// Kind tags the variant of a Payload.
type Kind uint8

const (
	// KindStyle is a style or property set attached to a node.
	KindStyle Kind = iota + 1
	// KindComponent is a component instance rendered at a node.
	KindComponent
	// KindText is a run of text content.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStyle:
		return "style"
	case KindComponent:
		return "component"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Payload is a tagged variant stored in a Table[Payload]. Implementations are
// provided by the embedding component tree; the table treats them as opaque.
type Payload interface {
	Kind() Kind
}

// CountByKind returns the number of payloads of each kind in the table.
func CountByKind(t *Table[Payload]) map[Kind]int {
	counts := make(map[Kind]int)
	t.All(func(_ arbor.NodeID, p Payload) bool {
		counts[p.Kind()]++
		return true
	})
	return counts
}
