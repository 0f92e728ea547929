// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import "github.com/cockroachdb/redact"

// NodeCreatedInfo contains the info for a node creation event.
type NodeCreatedInfo struct {
	// ID of the new node.
	ID NodeID
	// ParentID is the id of the node the new node was inserted under, or
	// NoNode for nodes created by Add.
	ParentID NodeID
	// Index is the arena position of the new node at the time it was created.
	Index int
}

func (i NodeCreatedInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i NodeCreatedInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	if i.ParentID == NoNode {
		w.Printf("node %s created as root at index %d", i.ID, redact.Safe(i.Index))
		return
	}
	w.Printf("node %s created under %s at index %d", i.ID, i.ParentID, redact.Safe(i.Index))
}

// SubtreeRemovedInfo contains the info for a subtree removal event.
type SubtreeRemovedInfo struct {
	// Root is the id that was passed to Remove.
	Root NodeID
	// ParentID is the id of the surviving parent of Root, or NoNode if Root
	// was a root node.
	ParentID NodeID
	// Removed holds every removed id, Root first. It must not be retained or
	// modified by the listener.
	Removed []NodeID
}

func (i SubtreeRemovedInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i SubtreeRemovedInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("subtree %s removed (%d nodes): ", i.Root, redact.Safe(len(i.Removed)))
	formatIDs(w, i.Removed)
}

// EventListener contains a set of functions that will be invoked when various
// tree events occur.
//
// Note: the functions in EventListener must not call back into the Tree that
// triggered them with mutating operations.
type EventListener struct {
	// NodeCreated is invoked after a node has been appended to the arena by
	// Add or Insert.
	NodeCreated func(NodeCreatedInfo)

	// SubtreeRemoved is invoked after Remove has dropped a node and all of its
	// descendants from the arena.
	SubtreeRemoved func(SubtreeRemovedInfo)
}

// EnsureDefaults ensures that all event callbacks are set to non-nil values.
func (l *EventListener) EnsureDefaults() {
	if l.NodeCreated == nil {
		l.NodeCreated = func(info NodeCreatedInfo) {}
	}
	if l.SubtreeRemoved == nil {
		l.SubtreeRemoved = func(info SubtreeRemovedInfo) {}
	}
}

// MakeLoggingEventListener creates an EventListener that logs all events to the
// specified logger.
func MakeLoggingEventListener(logger Logger) EventListener {
	if logger == nil {
		logger = DefaultLogger
	}

	return EventListener{
		NodeCreated: func(info NodeCreatedInfo) {
			logger.Infof("%s", info)
		},
		SubtreeRemoved: func(info SubtreeRemovedInfo) {
			logger.Infof("%s", info)
		},
	}
}

// TeeEventListener wraps two EventListeners, forwarding all events to both.
func TeeEventListener(a, b EventListener) EventListener {
	a.EnsureDefaults()
	b.EnsureDefaults()
	return EventListener{
		NodeCreated: func(info NodeCreatedInfo) {
			a.NodeCreated(info)
			b.NodeCreated(info)
		},
		SubtreeRemoved: func(info SubtreeRemovedInfo) {
			a.SubtreeRemoved(info)
			b.SubtreeRemoved(info)
		},
	}
}
