// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"github.com/cockroachdb/arbor/internal/base"
	"github.com/prometheus/client_golang/prometheus"
)

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
var DefaultLogger = base.DefaultLogger

// NoopLogger discards all log messages.
type NoopLogger = base.NoopLogger

// Options holds the optional parameters for configuring a Tree. The zero
// value (or a nil *Options) is a valid configuration.
type Options struct {
	// Logger used to write log messages. The tree reports internal
	// corruption (a child or parent id with no node in the arena) through
	// Logger.Fatalf before panicking. Events are not logged unless the
	// EventListener does so, see MakeLoggingEventListener.
	//
	// The default logger uses the Go standard library log package.
	Logger Logger

	// EventListener provides hooks for observing node creation and subtree
	// removal. Callbacks run synchronously, after the operation has been
	// fully applied.
	EventListener *EventListener

	// IndexByID maintains an id to index map alongside the arena, making
	// Index, Get, Insert and Remove lookups O(1) instead of a linear scan.
	// Removal still compacts the arena, and indexes of the nodes following the
	// removed ones still shift.
	IndexByID bool

	// InitialCapacity is the number of nodes the arena is sized for up front.
	InitialCapacity int

	// Metrics holds optional metric sinks updated by the tree.
	Metrics MetricsOptions
}

// MetricsOptions holds the optional metric sinks of a Tree.
type MetricsOptions struct {
	// RemovedSubtreeSize, if non-nil, observes the number of nodes removed by
	// each successful call to Remove.
	RemovedSubtreeSize prometheus.Histogram
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger
	}
	if o.EventListener == nil {
		o.EventListener = &EventListener{}
	}
	o.EventListener.EnsureDefaults()
	if o.InitialCapacity < 0 {
		o.InitialCapacity = 0
	}
	return o
}

// Clone creates a shallow copy of the options.
func (o *Options) Clone() *Options {
	n := &Options{}
	if o != nil {
		*n = *o
		if o.EventListener != nil {
			l := *o.EventListener
			n.EventListener = &l
		}
	}
	return n
}
