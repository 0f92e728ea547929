// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"time"

	"github.com/cockroachdb/arbor"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/tokenbucket"
	"golang.org/x/exp/rand"
)

type benchOp uint8

const (
	opAdd benchOp = iota
	opInsert
	opRemove
	opLookup
	numBenchOps
)

func (o benchOp) String() string {
	switch o {
	case opAdd:
		return "add"
	case opInsert:
		return "insert"
	case opRemove:
		return "remove"
	case opLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

type workloadConfig struct {
	ops      int
	maxNodes int
	seed     uint64
	// rate is the operation rate limit for this worker; 0 means unlimited.
	rate float64
	// sampleEvery, if positive, records the tree size every sampleEvery ops.
	sampleEvery int
}

// worker drives a random mix of operations against its own tree.
type worker struct {
	cfg  workloadConfig
	rng  *rand.Rand
	tree *arbor.Tree
	hist *opHistograms

	// live holds the ids of the nodes in the tree, in no particular order;
	// pos maps each of them to its position in live.
	live []arbor.NodeID
	pos  map[arbor.NodeID]int

	limiter    tokenbucket.TokenBucket
	useLimiter bool

	samples []float64
}

func newWorker(cfg workloadConfig, opts *arbor.Options) *worker {
	w := &worker{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(cfg.seed)),
		tree: arbor.New(opts),
		hist: newOpHistograms(),
		pos:  make(map[arbor.NodeID]int),
	}
	if cfg.rate > 0 {
		w.useLimiter = true
		burst := cfg.rate / 10
		if burst < 1 {
			burst = 1
		}
		w.limiter.Init(tokenbucket.TokensPerSecond(cfg.rate), tokenbucket.Tokens(burst))
	}
	return w
}

func (w *worker) track(id arbor.NodeID) {
	w.pos[id] = len(w.live)
	w.live = append(w.live, id)
}

func (w *worker) untrack(ids []arbor.NodeID) {
	for _, id := range ids {
		i, ok := w.pos[id]
		if !ok {
			continue
		}
		last := w.live[len(w.live)-1]
		w.live[i] = last
		w.pos[last] = i
		w.live = w.live[:len(w.live)-1]
		delete(w.pos, id)
	}
}

func (w *worker) pick() arbor.NodeID {
	return w.live[w.rng.Intn(len(w.live))]
}

func (w *worker) nextOp() benchOp {
	switch {
	case len(w.live) == 0:
		return opAdd
	case len(w.live) >= w.cfg.maxNodes:
		return opRemove
	}
	switch n := w.rng.Intn(100); {
	case n < 10:
		return opAdd
	case n < 65:
		return opInsert
	case n < 80:
		return opRemove
	default:
		return opLookup
	}
}

func (w *worker) wait() {
	if !w.useLimiter {
		return
	}
	for {
		ok, d := w.limiter.TryToFulfill(1)
		if ok {
			return
		}
		time.Sleep(d)
	}
}

// run performs the configured number of operations, then verifies the tree.
func (w *worker) run(stop <-chan struct{}) error {
	for i := 0; i < w.cfg.ops; i++ {
		select {
		case <-stop:
			return nil
		default:
		}
		w.wait()
		if err := w.step(); err != nil {
			return err
		}
		if w.cfg.sampleEvery > 0 && i%w.cfg.sampleEvery == 0 {
			w.samples = append(w.samples, float64(w.tree.Len()))
		}
	}
	return w.tree.CheckInvariants()
}

func (w *worker) step() error {
	op := w.nextOp()
	start := crtime.NowMono()
	switch op {
	case opAdd:
		id := w.tree.Add()
		w.hist.record(op, start.Elapsed())
		w.track(id)

	case opInsert:
		parent := w.pick()
		start = crtime.NowMono()
		id, err := w.tree.Insert(parent)
		w.hist.record(op, start.Elapsed())
		if err != nil {
			return errors.Wrapf(err, "insert under live node %s", parent)
		}
		w.track(id)

	case opRemove:
		target := w.pick()
		start = crtime.NowMono()
		removed, err := w.tree.Remove(target)
		w.hist.record(op, start.Elapsed())
		if err != nil {
			return errors.Wrapf(err, "remove live node %s", target)
		}
		w.untrack(removed)

	case opLookup:
		id := w.pick()
		start = crtime.NowMono()
		_, err := w.tree.Index(id)
		w.hist.record(op, start.Elapsed())
		if err != nil {
			return errors.Wrapf(err, "index of live node %s", id)
		}
	}
	if len(w.live) != w.tree.Len() {
		return errors.AssertionFailedf("tracking %d live nodes, tree has %d", len(w.live), w.tree.Len())
	}
	return nil
}
