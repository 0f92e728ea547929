// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/olekukonko/tablewriter"
)

const (
	minLatency = 10 * time.Nanosecond
	maxLatency = 10 * time.Second
)

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 2)
}

// opHistograms records the latency of each kind of operation performed by a
// single worker. It is not safe for concurrent use; workers merge their
// histograms once they finish.
type opHistograms [numBenchOps]*hdrhistogram.Histogram

func newOpHistograms() *opHistograms {
	var h opHistograms
	for i := range h {
		h[i] = newHistogram()
	}
	return &h
}

func (h *opHistograms) record(op benchOp, elapsed time.Duration) {
	if elapsed < minLatency {
		elapsed = minLatency
	} else if elapsed > maxLatency {
		elapsed = maxLatency
	}
	if err := h[op].RecordValue(elapsed.Nanoseconds()); err != nil {
		// Note that a histogram only drops recorded values that are out of range,
		// but we clamp the latency value to the configured range to prevent such
		// drops. This code path should never happen.
		panic(fmt.Sprintf(`%s: recording value: %s`, op, err))
	}
}

func (h *opHistograms) merge(o *opHistograms) {
	for i := range h {
		h[i].Merge(o[i])
	}
}

// write renders a summary table of the recorded latencies.
func (h *opHistograms) write(w io.Writer, elapsed time.Duration) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"op", "count", "ops/sec", "mean", "p50", "p99", "p99.9", "max"})
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for op, hist := range h {
		n := hist.TotalCount()
		if n == 0 {
			continue
		}
		tbl.Append([]string{
			benchOp(op).String(),
			fmt.Sprint(n),
			fmt.Sprintf("%.0f", float64(n)/elapsed.Seconds()),
			time.Duration(hist.Mean()).String(),
			time.Duration(hist.ValueAtQuantile(50)).String(),
			time.Duration(hist.ValueAtQuantile(99)).String(),
			time.Duration(hist.ValueAtQuantile(99.9)).String(),
			time.Duration(hist.Max()).String(),
		})
	}
	tbl.Render()
}
