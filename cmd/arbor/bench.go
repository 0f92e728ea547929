// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var benchConfig struct {
	concurrency int
	ops         int
	maxNodes    int
	seed        uint64
	rate        float64
	plot        bool
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "run a random tree workload and report operation latencies",
	Long: `
Run a random mix of add, insert, remove and index operations. Each worker
drives its own tree and verifies its invariants once it is done. Latencies
are reported per operation.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(cmd.Context(), cmd.OutOrStdout())
	},
}

// plotSamples is the number of tree size samples taken for --plot.
const plotSamples = 200

func runBench(ctx context.Context, out io.Writer) error {
	cfg := benchConfig
	if cfg.concurrency < 1 {
		return errors.Newf("invalid concurrency %d", cfg.concurrency)
	}
	if cfg.maxNodes < 1 {
		return errors.Newf("invalid max nodes %d", cfg.maxNodes)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	workers := make([]*worker, cfg.concurrency)
	for i := range workers {
		wcfg := workloadConfig{
			ops:      cfg.ops,
			maxNodes: cfg.maxNodes,
			seed:     cfg.seed + uint64(i),
			rate:     cfg.rate / float64(cfg.concurrency),
		}
		if i == 0 && cfg.plot && cfg.ops >= plotSamples {
			wcfg.sampleEvery = cfg.ops / plotSamples
		}
		workers[i] = newWorker(wcfg, treeOptions())
	}

	start := crtime.NowMono()
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		i, w := i, w
		g.Go(func() error {
			return errors.Wrapf(w.run(ctx.Done()), "worker %d", i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := start.Elapsed()

	total := newOpHistograms()
	for _, w := range workers {
		total.merge(w.hist)
	}
	fmt.Fprintf(out, "%d workers, %d ops each, %s\n", cfg.concurrency, cfg.ops, elapsed)
	total.write(out, elapsed)

	if cfg.plot && len(workers[0].samples) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(workers[0].samples,
			asciigraph.Height(10),
			asciigraph.Caption("worker 0 tree size")))
	}
	return nil
}
