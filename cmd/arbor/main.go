// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/cockroachdb/arbor"
	"github.com/spf13/cobra"
)

var (
	indexByID bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "arbor [command] (flags)",
	Short: "arbor tree replay and benchmarking tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		replayCmd,
		benchCmd,
	)

	for _, cmd := range []*cobra.Command{replayCmd, benchCmd} {
		cmd.Flags().BoolVar(
			&indexByID, "index-by-id", false, "maintain an id to index map for O(1) lookups")
		cmd.Flags().BoolVarP(
			&verbose, "verbose", "v", false, "enable verbose event logging")
	}

	replayCmd.Flags().StringVar(
		&replayConfig.expected, "expected", "",
		"file holding the expected output; print a diff and fail on mismatch")

	benchCmd.Flags().IntVarP(
		&benchConfig.concurrency, "concurrency", "c", 1,
		"number of concurrent workers, each driving its own tree")
	benchCmd.Flags().IntVarP(
		&benchConfig.ops, "ops", "n", 100000, "number of operations per worker")
	benchCmd.Flags().IntVar(
		&benchConfig.maxNodes, "max-nodes", 10000,
		"number of nodes at which a worker only removes until below the limit")
	benchCmd.Flags().Uint64Var(
		&benchConfig.seed, "seed", 1, "random seed")
	benchCmd.Flags().Float64Var(
		&benchConfig.rate, "rate", 0,
		"maximum operations per second across all workers (0 means unlimited)")
	benchCmd.Flags().BoolVar(
		&benchConfig.plot, "plot", false, "plot the size of the first worker's tree over time")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}

func treeOptions() *arbor.Options {
	opts := &arbor.Options{IndexByID: indexByID}
	if verbose {
		l := arbor.MakeLoggingEventListener(arbor.DefaultLogger)
		opts.EventListener = &l
	}
	return opts
}
