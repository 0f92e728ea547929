// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cockroachdb/arbor"
	"github.com/cockroachdb/arbor/internal/script"
	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var replayConfig struct {
	expected string
}

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "run a tree script and print its output",
	Long: `
Run a script of tree commands (add, insert, remove, index, get, print, arena,
metrics, check; one per line) against a fresh tree and print each command
followed by its output. With --expected, compare the output against a file
and print a unified diff on mismatch.
`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	out, err := replay(args[0], treeOptions())
	if err != nil {
		return err
	}
	if replayConfig.expected == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	want, err := os.ReadFile(replayConfig.expected)
	if err != nil {
		return err
	}
	if diff := diffOutput(replayConfig.expected, string(want), string(out)); diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), diff)
		return errors.Newf("output of %s does not match %s", args[0], replayConfig.expected)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

// replay runs the script at path against a new tree and returns its output.
func replay(path string, opts *arbor.Options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cmds, err := script.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	var buf bytes.Buffer
	if err := script.Run(arbor.New(opts), cmds, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// diffOutput returns a unified diff between the expected and actual output,
// or the empty string if they are identical.
func diffOutput(expectedName, want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: expectedName,
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("computing diff: %s\n", err)
	}
	return diff
}
