// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package script

import (
	"strings"
	"testing"

	"github.com/cockroachdb/arbor"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	datadriven.RunTest(t, "testdata/script", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "run":
			cmds, err := Parse(strings.NewReader(td.Input))
			if err != nil {
				return err.Error()
			}
			var buf strings.Builder
			tree := arbor.New(&arbor.Options{IndexByID: td.HasArg("index-by-id")})
			require.NoError(t, Run(tree, cmds, &buf))
			return buf.String()
		default:
			td.Fatalf(t, "unknown command %q", td.Cmd)
			return ""
		}
	})
}

func TestArenaTable(t *testing.T) {
	tree := arbor.New(nil)
	root := tree.Add()
	_, _ = tree.Insert(root)
	var buf strings.Builder
	WriteArenaTable(&buf, tree.Arena())
	out := buf.String()
	require.Contains(t, out, "children")
	require.Contains(t, out, "[2]")
	require.Equal(t, 3+2+1, strings.Count(out, "\n"), out)
}

func TestCommandString(t *testing.T) {
	cmds, err := Parse(strings.NewReader("add\nadd 3\ninsert 1 # comment\nprint\n"))
	require.NoError(t, err)
	var strs []string
	for _, c := range cmds {
		strs = append(strs, c.String())
	}
	require.Equal(t, []string{"add", "add 3", "insert 1", "print"}, strs)
	require.Equal(t, []int{1, 2, 3, 4}, []int{cmds[0].Line, cmds[1].Line, cmds[2].Line, cmds[3].Line})
}
