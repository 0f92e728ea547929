// Copyright 2026 The Arbor Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package script implements a small line-oriented language for driving an
// arbor.Tree, used by the arbor replay tool.
//
// Each non-blank line holds one command; text following a '#' is ignored.
//
//	add [<count>]      create count (default 1) root nodes
//	insert <parent>    create a child of parent
//	remove <id>        remove id and its subtree
//	index <id>         print the arena index of id
//	get <id>           print the node id
//	print              print the forest
//	arena              print the arena as a table
//	metrics            print the tree's counters
//	check              verify the tree's invariants
//
// Failures of tree operations (such as an unknown id) are reported in the
// output and do not stop execution; malformed commands are parse errors.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/arbor"
	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
)

// Op is a script command.
type Op uint8

// The script commands.
const (
	OpAdd Op = iota
	OpInsert
	OpRemove
	OpIndex
	OpGet
	OpPrint
	OpArena
	OpMetrics
	OpCheck
	numOps
)

var opNames = [numOps]string{
	OpAdd:     "add",
	OpInsert:  "insert",
	OpRemove:  "remove",
	OpIndex:   "index",
	OpGet:     "get",
	OpPrint:   "print",
	OpArena:   "arena",
	OpMetrics: "metrics",
	OpCheck:   "check",
}

func (o Op) String() string {
	if o < numOps {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// takesID reports whether the op requires a node id argument.
func (o Op) takesID() bool {
	switch o {
	case OpInsert, OpRemove, OpIndex, OpGet:
		return true
	}
	return false
}

// Command is a single parsed script line.
type Command struct {
	Op Op
	// ID is the node argument of insert, remove, index and get.
	ID arbor.NodeID
	// Count is the number of nodes created by add.
	Count int
	// Line is the 1-based line number the command was parsed from.
	Line int
}

func (c Command) String() string {
	switch {
	case c.Op.takesID():
		return fmt.Sprintf("%s %s", c.Op, c.ID)
	case c.Op == OpAdd && c.Count != 1:
		return fmt.Sprintf("%s %d", c.Op, c.Count)
	default:
		return c.Op.String()
	}
}

// Parse reads a script.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := s.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseCommand(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	return cmds, nil
}

func parseCommand(fields []string) (Command, error) {
	op, ok := lookupOp(fields[0])
	if !ok {
		return Command{}, errors.Newf("unknown command %q", fields[0])
	}
	args := fields[1:]
	cmd := Command{Op: op}
	switch {
	case op.takesID():
		if len(args) != 1 {
			return Command{}, errors.Newf("%s takes exactly one node id", op)
		}
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return Command{}, errors.Wrapf(err, "%s: invalid node id %q", op, args[0])
		}
		cmd.ID = arbor.NodeID(v)
	case op == OpAdd:
		cmd.Count = 1
		if len(args) > 1 {
			return Command{}, errors.Newf("add takes at most one count")
		}
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return Command{}, errors.Newf("add: invalid count %q", args[0])
			}
			cmd.Count = v
		}
	default:
		if len(args) != 0 {
			return Command{}, errors.Newf("%s takes no arguments", op)
		}
	}
	return cmd, nil
}

func lookupOp(name string) (Op, bool) {
	for i, n := range opNames {
		if n == name {
			return Op(i), true
		}
	}
	return 0, false
}

// Run executes the commands against tree, writing each command followed by
// its output to w. It returns an error only if writing to w fails.
func Run(tree *arbor.Tree, cmds []Command, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, cmd := range cmds {
		fmt.Fprintf(bw, "> %s\n", cmd)
		exec(tree, cmd, bw)
	}
	return errors.Wrap(bw.Flush(), "writing output")
}

func exec(tree *arbor.Tree, cmd Command, w io.Writer) {
	switch cmd.Op {
	case OpAdd:
		for i := 0; i < cmd.Count; i++ {
			fmt.Fprintln(w, tree.Add())
		}
	case OpInsert:
		id, err := tree.Insert(cmd.ID)
		if err != nil {
			fmt.Fprintf(w, "error: %s\n", err)
			return
		}
		fmt.Fprintln(w, id)
	case OpRemove:
		removed, err := tree.Remove(cmd.ID)
		if err != nil {
			fmt.Fprintf(w, "error: %s\n", err)
			return
		}
		fmt.Fprintf(w, "removed %s\n", formatIDs(removed))
	case OpIndex:
		idx, err := tree.Index(cmd.ID)
		if err != nil {
			fmt.Fprintf(w, "error: %s\n", err)
			return
		}
		fmt.Fprintln(w, idx)
	case OpGet:
		n, ok := tree.Get(cmd.ID)
		if !ok {
			fmt.Fprintln(w, "not found")
			return
		}
		fmt.Fprintln(w, n)
	case OpPrint:
		fmt.Fprint(w, tree)
	case OpArena:
		WriteArenaTable(w, tree.Arena())
	case OpMetrics:
		fmt.Fprint(w, tree.Metrics())
	case OpCheck:
		if err := tree.CheckInvariants(); err != nil {
			fmt.Fprintf(w, "error: %s\n", err)
			return
		}
		fmt.Fprintln(w, "ok")
	}
}

// WriteArenaTable renders nodes as a table of index, id, parent and children.
func WriteArenaTable(w io.Writer, nodes []arbor.Node) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"index", "id", "parent", "children"})
	tbl.SetAutoFormatHeaders(false)
	for i, n := range nodes {
		parent := "-"
		if p, ok := n.ParentID(); ok {
			parent = p.String()
		}
		tbl.Append([]string{strconv.Itoa(i), n.ID().String(), parent, formatIDs(n.ChildIDs())})
	}
	tbl.Render()
}

func formatIDs(ids []arbor.NodeID) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}
