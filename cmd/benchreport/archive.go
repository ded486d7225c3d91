// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/benchreport/benchreport"
	"golang.org/x/benchreport/benchsave"
	"golang.org/x/benchreport/internal/texttab"
)

func (a *app) archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Keep saves in a SQL archive",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add file...",
			Short: "Add saves to the archive",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := a.openArchive()
				if err != nil {
					return err
				}
				for _, file := range args {
					s, err := benchsave.LoadFile(a.fs, file)
					if err != nil {
						return err
					}
					id, err := db.InsertSave(cmd.Context(), file, s)
					if err != nil {
						return fmt.Errorf("archiving %s: %w", file, err)
					}
					fmt.Fprintf(a.out, "%d %s\n", id, file)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the archived saves",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := a.openArchive()
				if err != nil {
					return err
				}
				saves, err := db.ListSaves(cmd.Context())
				if err != nil {
					return err
				}
				var t texttab.Table
				t.Row().Cell("ID", texttab.Right).Cell("Name").Cell("Machine").Cell("Benchmarks", texttab.Right)
				for i, s := range saves {
					if i == 0 {
						t.Rule()
					} else {
						t.Row()
					}
					machine := "-"
					if m := s.Machine; m != nil {
						machine = fmt.Sprintf("%s %s on %s", m.Implementation, m.Version, m.System)
					}
					t.Cell(strconv.FormatInt(s.ID, 10), texttab.Right).Cell(s.Name).Cell(machine).Cell(strconv.Itoa(s.Benchmarks), texttab.Right)
				}
				return t.Format(a.out)
			},
		},
		&cobra.Command{
			Use:   "show id",
			Short: "Print the text tables of an archived save",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				db, err := a.openArchive()
				if err != nil {
					return err
				}
				s, err := db.LoadSave(cmd.Context(), id)
				if err != nil {
					return err
				}
				b, err := a.batch()
				if err != nil {
					return err
				}
				groups, _, err := b.GroupSave(args[0], s)
				if err != nil {
					return err
				}
				return benchreport.WriteText(a.out, groups)
			},
		},
		&cobra.Command{
			Use:   "delete id",
			Short: "Remove a save from the archive",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				db, err := a.openArchive()
				if err != nil {
					return err
				}
				return db.DeleteSave(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad save ID %q", s)
	}
	return id, nil
}
