// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/benchreport/benchreport"
)

func (a *app) tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table file",
		Short: "Print the benchmark groups of a save as text tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := a.batch()
			if err != nil {
				return err
			}
			_, groups, _, err := b.Groups(args[0])
			if err != nil {
				return err
			}
			return benchreport.WriteText(a.out, groups)
		},
	}
}

func (a *app) htmlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "html file out",
		Short: "Write the benchmark groups of a save as an HTML page",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := a.batch()
			if err != nil {
				return err
			}
			_, page, err := b.Report(args[0])
			if err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, args[1], page, 0666); err != nil {
				return err
			}
			a.log.WithField("report", args[1]).Info("wrote report")
			return nil
		},
	}
}

func (a *app) dirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir dir",
		Short: "Print the text tables of every save below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := a.batch()
			if err != nil {
				return err
			}
			return b.WriteText(a.out, args[0])
		},
	}
}

func (a *app) dirHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir-html dir outdir",
		Short: "Write an HTML page for the newest save of each directory, plus an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := a.batch()
			if err != nil {
				return err
			}
			names, err := b.WriteHTML(args[0], args[1])
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(a.out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
