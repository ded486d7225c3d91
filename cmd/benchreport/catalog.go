// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/benchreport/benchsource"
)

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog file.go...",
		Short: "Extract a catalog of benchmark descriptions from Go sources",
		Long: `Catalog extracts the types and methods declared in the given Go files,
with their doc comments and line spans, and prints them as a YAML catalog.

With --out, the catalog is written to a file instead. If the file already
holds a catalog, the extracted entries are merged into it, so entries for
other sources are kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := benchsource.Extract(a.fs, args...)
			if err != nil {
				return err
			}
			out := a.v.GetString("out")
			if out == "" {
				data, err := c.Marshal()
				if err != nil {
					return err
				}
				_, err = a.out.Write(data)
				return err
			}

			ok, err := afero.Exists(a.fs, out)
			if err != nil {
				return err
			}
			if ok {
				old, err := benchsource.LoadCatalog(a.fs, out)
				if err != nil {
					return err
				}
				old.Merge(c)
				c = old
			}
			data, err := c.Marshal()
			if err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, out, data, 0666); err != nil {
				return err
			}
			a.log.WithField("catalog", out).Infof("wrote %d benchmark(s)", len(c.IDs()))
			return nil
		},
	}
	cmd.Flags().String("out", "", "write the catalog to `file`, merging with its contents")
	a.v.BindPFlag("out", cmd.Flags().Lookup("out"))
	return cmd
}
