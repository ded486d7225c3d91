// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/benchreport/archive"
	"golang.org/x/benchreport/benchreport"
	"golang.org/x/benchreport/benchsource"
)

// An app holds the state shared by the commands of one invocation.
type app struct {
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
	v      *viper.Viper
	log    *logrus.Logger

	// db is opened by the first archive command.
	db *archive.DB
}

func newApp(fs afero.Fs, out, errOut io.Writer) *app {
	log := logrus.New()
	log.SetOutput(errOut)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &app{fs: fs, out: out, errOut: errOut, v: viper.New(), log: log}
}

func (a *app) execute(args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.ExecuteContext(context.Background())
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "benchreport",
		Short:             "Report on saved benchmark results",
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.initConfig() },
	}

	addSettings(root.PersistentFlags())
	a.v.BindPFlags(root.PersistentFlags())

	root.AddCommand(
		a.tableCmd(),
		a.htmlCmd(),
		a.dirCmd(),
		a.dirHTMLCmd(),
		a.catalogCmd(),
		a.archiveCmd(),
	)
	return root
}

// addSettings defines the flags shared by every command. Each flag
// names a setting that can also come from the config file or the
// environment.
func addSettings(f *pflag.FlagSet) {
	f.String("config", "", "read settings from `file` (YAML, JSON or TOML)")
	f.String("catalog", "", "label benchmarks using the catalog in `file`")
	f.String("link-base", "", "link benchmarks to their sources below `url`")
	f.Bool("charts", false, "add a chart of relative scores to each HTML group")
	f.String("archive-driver", "sqlite3", "SQL `driver` of the archive (sqlite3 or mysql)")
	f.String("archive-dsn", "benchreport.db", "data source `name` of the archive")
	f.String("log-level", "info", "log messages at or above `level`")
}

// initConfig reads the config file and environment, then applies the
// log level.
func (a *app) initConfig() error {
	a.v.SetFs(a.fs)
	a.v.SetEnvPrefix("BENCHREPORT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		a.log.WithField("file", file).Debug("using config file")
	}

	level, err := logrus.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	return nil
}

// resolver returns the configured catalog, or names benchmarks by
// their identifiers if there is none.
func (a *app) resolver() (benchsource.Resolver, error) {
	name := a.v.GetString("catalog")
	if name == "" {
		return benchsource.NameResolver{}, nil
	}
	c, err := benchsource.LoadCatalog(a.fs, name)
	if err != nil {
		return nil, err
	}
	a.log.WithField("catalog", name).Debug("loaded catalog")
	return c, nil
}

func (a *app) batch() (*benchreport.Batch, error) {
	r, err := a.resolver()
	if err != nil {
		return nil, err
	}
	return &benchreport.Batch{
		FS:       a.fs,
		Resolver: r,
		Options: benchreport.DocOptions{
			LinkBase: a.v.GetString("link-base"),
			Charts:   a.v.GetBool("charts"),
		},
		Log: a.log,
	}, nil
}

func (a *app) openArchive() (*archive.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	driver, dsn := a.v.GetString("archive-driver"), a.v.GetString("archive-dsn")
	db, err := archive.OpenSQL(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s archive: %w", driver, err)
	}
	a.log.WithFields(logrus.Fields{"driver": driver, "dsn": dsn}).Debug("opened archive")
	a.db = db
	return db, nil
}
