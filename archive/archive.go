// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive stores benchmark saves in a SQL database.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/benchreport/benchsave"
)

// ErrNotFound is returned by LoadSave and DeleteSave for unknown IDs.
var ErrNotFound = errors.New("save not found")

// DB is an archive of saves backed by a SQL database.
// It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertSave      *sql.Stmt
	insertBenchmark *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Saves (
	SaveID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Name VARCHAR(1024) NOT NULL,
	HasMachine BOOLEAN NOT NULL,
	MachineImplementation VARCHAR(255),
	MachineVersion VARCHAR(255),
	MachineSystem VARCHAR(255),
	MachineRelease VARCHAR(255)
);
CREATE TABLE IF NOT EXISTS Benchmarks (
	SaveID BIGINT UNSIGNED,
	BenchmarkID BIGINT UNSIGNED,
	Name VARCHAR(1024) NOT NULL,
	Fullname VARCHAR(4096) NOT NULL,
	Params BLOB,
	Min DOUBLE NOT NULL,
	Max DOUBLE NOT NULL,
	Mean DOUBLE NOT NULL,
	StdDev DOUBLE NOT NULL,
	PRIMARY KEY (SaveID, BenchmarkID),
	FOREIGN KEY (SaveID) REFERENCES Saves(SaveID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertSave, err = db.sql.Prepare(`INSERT INTO Saves(Name, HasMachine, MachineImplementation, MachineVersion, MachineSystem, MachineRelease)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	db.insertBenchmark, err = db.sql.Prepare(`INSERT INTO Benchmarks(SaveID, BenchmarkID, Name, Fullname, Params, Min, Max, Mean, StdDev)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	return nil
}

// A SaveInfo describes an archived save.
type SaveInfo struct {
	ID int64

	// Name is the name the save was archived under, usually the
	// path of the file it was loaded from.
	Name string

	// Machine is nil if the save carries no machine information.
	Machine *benchsave.MachineInfo

	// Benchmarks is the number of benchmarks in the save.
	Benchmarks int
}

// InsertSave archives s under name and returns its ID. Either the
// whole save is stored or nothing is.
func (db *DB) InsertSave(ctx context.Context, name string, s *benchsave.Save) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var m benchsave.MachineInfo
	if s.MachineInfo != nil {
		m = *s.MachineInfo
	}
	res, err := tx.StmtContext(ctx, db.insertSave).ExecContext(ctx, name, s.MachineInfo != nil, m.Implementation, m.Version, m.System, m.Release)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stmt := tx.StmtContext(ctx, db.insertBenchmark)
	for i, b := range s.Benchmarks {
		var params []byte
		if b.Params != nil {
			if params, err = json.Marshal(b.Params); err != nil {
				return 0, fmt.Errorf("benchmark %s: %w", b.Fullname, err)
			}
		}
		if _, err = stmt.ExecContext(ctx, id, i, b.Name, b.Fullname, params, b.Stats.Min, b.Stats.Max, b.Stats.Mean, b.Stats.StdDev); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// ListSaves returns every archived save, oldest first.
func (db *DB) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT s.SaveID, s.Name, s.HasMachine, s.MachineImplementation, s.MachineVersion, s.MachineSystem, s.MachineRelease,
		(SELECT COUNT(*) FROM Benchmarks b WHERE b.SaveID = s.SaveID)
		FROM Saves s ORDER BY s.SaveID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SaveInfo
	for rows.Next() {
		var (
			info    SaveInfo
			has     bool
			machine benchsave.MachineInfo
		)
		if err := rows.Scan(&info.ID, &info.Name, &has, &machine.Implementation, &machine.Version, &machine.System, &machine.Release, &info.Benchmarks); err != nil {
			return nil, err
		}
		if has {
			info.Machine = &machine
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// LoadSave returns the save archived with the given ID, with its
// benchmarks in their original order.
func (db *DB) LoadSave(ctx context.Context, id int64) (*benchsave.Save, error) {
	var (
		has bool
		m   benchsave.MachineInfo
	)
	err := db.sql.QueryRowContext(ctx, `SELECT HasMachine, MachineImplementation, MachineVersion, MachineSystem, MachineRelease FROM Saves WHERE SaveID = ?`, id).
		Scan(&has, &m.Implementation, &m.Version, &m.System, &m.Release)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("save %d: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	s := &benchsave.Save{}
	if has {
		s.MachineInfo = &m
	}

	rows, err := db.sql.QueryContext(ctx, `SELECT Name, Fullname, Params, Min, Max, Mean, StdDev FROM Benchmarks WHERE SaveID = ? ORDER BY BenchmarkID`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			b      benchsave.Benchmark
			params []byte
		)
		if err := rows.Scan(&b.Name, &b.Fullname, &params, &b.Stats.Min, &b.Stats.Max, &b.Stats.Mean, &b.Stats.StdDev); err != nil {
			return nil, err
		}
		if params != nil {
			if err := json.Unmarshal(params, &b.Params); err != nil {
				return nil, fmt.Errorf("save %d: benchmark %s: %w", id, b.Fullname, err)
			}
		}
		s.Benchmarks = append(s.Benchmarks, b)
	}
	return s, rows.Err()
}

// DeleteSave removes the save with the given ID and its benchmarks.
func (db *DB) DeleteSave(ctx context.Context, id int64) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	// Delete benchmarks explicitly, since the database may not
	// enforce foreign keys.
	if _, err = tx.ExecContext(ctx, "DELETE FROM Benchmarks WHERE SaveID = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM Saves WHERE SaveID = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("save %d: %w", id, ErrNotFound)
	}
	return nil
}

// CountSaves returns the number of archived saves.
func (db *DB) CountSaves(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Saves").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertSave.Close(); err != nil {
		return err
	}
	if err := db.insertBenchmark.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
