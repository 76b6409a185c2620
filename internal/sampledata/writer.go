package sampledata

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/rrdash/internal/domain/model"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WriteCSV writes events with a header row in column order.
func WriteCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(model.Columns))
	for i, col := range model.Columns {
		header[i] = col.String()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: header: %w", ErrWrite, err)
	}
	record := make([]string, len(model.Columns))
	for _, e := range events {
		for i, col := range model.Columns {
			record[i] = e.Value(col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteSQLite creates table in the database at path and inserts events in
// one transaction. An existing table of that name is replaced.
func WriteSQLite(ctx context.Context, path, table string, events []model.Event) (err error) {
	if !identRE.MatchString(table) {
		return fmt.Errorf("%w: table name %q", ErrInvalidConfig, table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrWrite, path, err)
	}
	defer func() { _ = db.Close() }()

	cols := make([]string, len(model.Columns))
	defs := make([]string, len(model.Columns))
	marks := make([]string, len(model.Columns))
	for i, col := range model.Columns {
		cols[i] = `"` + col.String() + `"`
		typ := "TEXT"
		if col.Numeric() {
			typ = "REAL"
		}
		defs[i] = cols[i] + " " + typ
		marks[i] = "?"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmts := []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, table),
		fmt.Sprintf(`CREATE TABLE "%s" (%s)`, table, strings.Join(defs, ", ")),
	}
	for _, s := range stmts {
		if _, err = tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	insert, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`,
		table, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("%w: prepare: %w", ErrWrite, err)
	}
	defer func() { _ = insert.Close() }()

	args := make([]any, len(model.Columns))
	for _, e := range events {
		for i, col := range model.Columns {
			if n, ok := e.Number(col); ok {
				args[i] = n
				continue
			}
			args[i] = e.Value(col)
		}
		if _, err = insert.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("%w: insert: %w", ErrWrite, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrWrite, err)
	}
	return nil
}
