package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/rrdash/internal/domain/dataset"
	"github.com/okian/rrdash/internal/domain/model"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads events from table in the SQLite database at path. The
// table must have the same seven columns as the CSV header.
func LoadSQLite(ctx context.Context, path, table string, opts ...Option) (*dataset.Dataset, error) {
	l := newLoader(append([]Option{WithSource(path)}, opts...))
	if table == "" {
		table = l.table
	}
	return l.sqlite(ctx, path, table)
}

func (l *loader) sqlite(ctx context.Context, path, table string) (*dataset.Dataset, error) {
	if !identRE.MatchString(table) {
		return nil, loadError(l.source, 0, "bad table name "+strconv.Quote(table), ErrMalformed, nil)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, loadError(l.source, 0, "source missing", ErrSourceMissing, err)
	}

	db, err := sql.Open("sqlite", "file:"+filepath.Clean(path)+"?mode=ro")
	if err != nil {
		return nil, loadError(l.source, 0, "open sqlite", ErrMalformed, err)
	}
	defer func() { _ = db.Close() }()

	names, err := l.sqliteColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(model.Columns))
	for i, col := range model.Columns {
		quoted[i] = `"` + names[col] + `"`
	}
	query := fmt.Sprintf(`SELECT %s FROM "%s" ORDER BY rowid`, strings.Join(quoted, ", "), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, loadError(l.source, 0, "query "+table, ErrMalformed, err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]model.Event, 0)
	raw := make([]any, len(model.Columns))
	dest := make([]any, len(model.Columns))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for line := 1; rows.Next(); line++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, loadError(l.source, line, "scan row", ErrMalformed, err)
		}
		values := make(map[model.Column]string, len(model.Columns))
		for i, col := range model.Columns {
			values[col] = sqlText(raw[i])
		}
		e, err := l.event(values, line)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, loadError(l.source, 0, "read rows", ErrMalformed, err)
	}
	return dataset.New(events), nil
}

// sqliteColumns resolves each required column to its name in table.
func (l *loader) sqliteColumns(ctx context.Context, db *sql.DB, table string) (map[model.Column]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" LIMIT 0`, table))
	if err != nil {
		return nil, loadError(l.source, 0, "read table "+table, ErrMalformed, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, loadError(l.source, 0, "read table "+table, ErrMalformed, err)
	}
	names := make(map[model.Column]string, len(model.Columns))
	for _, name := range cols {
		if col, ok := model.ParseColumn(name); ok {
			if _, dup := names[col]; !dup {
				names[col] = name
			}
		}
	}
	if missing := missingColumns(names); len(missing) > 0 {
		return nil, loadError(l.source, 0, "missing required columns",
			ErrMissingColumns, fmt.Errorf("%s", strings.Join(missing, ", ")))
	}
	return names, nil
}

// sqlText renders a scanned SQLite value the way it would appear in a CSV cell.
func sqlText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		// DATE and DATETIME columns come back as time.Time.
		return x.Format(model.DateLayout)
	default:
		return fmt.Sprint(x)
	}
}
