// Package store exports the cleaned survey and its category orders to SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/models"
)

// Table names.
const (
	SurveyTable     = "survey_clean"
	CategoriesTable = "category_orders"
)

// ErrNoCategories is returned when the database holds no category orders.
var ErrNoCategories = errors.New("no category orders stored")

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)

	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Export replaces the database at path with the survey and registry.
func Export(ctx context.Context, path string, t *dataset.Table, reg *categories.Registry) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove old database: %w", err)
	}

	s, err := Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.WriteSurvey(ctx, t); err != nil {
		return err
	}

	return s.WriteCategories(ctx, reg)
}

var integerColumns = func() map[string]bool {
	out := make(map[string]bool, len(models.RatingColumns))
	for _, c := range models.RatingColumns {
		out[c] = true
	}

	return out
}()

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// WriteSurvey recreates the survey table and inserts every row in one transaction.
// Ratings are stored as INTEGER, everything else as TEXT; nulls stay NULL.
func (s *Store) WriteSurvey(ctx context.Context, t *dataset.Table) error {
	cols := t.Columns()

	defs := make([]string, len(cols))
	quoted := make([]string, len(cols))

	for i, c := range cols {
		typ := "TEXT"
		if integerColumns[c] {
			typ = "INTEGER"
		}

		quoted[i] = quote(c)
		defs[i] = quoted[i] + " " + typ
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quote(SurveyTable)); err != nil {
			return fmt.Errorf("drop survey table: %w", err)
		}

		create := `CREATE TABLE ` + quote(SurveyTable) + ` (` + strings.Join(defs, ", ") + `)`
		if _, err := tx.ExecContext(ctx, create); err != nil {
			return fmt.Errorf("create survey table: %w", err)
		}

		ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO `+quote(SurveyTable)+` (`+strings.Join(quoted, ", ")+`) VALUES (`+ph+`)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < t.Len(); i++ {
			row := t.Row(i)

			args := make([]any, len(cols))
			for j, c := range cols {
				args[j] = sqliteValue(row[j], integerColumns[c])
			}

			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
		}

		return nil
	})
}

func sqliteValue(c dataset.Cell, integer bool) any {
	if c.IsNull() {
		return nil
	}

	if integer {
		if n, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
			return n
		}
	}

	return c.Value
}

// WriteCategories recreates the category order table.
func (s *Store) WriteCategories(ctx context.Context, reg *categories.Registry) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quote(CategoriesTable)); err != nil {
			return fmt.Errorf("drop categories table: %w", err)
		}

		create := `CREATE TABLE ` + quote(CategoriesTable) + ` (
			field TEXT NOT NULL,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (field, position)
		)`
		if _, err := tx.ExecContext(ctx, create); err != nil {
			return fmt.Errorf("create categories table: %w", err)
		}

		for _, field := range reg.Fields() {
			labels, _ := reg.OrderFor(field)
			for pos, label := range labels {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO `+quote(CategoriesTable)+` (field, position, label) VALUES (?, ?, ?)`,
					field, pos, label)
				if err != nil {
					return fmt.Errorf("insert category %s/%d: %w", field, pos, err)
				}
			}
		}

		return nil
	})
}

// CountRows returns the number of stored respondents.
func (s *Store) CountRows(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+quote(SurveyTable)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}

	return n, nil
}

// ReadSurvey loads the stored survey back into a table, in insertion order.
func (s *Store) ReadSurvey(ctx context.Context) (*dataset.Table, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT * FROM `+quote(SurveyTable)+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query survey: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	t, err := dataset.New(cols)
	if err != nil {
		return nil, err
	}

	values := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))

	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan survey row: %w", err)
		}

		cells := make([]dataset.Cell, len(cols))
		for i, v := range values {
			if v.Valid {
				cells[i] = dataset.String(v.String)
			}
		}

		if err := t.AppendRow(cells); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate survey rows: %w", err)
	}

	return t, nil
}

// ReadCategories loads the stored category orders.
func (s *Store) ReadCategories(ctx context.Context) (*categories.Registry, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT field, label FROM `+quote(CategoriesTable)+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var orders []categories.Order

	for rows.Next() {
		var field, label string
		if err := rows.Scan(&field, &label); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}

		if n := len(orders); n == 0 || orders[n-1].Field != field {
			orders = append(orders, categories.Order{Field: field})
		}

		last := &orders[len(orders)-1]
		last.Labels = append(last.Labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if len(orders) == 0 {
		return nil, ErrNoCategories
	}

	return categories.New(orders...)
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
