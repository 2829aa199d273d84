// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all morphecms
// entities. Each store struct wraps a *sql.DB and exposes typed query methods
// that take a context and return wrapped errors.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
)

// PostgreSQL SQLSTATE codes translated into sentinel errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

var (
	// ErrUniqueViolation is returned when a write hits a unique constraint,
	// such as two rows of one entity type claiming the same slug.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation is returned when a write references a missing
	// row, or a delete would orphan a referencing row.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// classify maps driver errors for constraint violations onto the package
// sentinels while keeping the original error in the chain.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	}
	return err
}

// Page selects a window of a listing.
type Page struct {
	Offset int
	Limit  int
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// filter accumulates WHERE clauses with positional arguments.
type filter struct {
	clauses []string
	args    []any
}

// add appends a clause. The clause must contain exactly one %d verb,
// which is replaced by the placeholder index of arg.
func (f *filter) add(clause string, arg any) {
	f.args = append(f.args, arg)
	f.clauses = append(f.clauses, fmt.Sprintf(clause, len(f.args)))
}

// addRaw appends a clause that takes no argument.
func (f *filter) addRaw(clause string) {
	f.clauses = append(f.clauses, clause)
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// pageQuery describes a paginated listing: the row query (without LIMIT)
// and the matching COUNT query share the same filter arguments.
type pageQuery struct {
	rows  string
	count string
	args  []any
	page  Page
}

// queryPage runs the row and count queries of q concurrently and scans each
// row with scan. Items is never nil.
func queryPage[T any](ctx context.Context, db *sql.DB, q pageQuery, scan func(scanner) (T, error)) ([]T, int, error) {
	items := make([]T, 0)
	var total int

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		args := make([]any, len(q.args), len(q.args)+2)
		copy(args, q.args)
		args = append(args, q.page.Limit, q.page.Offset)
		query := fmt.Sprintf("%s LIMIT $%d OFFSET $%d", q.rows, len(args)-1, len(args))

		rows, err := db.QueryContext(gctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return rows.Err()
	})

	g.Go(func() error {
		return db.QueryRowContext(gctx, q.count, q.args...).Scan(&total)
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// uuidStrings renders ids for use with `= ANY($n::uuid[])`.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
