// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
PostgreSQL implementation of the catalog [Store].

  - Identity: ids are application-generated UUIDv7 strings stored as TEXT, so
    a malformed id in a URL is simply "not found".
  - Associations: a book's genre set lives in the catalog.bookgenre junction
    table and is rewritten in the same transaction as the book row.
  - Constraints: foreign keys use ON DELETE RESTRICT; a delete that loses the
    race against a concurrent insert surfaces as a CONFLICT via [dberr.Wrap].
*/
package catalog

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements [Store] using a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore constructs a PostgreSQL backed catalog store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// # Query Helpers

// rowScanner is the common subset of pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// whereClause accumulates AND-ed conditions with positional arguments.
type whereClause struct {
	conditions []string
	args       []any
}

// add appends a condition; format receives the placeholder index via %d.
func (clause *whereClause) add(format string, value any) {
	clause.args = append(clause.args, value)
	clause.conditions = append(clause.conditions, fmt.Sprintf(format, len(clause.args)))
}

// String renders the WHERE clause, or nothing when no condition was added.
func (clause *whereClause) String() string {
	if len(clause.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clause.conditions, " AND ")
}

// columns joins column names for a SELECT list, optionally table-qualified.
func columns(alias string, names ...string) string {
	if alias == "" {
		return strings.Join(names, ", ")
	}
	qualified := make([]string, len(names))
	for i, name := range names {
		qualified[i] = alias + "." + name
	}
	return strings.Join(qualified, ", ")
}
