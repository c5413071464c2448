// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

const authorResource = "Author"

func scanAuthor(row rowScanner) (*Author, error) {
	a := &Author{}
	err := row.Scan(&a.ID, &a.FirstName, &a.FamilyName, &a.DateOfBirth, &a.DateOfDeath, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func authorWhere(filter AuthorFilter) *whereClause {
	where := &whereClause{}
	if filter.IDs != nil {
		where.add(schema.CatalogAuthor.ID+" = ANY($%d)", filter.IDs)
	}
	return where
}

func (store *PostgresStore) FindAuthorByID(context context.Context, id string) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columns("", schema.CatalogAuthor.Columns()...), schema.CatalogAuthor.Table, schema.CatalogAuthor.ID,
	)

	author, err := scanAuthor(store.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, authorResource, "get_author")
	}
	return author, nil
}

func (store *PostgresStore) FindAuthors(context context.Context, filter AuthorFilter) ([]*Author, error) {
	where := authorWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY lower(%s) ASC, lower(%s) ASC, %s ASC`,
		columns("", schema.CatalogAuthor.Columns()...), schema.CatalogAuthor.Table, where,
		schema.CatalogAuthor.FamilyName, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.ID,
	)

	rows, err := store.pool.Query(context, query, where.args...)
	if err != nil {
		return nil, dberr.Wrap(err, authorResource, "list_authors")
	}
	defer rows.Close()

	authors := make([]*Author, 0)
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, dberr.Wrap(err, authorResource, "scan_author")
		}
		authors = append(authors, author)
	}
	return authors, dberr.Wrap(rows.Err(), authorResource, "list_authors")
}

func (store *PostgresStore) CountAuthors(context context.Context, filter AuthorFilter) (int, error) {
	where := authorWhere(filter)
	query := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.CatalogAuthor.Table, where)

	var total int
	if err := store.pool.QueryRow(context, query, where.args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, authorResource, "count_authors")
	}
	return total, nil
}

func (store *PostgresStore) InsertAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.FamilyName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, a.ID, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, authorResource, "create_author")
}

func (store *PostgresStore) UpdateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.FamilyName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, a.ID, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, authorResource, "update_author")
}

func (store *PostgresStore) DeleteAuthor(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	cmd, err := store.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, authorResource, "delete_author")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, authorResource, "delete_author")
	}
	return nil
}
