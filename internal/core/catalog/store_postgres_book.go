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

const bookResource = "Book"

// bookSelect lists the book columns plus the aggregated genre ids.
func bookSelect() string {
	return fmt.Sprintf(`%s, ARRAY(SELECT %s FROM %s WHERE %s = b.%s ORDER BY %s)`,
		columns("b", schema.CatalogBook.Columns()...),
		schema.CatalogBookGenre.GenreID, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID,
		schema.CatalogBook.ID, schema.CatalogBookGenre.GenreID,
	)
}

func scanBook(row rowScanner) (*Book, error) {
	b := &Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt, &b.GenreIDs)
	if b.GenreIDs == nil {
		b.GenreIDs = []string{}
	}
	return b, err
}

func bookWhere(filter BookFilter) *whereClause {
	where := &whereClause{}
	if filter.IDs != nil {
		where.add("b."+schema.CatalogBook.ID+" = ANY($%d)", filter.IDs)
	}
	if filter.AuthorID != "" {
		where.add("b."+schema.CatalogBook.AuthorID+" = $%d", filter.AuthorID)
	}
	if filter.GenreID != "" {
		where.add(fmt.Sprintf("b.%s IN (SELECT %s FROM %s WHERE %s = $%%d)",
			schema.CatalogBook.ID, schema.CatalogBookGenre.BookID, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.GenreID,
		), filter.GenreID)
	}
	return where
}

func (store *PostgresStore) FindBookByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s b WHERE b.%s = $1`, bookSelect(), schema.CatalogBook.Table, schema.CatalogBook.ID)

	book, err := scanBook(store.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, bookResource, "get_book")
	}
	return book, nil
}

func (store *PostgresStore) FindBooks(context context.Context, filter BookFilter) ([]*Book, error) {
	where := bookWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM %s b%s ORDER BY lower(b.%s) ASC, b.%s ASC`,
		bookSelect(), schema.CatalogBook.Table, where, schema.CatalogBook.Title, schema.CatalogBook.ID,
	)

	rows, err := store.pool.Query(context, query, where.args...)
	if err != nil {
		return nil, dberr.Wrap(err, bookResource, "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, bookResource, "scan_book")
		}
		books = append(books, book)
	}
	return books, dberr.Wrap(rows.Err(), bookResource, "list_books")
}

func (store *PostgresStore) CountBooks(context context.Context, filter BookFilter) (int, error) {
	where := bookWhere(filter)
	query := fmt.Sprintf(`SELECT count(*) FROM %s b%s`, schema.CatalogBook.Table, where)

	var total int
	if err := store.pool.QueryRow(context, query, where.args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, bookResource, "count_books")
	}
	return total, nil
}

/*
InsertBook persists a book row and its genre set in one transaction.

Returns:
  - error: CONFLICT when the author or a genre vanished concurrently
*/
func (store *PostgresStore) InsertBook(context context.Context, b *Book) error {
	transaction, err := store.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, bookResource, "begin_create_book")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CatalogBook.Table, schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Summary,
		schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err = transaction.QueryRow(context, query, b.ID, b.Title, b.Summary, b.ISBN, b.AuthorID).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, bookResource, "create_book")
	}

	if err := replaceBookGenres(context, transaction, b.ID, b.GenreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, bookResource, "commit_create_book")
	}
	return nil
}

// UpdateBook replaces the book row and its whole genre set in one transaction.
func (store *PostgresStore) UpdateBook(context context.Context, b *Book) error {
	transaction, err := store.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, bookResource, "begin_update_book")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.Summary, schema.CatalogBook.ISBN,
		schema.CatalogBook.AuthorID, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err = transaction.QueryRow(context, query, b.ID, b.Title, b.Summary, b.ISBN, b.AuthorID).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, bookResource, "update_book")
	}

	if err := replaceBookGenres(context, transaction, b.ID, b.GenreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, bookResource, "commit_update_book")
	}
	return nil
}

// DeleteBook removes a book; its junction rows cascade.
func (store *PostgresStore) DeleteBook(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	cmd, err := store.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, bookResource, "delete_book")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, bookResource, "delete_book")
	}
	return nil
}

/*
replaceBookGenres rewrites the junction rows of one book.

Description: Clears the previous set, then queues one INSERT per genre id in
a single batch round trip. Must run inside the caller's transaction.
*/
func replaceBookGenres(context context.Context, transaction pgx.Tx, bookID string, genreIDs []string) error {

	// 1. Clear
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID)
	if _, err := transaction.Exec(context, deleteQuery, bookID); err != nil {
		return dberr.Wrap(err, bookResource, "clear_book_genres")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	// 2. Batch insert
	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID, schema.CatalogBookGenre.GenreID,
	)
	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, bookID, genreID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, genreResource, "insert_book_genres")
	}
	return nil
}
