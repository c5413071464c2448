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

const genreResource = "Genre"

func scanGenre(row rowScanner) (*Genre, error) {
	g := &Genre{}
	err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func genreWhere(filter GenreFilter) *whereClause {
	where := &whereClause{}
	if filter.IDs != nil {
		where.add(schema.CatalogGenre.ID+" = ANY($%d)", filter.IDs)
	}
	if filter.NameKey != "" {
		where.add(schema.CatalogGenre.NameKey+" = $%d", filter.NameKey)
	}
	if filter.BookID != "" {
		where.add(fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s = $%%d)",
			schema.CatalogGenre.ID, schema.CatalogBookGenre.GenreID, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID,
		), filter.BookID)
	}
	return where
}

func (store *PostgresStore) FindGenreByID(context context.Context, id string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columns("", schema.CatalogGenre.Columns()...), schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)

	genre, err := scanGenre(store.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, genreResource, "get_genre")
	}
	return genre, nil
}

func (store *PostgresStore) FindGenres(context context.Context, filter GenreFilter) ([]*Genre, error) {
	where := genreWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY lower(%s) ASC, %s ASC`,
		columns("", schema.CatalogGenre.Columns()...), schema.CatalogGenre.Table, where,
		schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	)

	rows, err := store.pool.Query(context, query, where.args...)
	if err != nil {
		return nil, dberr.Wrap(err, genreResource, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			return nil, dberr.Wrap(err, genreResource, "scan_genre")
		}
		genres = append(genres, genre)
	}
	return genres, dberr.Wrap(rows.Err(), genreResource, "list_genres")
}

func (store *PostgresStore) CountGenres(context context.Context, filter GenreFilter) (int, error) {
	where := genreWhere(filter)
	query := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.CatalogGenre.Table, where)

	var total int
	if err := store.pool.QueryRow(context, query, where.args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, genreResource, "count_genres")
	}
	return total, nil
}

func (store *PostgresStore) InsertGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.NameKey,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, g.ID, g.Name, g.NameKey()).Scan(&g.CreatedAt, &g.UpdatedAt)
	return dberr.Wrap(err, genreResource, "create_genre")
}

func (store *PostgresStore) UpdateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.NameKey, schema.CatalogGenre.UpdatedAt,
		schema.CatalogGenre.ID, schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, g.ID, g.Name, g.NameKey()).Scan(&g.CreatedAt, &g.UpdatedAt)
	return dberr.Wrap(err, genreResource, "update_genre")
}

func (store *PostgresStore) DeleteGenre(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	cmd, err := store.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, genreResource, "delete_genre")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, genreResource, "delete_genre")
	}
	return nil
}
