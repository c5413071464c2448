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

const bookInstanceResource = "Book copy"

func scanBookInstance(row rowScanner) (*BookInstance, error) {
	var status string
	i := &BookInstance{}
	err := row.Scan(&i.ID, &i.BookID, &i.Imprint, &status, &i.DueBack, &i.CreatedAt, &i.UpdatedAt)
	i.Status = Status(status)
	return i, err
}

func bookInstanceWhere(filter BookInstanceFilter) *whereClause {
	where := &whereClause{}
	if filter.BookID != "" {
		where.add(schema.CatalogBookInstance.BookID+" = $%d", filter.BookID)
	}
	if filter.Status != "" {
		where.add(schema.CatalogBookInstance.Status+" = $%d", string(filter.Status))
	}
	return where
}

func (store *PostgresStore) FindBookInstanceByID(context context.Context, id string) (*BookInstance, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columns("", schema.CatalogBookInstance.Columns()...), schema.CatalogBookInstance.Table, schema.CatalogBookInstance.ID,
	)

	instance, err := scanBookInstance(store.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, bookInstanceResource, "get_bookinstance")
	}
	return instance, nil
}

func (store *PostgresStore) FindBookInstances(context context.Context, filter BookInstanceFilter) ([]*BookInstance, error) {
	where := bookInstanceWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY lower(%s) ASC, %s ASC`,
		columns("", schema.CatalogBookInstance.Columns()...), schema.CatalogBookInstance.Table, where,
		schema.CatalogBookInstance.Imprint, schema.CatalogBookInstance.ID,
	)

	rows, err := store.pool.Query(context, query, where.args...)
	if err != nil {
		return nil, dberr.Wrap(err, bookInstanceResource, "list_bookinstances")
	}
	defer rows.Close()

	instances := make([]*BookInstance, 0)
	for rows.Next() {
		instance, err := scanBookInstance(rows)
		if err != nil {
			return nil, dberr.Wrap(err, bookInstanceResource, "scan_bookinstance")
		}
		instances = append(instances, instance)
	}
	return instances, dberr.Wrap(rows.Err(), bookInstanceResource, "list_bookinstances")
}

func (store *PostgresStore) CountBookInstances(context context.Context, filter BookInstanceFilter) (int, error) {
	where := bookInstanceWhere(filter)
	query := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.CatalogBookInstance.Table, where)

	var total int
	if err := store.pool.QueryRow(context, query, where.args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, bookInstanceResource, "count_bookinstances")
	}
	return total, nil
}

func (store *PostgresStore) InsertBookInstance(context context.Context, i *BookInstance) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.ID, schema.CatalogBookInstance.BookID,
		schema.CatalogBookInstance.Imprint, schema.CatalogBookInstance.Status, schema.CatalogBookInstance.DueBack,
		schema.CatalogBookInstance.CreatedAt, schema.CatalogBookInstance.UpdatedAt,
		schema.CatalogBookInstance.CreatedAt, schema.CatalogBookInstance.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, i.ID, i.BookID, i.Imprint, string(i.Status), i.DueBack).
		Scan(&i.CreatedAt, &i.UpdatedAt)
	return dberr.Wrap(err, bookInstanceResource, "create_bookinstance")
}

func (store *PostgresStore) UpdateBookInstance(context context.Context, i *BookInstance) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.BookID, schema.CatalogBookInstance.Imprint,
		schema.CatalogBookInstance.Status, schema.CatalogBookInstance.DueBack, schema.CatalogBookInstance.UpdatedAt,
		schema.CatalogBookInstance.ID, schema.CatalogBookInstance.CreatedAt, schema.CatalogBookInstance.UpdatedAt,
	)

	err := store.pool.QueryRow(context, query, i.ID, i.BookID, i.Imprint, string(i.Status), i.DueBack).
		Scan(&i.CreatedAt, &i.UpdatedAt)
	return dberr.Wrap(err, bookInstanceResource, "update_bookinstance")
}

func (store *PostgresStore) DeleteBookInstance(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBookInstance.Table, schema.CatalogBookInstance.ID)

	cmd, err := store.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, bookInstanceResource, "delete_bookinstance")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, bookInstanceResource, "delete_bookinstance")
	}
	return nil
}
