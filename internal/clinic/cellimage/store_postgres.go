// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package cellimage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Darigraye/MEPHI-practice/internal/platform/database/schema"
	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
	"github.com/Darigraye/MEPHI-practice/internal/platform/postgres"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// PostgresRepository implements [Repository] on al_cell_image and
// al_cell_image_characteristic.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns appends the sorted characteristic ids as a trailing array column.
var selectColumns = fmt.Sprintf(`%s, ARRAY(SELECT %s FROM %s WHERE %s = %s.%s ORDER BY 1) AS characteristic_ids`,
	strings.Join(schema.CellImage.Columns(), ", "),
	schema.CellImageCharacteristic.CharacteristicID, schema.CellImageCharacteristic.Table,
	schema.CellImageCharacteristic.CellImageID, schema.CellImage.Table, schema.CellImage.ID,
)

func scanImage(row pgx.Row) (*CellImage, error) {
	image := &CellImage{}
	var state int16

	err := row.Scan(
		&image.ID, &image.ResearchID, &image.CellTypeID, &image.ImageKey, &image.Annotation, &image.CreatedBy,
		&image.ContentHash, &state, &image.ValidFrom, &image.ValidTo,
		&image.CharacteristicIDs,
	)
	if err != nil {
		return nil, err
	}

	image.ChangeState = versioning.ChangeState(state)
	return image, nil
}

/*
Create inserts the image row and copies its characteristic links in one
transaction.
*/
func (repository *PostgresRepository) Create(context context.Context, image *CellImage) error {
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`,
		schema.CellImage.Table,
		schema.CellImage.ResearchID, schema.CellImage.CellTypeID, schema.CellImage.ImageKey,
		schema.CellImage.Annotation, schema.CellImage.CreatedBy,
		schema.Version.ContentHash, schema.Version.ChangeState, schema.Version.ValidFrom, schema.Version.ValidTo,
		schema.CellImage.ID,
	)

	err := postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, insert,
			image.ResearchID, image.CellTypeID, image.ImageKey, image.Annotation, image.CreatedBy,
			image.ContentHash, int16(image.ChangeState), image.ValidFrom, image.ValidTo,
		).Scan(&image.ID)
		if err != nil {
			return err
		}

		if len(image.CharacteristicIDs) == 0 {
			return nil
		}

		links := make([][]any, 0, len(image.CharacteristicIDs))
		for _, id := range image.CharacteristicIDs {
			links = append(links, []any{image.ID, id})
		}

		_, err = tx.CopyFrom(context,
			pgx.Identifier{schema.CellImageCharacteristic.Table},
			[]string{schema.CellImageCharacteristic.CellImageID, schema.CellImageCharacteristic.CharacteristicID},
			pgx.CopyFromRows(links),
		)
		return err
	})
	return dberr.Wrap(err, "create_cell_image")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*CellImage, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		selectColumns, schema.CellImage.Table, schema.CellImage.ID, schema.Version.ValidTo,
	)

	image, err := scanImage(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "find_cell_image", "Cell image")
	}
	return image, nil
}

func (repository *PostgresRepository) ListByResearch(context context.Context, researchID int64, page pagination.Params) ([]*CellImage, int, error) {
	where := fmt.Sprintf(`%s = $1 AND %s IS NULL`, schema.CellImage.ResearchID, schema.Version.ValidTo)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CellImage.Table, where)
	if err := repository.db.QueryRow(context, countQuery, researchID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_cell_images")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $2 OFFSET $3`,
		selectColumns, schema.CellImage.Table, where, schema.CellImage.ID,
	)

	rows, err := repository.db.Query(context, query, researchID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_cell_images")
	}

	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*CellImage, error) {
		return scanImage(row)
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_cell_images")
	}
	return images, total, nil
}
