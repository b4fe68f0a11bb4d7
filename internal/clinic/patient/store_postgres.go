// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Darigraye/MEPHI-practice/internal/platform/database/schema"
	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
	"github.com/Darigraye/MEPHI-practice/internal/versioning"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
	"github.com/Darigraye/MEPHI-practice/pkg/pointer"
)

// PostgresRepository implements [Repository] on al_patient.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var patientColumns = strings.Join(schema.Patient.Columns(), ", ")

func scanPatient(row pgx.Row) (*Patient, error) {
	patient := &Patient{}
	var patronymic *string
	var sex, state int16

	err := row.Scan(
		&patient.ID, &patient.HistoryNumber, &patient.FirstName, &patient.LastName, &patronymic,
		&patient.BirthDate, &sex, &patient.CreatedBy,
		&patient.ContentHash, &state, &patient.ValidFrom, &patient.ValidTo,
	)
	if err != nil {
		return nil, err
	}

	patient.Patronymic = pointer.Val(patronymic)
	patient.Sex = Sex(sex)
	patient.ChangeState = versioning.ChangeState(state)
	return patient, nil
}

func (repository *PostgresRepository) Create(context context.Context, patient *Patient) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`,
		schema.Patient.Table,
		schema.Patient.HistoryNumber, schema.Patient.FirstName, schema.Patient.LastName, schema.Patient.Patronymic,
		schema.Patient.BirthDate, schema.Patient.Sex, schema.Patient.CreatedBy,
		schema.Version.ContentHash, schema.Version.ChangeState, schema.Version.ValidFrom, schema.Version.ValidTo,
		schema.Patient.ID,
	)

	err := repository.db.QueryRow(context, query,
		patient.HistoryNumber, patient.FirstName, patient.LastName, pointer.NilIfZero(patient.Patronymic),
		patient.BirthDate, int16(patient.Sex), patient.CreatedBy,
		patient.ContentHash, int16(patient.ChangeState), patient.ValidFrom, patient.ValidTo,
	).Scan(&patient.ID)
	return dberr.Wrap(err, "create_patient")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		patientColumns, schema.Patient.Table, schema.Patient.ID, schema.Version.ValidTo,
	)

	patient, err := scanPatient(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "find_patient", "Patient")
	}
	return patient, nil
}

func (repository *PostgresRepository) FindByHistoryNumber(context context.Context, number int64) (*Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		patientColumns, schema.Patient.Table, schema.Patient.HistoryNumber, schema.Version.ValidTo,
	)

	patient, err := scanPatient(repository.db.QueryRow(context, query, number))
	if err != nil {
		return nil, dberr.NotFound(err, "find_patient_by_history", "Patient")
	}
	return patient, nil
}

func (repository *PostgresRepository) List(context context.Context, page pagination.Params) ([]*Patient, int, error) {
	where := fmt.Sprintf(`%s IS NULL`, schema.Version.ValidTo)
	args := []any{}

	if page.Search != "" {
		where += fmt.Sprintf(` AND (%s ILIKE $1 OR %s ILIKE $1 OR %s ILIKE $1)`,
			schema.Patient.FirstName, schema.Patient.LastName, schema.Patient.Patronymic)
		args = append(args, "%"+page.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Patient.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_patients")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s, %s, %s LIMIT $%d OFFSET $%d`,
		patientColumns, schema.Patient.Table, where,
		schema.Patient.LastName, schema.Patient.FirstName, schema.Patient.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, page.Offset())

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_patients")
	}

	patients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Patient, error) {
		return scanPatient(row)
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_patients")
	}
	return patients, total, nil
}
