// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package research

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
)

// PostgresRepository implements [Repository] on al_patient_research,
// al_research_result and al_immunophenotyping.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	researchColumns          = strings.Join(schema.Research.Columns(), ", ")
	diagnosisColumns         = strings.Join(schema.ResearchResult.Columns(), ", ")
	immunophenotypingColumns = strings.Join(schema.Immunophenotyping.Columns(), ", ")
)

func scanResearch(row pgx.Row) (*Research, error) {
	research := &Research{}
	var state int16

	err := row.Scan(
		&research.ID, &research.PatientID, &research.ResearchDate, &research.Material, &research.CreatedBy,
		&research.ContentHash, &state, &research.ValidFrom, &research.ValidTo,
	)
	if err != nil {
		return nil, err
	}

	research.ChangeState = versioning.ChangeState(state)
	return research, nil
}

// # Research

func (repository *PostgresRepository) Create(context context.Context, research *Research) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		schema.Research.Table,
		schema.Research.PatientID, schema.Research.ResearchDate, schema.Research.Material, schema.Research.CreatedBy,
		schema.Version.ContentHash, schema.Version.ChangeState, schema.Version.ValidFrom, schema.Version.ValidTo,
		schema.Research.ID,
	)

	err := repository.db.QueryRow(context, query,
		research.PatientID, research.ResearchDate, research.Material, research.CreatedBy,
		research.ContentHash, int16(research.ChangeState), research.ValidFrom, research.ValidTo,
	).Scan(&research.ID)
	return dberr.Wrap(err, "create_research")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Research, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		researchColumns, schema.Research.Table, schema.Research.ID, schema.Version.ValidTo,
	)

	research, err := scanResearch(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "find_research", "Research")
	}
	return research, nil
}

func (repository *PostgresRepository) ListByPatient(context context.Context, patientID int64, page pagination.Params) ([]*Research, int, error) {
	where := fmt.Sprintf(`%s = $1 AND %s IS NULL`, schema.Research.PatientID, schema.Version.ValidTo)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Research.Table, where)
	if err := repository.db.QueryRow(context, countQuery, patientID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_researches")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s DESC LIMIT $2 OFFSET $3`,
		researchColumns, schema.Research.Table, where, schema.Research.ResearchDate, schema.Research.ID,
	)

	rows, err := repository.db.Query(context, query, patientID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_researches")
	}

	researches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Research, error) {
		return scanResearch(row)
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_researches")
	}
	return researches, total, nil
}

// # Diagnoses

func (repository *PostgresRepository) CreateDiagnosis(context context.Context, diagnosis *Diagnosis) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.ResearchResult.Table,
		schema.ResearchResult.ResearchID, schema.ResearchResult.Conclusion,
		schema.ResearchResult.DiagnosedAt, schema.ResearchResult.CreatedBy,
		schema.ResearchResult.ID,
	)

	err := repository.db.QueryRow(context, query,
		diagnosis.ResearchID, diagnosis.Conclusion, diagnosis.DiagnosedAt, diagnosis.CreatedBy,
	).Scan(&diagnosis.ID)
	return dberr.Wrap(err, "create_diagnosis")
}

func (repository *PostgresRepository) ListDiagnoses(context context.Context, researchID int64) ([]*Diagnosis, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		diagnosisColumns, schema.ResearchResult.Table, schema.ResearchResult.ResearchID, schema.ResearchResult.DiagnosedAt,
	)

	rows, err := repository.db.Query(context, query, researchID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_diagnoses")
	}

	diagnoses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Diagnosis, error) {
		diagnosis := &Diagnosis{}
		err := row.Scan(&diagnosis.ID, &diagnosis.ResearchID, &diagnosis.Conclusion, &diagnosis.DiagnosedAt, &diagnosis.CreatedBy)
		return diagnosis, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_diagnoses")
	}
	return diagnoses, nil
}

// # Immunophenotyping

func (repository *PostgresRepository) CreateImmunophenotyping(context context.Context, row *Immunophenotyping) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.Immunophenotyping.Table,
		schema.Immunophenotyping.ResearchID, schema.Immunophenotyping.MarkerID,
		schema.Immunophenotyping.MedicationID, schema.Immunophenotyping.PositivePercent,
		schema.Immunophenotyping.ID,
	)

	err := repository.db.QueryRow(context, query,
		row.ResearchID, row.MarkerID, row.MedicationID, row.PositivePercent,
	).Scan(&row.ID)
	return dberr.Wrap(err, "create_immunophenotyping")
}

func (repository *PostgresRepository) ListImmunophenotyping(context context.Context, researchID int64) ([]*Immunophenotyping, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		immunophenotypingColumns, schema.Immunophenotyping.Table,
		schema.Immunophenotyping.ResearchID, schema.Immunophenotyping.ID,
	)

	rows, err := repository.db.Query(context, query, researchID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_immunophenotyping")
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Immunophenotyping, error) {
		item := &Immunophenotyping{}
		err := row.Scan(&item.ID, &item.ResearchID, &item.MarkerID, &item.MedicationID, &item.PositivePercent)
		return item, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_immunophenotyping")
	}
	return result, nil
}
