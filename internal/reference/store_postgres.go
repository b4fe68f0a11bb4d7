// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package reference

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

// PostgresRepository implements [Repository] on al_term.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var termColumns = strings.Join(schema.Term.Columns(), ", ")

func scanTerm(row pgx.Row) (*Term, error) {
	term := &Term{}
	var kind string
	var state int16

	err := row.Scan(
		&term.ID, &kind, &term.Code, &term.Name, &term.Description,
		&term.ContentHash, &state, &term.ValidFrom, &term.ValidTo,
	)
	if err != nil {
		return nil, err
	}

	term.Kind = Kind(kind)
	term.ChangeState = versioning.ChangeState(state)
	return term, nil
}

func (repository *PostgresRepository) Create(context context.Context, term *Term) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		schema.Term.Table, schema.Term.Kind, schema.Term.Code, schema.Term.Name, schema.Term.Description,
		schema.Version.ContentHash, schema.Version.ChangeState, schema.Version.ValidFrom, schema.Version.ValidTo,
		schema.Term.ID,
	)

	err := repository.db.QueryRow(context, query,
		string(term.Kind), term.Code, term.Name, term.Description,
		term.ContentHash, int16(term.ChangeState), term.ValidFrom, term.ValidTo,
	).Scan(&term.ID)
	return dberr.Wrap(err, "create_term")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Term, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		termColumns, schema.Term.Table, schema.Term.ID, schema.Version.ValidTo,
	)

	term, err := scanTerm(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "find_term", "Term")
	}
	return term, nil
}

func (repository *PostgresRepository) FindByCode(context context.Context, kind Kind, code string) (*Term, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		termColumns, schema.Term.Table, schema.Term.Kind, schema.Term.Code, schema.Version.ValidTo,
	)

	term, err := scanTerm(repository.db.QueryRow(context, query, string(kind), code))
	if err != nil {
		return nil, dberr.NotFound(err, "find_term_by_code", "Term")
	}
	return term, nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*Term, error) {
	if len(ids) == 0 {
		return []*Term{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) AND %s IS NULL`,
		termColumns, schema.Term.Table, schema.Term.ID, schema.Version.ValidTo,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "find_terms")
	}

	terms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Term, error) {
		return scanTerm(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_terms")
	}
	return terms, nil
}

func (repository *PostgresRepository) List(context context.Context, kind Kind, page pagination.Params) ([]*Term, int, error) {
	where := fmt.Sprintf(`%s = $1 AND %s IS NULL`, schema.Term.Kind, schema.Version.ValidTo)
	args := []any{string(kind)}

	if page.Search != "" {
		where += fmt.Sprintf(` AND (%s ILIKE $2 OR %s ILIKE $2)`, schema.Term.Name, schema.Term.Code)
		args = append(args, "%"+page.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Term.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_terms")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s ASC LIMIT $%d OFFSET $%d`,
		termColumns, schema.Term.Table, where, schema.Term.Name, len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, page.Offset())

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_terms")
	}

	terms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Term, error) {
		return scanTerm(row)
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_terms")
	}
	return terms, total, nil
}
