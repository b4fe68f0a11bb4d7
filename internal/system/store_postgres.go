// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Darigraye/MEPHI-practice/internal/platform/database/schema"
	"github.com/Darigraye/MEPHI-practice/internal/platform/dberr"
	"github.com/Darigraye/MEPHI-practice/pkg/pagination"
)

// # Journal Repository

// PostgresLogRepository implements [LogRepository] on al_log.
type PostgresLogRepository struct {
	db *pgxpool.Pool
}

func NewLogRepository(db *pgxpool.Pool) *PostgresLogRepository {
	return &PostgresLogRepository{db: db}
}

func (repository *PostgresLogRepository) Insert(context context.Context, entry *LogEntry) error {
	t := schema.Log
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		t.Table, t.Sender, t.Type, t.Action, t.Description, t.Login, t.Status,
		t.ID, t.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		entry.Sender, string(entry.Type), entry.Action, entry.Description, entry.Login, string(entry.Status),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_log_entry")
	}
	return nil
}

func (repository *PostgresLogRepository) List(context context.Context, filter LogFilter, page pagination.Params) ([]*LogEntry, int, error) {
	t := schema.Log

	var conditions []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Sender != "" {
		add(t.Sender, filter.Sender)
	}
	if filter.Login != "" {
		add(t.Login, filter.Login)
	}
	if filter.Type != "" {
		add(t.Type, string(filter.Type))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, t.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_log_entries")
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`
		SELECT %s FROM %s %s
		ORDER BY %s DESC, %s DESC
		LIMIT $%d OFFSET $%d`,
		strings.Join(t.Columns(), ", "), t.Table, where,
		t.CreatedAt, t.ID,
		len(args)-1, len(args),
	)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_log_entries")
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*LogEntry, error) {
		entry := &LogEntry{}
		var logType, status string
		err := row.Scan(&entry.ID, &entry.Sender, &logType, &entry.Action, &entry.Description, &entry.Login, &status, &entry.CreatedAt)
		entry.Type, entry.Status = LogType(logType), LogStatus(status)
		return entry, err
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_log_entries")
	}

	return entries, total, nil
}

// # Parameter Repository

// PostgresParameterRepository implements [ParameterRepository] on al_parameter.
type PostgresParameterRepository struct {
	db *pgxpool.Pool
}

func NewParameterRepository(db *pgxpool.Pool) *PostgresParameterRepository {
	return &PostgresParameterRepository{db: db}
}

func scanParameter(row pgx.Row) (*Parameter, error) {
	parameter := &Parameter{}
	err := row.Scan(
		&parameter.ID, &parameter.Name, &parameter.Value, &parameter.BoolValue,
		&parameter.CreatedAt, &parameter.IsActive,
	)
	return parameter, err
}

func (repository *PostgresParameterRepository) FindByName(context context.Context, name string) (*Parameter, error) {
	t := schema.Parameter
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(t.Columns(), ", "), t.Table, t.Name)

	parameter, err := scanParameter(repository.db.QueryRow(context, query, name))
	if err != nil {
		return nil, dberr.NotFound(err, "find_parameter", "Parameter")
	}
	return parameter, nil
}

func (repository *PostgresParameterRepository) List(context context.Context, activeOnly bool) ([]*Parameter, error) {
	t := schema.Parameter
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE ($1 = FALSE OR %s = TRUE) ORDER BY %s ASC`,
		strings.Join(t.Columns(), ", "), t.Table, t.IsActive, t.Name)

	rows, err := repository.db.Query(context, query, activeOnly)
	if err != nil {
		return nil, dberr.Wrap(err, "list_parameters")
	}

	parameters, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Parameter, error) {
		return scanParameter(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_parameters")
	}
	return parameters, nil
}

func (repository *PostgresParameterRepository) Upsert(context context.Context, parameter *Parameter) error {
	t := schema.Parameter
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%[2]s) DO UPDATE
		SET %[3]s = EXCLUDED.%[3]s, %[4]s = EXCLUDED.%[4]s, %[5]s = EXCLUDED.%[5]s
		RETURNING %[6]s, %[7]s`,
		t.Table, t.Name, t.Value, t.BoolValue, t.IsActive, t.ID, t.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		parameter.Name, parameter.Value, parameter.BoolValue, parameter.IsActive,
	).Scan(&parameter.ID, &parameter.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_parameter")
	}
	return nil
}
