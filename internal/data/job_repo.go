package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/seedstage/careers-api/internal/data/database"
	"github.com/seedstage/careers-api/internal/data/pgxutil"
	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
)

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB *sql.DB
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db}
}

const jobColumns = `id, title, salary, equity, company_handle, created_at`

const jobGetByIDQuery = `
	SELECT id, title, salary, equity, company_handle, created_at
	FROM jobs
	WHERE id = $1`

// Create inserts a new job. Jobs have a store-assigned surrogate id, so there
// is no duplicate precheck; a bad company handle surfaces as a foreign key
// violation through MapDBError.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			INSERT INTO jobs (title, salary, equity, company_handle)
			VALUES ($1, $2, $3, $4)
			RETURNING `+jobColumns,
			req.Title,
			req.Salary,
			req.Equity,
			req.CompanyHandle,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return qErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a job by its surrogate id.
func (r *JobRepo) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, jobGetByIDQuery, id)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no job with id: %d", id)
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}
	return &out, nil
}

// List retrieves jobs matching the optional filter, ordered by title.
func (r *JobRepo) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	query, args := buildJobListQuery(filter)

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// buildJobListQuery assembles the filtered job SELECT with conditions in a
// fixed order (title, min salary, has equity). HasEquity renders a literal
// predicate and binds no placeholder.
func buildJobListQuery(filter model.JobFilter) (string, []any) {
	conds := make([]database.Condition, 0, 3)
	if filter.Title != nil {
		conds = append(conds, database.WhereCond("title", database.ILike, "_"+*filter.Title+"%"))
	}
	if filter.MinSalary != nil {
		conds = append(conds, database.WhereCond("salary", database.GreaterThanOrEqual, *filter.MinSalary))
	}
	if filter.HasEquity != nil && *filter.HasEquity {
		conds = append(conds, database.WhereRaw("equity > 0"))
	}

	where, args, _ := database.BuildWhere(conds, 1)

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY title"
	return query, args
}

// Update applies a partial update to a job. Job fields map one-to-one onto
// columns; the id binds as the final placeholder after the SET arguments.
func (r *JobRepo) Update(ctx context.Context, id int64, data map[string]any) (*model.Job, error) {
	setClause, args, err := database.BuildPartialUpdate(data, model.JobUpdateColumns())
	if err != nil {
		return nil, err
	}

	args = append(args, id)
	query := "UPDATE jobs SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + jobColumns

	var out model.Job
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, query, args...)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no job with id: %d", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a job by id.
func (r *JobRepo) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return apperrors.NotFoundf("no job with id: %d", id)
	}
	return nil
}
