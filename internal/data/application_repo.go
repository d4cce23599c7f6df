package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seedstage/careers-api/internal/data/pgxutil"
	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
)

// ApplicationRepo provides database operations for job applications.
type ApplicationRepo struct {
	DB *sql.DB
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db}
}

const applicationColumns = `username, job_id, state, created_at`

// Apply records a user's application to a job. Applying twice to the same job
// is a conflict; a missing user or job surfaces as a foreign key error.
func (r *ApplicationRepo) Apply(ctx context.Context, username string, jobID int64, state model.ApplicationState) (*model.Application, error) {
	if !state.Valid() {
		return nil, apperrors.Validationf("invalid application state: %s", state)
	}

	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			INSERT INTO applications (username, job_id, state)
			VALUES ($1, $2, $3)
			RETURNING `+applicationColumns,
			username, jobID, state,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return qErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListForUser retrieves a user's applications, newest first.
func (r *ApplicationRepo) ListForUser(ctx context.Context, username string) ([]*model.Application, error) {
	var rowsOut []model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+applicationColumns+`
			FROM applications
			WHERE username = $1
			ORDER BY created_at DESC, job_id DESC`, username)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	res := make([]*model.Application, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateState moves an application to a new state.
func (r *ApplicationRepo) UpdateState(ctx context.Context, username string, jobID int64, state model.ApplicationState) (*model.Application, error) {
	if !state.Valid() {
		return nil, apperrors.Validationf("invalid application state: %s", state)
	}

	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			UPDATE applications SET state = $1
			WHERE username = $2 AND job_id = $3
			RETURNING `+applicationColumns,
			state, username, jobID,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no application for %s to job %d", username, jobID)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Withdraw removes an application.
func (r *ApplicationRepo) Withdraw(ctx context.Context, username string, jobID int64) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx,
			`DELETE FROM applications WHERE username = $1 AND job_id = $2`,
			username, jobID)
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
		return apperrors.NotFoundf("no application for %s to job %d", username, jobID)
	}
	return nil
}
