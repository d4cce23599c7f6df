package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/seedstage/careers-api/internal/data/database"
	"github.com/seedstage/careers-api/internal/data/pgxutil"
	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
)

// UserRepo provides database operations for user profiles.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `username, first_name, last_name, email, created_at`

// Create inserts a new user. Same duplicate-check-then-insert shape as
// company creation; the unique constraint on username backstops races.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	username := strings.TrimSpace(req.Username)

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var existing string
		checkErr := conn.QueryRow(ctx,
			`SELECT username FROM users WHERE username = $1`, username,
		).Scan(&existing)
		if checkErr == nil {
			return apperrors.Conflictf("duplicate user: %s", username)
		}
		if !errors.Is(checkErr, pgx.ErrNoRows) {
			return checkErr
		}

		rows, qErr := conn.Query(ctx, `
			INSERT INTO users (username, first_name, last_name, email)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userColumns,
			username,
			req.FirstName,
			req.LastName,
			strings.TrimSpace(req.Email),
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return qErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx,
			`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no user: %s", username)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &out, nil
}

// List retrieves all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY username`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies a partial update to a user. Logical field names (firstName,
// lastName) translate through the user column table.
func (r *UserRepo) Update(ctx context.Context, username string, data map[string]any) (*model.User, error) {
	setClause, args, err := database.BuildPartialUpdate(data, model.UserUpdateColumns())
	if err != nil {
		return nil, err
	}

	args = append(args, username)
	query := "UPDATE users SET " + setClause +
		" WHERE username = $" + strconv.Itoa(len(args)) +
		" RETURNING " + userColumns

	var out model.User
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, query, args...)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no user: %s", username)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a user by username.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
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
		return apperrors.NotFoundf("no user: %s", username)
	}
	return nil
}
