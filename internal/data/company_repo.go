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

// CompanyRepo provides database operations for companies.
type CompanyRepo struct {
	DB *sql.DB
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{DB: db}
}

const companyColumns = `handle, name, description, num_employees, logo_url, created_at`

const companyGetByHandleQuery = `
	SELECT handle, name, description, num_employees, logo_url, created_at
	FROM companies
	WHERE handle = $1`

// Create inserts a new company. The handle is the natural key; creating a
// company whose handle already exists is a conflict. The existence check and
// the insert are two independent queries with no transaction around them --
// the unique constraint on handle is the actual correctness backstop when two
// creates race.
func (r *CompanyRepo) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	if req == nil {
		return nil, apperrors.Validation("create company request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	// Handles are stored lowercase; the schema enforces it with a CHECK.
	handle := strings.ToLower(strings.TrimSpace(req.Handle))

	var out model.Company
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var existing string
		checkErr := conn.QueryRow(ctx,
			`SELECT handle FROM companies WHERE handle = $1`, handle,
		).Scan(&existing)
		if checkErr == nil {
			return apperrors.Conflictf("duplicate company: %s", handle)
		}
		if !errors.Is(checkErr, pgx.ErrNoRows) {
			return checkErr
		}

		rows, err := conn.Query(ctx, `
			INSERT INTO companies (handle, name, description, num_employees, logo_url)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+companyColumns,
			handle,
			strings.TrimSpace(req.Name),
			req.Description,
			req.NumEmployees,
			req.LogoURL,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByHandle retrieves a company by handle.
func (r *CompanyRepo) GetByHandle(ctx context.Context, handle string) (*model.Company, error) {
	var out model.Company
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, companyGetByHandleQuery, handle)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no company: %s", handle)
		}
		return nil, fmt.Errorf("failed to get company by handle: %w", err)
	}
	return &out, nil
}

// List retrieves companies matching the optional filter, ordered by name.
// Inconsistent employee bounds are rejected before any query executes. An
// empty result set is a valid outcome, not an error.
func (r *CompanyRepo) List(ctx context.Context, filter model.CompanyFilter) ([]*model.Company, error) {
	if err := filter.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	query, args := buildCompanyListQuery(filter)

	var rowsOut []model.Company
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	res := make([]*model.Company, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// buildCompanyListQuery assembles the filtered company SELECT. Conditions are
// evaluated in a fixed order (min employees, max employees, name) so the
// rendered clause and placeholder numbering are stable.
func buildCompanyListQuery(filter model.CompanyFilter) (string, []any) {
	conds := make([]database.Condition, 0, 3)
	if filter.MinEmployees != nil {
		conds = append(conds, database.WhereCond("num_employees", database.GreaterThanOrEqual, *filter.MinEmployees))
	}
	if filter.MaxEmployees != nil {
		conds = append(conds, database.WhereCond("num_employees", database.LessThanOrEqual, *filter.MaxEmployees))
	}
	if filter.Name != nil {
		// Single leading wildcard character before the token, then any tail.
		// This is the intended match semantic, not a plain %token% contains.
		conds = append(conds, database.WhereCond("name", database.ILike, "_"+*filter.Name+"%"))
	}

	where, args, _ := database.BuildWhere(conds, 1)

	query := `SELECT ` + companyColumns + ` FROM companies`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY name"
	return query, args
}

// Update applies a partial update to a company. The data mapping uses logical
// field names (numEmployees, logoUrl) translated through the company column
// table; unknown fields pass through as-is. The handle is bound as the final
// placeholder after the SET arguments.
func (r *CompanyRepo) Update(ctx context.Context, handle string, data map[string]any) (*model.Company, error) {
	setClause, args, err := database.BuildPartialUpdate(data, model.CompanyUpdateColumns())
	if err != nil {
		return nil, err
	}

	args = append(args, handle)
	query := "UPDATE companies SET " + setClause +
		" WHERE handle = $" + strconv.Itoa(len(args)) +
		" RETURNING " + companyColumns

	var out model.Company
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, query, args...)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("no company: %s", handle)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a company by handle.
func (r *CompanyRepo) Delete(ctx context.Context, handle string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
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
		return apperrors.NotFoundf("no company: %s", handle)
	}
	return nil
}
