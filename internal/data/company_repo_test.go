package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
	"github.com/seedstage/careers-api/internal/testutil"
)

func TestCompanyRepo_Create_Get_RoundTrip(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)
		ctx := context.Background()

		n := 42
		logo := "https://example.com/logo.png"
		req := testutil.NewCompanyRequest().
			WithDescription("Makes widgets").
			WithNumEmployees(n).
			WithLogoURL(logo).
			Build()

		created, err := repo.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, req.Handle, created.Handle)
		assert.Equal(t, req.Name, created.Name)
		assert.Equal(t, "Makes widgets", created.Description)
		require.NotNil(t, created.NumEmployees)
		assert.Equal(t, n, *created.NumEmployees)
		require.NotNil(t, created.LogoURL)
		assert.Equal(t, logo, *created.LogoURL)
		assert.False(t, created.CreatedAt.IsZero())

		fetched, err := repo.GetByHandle(ctx, created.Handle)
		require.NoError(t, err)
		assert.Equal(t, created.Handle, fetched.Handle)
		assert.Equal(t, created.Name, fetched.Name)
		assert.Equal(t, created.Description, fetched.Description)
		assert.Equal(t, created.NumEmployees, fetched.NumEmployees)
		assert.Equal(t, created.LogoURL, fetched.LogoURL)
	})
}

func TestCompanyRepo_Create_Duplicate(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)
		ctx := context.Background()

		req := testutil.NewCompanyRequest().Build()
		first, err := repo.Create(ctx, req)
		require.NoError(t, err)

		// Second create with the same handle but a different name still
		// collides on the natural key.
		dup := testutil.NewCompanyRequest().WithHandle(first.Handle).Build()
		_, err = repo.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err), "expected conflict, got %v", err)
		assert.Contains(t, err.Error(), first.Handle)
	})
}

func TestCompanyRepo_Create_LowercasesHandle(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)
		ctx := context.Background()

		req := testutil.NewCompanyRequest().WithHandle("MixedCase" + testutil.UniqueSuffix()).Build()
		created, err := repo.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, created.Handle, "mixedcase"+req.Handle[9:])
	})
}

func TestCompanyRepo_Get_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)

		_, err := repo.GetByHandle(context.Background(), "nope")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err), "expected not found, got %v", err)
	})
}

func TestCompanyRepo_List_Filters(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)
		ctx := context.Background()

		seed := []struct {
			handle    string
			name      string
			employees *int
		}{
			{"c1", "Net1", intPtr(5)},
			{"c2", "Net2", intPtr(10)},
			{"c3", "Web3", intPtr(50)},
			{"c4", "Ghost", nil},
		}
		for _, s := range seed {
			_, err := repo.Create(ctx, &model.CreateCompanyRequest{
				Handle:       s.handle,
				Name:         s.name,
				NumEmployees: s.employees,
			})
			require.NoError(t, err)
		}

		// No filter: everything, ordered by name ascending.
		all, err := repo.List(ctx, model.CompanyFilter{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "Ghost", all[0].Name)
		assert.Equal(t, "Net1", all[1].Name)
		assert.Equal(t, "Net2", all[2].Name)
		assert.Equal(t, "Web3", all[3].Name)

		// Employee bounds: NULL num_employees never matches a bound.
		min, max := 5, 10
		bounded, err := repo.List(ctx, model.CompanyFilter{MinEmployees: &min, MaxEmployees: &max})
		require.NoError(t, err)
		require.Len(t, bounded, 2)
		assert.Equal(t, "Net1", bounded[0].Name)
		assert.Equal(t, "Net2", bounded[1].Name)

		// Name match: one leading wildcard character, then the token.
		// "et" matches "Net1"/"Net2" (N + et...) but not "Web3" or "Ghost".
		token := "et"
		named, err := repo.List(ctx, model.CompanyFilter{Name: &token})
		require.NoError(t, err)
		require.Len(t, named, 2)
		assert.Equal(t, "Net1", named[0].Name)
		assert.Equal(t, "Net2", named[1].Name)

		// All three filters together.
		only2 := "et2"
		combined, err := repo.List(ctx, model.CompanyFilter{
			MinEmployees: intPtr(1),
			MaxEmployees: intPtr(100),
			Name:         &only2,
		})
		require.NoError(t, err)
		require.Len(t, combined, 1)
		assert.Equal(t, "Net2", combined[0].Name)

		// No matches is an empty slice, not an error.
		none := "zzzz"
		empty, err := repo.List(ctx, model.CompanyFilter{Name: &none})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestCompanyRepo_List_InvalidBounds(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)

		min, max := 11, 2
		_, err := repo.List(context.Background(), model.CompanyFilter{
			MinEmployees: &min,
			MaxEmployees: &max,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "expected validation, got %v", err)
		assert.Contains(t, err.Error(), "11")
		assert.Contains(t, err.Error(), "2")
	})
}

func TestCompanyRepo_Update_Partial(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewCompanyRequest().
			WithNumEmployees(10).
			WithLogoURL("https://example.com/old.png").
			Build())
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.Handle, map[string]any{
			"name":         "Renamed Co",
			"numEmployees": 25,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed Co", updated.Name)
		require.NotNil(t, updated.NumEmployees)
		assert.Equal(t, 25, *updated.NumEmployees)
		// Untouched fields survive the partial update.
		assert.Equal(t, created.Description, updated.Description)
		require.NotNil(t, updated.LogoURL)
		assert.Equal(t, *created.LogoURL, *updated.LogoURL)
	})
}

func TestCompanyRepo_Update_ExplicitNulls(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewCompanyRequest().
			WithNumEmployees(10).
			WithLogoURL("https://example.com/logo.png").
			Build())
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.Handle, map[string]any{
			"numEmployees": nil,
			"logoUrl":      nil,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.NumEmployees)
		assert.Nil(t, updated.LogoURL)

		// Cleared columns stay cleared on re-read.
		fetched, err := repo.GetByHandle(ctx, created.Handle)
		require.NoError(t, err)
		assert.Nil(t, fetched.NumEmployees)
		assert.Nil(t, fetched.LogoURL)
	})
}

func TestCompanyRepo_Update_NoData(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)

		_, err := repo.Update(context.Background(), "whatever", map[string]any{})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "expected validation, got %v", err)
		assert.Equal(t, "No data", err.Error())
	})
}

func TestCompanyRepo_Update_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)

		_, err := repo.Update(context.Background(), "nope", map[string]any{"name": "X"})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err), "expected not found, got %v", err)
	})
}

func TestCompanyRepo_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewCompanyRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewCompanyRequest().Build())
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.Handle))

		_, err = repo.GetByHandle(ctx, created.Handle)
		assert.True(t, apperrors.IsNotFound(err))

		err = repo.Delete(ctx, created.Handle)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err), "expected not found, got %v", err)
	})
}

func intPtr(v int) *int { return &v }
