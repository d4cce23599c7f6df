// Package devseed loads development fixture data: a handful of companies,
// job postings, users, and applications. Seeding is idempotent; rows that
// already exist are skipped.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/seedstage/careers-api/internal/data"
	"github.com/seedstage/careers-api/internal/domain/model"
	apperrors "github.com/seedstage/careers-api/internal/errors"
	"github.com/seedstage/careers-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB           *sql.DB
	companies    *service.CompanyService
	jobs         *service.JobService
	users        *service.UserService
	applications *service.ApplicationService
}

// NewServices constructs all required services for seeding using the provided DB.
// The company cache is skipped; seeding talks straight to the repositories.
func NewServices(db *sql.DB) Services {
	companyRepo := data.NewCompanyRepo(db)
	jobRepo := data.NewJobRepo(db)
	userRepo := data.NewUserRepo(db)
	applicationRepo := data.NewApplicationRepo(db)

	return Services{
		DB:        db,
		companies: service.NewCompanyService(service.CompanyServiceOptions{Companies: companyRepo}),
		jobs: service.NewJobService(service.JobServiceOptions{
			Jobs:      jobRepo,
			Companies: companyRepo,
		}),
		users: service.NewUserService(service.UserServiceOptions{Users: userRepo}),
		applications: service.NewApplicationService(service.ApplicationServiceOptions{
			Applications: applicationRepo,
			Jobs:         jobRepo,
		}),
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Companies seed first since jobs reference them; jobs and users then seed
// concurrently, and applications last since they reference both.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if err := seedCompanies(ctx, svcs.companies, logger); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return seedJobs(gctx, svcs.jobs, logger) })
	g.Go(func() error { return seedUsers(gctx, svcs.users, logger) })
	if err := g.Wait(); err != nil {
		return err
	}

	return seedApplications(ctx, svcs, logger)
}

func defaultCompanies() []*model.CreateCompanyRequest {
	return []*model.CreateCompanyRequest{
		{
			Handle:       "anchor-soft",
			Name:         "Anchor Software",
			Description:  "Developer tooling for maritime logistics",
			NumEmployees: intPtr(120),
			LogoURL:      stringPtr("https://cdn.example.com/logos/anchor-soft.png"),
		},
		{
			Handle:       "birchwood",
			Name:         "Birchwood Labs",
			Description:  "Climate analytics",
			NumEmployees: intPtr(35),
		},
		{
			Handle:      "cobalt-metrics",
			Name:        "Cobalt Metrics",
			Description: "Observability for small teams",
		},
	}
}

func seedCompanies(ctx context.Context, svc *service.CompanyService, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, req := range defaultCompanies() {
		req := req
		g.Go(func() error {
			_, err := svc.Create(gctx, req)
			switch {
			case err == nil:
				logInfo(logger, gctx, "created company", "handle", req.Handle)
			case apperrors.IsConflict(err):
				logInfo(logger, gctx, "company already exists", "handle", req.Handle)
			default:
				return fmt.Errorf("seed company %q: %w", req.Handle, err)
			}
			return nil
		})
	}
	return g.Wait()
}

type jobSeedSpec struct {
	title   string
	salary  int
	equity  string
	company string
}

func defaultJobSeedSpecs() []jobSeedSpec {
	return []jobSeedSpec{
		{title: "Backend Engineer", salary: 150000, equity: "0.02", company: "anchor-soft"},
		{title: "Site Reliability Engineer", salary: 165000, equity: "0.015", company: "anchor-soft"},
		{title: "Data Scientist", salary: 140000, equity: "0.05", company: "birchwood"},
		{title: "Field Researcher", salary: 80000, company: "birchwood"},
		{title: "Product Designer", salary: 115000, equity: "0.1", company: "cobalt-metrics"},
	}
}

func seedJobs(ctx context.Context, svc *service.JobService, logger *slog.Logger) error {
	// Jobs have no natural key, so idempotency means indexing what exists.
	existing, err := svc.List(ctx, model.JobFilter{})
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, job := range existing {
		seen[job.CompanyHandle+"/"+job.Title] = true
	}

	for _, spec := range defaultJobSeedSpecs() {
		if seen[spec.company+"/"+spec.title] {
			logInfo(logger, ctx, "job already exists", "title", spec.title, "company", spec.company)
			continue
		}
		req := &model.CreateJobRequest{
			Title:         spec.title,
			Salary:        intPtr(spec.salary),
			CompanyHandle: spec.company,
		}
		if spec.equity != "" {
			eq, parseErr := decimal.NewFromString(spec.equity)
			if parseErr != nil {
				return fmt.Errorf("seed job %q: parse equity: %w", spec.title, parseErr)
			}
			req.Equity = &eq
		}
		if _, createErr := svc.Create(ctx, req); createErr != nil {
			return fmt.Errorf("seed job %q: %w", spec.title, createErr)
		}
		logInfo(logger, ctx, "created job", "title", spec.title, "company", spec.company)
	}
	return nil
}

func defaultUsers() []*model.CreateUserRequest {
	return []*model.CreateUserRequest{
		{Username: "ahern", FirstName: "Ada", LastName: "Hern", Email: "ada@example.com"},
		{Username: "bmoss", FirstName: "Ben", LastName: "Moss", Email: "ben@example.com"},
		{Username: "cvega", FirstName: "Cora", LastName: "Vega", Email: "cora@example.com"},
	}
}

func seedUsers(ctx context.Context, svc *service.UserService, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, req := range defaultUsers() {
		req := req
		g.Go(func() error {
			_, err := svc.Create(gctx, req)
			switch {
			case err == nil:
				logInfo(logger, gctx, "created user", "username", req.Username)
			case apperrors.IsConflict(err):
				logInfo(logger, gctx, "user already exists", "username", req.Username)
			default:
				return fmt.Errorf("seed user %q: %w", req.Username, err)
			}
			return nil
		})
	}
	return g.Wait()
}

type applicationSeedSpec struct {
	username string
	jobTitle string
	company  string
	state    string
}

func defaultApplicationSeedSpecs() []applicationSeedSpec {
	return []applicationSeedSpec{
		{username: "ahern", jobTitle: "Backend Engineer", company: "anchor-soft", state: "applied"},
		{username: "ahern", jobTitle: "Data Scientist", company: "birchwood", state: "interested"},
		{username: "bmoss", jobTitle: "Product Designer", company: "cobalt-metrics", state: "applied"},
	}
}

func seedApplications(ctx context.Context, svcs Services, logger *slog.Logger) error {
	jobs, err := svcs.jobs.List(ctx, model.JobFilter{})
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	jobIDs := make(map[string]int64, len(jobs))
	for _, job := range jobs {
		jobIDs[job.CompanyHandle+"/"+job.Title] = job.ID
	}

	for _, spec := range defaultApplicationSeedSpecs() {
		jobID, ok := jobIDs[spec.company+"/"+spec.jobTitle]
		if !ok {
			return fmt.Errorf("seed application: job %q at %q not found", spec.jobTitle, spec.company)
		}
		_, err := svcs.applications.Apply(ctx, spec.username, jobID, spec.state)
		switch {
		case err == nil:
			logInfo(logger, ctx, "created application", "username", spec.username, "job_id", jobID)
		case apperrors.IsConflict(err):
			logInfo(logger, ctx, "application already exists", "username", spec.username, "job_id", jobID)
		default:
			return fmt.Errorf("seed application for %q: %w", spec.username, err)
		}
	}
	return nil
}

func logInfo(logger *slog.Logger, ctx context.Context, msg string, args ...any) {
	if logger != nil {
		logger.InfoContext(ctx, msg, args...)
	}
}

func intPtr(i int) *int          { return &i }
func stringPtr(s string) *string { return &s }
