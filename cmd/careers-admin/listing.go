package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/seedstage/careers-api/internal/data"
	"github.com/seedstage/careers-api/internal/domain/model"
)

// unsetIntFlag marks numeric filter flags the caller did not provide.
const unsetIntFlag = -1

type listCompaniesOptions struct {
	Name         string
	MinEmployees int
	MaxEmployees int
}

type listJobsOptions struct {
	Title     string
	MinSalary int
	HasEquity string
}

func runListCompanies(cmdCtx *commandContext, args []string) error {
	opts, err := parseListCompaniesFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, time.Minute, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewCompanyRepo(db)
		companies, listErr := repo.List(ctx, opts.filter())
		if listErr != nil {
			return fmt.Errorf("list companies: %w", listErr)
		}
		return printCompanyTable(companies)
	})
}

func runListJobs(cmdCtx *commandContext, args []string) error {
	opts, err := parseListJobsFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, time.Minute, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewJobRepo(db)
		jobs, listErr := repo.List(ctx, opts.filter())
		if listErr != nil {
			return fmt.Errorf("list jobs: %w", listErr)
		}
		return printJobTable(jobs)
	})
}

func (o listCompaniesOptions) filter() model.CompanyFilter {
	var filter model.CompanyFilter
	if o.Name != "" {
		name := o.Name
		filter.Name = &name
	}
	if o.MinEmployees != unsetIntFlag {
		minEmployees := o.MinEmployees
		filter.MinEmployees = &minEmployees
	}
	if o.MaxEmployees != unsetIntFlag {
		maxEmployees := o.MaxEmployees
		filter.MaxEmployees = &maxEmployees
	}
	return filter
}

func (o listJobsOptions) filter() model.JobFilter {
	var filter model.JobFilter
	if o.Title != "" {
		title := o.Title
		filter.Title = &title
	}
	if o.MinSalary != unsetIntFlag {
		minSalary := o.MinSalary
		filter.MinSalary = &minSalary
	}
	if o.HasEquity != "" {
		hasEquity := o.HasEquity == "true"
		filter.HasEquity = &hasEquity
	}
	return filter
}

func parseListCompaniesFlags(args []string) (listCompaniesOptions, error) {
	fs := flag.NewFlagSet("list-companies", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listCompaniesOptions{
		MinEmployees: unsetIntFlag,
		MaxEmployees: unsetIntFlag,
	}
	fs.StringVar(&opts.Name, "name", "", "Filter by name substring (case-insensitive)")
	fs.IntVar(&opts.MinEmployees, "min-employees", unsetIntFlag, "Minimum employee count")
	fs.IntVar(&opts.MaxEmployees, "max-employees", unsetIntFlag, "Maximum employee count")

	if err := fs.Parse(args); err != nil {
		return listCompaniesOptions{}, err
	}

	opts.Name = strings.TrimSpace(opts.Name)
	if err := validateEmployeeBounds(opts); err != nil {
		return listCompaniesOptions{}, err
	}

	return opts, nil
}

func validateEmployeeBounds(opts listCompaniesOptions) error {
	if opts.MinEmployees != unsetIntFlag && opts.MinEmployees < 0 {
		return errors.New("--min-employees must be >= 0")
	}
	if opts.MaxEmployees != unsetIntFlag && opts.MaxEmployees < 0 {
		return errors.New("--max-employees must be >= 0")
	}
	return nil
}

func parseListJobsFlags(args []string) (listJobsOptions, error) {
	fs := flag.NewFlagSet("list-jobs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listJobsOptions{
		MinSalary: unsetIntFlag,
	}
	fs.StringVar(&opts.Title, "title", "", "Filter by title substring (case-insensitive)")
	fs.IntVar(&opts.MinSalary, "min-salary", unsetIntFlag, "Minimum salary")
	fs.StringVar(&opts.HasEquity, "has-equity", "", "Filter by equity presence (true or false)")

	if err := fs.Parse(args); err != nil {
		return listJobsOptions{}, err
	}

	opts.Title = strings.TrimSpace(opts.Title)
	opts.HasEquity = strings.ToLower(strings.TrimSpace(opts.HasEquity))
	if opts.HasEquity != "" && opts.HasEquity != "true" && opts.HasEquity != "false" {
		return listJobsOptions{}, errors.New(`--has-equity must be "true" or "false"`)
	}
	if opts.MinSalary != unsetIntFlag && opts.MinSalary < 0 {
		return listJobsOptions{}, errors.New("--min-salary must be >= 0")
	}

	return opts, nil
}

func printCompanyTable(companies []*model.Company) error {
	if len(companies) == 0 {
		if err := writeln(os.Stdout, "(no companies found)"); err != nil {
			return fmt.Errorf("print empty companies notice: %w", err)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Handle\tName\tEmployees\tLogo URL"); err != nil {
		return fmt.Errorf("write company header: %w", err)
	}
	for _, c := range companies {
		if err := writef(w, "%s\t%s\t%s\t%s\n",
			c.Handle,
			c.Name,
			renderOptionalInt(c.NumEmployees),
			renderOptionalString(c.LogoURL),
		); err != nil {
			return fmt.Errorf("write company row %q: %w", c.Handle, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush company table: %w", err)
	}

	if err := writef(os.Stdout, "\nTotal companies: %d\n", len(companies)); err != nil {
		return fmt.Errorf("print company total: %w", err)
	}
	return nil
}

func printJobTable(jobs []*model.Job) error {
	if len(jobs) == 0 {
		if err := writeln(os.Stdout, "(no jobs found)"); err != nil {
			return fmt.Errorf("print empty jobs notice: %w", err)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tTitle\tCompany\tSalary\tEquity"); err != nil {
		return fmt.Errorf("write job header: %w", err)
	}
	for _, j := range jobs {
		equity := "-"
		if j.Equity != nil {
			equity = j.Equity.String()
		}
		if err := writef(w, "%d\t%s\t%s\t%s\t%s\n",
			j.ID,
			j.Title,
			j.CompanyHandle,
			renderOptionalInt(j.Salary),
			equity,
		); err != nil {
			return fmt.Errorf("write job row %d: %w", j.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush job table: %w", err)
	}

	if err := writef(os.Stdout, "\nTotal jobs: %d\n", len(jobs)); err != nil {
		return fmt.Errorf("print job total: %w", err)
	}
	return nil
}

func renderOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func renderOptionalString(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
