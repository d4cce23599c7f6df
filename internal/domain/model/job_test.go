package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateJobRequest_Validate(t *testing.T) {
	valid := CreateJobRequest{Title: "Engineer", CompanyHandle: "acme"}
	assert.NoError(t, valid.Validate())

	withNumbers := CreateJobRequest{
		Title:         "Engineer",
		Salary:        intPtr(120000),
		Equity:        decPtr("0.05"),
		CompanyHandle: "acme",
	}
	assert.NoError(t, withNumbers.Validate())

	tests := []struct {
		name string
		req  CreateJobRequest
	}{
		{"empty title", CreateJobRequest{CompanyHandle: "acme"}},
		{"missing company", CreateJobRequest{Title: "Engineer"}},
		{"negative salary", CreateJobRequest{Title: "Engineer", CompanyHandle: "acme", Salary: intPtr(-1)}},
		{"negative equity", CreateJobRequest{Title: "Engineer", CompanyHandle: "acme", Equity: decPtr("-0.1")}},
		{"equity above one", CreateJobRequest{Title: "Engineer", CompanyHandle: "acme", Equity: decPtr("1.5")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestParseApplicationState(t *testing.T) {
	state, ok := ParseApplicationState("Applied")
	assert.True(t, ok)
	assert.Equal(t, ApplicationStateApplied, state)

	state, ok = ParseApplicationState(" interested ")
	assert.True(t, ok)
	assert.Equal(t, ApplicationStateInterested, state)

	_, ok = ParseApplicationState("ghosted")
	assert.False(t, ok)
}
