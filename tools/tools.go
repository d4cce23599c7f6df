//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install`; go.mod only tracks the
// runtime packages the generated code imports.
package tools

// Development tools (install via `go install`):
//
// mockgen - Generates gomock doubles for the interfaces in internal/core
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Version: v0.6.0 (pinned 2025-06-01)
//   Docs: https://github.com/uber-go/mock
//
// Regenerate mocks with `go generate ./internal/mocks/...`.
