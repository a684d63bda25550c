package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes one invalid user selection: an out-of-catalog
// value, an incompatible engine/host/orm pair, or a frontend directory
// collision. The resolver collects every instance before reporting, so a
// user sees all problems in one run.
type ValidationError struct {
	// Field names the configuration dimension, e.g. "db-host".
	Field string
	// Value is the offending selection.
	Value string
	// Allowed lists the acceptable values in this context, empty when the
	// error is not a membership check (directory collisions).
	Allowed []string
	// Message overrides the default formatting when set.
	Message string
}

func (e ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s: invalid value %q (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
}

// ValidationErrors aggregates a whole validation batch so callers can
// report every problem in one run.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "invalid configuration:\n  " + strings.Join(msgs, "\n  ")
}

// UnsupportedCombinationError reports a template-matrix gap: a resolved
// configuration reached a generator lookup that has no registered
// template. This is a defect in the matrix, not user error.
type UnsupportedCombinationError struct {
	Artifact string
	Engine   DatabaseEngine
	Host     DatabaseHost
	ORM      ORM
}

func (e UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("no %s template for engine=%s host=%s orm=%s", e.Artifact, e.Engine, e.Host, e.ORM)
}

// ExternalToolError reports a required command-line tool missing from PATH
// when the user declined (or the platform lacks) automatic installation.
type ExternalToolError struct {
	Tool string
	Hint string
}

func (e ExternalToolError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s is required but not installed: %s", e.Tool, e.Hint)
	}
	return fmt.Sprintf("%s is required but not installed", e.Tool)
}

// valueStrings renders a slice of catalog values for an Allowed list.
func valueStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// AllowedEngineStrings, AllowedHostStrings etc. are small helpers used by
// the resolver when building ValidationError.Allowed lists.
func AllowedEngineStrings(vals []DatabaseEngine) []string { return valueStrings(vals) }
func AllowedHostStrings(vals []DatabaseHost) []string     { return valueStrings(vals) }
func AllowedORMStrings(vals []ORM) []string               { return valueStrings(vals) }
func AllowedFrontendStrings(vals []Frontend) []string     { return valueStrings(vals) }
func AllowedAuthStrings(vals []AuthProvider) []string     { return valueStrings(vals) }
func AllowedQualityStrings(vals []CodeQualityTool) []string {
	return valueStrings(vals)
}
