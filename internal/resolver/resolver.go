// Package resolver validates a raw configuration against the option
// catalog and the compatibility tables, then normalizes defaults into the
// immutable Config consumed by the generators.
package resolver

import (
	"fmt"

	"github.com/eduardo/stackforge/internal/domain"
)

const (
	// singleFrontendDir is the directory a lone frontend collapses into.
	singleFrontendDir = "frontend"

	defaultBuildDir    = "build"
	defaultAssetsDir   = "assets"
	defaultDatabaseDir = "db"
)

// Result is a successfully resolved configuration plus any non-fatal
// normalization warnings (auto-cleared host/orm and the like).
type Result struct {
	Config   *domain.Config
	Warnings []string
}

// Resolve validates raw against the catalog and compatibility tables.
// Every validation error is collected before returning; normalization only
// runs when the whole batch is empty. On failure the returned Result is
// nil and the error slice is non-empty.
func Resolve(raw domain.RawConfig) (*Result, []domain.ValidationError) {
	raw = applyDefaults(raw)

	var errs []domain.ValidationError
	errs = append(errs, validateScalars(raw)...)
	errs = append(errs, validateHostEngine(raw)...)
	errs = append(errs, validateORMDialect(raw)...)
	errs = append(errs, validateDirectories(raw)...)
	if len(errs) > 0 {
		return nil, errs
	}

	return normalize(raw), nil
}

// applyDefaults fills unset dimensions with their catalog defaults so that
// a partial RawConfig (non-interactive --skip runs) validates cleanly.
func applyDefaults(raw domain.RawConfig) domain.RawConfig {
	if raw.Language == "" {
		raw.Language = domain.LangTypeScript
	}
	if raw.Engine == "" {
		raw.Engine = domain.EngineNone
	}
	if raw.Host == "" {
		raw.Host = domain.HostNone
	}
	if raw.ORM == "" {
		raw.ORM = domain.ORMNone
	}
	if raw.Auth == "" {
		raw.Auth = domain.AuthNone
	}
	if raw.Quality == "" {
		raw.Quality = domain.QualityNone
	}
	return raw
}

func validateScalars(raw domain.RawConfig) []domain.ValidationError {
	var errs []domain.ValidationError

	if raw.ProjectName == "" {
		errs = append(errs, domain.ValidationError{
			Field:   "name",
			Message: "project name must not be empty",
		})
	}
	if raw.Language != domain.LangTypeScript && raw.Language != domain.LangJavaScript {
		errs = append(errs, domain.ValidationError{
			Field: "language", Value: string(raw.Language), Allowed: []string{"ts", "js"},
		})
	}
	if !raw.Engine.Valid() {
		errs = append(errs, domain.ValidationError{
			Field: "db", Value: string(raw.Engine),
			Allowed: domain.AllowedEngineStrings(domain.Engines()),
		})
	}
	if !raw.Host.Valid() {
		errs = append(errs, domain.ValidationError{
			Field: "db-host", Value: string(raw.Host),
			Allowed: domain.AllowedHostStrings(domain.Hosts()),
		})
	}
	if !raw.ORM.Valid() {
		errs = append(errs, domain.ValidationError{
			Field: "orm", Value: string(raw.ORM),
			Allowed: domain.AllowedORMStrings(domain.ORMs()),
		})
	}
	if !raw.Auth.Valid() {
		errs = append(errs, domain.ValidationError{
			Field: "auth", Value: string(raw.Auth),
			Allowed: domain.AllowedAuthStrings(domain.AuthProviders()),
		})
	}
	if !raw.Quality.Valid() {
		errs = append(errs, domain.ValidationError{
			Field: "code-quality", Value: string(raw.Quality),
			Allowed: domain.AllowedQualityStrings(domain.CodeQualityTools()),
		})
	}
	for _, sel := range raw.Frontends {
		if !sel.Frontend.Valid() {
			errs = append(errs, domain.ValidationError{
				Field: "frontend", Value: string(sel.Frontend),
				Allowed: domain.AllowedFrontendStrings(domain.Frontends()),
			})
		}
	}
	for _, id := range raw.Plugins {
		if _, ok := domain.LookupPlugin(id); !ok {
			errs = append(errs, domain.ValidationError{
				Field: "plugin", Value: id, Allowed: domain.PluginIDs(),
			})
		}
	}
	return errs
}

func validateHostEngine(raw domain.RawConfig) []domain.ValidationError {
	if raw.Host == domain.HostNone || !raw.Host.Valid() || !raw.Engine.Valid() {
		return nil
	}
	// engine=none with a host set is auto-corrected by normalization.
	if raw.Engine == domain.EngineNone || raw.Host.Supports(raw.Engine) {
		return nil
	}
	return []domain.ValidationError{{
		Field:   "db-host",
		Value:   string(raw.Host),
		Allowed: domain.AllowedEngineStrings(raw.Host.AllowedEngines()),
		Message: fmt.Sprintf("host %q does not serve engine %q (supported engines: %v)",
			raw.Host, raw.Engine, domain.AllowedEngineStrings(raw.Host.AllowedEngines())),
	}}
}

func validateORMDialect(raw domain.RawConfig) []domain.ValidationError {
	if raw.ORM == domain.ORMNone || !raw.ORM.Valid() || !raw.Engine.Valid() {
		return nil
	}
	// engine=none with an ORM set is handled by normalization, not error.
	if raw.Engine == domain.EngineNone || raw.ORM.Supports(raw.Engine) {
		return nil
	}
	return []domain.ValidationError{{
		Field:   "orm",
		Value:   string(raw.ORM),
		Allowed: domain.AllowedEngineStrings(raw.ORM.Dialects()),
		Message: fmt.Sprintf("%s has no dialect for engine %q (supported: %v)",
			raw.ORM, raw.Engine, domain.AllowedEngineStrings(raw.ORM.Dialects())),
	}}
}

// validateDirectories resolves each frontend's directory (explicit value,
// else the framework name) and rejects any two frontends landing in the
// same directory. A map keyed by resolved directory catches the collision
// and the error names both frontends.
func validateDirectories(raw domain.RawConfig) []domain.ValidationError {
	var errs []domain.ValidationError
	seen := make(map[string]domain.Frontend, len(raw.Frontends))
	for _, sel := range raw.Frontends {
		dir := resolveDirectory(sel, len(raw.Frontends))
		if first, ok := seen[dir]; ok {
			errs = append(errs, domain.ValidationError{
				Field: "frontend-dir",
				Value: dir,
				Message: fmt.Sprintf("frontends %q and %q both resolve to directory %q",
					first, sel.Frontend, dir),
			})
			continue
		}
		seen[dir] = sel.Frontend
	}
	return errs
}

func resolveDirectory(sel domain.FrontendSelection, total int) string {
	if sel.Directory != "" {
		return sel.Directory
	}
	if total == 1 {
		return singleFrontendDir
	}
	return string(sel.Frontend)
}

// normalize produces the final Config: resolved frontend directories and
// the engine=none auto-corrections, each reported as a warning rather
// than an error.
func normalize(raw domain.RawConfig) *Result {
	res := &Result{}

	if raw.Engine == domain.EngineNone {
		if raw.Host != domain.HostNone {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("database host %q ignored: no database engine selected", raw.Host))
			raw.Host = domain.HostNone
		}
		if raw.ORM != domain.ORMNone {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("orm %q ignored: no database engine selected", raw.ORM))
			raw.ORM = domain.ORMNone
		}
		if raw.Auth != domain.AuthNone {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("auth %q ignored: user storage needs a database engine", raw.Auth))
			raw.Auth = domain.AuthNone
		}
	}

	// A plugin named twice would otherwise be used twice in the server.
	var plugins []string
	seenPlugins := make(map[string]bool, len(raw.Plugins))
	for _, id := range raw.Plugins {
		if seenPlugins[id] {
			continue
		}
		seenPlugins[id] = true
		plugins = append(plugins, id)
	}

	frontends := make([]domain.FrontendSelection, len(raw.Frontends))
	for i, sel := range raw.Frontends {
		frontends[i] = domain.FrontendSelection{
			Frontend:  sel.Frontend,
			Directory: resolveDirectory(sel, len(raw.Frontends)),
		}
	}

	res.Config = &domain.Config{
		ProjectName: raw.ProjectName,
		Language:    raw.Language,
		Frontends:   frontends,
		Engine:      raw.Engine,
		Host:        raw.Host,
		ORM:         raw.ORM,
		Auth:        raw.Auth,
		Plugins:     plugins,
		Quality:     raw.Quality,
		Tailwind:    raw.Tailwind,
		BuildDir:    defaultBuildDir,
		AssetsDir:   defaultAssetsDir,
		DatabaseDir: defaultDatabaseDir,
	}
	return res
}
