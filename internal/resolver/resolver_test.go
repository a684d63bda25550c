package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardo/stackforge/internal/domain"
)

func validRaw() domain.RawConfig {
	return domain.RawConfig{
		ProjectName: "myapp",
		Language:    domain.LangTypeScript,
		Frontends:   []domain.FrontendSelection{{Frontend: domain.FrontendReact}},
		Engine:      domain.EngineSQLite,
		Host:        domain.HostNone,
		ORM:         domain.ORMNone,
		Auth:        domain.AuthNone,
		Quality:     domain.QualityNone,
	}
}

func TestResolve_ValidConfig(t *testing.T) {
	res, errs := Resolve(validRaw())
	require.Empty(t, errs)
	require.NotNil(t, res.Config)
	assert.Equal(t, "myapp", res.Config.ProjectName)
	assert.Empty(t, res.Warnings)
}

// Every (host, engine) pair must be accepted iff the compatibility table
// lists it.
func TestResolve_HostEngineMatrix(t *testing.T) {
	for _, host := range domain.Hosts() {
		for _, engine := range domain.Engines() {
			t.Run(fmt.Sprintf("%s_%s", host, engine), func(t *testing.T) {
				raw := validRaw()
				raw.Engine = engine
				raw.Host = host

				_, errs := Resolve(raw)

				// engine=none with a host set normalizes with a warning
				// instead of erroring.
				compatible := host == domain.HostNone ||
					engine == domain.EngineNone ||
					host.Supports(engine)
				if compatible {
					assert.Empty(t, errs)
				} else {
					require.NotEmpty(t, errs)
					assert.Equal(t, "db-host", errs[0].Field)
				}
			})
		}
	}
}

// Drizzle/prisma are accepted iff the engine is in the ORM's dialect
// subset.
func TestResolve_ORMDialectMatrix(t *testing.T) {
	for _, orm := range domain.ORMs() {
		for _, engine := range domain.Engines() {
			t.Run(fmt.Sprintf("%s_%s", orm, engine), func(t *testing.T) {
				raw := validRaw()
				raw.Engine = engine
				raw.ORM = orm

				_, errs := Resolve(raw)

				compatible := orm == domain.ORMNone ||
					engine == domain.EngineNone ||
					orm.Supports(engine)
				if compatible {
					assert.Empty(t, errs)
				} else {
					require.NotEmpty(t, errs)
					assert.Equal(t, "orm", errs[0].Field)
				}
			})
		}
	}
}

// Each ORM's dialect subset must itself be a subset of the engine enum.
func TestDialectSubsetsAreEngines(t *testing.T) {
	for _, orm := range []domain.ORM{domain.ORMDrizzle, domain.ORMPrisma} {
		for _, dialect := range orm.Dialects() {
			assert.True(t, dialect.Valid(), "%s dialect %s not a catalog engine", orm, dialect)
			assert.NotEqual(t, domain.EngineNone, dialect)
		}
	}
}

func TestResolve_InvalidEnums(t *testing.T) {
	raw := validRaw()
	raw.Engine = "oracle"
	raw.Host = "heroku"
	raw.ORM = "hibernate"
	raw.Auth = "okta"
	raw.Quality = "tslint"
	raw.Frontends = append(raw.Frontends, domain.FrontendSelection{Frontend: "angular"})
	raw.Plugins = []string{"unknown-plugin"}

	_, errs := Resolve(raw)
	require.Len(t, errs, 7, "all invalid values must be collected in one batch")

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
		assert.NotEmpty(t, e.Error())
	}
	for _, f := range []string{"db", "db-host", "orm", "auth", "code-quality", "frontend", "plugin"} {
		assert.True(t, fields[f], "missing error for field %s", f)
	}
}

func TestResolve_EngineNoneClearsHostAndORM(t *testing.T) {
	raw := validRaw()
	raw.Engine = domain.EngineNone
	raw.Host = domain.HostNeon
	raw.ORM = domain.ORMDrizzle

	res, errs := Resolve(raw)
	require.Empty(t, errs)
	assert.Equal(t, domain.HostNone, res.Config.Host)
	assert.Equal(t, domain.ORMNone, res.Config.ORM)
	assert.Len(t, res.Warnings, 2)
}

// Auth stores users in the database, so without an engine it is cleared
// the same way host and orm are.
func TestResolve_EngineNoneClearsAuth(t *testing.T) {
	raw := validRaw()
	raw.Engine = domain.EngineNone
	raw.Auth = domain.AuthAbsoluteAuth

	res, errs := Resolve(raw)
	require.Empty(t, errs)
	assert.Equal(t, domain.AuthNone, res.Config.Auth)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "auth")
}

func TestResolve_DuplicatePluginsCollapse(t *testing.T) {
	raw := validRaw()
	raw.Plugins = []string{"cors", "cors", "swagger", "cors"}

	res, errs := Resolve(raw)
	require.Empty(t, errs)
	assert.Equal(t, []string{"cors", "swagger"}, res.Config.Plugins)
}

func TestResolve_DirectoryCollision(t *testing.T) {
	raw := validRaw()
	raw.Frontends = []domain.FrontendSelection{
		{Frontend: domain.FrontendReact, Directory: "app"},
		{Frontend: domain.FrontendSvelte, Directory: "app"},
	}

	_, errs := Resolve(raw)
	require.Len(t, errs, 1)
	assert.Equal(t, "frontend-dir", errs[0].Field)
	assert.Contains(t, errs[0].Error(), "react")
	assert.Contains(t, errs[0].Error(), "svelte")
}

func TestResolve_DistinctDirectoriesAccepted(t *testing.T) {
	raw := validRaw()
	raw.Frontends = []domain.FrontendSelection{
		{Frontend: domain.FrontendReact, Directory: "app"},
		{Frontend: domain.FrontendSvelte, Directory: "admin"},
	}

	res, errs := Resolve(raw)
	require.Empty(t, errs)
	assert.Equal(t, "app", res.Config.Frontends[0].Directory)
	assert.Equal(t, "admin", res.Config.Frontends[1].Directory)
}

func TestResolve_SingleFrontendCollapsesDirectory(t *testing.T) {
	res, errs := Resolve(validRaw())
	require.Empty(t, errs)
	assert.Equal(t, "frontend", res.Config.Frontends[0].Directory)
}

func TestResolve_MultiFrontendDefaultsToFrameworkName(t *testing.T) {
	raw := validRaw()
	raw.Frontends = []domain.FrontendSelection{
		{Frontend: domain.FrontendReact},
		{Frontend: domain.FrontendHTMX},
	}

	res, errs := Resolve(raw)
	require.Empty(t, errs)
	assert.Equal(t, "react", res.Config.Frontends[0].Directory)
	assert.Equal(t, "htmx", res.Config.Frontends[1].Directory)
}

func TestResolve_DefaultsForUnsetDimensions(t *testing.T) {
	raw := domain.RawConfig{
		ProjectName: "bare",
		Frontends:   []domain.FrontendSelection{{Frontend: domain.FrontendHTML}},
	}

	res, errs := Resolve(raw)
	require.Empty(t, errs)
	assert.Equal(t, domain.LangTypeScript, res.Config.Language)
	assert.Equal(t, domain.EngineNone, res.Config.Engine)
	assert.Equal(t, domain.HostNone, res.Config.Host)
	assert.Equal(t, domain.ORMNone, res.Config.ORM)
	assert.Equal(t, domain.AuthNone, res.Config.Auth)
	assert.Equal(t, domain.QualityNone, res.Config.Quality)
}

func TestResolve_EmptyProjectName(t *testing.T) {
	raw := validRaw()
	raw.ProjectName = ""

	_, errs := Resolve(raw)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}
