package deps

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardo/stackforge/internal/domain"
)

func baseConfig() *domain.Config {
	return &domain.Config{
		ProjectName: "myapp",
		Language:    domain.LangTypeScript,
		Frontends:   []domain.FrontendSelection{{Frontend: domain.FrontendReact, Directory: "frontend"}},
		Engine:      domain.EngineNone,
		Host:        domain.HostNone,
		ORM:         domain.ORMNone,
		Auth:        domain.AuthNone,
		Quality:     domain.QualityNone,
		BuildDir:    "build",
		AssetsDir:   "assets",
		DatabaseDir: "db",
	}
}

func packageNames(entries []domain.DependencyEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Package
	}
	return names
}

// No two entries share a package name and the list is sorted, for any
// configuration.
func TestCollect_UniqueAndSorted(t *testing.T) {
	configs := map[string]func(*domain.Config){
		"bare":    func(*domain.Config) {},
		"plugins": func(c *domain.Config) { c.Plugins = []string{"cors", "swagger", "logger"} },
		"auth":    func(c *domain.Config) { c.Auth = domain.AuthAbsoluteAuth },
		"drizzle_sqlite": func(c *domain.Config) {
			c.Engine = domain.EngineSQLite
			c.ORM = domain.ORMDrizzle
		},
		"prisma_postgres_local": func(c *domain.Config) {
			c.Engine = domain.EnginePostgreSQL
			c.ORM = domain.ORMPrisma
		},
		"all_frontends": func(c *domain.Config) {
			c.Frontends = nil
			for _, f := range domain.Frontends() {
				c.Frontends = append(c.Frontends, domain.FrontendSelection{Frontend: f, Directory: string(f)})
			}
		},
		"everything": func(c *domain.Config) {
			c.Engine = domain.EngineMySQL
			c.ORM = domain.ORMDrizzle
			c.Auth = domain.AuthAbsoluteAuth
			c.Plugins = []string{"cors", "jwt"}
			c.Quality = domain.QualityESLintPrettier
		},
	}

	for name, mutate := range configs {
		t.Run(name, func(t *testing.T) {
			cfg := baseConfig()
			mutate(cfg)

			entries := Collect(cfg)
			names := packageNames(entries)

			assert.True(t, sort.StringsAreSorted(names), "not sorted: %v", names)
			seen := make(map[string]bool)
			for _, n := range names {
				assert.False(t, seen[n], "duplicate package %s", n)
				seen[n] = true
			}
		})
	}
}

func TestCollect_DrizzleSQLite(t *testing.T) {
	cfg := baseConfig()
	cfg.Engine = domain.EngineSQLite
	cfg.ORM = domain.ORMDrizzle

	names := packageNames(Collect(cfg))
	assert.Contains(t, names, "drizzle-orm")
	assert.Contains(t, names, "drizzle-kit")
	// Local sqlite uses bun:sqlite, no driver package.
	assert.NotContains(t, names, "@libsql/client")
}

func TestCollect_TursoAddsLibSQL(t *testing.T) {
	cfg := baseConfig()
	cfg.Engine = domain.EngineSQLite
	cfg.Host = domain.HostTurso
	cfg.ORM = domain.ORMDrizzle

	names := packageNames(Collect(cfg))
	assert.Contains(t, names, "@libsql/client")
}

func TestCollect_NeonAddsServerlessDriver(t *testing.T) {
	cfg := baseConfig()
	cfg.Engine = domain.EnginePostgreSQL
	cfg.Host = domain.HostNeon

	names := packageNames(Collect(cfg))
	assert.Contains(t, names, "@neondatabase/serverless")
	assert.NotContains(t, names, "pg")
}

func TestCollect_AuthPluginIncluded(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth = domain.AuthAbsoluteAuth

	entries := Collect(cfg)
	var found bool
	for _, e := range entries {
		if e.Package == "absolute-auth" {
			found = true
			require.NotNil(t, e.Plugin)
		}
	}
	assert.True(t, found)
}

func TestCollect_FirstVersionWins(t *testing.T) {
	// react appears once even when selected twice over different dirs.
	cfg := baseConfig()
	cfg.Frontends = []domain.FrontendSelection{
		{Frontend: domain.FrontendReact, Directory: "a"},
		{Frontend: domain.FrontendReact, Directory: "b"},
	}

	entries := Collect(cfg)
	count := 0
	for _, e := range entries {
		if e.Package == "react" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCollect_QualityTools(t *testing.T) {
	cfg := baseConfig()
	cfg.Quality = domain.QualityBiome

	entries := Collect(cfg)
	var found bool
	for _, e := range entries {
		if e.Package == "@biomejs/biome" {
			found = true
			assert.True(t, e.Dev)
		}
	}
	assert.True(t, found)
}

// fakeRegistry resolves some packages and fails others.
type fakeRegistry struct {
	versions map[string]string
}

func (f *fakeRegistry) LatestVersion(_ context.Context, pkg string) (string, error) {
	if v, ok := f.versions[pkg]; ok {
		return v, nil
	}
	return "", fmt.Errorf("lookup failed for %s", pkg)
}

// Individual lookup failures fall back to the pinned version; the batch
// itself never fails.
func TestCollectLatest_PartialFailureFallsBack(t *testing.T) {
	cfg := baseConfig()
	registry := &fakeRegistry{versions: map[string]string{
		"elysia": "9.9.9",
	}}

	entries := CollectLatest(context.Background(), cfg, registry)

	byName := make(map[string]domain.DependencyEntry)
	for _, e := range entries {
		byName[e.Package] = e
	}
	assert.Equal(t, "9.9.9", byName["elysia"].Version)
	// Unresolvable packages keep their pins.
	assert.Equal(t, "19.0.0", byName["react"].Version)

	pinned := Collect(cfg)
	assert.Equal(t, packageNames(pinned), packageNames(entries), "ordering must survive resolution")
}

func TestCollect_JavaScriptSkipsTypeScript(t *testing.T) {
	cfg := baseConfig()
	names := packageNames(Collect(cfg))
	assert.Contains(t, names, "typescript")

	cfg.Language = domain.LangJavaScript
	names = packageNames(Collect(cfg))
	assert.NotContains(t, names, "typescript")
	assert.Contains(t, names, "@types/bun")
}
