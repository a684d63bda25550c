// Package deps collects the dependency manifest of a generated project:
// default runtime packages, plugins, per-framework and per-database
// conditional packages, merged into one deduplicated, sorted list.
package deps

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/eduardo/stackforge/internal/domain"
)

// frameworkDependencies maps each frontend to the packages it pulls in.
var frameworkDependencies = map[domain.Frontend][]domain.DependencyEntry{
	domain.FrontendReact: {
		{Package: "react", Version: "19.0.0"},
		{Package: "react-dom", Version: "19.0.0"},
		{Package: "@types/react", Version: "19.0.8", Dev: true},
		{Package: "@types/react-dom", Version: "19.0.3", Dev: true},
	},
	domain.FrontendSvelte: {
		{Package: "svelte", Version: "5.19.9"},
	},
	domain.FrontendVue: {
		{Package: "vue", Version: "3.5.13"},
	},
	domain.FrontendSolid: {
		{Package: "solid-js", Version: "1.9.4"},
	},
	domain.FrontendHTMX: {
		{Package: "htmx.org", Version: "2.0.4"},
	},
}

// qualityDependencies maps the code-quality tool to its dev packages.
var qualityDependencies = map[domain.CodeQualityTool][]domain.DependencyEntry{
	domain.QualityESLintPrettier: {
		{Package: "eslint", Version: "9.19.0", Dev: true},
		{Package: "prettier", Version: "3.4.2", Dev: true},
		{Package: "typescript-eslint", Version: "8.23.0", Dev: true},
	},
	domain.QualityBiome: {
		{Package: "@biomejs/biome", Version: "1.9.4", Dev: true},
	},
}

// Collect merges every dependency source for the configuration into one
// list, unique by package name (first occurrence wins) and sorted
// ascending by package name.
func Collect(cfg *domain.Config) []domain.DependencyEntry {
	var entries []domain.DependencyEntry

	entries = append(entries, domain.RuntimeDependencies()...)
	for _, p := range domain.DefaultPlugins() {
		entries = append(entries, pluginEntry(p))
	}
	if cfg.Auth != domain.AuthNone {
		entries = append(entries, pluginEntry(domain.AuthPlugin))
	}
	for _, id := range cfg.Plugins {
		// Unknown identifiers cannot occur post-validation; skip quietly.
		if p, ok := domain.LookupPlugin(id); ok {
			entries = append(entries, pluginEntry(p))
		}
	}
	for _, sel := range cfg.Frontends {
		entries = append(entries, frameworkDependencies[sel.Frontend]...)
	}
	entries = append(entries, driverDependencies(cfg)...)
	entries = append(entries, qualityDependencies[cfg.Quality]...)
	entries = append(entries, domain.DevDependencies(cfg.Language)...)

	return dedupeSorted(entries)
}

// CollectLatest is Collect with each version re-resolved against the
// package registry. Lookups run concurrently and individually fall back
// to the pinned version on failure; the batch itself never fails.
func CollectLatest(ctx context.Context, cfg *domain.Config, registry domain.RegistryPort) []domain.DependencyEntry {
	entries := Collect(cfg)

	g, ctx := errgroup.WithContext(ctx)
	for i := range entries {
		g.Go(func() error {
			v, err := registry.LatestVersion(ctx, entries[i].Package)
			if err == nil && v != "" {
				entries[i].Version = v
			}
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()
	return entries
}

func pluginEntry(p domain.PluginSpec) domain.DependencyEntry {
	spec := p
	return domain.DependencyEntry{
		Package: p.Package,
		Version: p.Version,
		Plugin:  &spec,
	}
}

// driverDependencies returns the ORM and driver packages for the
// (engine, host, orm) triple of the configuration.
func driverDependencies(cfg *domain.Config) []domain.DependencyEntry {
	var entries []domain.DependencyEntry

	switch cfg.ORM {
	case domain.ORMDrizzle:
		entries = append(entries,
			domain.DependencyEntry{Package: "drizzle-orm", Version: "0.39.3"},
			domain.DependencyEntry{Package: "drizzle-kit", Version: "0.30.4", Dev: true},
		)
	case domain.ORMPrisma:
		entries = append(entries,
			domain.DependencyEntry{Package: "@prisma/client", Version: "6.3.1"},
			domain.DependencyEntry{Package: "prisma", Version: "6.3.1", Dev: true},
		)
	}

	switch cfg.Engine {
	case domain.EngineSQLite:
		// Local sqlite rides on bun:sqlite, no package needed.
		if cfg.Host == domain.HostTurso {
			entries = append(entries, domain.DependencyEntry{Package: "@libsql/client", Version: "0.14.0"})
		}
	case domain.EnginePostgreSQL:
		switch cfg.Host {
		case domain.HostNeon:
			entries = append(entries, domain.DependencyEntry{Package: "@neondatabase/serverless", Version: "0.10.4"})
		case domain.HostPlanetScale:
			entries = append(entries, domain.DependencyEntry{Package: "@planetscale/database", Version: "1.19.0"})
		default:
			entries = append(entries,
				domain.DependencyEntry{Package: "pg", Version: "8.13.1"},
				domain.DependencyEntry{Package: "@types/pg", Version: "8.11.11", Dev: true},
			)
		}
	case domain.EngineMySQL, domain.EngineMariaDB:
		if cfg.Host == domain.HostPlanetScale {
			entries = append(entries, domain.DependencyEntry{Package: "@planetscale/database", Version: "1.19.0"})
		} else {
			entries = append(entries, domain.DependencyEntry{Package: "mysql2", Version: "3.12.0"})
		}
	case domain.EngineMongoDB:
		entries = append(entries, domain.DependencyEntry{Package: "mongodb", Version: "6.13.0"})
	}
	return entries
}

// dedupeSorted drops repeat package names (keeping the first occurrence's
// version pin) and orders the result by package name.
func dedupeSorted(entries []domain.DependencyEntry) []domain.DependencyEntry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if seen[e.Package] {
			continue
		}
		seen[e.Package] = true
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Package < out[j].Package })
	return out
}
