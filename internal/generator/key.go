// Package generator renders the source artifacts of a scaffolded project:
// schema, database handlers, container definition, env file, dependency
// manifest and the assembled server entrypoint. Every lookup is keyed by
// a closed TemplateKey so that an unhandled combination is an explicit
// error, never silently wrong output.
package generator

import "github.com/eduardo/stackforge/internal/domain"

// ORMKind is the data-access flavor a template is written for.
type ORMKind string

const (
	// ORMKindSQL is raw parameterized SQL through the engine's driver.
	ORMKindSQL ORMKind = "sql"
	// ORMKindNative is the engine's own document/client API (mongodb).
	ORMKindNative ORMKind = "native"
	ORMKindDrizzle ORMKind = "drizzle"
	ORMKindPrisma  ORMKind = "prisma"
)

// AuthKind selects which demo table the artifacts are built around: the
// users table for auth flows, the count_history table otherwise.
type AuthKind string

const (
	AuthKindAuth  AuthKind = "auth"
	AuthKindCount AuthKind = "count"
)

// TemplateKey indexes the keyed lookup tables of this package. Every
// combination reachable through the resolver either resolves to a
// template or fails with UnsupportedCombinationError.
type TemplateKey struct {
	Engine domain.DatabaseEngine
	ORM    ORMKind
	Host   domain.DatabaseHost
	Auth   AuthKind
}

// KeyFor derives the template key from a resolved configuration.
func KeyFor(cfg *domain.Config) TemplateKey {
	return TemplateKey{
		Engine: cfg.Engine,
		ORM:    ormKindFor(cfg),
		Host:   cfg.Host,
		Auth:   authKindFor(cfg),
	}
}

func ormKindFor(cfg *domain.Config) ORMKind {
	switch cfg.ORM {
	case domain.ORMDrizzle:
		return ORMKindDrizzle
	case domain.ORMPrisma:
		return ORMKindPrisma
	default:
		if cfg.Engine == domain.EngineMongoDB {
			return ORMKindNative
		}
		return ORMKindSQL
	}
}

func authKindFor(cfg *domain.Config) AuthKind {
	if cfg.Auth != domain.AuthNone {
		return AuthKindAuth
	}
	return AuthKindCount
}
