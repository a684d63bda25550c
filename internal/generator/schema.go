package generator

import (
	"fmt"
	"path"
	"strings"

	"github.com/eduardo/stackforge/internal/domain"
)

// columnType is the dialect-independent type of a schema column. Each
// dialect's builder maps it onto a concrete column definition.
type columnType int

const (
	colText columnType = iota
	colInteger
	colTimestamp
	colJSON
)

// column is one dialect-independent column definition.
type column struct {
	Name       string
	Type       columnType
	PrimaryKey bool
	Unique     bool
	NotNull    bool
}

// usersColumns is the auth-flow table: the auth plugin's createUser and
// getUser callbacks read and write these columns.
func usersColumns() []column {
	return []column{
		{Name: "id", Type: colText, PrimaryKey: true},
		{Name: "email", Type: colText, Unique: true, NotNull: true},
		{Name: "name", Type: colText},
		{Name: "avatar_url", Type: colText},
		{Name: "provider", Type: colText, NotNull: true},
		{Name: "profile", Type: colJSON},
		{Name: "created_at", Type: colTimestamp, NotNull: true},
	}
}

// countHistoryColumns is the no-auth demo table backing the counter page.
func countHistoryColumns() []column {
	return []column{
		{Name: "id", Type: colInteger, PrimaryKey: true},
		{Name: "count", Type: colInteger, NotNull: true},
		{Name: "created_at", Type: colTimestamp, NotNull: true},
	}
}

// schemaTable selects the demo table for the configuration: users when an
// auth provider is configured, count_history otherwise. Exactly one of
// the two is ever generated.
func schemaTable(cfg *domain.Config) (name string, cols []column) {
	if cfg.Auth != domain.AuthNone {
		return "users", usersColumns()
	}
	return "count_history", countHistoryColumns()
}

// GenerateSchema produces the schema artifact for the configuration:
// a drizzle table module, a prisma schema, or raw SQL DDL. Engines
// without a schema concept (none, or mongodb without an ORM) yield nil.
func GenerateSchema(cfg *domain.Config) (*domain.Artifact, error) {
	if cfg.Engine == domain.EngineNone {
		return nil, nil
	}
	table, cols := schemaTable(cfg)

	switch cfg.ORM {
	case domain.ORMDrizzle:
		text, err := drizzleSchema(cfg.Engine, table, cols)
		if err != nil {
			return nil, err
		}
		return &domain.Artifact{Path: path.Join(cfg.DatabaseDir, "schema.ts"), Text: text}, nil
	case domain.ORMPrisma:
		text, err := prismaSchema(cfg.Engine, table, cols)
		if err != nil {
			return nil, err
		}
		return &domain.Artifact{Path: path.Join(cfg.DatabaseDir, "schema.prisma"), Text: text}, nil
	default:
		if cfg.Engine == domain.EngineMongoDB {
			// Document store without an ORM needs no schema artifact.
			return nil, nil
		}
		text, err := sqlSchema(cfg.Engine, table, cols)
		if err != nil {
			return nil, err
		}
		return &domain.Artifact{Path: path.Join(cfg.DatabaseDir, "schema.sql"), Text: text}, nil
	}
}

// drizzleDialect carries the per-dialect pieces of a drizzle table module.
type drizzleDialect struct {
	core    string // drizzle-orm core module
	tableFn string
	types   map[columnType]string // column builder per abstract type
}

var drizzleDialects = map[domain.DatabaseEngine]drizzleDialect{
	domain.EngineSQLite: {
		core:    "drizzle-orm/sqlite-core",
		tableFn: "sqliteTable",
		types: map[columnType]string{
			colText:      `text(%q)`,
			colInteger:   `integer(%q)`,
			colTimestamp: `integer(%q, { mode: "timestamp" })`,
			colJSON:      `text(%q, { mode: "json" })`,
		},
	},
	domain.EnginePostgreSQL: {
		core:    "drizzle-orm/pg-core",
		tableFn: "pgTable",
		types: map[columnType]string{
			colText:      `text(%q)`,
			colInteger:   `integer(%q)`,
			colTimestamp: `timestamp(%q, { withTimezone: true })`,
			colJSON:      `jsonb(%q)`,
		},
	},
	domain.EngineMySQL: {
		core:    "drizzle-orm/mysql-core",
		tableFn: "mysqlTable",
		types: map[columnType]string{
			colText:      `varchar(%q, { length: 255 })`,
			colInteger:   `int(%q)`,
			colTimestamp: `timestamp(%q)`,
			colJSON:      `json(%q)`,
		},
	},
}

func init() {
	// MariaDB shares the mysql dialect wholesale.
	drizzleDialects[domain.EngineMariaDB] = drizzleDialects[domain.EngineMySQL]
}

// drizzleTypeImports lists, per dialect, the core builders an emitted
// module may reference, keyed by abstract type.
var drizzleTypeImports = map[domain.DatabaseEngine]map[columnType]string{
	domain.EngineSQLite:     {colText: "text", colInteger: "integer", colTimestamp: "integer", colJSON: "text"},
	domain.EnginePostgreSQL: {colText: "text", colInteger: "integer", colTimestamp: "timestamp", colJSON: "jsonb"},
	domain.EngineMySQL:      {colText: "varchar", colInteger: "int", colTimestamp: "timestamp", colJSON: "json"},
	domain.EngineMariaDB:    {colText: "varchar", colInteger: "int", colTimestamp: "timestamp", colJSON: "json"},
}

func drizzleSchema(engine domain.DatabaseEngine, table string, cols []column) (string, error) {
	d, ok := drizzleDialects[engine]
	if !ok {
		return "", domain.UnsupportedCombinationError{Artifact: "schema", Engine: engine, ORM: domain.ORMDrizzle}
	}

	imports := []string{d.tableFn}
	seen := map[string]bool{d.tableFn: true}
	for _, c := range cols {
		name := drizzleTypeImports[engine][c.Type]
		if !seen[name] {
			seen[name] = true
			imports = append(imports, name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "import { %s } from %q;\n\n", strings.Join(imports, ", "), d.core)
	fmt.Fprintf(&b, "export const %s = %s(%q, {\n", camelCase(table), d.tableFn, table)
	for _, c := range cols {
		def := fmt.Sprintf(d.types[c.Type], c.Name)
		if c.PrimaryKey {
			def += ".primaryKey()"
		}
		if c.Unique {
			def += ".unique()"
		}
		if c.NotNull && !c.PrimaryKey {
			def += ".notNull()"
		}
		fmt.Fprintf(&b, "  %s: %s,\n", camelCase(c.Name), def)
	}
	b.WriteString("});\n")
	return b.String(), nil
}

// prismaProviders maps engines onto prisma datasource providers.
var prismaProviders = map[domain.DatabaseEngine]string{
	domain.EngineSQLite:     "sqlite",
	domain.EnginePostgreSQL: "postgresql",
	domain.EngineMySQL:      "mysql",
	domain.EngineMariaDB:    "mysql",
	domain.EngineMongoDB:    "mongodb",
}

// prismaTypes maps abstract column types onto prisma field types, per
// provider family. Sqlite has no native Json type.
func prismaType(engine domain.DatabaseEngine, t columnType) string {
	switch t {
	case colInteger:
		return "Int"
	case colTimestamp:
		return "DateTime"
	case colJSON:
		if engine == domain.EngineSQLite {
			return "String"
		}
		return "Json"
	default:
		return "String"
	}
}

func prismaSchema(engine domain.DatabaseEngine, table string, cols []column) (string, error) {
	provider, ok := prismaProviders[engine]
	if !ok {
		return "", domain.UnsupportedCombinationError{Artifact: "schema", Engine: engine, ORM: domain.ORMPrisma}
	}

	var b strings.Builder
	b.WriteString("generator client {\n  provider = \"prisma-client-js\"\n}\n\n")
	fmt.Fprintf(&b, "datasource db {\n  provider = %q\n  url      = env(\"DATABASE_URL\")\n}\n\n", provider)
	fmt.Fprintf(&b, "model %s {\n", pascalCase(table))
	for _, c := range cols {
		line := fmt.Sprintf("  %s %s", camelCase(c.Name), prismaType(engine, c.Type))
		if !c.NotNull && !c.PrimaryKey {
			line += "?"
		}
		if c.PrimaryKey {
			if engine == domain.EngineMongoDB {
				line += ` @id @map("_id")`
			} else {
				line += " @id"
			}
		}
		if c.Unique {
			line += " @unique"
		}
		if c.Name != camelCase(c.Name) {
			line += fmt.Sprintf(" @map(%q)", c.Name)
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\n  @@map(%q)\n}\n", table)
	return b.String(), nil
}

// sqlTypes is the raw-DDL column-type table per dialect.
var sqlTypes = map[domain.DatabaseEngine]map[columnType]string{
	domain.EngineSQLite: {
		colText: "TEXT", colInteger: "INTEGER", colTimestamp: "INTEGER", colJSON: "TEXT",
	},
	domain.EnginePostgreSQL: {
		colText: "TEXT", colInteger: "INTEGER", colTimestamp: "TIMESTAMPTZ", colJSON: "JSONB",
	},
	domain.EngineMySQL: {
		colText: "VARCHAR(255)", colInteger: "INT", colTimestamp: "TIMESTAMP", colJSON: "JSON",
	},
	domain.EngineMariaDB: {
		colText: "VARCHAR(255)", colInteger: "INT", colTimestamp: "TIMESTAMP", colJSON: "JSON",
	},
}

func sqlSchema(engine domain.DatabaseEngine, table string, cols []column) (string, error) {
	types, ok := sqlTypes[engine]
	if !ok {
		return "", domain.UnsupportedCombinationError{Artifact: "schema", Engine: engine, ORM: domain.ORMNone}
	}

	var defs []string
	for _, c := range cols {
		def := fmt.Sprintf("  %s %s", c.Name, types[c.Type])
		if c.PrimaryKey {
			def += " PRIMARY KEY"
		}
		if c.NotNull && !c.PrimaryKey {
			def += " NOT NULL"
		}
		if c.Unique {
			def += " UNIQUE"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);\n", table, strings.Join(defs, ",\n")), nil
}

// camelCase converts snake_case to camelCase.
func camelCase(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// pascalCase converts snake_case to PascalCase.
func pascalCase(s string) string {
	c := camelCase(s)
	if c == "" {
		return c
	}
	return strings.ToUpper(c[:1]) + c[1:]
}
