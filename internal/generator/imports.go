package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eduardo/stackforge/internal/domain"
)

// ImportStatement is one parsed TypeScript import: a module path, an
// optional default binding and a set of named bindings.
type ImportStatement struct {
	Module  string
	Default string
	Named   []string
}

// ParseImport parses a single-line TS import statement. Supported shapes:
//
//	import "mod";
//	import Default from "mod";
//	import { a, b } from "mod";
//	import Default, { a, b } from "mod";
func ParseImport(line string) (ImportStatement, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(line), ";")
	if !strings.HasPrefix(trimmed, "import") {
		return ImportStatement{}, fmt.Errorf("not an import statement: %q", line)
	}
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "import"))

	// Side-effect import: no bindings, just the module path.
	if strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, "'") {
		return ImportStatement{Module: strings.Trim(rest, `"'`)}, nil
	}

	clause, module, ok := splitFrom(rest)
	if !ok {
		return ImportStatement{}, fmt.Errorf("malformed import: %q", line)
	}

	stmt := ImportStatement{Module: module}
	if open := strings.Index(clause, "{"); open >= 0 {
		closing := strings.Index(clause, "}")
		if closing < open {
			return ImportStatement{}, fmt.Errorf("malformed import: %q", line)
		}
		for _, name := range strings.Split(clause[open+1:closing], ",") {
			if name = strings.TrimSpace(name); name != "" {
				stmt.Named = append(stmt.Named, name)
			}
		}
		clause = strings.TrimSuffix(strings.TrimSpace(clause[:open]), ",")
	}
	if clause = strings.TrimSpace(clause); clause != "" {
		stmt.Default = clause
	}
	return stmt, nil
}

// splitFrom separates the binding clause from the quoted module path.
func splitFrom(s string) (clause, module string, ok bool) {
	idx := strings.LastIndex(s, " from ")
	if idx < 0 {
		return "", "", false
	}
	module = strings.Trim(strings.TrimSpace(s[idx+len(" from "):]), `"'`)
	return strings.TrimSpace(s[:idx]), module, module != ""
}

// MergeImports groups statements by module path, unions named-import sets
// and keeps the first default binding per module. Output is ordered by
// module path with named imports sorted, which makes the merge idempotent:
// merging its own output reproduces it byte for byte.
func MergeImports(stmts []ImportStatement) []ImportStatement {
	byModule := make(map[string]*ImportStatement)
	var order []string
	for _, s := range stmts {
		m, ok := byModule[s.Module]
		if !ok {
			copied := s
			copied.Named = append([]string(nil), s.Named...)
			byModule[s.Module] = &copied
			order = append(order, s.Module)
			continue
		}
		if m.Default == "" {
			m.Default = s.Default
		}
		m.Named = append(m.Named, s.Named...)
	}

	sort.Strings(order)
	out := make([]ImportStatement, 0, len(order))
	for _, module := range order {
		m := byModule[module]
		m.Named = dedupeNames(m.Named)
		out = append(out, *m)
	}
	return out
}

func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Render emits the statement as source text.
func (s ImportStatement) Render() string {
	switch {
	case s.Default == "" && len(s.Named) == 0:
		return fmt.Sprintf("import %q;", s.Module)
	case s.Default != "" && len(s.Named) == 0:
		return fmt.Sprintf("import %s from %q;", s.Default, s.Module)
	case s.Default == "":
		return fmt.Sprintf("import { %s } from %q;", strings.Join(s.Named, ", "), s.Module)
	default:
		return fmt.Sprintf("import %s, { %s } from %q;", s.Default, strings.Join(s.Named, ", "), s.Module)
	}
}

// RenderImports renders a merged statement list as one block, one
// statement per line.
func RenderImports(stmts []ImportStatement) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(s.Render())
		b.WriteString("\n")
	}
	return b.String()
}

// dependencyImports declares the server-side import contributed by plain
// (non-plugin) runtime dependencies that appear in the assembled server.
var dependencyImports = map[string]ImportStatement{
	"elysia":   {Module: "elysia", Named: []string{"Elysia"}},
	"htmx.org": {Module: "htmx.org"},
}

// assetOnlyImports marks dependency imports that only make sense when a
// JS-rendered frontend is part of the build.
var assetOnlyImports = map[string]bool{
	"htmx.org": true,
}

// BuildImports synthesizes the server's import block from the frontend
// handler table, the dependency list, the example components and the
// driver tables, merged into one statement per module path. When two
// frontends would import same-named default components, a shim module
// re-exporting both under distinct names is returned as a side artifact
// and its import substituted.
func BuildImports(cfg *domain.Config, entries []domain.DependencyEntry) (string, *domain.Artifact) {
	var stmts []ImportStatement

	// (a) page-handler functions, one per selected frontend, plus the
	// user handlers threaded into the auth callback.
	for _, sel := range cfg.Frontends {
		spec := sel.Frontend.Spec()
		stmts = append(stmts, ImportStatement{
			Module: spec.HandlerModule,
			Named:  []string{spec.HandlerFunc},
		})
	}
	if cfg.Auth != domain.AuthNone && cfg.Engine != domain.EngineNone {
		stmts = append(stmts, ImportStatement{
			Module: "./src/backend/handlers/db",
			Named:  []string{"createUser", "getUser"},
		})
	}

	// (b) dependency-declared imports: plugin bindings plus the statements
	// registered in dependencyImports. Asset-only imports are dropped when
	// no JS-rendered frontend is selected.
	for _, e := range entries {
		if e.Plugin != nil {
			stmts = append(stmts, ImportStatement{
				Module:  e.Plugin.Package,
				Default: e.Plugin.DefaultImport,
				Named:   append([]string(nil), e.Plugin.NamedImports...),
			})
			continue
		}
		imp, ok := dependencyImports[e.Package]
		if !ok {
			continue
		}
		if assetOnlyImports[e.Package] && !cfg.HasJSFrontend() {
			continue
		}
		stmts = append(stmts, imp)
	}

	// (c) example-component default imports, with the duplicate-name shim.
	componentStmts, shim := exampleComponentImports(cfg)
	stmts = append(stmts, componentStmts...)

	// (d) driver/connector imports for the database configuration.
	stmts = append(stmts, driverImports(cfg)...)

	return RenderImports(MergeImports(stmts)), shim
}

// shimModulePath is where the disambiguation shim is generated, and the
// module path the server imports it from.
const (
	shimArtifactPath = "src/shared/examples.ts"
	shimModule       = "./src/shared/examples"
)

// componentRefs returns, per JS frontend, the identifier its example
// component is bound to in the server scope: the component's own default
// export name, or the shim alias when two frontends share a name. The
// server generator uses the same mapping for its route arguments.
func componentRefs(cfg *domain.Config) map[domain.Frontend]string {
	nameCount := make(map[string]int)
	for _, sel := range cfg.Frontends {
		if name := sel.Frontend.Spec().ExampleComponent; name != "" {
			nameCount[name]++
		}
	}
	refs := make(map[domain.Frontend]string)
	for _, sel := range cfg.Frontends {
		name := sel.Frontend.Spec().ExampleComponent
		if name == "" {
			continue
		}
		if nameCount[name] > 1 {
			refs[sel.Frontend] = shimAlias(sel.Frontend)
		} else {
			refs[sel.Frontend] = name
		}
	}
	return refs
}

// exampleComponentImports returns the default import of each JS frontend's
// example component. Frontends whose components share a default export
// name cannot be imported directly side by side; those are rerouted
// through a generated shim that re-exports each under a distinct name.
func exampleComponentImports(cfg *domain.Config) ([]ImportStatement, *domain.Artifact) {
	type component struct {
		frontend domain.Frontend
		spec     domain.FrontendSpec
	}
	var components []component
	nameCount := make(map[string]int)
	for _, sel := range cfg.Frontends {
		spec := sel.Frontend.Spec()
		if spec.ExampleComponent == "" {
			continue
		}
		components = append(components, component{frontend: sel.Frontend, spec: spec})
		nameCount[spec.ExampleComponent]++
	}

	var stmts []ImportStatement
	var shimExports []string
	var shimNames []string
	for _, c := range components {
		if nameCount[c.spec.ExampleComponent] < 2 {
			stmts = append(stmts, ImportStatement{
				Module:  c.spec.ExampleModule,
				Default: c.spec.ExampleComponent,
			})
			continue
		}
		alias := shimAlias(c.frontend)
		// Shim lives one level below the project root; component modules
		// are addressed relative to it.
		rel := strings.TrimPrefix(c.spec.ExampleModule, "./src/")
		shimExports = append(shimExports,
			fmt.Sprintf("export { default as %s } from %q;", alias, "../"+rel))
		shimNames = append(shimNames, alias)
	}

	if len(shimNames) == 0 {
		return stmts, nil
	}
	stmts = append(stmts, ImportStatement{Module: shimModule, Named: shimNames})
	shim := &domain.Artifact{
		Path: shimArtifactPath,
		Text: strings.Join(shimExports, "\n") + "\n",
	}
	return stmts, shim
}

// shimAlias builds the distinct re-export name for a frontend, e.g.
// VueExample for vue.
func shimAlias(f domain.Frontend) string {
	name := string(f)
	return strings.ToUpper(name[:1]) + name[1:] + "Example"
}

// driverImports returns the database client imports for the resolved
// (engine, host, orm) triple. The empty slice is valid for engine=none.
func driverImports(cfg *domain.Config) []ImportStatement {
	var stmts []ImportStatement
	drizzle := cfg.ORM == domain.ORMDrizzle
	prisma := cfg.ORM == domain.ORMPrisma

	if prisma {
		return []ImportStatement{{Module: "@prisma/client", Named: []string{"PrismaClient"}}}
	}

	switch cfg.Engine {
	case domain.EngineSQLite:
		if cfg.Host == domain.HostTurso {
			stmts = append(stmts, ImportStatement{Module: "@libsql/client", Named: []string{"createClient"}})
			if drizzle {
				stmts = append(stmts, ImportStatement{Module: "drizzle-orm/libsql", Named: []string{"drizzle"}})
			}
		} else {
			stmts = append(stmts, ImportStatement{Module: "bun:sqlite", Named: []string{"Database"}})
			if drizzle {
				stmts = append(stmts, ImportStatement{Module: "drizzle-orm/bun-sqlite", Named: []string{"drizzle"}})
			}
		}
	case domain.EnginePostgreSQL:
		switch cfg.Host {
		case domain.HostNeon:
			stmts = append(stmts, ImportStatement{Module: "@neondatabase/serverless", Named: []string{"neon"}})
			if drizzle {
				stmts = append(stmts, ImportStatement{Module: "drizzle-orm/neon-http", Named: []string{"drizzle"}})
			}
		case domain.HostPlanetScale:
			stmts = append(stmts, ImportStatement{Module: "@planetscale/database", Named: []string{"Client"}})
			if drizzle {
				stmts = append(stmts, ImportStatement{Module: "drizzle-orm/planetscale-serverless", Named: []string{"drizzle"}})
			}
		default:
			stmts = append(stmts, ImportStatement{Module: "pg", Named: []string{"Pool"}})
			if drizzle {
				stmts = append(stmts, ImportStatement{Module: "drizzle-orm/node-postgres", Named: []string{"drizzle"}})
			}
		}
	case domain.EngineMySQL, domain.EngineMariaDB:
		if cfg.Host == domain.HostPlanetScale {
			stmts = append(stmts, ImportStatement{Module: "@planetscale/database", Named: []string{"Client"}})
			if drizzle {
				stmts = append(stmts, ImportStatement{Module: "drizzle-orm/planetscale-serverless", Named: []string{"drizzle"}})
			}
		} else {
			stmts = append(stmts, ImportStatement{Module: "mysql2/promise", Default: "mysql"})
			if drizzle {
				stmts = append(stmts, ImportStatement{Module: "drizzle-orm/mysql2", Named: []string{"drizzle"}})
			}
		}
	case domain.EngineMongoDB:
		stmts = append(stmts, ImportStatement{Module: "mongodb", Named: []string{"MongoClient"}})
	}
	return stmts
}
