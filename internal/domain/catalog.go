package domain

// The option catalog is the closed set of valid values per configuration
// dimension. Every resolver check and every generator lookup is driven by
// the tables in this file, so adding a new engine/host/ORM starts here.

// Frontend identifies a supported frontend framework.
type Frontend string

const (
	FrontendReact  Frontend = "react"
	FrontendSvelte Frontend = "svelte"
	FrontendVue    Frontend = "vue"
	FrontendSolid  Frontend = "solid"
	FrontendHTMX   Frontend = "htmx"
	FrontendHTML   Frontend = "html"
)

// Frontends lists every selectable frontend in catalog order.
func Frontends() []Frontend {
	return []Frontend{FrontendReact, FrontendSvelte, FrontendVue, FrontendSolid, FrontendHTMX, FrontendHTML}
}

// Valid reports whether f is a catalog frontend.
func (f Frontend) Valid() bool {
	for _, v := range Frontends() {
		if f == v {
			return true
		}
	}
	return false
}

// FrontendSpec describes how a frontend is wired into the generated server.
type FrontendSpec struct {
	// HandlerFunc is the page-request handler the generated server imports.
	HandlerFunc string
	// HandlerModule is the module path the handler is imported from.
	HandlerModule string
	// ExampleComponent is the default-exported example component, empty for
	// asset-only frontends (htmx, html) that ship no JS component.
	ExampleComponent string
	// ExampleModule is the module path of the example component.
	ExampleModule string
	// AssetOnly marks frontends rendered without a JS bundle.
	AssetOnly bool
}

var frontendSpecs = map[Frontend]FrontendSpec{
	FrontendReact: {
		HandlerFunc:      "handleReactPageRequest",
		HandlerModule:    "./src/backend/handlers/react",
		ExampleComponent: "ReactExample",
		ExampleModule:    "./src/react/Example",
	},
	FrontendSvelte: {
		HandlerFunc:      "handleSveltePageRequest",
		HandlerModule:    "./src/backend/handlers/svelte",
		ExampleComponent: "Example",
		ExampleModule:    "./src/svelte/Example.svelte",
	},
	FrontendVue: {
		HandlerFunc:      "handleVuePageRequest",
		HandlerModule:    "./src/backend/handlers/vue",
		ExampleComponent: "Example",
		ExampleModule:    "./src/vue/Example.vue",
	},
	FrontendSolid: {
		HandlerFunc:      "handleSolidPageRequest",
		HandlerModule:    "./src/backend/handlers/solid",
		ExampleComponent: "SolidExample",
		ExampleModule:    "./src/solid/Example",
	},
	FrontendHTMX: {
		HandlerFunc:   "handleHTMXPageRequest",
		HandlerModule: "./src/backend/handlers/htmx",
		AssetOnly:     true,
	},
	FrontendHTML: {
		HandlerFunc:   "handleHTMLPageRequest",
		HandlerModule: "./src/backend/handlers/html",
		AssetOnly:     true,
	},
}

// Spec returns the wiring metadata for f. The zero value is returned for
// values outside the catalog; callers validate first.
func (f Frontend) Spec() FrontendSpec {
	return frontendSpecs[f]
}

// DatabaseEngine identifies the database system backing the generated app.
type DatabaseEngine string

const (
	EngineNone       DatabaseEngine = "none"
	EngineSQLite     DatabaseEngine = "sqlite"
	EnginePostgreSQL DatabaseEngine = "postgresql"
	EngineMySQL      DatabaseEngine = "mysql"
	EngineMariaDB    DatabaseEngine = "mariadb"
	EngineMongoDB    DatabaseEngine = "mongodb"
)

// Engines lists every selectable database engine, including none.
func Engines() []DatabaseEngine {
	return []DatabaseEngine{EngineNone, EngineSQLite, EnginePostgreSQL, EngineMySQL, EngineMariaDB, EngineMongoDB}
}

func (e DatabaseEngine) Valid() bool {
	for _, v := range Engines() {
		if e == v {
			return true
		}
	}
	return false
}

// DefaultPort is the conventional port the engine's server listens on.
// Port allocation probes upward from here. Zero for engines that do not
// run a local server process (none, sqlite).
func (e DatabaseEngine) DefaultPort() int {
	switch e {
	case EnginePostgreSQL:
		return 5432
	case EngineMySQL, EngineMariaDB:
		return 3306
	case EngineMongoDB:
		return 27017
	default:
		return 0
	}
}

// DatabaseHost identifies a managed database provider, or none for a
// locally run instance.
type DatabaseHost string

const (
	HostNone        DatabaseHost = "none"
	HostTurso       DatabaseHost = "turso"
	HostNeon        DatabaseHost = "neon"
	HostPlanetScale DatabaseHost = "planetscale"
)

func Hosts() []DatabaseHost {
	return []DatabaseHost{HostNone, HostTurso, HostNeon, HostPlanetScale}
}

func (h DatabaseHost) Valid() bool {
	for _, v := range Hosts() {
		if h == v {
			return true
		}
	}
	return false
}

// hostEngines is the host <-> engine compatibility table. A host not in
// this map (i.e. HostNone) pairs with any engine.
var hostEngines = map[DatabaseHost][]DatabaseEngine{
	HostTurso:       {EngineSQLite},
	HostNeon:        {EnginePostgreSQL},
	HostPlanetScale: {EnginePostgreSQL, EngineMySQL},
}

// AllowedEngines returns the engines the host supports. Nil means the host
// places no constraint (local instances run any engine).
func (h DatabaseHost) AllowedEngines() []DatabaseEngine {
	return hostEngines[h]
}

// Supports reports whether the host can serve the given engine.
func (h DatabaseHost) Supports(e DatabaseEngine) bool {
	allowed := hostEngines[h]
	if allowed == nil {
		return true
	}
	for _, v := range allowed {
		if v == e {
			return true
		}
	}
	return false
}

// ORM identifies the data-access layer, or none for raw driver queries.
type ORM string

const (
	ORMNone    ORM = "none"
	ORMDrizzle ORM = "drizzle"
	ORMPrisma  ORM = "prisma"
)

func ORMs() []ORM {
	return []ORM{ORMNone, ORMDrizzle, ORMPrisma}
}

func (o ORM) Valid() bool {
	for _, v := range ORMs() {
		if o == v {
			return true
		}
	}
	return false
}

// ormDialects is the ORM <-> dialect subset table: the engines each ORM
// ships a dialect for. ORMNone supports everything by definition.
var ormDialects = map[ORM][]DatabaseEngine{
	ORMDrizzle: {EngineSQLite, EnginePostgreSQL, EngineMySQL, EngineMariaDB},
	ORMPrisma:  {EngineSQLite, EnginePostgreSQL, EngineMySQL, EngineMariaDB, EngineMongoDB},
}

// Dialects returns the engines the ORM supports. Nil means no constraint.
func (o ORM) Dialects() []DatabaseEngine {
	return ormDialects[o]
}

// Supports reports whether the ORM has a dialect for the given engine.
func (o ORM) Supports(e DatabaseEngine) bool {
	dialects := ormDialects[o]
	if dialects == nil {
		return true
	}
	for _, v := range dialects {
		if v == e {
			return true
		}
	}
	return false
}

// AuthProvider identifies the authentication plugin, or none.
type AuthProvider string

const (
	AuthNone         AuthProvider = "none"
	AuthAbsoluteAuth AuthProvider = "absoluteAuth"
)

func AuthProviders() []AuthProvider {
	return []AuthProvider{AuthNone, AuthAbsoluteAuth}
}

func (a AuthProvider) Valid() bool {
	for _, v := range AuthProviders() {
		if a == v {
			return true
		}
	}
	return false
}

// CodeQualityTool identifies the lint/format tool pair for the project.
type CodeQualityTool string

const (
	QualityNone           CodeQualityTool = "none"
	QualityESLintPrettier CodeQualityTool = "eslintPrettier"
	QualityBiome          CodeQualityTool = "biome"
)

func CodeQualityTools() []CodeQualityTool {
	return []CodeQualityTool{QualityNone, QualityESLintPrettier, QualityBiome}
}

func (c CodeQualityTool) Valid() bool {
	for _, v := range CodeQualityTools() {
		if c == v {
			return true
		}
	}
	return false
}

// PluginSpec describes a server plugin: the package that provides it, how
// it is imported, and the `.use(...)` statement the server generator emits.
type PluginSpec struct {
	ID      string
	Package string
	Version string
	// DefaultImport is set for packages exporting the plugin as default.
	DefaultImport string
	// NamedImports lists the named exports the server needs.
	NamedImports []string
	// UseStatement is the `.use(...)` line, empty for plugins whose use
	// call is assembled dynamically (the auth plugin).
	UseStatement string
}

// pluginCatalog maps plugin identifiers to their specs. The auth plugin is
// looked up through AuthPlugin, not selectable by identifier.
var pluginCatalog = map[string]PluginSpec{
	"cors": {
		ID:           "cors",
		Package:      "@elysiajs/cors",
		Version:      "1.2.0",
		NamedImports: []string{"cors"},
		UseStatement: ".use(cors())",
	},
	"swagger": {
		ID:           "swagger",
		Package:      "@elysiajs/swagger",
		Version:      "1.2.0",
		NamedImports: []string{"swagger"},
		UseStatement: ".use(swagger())",
	},
	"html": {
		ID:           "html",
		Package:      "@elysiajs/html",
		Version:      "1.2.0",
		NamedImports: []string{"html"},
		UseStatement: ".use(html())",
	},
	"logger": {
		ID:            "logger",
		Package:       "logixlysia",
		Version:       "4.1.2",
		DefaultImport: "logixlysia",
		UseStatement:  ".use(logixlysia())",
	},
	"jwt": {
		ID:           "jwt",
		Package:      "@elysiajs/jwt",
		Version:      "1.2.0",
		NamedImports: []string{"jwt"},
		UseStatement: `.use(jwt({ name: "jwt", secret: process.env.JWT_SECRET! }))`,
	},
}

// PluginIDs lists the selectable plugin identifiers in catalog order.
func PluginIDs() []string {
	return []string{"cors", "swagger", "html", "logger", "jwt"}
}

// LookupPlugin returns the spec for a selectable plugin identifier.
func LookupPlugin(id string) (PluginSpec, bool) {
	p, ok := pluginCatalog[id]
	return p, ok
}

// AuthPlugin is the spec of the authentication plugin used when
// authProvider is absoluteAuth. Its use statement is assembled by the
// server generator because it embeds route constants and a callback.
var AuthPlugin = PluginSpec{
	ID:           "absoluteAuth",
	Package:      "absolute-auth",
	Version:      "2.1.0",
	NamedImports: []string{"absoluteAuth"},
}

// DefaultPlugins are applied to every generated server regardless of user
// selection.
func DefaultPlugins() []PluginSpec {
	return []PluginSpec{
		{
			ID:           "static",
			Package:      "@elysiajs/static",
			Version:      "1.2.0",
			NamedImports: []string{"staticPlugin"},
			UseStatement: `.use(staticPlugin({ assets: buildDir, prefix: "/" }))`,
		},
	}
}

// RuntimeDependencies are the unconditional runtime packages of every
// generated project.
func RuntimeDependencies() []DependencyEntry {
	return []DependencyEntry{
		{Package: "elysia", Version: "1.2.12"},
	}
}

// DevDependencies are the dev packages of every generated project. The
// typescript compiler is only pulled in for typescript projects.
func DevDependencies(lang Language) []DependencyEntry {
	out := []DependencyEntry{
		{Package: "@types/bun", Version: "1.2.2", Dev: true},
	}
	if lang != LangJavaScript {
		out = append(out, DependencyEntry{Package: "typescript", Version: "5.7.3", Dev: true})
	}
	return out
}
