package domain

// Language selects the source language of the generated project.
type Language string

const (
	LangTypeScript Language = "ts"
	LangJavaScript Language = "js"
)

// FrontendSelection is one chosen frontend together with the directory it
// is generated into, relative to the project source root.
type FrontendSelection struct {
	Frontend  Frontend
	Directory string
}

// TailwindConfig holds the optional tailwind input/output paths.
type TailwindConfig struct {
	Input  string
	Output string
}

// RawConfig carries the unvalidated user selections exactly as collected
// from flags and interactive answers. The resolver turns it into a Config
// or a batch of validation errors.
type RawConfig struct {
	ProjectName string
	Language    Language
	Frontends   []FrontendSelection
	Engine      DatabaseEngine
	Host        DatabaseHost
	ORM         ORM
	Auth        AuthProvider
	Plugins     []string
	Quality     CodeQualityTool
	Tailwind    *TailwindConfig
}

// Config is the fully resolved, validated snapshot of all user choices.
// It is created once per invocation and consumed read-only by every
// generator; no component mutates it.
type Config struct {
	ProjectName string
	Language    Language
	Frontends   []FrontendSelection
	Engine      DatabaseEngine
	Host        DatabaseHost
	ORM         ORM
	Auth        AuthProvider
	Plugins     []string
	Quality     CodeQualityTool
	Tailwind    *TailwindConfig

	// Directory layout of the generated project.
	BuildDir    string
	AssetsDir   string
	DatabaseDir string
}

// LocalDatabase reports whether the project runs its own database server
// process (a real engine, not managed by a host, not file-backed sqlite).
func (c *Config) LocalDatabase() bool {
	return c.Engine != EngineNone && c.Engine != EngineSQLite && c.Host == HostNone
}

// HasFrontend reports whether f is among the selected frontends.
func (c *Config) HasFrontend(f Frontend) bool {
	for _, sel := range c.Frontends {
		if sel.Frontend == f {
			return true
		}
	}
	return false
}

// HasJSFrontend reports whether any selected frontend ships a JS bundle.
// Asset-only selections (htmx, html) keep asset imports out of the server.
func (c *Config) HasJSFrontend() bool {
	for _, sel := range c.Frontends {
		if !sel.Frontend.Spec().AssetOnly {
			return true
		}
	}
	return false
}

// DependencyEntry is one package of the generated manifest. Entries are
// unique by Package across a collected set and ordered lexicographically.
type DependencyEntry struct {
	Package string
	Version string
	// Dev routes the entry to devDependencies instead of dependencies.
	Dev bool
	// Plugin is set when the entry was contributed by a server plugin.
	Plugin *PluginSpec
}

// Artifact is one generated output file: a path relative to the project
// root and its full text.
type Artifact struct {
	Path string
	Text string
}
