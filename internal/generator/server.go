package generator

import (
	"fmt"
	"strings"

	"github.com/eduardo/stackforge/internal/domain"
)

// serverPath is the conventional location of the generated entrypoint.
const serverPath = "src/backend/server.ts"

// authRoutePaths are the fixed route constants injected into the auth
// plugin's use statement.
var authRoutePaths = []struct{ Const, Path string }{
	{"AUTH_AUTHORIZE_PATH", "/auth/authorize"},
	{"AUTH_CALLBACK_PATH", "/auth/callback"},
	{"AUTH_PROFILE_PATH", "/auth/profile"},
	{"AUTH_SIGNOUT_PATH", "/auth/signout"},
	{"AUTH_STATUS_PATH", "/auth/status"},
}

// Assemble composes the final server source from the merged import block
// and the configuration. Pure text composition in fixed section order:
// imports, build manifest, database connection, plugin use chain, routes,
// error handler. No I/O happens here.
func Assemble(cfg *domain.Config, importBlock string) (*domain.Artifact, error) {
	connection, err := connectionSnippet(cfg)
	if err != nil {
		return nil, err
	}

	sections := []string{
		strings.TrimRight(importBlock, "\n"),
		buildManifestSection(cfg),
	}
	if connection != "" {
		sections = append(sections, connection)
	}
	if cfg.Auth != domain.AuthNone {
		sections = append(sections, authConstantsSection())
	}
	sections = append(sections, appSection(cfg))

	text := strings.Join(sections, "\n\n") + "\n"
	return &domain.Artifact{Path: serverPath, Text: text}, nil
}

// buildManifestSection declares the build output directory, the resolved
// directory of every frontend, the tailwind paths when enabled, and the
// bundler invocation over the JS entrypoints.
func buildManifestSection(cfg *domain.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const buildDir = %q;\n", cfg.BuildDir)

	b.WriteString("const frontendDirs = {\n")
	for _, sel := range cfg.Frontends {
		fmt.Fprintf(&b, "  %s: %q,\n", sel.Frontend, sel.Directory)
	}
	b.WriteString("};\n")

	if cfg.Tailwind != nil {
		fmt.Fprintf(&b, "const tailwind = { input: %q, output: %q };\n", cfg.Tailwind.Input, cfg.Tailwind.Output)
	}

	if cfg.HasJSFrontend() {
		b.WriteString(`
await Bun.build({
  entrypoints: Object.values(frontendDirs).map((dir) => ` + "`./src/${dir}/index.ts`" + `),
  outdir: buildDir,
});`)
	}
	return b.String()
}

// connectionSnippet returns the database handle construction for the
// resolved (engine, host, orm) triple, or "" when no database is used.
func connectionSnippet(cfg *domain.Config) (string, error) {
	if cfg.Engine == domain.EngineNone {
		return "", nil
	}
	if cfg.ORM == domain.ORMPrisma {
		return "const db = new PrismaClient();", nil
	}
	drizzleORM := cfg.ORM == domain.ORMDrizzle

	switch cfg.Engine {
	case domain.EngineSQLite:
		if cfg.Host == domain.HostTurso {
			client := `const client = createClient({
  url: process.env.TURSO_DATABASE_URL!,
  authToken: process.env.TURSO_AUTH_TOKEN,
});`
			if drizzleORM {
				return client + "\nconst db = drizzle(client);", nil
			}
			return strings.Replace(client, "const client", "const db", 1), nil
		}
		open := fmt.Sprintf("const sqlite = new Database(%q);", cfg.DatabaseDir+"/app.db")
		if drizzleORM {
			return open + "\nconst db = drizzle(sqlite);", nil
		}
		return strings.Replace(open, "const sqlite", "const db", 1), nil

	case domain.EnginePostgreSQL:
		switch cfg.Host {
		case domain.HostNeon:
			if drizzleORM {
				return "const sql = neon(process.env.NEON_DATABASE_URL!);\nconst db = drizzle(sql);", nil
			}
			return "const db = neon(process.env.NEON_DATABASE_URL!);", nil
		case domain.HostPlanetScale:
			return planetScaleSnippet(drizzleORM), nil
		default:
			pool := "const pool = new Pool({ connectionString: process.env.DATABASE_URL });"
			if drizzleORM {
				return pool + "\nconst db = drizzle(pool);", nil
			}
			return strings.Replace(pool, "const pool", "const db", 1), nil
		}

	case domain.EngineMySQL, domain.EngineMariaDB:
		if cfg.Host == domain.HostPlanetScale {
			return planetScaleSnippet(drizzleORM), nil
		}
		pool := "const pool = mysql.createPool(process.env.DATABASE_URL!);"
		if drizzleORM {
			return pool + "\n" + `const db = drizzle(pool, { mode: "default" });`, nil
		}
		return strings.Replace(pool, "const pool", "const db", 1), nil

	case domain.EngineMongoDB:
		return `const client = new MongoClient(process.env.DATABASE_URL!);
await client.connect();
const db = client.db();`, nil
	}
	return "", domain.UnsupportedCombinationError{Artifact: "connection", Engine: cfg.Engine, Host: cfg.Host, ORM: cfg.ORM}
}

func planetScaleSnippet(drizzleORM bool) string {
	client := `const client = new Client({
  host: process.env.PLANETSCALE_HOST!,
  username: process.env.PLANETSCALE_USERNAME!,
  password: process.env.PLANETSCALE_PASSWORD!,
});`
	if drizzleORM {
		return client + "\nconst db = drizzle(client);"
	}
	return strings.Replace(client, "const client", "const db", 1)
}

func authConstantsSection() string {
	var b strings.Builder
	for i, rp := range authRoutePaths {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "const %s = %q;", rp.Const, rp.Path)
	}
	return b.String()
}

// appSection chains the Elysia app: plugin use statements, one route per
// frontend (the first bound to /, the rest to /<name>), and the trailing
// error handler.
func appSection(cfg *domain.Config) string {
	var b strings.Builder
	b.WriteString("const app = new Elysia()\n")

	for _, p := range domain.DefaultPlugins() {
		fmt.Fprintf(&b, "  %s\n", p.UseStatement)
	}
	for _, id := range cfg.Plugins {
		if p, ok := domain.LookupPlugin(id); ok {
			fmt.Fprintf(&b, "  %s\n", p.UseStatement)
		}
	}
	if cfg.Auth != domain.AuthNone {
		b.WriteString(authUseStatement(cfg))
	}

	refs := componentRefs(cfg)
	for i, sel := range cfg.Frontends {
		route := "/"
		if i > 0 {
			route = "/" + string(sel.Frontend)
		}
		fmt.Fprintf(&b, "  .get(%q, () => %s)\n", route, handlerCall(sel, refs))
	}

	b.WriteString(`  .onError(({ code, error }) => {
    console.error(code, error);
    return new Response("Internal Server Error", { status: 500 });
  })
  .listen(3000);

console.log(` + "`Listening on http://localhost:${app.server?.port}`" + `);`)
	return b.String()
}

// authUseStatement assembles the auth plugin's use call: the fixed route
// constants plus a callback threading the database handle into the user
// handlers. ORM-backed handles need the type parameter so the callback's
// handler calls typecheck against the wrapped client.
func authUseStatement(cfg *domain.Config) string {
	typeParam := ""
	if cfg.ORM != domain.ORMNone {
		typeParam = "<typeof db>"
	}
	return fmt.Sprintf(`  .use(
    absoluteAuth%s({
      authorizePath: AUTH_AUTHORIZE_PATH,
      callbackPath: AUTH_CALLBACK_PATH,
      profilePath: AUTH_PROFILE_PATH,
      signOutPath: AUTH_SIGNOUT_PATH,
      statusPath: AUTH_STATUS_PATH,
      onCallback: async (profile) => {
        const existing = await getUser(db, profile.email);
        if (!existing) {
          await createUser(db, {
            id: profile.sub,
            email: profile.email,
            name: profile.name,
            avatarUrl: profile.picture,
            provider: profile.provider,
          });
        }
      },
    }),
  )
`, typeParam)
}

// handlerCall renders the framework-specific argument shape of a page
// handler invocation: JS frameworks receive their example component,
// asset-only frameworks the build directory and their own directory.
func handlerCall(sel domain.FrontendSelection, refs map[domain.Frontend]string) string {
	spec := sel.Frontend.Spec()
	if spec.AssetOnly {
		return fmt.Sprintf("%s(buildDir, %q)", spec.HandlerFunc, sel.Directory)
	}
	return fmt.Sprintf("%s(%s)", spec.HandlerFunc, refs[sel.Frontend])
}
