package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eduardo/stackforge/internal/domain"
)

// packageJSONPath is the manifest location in the generated project.
const packageJSONPath = "package.json"

// scriptEntry keeps the scripts block ordered; encoding a map would
// shuffle keys between runs.
type scriptEntry struct {
	Name    string
	Command string
}

// GeneratePackageJSON renders the dependency manifest: the collected
// entries split into dependencies/devDependencies plus the scripts block.
// Entry order is preserved from the collector, which sorts by package
// name, so output is deterministic.
func GeneratePackageJSON(cfg *domain.Config, entries []domain.DependencyEntry) *domain.Artifact {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  %s: %s,\n", quote("name"), quote(cfg.ProjectName))
	fmt.Fprintf(&b, "  %s: %s,\n", quote("version"), quote("0.1.0"))
	fmt.Fprintf(&b, "  %s: %s,\n", quote("private"), "true")
	fmt.Fprintf(&b, "  %s: %s,\n", quote("type"), quote("module"))

	writeBlock(&b, "scripts", scripts(cfg), true)

	var deps, devDeps []scriptEntry
	for _, e := range entries {
		pair := scriptEntry{Name: e.Package, Command: e.Version}
		if e.Dev {
			devDeps = append(devDeps, pair)
		} else {
			deps = append(deps, pair)
		}
	}
	writeBlock(&b, "dependencies", deps, true)
	writeBlock(&b, "devDependencies", devDeps, false)

	b.WriteString("}\n")
	return &domain.Artifact{Path: packageJSONPath, Text: b.String()}
}

// scripts builds the fixed scripts block plus the conditional db
// lifecycle scripts for locally run databases.
func scripts(cfg *domain.Config) []scriptEntry {
	out := []scriptEntry{
		{Name: "dev", Command: "bun run --watch src/backend/server.ts"},
	}

	switch cfg.Quality {
	case domain.QualityESLintPrettier:
		out = append(out,
			scriptEntry{Name: "format", Command: "prettier --write ."},
			scriptEntry{Name: "lint", Command: "eslint ."},
		)
	case domain.QualityBiome:
		out = append(out,
			scriptEntry{Name: "format", Command: "biome format --write ."},
			scriptEntry{Name: "lint", Command: "biome lint ."},
		)
	}

	if cfg.Language != domain.LangJavaScript {
		out = append(out, scriptEntry{Name: "typecheck", Command: "tsc --noEmit"})
	}

	if cfg.LocalDatabase() {
		out = append(out,
			scriptEntry{Name: "db:start", Command: "docker compose -f docker-compose.db.yml up -d --wait"},
			scriptEntry{Name: "db:stop", Command: "docker compose -f docker-compose.db.yml down"},
		)
	}
	switch cfg.ORM {
	case domain.ORMDrizzle:
		out = append(out,
			scriptEntry{Name: "db:push", Command: "drizzle-kit push"},
			scriptEntry{Name: "db:studio", Command: "drizzle-kit studio"},
		)
	case domain.ORMPrisma:
		out = append(out,
			scriptEntry{Name: "db:generate", Command: "prisma generate"},
			scriptEntry{Name: "db:migrate", Command: "prisma migrate dev"},
		)
	}
	return out
}

func writeBlock(b *strings.Builder, name string, pairs []scriptEntry, trailingComma bool) {
	fmt.Fprintf(b, "  %s: {", quote(name))
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(b, "\n    %s: %s", quote(p.Name), quote(p.Command))
	}
	if len(pairs) > 0 {
		b.WriteString("\n  ")
	}
	b.WriteString("}")
	if trailingComma {
		b.WriteString(",")
	}
	b.WriteString("\n")
}

func quote(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
