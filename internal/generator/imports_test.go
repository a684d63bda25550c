package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardo/stackforge/internal/deps"
	"github.com/eduardo/stackforge/internal/domain"
)

func TestParseImport(t *testing.T) {
	tests := []struct {
		name string
		line string
		want ImportStatement
	}{
		{
			name: "side effect",
			line: `import "htmx.org";`,
			want: ImportStatement{Module: "htmx.org"},
		},
		{
			name: "default only",
			line: `import ReactExample from "./src/react/Example";`,
			want: ImportStatement{Module: "./src/react/Example", Default: "ReactExample"},
		},
		{
			name: "named only",
			line: `import { Elysia } from "elysia";`,
			want: ImportStatement{Module: "elysia", Named: []string{"Elysia"}},
		},
		{
			name: "default and named",
			line: `import mysql, { createPool } from "mysql2/promise";`,
			want: ImportStatement{Module: "mysql2/promise", Default: "mysql", Named: []string{"createPool"}},
		},
		{
			name: "multiple named",
			line: `import { a, b, c } from "mod";`,
			want: ImportStatement{Module: "mod", Named: []string{"a", "b", "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseImport(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseImport_Malformed(t *testing.T) {
	for _, line := range []string{
		`const x = 1;`,
		`import Foo`,
		`import { a from "mod";`,
	} {
		_, err := ParseImport(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestMergeImports_GroupsByModule(t *testing.T) {
	merged := MergeImports([]ImportStatement{
		{Module: "elysia", Named: []string{"Elysia"}},
		{Module: "elysia", Named: []string{"t"}},
		{Module: "drizzle-orm", Named: []string{"eq"}},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "drizzle-orm", merged[0].Module)
	assert.Equal(t, ImportStatement{Module: "elysia", Named: []string{"Elysia", "t"}}, merged[1])
}

func TestMergeImports_FirstDefaultWins(t *testing.T) {
	merged := MergeImports([]ImportStatement{
		{Module: "mod", Default: "First"},
		{Module: "mod", Default: "Second", Named: []string{"x"}},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "First", merged[0].Default)
	assert.Equal(t, []string{"x"}, merged[0].Named)
}

// Re-running the merge on its own output must reproduce it byte for byte.
func TestMergeImports_Idempotent(t *testing.T) {
	inputs := [][]ImportStatement{
		{
			{Module: "z", Named: []string{"c", "a"}},
			{Module: "a", Default: "A"},
			{Module: "z", Named: []string{"b", "a"}},
			{Module: "m"},
		},
		{
			{Module: "elysia", Named: []string{"Elysia"}},
			{Module: "./handlers", Named: []string{"get", "create"}},
			{Module: "./handlers", Default: "handlers", Named: []string{"get"}},
		},
	}
	for _, stmts := range inputs {
		once := MergeImports(stmts)
		twice := MergeImports(once)
		assert.Equal(t, RenderImports(once), RenderImports(twice))
	}
}

func TestBuildImports_SQLiteDrizzleReact(t *testing.T) {
	cfg := testConfig(func(c *domain.Config) {
		c.Engine = domain.EngineSQLite
		c.ORM = domain.ORMDrizzle
	})

	block, shim := BuildImports(cfg, deps.Collect(cfg))
	assert.Nil(t, shim)
	assert.Contains(t, block, `import { drizzle } from "drizzle-orm/bun-sqlite";`)
	assert.Contains(t, block, `import { Database } from "bun:sqlite";`)
	assert.Contains(t, block, `import { handleReactPageRequest } from "./src/backend/handlers/react";`)
	assert.Contains(t, block, `import ReactExample from "./src/react/Example";`)
}

func TestBuildImports_NeonClient(t *testing.T) {
	cfg := testConfig(func(c *domain.Config) {
		c.Engine = domain.EnginePostgreSQL
		c.Host = domain.HostNeon
	})

	block, _ := BuildImports(cfg, deps.Collect(cfg))
	assert.Contains(t, block, `import { neon } from "@neondatabase/serverless";`)
	assert.NotContains(t, block, `"pg"`)
}

// Vue and Svelte example components both default-export Example; side by
// side they go through the generated shim.
func TestBuildImports_DuplicateComponentShim(t *testing.T) {
	cfg := testConfig(func(c *domain.Config) {
		c.Frontends = []domain.FrontendSelection{
			{Frontend: domain.FrontendVue, Directory: "vue"},
			{Frontend: domain.FrontendSvelte, Directory: "svelte"},
		}
	})

	block, shim := BuildImports(cfg, deps.Collect(cfg))
	require.NotNil(t, shim)
	assert.Equal(t, "src/shared/examples.ts", shim.Path)
	assert.Contains(t, shim.Text, `export { default as VueExample } from "../vue/Example.vue";`)
	assert.Contains(t, shim.Text, `export { default as SvelteExample } from "../svelte/Example.svelte";`)

	assert.Contains(t, block, `import { SvelteExample, VueExample } from "./src/shared/examples";`)
	assert.NotContains(t, block, `import Example from`)
}

func TestBuildImports_AuthHandlers(t *testing.T) {
	cfg := testConfig(func(c *domain.Config) {
		c.Engine = domain.EngineSQLite
		c.ORM = domain.ORMDrizzle
		c.Auth = domain.AuthAbsoluteAuth
	})

	block, _ := BuildImports(cfg, deps.Collect(cfg))
	assert.Contains(t, block, `import { createUser, getUser } from "./src/backend/handlers/db";`)
	assert.Contains(t, block, `import { absoluteAuth } from "absolute-auth";`)
}

// The rendered block is already merged: feeding it back through the
// parser and merger must reproduce it.
func TestBuildImports_OutputIsStable(t *testing.T) {
	cfg := testConfig(func(c *domain.Config) {
		c.Engine = domain.EngineMySQL
		c.ORM = domain.ORMDrizzle
		c.Auth = domain.AuthAbsoluteAuth
		c.Plugins = []string{"cors", "swagger"}
	})

	block, _ := BuildImports(cfg, deps.Collect(cfg))

	var stmts []ImportStatement
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		stmt, err := ParseImport(line)
		require.NoError(t, err)
		stmts = append(stmts, stmt)
	}
	assert.Equal(t, block, RenderImports(MergeImports(stmts)))
}
