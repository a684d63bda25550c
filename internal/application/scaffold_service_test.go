package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardo/stackforge/internal/domain"
)

// memFS records every write in memory.
type memFS struct {
	dirs  []string
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) MkdirAll(path string) error {
	m.dirs = append(m.dirs, filepath.ToSlash(path))
	return nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.files[filepath.ToSlash(path)] = data
	return nil
}

func (m *memFS) Exists(path string) bool {
	_, ok := m.files[filepath.ToSlash(path)]
	return ok
}

// allTools reports every tool as installed.
type allTools struct{}

func (allTools) Available(string) bool { return true }

// noTools reports every tool as missing.
type noTools struct{}

func (noTools) Available(string) bool { return false }

func validRaw() domain.RawConfig {
	return domain.RawConfig{
		ProjectName: "demo",
		Frontends:   []domain.FrontendSelection{{Frontend: domain.FrontendReact}},
		Engine:      domain.EngineSQLite,
		ORM:         domain.ORMDrizzle,
	}
}

// fakeContainers records lifecycle calls in order.
type fakeContainers struct {
	waitErr error
	calls   []string
}

func (f *fakeContainers) WaitReady(context.Context, string) error {
	f.calls = append(f.calls, "wait")
	return f.waitErr
}

func (f *fakeContainers) Stop(context.Context, string) error {
	f.calls = append(f.calls, "stop")
	return nil
}

func newService(fs *memFS, tools domain.ToolPort) *ScaffoldService {
	return NewScaffoldService(fs, nil, tools, nil, func(int) bool { return false })
}

func TestScaffold_WritesProjectTree(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	err := svc.Scaffold(context.Background(), validRaw(), Options{OutputDir: "out"})
	require.NoError(t, err)

	for _, want := range []string{
		"out/demo/package.json",
		"out/demo/db/schema.ts",
		"out/demo/src/backend/handlers/db.ts",
		"out/demo/.env",
		"out/demo/src/backend/server.ts",
		"out/demo/.gitignore",
		"out/demo/tsconfig.json",
	} {
		assert.Contains(t, fs.files, want)
	}
	assert.Contains(t, string(fs.files["out/demo/.gitignore"]), "db/app.db")
	assert.Contains(t, fs.dirs, "out/demo/src/backend/handlers")
	assert.Contains(t, fs.dirs, "out/demo/src/frontend")
	assert.NotContains(t, fs.files, "out/demo/docker-compose.db.yml")
}

func TestScaffold_LocalDatabaseGetsComposeAndEnv(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	raw := validRaw()
	raw.Engine = domain.EnginePostgreSQL
	err := svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"})
	require.NoError(t, err)

	compose, ok := fs.files["out/demo/docker-compose.db.yml"]
	require.True(t, ok)
	assert.Contains(t, string(compose), "5432")
	assert.Contains(t, string(fs.files["out/demo/.env"]), "localhost:5432/demo")
}

func TestScaffold_ValidationBlocksAllWrites(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	raw := validRaw()
	raw.Engine = domain.DatabaseEngine("oracle")
	raw.ORM = domain.ORM("hibernate")
	err := svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Empty(t, fs.files)
	assert.Empty(t, fs.dirs)
}

func TestScaffold_MissingDockerFailsBeforeWrites(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, noTools{})

	raw := validRaw()
	raw.Engine = domain.EngineMariaDB
	err := svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"})

	var toolErr domain.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "docker", toolErr.Tool)
	assert.Empty(t, fs.files)
}

func TestScaffold_MissingGitOnlyFailsWhenRequested(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, noTools{})

	err := svc.Scaffold(context.Background(), validRaw(), Options{OutputDir: "out"})
	require.NoError(t, err)

	err = svc.Scaffold(context.Background(), validRaw(), Options{OutputDir: "out", InitGit: true})
	var toolErr domain.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "git", toolErr.Tool)
}

func TestScaffold_QualityConfigStubs(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	raw := validRaw()
	raw.Quality = domain.QualityBiome
	require.NoError(t, svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"}))
	assert.Contains(t, fs.files, "out/demo/biome.json")
	assert.NotContains(t, fs.files, "out/demo/.prettierrc")

	fs = newMemFS()
	svc = newService(fs, allTools{})
	raw.Quality = domain.QualityESLintPrettier
	raw.ProjectName = "demo2"
	require.NoError(t, svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"}))
	assert.Contains(t, fs.files, "out/demo2/.prettierrc")
	assert.Contains(t, fs.files, "out/demo2/eslint.config.js")
}

func TestScaffold_JavaScriptSkipsTypeTooling(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	raw := validRaw()
	raw.Language = domain.LangJavaScript
	require.NoError(t, svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"}))

	assert.NotContains(t, fs.files, "out/demo/tsconfig.json")
	manifest := string(fs.files["out/demo/package.json"])
	assert.NotContains(t, manifest, `"typescript"`)
	assert.NotContains(t, manifest, `"typecheck"`)
}

func TestScaffold_ExistingDirectoryRefused(t *testing.T) {
	fs := newMemFS()
	fs.files["out/demo"] = nil
	svc := newService(fs, allTools{})

	err := svc.Scaffold(context.Background(), validRaw(), Options{OutputDir: "out"})
	require.ErrorContains(t, err, "already exists")
	assert.Empty(t, fs.dirs)
}

func TestInitDatabase_StopsContainerOnFailedPush(t *testing.T) {
	containers := &fakeContainers{}
	svc := NewScaffoldService(newMemFS(), nil, allTools{}, containers, func(int) bool { return false })

	cfg := &domain.Config{ProjectName: "demo", Engine: domain.EnginePostgreSQL, ORM: domain.ORMDrizzle}
	// The project directory does not exist, so the schema push fails; the
	// container must still be stopped.
	err := svc.initDatabase(context.Background(), filepath.Join(t.TempDir(), "missing"), cfg)
	require.Error(t, err)
	assert.Equal(t, []string{"wait", "stop"}, containers.calls)
}

func TestInitDatabase_NoStopWhenStartFails(t *testing.T) {
	containers := &fakeContainers{waitErr: assert.AnError}
	svc := NewScaffoldService(newMemFS(), nil, allTools{}, containers, func(int) bool { return false })

	cfg := &domain.Config{ProjectName: "demo", Engine: domain.EnginePostgreSQL, ORM: domain.ORMDrizzle}
	err := svc.initDatabase(context.Background(), "out/demo", cfg)
	require.ErrorContains(t, err, "starting database container")
	assert.Equal(t, []string{"wait"}, containers.calls)
}

func TestScaffold_ShimArtifactWritten(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	raw := domain.RawConfig{
		ProjectName: "demo",
		Frontends: []domain.FrontendSelection{
			{Frontend: domain.FrontendVue},
			{Frontend: domain.FrontendSvelte},
		},
	}
	err := svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"})
	require.NoError(t, err)

	shim, ok := fs.files["out/demo/src/shared/examples.ts"]
	require.True(t, ok)
	assert.Contains(t, string(shim), "VueExample")
	assert.Contains(t, string(shim), "SvelteExample")
}

func TestScaffold_EngineNoneHostNormalizedNotFatal(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	raw := domain.RawConfig{
		ProjectName: "demo",
		Frontends:   []domain.FrontendSelection{{Frontend: domain.FrontendHTML}},
		Host:        domain.HostNeon,
		ORM:         domain.ORMPrisma,
	}
	err := svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"})
	require.NoError(t, err)

	server := string(fs.files["out/demo/src/backend/server.ts"])
	assert.NotContains(t, server, "PrismaClient")
	assert.NotContains(t, fs.files, "out/demo/.env")
}

// Without an engine there is no db handle or user handler module, so auth
// must be dropped during resolution instead of producing a server that
// references symbols it never imports.
func TestScaffold_EngineNoneDropsAuth(t *testing.T) {
	fs := newMemFS()
	svc := newService(fs, allTools{})

	raw := domain.RawConfig{
		ProjectName: "demo",
		Frontends:   []domain.FrontendSelection{{Frontend: domain.FrontendReact}},
		Auth:        domain.AuthAbsoluteAuth,
	}
	err := svc.Scaffold(context.Background(), raw, Options{OutputDir: "out"})
	require.NoError(t, err)

	server := string(fs.files["out/demo/src/backend/server.ts"])
	assert.NotContains(t, server, "absoluteAuth")
	assert.NotContains(t, server, "getUser")
	assert.NotContains(t, fs.files, "out/demo/src/backend/handlers/db.ts")
}
