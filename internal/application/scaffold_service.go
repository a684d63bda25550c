// Package application orchestrates a scaffold run: resolve the raw
// configuration, generate every artifact, and write the project tree.
// Configuration errors block all file writes; template-lookup errors
// abort after the directory skeleton exists so partial output can be
// inspected.
package application

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/eduardo/stackforge/internal/deps"
	"github.com/eduardo/stackforge/internal/domain"
	"github.com/eduardo/stackforge/internal/generator"
	"github.com/eduardo/stackforge/internal/resolver"
)

// Options are the per-run switches that are not part of the generated
// project's configuration.
type Options struct {
	OutputDir     string
	ResolveLatest bool
	InitGit       bool
	Install       bool
	// InitDB starts the local database container after scaffolding, runs
	// the ORM's schema push against it, and stops it again.
	InitDB bool
}

// ScaffoldService wires the resolver, collectors and generators to the
// filesystem, container and tool adapters.
type ScaffoldService struct {
	fs         domain.FileSystemPort
	registry   domain.RegistryPort
	tools      domain.ToolPort
	containers domain.ContainerPort
	prober     generator.PortProber
}

func NewScaffoldService(fs domain.FileSystemPort, registry domain.RegistryPort, tools domain.ToolPort, containers domain.ContainerPort, prober generator.PortProber) *ScaffoldService {
	return &ScaffoldService{fs: fs, registry: registry, tools: tools, containers: containers, prober: prober}
}

// Scaffold runs the full pipeline for one raw configuration. A non-nil
// error of type domain.ValidationErrors means nothing was written.
func (s *ScaffoldService) Scaffold(ctx context.Context, raw domain.RawConfig, opts Options) error {
	res, errs := resolver.Resolve(raw)
	if len(errs) > 0 {
		return domain.ValidationErrors(errs)
	}
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}
	cfg := res.Config

	if err := s.checkTools(cfg, opts); err != nil {
		return err
	}

	var entries []domain.DependencyEntry
	if opts.ResolveLatest && s.registry != nil {
		entries = deps.CollectLatest(ctx, cfg, s.registry)
	} else {
		entries = deps.Collect(cfg)
	}

	projectPath := filepath.Join(opts.OutputDir, cfg.ProjectName)
	if s.fs.Exists(projectPath) {
		return fmt.Errorf("directory %s already exists", projectPath)
	}
	if err := s.createSkeleton(projectPath, cfg); err != nil {
		return err
	}

	artifacts, err := s.generate(cfg, entries)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		target := filepath.Join(projectPath, filepath.FromSlash(a.Path))
		if err := s.fs.WriteFile(target, []byte(a.Text)); err != nil {
			return fmt.Errorf("writing %s: %w", a.Path, err)
		}
		log.Info().Str("file", a.Path).Msg("generated")
	}

	if opts.InitGit {
		if err := s.initGit(ctx, projectPath); err != nil {
			return err
		}
	}
	if opts.Install {
		if err := s.install(ctx, projectPath); err != nil {
			return err
		}
	}
	if opts.InitDB && cfg.LocalDatabase() && cfg.ORM != domain.ORMNone {
		if err := s.initDatabase(ctx, projectPath, cfg); err != nil {
			return err
		}
	}

	log.Info().Str("project", cfg.ProjectName).Msg("scaffold complete")
	return nil
}

// initDatabase pushes the generated schema into a freshly started local
// container. The container is stopped on every exit path, including a
// failed push, so a half-initialized instance never outlives the run.
func (s *ScaffoldService) initDatabase(ctx context.Context, projectPath string, cfg *domain.Config) (err error) {
	if s.containers == nil {
		return nil
	}
	composePath := filepath.Join(projectPath, "docker-compose.db.yml")
	if err := s.containers.WaitReady(ctx, composePath); err != nil {
		return fmt.Errorf("starting database container: %w", err)
	}
	defer func() {
		if stopErr := s.containers.Stop(ctx, composePath); stopErr != nil {
			log.Warn().Err(stopErr).Msg("failed to stop database container")
			if err == nil {
				err = stopErr
			}
		}
	}()

	script := "db:push"
	if cfg.ORM == domain.ORMPrisma {
		script = "db:migrate"
	}
	cmd := exec.CommandContext(ctx, "bun", "run", script)
	cmd.Dir = projectPath
	if out, runErr := cmd.CombinedOutput(); runErr != nil {
		return fmt.Errorf("bun run %s: %w\n%s", script, runErr, out)
	}
	log.Info().Str("script", script).Msg("database schema applied")
	return nil
}

// generate runs every generator against the resolved configuration and
// returns the artifact set in write order.
func (s *ScaffoldService) generate(cfg *domain.Config, entries []domain.DependencyEntry) ([]domain.Artifact, error) {
	var artifacts []domain.Artifact
	add := func(a *domain.Artifact) {
		if a != nil {
			artifacts = append(artifacts, *a)
		}
	}

	add(generator.GeneratePackageJSON(cfg, entries))

	schema, err := generator.GenerateSchema(cfg)
	if err != nil {
		return nil, err
	}
	add(schema)

	handlers, err := generator.GenerateHandlers(cfg)
	if err != nil {
		return nil, err
	}
	add(handlers)

	port := 0
	if cfg.LocalDatabase() {
		port, err = generator.AllocatePort(cfg.Engine, s.prober)
		if err != nil {
			return nil, err
		}
		log.Debug().Int("port", port).Str("engine", string(cfg.Engine)).Msg("allocated database port")
	}

	compose, err := generator.GenerateCompose(cfg, port)
	if err != nil {
		return nil, err
	}
	add(compose)

	env, err := generator.GenerateEnv(cfg, port, nil)
	if err != nil {
		return nil, err
	}
	add(env)

	importBlock, shim := generator.BuildImports(cfg, entries)
	add(shim)

	server, err := generator.Assemble(cfg, importBlock)
	if err != nil {
		return nil, err
	}
	add(server)

	artifacts = append(artifacts, staticArtifacts(cfg)...)
	return artifacts, nil
}

// staticArtifacts are the configuration-independent project files plus the
// selected tool's config stub.
func staticArtifacts(cfg *domain.Config) []domain.Artifact {
	gitignore := fmt.Sprintf("node_modules/\n%s/\n.env\n", cfg.BuildDir)
	if cfg.Engine == domain.EngineSQLite && cfg.Host == domain.HostNone {
		gitignore += fmt.Sprintf("%s/app.db\n", cfg.DatabaseDir)
	}

	artifacts := []domain.Artifact{
		{Path: ".gitignore", Text: gitignore},
	}
	if cfg.Language != domain.LangJavaScript {
		artifacts = append(artifacts, domain.Artifact{Path: "tsconfig.json", Text: `{
  "compilerOptions": {
    "target": "ESNext",
    "module": "ESNext",
    "moduleResolution": "bundler",
    "strict": true,
    "noEmit": true,
    "types": ["bun-types"]
  }
}
`})
	}

	switch cfg.Quality {
	case domain.QualityESLintPrettier:
		artifacts = append(artifacts,
			domain.Artifact{Path: ".prettierrc", Text: "{\n  \"semi\": true,\n  \"singleQuote\": false\n}\n"},
			domain.Artifact{Path: "eslint.config.js", Text: `import tseslint from "typescript-eslint";

export default tseslint.config(...tseslint.configs.recommended);
`},
		)
	case domain.QualityBiome:
		artifacts = append(artifacts, domain.Artifact{Path: "biome.json", Text: `{
  "$schema": "https://biomejs.dev/schemas/1.9.4/schema.json",
  "formatter": { "enabled": true },
  "linter": { "enabled": true }
}
`})
	}
	return artifacts
}

// createSkeleton builds the project directory tree. Runs only after the
// configuration validated cleanly.
func (s *ScaffoldService) createSkeleton(projectPath string, cfg *domain.Config) error {
	dirs := []string{
		"src/backend/handlers",
		"src/shared",
		cfg.DatabaseDir,
		cfg.AssetsDir,
	}
	for _, sel := range cfg.Frontends {
		dirs = append(dirs, filepath.Join("src", filepath.FromSlash(sel.Directory)))
	}
	for _, dir := range dirs {
		if err := s.fs.MkdirAll(filepath.Join(projectPath, dir)); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// checkTools verifies the external tools this run will shell out to.
func (s *ScaffoldService) checkTools(cfg *domain.Config, opts Options) error {
	if s.tools == nil {
		return nil
	}
	if cfg.LocalDatabase() && !s.tools.Available("docker") {
		return domain.ExternalToolError{Tool: "docker", Hint: "required to run the local database container"}
	}
	if opts.InitGit && !s.tools.Available("git") {
		return domain.ExternalToolError{Tool: "git", Hint: "required for --git"}
	}
	if opts.Install && !s.tools.Available("bun") {
		return domain.ExternalToolError{Tool: "bun", Hint: "required for --install"}
	}
	if opts.InitDB && !s.tools.Available("bun") {
		return domain.ExternalToolError{Tool: "bun", Hint: "required for --db-init"}
	}
	return nil
}

func (s *ScaffoldService) initGit(ctx context.Context, projectPath string) error {
	cmd := exec.CommandContext(ctx, "git", "init")
	cmd.Dir = projectPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %w\n%s", err, out)
	}
	log.Info().Msg("initialized git repository")
	return nil
}

func (s *ScaffoldService) install(ctx context.Context, projectPath string) error {
	cmd := exec.CommandContext(ctx, "bun", "install")
	cmd.Dir = projectPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("bun install: %w\n%s", err, out)
	}
	log.Info().Msg("installed dependencies")
	return nil
}
