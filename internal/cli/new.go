package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eduardo/stackforge/internal/application"
	"github.com/eduardo/stackforge/internal/domain"
	"github.com/eduardo/stackforge/internal/generator"
	"github.com/eduardo/stackforge/internal/infrastructure"
)

// NewOptions holds the flags of the new command. String values stay raw
// here; membership and compatibility checks belong to the resolver.
type NewOptions struct {
	*RootOptions

	Frontends      []string
	Lang           string
	DB             string
	DBHost         string
	ORM            string
	Auth           string
	Plugins        []string
	Tailwind       bool
	TailwindInput  string
	TailwindOutput string
	Directory      string
	ESLintPrettier bool
	Biome          bool
	Git            bool
	Install        bool
	InitDB         bool
	Latest         bool
	Skip           bool
	OutputDir      string
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Scaffold a new project",
		Long: `Scaffold a new project from stack choices.

Dimensions not supplied as flags are asked for interactively; --skip
takes non-interactive defaults instead.

Examples:
  stackforge new myapp --frontend react --db sqlite --orm drizzle
  stackforge new myapp --frontend react --frontend svelte:admin --db postgresql --db-host neon
  stackforge new myapp --skip`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runNew(cmd, opts, name)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Frontends, "frontend", nil, "frontend framework, optionally with directory (name[:dir], repeatable)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "source language (ts|js)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "database engine")
	cmd.Flags().StringVar(&opts.DBHost, "db-host", "", "managed database host")
	cmd.Flags().StringVar(&opts.ORM, "orm", "", "orm (drizzle|prisma|none)")
	cmd.Flags().StringVar(&opts.Auth, "auth", "", "auth provider")
	cmd.Flags().StringArrayVar(&opts.Plugins, "plugin", nil, "server plugin (repeatable)")
	cmd.Flags().BoolVar(&opts.Tailwind, "tailwind", false, "enable tailwind")
	cmd.Flags().StringVar(&opts.TailwindInput, "tailwind-input", "src/styles/input.css", "tailwind input path")
	cmd.Flags().StringVar(&opts.TailwindOutput, "tailwind-output", "assets/styles.css", "tailwind output path")
	cmd.Flags().StringVar(&opts.Directory, "directory", "default", "frontend directory mode: custom prompts for a directory per frontend (default|custom)")
	cmd.Flags().BoolVar(&opts.ESLintPrettier, "eslint-prettier", false, "use eslint + prettier")
	cmd.Flags().BoolVar(&opts.Biome, "biome", false, "use biome")
	cmd.Flags().BoolVar(&opts.Git, "git", false, "initialize a git repository")
	cmd.Flags().BoolVar(&opts.Install, "install", false, "install dependencies after scaffolding")
	cmd.Flags().BoolVar(&opts.InitDB, "db-init", false, "start the local database container and push the schema")
	cmd.Flags().BoolVar(&opts.Latest, "latest", false, "resolve latest package versions from the registry")
	cmd.Flags().BoolVar(&opts.Skip, "skip", false, "skip prompts, take defaults for unset dimensions")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", ".", "parent directory of the generated project")

	return cmd
}

func runNew(cmd *cobra.Command, opts *NewOptions, name string) error {
	if opts.Directory != "default" && opts.Directory != "custom" {
		return fmt.Errorf("invalid --directory %q: must be default or custom", opts.Directory)
	}
	if opts.ESLintPrettier && opts.Biome {
		return fmt.Errorf("--eslint-prettier and --biome are mutually exclusive")
	}

	raw := rawFromFlags(opts, name)

	if !opts.Skip {
		if err := promptMissing(&raw, opts); err != nil {
			return err
		}
	}

	service := application.NewScaffoldService(
		infrastructure.NewOSFileSystem(),
		infrastructure.NewNPMRegistry(""),
		infrastructure.NewPathTools(),
		infrastructure.NewDockerCompose(),
		generator.LoopbackBound,
	)
	return service.Scaffold(cmd.Context(), raw, application.Options{
		OutputDir:     opts.OutputDir,
		ResolveLatest: opts.Latest,
		InitGit:       opts.Git,
		Install:       opts.Install,
		InitDB:        opts.InitDB,
	})
}

// rawFromFlags translates flag values into the resolver's input. Values
// are passed through unchecked; the resolver owns validation.
func rawFromFlags(opts *NewOptions, name string) domain.RawConfig {
	raw := domain.RawConfig{
		ProjectName: name,
		Language:    domain.Language(opts.Lang),
		Engine:      domain.DatabaseEngine(opts.DB),
		Host:        domain.DatabaseHost(opts.DBHost),
		ORM:         domain.ORM(opts.ORM),
		Auth:        domain.AuthProvider(opts.Auth),
		Plugins:     opts.Plugins,
	}

	for _, f := range opts.Frontends {
		name, dir, _ := strings.Cut(f, ":")
		raw.Frontends = append(raw.Frontends, domain.FrontendSelection{
			Frontend:  domain.Frontend(name),
			Directory: dir,
		})
	}

	switch {
	case opts.ESLintPrettier:
		raw.Quality = domain.QualityESLintPrettier
	case opts.Biome:
		raw.Quality = domain.QualityBiome
	}

	if opts.Tailwind {
		raw.Tailwind = &domain.TailwindConfig{
			Input:  opts.TailwindInput,
			Output: opts.TailwindOutput,
		}
	}
	return raw
}
