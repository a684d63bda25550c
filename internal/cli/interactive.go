package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/eduardo/stackforge/internal/domain"
)

// promptMissing asks for every dimension not already supplied by flags.
// Answers land in raw and go through the resolver like flag values do,
// so the form filters options to compatible values but the resolver
// stays the single source of truth.
func promptMissing(raw *domain.RawConfig, opts *NewOptions) error {
	if raw.ProjectName == "" {
		if err := promptProjectName(raw); err != nil {
			return err
		}
	}
	if opts.Lang == "" {
		if err := promptLanguage(raw); err != nil {
			return err
		}
	}
	if len(raw.Frontends) == 0 {
		if err := promptFrontends(raw); err != nil {
			return err
		}
	}
	if opts.Directory == "custom" {
		if err := promptFrontendDirs(raw); err != nil {
			return err
		}
	}
	if opts.DB == "" {
		if err := promptEngine(raw); err != nil {
			return err
		}
	}
	if opts.DBHost == "" && raw.Engine != domain.EngineNone {
		if err := promptHost(raw); err != nil {
			return err
		}
	}
	if opts.ORM == "" && raw.Engine != domain.EngineNone {
		if err := promptORM(raw); err != nil {
			return err
		}
	}
	if opts.Auth == "" {
		if err := promptAuth(raw); err != nil {
			return err
		}
	}
	if len(raw.Plugins) == 0 {
		if err := promptPlugins(raw); err != nil {
			return err
		}
	}
	if !opts.ESLintPrettier && !opts.Biome {
		if err := promptQuality(raw); err != nil {
			return err
		}
	}
	return nil
}

func promptProjectName(raw *domain.RawConfig) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Value(&raw.ProjectName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("project name is required")
					}
					return nil
				}),
		),
	).Run()
}

func promptLanguage(raw *domain.RawConfig) error {
	var lang string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("TypeScript", string(domain.LangTypeScript)),
					huh.NewOption("JavaScript", string(domain.LangJavaScript)),
				).
				Value(&lang),
		),
	).Run(); err != nil {
		return err
	}
	raw.Language = domain.Language(lang)
	return nil
}

func promptFrontends(raw *domain.RawConfig) error {
	var selected []string
	options := make([]huh.Option[string], 0, len(domain.Frontends()))
	for _, f := range domain.Frontends() {
		options = append(options, huh.NewOption(string(f), string(f)))
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Frontend Frameworks").
				Options(options...).
				Value(&selected),
		),
	).Run(); err != nil {
		return err
	}

	for _, s := range selected {
		raw.Frontends = append(raw.Frontends, domain.FrontendSelection{Frontend: domain.Frontend(s)})
	}
	return nil
}

// undirectedFrontends lists the selections still missing a directory, in
// selection order. Explicit name:dir flag values keep theirs.
func undirectedFrontends(sels []domain.FrontendSelection) []int {
	var idx []int
	for i, sel := range sels {
		if sel.Directory == "" {
			idx = append(idx, i)
		}
	}
	return idx
}

// promptFrontendDirs asks for a per-frontend directory in custom directory
// mode. An empty answer keeps the resolver's default layout for that
// frontend.
func promptFrontendDirs(raw *domain.RawConfig) error {
	for _, i := range undirectedFrontends(raw.Frontends) {
		sel := &raw.Frontends[i]
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Directory for %s", sel.Frontend)).
					Placeholder(string(sel.Frontend)).
					Value(&sel.Directory),
			),
		).Run(); err != nil {
			return err
		}
	}
	return nil
}

func promptEngine(raw *domain.RawConfig) error {
	options := make([]huh.Option[string], 0, len(domain.Engines()))
	for _, e := range domain.Engines() {
		options = append(options, huh.NewOption(string(e), string(e)))
	}

	var engine string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database Engine").
				Options(options...).
				Value(&engine),
		),
	).Run(); err != nil {
		return err
	}
	raw.Engine = domain.DatabaseEngine(engine)
	return nil
}

func promptHost(raw *domain.RawConfig) error {
	options := []huh.Option[string]{huh.NewOption("local (none)", string(domain.HostNone))}
	for _, h := range domain.Hosts() {
		if h != domain.HostNone && h.Supports(raw.Engine) {
			options = append(options, huh.NewOption(string(h), string(h)))
		}
	}

	var host string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database Host").
				Options(options...).
				Value(&host),
		),
	).Run(); err != nil {
		return err
	}
	raw.Host = domain.DatabaseHost(host)
	return nil
}

func promptORM(raw *domain.RawConfig) error {
	options := []huh.Option[string]{huh.NewOption("none (raw driver)", string(domain.ORMNone))}
	for _, o := range domain.ORMs() {
		if o != domain.ORMNone && o.Supports(raw.Engine) {
			options = append(options, huh.NewOption(string(o), string(o)))
		}
	}

	var orm string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("ORM").
				Options(options...).
				Value(&orm),
		),
	).Run(); err != nil {
		return err
	}
	raw.ORM = domain.ORM(orm)
	return nil
}

func promptAuth(raw *domain.RawConfig) error {
	var enable bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable Authentication?").
				Value(&enable),
		),
	).Run(); err != nil {
		return err
	}
	if enable {
		raw.Auth = domain.AuthAbsoluteAuth
	} else {
		raw.Auth = domain.AuthNone
	}
	return nil
}

func promptPlugins(raw *domain.RawConfig) error {
	options := make([]huh.Option[string], 0, len(domain.PluginIDs()))
	for _, id := range domain.PluginIDs() {
		options = append(options, huh.NewOption(id, id))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Server Plugins").
				Options(options...).
				Value(&raw.Plugins),
		),
	).Run()
}

func promptQuality(raw *domain.RawConfig) error {
	var quality string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Code Quality Tooling").
				Options(
					huh.NewOption("ESLint + Prettier", string(domain.QualityESLintPrettier)),
					huh.NewOption("Biome", string(domain.QualityBiome)),
					huh.NewOption("None", string(domain.QualityNone)),
				).
				Value(&quality),
		),
	).Run(); err != nil {
		return err
	}
	raw.Quality = domain.CodeQualityTool(quality)
	return nil
}
