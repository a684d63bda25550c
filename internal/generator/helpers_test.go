package generator

import "github.com/eduardo/stackforge/internal/domain"

// testConfig builds a resolved configuration with the default react
// frontend and applies the given mutation.
func testConfig(mutate func(*domain.Config)) *domain.Config {
	cfg := &domain.Config{
		ProjectName: "myapp",
		Language:    domain.LangTypeScript,
		Frontends:   []domain.FrontendSelection{{Frontend: domain.FrontendReact, Directory: "frontend"}},
		Engine:      domain.EngineNone,
		Host:        domain.HostNone,
		ORM:         domain.ORMNone,
		Auth:        domain.AuthNone,
		Quality:     domain.QualityNone,
		BuildDir:    "build",
		AssetsDir:   "assets",
		DatabaseDir: "db",
	}
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}
