package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eduardo/stackforge/internal/domain"
)

// envPath is the conventional location of the generated env file.
const envPath = ".env"

// urlBuilder produces a DATABASE_URL for a locally run engine on the
// allocated host port.
type urlBuilder func(dbName string, port int) string

var databaseURLs = map[domain.DatabaseEngine]urlBuilder{
	domain.EnginePostgreSQL: func(dbName string, port int) string {
		return fmt.Sprintf("postgres://%s:%s@localhost:%d/%s", dbUser, dbPassword, port, dbName)
	},
	domain.EngineMySQL: func(dbName string, port int) string {
		return fmt.Sprintf("mysql://%s:%s@localhost:%d/%s", dbUser, dbPassword, port, dbName)
	},
	domain.EngineMariaDB: func(dbName string, port int) string {
		return fmt.Sprintf("mysql://%s:%s@localhost:%d/%s", dbUser, dbPassword, port, dbName)
	},
	domain.EngineMongoDB: func(dbName string, port int) string {
		return fmt.Sprintf("mongodb://%s:%s@localhost:%d/%s?authSource=admin", dbUser, dbPassword, port, dbName)
	},
}

// shadowURLs point migration tooling at the server root, no database
// selected. Only the mysql family needs one.
var shadowURLs = map[domain.DatabaseEngine]urlBuilder{
	domain.EngineMySQL: func(_ string, port int) string {
		return fmt.Sprintf("mysql://root:%s@localhost:%d", dbRootPassword, port)
	},
	domain.EngineMariaDB: func(_ string, port int) string {
		return fmt.Sprintf("mysql://root:%s@localhost:%d", dbRootPassword, port)
	},
}

// GenerateEnv builds the .env artifact. A local engine gets a
// DATABASE_URL on the allocated port (plus SHADOW_DATABASE_URL for the
// mysql family); local sqlite gets a file URL. Managed hosts synthesize
// no local URL at all: the host's own client handles the connection, so
// only explicitly supplied extra variables are written. Nil is returned
// when there is nothing to write.
func GenerateEnv(cfg *domain.Config, port int, extra map[string]string) (*domain.Artifact, error) {
	var lines []string

	switch {
	case cfg.Engine == domain.EngineNone:
		// nothing
	case cfg.Host != domain.HostNone:
		// Managed host; connection settings come from the host's client.
	case cfg.Engine == domain.EngineSQLite:
		lines = append(lines, fmt.Sprintf("DATABASE_URL=file:./%s/app.db", cfg.DatabaseDir))
	default:
		build, ok := databaseURLs[cfg.Engine]
		if !ok {
			return nil, domain.UnsupportedCombinationError{Artifact: "env", Engine: cfg.Engine, Host: cfg.Host}
		}
		dbName := databaseName(cfg.ProjectName)
		lines = append(lines, "DATABASE_URL="+build(dbName, port))
		if shadow, ok := shadowURLs[cfg.Engine]; ok {
			lines = append(lines, "SHADOW_DATABASE_URL="+shadow(dbName, port))
		}
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+"="+extra[k])
	}

	if len(lines) == 0 {
		return nil, nil
	}
	return &domain.Artifact{Path: envPath, Text: strings.Join(lines, "\n") + "\n"}, nil
}
