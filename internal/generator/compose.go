package generator

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eduardo/stackforge/internal/domain"
)

// composePath is the conventional location of the database container
// definition.
const composePath = "docker-compose.db.yml"

// Database credentials baked into the local development container. The
// env generator builds its connection URLs from the same values.
const (
	dbUser         = "app"
	dbPassword     = "password"
	dbRootPassword = "password"
)

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image         string             `yaml:"image"`
	ContainerName string             `yaml:"container_name"`
	Restart       string             `yaml:"restart"`
	Environment   []string           `yaml:"environment,omitempty"`
	Ports         []string           `yaml:"ports"`
	Command       string             `yaml:"command,omitempty"`
	Volumes       []string           `yaml:"volumes"`
	Healthcheck   *composeHealth     `yaml:"healthcheck,omitempty"`
}

type composeHealth struct {
	Test     []string `yaml:"test,flow"`
	Interval string   `yaml:"interval"`
	Timeout  string   `yaml:"timeout"`
	Retries  int      `yaml:"retries"`
}

// containerSpec is the per-engine container definition table.
type containerSpec struct {
	image       string
	port        int
	environment func(dbName string) []string
	command     string
	healthCmd   func(dbName string) string
	interval    string
	retries     int
	volumePath  string
}

var containerSpecs = map[domain.DatabaseEngine]containerSpec{
	domain.EnginePostgreSQL: {
		image: "postgres:16-alpine",
		port:  5432,
		environment: func(dbName string) []string {
			return []string{
				"POSTGRES_USER=" + dbUser,
				"POSTGRES_PASSWORD=" + dbPassword,
				"POSTGRES_DB=" + dbName,
			}
		},
		healthCmd:  func(dbName string) string { return fmt.Sprintf("pg_isready -U %s -d %s", dbUser, dbName) },
		interval:   "5s",
		retries:    10,
		volumePath: "/var/lib/postgresql/data",
	},
	domain.EngineMySQL: {
		image: "mysql:8.4",
		port:  3306,
		environment: func(dbName string) []string {
			return []string{
				"MYSQL_ROOT_PASSWORD=" + dbRootPassword,
				"MYSQL_DATABASE=" + dbName,
				"MYSQL_USER=" + dbUser,
				"MYSQL_PASSWORD=" + dbPassword,
			}
		},
		healthCmd: func(string) string {
			return fmt.Sprintf("mysqladmin ping -h localhost -u root -p%s", dbRootPassword)
		},
		interval:   "5s",
		retries:    20,
		volumePath: "/var/lib/mysql",
	},
	domain.EngineMariaDB: {
		image: "mariadb:11",
		port:  3306,
		environment: func(dbName string) []string {
			return []string{
				"MARIADB_ROOT_PASSWORD=" + dbRootPassword,
				"MARIADB_DATABASE=" + dbName,
				"MARIADB_USER=" + dbUser,
				"MARIADB_PASSWORD=" + dbPassword,
			}
		},
		healthCmd: func(string) string {
			return "healthcheck.sh --connect --innodb_initialized"
		},
		interval:   "5s",
		retries:    20,
		volumePath: "/var/lib/mysql",
	},
	domain.EngineMongoDB: {
		image: "mongo:7",
		port:  27017,
		environment: func(string) []string {
			return []string{
				"MONGO_INITDB_ROOT_USERNAME=" + dbUser,
				"MONGO_INITDB_ROOT_PASSWORD=" + dbPassword,
			}
		},
		healthCmd: func(string) string {
			return `echo 'db.runCommand("ping").ok' | mongosh localhost:27017/test --quiet`
		},
		interval:   "5s",
		retries:    10,
		volumePath: "/data/db",
	},
}

// GenerateCompose builds the single-service container definition for a
// locally run database, mapping the allocated host port onto the engine's
// container port. Nil for configurations without a local server process.
func GenerateCompose(cfg *domain.Config, hostPort int) (*domain.Artifact, error) {
	if !cfg.LocalDatabase() {
		return nil, nil
	}
	spec, ok := containerSpecs[cfg.Engine]
	if !ok {
		return nil, domain.UnsupportedCombinationError{Artifact: "container", Engine: cfg.Engine, Host: cfg.Host}
	}

	dbName := databaseName(cfg.ProjectName)
	service := composeService{
		Image:         spec.image,
		ContainerName: cfg.ProjectName + "-db",
		Restart:       "unless-stopped",
		Environment:   spec.environment(dbName),
		Ports:         []string{fmt.Sprintf("%d:%d", hostPort, spec.port)},
		Command:       spec.command,
		Volumes:       []string{fmt.Sprintf("db-data:%s", spec.volumePath)},
		Healthcheck: &composeHealth{
			Test:     []string{"CMD-SHELL", escapeHealthcheck(spec.healthCmd(dbName))},
			Interval: spec.interval,
			Timeout:  "5s",
			Retries:  spec.retries,
		},
	}

	out, err := yaml.Marshal(composeFile{Services: map[string]composeService{"db": service}})
	if err != nil {
		return nil, fmt.Errorf("marshaling compose file: %w", err)
	}
	text := string(out) + "\nvolumes:\n  db-data:\n"
	return &domain.Artifact{Path: composePath, Text: text}, nil
}

// escapeHealthcheck prepares a healthcheck command for the shell-quoted
// CMD-SHELL form: compose expands $VAR itself, so literal dollars must be
// doubled to reach the shell intact.
func escapeHealthcheck(cmd string) string {
	return strings.ReplaceAll(cmd, "$", "$$")
}

// databaseName derives a safe database name from the project name.
func databaseName(project string) string {
	name := strings.ToLower(project)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.Trim(name, "_")
}
