package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Engine identifies the target database engine behind the adapter layer.
type Engine string

const (
	EngineSQLServer Engine = "sqlserver"
	EngineMySQL     Engine = "mysql"
	EnginePostgres  Engine = "postgres"
	EngineSQLite    Engine = "sqlite"
)

// Config is the immutable configuration snapshot, read once from the
// environment at startup. There is no reload mechanism.
type Config struct {
	Engine   Engine
	Host     string
	Instance string // SQL Server named instance, from SERVER_NAME "host\instance"
	Port     int
	Database string
	Username string
	Password string
	ReadOnly bool
}

// LoadConfig reads the configuration snapshot from the process environment.
// All missing required variables are reported in one error.
func LoadConfig() (Config, error) {
	engine, err := parseEngine(os.Getenv("DB_TYPE"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Engine:   engine,
		Database: os.Getenv("DATABASE_NAME"),
		Username: os.Getenv("SQL_USERNAME"),
		Password: os.Getenv("SQL_PASSWORD"),
		ReadOnly: strings.EqualFold(os.Getenv("READONLY"), "true"),
	}

	server := os.Getenv("SERVER_NAME")
	if host, instance, ok := strings.Cut(server, `\`); ok {
		cfg.Host = host
		cfg.Instance = instance
	} else {
		cfg.Host = server
	}

	var missing []string
	if engine == EngineSQLite {
		// SQLite only needs a file path; there is no server to reach.
		if cfg.Database == "" {
			missing = append(missing, "DATABASE_NAME")
		}
	} else {
		if cfg.Host == "" {
			missing = append(missing, "SERVER_NAME")
		}
		if cfg.Database == "" {
			missing = append(missing, "DATABASE_NAME")
		}
		if cfg.Username == "" {
			missing = append(missing, "SQL_USERNAME")
		}
		if cfg.Password == "" {
			missing = append(missing, "SQL_PASSWORD")
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %v", missing)
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT value: %q", portStr)
		}
		cfg.Port = port
	} else {
		cfg.Port = defaultPort(engine)
	}

	return cfg, nil
}

func parseEngine(raw string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sqlserver", "mssql":
		return EngineSQLServer, nil
	case "mysql":
		return EngineMySQL, nil
	case "postgres", "postgresql":
		return EnginePostgres, nil
	case "sqlite", "sqlite3":
		return EngineSQLite, nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE: %q", raw)
	}
}

func defaultPort(engine Engine) int {
	switch engine {
	case EngineMySQL:
		return 3306
	case EnginePostgres:
		return 5432
	case EngineSQLite:
		return 0
	default:
		return 1433
	}
}
