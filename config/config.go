// Package config loads sqlkit settings from defaults, an optional YAML file
// and the environment, and turns them into a Platform and data source.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/mariadb"
	"github.com/zoobzio/sqlkit/mssql"
	"github.com/zoobzio/sqlkit/mysql"
	"github.com/zoobzio/sqlkit/postgres"
	"github.com/zoobzio/sqlkit/sqlite"
)

// DefaultEnvPrefix is used when Load is given an empty prefix.
const DefaultEnvPrefix = "SQLKIT_"

// Default values.
const (
	DefaultDialect  = "mysql"
	DefaultLogLevel = "info"
)

// MySQLConfig holds the parts of a MySQL DSN. It is used when DSN is empty
// and the dialect is mysql or mariadb.
type MySQLConfig struct {
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Net      string            `koanf:"net"`
	Addr     string            `koanf:"addr"`
	DBName   string            `koanf:"db_name"`
	Params   map[string]string `koanf:"params"`
}

// Config is the top-level configuration.
type Config struct {
	Dialect    string      `koanf:"dialect"`     // mysql, mariadb, sqlite, postgres, mssql
	ParamStyle string      `koanf:"param_style"` // question, dollar, atp, colon; empty for the dialect default
	DSN        string      `koanf:"dsn"`
	LogLevel   string      `koanf:"log_level"`
	MySQL      MySQLConfig `koanf:"mysql"`
}

// Load reads configuration.
// Precedence (highest to lowest): env vars > config file > defaults.
// Nested keys are separated by a double underscore in env var names, so
// SQLKIT_MYSQL__DB_NAME sets mysql.db_name.
func Load(path, envPrefix string) (*Config, error) {
	if envPrefix == "" {
		envPrefix = DefaultEnvPrefix
	}
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dialect":   DefaultDialect,
		"log_level": DefaultLogLevel,
		"mysql.net": "tcp",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the dialect and parameter style are known and compatible.
func (c *Config) Validate() error {
	_, err := c.Platform()
	return err
}

// Platform builds the platform for the configured dialect.
func (c *Config) Platform() (sqlkit.Platform, error) {
	dialect := strings.ToLower(strings.TrimSpace(c.Dialect))

	var style render.ParamStyle
	hasStyle := strings.TrimSpace(c.ParamStyle) != ""
	if hasStyle {
		s, err := render.ParseParamStyle(c.ParamStyle)
		if err != nil {
			return nil, err
		}
		style = s
	}

	switch dialect {
	case "mysql", "mariadb":
		// The mysql driver binds positionally and rejects named arguments.
		if hasStyle && style != render.ParamQuestion {
			return nil, render.NewInvalidArgumentError("param_style", "%s does not support %s placeholders with the %s driver", dialect, style, c.DriverName())
		}
		if dialect == "mariadb" {
			return mariadb.New(), nil
		}
		return mysql.New(), nil
	case "sqlite":
		if !hasStyle || style == render.ParamQuestion {
			return sqlite.New(), nil
		}
		if style == render.ParamColon {
			return sqlite.NewNamed(), nil
		}
		return nil, render.NewInvalidArgumentError("param_style", "sqlite does not support %s placeholders", style)
	case "postgres":
		if hasStyle && style != render.ParamDollar {
			return nil, render.NewInvalidArgumentError("param_style", "postgres does not support %s placeholders", style)
		}
		return postgres.New(), nil
	case "mssql":
		if hasStyle && style != render.ParamAtP {
			return nil, render.NewInvalidArgumentError("param_style", "mssql does not support %s placeholders", style)
		}
		return mssql.New(), nil
	default:
		return nil, render.NewInvalidArgumentError("dialect", "unknown dialect %q", c.Dialect)
	}
}

// DataSource returns the DSN. For mysql and mariadb an empty DSN is built
// from the mysql section.
func (c *Config) DataSource() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch strings.ToLower(c.Dialect) {
	case "mysql", "mariadb":
		m := gomysql.NewConfig()
		m.User = c.MySQL.User
		m.Passwd = c.MySQL.Password
		m.Net = c.MySQL.Net
		m.Addr = c.MySQL.Addr
		m.DBName = c.MySQL.DBName
		m.Params = c.MySQL.Params
		return m.FormatDSN()
	case "sqlite":
		return ":memory:"
	}
	return ""
}

// DriverName returns the database/sql driver name for the dialect.
func (c *Config) DriverName() string {
	switch strings.ToLower(c.Dialect) {
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite":
		return "sqlite"
	case "postgres":
		return "postgres"
	case "mssql":
		return "sqlserver"
	}
	return ""
}

// Logger builds a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
