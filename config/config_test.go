package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/internal/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "SQLKIT_TEST_DEFAULTS_")
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "tcp", cfg.MySQL.Net)
	assert.Empty(t, cfg.DSN)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
dialect: sqlite
param_style: colon
log_level: debug
dsn: file:test.db
`)
	cfg, err := Load(path, "SQLKIT_TEST_FILE_")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, "colon", cfg.ParamStyle)
	assert.Equal(t, "file:test.db", cfg.DataSource())

	p, err := cfg.Platform()
	require.NoError(t, err)
	assert.Equal(t, ":offset", p.FormatParameterName("offset", 1))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
dialect: mysql
mysql:
  user: app
  addr: 127.0.0.1:3306
  db_name: shop
`)
	t.Setenv("SQLKIT_DIALECT", "mariadb")
	t.Setenv("SQLKIT_MYSQL__PASSWORD", "secret")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "mariadb", cfg.Dialect)
	assert.Equal(t, "secret", cfg.MySQL.Password)
	assert.Equal(t, "app:secret@tcp(127.0.0.1:3306)/shop", cfg.DataSource())
	assert.Equal(t, "mysql", cfg.DriverName())

	p, err := cfg.Platform()
	require.NoError(t, err)
	assert.Equal(t, "mariadb", p.Name())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "SQLKIT_TEST_ERR_")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "dialect: [mysql\n")
		_, err := Load(path, "SQLKIT_TEST_ERR_")
		require.Error(t, err)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		path := writeConfig(t, "dialect: oracle\n")
		_, err := Load(path, "SQLKIT_TEST_ERR_")
		require.Error(t, err)
		var invalid render.InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "dialect", invalid.Argument)
	})
}

func TestConfig_Platform(t *testing.T) {
	tests := []struct {
		dialect     string
		style       string
		wantName    string
		wantMarker  string
		expectError bool
	}{
		{dialect: "mysql", wantName: "mysql", wantMarker: "?"},
		{dialect: "MySQL", style: "question", wantName: "mysql", wantMarker: "?"},
		{dialect: "MySQL", style: "colon", expectError: true},
		{dialect: "mariadb", style: "colon", expectError: true},
		{dialect: "mariadb", wantName: "mariadb", wantMarker: "?"},
		{dialect: "sqlite", wantName: "sqlite", wantMarker: "?"},
		{dialect: "sqlite", style: "question", wantName: "sqlite", wantMarker: "?"},
		{dialect: "postgres", wantName: "postgres", wantMarker: "$1"},
		{dialect: "postgres", style: "dollar", wantName: "postgres", wantMarker: "$1"},
		{dialect: "mssql", wantName: "mssql", wantMarker: "@p1"},
		{dialect: "mysql", style: "dollar", expectError: true},
		{dialect: "sqlite", style: "atp", expectError: true},
		{dialect: "postgres", style: "question", expectError: true},
		{dialect: "mssql", style: "colon", expectError: true},
		{dialect: "mysql", style: "braces", expectError: true},
		{dialect: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.style, func(t *testing.T) {
			cfg := &Config{Dialect: tt.dialect, ParamStyle: tt.style}
			p, err := cfg.Platform()
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantMarker, p.FormatParameterName("limit", 1))
		})
	}
}

func TestConfig_PlatformRenders(t *testing.T) {
	cfg := &Config{Dialect: "mysql"}
	p, err := cfg.Platform()
	require.NoError(t, err)

	query, err := sqlkit.RenderLiteral(sqlkit.Decorate(sqlkit.NewSelect("foo").Offset(10), p), p)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `foo`.* FROM `foo` LIMIT 18446744073709551615 OFFSET 10", query)
}

func TestConfig_DataSource(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit dsn wins", cfg: Config{Dialect: "mysql", DSN: "root@/db"}, want: "root@/db"},
		{name: "mysql params", cfg: Config{Dialect: "mysql", MySQL: MySQLConfig{
			User: "u", Net: "tcp", Addr: "db:3306", DBName: "d", Params: map[string]string{"charset": "utf8mb4"},
		}}, want: "u@tcp(db:3306)/d?charset=utf8mb4"},
		{name: "sqlite default", cfg: Config{Dialect: "sqlite"}, want: ":memory:"},
		{name: "postgres without dsn", cfg: Config{Dialect: "postgres"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DataSource())
		})
	}
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn"}
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = (&Config{LogLevel: "chatty"}).Logger(&buf)
	require.Error(t, err)
}
