package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
server:
  listen: ":9000"
  postgresDsn: "host=db user=postgres dbname=films"
  redisAddr: "redis:6379"
  seed: true
catalog:
  characterMovieLimit: 3
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", config.Server.Listen)
	assert.Equal(t, "postgres", config.Server.Driver)
	assert.Equal(t, "host=db user=postgres dbname=films", config.Server.PostgresDsn)
	assert.Equal(t, "redis:6379", config.Server.RedisAddr)
	assert.True(t, config.Server.Seed)
	assert.Equal(t, "info", config.Server.LogLevel)
	assert.Equal(t, 3, config.Catalog.CharacterMovieLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FILMAPI_DRIVER", "sqlite")
	t.Setenv("FILMAPI_SQLITE_PATH", "/tmp/films.db")
	t.Setenv("FILMAPI_SEED", "false")
	t.Setenv("FILMAPI_CHARACTER_MOVIE_LIMIT", "7")

	config, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", config.Server.Driver)
	assert.Equal(t, "/tmp/films.db", config.Server.SqlitePath)
	assert.False(t, config.Server.Seed)
	assert.Equal(t, 7, config.Catalog.CharacterMovieLimit)
}

func TestEnvOverrideMalformed(t *testing.T) {
	t.Setenv("FILMAPI_SEED", "maybe")

	_, err := Parse(strings.NewReader(sample))
	assert.ErrorContains(t, err, "FILMAPI_SEED")
}

func TestValidation(t *testing.T) {
	_, err := Parse(strings.NewReader("server:\n  driver: mysql\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("server:\n  driver: sqlite\n"))
	assert.Error(t, err, "sqlite needs a path")

	_, err = Parse(strings.NewReader("server:\n  postgresDsn: x\ncatalog:\n  characterMovieLimit: -1\n"))
	assert.Error(t, err)

	config, err := Parse(strings.NewReader("server:\n  driver: sqlite\n  sqlitePath: films.db\n"))
	require.NoError(t, err)
	assert.Equal(t, ":8000", config.Server.Listen)
}
