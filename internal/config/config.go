package config

import (
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Server  Server  `yaml:"server"`
	Catalog Catalog `yaml:"catalog"`
}

type Server struct {
	Listen        string `yaml:"listen" validate:"required"`
	Driver        string `yaml:"driver" validate:"oneof=postgres sqlite"`
	PostgresDsn   string `yaml:"postgresDsn" validate:"required_if=Driver postgres"`
	SqlitePath    string `yaml:"sqlitePath" validate:"required_if=Driver sqlite"`
	RedisAddr     string `yaml:"redisAddr"` // empty disables change events
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB" validate:"min=0"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint" validate:"required_if=EnableTrace true"`
	Seed          bool   `yaml:"seed"`
	LogLevel      string `yaml:"logLevel" validate:"oneof=debug info warn error"`
	Development   bool   `yaml:"development"`
}

type Catalog struct {
	CharacterMovieLimit int `yaml:"characterMovieLimit" validate:"min=0"`
}

// Load reads the yaml file at path, applies FILMAPI_* environment overrides and
// defaults, and validates the result.
func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (Config, error) {
	var config Config
	err := yaml.NewDecoder(r).Decode(&config)
	if err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "config: decode")
	}

	err = config.applyEnv()
	if err != nil {
		return Config{}, err
	}
	config.applyDefaults()

	err = validate.Struct(config)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: validate")
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Server.Driver == "" {
		c.Server.Driver = "postgres"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
}

func (c *Config) applyEnv() error {
	texts := map[string]*string{
		"FILMAPI_LISTEN":         &c.Server.Listen,
		"FILMAPI_DRIVER":         &c.Server.Driver,
		"FILMAPI_POSTGRES_DSN":   &c.Server.PostgresDsn,
		"FILMAPI_SQLITE_PATH":    &c.Server.SqlitePath,
		"FILMAPI_REDIS_ADDR":     &c.Server.RedisAddr,
		"FILMAPI_REDIS_PASSWORD": &c.Server.RedisPassword,
		"FILMAPI_TRACE_ENDPOINT": &c.Server.TraceEndpoint,
		"FILMAPI_LOG_LEVEL":      &c.Server.LogLevel,
	}
	for key, target := range texts {
		if value, ok := os.LookupEnv(key); ok {
			*target = value
		}
	}

	bools := map[string]*bool{
		"FILMAPI_ENABLE_TRACE": &c.Server.EnableTrace,
		"FILMAPI_SEED":         &c.Server.Seed,
		"FILMAPI_DEVELOPMENT":  &c.Server.Development,
	}
	for key, target := range bools {
		if value, ok := os.LookupEnv(key); ok {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return errors.Wrapf(err, "config: %s", key)
			}
			*target = parsed
		}
	}

	if value, ok := os.LookupEnv("FILMAPI_CHARACTER_MOVIE_LIMIT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrap(err, "config: FILMAPI_CHARACTER_MOVIE_LIMIT")
		}
		c.Catalog.CharacterMovieLimit = parsed
	}

	return nil
}
