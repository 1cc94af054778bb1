package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config holds defaults read from the environment. Command line flags take
// precedence over every field.
type config struct {
	Nya       string `env:"NYAAAN_NYA" envDefault:"nya"`
	N         string `env:"NYAAAN_N" envDefault:"n"`
	LogLevel  string `env:"NYAAAN_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"NYAAAN_LOG_FORMAT" envDefault:"text"`
}

// loadConfig parses the environment after loading envFiles, or ./.env when
// none are given. A missing dotenv file is not an error; variables already
// set in the environment win over the file.
func loadConfig(envFiles ...string) (config, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load(envFiles...)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
