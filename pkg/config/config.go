// Package config loads typed configuration sections from the environment.
// An optional env file (-env flag, ENV_FILE variable, or ./.env) is exported
// into the process environment first, then envconfig fills the struct.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	envFilePath string
	parseOnce   sync.Once
)

// MustLoad is Load for startup paths where a bad config should stop the
// process.
func MustLoad[T any](prefix string) *T {
	conf, err := Load[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load exports the resolved env file (if any) and processes the section
// named by prefix into a fresh T.
func Load[T any](prefix string) (*T, error) {
	path := resolveEnvFile()
	switch {
	case path != "":
		if err := exportEnvFile(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	default:
		if err := exportEnvFileIfExists(".env"); err != nil {
			return nil, fmt.Errorf("load default env file: %w", err)
		}
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, fmt.Errorf("process %s config: %w", prefix, err)
	}
	return &conf, nil
}

// resolveEnvFile prefers the -env flag, then the ENV_FILE variable.
func resolveEnvFile() string {
	parseOnce.Do(func() {
		if flag.Lookup("env") == nil {
			flag.StringVar(&envFilePath, "env", "", "path to .env file")
		}
		if !flag.Parsed() {
			flag.Parse()
		}
	})
	if trimmed := strings.TrimSpace(envFilePath); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(os.Getenv("ENV_FILE"))
}

func exportEnvFileIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvFile(path)
}

// exportEnvFile copies every setting from the file into the process
// environment. Existing variables are not overwritten, so the real
// environment always wins over the file.
func exportEnvFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for key, value := range v.AllSettings() {
		name := strings.ToUpper(key)
		if _, present := os.LookupEnv(name); present {
			continue
		}
		if err := os.Setenv(name, fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
