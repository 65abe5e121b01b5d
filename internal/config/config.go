// Package config reads the contractgen binary settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvAddr         = "CONTRACTGEN_ADDR"
	EnvTemplatesDir = "CONTRACTGEN_TEMPLATES_DIR"
	EnvOrdinals     = "CONTRACTGEN_ORDINALS"
	EnvAllowMarkup  = "CONTRACTGEN_ALLOW_MARKUP"
	EnvRenderer     = "CONTRACTGEN_RENDERER"
	EnvTheme        = "CONTRACTGEN_THEME"
	EnvThemeVariant = "CONTRACTGEN_THEME_VARIANT"
	EnvMemoSize     = "CONTRACTGEN_MEMO_SIZE"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	Addr string
	// TemplatesDir holds bundle files. Empty means the embedded samples.
	TemplatesDir string
	// Ordinals is the clause label language ("en" or "es").
	Ordinals     string
	AllowMarkup  bool
	Renderer     string
	Theme        string
	ThemeVariant string
	MemoSize     int
}

// Load reads the optional .env files (".env" when none are given) and then
// the environment. Variables already set in the environment win over .env
// entries. Missing .env files are not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	memoSize, err := getEnvInt(EnvMemoSize, 128)
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:         getEnv(EnvAddr, ":8080"),
		TemplatesDir: getEnv(EnvTemplatesDir, ""),
		Ordinals:     getEnv(EnvOrdinals, "en"),
		AllowMarkup:  getEnvBool(EnvAllowMarkup, false),
		Renderer:     getEnv(EnvRenderer, "html"),
		Theme:        getEnv(EnvTheme, ""),
		ThemeVariant: getEnv(EnvThemeVariant, ""),
		MemoSize:     memoSize,
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
