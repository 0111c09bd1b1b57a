package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ── Env provider ──────────────────────────────────────────────────────────────

// Env is a config provider backed by the process environment, optionally
// seeded from .env files. Dotted names map to upper-snake environment keys:
// "app.port" reads APP_PORT.
type Env struct{}

// NewEnv loads the given .env files (default ".env"; a missing file is not
// fatal — production usually has no .env) and returns the provider.
func NewEnv(envFiles ...string) *Env {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	_ = godotenv.Load(files...)
	return &Env{}
}

// Get reads the environment key derived from name, falling back to
// placeholder when the variable is unset or empty, coerced per the format
// tag.
func (e *Env) Get(name, placeholder, format string) (any, error) {
	v := os.Getenv(EnvKey(name))
	if v == "" {
		v = placeholder
	}
	return coerce(v, format)
}

// EnvKey converts a dotted config name into its environment variable form:
// "app.base-url" → "APP_BASE_URL".
func EnvKey(name string) string {
	replacer := strings.NewReplacer(".", "_", "/", "_", "-", "_")
	return strings.ToUpper(replacer.Replace(name))
}
