// Package testutils gathers env helpers for tests, notably loading MDS
// credentials for the live-API suite from a .env file.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FindProjectRoot walks up from start until it hits a directory containing
// go.mod.
func FindProjectRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above %s", start)
		}
		dir = parent
	}
}

// LoadDotEnv loads variables from a .env file if present. With explicit
// paths those are used directly; otherwise the CWD is tried first, then the
// project root. Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) > 0 {
		return godotenv.Load(paths...)
	}
	if err := godotenv.Load(); err == nil {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return os.ErrNotExist
	}
	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err != nil {
		return os.ErrNotExist
	}
	return godotenv.Load(envPath)
}

// GetEnv returns the environment variable value if set, or the default.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
