// Package project locates the paralog configuration and resolves the paths
// it names.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = ".paralog.yml"

// AltConfigFileName is accepted when ConfigFileName is absent.
const AltConfigFileName = ".paralog.yaml"

// ErrNoProjectRoot is returned when no configuration file is found.
var ErrNoProjectRoot = errors.New(".paralog.yml not found in the current directory or any parent up to the root")

// FindRoot walks up from the current working directory until it finds a configuration file.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds a configuration file.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if configFileIn(dir) != "" {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}

// configFileIn returns the configuration file in dir, or "" if there is none.
func configFileIn(dir string) string {
	for _, name := range []string{ConfigFileName, AltConfigFileName} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
