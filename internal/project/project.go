package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/paralog/internal/config"
)

// Project represents the loaded configuration of a paralog run.
type Project struct {
	Root       string // Directory relative paths are resolved against
	ConfigPath string // Empty when running on defaults
	Config     *config.Config
	Warnings   []string
}

// LoadProject finds and loads the configuration from the current directory.
// Without a configuration file the defaults apply, rooted at the working directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if errors.Is(err, ErrNoProjectRoot) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return &Project{Root: cwd, Config: config.Default()}, nil
	}
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads the configuration file in the given root directory.
func LoadProjectFrom(root string) (*Project, error) {
	path := configFileIn(root)
	if path == "" {
		return nil, fmt.Errorf("%s: %w", root, ErrNoProjectRoot)
	}
	return LoadProjectFile(path)
}

// LoadProjectFile loads an explicitly named configuration file. Relative
// paths in it are resolved against the directory that holds it.
func LoadProjectFile(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cfg, warnings, err := config.LoadAndValidate(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Project{
		Root:       filepath.Dir(abs),
		ConfigPath: abs,
		Config:     cfg,
		Warnings:   warnings,
	}, nil
}

// ReportsDirectory returns the absolute path of the worker report directory.
func (p *Project) ReportsDirectory() string {
	return p.Resolve(p.Config.Reports.Directory)
}

// JUnitPath returns the absolute path of the merged JUnit log, or "" if none is configured.
func (p *Project) JUnitPath() string {
	if p.Config.Output.JUnit == "" {
		return ""
	}
	return p.Resolve(p.Config.Output.JUnit)
}

// Resolve makes a path from the configuration absolute.
func (p *Project) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}
