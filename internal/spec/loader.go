package spec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Spec file names within a spec directory.
const (
	WorkshopFile   = "workshop.yml"
	ModulesFile    = "modules.yml"
	ProfileFile    = "profile.yml"
	ProjectFile    = "project.md"
	GuidelinesFile = "ai_guidelines.md"
)

// Errors returned by the loader. These are configuration errors: the
// invocation fails immediately and nothing is written.
var (
	ErrSpecDirNotFound = errors.New("spec directory not found")
	ErrMissingSpecFile = errors.New("required spec file missing")
)

// moduleList matches the top-level shape of modules.yml.
type moduleList struct {
	Modules []Module `yaml:"modules"`
}

// Load reads all spec documents from specDir.
//
// workshop.yml and modules.yml are required; profile.yml defaults to
// {domain: general}, and the two free-text documents default to empty.
func Load(specDir string) (*Specification, error) {
	abs, err := filepath.Abs(specDir)
	if err != nil {
		return nil, fmt.Errorf("resolve spec dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSpecDirNotFound, abs)
	}

	s := &Specification{Dir: abs}

	if err := readYAML(filepath.Join(abs, WorkshopFile), &s.Workshop, true); err != nil {
		return nil, err
	}

	var ml moduleList
	if err := readYAML(filepath.Join(abs, ModulesFile), &ml, true); err != nil {
		return nil, err
	}
	s.Modules = ml.Modules

	if err := readYAML(filepath.Join(abs, ProfileFile), &s.Profile, false); err != nil {
		return nil, err
	}
	if s.Profile.Domain == "" {
		s.Profile.Domain = "general"
	}

	s.Project = readText(filepath.Join(abs, ProjectFile))
	s.Guidelines = readText(filepath.Join(abs, GuidelinesFile))

	return s, nil
}

// readYAML decodes a YAML file into out. A missing optional file leaves out
// untouched; a missing required file is ErrMissingSpecFile.
func readYAML(path string, out any, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if required {
				return fmt.Errorf("%w: %s", ErrMissingSpecFile, path)
			}
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// readText returns the file contents, or "" when the file does not exist.
func readText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
