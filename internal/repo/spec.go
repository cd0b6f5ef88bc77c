// ABOUTME: PackageSpecification: per-package metadata and category file manifests
// ABOUTME: YAML encoding for the spec files persisted under packages/

package repo

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpecExt is the file extension of persisted specification files.
const SpecExt = ".yml"

// FileManifest lists a package's files per category, relative to the
// category directory. The manifest is authoritative for uninstallation.
type FileManifest struct {
	Levels   []string `yaml:"levels,omitempty"`
	Music    []string `yaml:"music,omitempty"`
	Graphics []string `yaml:"graphics,omitempty"`
	Sounds   []string `yaml:"sounds,omitempty"`
	Worlds   []string `yaml:"worlds,omitempty"`
}

// PackageSpecification describes one package's metadata and the content
// files it owns. Two specifications are equal iff their names match; the
// in-memory index relies on this for membership and removal.
type PackageSpecification struct {
	Name        string       `yaml:"name"`
	Title       string       `yaml:"title"`
	Authors     []string     `yaml:"authors"`
	Difficulty  string       `yaml:"difficulty"`
	Description string       `yaml:"description"`
	Files       FileManifest `yaml:"files"`
}

// FilesFor returns the manifest entries for one category.
func (s *PackageSpecification) FilesFor(c Category) []string {
	switch c {
	case CategoryLevels:
		return s.Files.Levels
	case CategoryMusic:
		return s.Files.Music
	case CategoryGraphics:
		return s.Files.Graphics
	case CategorySounds:
		return s.Files.Sounds
	case CategoryWorlds:
		return s.Files.Worlds
	default:
		return nil
	}
}

// Equal reports whether two specifications refer to the same package.
func (s *PackageSpecification) Equal(other *PackageSpecification) bool {
	return other != nil && s.Name == other.Name
}

// Validate checks the invariants the engine depends on: a filesystem-safe
// name, at least one author, and manifest paths that stay inside their
// category directory.
func (s *PackageSpecification) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("spec name is required")
	}
	if strings.ContainsAny(s.Name, `/\`) || s.Name != filepath.Base(s.Name) {
		return fmt.Errorf("spec name %q must be a plain path segment", s.Name)
	}
	if len(s.Authors) == 0 {
		return fmt.Errorf("spec %s: at least one author is required", s.Name)
	}
	for _, c := range Categories() {
		for _, f := range s.FilesFor(c) {
			if f == "" {
				return fmt.Errorf("spec %s: empty %s manifest entry", s.Name, c)
			}
			if path.IsAbs(f) || strings.HasPrefix(path.Clean(f), "..") {
				return fmt.Errorf("spec %s: %s manifest entry %q escapes the category directory", s.Name, c, f)
			}
		}
	}
	return nil
}

// LoadSpec reads and validates a single specification file.
func LoadSpec(path string) (*PackageSpecification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec %s: %w", path, err)
	}

	var s PackageSpecification
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing spec %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec %s: %w", path, err)
	}
	return &s, nil
}

// LoadSpecDir decodes every specification file in a directory, sorted by
// file name so the index order is stable across runs.
func LoadSpecDir(dir string) ([]*PackageSpecification, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading spec directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	specs := make([]*PackageSpecification, 0, len(names))
	for _, name := range names {
		s, err := LoadSpec(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// SaveSpec writes a specification to <dir>/<name>.yml atomically.
func SaveSpec(dir string, s *PackageSpecification) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling spec %s: %w", s.Name, err)
	}

	dest := filepath.Join(dir, s.Name+SpecExt)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("writing spec %s: %w", dest, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("renaming spec %s: %w", dest, err)
	}
	return dest, nil
}
