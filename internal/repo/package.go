// ABOUTME: Package: a decoded archive bundling a spec and its unpacked payload
// ABOUTME: Constructed by the archive collaborator; the engine does not own it

package repo

import (
	"fmt"
	"os"
	"path/filepath"
)

// Package is a decoded content archive: the specification plus the payload
// already unpacked to a working directory. The working directory holds one
// subdirectory per category key ("levels", "music", ...) with the files the
// manifest lists.
type Package struct {
	spec        *PackageSpecification
	archivePath string // original .smcpak file, cached on install
	workDir     string // unpacked payload
}

// NewPackage wraps an unpacked archive. The caller retains ownership of the
// working directory and archive file.
func NewPackage(spec *PackageSpecification, archivePath, workDir string) (*Package, error) {
	if spec == nil {
		return nil, fmt.Errorf("package requires a specification")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if workDir == "" {
		return nil, fmt.Errorf("package %s: working directory is required", spec.Name)
	}
	if fi, err := os.Stat(workDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("package %s: working directory %s is not a directory", spec.Name, workDir)
	}
	return &Package{spec: spec, archivePath: archivePath, workDir: workDir}, nil
}

// Spec returns the package's specification.
func (p *Package) Spec() *PackageSpecification { return p.spec }

// ArchivePath returns the path of the original archive file, or "" when the
// package was assembled without one.
func (p *Package) ArchivePath() string { return p.archivePath }

// PayloadDir returns the unpacked payload directory for one category.
func (p *Package) PayloadDir(c Category) string {
	return filepath.Join(p.workDir, c.String())
}
