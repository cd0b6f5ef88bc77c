// ABOUTME: LocalRepository: the on-disk store engine behind the Repository contract
// ABOUTME: Keeps the in-memory spec index in sync with ordered filesystem mutations

package repo

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/smcget/smcget/internal/log"
)

const (
	specsDirName = "packages"
	cacheDirName = "cache"

	// PackageExt is the archive file extension served from the cache.
	PackageExt = ".smcpak"
)

// LocalRepository owns a root directory holding the specs directory, the
// archive cache, and one directory per content category. Its in-memory index
// is the single source of truth for "is X installed": it is hydrated from
// disk once at construction and thereafter mutated only by Install and
// Uninstall, in the same call that mutates the disk.
//
// The engine assumes exclusive access to the root for the duration of any
// call; concurrent use is unsupported.
type LocalRepository struct {
	root  string
	specs []*PackageSpecification
}

// NewLocalRepository opens (or initializes) a repository at root. Missing
// structural directories are created non-destructively; existing contents
// are left untouched. Every spec file found under packages/ is decoded into
// the index.
func NewLocalRepository(root string) (*LocalRepository, error) {
	r := &LocalRepository{root: root}

	dirs := []string{r.SpecsDir(), r.CacheDir()}
	for _, c := range Categories() {
		dirs = append(dirs, r.CategoryDir(c))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating repository directory %s: %w", dir, err)
		}
	}

	specs, err := LoadSpecDir(r.SpecsDir())
	if err != nil {
		return nil, err
	}
	r.specs = specs

	log.Debug("opened repository %s with %d installed package(s)", root, len(specs))
	return r, nil
}

// Root returns the repository root path.
func (r *LocalRepository) Root() string { return r.root }

// SpecsDir returns the directory holding persisted specification files.
func (r *LocalRepository) SpecsDir() string { return filepath.Join(r.root, specsDirName) }

// CacheDir returns the directory holding cached package archives.
func (r *LocalRepository) CacheDir() string { return filepath.Join(r.root, cacheDirName) }

// CategoryDir returns the directory a category's files are installed into.
func (r *LocalRepository) CategoryDir(c Category) string {
	return filepath.Join(r.root, filepath.FromSlash(c.Dir()))
}

// Specs returns the installed specifications in index order.
func (r *LocalRepository) Specs() []*PackageSpecification {
	out := make([]*PackageSpecification, len(r.specs))
	copy(out, r.specs)
	return out
}

// Contains reports whether a specification with the given name is indexed.
func (r *LocalRepository) Contains(name string) bool {
	return r.find(name) != nil
}

// ContainsPackage reports whether an equivalent specification is indexed.
func (r *LocalRepository) ContainsPackage(pkg *Package) bool {
	return pkg != nil && r.Contains(pkg.Spec().Name)
}

// FetchSpec copies the specification file named by identifier into destDir.
// The identifier may be given with or without the spec extension.
func (r *LocalRepository) FetchSpec(identifier, destDir string) (string, error) {
	file := identifier
	if ext := strings.ToLower(filepath.Ext(file)); ext != ".yml" && ext != ".yaml" {
		file += SpecExt
	}

	src := filepath.Join(r.SpecsDir(), file)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", &NoSuchResourceError{Kind: "spec", Name: identifier}
		}
		return "", fmt.Errorf("checking spec %s: %w", src, err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating destination %s: %w", destDir, err)
	}
	dest := filepath.Join(destDir, file)
	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// FetchPackage copies the cached archive named by identifier into destDir.
// The identifier may be given with or without the archive extension; the
// not-found error carries the bare package name.
func (r *LocalRepository) FetchPackage(identifier, destDir string) (string, error) {
	file := identifier
	if !strings.HasSuffix(file, PackageExt) {
		file += PackageExt
	}
	name := strings.TrimSuffix(file, PackageExt)

	src := filepath.Join(r.CacheDir(), file)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", &NoSuchPackageError{Name: name}
		}
		return "", fmt.Errorf("checking archive %s: %w", src, err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating destination %s: %w", destDir, err)
	}
	dest := filepath.Join(destDir, file)
	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Install installs a decoded package: persist its spec, copy its payload
// into the category directories (colliding files are overwritten), cache the
// original archive, then index the spec. There is no atomicity across the
// steps; a fault midway leaves partial state for the caller to surface.
//
// The progress callback is part of the Repository contract but is driven by
// the fetch/decompress collaborators that produce the Package, not by the
// local copy steps here.
func (r *LocalRepository) Install(pkg *Package, progress ProgressFunc) error {
	_ = progress

	spec := pkg.Spec()
	if _, err := SaveSpec(r.SpecsDir(), spec); err != nil {
		return err
	}

	for _, c := range Categories() {
		if err := copyTree(pkg.PayloadDir(c), r.CategoryDir(c)); err != nil {
			return fmt.Errorf("installing %s files for %s: %w", c, spec.Name, err)
		}
	}

	if src := pkg.ArchivePath(); src != "" {
		dest := filepath.Join(r.CacheDir(), spec.Name+PackageExt)
		if err := copyFile(src, dest); err != nil {
			return fmt.Errorf("caching archive for %s: %w", spec.Name, err)
		}
	}

	r.add(spec)
	log.Info("installed %s", spec.Name)
	return nil
}

// Uninstall removes an installed package by name: delete every manifest file
// (fail-fast on the first missing one), prune newly empty directories to a
// fixed point, remove the persisted spec and cached archive so a from-disk
// rebuild cannot resurrect the package, then drop the spec from the index.
func (r *LocalRepository) Uninstall(name string) error {
	spec := r.find(name)
	if spec == nil {
		return &NotInstalledError{Name: name}
	}

	for _, c := range Categories() {
		dir := r.CategoryDir(c)
		for _, f := range spec.FilesFor(c) {
			target := filepath.Join(dir, filepath.FromSlash(f))
			if err := os.Remove(target); err != nil {
				return fmt.Errorf("removing %s file %s: %w", c, f, err)
			}
		}
	}

	for _, c := range Categories() {
		if err := pruneEmptyDirs(r.CategoryDir(c)); err != nil {
			return err
		}
	}

	specFile := filepath.Join(r.SpecsDir(), spec.Name+SpecExt)
	if err := os.Remove(specFile); err != nil {
		return fmt.Errorf("removing spec for %s: %w", spec.Name, err)
	}

	// A repository populated by an older tool may have no cached archive.
	archive := filepath.Join(r.CacheDir(), spec.Name+PackageExt)
	if err := os.Remove(archive); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cached archive for %s: %w", spec.Name, err)
	}

	r.remove(spec.Name)
	log.Info("uninstalled %s", spec.Name)
	return nil
}

func (r *LocalRepository) find(name string) *PackageSpecification {
	for _, s := range r.specs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// add upserts a spec into the index, keeping one entry per name.
func (r *LocalRepository) add(spec *PackageSpecification) {
	for i, s := range r.specs {
		if s.Name == spec.Name {
			r.specs[i] = spec
			return
		}
	}
	r.specs = append(r.specs, spec)
}

func (r *LocalRepository) remove(name string) {
	for i, s := range r.specs {
		if s.Name == name {
			r.specs = append(r.specs[:i], r.specs[i+1:]...)
			return
		}
	}
}

// copyFile copies a regular file, overwriting dest if present.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", dest, err)
	}
	return out.Close()
}

// copyTree copies every file under src into dest, creating directories as
// needed and overwriting colliding files. A missing src is not an error: a
// package need not ship files for every category.
func copyTree(src, dest string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
