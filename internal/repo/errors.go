// ABOUTME: Typed not-found errors for the repository engine
// ABOUTME: Each carries enough identity for a precise user-facing message

package repo

import "fmt"

// NoSuchResourceError reports a resource (e.g. a specification file) that is
// not present in the store.
type NoSuchResourceError struct {
	Kind string // resource kind, e.g. "spec"
	Name string // identifier as given by the caller
}

func (e *NoSuchResourceError) Error() string {
	return fmt.Sprintf("no such %s: %q", e.Kind, e.Name)
}

// NoSuchPackageError reports a package archive that is not present in the
// cache. Name carries the package name with the archive extension stripped.
type NoSuchPackageError struct {
	Name string
}

func (e *NoSuchPackageError) Error() string {
	return fmt.Sprintf("no such package: %q", e.Name)
}

// NotInstalledError reports an uninstall of a name the index does not track.
// Surfacing this distinctly keeps index/disk divergence from failing
// obscurely further down.
type NotInstalledError struct {
	Name string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("package %q is not installed", e.Name)
}
