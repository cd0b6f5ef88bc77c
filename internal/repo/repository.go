// ABOUTME: Repository contract shared by local and remote stores
// ABOUTME: Fetch spec/archive, install, uninstall, and membership tests

package repo

// Repository is the capability set any package store must provide. The
// membership test is polymorphic over a bare name and a decoded Package;
// both forms normalize to a name comparison, so they are expressed as the
// Contains/ContainsPackage method pair.
type Repository interface {
	// FetchSpec retrieves the specification file named by identifier into
	// destDir and returns its final path. The identifier may carry the
	// spec file extension. Returns a *NoSuchResourceError if absent.
	FetchSpec(identifier, destDir string) (string, error)

	// FetchPackage retrieves the archive named by identifier into destDir
	// and returns its final path. Returns a *NoSuchPackageError if absent.
	FetchPackage(identifier, destDir string) (string, error)

	// Install installs a decoded package. The progress callback, if
	// non-nil, is invoked by the transfer/decompress collaborators that
	// feed the install; it is advisory only.
	Install(pkg *Package, progress ProgressFunc) error

	// Uninstall removes an installed package by name. Returns a
	// *NotInstalledError when the name is not tracked.
	Uninstall(name string) error

	// Contains reports whether a specification with the given name is
	// present in the store's index.
	Contains(name string) bool

	// ContainsPackage reports whether an equivalent specification is
	// present, comparing by the package's identity.
	ContainsPackage(pkg *Package) bool
}
