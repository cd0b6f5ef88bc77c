// ABOUTME: The .smcpak archive codec: zip payload plus one spec file at the root
// ABOUTME: Extract drives the install progress callback; Build creates archives

package smcpak

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smcget/smcget/internal/repo"
)

// Ext is the archive file extension.
const Ext = repo.PackageExt

// Open extracts the archive into workDir, decodes the specification found at
// the archive root, and returns the decoded package. The caller owns workDir
// and is responsible for cleaning it up after install.
func Open(archivePath, workDir string, progress repo.ProgressFunc) (*repo.Package, error) {
	if err := Extract(archivePath, workDir, progress); err != nil {
		return nil, err
	}

	specPath, err := FindSpec(workDir)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", archivePath, err)
	}
	spec, err := repo.LoadSpec(specPath)
	if err != nil {
		return nil, err
	}
	return repo.NewPackage(spec, archivePath, workDir)
}

// Extract unpacks a .smcpak archive into destDir. The progress callback, if
// non-nil, is invoked as bytes land on disk with the overall percent across
// the whole archive, the entry name in flight, and that entry's own percent.
func Extract(archivePath, destDir string, progress repo.ProgressFunc) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	var total uint64
	for _, f := range zr.File {
		total += f.UncompressedSize64
	}

	var done uint64
	for _, f := range zr.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return fmt.Errorf("archive %s: %w", archivePath, err)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		n, err := extractFile(f, target, total, done, progress)
		done += n
		if err != nil {
			return fmt.Errorf("extracting %s from %s: %w", f.Name, archivePath, err)
		}
	}
	return nil
}

// extractFile writes one archive entry, reporting progress per chunk.
// Returns the number of bytes written even on error so the caller's overall
// count stays consistent.
func extractFile(f *zip.File, target string, total, doneBefore uint64, progress repo.ProgressFunc) (uint64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return 0, err
	}

	var written uint64
	buf := make([]byte, 32*1024)
	for {
		n, rerr := rc.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				return written, werr
			}
			written += uint64(n)
			report(progress, total, doneBefore+written, f.Name, f.UncompressedSize64, written)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return written, rerr
		}
	}
	return written, out.Close()
}

func report(progress repo.ProgressFunc, total, done uint64, unit string, unitTotal, unitDone uint64) {
	if progress == nil {
		return
	}
	progress(percent(done, total), unit, percent(unitDone, unitTotal))
}

func percent(done, total uint64) float64 {
	if total == 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}

// Build writes a .smcpak archive containing the specification at the root
// plus every file under payloadDir (top-level spec files there are skipped
// so a packed directory can carry its own copy).
func Build(out string, spec *repo.PackageSpecification, payloadDir string) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", out, err)
	}
	zw := zip.NewWriter(f)

	err = writeArchive(zw, spec, payloadDir)
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		return fmt.Errorf("writing archive %s: %w", out, err)
	}
	return nil
}

func writeArchive(zw *zip.Writer, spec *repo.PackageSpecification, payloadDir string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshaling spec %s: %w", spec.Name, err)
	}
	w, err := zw.Create(spec.Name + repo.SpecExt)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	return filepath.WalkDir(payloadDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(payloadDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if isSpecName(rel) {
			return nil
		}

		w, err := zw.Create(rel)
		if err != nil {
			return err
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	})
}

// FindSpec locates the single specification file at the root of an
// extracted archive or a directory about to be packed.
func FindSpec(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isSpecName(entry.Name()) {
			found = append(found, entry.Name())
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no specification file at archive root")
	case 1:
		return filepath.Join(dir, found[0]), nil
	default:
		return "", fmt.Errorf("multiple specification files at archive root: %s", strings.Join(found, ", "))
	}
}

func isSpecName(name string) bool {
	if strings.ContainsRune(name, '/') {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}

// safeJoin joins an archive entry name onto base, rejecting entries that
// would escape it.
func safeJoin(base, name string) (string, error) {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("entry %q has an absolute path", name)
	}
	target := filepath.Join(base, name)
	if target != base && !strings.HasPrefix(target, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("entry %q escapes the extraction directory", name)
	}
	return target, nil
}
