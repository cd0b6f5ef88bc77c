// ABOUTME: Tests for the .smcpak archive codec
// ABOUTME: Build/Open round trips, progress reporting, and hostile entry names

package smcpak

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smcget/smcget/internal/repo"
)

func testSpec(name string) *repo.PackageSpecification {
	return &repo.PackageSpecification{
		Name:       name,
		Title:      "Archive Test",
		Authors:    []string{"carol"},
		Difficulty: "easy",
		Files: repo.FileManifest{
			Levels: []string{"stage_1.smclvl"},
			Music:  []string{"tune.ogg"},
		},
	}
}

func writePayload(t *testing.T, dir string, spec *repo.PackageSpecification) {
	t.Helper()
	for _, c := range repo.Categories() {
		for _, f := range spec.FilesFor(c) {
			path := filepath.Join(dir, c.String(), filepath.FromSlash(f))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte("payload "+f), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestBuildOpenRoundTrip(t *testing.T) {
	t.Parallel()

	spec := testSpec("round-trip")
	payload := t.TempDir()
	writePayload(t, payload, spec)

	archive := filepath.Join(t.TempDir(), "round-trip"+Ext)
	if err := Build(archive, spec, payload); err != nil {
		t.Fatalf("Build: %v", err)
	}

	work := t.TempDir()
	pkg, err := Open(archive, work, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if pkg.Spec().Name != "round-trip" {
		t.Errorf("Name = %q; want %q", pkg.Spec().Name, "round-trip")
	}
	if pkg.ArchivePath() != archive {
		t.Errorf("ArchivePath = %q; want %q", pkg.ArchivePath(), archive)
	}

	for _, rel := range []string{"levels/stage_1.smclvl", "music/tune.ogg"} {
		path := filepath.Join(work, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s in work dir: %v", rel, err)
		}
		if !strings.HasPrefix(string(data), "payload ") {
			t.Errorf("%s content = %q; want payload content", rel, data)
		}
	}
}

func TestExtractReportsProgress(t *testing.T) {
	t.Parallel()

	spec := testSpec("progressive")
	payload := t.TempDir()
	writePayload(t, payload, spec)

	archive := filepath.Join(t.TempDir(), "progressive"+Ext)
	if err := Build(archive, spec, payload); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var calls int
	var lastOverall float64
	err := Extract(archive, t.TempDir(), func(overall float64, unit string, unitPct float64) {
		calls++
		if overall < lastOverall {
			t.Errorf("overall percent went backwards: %f -> %f", lastOverall, overall)
		}
		lastOverall = overall
		if unit == "" {
			t.Error("expected a unit name in every report")
		}
		if unitPct < 0 || unitPct > 100 {
			t.Errorf("unit percent out of range: %f", unitPct)
		}
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if calls == 0 {
		t.Fatal("expected progress callbacks")
	}
	if lastOverall != 100 {
		t.Errorf("final overall percent = %f; want 100", lastOverall)
	}
}

func TestOpenRequiresSpec(t *testing.T) {
	t.Parallel()

	archive := filepath.Join(t.TempDir(), "nospec"+Ext)
	writeRawZip(t, archive, map[string]string{"levels/a.smclvl": "x"})

	_, err := Open(archive, t.TempDir(), nil)
	if err == nil {
		t.Fatal("expected error for archive without a spec")
	}
	if !strings.Contains(err.Error(), "no specification") {
		t.Errorf("error = %q; want to mention the missing spec", err.Error())
	}
}

func TestOpenRejectsMultipleSpecs(t *testing.T) {
	t.Parallel()

	archive := filepath.Join(t.TempDir(), "twospecs"+Ext)
	writeRawZip(t, archive, map[string]string{
		"one.yml": "name: one\nauthors: [a]\n",
		"two.yml": "name: two\nauthors: [a]\n",
	})

	_, err := Open(archive, t.TempDir(), nil)
	if err == nil {
		t.Fatal("expected error for archive with two specs")
	}
	if !strings.Contains(err.Error(), "multiple specification") {
		t.Errorf("error = %q; want to mention multiple specs", err.Error())
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	t.Parallel()

	archive := filepath.Join(t.TempDir(), "hostile"+Ext)
	writeRawZip(t, archive, map[string]string{"../evil.txt": "nope"})

	err := Extract(archive, t.TempDir(), nil)
	if err == nil {
		t.Fatal("expected error for escaping entry")
	}
	if !strings.Contains(err.Error(), "escapes") {
		t.Errorf("error = %q; want to mention the escape", err.Error())
	}
}

// writeRawZip builds a zip with arbitrary entry names, bypassing Build's
// sanity rules.
func writeRawZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}
