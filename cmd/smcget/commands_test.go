// ABOUTME: Tests for the CLI subcommands against a temporary repository
// ABOUTME: Exercises the pack/install/info/uninstall flow end to end

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smcget/smcget/internal/repo"
)

func testRepo(t *testing.T) *repo.LocalRepository {
	t.Helper()
	r, err := repo.NewLocalRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalRepository: %v", err)
	}
	return r
}

// packageSource lays out a pack-ready directory: the spec file at the root
// and the manifest files under their category directories.
func packageSource(t *testing.T, spec *repo.PackageSpecification) string {
	t.Helper()

	dir := t.TempDir()
	if _, err := repo.SaveSpec(dir, spec); err != nil {
		t.Fatal(err)
	}
	for _, c := range repo.Categories() {
		for _, f := range spec.FilesFor(c) {
			path := filepath.Join(dir, c.String(), filepath.FromSlash(f))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte("content "+f), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return dir
}

func TestPackInstallUninstallFlow(t *testing.T) {
	spec := &repo.PackageSpecification{
		Name:       "flow-test",
		Title:      "Flow Test",
		Authors:    []string{"dave"},
		Difficulty: "medium",
		Files: repo.FileManifest{
			Levels: []string{"flow_1.smclvl"},
			Sounds: []string{"jump.ogg"},
		},
	}
	source := packageSource(t, spec)
	archive := filepath.Join(t.TempDir(), "flow-test"+repo.PackageExt)

	if err := runPack([]string{source, archive}); err != nil {
		t.Fatalf("runPack: %v", err)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("expected archive at %s: %v", archive, err)
	}

	r := testRepo(t)
	out := &renderer{styled: false}
	if err := runInstall(r, []string{archive}, out); err != nil {
		t.Fatalf("runInstall: %v", err)
	}
	if !r.Contains("flow-test") {
		t.Fatal("expected flow-test installed")
	}

	level := filepath.Join(r.CategoryDir(repo.CategoryLevels), "flow_1.smclvl")
	if _, err := os.Stat(level); err != nil {
		t.Errorf("expected level file at %s: %v", level, err)
	}

	if err := runUninstall(r, []string{"flow-test"}); err != nil {
		t.Fatalf("runUninstall: %v", err)
	}
	if r.Contains("flow-test") {
		t.Error("expected flow-test removed from the index")
	}
}

func TestRunInstallRequiresArgs(t *testing.T) {
	if err := runInstall(testRepo(t), nil, &renderer{}); err == nil {
		t.Fatal("expected error for missing archive paths")
	}
}

func TestRunUninstallMissingPackage(t *testing.T) {
	err := runUninstall(testRepo(t), []string{"ghost"})
	if err == nil {
		t.Fatal("expected error for unknown package")
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error = %q; want to name the package", err.Error())
	}
}

func TestRunInfoSuggestsNearMiss(t *testing.T) {
	r := testRepo(t)
	spec := &repo.PackageSpecification{
		Name:    "plumber-adventure",
		Title:   "Plumber Adventure",
		Authors: []string{"a"},
	}
	source := packageSource(t, spec)
	archive := filepath.Join(t.TempDir(), spec.Name+repo.PackageExt)
	if err := runPack([]string{source, archive}); err != nil {
		t.Fatal(err)
	}
	if err := runInstall(r, []string{archive}, &renderer{}); err != nil {
		t.Fatal(err)
	}

	err := runInfo(r, []string{"plumbr"}, &renderer{})
	if err == nil {
		t.Fatal("expected error for unknown package")
	}
	if !strings.Contains(err.Error(), "plumber-adventure") {
		t.Errorf("error = %q; want a suggestion", err.Error())
	}
}

func TestRunPackRequiresSpec(t *testing.T) {
	err := runPack([]string{t.TempDir(), filepath.Join(t.TempDir(), "x"+repo.PackageExt)})
	if err == nil {
		t.Fatal("expected error for directory without a spec")
	}
}

func TestFetchArgValidation(t *testing.T) {
	r := testRepo(t)
	if err := runFetchSpec(r, []string{"only-one"}); err == nil {
		t.Error("fetch-spec: expected error for missing destination")
	}
	if err := runFetchPak(r, []string{"only-one"}); err == nil {
		t.Error("fetch-pak: expected error for missing destination")
	}
}

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	if newRenderer("always", false).styled != true {
		t.Error("color=always should style")
	}
	if newRenderer("always", true).styled != false {
		t.Error("--plain should win over color=always")
	}
	if newRenderer("never", false).styled != false {
		t.Error("color=never should not style")
	}
}

func TestRendererPassthroughWhenUnstyled(t *testing.T) {
	t.Parallel()

	r := &renderer{styled: false}
	if got := r.title("hello"); got != "hello" {
		t.Errorf("title = %q; want passthrough", got)
	}
	if got := r.markdown("# hi"); got != "# hi" {
		t.Errorf("markdown = %q; want passthrough", got)
	}
}
