// ABOUTME: Subcommand implementations: thin glue over the repository engine
// ABOUTME: No algorithmic content; formatting, dispatch, and error surfacing only

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"github.com/smcget/smcget/internal/progress"
	"github.com/smcget/smcget/internal/repo"
	"github.com/smcget/smcget/internal/search"
	"github.com/smcget/smcget/internal/smcpak"
)

const maxListTitleWidth = 40

func runInstall(r *repo.LocalRepository, args []string, out *renderer) error {
	if len(args) == 0 {
		return fmt.Errorf("install requires at least one archive path")
	}
	for _, archive := range args {
		name, err := installOne(r, archive, out)
		if err != nil {
			return fmt.Errorf("installing %s: %w", archive, err)
		}
		fmt.Printf("installed %s\n", name)
	}
	return nil
}

func installOne(r *repo.LocalRepository, archive string, out *renderer) (string, error) {
	workDir, err := os.MkdirTemp("", "smcget-")
	if err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	var name string
	install := func(report repo.ProgressFunc) error {
		pkg, err := smcpak.Open(archive, workDir, report)
		if err != nil {
			return err
		}
		name = pkg.Spec().Name
		return r.Install(pkg, report)
	}

	if out.styled {
		err = progress.Run(install)
	} else {
		err = progress.RunPlain(install)
	}
	return name, err
}

func runUninstall(r *repo.LocalRepository, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uninstall requires at least one package name")
	}
	for _, name := range args {
		if err := r.Uninstall(name); err != nil {
			return err
		}
		fmt.Printf("uninstalled %s\n", name)
	}
	return nil
}

func runList(r *repo.LocalRepository, args []string, out *renderer) error {
	specs := r.Specs()
	if len(args) > 0 {
		specs = search.Filter(strings.Join(args, " "), specs)
	}

	// tabwriter counts escape bytes as width, so the table stays unstyled.
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tDIFFICULTY\tAUTHORS")
	for _, s := range specs {
		title := runewidth.Truncate(s.Title, maxListTitleWidth, "…")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, title, s.Difficulty, strings.Join(s.Authors, ", "))
	}
	return w.Flush()
}

func runInfo(r *repo.LocalRepository, args []string, out *renderer) error {
	if len(args) != 1 {
		return fmt.Errorf("info requires exactly one package name")
	}
	name := args[0]

	var spec *repo.PackageSpecification
	for _, s := range r.Specs() {
		if s.Name == name {
			spec = s
			break
		}
	}
	if spec == nil {
		if suggestions := search.Filter(name, r.Specs()); len(suggestions) > 0 {
			return fmt.Errorf("package %q is not installed (did you mean %q?)", name, suggestions[0].Name)
		}
		return fmt.Errorf("package %q is not installed", name)
	}

	fmt.Println(out.title(spec.Title))
	fmt.Printf("%s %s\n", out.faint("name:"), spec.Name)
	fmt.Printf("%s %s\n", out.faint("authors:"), strings.Join(spec.Authors, ", "))
	fmt.Printf("%s %s\n", out.faint("difficulty:"), spec.Difficulty)
	for _, c := range repo.Categories() {
		if files := spec.FilesFor(c); len(files) > 0 {
			fmt.Printf("%s %d file(s)\n", out.faint(c.String()+":"), len(files))
		}
	}
	if spec.Description != "" {
		fmt.Println()
		fmt.Print(out.markdown(spec.Description))
	}
	return nil
}

func runPack(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("pack requires a source directory and an output archive path")
	}
	dir, outPath := args[0], args[1]

	specPath, err := smcpak.FindSpec(dir)
	if err != nil {
		return fmt.Errorf("packing %s: %w", dir, err)
	}
	spec, err := repo.LoadSpec(specPath)
	if err != nil {
		return err
	}
	if err := smcpak.Build(outPath, spec, dir); err != nil {
		return err
	}
	fmt.Printf("packed %s into %s\n", spec.Name, outPath)
	return nil
}

func runFetchSpec(r *repo.LocalRepository, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("fetch-spec requires an identifier and a destination directory")
	}
	path, err := r.FetchSpec(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runFetchPak(r *repo.LocalRepository, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("fetch-pak requires an identifier and a destination directory")
	}
	path, err := r.FetchPackage(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
