// ABOUTME: CLI entry point for smcget, the level package manager
// ABOUTME: Parses flags, loads config, opens the repository, dispatches subcommands

package main

import (
	"fmt"
	"os"

	"github.com/smcget/smcget/internal/config"
	"github.com/smcget/smcget/internal/log"
	"github.com/smcget/smcget/internal/repo"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const usage = "usage: smcget <install|uninstall|list|info|pack|fetch-spec|fetch-pak> [args]"

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("smcget %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	cfg, err := config.Load(args.configFile)
	if err != nil {
		return err
	}
	if args.verbose || cfg.Verbose {
		log.SetLevel(log.LevelDebug)
	}
	if args.dataDir != "" {
		cfg.DataDir = args.dataDir
	}

	rest := args.remaining()
	if len(rest) == 0 {
		return fmt.Errorf("%s", usage)
	}
	subcmd, rest := rest[0], rest[1:]

	// pack builds an archive from a directory; it needs no repository.
	if subcmd == "pack" {
		return runPack(rest)
	}

	r, err := repo.NewLocalRepository(cfg.DataDir)
	if err != nil {
		return err
	}

	out := newRenderer(cfg.Color, args.plain)

	switch subcmd {
	case "install":
		return runInstall(r, rest, out)
	case "uninstall":
		return runUninstall(r, rest)
	case "list":
		return runList(r, rest, out)
	case "info":
		return runInfo(r, rest, out)
	case "fetch-spec":
		return runFetchSpec(r, rest)
	case "fetch-pak":
		return runFetchPak(r, rest)
	default:
		return fmt.Errorf("unknown subcommand %q: %s", subcmd, usage)
	}
}
