// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --data-dir, --config, --verbose, --plain, --version

package main

import "flag"

type cliArgs struct {
	dataDir    string
	configFile string
	verbose    bool
	plain      bool
	version    bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.dataDir, "data-dir", "", "Repository root directory (overrides config)")
	flag.StringVar(&args.configFile, "config", "", "Path to config file")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.plain, "plain", false, "Disable styled output and progress bars")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
