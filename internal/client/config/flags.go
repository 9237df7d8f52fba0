package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mitchellh/go-homedir"
)

// Global flags. -c/-config is read separately by flagx.JsonConfigFlag.
var (
	valueFlags = []string{"-c", "-config", "-d", "-l", "-t"}
	boolFlags  = []string{"-v"}
)

// parseFlags populates cfg from the global flags:
//
//	-d string   identities directory
//	-l string   log level (debug, info, warn, error)
//	-t int      request timeout in seconds, 0 for none
//	-v          verbose, same as -l debug
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("spxp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath string
	fs.StringVar(&configPath, "c", "", "path to config file")
	fs.StringVar(&configPath, "config", "", "path to config file")

	dir := fs.String("d", cfg.IdentitiesDir, "identities directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	verbose := fs.Bool("v", false, "verbose output")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("global flags: %w", err)
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["t"] {
		if *timeout < 0 {
			return fmt.Errorf("global flags: negative timeout %d", *timeout)
		}
		// only an explicit -t replaces a finer-grained JSON value
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}

	expanded, err := homedir.Expand(*dir)
	if err != nil {
		return fmt.Errorf("-d: %w", err)
	}
	cfg.IdentitiesDir = expanded
	if *verbose {
		cfg.LogLevel = "debug"
	}
	return nil
}
