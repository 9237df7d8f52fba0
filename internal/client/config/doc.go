// Package config loads runtime configuration for the spxp CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. The SPXP_HOME environment variable, for the identities directory.
//  3. Optional JSON file selected via the global -c or -config flag.
//  4. Global flags, which override earlier values.
//
// Global flags come before the command:
//
//	spxp [-c file] [-d dir] [-l level] [-t seconds] [-v] <command> [args]
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds. Paths may start with "~":
//
//	{
//	  "identities_dir": "~/.spxp/identities",
//	  "default_identity": "default",
//	  "log_level": "info",
//	  "request_timeout": "30s"
//	}
package config
