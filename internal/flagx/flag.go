// Package flagx separates global flags from the command part of an
// "spxp [global flags] <command> [command flags]" invocation.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// SplitArgs walks the leading flags of args and moves those listed in
// valueFlags (which consume a value) or boolFlags into global. Scanning stops
// at the first token that is not one of these flags; that token and all
// following ones are returned in rest untouched.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//  3. Boolean flags:                         -v
//
// The result slices are never nil.
func SplitArgs(args []string, valueFlags, boolFlags []string) (global, rest []string) {
	withValue := make(map[string]struct{}, len(valueFlags))
	for _, f := range valueFlags {
		withValue[f] = struct{}{}
	}
	boolean := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		boolean[f] = struct{}{}
	}

	global = make([]string, 0, len(args))

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			break
		}

		name := arg
		if n, _, ok := strings.Cut(arg, "="); ok {
			name = n
			_, isValue := withValue[name]
			_, isBool := boolean[name]
			if !isValue && !isBool {
				break
			}
			global = append(global, arg)
			continue
		}

		if _, ok := boolean[name]; ok {
			global = append(global, arg)
			continue
		}
		if _, ok := withValue[name]; !ok {
			break
		}
		global = append(global, arg)
		if i+1 < len(args) {
			global = append(global, args[i+1])
			i++
		}
	}

	rest = append(make([]string, 0, len(args)-i), args[i:]...)
	return global, rest
}

// FilterArgs keeps only the allowed flags (and their separate values) from
// args, preserving order. Everything else is dropped.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// JsonConfigFlag extracts the config file path given via -c or -config from
// the global part of the command line. Other flags are ignored. If neither is
// present, an empty string is returned.
func JsonConfigFlag(args []string) string {
	var config string

	global, _ := SplitArgs(args, []string{"-c", "-config", "-d", "-l", "-t"}, []string{"-v"})
	global = FilterArgs(global, []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(global)

	return config
}
