package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// errUsage marks command-line mistakes. They exit with ExitUsage.
var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// commandFlags is a flag set carrying the -i identity selector every
// identity-scoped command accepts.
type commandFlags struct {
	*flag.FlagSet
	identity string
}

func (a *App) newFlags(name string) *commandFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	cf := &commandFlags{FlagSet: fs}
	fs.StringVar(&cf.identity, "i", "", "identity to operate on")
	return cf
}

// parse accepts positional arguments before, between and after flags.
func (cf *commandFlags) parse(args []string) ([]string, error) {
	var positional []string
	for {
		if err := cf.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		args = cf.Args()
		if len(args) == 0 {
			return positional, nil
		}
		if args[0] == "--" {
			return append(positional, args[1:]...), nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// joinArgs allows multi-word values without quoting.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
