package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

func (a *App) friends(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("friends add|remove|list")
	}

	cmd := args[0]
	fs := a.newFlags("friends " + cmd)
	rest, err := fs.parse(args[1:])
	if err != nil {
		return err
	}
	ic := a.identityContext(fs.identity)

	switch cmd {
	case "list":
		refs, err := a.friendsService.List(ctx, ic)
		if err != nil {
			return err
		}
		for _, r := range refs {
			if r.PublicKey != nil {
				fmt.Fprintf(a.out, "%s\t%s\n", r.URI, r.PublicKey.Kid)
				continue
			}
			fmt.Fprintln(a.out, r.URI)
		}
		return nil
	case "add", "remove":
	default:
		return usageError("unknown friends command %q", cmd)
	}

	if len(rest) != 1 {
		return fmt.Errorf("%w: profile uri", common.ErrMissingArgument)
	}
	if cmd == "add" {
		out, err := a.friendsService.Add(ctx, ic, rest[0])
		if err != nil {
			return err
		}
		a.printOutcome("friends", out)
		return nil
	}
	out, err := a.friendsService.Remove(ctx, ic, rest[0])
	if err != nil {
		return err
	}
	a.printOutcome("friends", out)
	return nil
}
