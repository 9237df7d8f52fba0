package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
)

// bind runs the binding handshake. Without a token on the command line it is
// read from the terminal, unless a partial binding is being resumed.
func (a *App) bind(ctx context.Context, args []string) error {
	fs := a.newFlags("bind")
	rest, err := fs.parse(args)
	if err != nil {
		return err
	}
	if len(rest) > 2 {
		return usageError("expected <domain> [token]")
	}

	var domain, token string
	if len(rest) > 0 {
		domain = rest[0]
	}
	if len(rest) > 1 {
		token = rest[1]
	}

	ic := a.identityContext(fs.identity)
	id, err := a.identityService.Load(ctx, ic)
	if err != nil {
		return err
	}
	if token == "" && domain != "" && id.Binding.Stage() == models.StageUnbound {
		if token, err = GetSecret(a.errOut, "Bind token"); err != nil {
			return err
		}
	}

	rec, err := a.bindingService.Bind(ctx, ic, domain, token)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "bound %q to %s\n", ic.Name, rec.ProfileURI)
	return nil
}
