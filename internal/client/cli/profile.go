package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

func (a *App) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("profile set|show")
	}
	switch args[0] {
	case "set":
		return a.profileSet(ctx, args[1:])
	case "show":
		return a.profileShow(ctx, args[1:])
	}
	return usageError("unknown profile command %q", args[0])
}

// profileSet with no value removes the field.
func (a *App) profileSet(ctx context.Context, args []string) error {
	fs := a.newFlags("profile set")
	rest, err := fs.parse(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("%w: field", common.ErrMissingArgument)
	}

	field, value := rest[0], joinArgs(rest[1:])
	out, err := a.profileService.Set(ctx, a.identityContext(fs.identity), field, value)
	if err != nil {
		return err
	}
	a.printOutcome("profile", out)
	return nil
}

func (a *App) profileShow(ctx context.Context, args []string) error {
	fs := a.newFlags("profile show")
	if _, err := fs.parse(args); err != nil {
		return err
	}
	id, err := a.identityService.Load(ctx, a.identityContext(fs.identity))
	if err != nil {
		return err
	}
	b, err := models.MarshalDocument(id.Profile)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrLocalIO, err)
	}
	_, err = a.out.Write(b)
	return err
}
