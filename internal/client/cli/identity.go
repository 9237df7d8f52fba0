package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

func (a *App) initIdentity(ctx context.Context, args []string) error {
	fs := a.newFlags("init")
	shortInfo := fs.String("short-info", "", "short profile description")
	rest, err := fs.parse(args)
	if err != nil {
		return err
	}

	name := joinArgs(rest)
	if name == "" {
		if name, err = GetSimpleText(a.reader, "Display name", a.out); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	if name == "" {
		return fmt.Errorf("%w: name", common.ErrMissingArgument)
	}

	ic := a.identityContext(fs.identity)
	id, err := a.identityService.Init(ctx, ic, name, *shortInfo)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created identity %q (key %s)\n", id.Name, id.SigningKey.Kid)
	return nil
}

func (a *App) listIdentities(ctx context.Context, args []string) error {
	if _, err := a.newFlags("identities").parse(args); err != nil {
		return err
	}
	names, err := a.identityService.List(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		id, err := a.identityService.Load(ctx, a.identityContext(n))
		if err != nil {
			fmt.Fprintf(a.out, "%s\t(unreadable: %v)\n", n, err)
			continue
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", n, id.Profile.Name, id.Binding.Stage())
	}
	return nil
}

func (a *App) publish(ctx context.Context, args []string) error {
	fs := a.newFlags("publish")
	if _, err := fs.parse(args); err != nil {
		return err
	}
	if err := a.profileService.Republish(ctx, a.identityContext(fs.identity)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "profile and friends published")
	return nil
}

func (a *App) discover(ctx context.Context, args []string) error {
	rest, err := a.newFlags("discover").parse(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: domain", common.ErrMissingArgument)
	}
	d, err := a.discoveryService.Discover(ctx, rest[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "start:              %s\nbind:               %s\nmanagementEndpoint: %s\n", d.Start, d.Bind, d.ManagementEndpoint)
	return nil
}
