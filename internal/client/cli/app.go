package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/spxp-cli/internal/buildinfo"
	"github.com/dmitrijs2005/spxp-cli/internal/client/client"
	"github.com/dmitrijs2005/spxp-cli/internal/client/config"
	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/client/services"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type App struct {
	config *config.Config
	log    logging.Logger

	identityService  services.IdentityService
	discoveryService services.DiscoveryService
	bindingService   services.BindingService
	profileService   services.ProfileService
	friendsService   services.FriendsService
	postService      services.PostService

	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// NewApp wires every service over one client and one identity repository.
func NewApp(cfg *config.Config, log logging.Logger, c client.Client, repo identities.Repository) *App {
	signer := services.NewSigner()
	publisher := services.NewPublisher(c, signer, log)
	resolver := services.NewProfileResolver(c, log)
	discovery := services.NewDiscoveryService(c, log)

	return &App{
		config:           cfg,
		log:              log,
		identityService:  services.NewIdentityService(repo, log),
		discoveryService: discovery,
		bindingService:   services.NewBindingService(repo, c, discovery, signer, publisher, log),
		profileService:   services.NewProfileService(repo, signer, publisher, resolver, log),
		friendsService:   services.NewFriendsService(repo, signer, publisher, resolver, log),
		postService:      services.NewPostService(repo, signer, publisher, resolver, log),
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
		errOut:           os.Stderr,
	}
}

// Run executes one command and returns the process exit code. args start
// with the command name; global flags have already been removed.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "init":
		err = a.initIdentity(ctx, rest)
	case "discover":
		err = a.discover(ctx, rest)
	case "bind":
		err = a.bind(ctx, rest)
	case "profile":
		err = a.profile(ctx, rest)
	case "post":
		err = a.post(ctx, rest)
	case "friends":
		err = a.friends(ctx, rest)
	case "identities":
		err = a.listIdentities(ctx, rest)
	case "publish":
		err = a.publish(ctx, rest)
	case "version":
		buildinfo.PrintBuildData(a.out)
		return ExitOK
	case "help", "-h", "-help", "--help":
		a.usage()
		return ExitOK
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n", cmd)
		a.usage()
		return ExitUsage
	}
	return a.exitCode(ctx, cmd, err)
}

func (a *App) exitCode(ctx context.Context, cmd string, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.errOut, "%s: %v\n", cmd, err)
		return ExitUsage
	case errors.Is(err, common.ErrPrecondition):
		fmt.Fprintf(a.errOut, "%s: %v\n", cmd, err)
		return ExitUsage
	}
	a.log.Debug(ctx, "command failed", "command", cmd, "error", err)
	fmt.Fprintf(a.errOut, "%s: %v\n", cmd, err)
	return ExitFailure
}

func (a *App) usage() {
	fmt.Fprint(a.errOut, `usage: spxp [-c file] [-d dir] [-l level] [-t seconds] [-v] <command> [args]

commands:
  init [-i identity] [-short-info text] <name>
  discover <domain>
  bind [-i identity] <domain> [token]
  profile set [-i identity] <field> [value]
  profile show [-i identity]
  post create [-i identity] <type> [-message m] [-link url] [-preview file] [-full file] [-place uri] [-createts time]
  friends add|remove [-i identity] <profile-uri>
  friends list [-i identity]
  identities
  publish [-i identity]
  version
`)
}

func (a *App) identityContext(name string) models.IdentityContext {
	if name == "" {
		name = a.config.DefaultIdentity
	}
	return models.NewIdentityContext(name)
}

func (a *App) printOutcome(what string, o services.Outcome) {
	switch o {
	case services.OutcomePublished:
		fmt.Fprintf(a.out, "%s updated and published\n", what)
	case services.OutcomeLocalOnly:
		fmt.Fprintf(a.out, "%s updated locally; identity is not bound, nothing was published\n", what)
	case services.OutcomeUnchanged:
		fmt.Fprintf(a.out, "%s unchanged\n", what)
	}
}
