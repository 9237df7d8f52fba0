package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/services"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

func (a *App) post(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "create" {
		return usageError("post create <type> [flags]")
	}

	fs := a.newFlags("post create")
	var in services.PostInput
	var createTS string
	fs.StringVar(&in.Message, "message", "", "post text")
	fs.StringVar(&in.Link, "link", "", "link of a web post")
	fs.StringVar(&in.PreviewFile, "preview", "", "preview image of a photo or video post")
	fs.StringVar(&in.FullFile, "full", "", "full image of a photo post, or the media of a video post")
	fs.StringVar(&in.Place, "place", "", "profile URI of the place")
	fs.StringVar(&createTS, "createts", "", "creation time, "+common.TimestampLayout+" (UTC) or RFC 3339")
	rest, err := fs.parse(args[1:])
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("%w: post type", common.ErrMissingArgument)
	}
	in.Type = rest[0]

	if createTS != "" {
		if in.CreateTS, err = parseTimestamp(createTS); err != nil {
			return usageError("-createts: %v", err)
		}
	}
	ic := a.identityContext(fs.identity)
	if in.Type == string(models.PostText) && in.Message == "" && a.isBound(ctx, ic) {
		if in.Message, err = GetMultiline(a.reader, "Message", a.out); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	p, err := a.postService.Create(ctx, ic, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s post published\n", p.Type)
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(common.TimestampLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// isBound reports whether prompting for post content makes sense. Errors are
// left for the service to report.
func (a *App) isBound(ctx context.Context, ic models.IdentityContext) bool {
	id, err := a.identityService.Load(ctx, ic)
	return err == nil && id.IsBound()
}
