package models

import (
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

type PostType string

const (
	PostText  PostType = "text"
	PostWeb   PostType = "web"
	PostPhoto PostType = "photo"
	PostVideo PostType = "video"
)

// ParsePostType maps a command-line type name to a PostType.
func ParsePostType(s string) (PostType, error) {
	switch t := PostType(s); t {
	case PostText, PostWeb, PostPhoto, PostVideo:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnsupportedPostType, s)
}

// Post is a post payload. It is never stored locally.
//
// Photo posts carry Small (preview) and optionally Full; video posts carry
// Preview and Media. CreateTS is omitted to let the service assign it.
type Post struct {
	Type      PostType   `json:"type"`
	CreateTS  string     `json:"createts,omitempty"`
	Message   string     `json:"message,omitempty"`
	Link      string     `json:"link,omitempty"`
	Full      string     `json:"full,omitempty"`
	Small     string     `json:"small,omitempty"`
	Preview   string     `json:"preview,omitempty"`
	Media     string     `json:"media,omitempty"`
	Place     *Reference `json:"place,omitempty"`
	Signature *Signature `json:"signature,omitempty"`
}

func (p *Post) SetSignature(s *Signature) { p.Signature = s }
