package client

import (
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

// ResponseError describes a failed call after discovery. StatusCode is 0 when
// the request never got a response.
type ResponseError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *ResponseError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v; body: %s", e.Op, e.URL, e.Err, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d; body: %s", e.Op, e.URL, e.StatusCode, e.Body)
}

// Is makes every ResponseError match common.ErrTransport.
func (e *ResponseError) Is(target error) bool {
	return target == common.ErrTransport
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// DiscoveryError reports a failed discovery with the fixed, coarse message of
// common.ErrDiscoveryFailed. Cause is kept for debug logging only.
type DiscoveryError struct {
	Domain string
	Cause  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Domain, common.ErrDiscoveryFailed.Error())
}

func (e *DiscoveryError) Unwrap() error {
	return common.ErrDiscoveryFailed
}
