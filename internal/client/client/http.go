package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

// maxBodySize caps how much of any response is read.
const maxBodySize = 8 << 20

type HTTPClient struct {
	http *http.Client
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client, e.g. with the client
// of an httptest TLS server.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// NewHTTPClient builds a client. A zero timeout keeps the transport defaults.
func NewHTTPClient(timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{http: &http.Client{Timeout: timeout}}
	for _, o := range opts {
		o(c)
	}
	return c
}

func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// do sends one request and returns the body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, op, method, url, accessToken, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &ResponseError{Op: op, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ResponseError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &ResponseError{Op: op, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{Op: op, URL: url, StatusCode: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}

func (c *HTTPClient) sendJSON(ctx context.Context, op, method, url, accessToken string, in any) ([]byte, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	return c.do(ctx, op, method, url, accessToken, "application/json", bytes.NewReader(payload))
}

func decodeJSON(op, url string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseError{Op: op, URL: url, StatusCode: http.StatusOK, Body: string(body), Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}

// requireFields fails when any of the given name/value pairs is empty.
func requireFields(op, url string, body []byte, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return &ResponseError{Op: op, URL: url, StatusCode: http.StatusOK, Body: string(body), Err: fmt.Errorf("response lacks %q", pairs[i])}
		}
	}
	return nil
}

func (c *HTTPClient) Discover(ctx context.Context, domain string) (*models.Discovery, error) {
	fail := func(cause error) (*models.Discovery, error) {
		return nil, &DiscoveryError{Domain: domain, Cause: cause}
	}
	if domain == "" || strings.ContainsAny(domain, "/?#") {
		return fail(fmt.Errorf("invalid domain %q", domain))
	}

	url := "https://" + domain + common.DiscoveryPath
	body, err := c.do(ctx, "discover", http.MethodGet, url, "", "", nil)
	if err != nil {
		return fail(err)
	}

	var d models.Discovery
	if err := json.Unmarshal(body, &d); err != nil {
		return fail(err)
	}
	if d.Start == "" || d.Bind == "" || d.ManagementEndpoint == "" {
		return fail(errors.New("discovery document lacks start, bind or managementEndpoint"))
	}
	return &d, nil
}

func (c *HTTPClient) Bind(ctx context.Context, bindURL string, in *models.BindRequest) (*models.BindResponse, error) {
	body, err := c.sendJSON(ctx, "bind", http.MethodPost, bindURL, "", in)
	if err != nil {
		return nil, err
	}
	var out models.BindResponse
	if err := decodeJSON("bind", bindURL, body, &out); err != nil {
		return nil, err
	}
	if err := requireFields("bind", bindURL, body, "profileUri", out.ProfileURI); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RegisterDevice(ctx context.Context, managementEndpoint string, in *models.DeviceRegistration) (*models.DeviceRegistrationResponse, error) {
	url := endpoint(managementEndpoint, "/auth/device")
	body, err := c.sendJSON(ctx, "register device", http.MethodPost, url, "", in)
	if err != nil {
		return nil, err
	}
	var out models.DeviceRegistrationResponse
	if err := decodeJSON("register device", url, body, &out); err != nil {
		return nil, err
	}
	if err := requireFields("register device", url, body, "device_token", out.DeviceToken); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AccessToken(ctx context.Context, managementEndpoint string, in *models.AccessTokenRequest) (string, error) {
	url := endpoint(managementEndpoint, "/auth/access_token")
	body, err := c.sendJSON(ctx, "access token", http.MethodPost, url, "", in)
	if err != nil {
		return "", err
	}
	var out models.AccessTokenResponse
	if err := decodeJSON("access token", url, body, &out); err != nil {
		return "", err
	}
	if err := requireFields("access token", url, body, "access_token", out.AccessToken); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) ServiceInfo(ctx context.Context, managementEndpoint, accessToken string) (*models.ServiceInfo, error) {
	url := endpoint(managementEndpoint, "/service/info")
	body, err := c.do(ctx, "service info", http.MethodGet, url, accessToken, "", nil)
	if err != nil {
		return nil, err
	}
	var out models.ServiceInfo
	if err := decodeJSON("service info", url, body, &out); err != nil {
		return nil, err
	}
	e := out.Endpoints
	if err := requireFields("service info", url, body,
		"friendsEndpoint", e.FriendsEndpoint,
		"postsEndpoint", e.PostsEndpoint,
		"keysEndpoint", e.KeysEndpoint,
		"connectEndpoint", e.ConnectEndpoint,
		"connectResponseEndpoint", e.ConnectResponseEndpoint,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PutProfile(ctx context.Context, managementEndpoint, accessToken string, p *models.Profile) error {
	_, err := c.sendJSON(ctx, "publish profile", http.MethodPut, endpoint(managementEndpoint, "/profile/root"), accessToken, p)
	return err
}

func (c *HTTPClient) PutFriends(ctx context.Context, managementEndpoint, accessToken string, f *models.FriendsList) error {
	_, err := c.sendJSON(ctx, "publish friends", http.MethodPut, endpoint(managementEndpoint, "/profile/friends"), accessToken, f)
	return err
}

func (c *HTTPClient) CreatePost(ctx context.Context, managementEndpoint, accessToken string, p *models.Post) error {
	_, err := c.sendJSON(ctx, "publish post", http.MethodPost, endpoint(managementEndpoint, "/posts"), accessToken, p)
	return err
}

// UploadMedia sends the file at path as the multipart field "file" and
// returns the URI the service assigned to it.
func (c *HTTPClient) UploadMedia(ctx context.Context, managementEndpoint, accessToken, path string) (string, error) {
	url := endpoint(managementEndpoint, "/media")

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrLocalIO, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(path)))
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("%w: read %s: %v", common.ErrLocalIO, path, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}

	body, err := c.do(ctx, "upload media", http.MethodPost, url, accessToken, mw.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	var out models.MediaResponse
	if err := decodeJSON("upload media", url, body, &out); err != nil {
		return "", err
	}
	if err := requireFields("upload media", url, body, "uri", out.URI); err != nil {
		return "", err
	}
	return out.URI, nil
}

// FetchProfile returns the raw body of a remote profile document.
func (c *HTTPClient) FetchProfile(ctx context.Context, uri string) ([]byte, error) {
	return c.do(ctx, "fetch profile", http.MethodGet, uri, "", "", nil)
}
