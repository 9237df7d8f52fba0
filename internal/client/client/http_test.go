package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTLSServer starts a stub service and returns a client that trusts it and
// the host:port usable as a discovery domain.
func newTLSServer(t *testing.T, h http.Handler) (*HTTPClient, *httptest.Server, string) {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(0, WithHTTPClient(srv.Client())), srv, srv.Listener.Addr().String()
}

func TestDiscover_ReturnsEndpointTriple(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/spxp/spe-discovery", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{"start":"A","bind":"B","managementEndpoint":"C"}`)
	})
	c, _, domain := newTLSServer(t, mux)

	d, err := c.Discover(context.Background(), domain)
	require.NoError(t, err)
	assert.Equal(t, &models.Discovery{Start: "A", Bind: "B", ManagementEndpoint: "C"}, d)
}

func TestDiscover_FailuresAreCoarse(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }},
		{"not json", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "<html>") }},
		{"missing field", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"start":"A","bind":"B"}`)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, domain := newTLSServer(t, tt.handler)

			_, err := c.Discover(context.Background(), domain)
			require.ErrorIs(t, err, common.ErrDiscoveryFailed)
			assert.True(t, strings.HasSuffix(err.Error(), "domain does not provide the SPXP-SPE extension"))

			var de *DiscoveryError
			require.ErrorAs(t, err, &de)
			assert.Error(t, de.Cause)
		})
	}
}

func TestDiscover_TransportErrorIsCoarse(t *testing.T) {
	c := NewHTTPClient(0)
	_, err := c.Discover(context.Background(), "127.0.0.1:1")
	require.ErrorIs(t, err, common.ErrDiscoveryFailed)

	_, err = c.Discover(context.Background(), "evil.example/path")
	require.ErrorIs(t, err, common.ErrDiscoveryFailed)
}

func TestBind_PostsTokenAndKey(t *testing.T) {
	var got models.BindRequest
	c, srv, _ := newTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"profileUri":"https://p/john"}`)
	}))

	resp, err := c.Bind(context.Background(), srv.URL+"/bind", &models.BindRequest{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "https://p/john", resp.ProfileURI)
	assert.Equal(t, "tok", got.Token)
}

func TestBind_ErrorSurfacesBody(t *testing.T) {
	c, srv, _ := newTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":"token already used"}`)
	}))

	_, err := c.Bind(context.Background(), srv.URL+"/bind", &models.BindRequest{Token: "tok"})
	require.ErrorIs(t, err, common.ErrTransport)

	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.Contains(t, err.Error(), "token already used")
}

func TestRegisterDevice_MissingTokenIsTransportError(t *testing.T) {
	c, srv, _ := newTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mgmt/auth/device", r.URL.Path)
		_, _ = io.WriteString(w, `{"something":"else"}`)
	}))

	_, err := c.RegisterDevice(context.Background(), srv.URL+"/mgmt/", &models.DeviceRegistration{ProfileURI: "p"})
	require.ErrorIs(t, err, common.ErrTransport)
	assert.Contains(t, err.Error(), "device_token")
	assert.Contains(t, err.Error(), `{"something":"else"}`)
}

func TestAccessTokenAndServiceInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/access_token", func(w http.ResponseWriter, r *http.Request) {
		var req models.AccessTokenRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dt", req.DeviceToken)
		_, _ = io.WriteString(w, `{"access_token":"at"}`)
	})
	mux.HandleFunc("/service/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"endpoints":{"friendsEndpoint":"f","postsEndpoint":"p","keysEndpoint":"k","connectEndpoint":"c","connectResponseEndpoint":"cr"}}`)
	})
	c, srv, _ := newTLSServer(t, mux)
	ctx := context.Background()

	token, err := c.AccessToken(ctx, srv.URL, &models.AccessTokenRequest{DeviceToken: "dt"})
	require.NoError(t, err)
	assert.Equal(t, "at", token)

	info, err := c.ServiceInfo(ctx, srv.URL, token)
	require.NoError(t, err)
	assert.Equal(t, "cr", info.Endpoints.ConnectResponseEndpoint)

	_, err = c.ServiceInfo(ctx, srv.URL, "wrong")
	require.ErrorIs(t, err, common.ErrTransport)
}

func TestServiceInfo_IncompleteEndpoints(t *testing.T) {
	c, srv, _ := newTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"endpoints":{"friendsEndpoint":"f"}}`)
	}))
	_, err := c.ServiceInfo(context.Background(), srv.URL, "at")
	require.ErrorIs(t, err, common.ErrTransport)
	assert.Contains(t, err.Error(), "postsEndpoint")
}

func TestPublishCalls_UseMethodsAndBearer(t *testing.T) {
	type call struct{ method, path, auth string }
	var calls []call
	c, srv, _ := newTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path, r.Header.Get("Authorization")})
		w.WriteHeader(http.StatusNoContent)
	}))
	ctx := context.Background()

	require.NoError(t, c.PutProfile(ctx, srv.URL, "at", &models.Profile{Ver: "0.3", Name: "n"}))
	require.NoError(t, c.PutFriends(ctx, srv.URL, "at", models.NewFriendsList()))
	require.NoError(t, c.CreatePost(ctx, srv.URL, "at", &models.Post{Type: models.PostText, Message: "hi"}))

	assert.Equal(t, []call{
		{http.MethodPut, "/profile/root", "Bearer at"},
		{http.MethodPut, "/profile/friends", "Bearer at"},
		{http.MethodPost, "/posts", "Bearer at"},
	}, calls)
}

func TestUploadMedia_SendsMultipartFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))

	c, srv, _ := newTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media", r.URL.Path)
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "jpeg-bytes", string(b))
		assert.Equal(t, "preview.jpg", hdr.Filename)
		assert.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"uri":"https://media/1"}`)
	}))

	uri, err := c.UploadMedia(context.Background(), srv.URL, "at", path)
	require.NoError(t, err)
	assert.Equal(t, "https://media/1", uri)
}

func TestUploadMedia_MissingFile(t *testing.T) {
	c := NewHTTPClient(0)
	_, err := c.UploadMedia(context.Background(), "https://unused", "at", filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, common.ErrLocalIO)
}

func TestFetchProfile(t *testing.T) {
	c, srv, _ := newTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"ver":"0.3","name":"Friend"}`)
	}))

	b, err := c.FetchProfile(context.Background(), srv.URL+"/friend")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ver":"0.3","name":"Friend"}`, string(b))

	_, err = c.FetchProfile(context.Background(), srv.URL+"/gone")
	require.ErrorIs(t, err, common.ErrTransport)
}
