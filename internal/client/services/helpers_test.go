package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/spxp-cli/internal/client/models"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
	"github.com/stretchr/testify/require"
)

const (
	testDomain     = "spxp.example"
	testBindURL    = "https://spxp.example/bind"
	testMgmt       = "https://spxp.example/mgmt"
	testProfileURI = "https://spxp.example/john"
)

var testEndpoints = models.ServiceEndpoints{
	FriendsEndpoint:         "https://spxp.example/john/friends",
	PostsEndpoint:           "https://spxp.example/john/posts",
	KeysEndpoint:            "https://spxp.example/john/keys",
	ConnectEndpoint:         "https://spxp.example/john/connect",
	ConnectResponseEndpoint: "https://spxp.example/john/connect-response",
}

// fakeClient implements client.Client and records every call in Calls.
type fakeClient struct {
	DiscoverErr error
	BindErr     error
	RegisterErr error
	TokenErr    error
	InfoErr     error
	PutErr      error
	PostErr     error
	UploadErr   error

	// Profiles maps URIs to the bodies FetchProfile returns. Unknown URIs
	// fail with FetchErr.
	Profiles map[string]string
	FetchErr error

	Calls []string

	LastBind         *models.BindRequest
	LastRegistration *models.DeviceRegistration
	LastTokenRequest *models.AccessTokenRequest
	LastProfile      *models.Profile
	LastFriends      *models.FriendsList
	LastPost         *models.Post
	Uploads          []string
	Tokens           []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		Profiles: map[string]string{},
		FetchErr: errors.New("404 not found"),
	}
}

func (f *fakeClient) Discover(ctx context.Context, domain string) (*models.Discovery, error) {
	f.Calls = append(f.Calls, "discover")
	if f.DiscoverErr != nil {
		return nil, f.DiscoverErr
	}
	return &models.Discovery{Start: "https://" + domain + "/start", Bind: testBindURL, ManagementEndpoint: testMgmt}, nil
}

func (f *fakeClient) Bind(ctx context.Context, bindURL string, req *models.BindRequest) (*models.BindResponse, error) {
	f.Calls = append(f.Calls, "bind")
	f.LastBind = req
	if f.BindErr != nil {
		return nil, f.BindErr
	}
	return &models.BindResponse{ProfileURI: testProfileURI}, nil
}

func (f *fakeClient) RegisterDevice(ctx context.Context, mgmt string, req *models.DeviceRegistration) (*models.DeviceRegistrationResponse, error) {
	f.Calls = append(f.Calls, "device")
	f.LastRegistration = req
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &models.DeviceRegistrationResponse{DeviceToken: "device-token"}, nil
}

func (f *fakeClient) AccessToken(ctx context.Context, mgmt string, req *models.AccessTokenRequest) (string, error) {
	f.Calls = append(f.Calls, "token")
	f.LastTokenRequest = req
	if f.TokenErr != nil {
		return "", f.TokenErr
	}
	return "access-token", nil
}

func (f *fakeClient) ServiceInfo(ctx context.Context, mgmt, token string) (*models.ServiceInfo, error) {
	f.Calls = append(f.Calls, "info")
	f.Tokens = append(f.Tokens, token)
	if f.InfoErr != nil {
		return nil, f.InfoErr
	}
	return &models.ServiceInfo{Endpoints: testEndpoints}, nil
}

func (f *fakeClient) PutProfile(ctx context.Context, mgmt, token string, p *models.Profile) error {
	f.Calls = append(f.Calls, "profile")
	f.Tokens = append(f.Tokens, token)
	cp := *p
	f.LastProfile = &cp
	return f.PutErr
}

func (f *fakeClient) PutFriends(ctx context.Context, mgmt, token string, fl *models.FriendsList) error {
	f.Calls = append(f.Calls, "friends")
	f.Tokens = append(f.Tokens, token)
	cp := *fl
	cp.Data = append([]models.Reference{}, fl.Data...)
	f.LastFriends = &cp
	return f.PutErr
}

func (f *fakeClient) CreatePost(ctx context.Context, mgmt, token string, p *models.Post) error {
	f.Calls = append(f.Calls, "post")
	f.Tokens = append(f.Tokens, token)
	f.LastPost = p
	return f.PostErr
}

func (f *fakeClient) UploadMedia(ctx context.Context, mgmt, token, path string) (string, error) {
	f.Calls = append(f.Calls, "media")
	f.Uploads = append(f.Uploads, path)
	if f.UploadErr != nil {
		return "", f.UploadErr
	}
	return "https://spxp.example/media/" + filepath.Base(path), nil
}

func (f *fakeClient) FetchProfile(ctx context.Context, uri string) ([]byte, error) {
	f.Calls = append(f.Calls, "fetch")
	body, ok := f.Profiles[uri]
	if !ok {
		return nil, f.FetchErr
	}
	return []byte(body), nil
}

// env wires every service against one fake client and one memory repository.
type env struct {
	repo   *identities.MemRepository
	client *fakeClient

	identities IdentityService
	binding    BindingService
	profiles   ProfileService
	friends    FriendsService
	posts      PostService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	fixedNow := time.Date(2024, 3, 9, 14, 5, 6, 789e6, time.UTC)
	oldNow, oldID := timeNow, newDeviceID
	timeNow = func() time.Time { return fixedNow }
	newDeviceID = func() string { return "device-1" }
	t.Cleanup(func() { timeNow, newDeviceID = oldNow, oldID })

	log := logging.Discard()
	fc := newFakeClient()
	repo := identities.NewMemRepository()
	signer := NewSigner()
	pub := NewPublisher(fc, signer, log)
	res := NewProfileResolver(fc, log)

	return &env{
		repo:       repo,
		client:     fc,
		identities: NewIdentityService(repo, log),
		binding:    NewBindingService(repo, fc, NewDiscoveryService(fc, log), signer, pub, log),
		profiles:   NewProfileService(repo, signer, pub, res, log),
		friends:    NewFriendsService(repo, signer, pub, res, log),
		posts:      NewPostService(repo, signer, pub, res, log),
	}
}

var defaultIC = models.NewIdentityContext("")

// initIdentity creates the default identity.
func (e *env) initIdentity(t *testing.T) *models.Identity {
	t.Helper()
	id, err := e.identities.Init(context.Background(), defaultIC, "John Doe", "Exploring")
	require.NoError(t, err)
	return id
}

// bound creates the default identity, binds it and clears the recorded calls.
func (e *env) bound(t *testing.T) {
	t.Helper()
	e.initIdentity(t)
	_, err := e.binding.Bind(context.Background(), defaultIC, testDomain, "bind-token")
	require.NoError(t, err)
	e.client.Calls = nil
}

func (e *env) load(t *testing.T) *models.Identity {
	t.Helper()
	id, err := e.repo.Load(context.Background(), defaultIC)
	require.NoError(t, err)
	return id
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o600))
	return p
}
