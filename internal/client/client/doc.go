// Package client talks to SPXP services over HTTPS.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services; HTTPClient
// implements it with net/http and JSON bodies:
//
//   - Discover           GET  https://{domain}/.well-known/spxp/spe-discovery
//   - Bind               POST {bind}
//   - RegisterDevice     POST {managementEndpoint}/auth/device
//   - AccessToken        POST {managementEndpoint}/auth/access_token
//   - ServiceInfo        GET  {managementEndpoint}/service/info
//   - PutProfile         PUT  {managementEndpoint}/profile/root
//   - PutFriends         PUT  {managementEndpoint}/profile/friends
//   - CreatePost         POST {managementEndpoint}/posts
//   - UploadMedia        POST {managementEndpoint}/media (multipart)
//   - FetchProfile       GET  {profile uri}
//
// # Error Handling
//
// Discovery failures of any kind are collapsed into common.ErrDiscoveryFailed.
// Every other failed call returns a *ResponseError, which matches
// common.ErrTransport and keeps the raw server body for diagnostics.
//
// No call is retried. Calls block until the response arrives or ctx ends.
package client
