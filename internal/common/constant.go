package common

// ProtocolVersion is the SPXP protocol version written into and accepted from
// profile documents.
const ProtocolVersion = "0.3"

// DefaultIdentity is the identity used when a command gets no -i selector.
const DefaultIdentity = "default"

// DiscoveryPath is the well-known location of the SPXP-SPE discovery document.
const DiscoveryPath = "/.well-known/spxp/spe-discovery"

// TimestampLayout is the SPXP timestamp format, always in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000"

// AuthorizationHeaderName carries the bearer access token on PME requests.
const AuthorizationHeaderName = "Authorization"
