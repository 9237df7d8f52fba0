// Package identities is the Identity Store: the persisted form of named local
// identities.
//
// # Layout
//
// Each identity lives in its own directory below the store root:
//
//	<root>/<identity>/signing-key.json      private Ed25519 JWK
//	<root>/<identity>/signing-key.pub.json  public extract of the signing key
//	<root>/<identity>/connection-key.json   private X25519 JWK
//	<root>/<identity>/profile.json          profile document
//	<root>/<identity>/friends.json          friends document
//	<root>/<identity>/binding.json          binding record, only once bound
//
// Every file is written through filex.WriteFileAtomic, so an interrupted
// write never replaces a good document with a partial one. There is no
// cross-process locking.
//
// Key Types
//
//   - type Repository     - interface used by the services
//   - type FSRepository   - directory-per-identity implementation
//   - type MemRepository  - in-memory implementation for tests
package identities
