// Package services contains the protocol logic of the spxp client.
//
// Every command follows the same pipeline: load the identity, apply one
// mutation to an in-memory document, re-sign it, persist it atomically and,
// when the identity is bound, publish it. Media referenced by a document is
// uploaded before the document is signed because the signature covers the
// returned URIs.
//
// Services are strictly sequential and fail fast: the first failing step
// aborts the operation, nothing is retried and nothing is rolled back.
package services
