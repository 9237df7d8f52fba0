// Package models defines the SPXP documents the client reads, signs and
// publishes, and the local Identity aggregate that owns them.
//
// Local documents are decoded strictly: unknown members or missing required
// fields are rejected at load time, so mutators never see a malformed
// document. Remote profiles (friends, places, hometowns) are decoded
// leniently, since other implementations may add members, and only checked
// for the fields a reference needs.
package models
