package models

import (
	"fmt"

	"github.com/dmitrijs2005/spxp-cli/internal/common"
)

// FriendsList is the SPXP friends document.
type FriendsList struct {
	Data      []Reference `json:"data"`
	Signature *Signature  `json:"signature,omitempty"`
}

// NewFriendsList returns an empty friends document. Data is never nil so it
// renders as [] rather than null.
func NewFriendsList() *FriendsList {
	return &FriendsList{Data: []Reference{}}
}

func (f *FriendsList) SetSignature(s *Signature) { f.Signature = s }

// Add inserts ref, replacing any entry with the same URI. The new entry is
// appended at the end.
func (f *FriendsList) Add(ref Reference) {
	f.Remove(ref.URI)
	f.Data = append(f.Data, ref)
}

// Remove drops every entry with the given URI and reports whether one was
// found. Removing an absent URI leaves the list untouched.
func (f *FriendsList) Remove(uri string) bool {
	kept := f.Data[:0]
	found := false
	for _, r := range f.Data {
		if r.URI == uri {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if found {
		f.Data = kept
	}
	return found
}

// Contains reports whether uri is in the list.
func (f *FriendsList) Contains(uri string) bool {
	for _, r := range f.Data {
		if r.URI == uri {
			return true
		}
	}
	return false
}

// DecodeFriendsList strictly decodes a locally stored friends document.
func DecodeFriendsList(data []byte) (*FriendsList, error) {
	var f FriendsList
	if err := decodeStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: friends: %v", common.ErrInvalidDocument, err)
	}
	if f.Data == nil {
		f.Data = []Reference{}
	}
	for _, r := range f.Data {
		if r.URI == "" {
			return nil, fmt.Errorf("%w: friends entry without uri", common.ErrInvalidDocument)
		}
	}
	return &f, nil
}
