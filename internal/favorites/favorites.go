// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorites keeps each reader's saved books.

A reader is either a guest, identified only by a device key, or a signed-in
user. The two modes use different backends:

  - Guest: one JSON array per device in a key-value store ([BlobStore]).
  - Signed in: one document per book in a per-user collection ([DocumentStore]).

The mode is picked on every call from the [Owner] passed in, so a sign-in or
sign-out takes effect on the very next operation. Guest favorites are not
copied into the user's collection on sign-in.

# Error Policy

Reads never fail: a missing, corrupt or unreachable backend yields an empty
list. Saves fail loudly, because the reader has to know a favorite was not
kept. Removing a signed-in user's favorite is the exception: a failed delete
is logged and the current list is returned.
*/
package favorites

import (
	"errors"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
)

// Backend labels used in logs and metrics.
const (
	backendGuest = "guest"
	backendCloud = "cloud"
)

// maxUpdateAttempts bounds optimistic retries of a guest write.
const maxUpdateAttempts = 8

var (
	// ErrInvalidRecord rejects a book that normalizes to an empty id.
	ErrInvalidRecord = apperr.Unprocessable("Book record has no id")

	// ErrNoOwner is returned when neither a user nor a device is known.
	ErrNoOwner = apperr.Unauthorized("Sign in or send an X-Device-ID header")

	// ErrWriteConflict means a guest blob kept changing under every attempt.
	ErrWriteConflict = errors.New("favorites: too many concurrent writes")
)

// Owner is the session identity a favorites call acts for.
//
// An empty UserID means guest, in which case DeviceID scopes the list.
type Owner struct {
	UserID   string
	DeviceID string
}

// IsGuest reports whether the owner is anonymous.
func (owner Owner) IsGuest() bool {
	return owner.UserID == ""
}

// known reports whether the owner can be mapped to storage at all.
func (owner Owner) known() bool {
	return !owner.IsGuest() || owner.DeviceID != ""
}

func (owner Owner) backend() string {
	if owner.IsGuest() {
		return backendGuest
	}
	return backendCloud
}

func (owner Owner) guestKey() string {
	return constants.RedisPrefixGuestFavorites + owner.DeviceID
}
