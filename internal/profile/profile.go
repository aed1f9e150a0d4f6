// Package profile caches the user's server-side display profile.
package profile

import "strings"

// GuestDisplayName is shown whenever no profile name is available, whether
// because the profile has not loaded, failed to load, or was saved blank.
const GuestDisplayName = "Guest User"

// Store holds the cached profile. Like the other state components it is
// only touched from the app's update loop, so it carries no lock.
type Store struct {
	name   string
	loaded bool
}

// NewStore returns an empty, not-yet-loaded store. DisplayName falls back
// to the guest identity until a fetch succeeds.
func NewStore() *Store {
	return &Store{}
}

// Set records a fetched or saved profile name.
func (s *Store) Set(name string) {
	s.name = strings.TrimSpace(name)
	s.loaded = true
}

// Name returns the raw stored name, which may be empty.
func (s *Store) Name() string {
	return s.name
}

// Loaded reports whether a profile fetch or save has completed. A failed
// fetch leaves the store unloaded and the UI on the guest fallback.
func (s *Store) Loaded() bool {
	return s.loaded
}

// DisplayName returns the name to render, falling back to GuestDisplayName
// when no usable name exists.
func (s *Store) DisplayName() string {
	if s.name == "" {
		return GuestDisplayName
	}
	return s.name
}

// NormalizeName trims a proposed profile name. An empty result is valid:
// saving a blank name reverts the account to the guest identity.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
