// Package session maintains the client-side cache of chat sessions.
//
// The Registry performs no I/O of its own: network results flow in through
// ReplaceAll and ShowSearchResults, and the app's update loop is the only
// caller, so no locking is needed. The canonical set and the displayed
// (search-filtered) set are kept separate so a search never disturbs the
// active-chat state.
package session

import (
	"sort"
	"strings"

	"github.com/parleychat/parley/internal/api"
	"github.com/parleychat/parley/internal/errors"
)

// Registry caches chat summaries and tracks which chat is active.
type Registry struct {
	chats     []api.Chat // canonical set, most recently updated first
	displayed []api.Chat // search results, shown instead of chats while filtering
	filtering bool
	activeID  string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// ReplaceAll replaces the canonical cache wholesale with a fresh server
// listing; the last refresh wins, there is no incremental merge. Any active
// search filter is dropped. If currentID no longer names a known chat the
// active id becomes empty rather than dangling.
func (r *Registry) ReplaceAll(chats []api.Chat, currentID string) {
	r.chats = sortByUpdated(chats)
	r.displayed = nil
	r.filtering = false

	if currentID != "" && !r.contains(currentID) {
		currentID = ""
	}
	r.activeID = currentID
}

// List returns the chats to display: search results while a filter is
// active, otherwise the canonical set. No I/O is performed.
func (r *Registry) List() []api.Chat {
	if r.filtering {
		return r.displayed
	}
	return r.chats
}

// Len reports the number of canonical (unfiltered) chats.
func (r *Registry) Len() int {
	return len(r.chats)
}

// ActiveID returns the id of the active chat, or empty if none.
func (r *Registry) ActiveID() string {
	return r.activeID
}

// SetActive marks id as the active chat. The id must reference a chat in
// the canonical set; an empty id clears the active chat.
func (r *Registry) SetActive(id string) error {
	if id == "" {
		r.activeID = ""
		return nil
	}
	if !r.contains(id) {
		return errors.ChatNotFound(id)
	}
	r.activeID = id
	return nil
}

// Add inserts a freshly created chat at the front of the canonical set and
// makes it active. The next refresh replaces this optimistic entry with the
// server's authoritative listing.
func (r *Registry) Add(chat api.Chat) {
	r.chats = append([]api.Chat{chat}, r.chats...)
	r.activeID = chat.ID
}

// Get returns the chat with the given id from the canonical set.
func (r *Registry) Get(id string) (api.Chat, bool) {
	for _, c := range r.chats {
		if c.ID == id {
			return c, true
		}
	}
	return api.Chat{}, false
}

// ShowSearchResults replaces only the displayed list; the canonical set and
// the active id are untouched.
func (r *Registry) ShowSearchResults(chats []api.Chat) {
	r.displayed = sortByUpdated(chats)
	r.filtering = true
}

// ClearSearch drops the search filter and shows the canonical set again.
func (r *Registry) ClearSearch() {
	r.displayed = nil
	r.filtering = false
}

// IsFiltering reports whether search results are currently displayed.
func (r *Registry) IsFiltering() bool {
	return r.filtering
}

func (r *Registry) contains(id string) bool {
	for _, c := range r.chats {
		if c.ID == id {
			return true
		}
	}
	return false
}

func sortByUpdated(chats []api.Chat) []api.Chat {
	sorted := append([]api.Chat(nil), chats...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}

// ValidateTitle trims a proposed chat title and rejects one that trims to
// empty. Titles identify a session and must be non-empty, unlike a profile
// display name which may legitimately be blank.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", errors.EmptyTitle()
	}
	return trimmed, nil
}
