package telegram

import (
	"strconv"
	"time"

	"ai-trip-planner/internal/trip"

	"github.com/patrickmn/go-cache"
)

// SessionStore keeps the last itinerary planned in each chat so it can be
// exported later. Entries expire after the configured TTL.
type SessionStore struct {
	cache *cache.Cache
}

// NewSessionStore creates a store whose entries live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{cache: cache.New(ttl, 2*ttl)}
}

// Save replaces the chat's itinerary.
func (s *SessionStore) Save(chatID int64, it *trip.Itinerary) {
	s.cache.SetDefault(sessionKey(chatID), it)
}

// Get returns the chat's itinerary if it has not expired.
func (s *SessionStore) Get(chatID int64) (*trip.Itinerary, bool) {
	v, ok := s.cache.Get(sessionKey(chatID))
	if !ok {
		return nil, false
	}
	it, ok := v.(*trip.Itinerary)
	return it, ok
}

// Forget drops the chat's itinerary.
func (s *SessionStore) Forget(chatID int64) {
	s.cache.Delete(sessionKey(chatID))
}

// Len is the number of live sessions.
func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
