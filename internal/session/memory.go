package session

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory with the same expiry rules
// as RedisStore. Sessions are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 2*ttl)}
}

func (s *MemoryStore) Get(_ context.Context, chatID int64) (Session, error) {
	v, ok := s.cache.Get(memoryKey(chatID))
	if !ok {
		return Session{}, ErrNotFound
	}
	return v.(Session), nil
}

func (s *MemoryStore) Save(_ context.Context, chatID int64, sess Session) error {
	s.cache.SetDefault(memoryKey(chatID), sess)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, chatID int64) error {
	s.cache.Delete(memoryKey(chatID))
	return nil
}

func memoryKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
