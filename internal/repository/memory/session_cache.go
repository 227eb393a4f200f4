package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently validated cookie values so hot request
// paths skip the session/user lookup. Entries are short lived; destroy
// purges eagerly so a logged-out cookie never resolves from cache.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(cookieValue string, userId uuid.UUID) {
	r.cache.Set(cookieValue, userId, cache.DefaultExpiration)
}

func (r *SessionCache) Get(cookieValue string) (uuid.UUID, bool) {
	if x, found := r.cache.Get(cookieValue); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *SessionCache) Delete(cookieValue string) {
	r.cache.Delete(cookieValue)
}
