package apimiddleware

import (
	"sync"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
)

// APIKeyCache caches api key to user lookups so the auth middleware doesn't
// hit the database on every request.
type APIKeyCache struct {
	apikeyCacheMu sync.RWMutex
	cache         map[string]*mcmodel.User
	userStor      stor.UserStor
}

func NewAPIKeyCache(userStor stor.UserStor) *APIKeyCache {
	return &APIKeyCache{
		cache:    make(map[string]*mcmodel.User),
		userStor: userStor,
	}
}

func (c *APIKeyCache) GetUserByAPIKey(apikey string) (*mcmodel.User, error) {
	c.apikeyCacheMu.RLock()

	if user, ok := c.cache[apikey]; ok {
		c.apikeyCacheMu.RUnlock()
		return user, nil
	}

	// Need to upgrade to a Write Lock
	c.apikeyCacheMu.RUnlock()
	c.apikeyCacheMu.Lock()
	defer c.apikeyCacheMu.Unlock()

	// Check again now that we hold the write lock; another thread may have
	// filled the entry in between the two locks.
	if user, ok := c.cache[apikey]; ok {
		return user, nil
	}

	user, err := c.userStor.GetUserByAPIToken(apikey)
	if err != nil {
		// No user matching that key
		return nil, err
	}

	c.cache[apikey] = user
	return user, nil
}

// DeleteUserByAPIKey drops a cache entry, for when a key is revoked.
func (c *APIKeyCache) DeleteUserByAPIKey(apikey string) {
	c.apikeyCacheMu.Lock()
	defer c.apikeyCacheMu.Unlock()
	delete(c.cache, apikey)
}
