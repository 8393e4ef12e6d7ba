package httpcache

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// MemCacheAdapter keeps the most recently used responses in memory.
type MemCacheAdapter struct {
	entries *lru.Cache
}

func NewMemCacheAdapter(size int) (*MemCacheAdapter, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &MemCacheAdapter{entries: entries}, nil
}

func (a *MemCacheAdapter) Get(key string) (*Response, bool) {
	v, ok := a.entries.Get(key)
	if !ok {
		return nil, false
	}
	resp, ok := v.(*Response)
	return resp, ok
}

// Set ignores expiration; Client drops the expired responses it reads.
func (a *MemCacheAdapter) Set(key string, resp *Response, _ time.Time) {
	a.entries.Add(key, resp)
}

func (a *MemCacheAdapter) Remove(key string) {
	a.entries.Remove(key)
}

func (a *MemCacheAdapter) Len() int {
	return a.entries.Len()
}
