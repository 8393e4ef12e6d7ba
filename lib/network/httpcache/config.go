package httpcache

import (
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	tterrors "github.com/ModernExodus/tontoken/lib/errors"
)

const DefaultMemorySize = 1024

// NewAdapter makes the adapter of uri, eg. `memory://?size=1024`,
// `redis://localhost:6379`.
func NewAdapter(uri string) (Adapter, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid cache uri %q", uri)
	}

	switch parsed.Scheme {
	case "memory":
		size := DefaultMemorySize
		if s := parsed.Query().Get("size"); len(s) > 0 {
			if size, err = strconv.Atoi(s); err != nil || size < 1 {
				return nil, tterrors.InvalidParameter.With("size", s)
			}
		}
		return NewMemCacheAdapter(size)
	case "redis":
		return NewRedisCacheAdapter(&RedisRingOptions{
			Addrs: map[string]string{"server": parsed.Host},
		}), nil
	}

	return nil, tterrors.InvalidParameter.With("cache", uri)
}

// IsValidURI checks uri without connecting to the cache.
func IsValidURI(uri string) bool {
	parsed, err := url.Parse(uri)
	if err != nil {
		return false
	}

	switch parsed.Scheme {
	case "memory":
		if s := parsed.Query().Get("size"); len(s) > 0 {
			if size, err := strconv.Atoi(s); err != nil || size < 1 {
				return false
			}
		}
		return true
	case "redis":
		return len(parsed.Host) > 0
	}

	return false
}
