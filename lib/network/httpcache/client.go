package httpcache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Client caches the successful responses of the wrapped handler until they
// expire. Only GET and HEAD requests are cached.
type Client struct {
	adapter  Adapter
	ttl      time.Duration
	skippers []func(*http.Request) bool
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

// WithExpire sets the lifetime of the cached responses; zero never expires.
func WithExpire(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		if ttl < 0 {
			return errors.New("cache expire is negative")
		}
		c.ttl = ttl
		return nil
	}
}

// WithSkipper passes the requests matched by skip to the handler untouched.
func WithSkipper(skip func(*http.Request) bool) ClientOption {
	return func(c *Client) error {
		c.skippers = append(c.skippers, skip)
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.skip(r) {
			next.ServeHTTP(w, r)
			return
		}
		c.serveCached(next, w, r)
	})
}

func (c *Client) skip(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return true
	}
	for _, skip := range c.skippers {
		if skip(r) {
			return true
		}
	}
	return false
}

func (c *Client) serveCached(next http.Handler, w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r.URL)
	if resp, ok := c.adapter.Get(key); ok {
		if resp.Expiration.IsZero() || resp.Expiration.After(time.Now()) {
			log.Debug("cache hit", "key", key)
			writeResponse(w, resp.StatusCode, resp.Header, resp.Value)
			return
		}
		c.adapter.Remove(key)
	}

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	result := rec.Result()
	if result.StatusCode >= 200 && result.StatusCode < 300 {
		exp := expiration(c.ttl)
		c.adapter.Set(key, &Response{
			Value:      rec.Body.Bytes(),
			StatusCode: result.StatusCode,
			Header:     result.Header,
			Expiration: exp,
		}, exp)
		log.Debug("cache stored", "key", key, "code", result.StatusCode, "expiration", exp)
	}

	writeResponse(w, result.StatusCode, result.Header, rec.Body.Bytes())
}

func writeResponse(w http.ResponseWriter, code int, header http.Header, value []byte) {
	for k, v := range header {
		w.Header().Set(k, strings.Join(v, ","))
	}
	w.WriteHeader(code)
	w.Write(value)
}

func expiration(ttl time.Duration) time.Time {
	if ttl == 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

// cacheKey orders the query of u, so the same query in another order hits
// the same entry.
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, p := range params {
		sort.Strings(p)
	}
	k := *u
	k.RawQuery = params.Encode()
	return k.String()
}
