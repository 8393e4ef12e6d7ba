package storage

import (
	"net/url"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/ModernExodus/tontoken/lib/errors"
)

const (
	SchemeFile   = "file"
	SchemeMemory = "memory"
)

// Config describes where the leveldb state lives, `file:///path/to/db` or
// `memory://`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse storage uri, %q", s)
	}

	config := &Config{Scheme: strings.ToLower(parsed.Scheme)}
	switch config.Scheme {
	case SchemeMemory:
	case SchemeFile:
		path := parsed.Path
		if len(parsed.Host) > 0 {
			// `file://./db` puts the relative part into the host
			path = parsed.Host + path
		}
		if len(path) < 1 {
			return nil, errors.UnknownStorageScheme.With("uri", s)
		}
		if path, err = filepath.Abs(path); err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to resolve storage path, %q", path)
		}
		config.Path = path
	default:
		return nil, errors.UnknownStorageScheme.With("uri", s)
	}

	return config, nil
}

func (c *Config) String() string {
	if c.Scheme == SchemeMemory {
		return SchemeMemory + "://"
	}
	return c.Scheme + "://" + c.Path
}
