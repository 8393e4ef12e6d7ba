package config

import (
	"io/ioutil"
	"net"
	"strconv"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/ulule/limiter"
	"gopkg.in/yaml.v2"

	"github.com/ModernExodus/tontoken/lib/common"
	tterrors "github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/network/httpcache"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

const (
	DefaultStorage     = "file://./.tontoken/db"
	DefaultAPIAddress  = "localhost:12345"
	DefaultCacheExpire = 5 * time.Second

	LogFormatTerminal = "terminal"
	LogFormatJSON     = "json"
)

type Config struct {
	Storage string        `yaml:"storage"`
	Genesis GenesisConfig `yaml:"genesis"`
	Params  voting.Params `yaml:"params"`
	Log     LogConfig     `yaml:"log"`
	API     APIConfig     `yaml:"api"`
}

type GenesisConfig struct {
	Owner       string             `yaml:"owner"`
	Height      uint64             `yaml:"height"`
	Distribute  bool               `yaml:"distribute"`
	Allocations []token.Allocation `yaml:"allocations"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Output is the log file; empty for stdout.
	Output string `yaml:"output"`
}

type APIConfig struct {
	Address string `yaml:"address"`
	// RateLimit is formatted like `100-M`; empty disables it.
	RateLimit string `yaml:"rate_limit"`
	// Cache is the uri of httpcache adapter, `memory://` or `redis://`;
	// empty disables the response cache.
	Cache       string        `yaml:"cache"`
	CacheExpire time.Duration `yaml:"cache_expire"`
	CORS        []string      `yaml:"cors"`
}

func Default() *Config {
	return &Config{
		Storage: DefaultStorage,
		Params:  voting.DefaultParams(),
		Log: LogConfig{
			Level:  common.DefaultLogLevel.String(),
			Format: LogFormatTerminal,
		},
		API: APIConfig{
			Address:     DefaultAPIAddress,
			CacheExpire: DefaultCacheExpire,
		},
	}
}

// Load reads the yaml file at path over the defaults and applies the
// `TONTOKEN_*` environment variables. Empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()

	if len(path) > 0 {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file, %q", path)
		}
		if err := Parse(b, c); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file, %q", path)
		}
	}

	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Parse decodes yaml b into c; unknown fields are rejected.
func Parse(b []byte, c *Config) error {
	return yaml.UnmarshalStrict(b, c)
}

// ApplyEnv overrides c by the environment variables.
func (c *Config) ApplyEnv() (err error) {
	c.Storage = common.GetENVValue("TONTOKEN_STORAGE", c.Storage)
	c.Genesis.Owner = common.GetENVValue("TONTOKEN_GENESIS_OWNER", c.Genesis.Owner)

	c.Log.Level = common.GetENVValue("TONTOKEN_LOG_LEVEL", c.Log.Level)
	c.Log.Format = common.GetENVValue("TONTOKEN_LOG_FORMAT", c.Log.Format)
	c.Log.Output = common.GetENVValue("TONTOKEN_LOG_OUTPUT", c.Log.Output)

	c.API.Address = common.GetENVValue("TONTOKEN_API_ADDRESS", c.API.Address)
	c.API.RateLimit = common.GetENVValue("TONTOKEN_API_RATE_LIMIT", c.API.RateLimit)
	c.API.Cache = common.GetENVValue("TONTOKEN_API_CACHE", c.API.Cache)
	if s := common.GetENVValue("TONTOKEN_API_CORS", ""); len(s) > 0 {
		c.API.CORS = strings.Split(s, ",")
	}

	if s := common.GetENVValue("TONTOKEN_API_CACHE_EXPIRE", ""); len(s) > 0 {
		if c.API.CacheExpire, err = time.ParseDuration(s); err != nil {
			return errors.Wrap(err, "invalid TONTOKEN_API_CACHE_EXPIRE")
		}
	}

	if s := common.GetENVValue("TONTOKEN_LOCK_ENFORCED", ""); len(s) > 0 {
		if c.Params.LockEnforced, err = strconv.ParseBool(s); err != nil {
			return errors.Wrap(err, "invalid TONTOKEN_LOCK_ENFORCED")
		}
	}

	return nil
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}

	if _, err := storage.NewConfigFromString(c.Storage); err != nil {
		return tterrors.InvalidParameter.With("storage", c.Storage)
	}

	if len(c.Genesis.Owner) > 0 {
		if err := common.CheckAccountAddress(c.Genesis.Owner); err != nil {
			return err
		}
	}

	if _, err := logging.LvlFromString(c.Log.Level); err != nil {
		return tterrors.InvalidParameter.With("log.level", c.Log.Level)
	}
	switch c.Log.Format {
	case LogFormatTerminal, LogFormatJSON:
	default:
		return tterrors.InvalidParameter.With("log.format", c.Log.Format)
	}

	if _, _, err := net.SplitHostPort(c.API.Address); err != nil {
		return tterrors.InvalidParameter.With("api.address", c.API.Address)
	}
	if len(c.API.RateLimit) > 0 {
		if _, err := limiter.NewRateFromFormatted(c.API.RateLimit); err != nil {
			return tterrors.InvalidParameter.With("api.rate_limit", c.API.RateLimit)
		}
	}
	if len(c.API.Cache) > 0 {
		if !httpcache.IsValidURI(c.API.Cache) {
			return tterrors.InvalidParameter.With("api.cache", c.API.Cache)
		}
		if c.API.CacheExpire <= 0 {
			return tterrors.InvalidParameter.With("api.cache_expire", c.API.CacheExpire.String())
		}
	}

	return nil
}

// GenesisConfig is the ledger genesis of the configured owner and parameters.
func (c *Config) GenesisConfig() token.GenesisConfig {
	return token.GenesisConfig{
		Owner:       c.Genesis.Owner,
		Height:      c.Genesis.Height,
		Params:      c.Params,
		Distribute:  c.Genesis.Distribute,
		Allocations: c.Genesis.Allocations,
	}
}

// LogLevel is the parsed level of Log.Level.
func (c *Config) LogLevel() logging.Lvl {
	lvl, err := logging.LvlFromString(c.Log.Level)
	if err != nil {
		return common.DefaultLogLevel
	}
	return lvl
}
