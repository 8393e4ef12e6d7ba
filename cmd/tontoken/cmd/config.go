package cmd

import (
	"fmt"
	"os"

	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	cmdcommon "github.com/ModernExodus/tontoken/cmd/tontoken/common"
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/config"
	"github.com/ModernExodus/tontoken/lib/keygen"
	"github.com/ModernExodus/tontoken/lib/network"
	"github.com/ModernExodus/tontoken/lib/network/api"
	"github.com/ModernExodus/tontoken/lib/network/httpcache"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

func errUnknownFormat(format string) error {
	return fmt.Errorf("%q not recognized", format)
}

// loadConfig loads the config file and overrides it by the flags given.
func loadConfig(c *cobra.Command) *config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--config", err)
	}

	if len(flagStorage) > 0 {
		cfg.Storage = flagStorage
	}
	if len(flagLogLevel) > 0 {
		cfg.Log.Level = flagLogLevel
	}
	if len(flagLogFormat) > 0 {
		cfg.Log.Format = flagLogFormat
	}
	if len(flagLogOutput) > 0 {
		cfg.Log.Output = flagLogOutput
	}

	if err = cfg.Validate(); err != nil {
		cmdcommon.PrintFlagsError(c, "--config", err)
	}

	if err = setLogging(cfg); err != nil {
		cmdcommon.PrintFlagsError(c, "--log-output", err)
	}

	return cfg
}

func logFormat(cfg *config.Config) logging.Format {
	if cfg.Log.Format == config.LogFormatTerminal && len(cfg.Log.Output) < 1 && isatty.IsTerminal(os.Stdout.Fd()) {
		return logging.TerminalFormat()
	}
	return common.JSONFormat()
}

func setLogging(cfg *config.Config) (err error) {
	logLevel := cfg.LogLevel()

	logHandler := logging.StreamHandler(os.Stdout, logFormat(cfg))
	if len(cfg.Log.Output) > 0 {
		if logHandler, err = logging.FileHandler(cfg.Log.Output, logFormat(cfg)); err != nil {
			return
		}
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	keygen.SetLogging(logLevel, logHandler)
	voting.SetLogging(logLevel, logHandler)
	token.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)
	httpcache.SetLogging(logLevel, logHandler)

	return
}

func openStorage(c *cobra.Command, cfg *config.Config) *storage.LevelDBBackend {
	storageConfig, err := storage.NewConfigFromString(cfg.Storage)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--storage", err)
	}

	st, err := storage.NewLevelDBBackend(storageConfig)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--storage", err)
	}

	return st
}

// openToken opens the ledger of the configured storage; the returned func
// closes the storage.
func openToken(c *cobra.Command) (*token.Token, func()) {
	return openTokenWith(c, loadConfig(c))
}

func openTokenWith(c *cobra.Command, cfg *config.Config) (*token.Token, func()) {
	st := openStorage(c, cfg)

	tk, err := token.Open(st)
	if err != nil {
		st.Close()
		cmdcommon.PrintError(c, err)
	}

	return tk, func() { st.Close() }
}
