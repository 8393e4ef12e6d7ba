package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	cmdcommon "github.com/ModernExodus/tontoken/cmd/tontoken/common"
	"github.com/ModernExodus/tontoken/lib/config"
	"github.com/ModernExodus/tontoken/lib/metrics"
	"github.com/ModernExodus/tontoken/lib/network"
	"github.com/ModernExodus/tontoken/lib/network/httpcache"
	"github.com/ModernExodus/tontoken/lib/token"
)

var (
	flagAddress    string
	flagRateLimit  string
	flagCache      string
	flagCORS       cmdcommon.ListFlags
	flagPrintStack bool
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the api of ledger, applying the signed operations",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			cfg := loadConfig(c)
			serverConfig, err := makeServerConfig(c, cfg)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--config", err)
			}

			tk, closeFunc := openTokenWith(c, cfg)
			defer closeFunc()

			if err := runServer(tk, serverConfig); err != nil {
				closeFunc()
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		},
	}

	serveCmd.Flags().StringVar(&flagAddress, "address", flagAddress, "address to listen on, eg. 'localhost:12345'")
	serveCmd.Flags().StringVar(&flagRateLimit, "rate-limit", flagRateLimit, "rate limit of each client, eg. '100-M'")
	serveCmd.Flags().StringVar(&flagCache, "cache", flagCache, "response cache uri, {memory://?size=<n>, redis://<host>:<port>}")
	serveCmd.Flags().Var(&flagCORS, "cors", "allowed origin of CORS; can be given multiple times")
	serveCmd.Flags().BoolVar(&flagPrintStack, "print-stack", flagPrintStack, "print stack of recovered panic")

	rootCmd.AddCommand(serveCmd)
}

func makeServerConfig(c *cobra.Command, cfg *config.Config) (serverConfig network.ServerConfig, err error) {
	if len(flagAddress) > 0 {
		cfg.API.Address = flagAddress
	}
	if len(flagRateLimit) > 0 {
		cfg.API.RateLimit = flagRateLimit
	}
	if len(flagCache) > 0 {
		cfg.API.Cache = flagCache
	}
	if len(flagCORS) > 0 {
		cfg.API.CORS = flagCORS
	}
	if err = cfg.Validate(); err != nil {
		return
	}

	serverConfig = network.ServerConfig{
		Address:        cfg.API.Address,
		RateLimit:      cfg.API.RateLimit,
		CacheExpire:    cfg.API.CacheExpire,
		AllowedOrigins: cfg.API.CORS,
		AccessLog:      os.Stdout,
		PrintStack:     flagPrintStack,
	}
	if len(cfg.API.Cache) > 0 {
		if serverConfig.Cache, err = httpcache.NewAdapter(cfg.API.Cache); err != nil {
			return
		}
	}

	return
}

func runServer(tk *token.Token, serverConfig network.ServerConfig) error {
	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	server, err := network.NewServer(tk, serverConfig)
	if err != nil {
		return err
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			return server.Start()
		}, func(error) {
			server.Stop()
		})
	}
	{
		ctx, cancel := cmdcommon.SignalContext(context.Background())
		g.Add(func() error {
			<-ctx.Done()
			log.Info("stopping")
			return nil
		}, func(error) {
			cancel()
		})
	}

	return g.Run()
}
