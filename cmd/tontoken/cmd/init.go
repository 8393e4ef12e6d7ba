package cmd

import (
	"os"

	logging "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"

	cmdcommon "github.com/ModernExodus/tontoken/cmd/tontoken/common"
	"github.com/ModernExodus/tontoken/lib/common"
)

var (
	flagConfig    string = common.GetENVValue("TONTOKEN_CONFIG", "")
	flagStorage   string
	flagLogLevel  string
	flagLogFormat string
	flagLogOutput string
	flagFormat    string = "prettyjson"

	log logging.Logger = logging.New("module", "main")
)

var rootCmd = &cobra.Command{
	Use:   "tontoken",
	Short: "tontoken governance ledger",
	Run: func(c *cobra.Command, args []string) {
		if len(args) < 1 {
			c.Usage()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", flagConfig, "yaml config file")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", flagStorage, "storage uri, eg. 'file:///data/tontoken', 'memory://'")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", flagLogFormat, "log format, {terminal, json}")
	rootCmd.PersistentFlags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cmdcommon.PrintFlagsError(rootCmd, "", err)
	}
}

func SetArgs(s []string) {
	rootCmd.SetArgs(s)
}

func addFormatFlag(c *cobra.Command) {
	c.Flags().StringVar(&flagFormat, "format", flagFormat, "output format, {json, prettyjson, yaml}")
}

func printOutput(c *cobra.Command, v interface{}) {
	encode, ok := cmdcommon.DefaultEncodes[flagFormat]
	if !ok {
		cmdcommon.PrintFlagsError(c, "--format", errUnknownFormat(flagFormat))
	}

	if err := encode(v, os.Stdout); err != nil {
		cmdcommon.PrintError(c, err)
	}
}
