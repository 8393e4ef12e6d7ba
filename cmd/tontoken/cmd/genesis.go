package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "github.com/ModernExodus/tontoken/cmd/tontoken/common"
	"github.com/ModernExodus/tontoken/lib/config"
	"github.com/ModernExodus/tontoken/lib/token"
)

var (
	flagGenesisHeight     uint64
	flagGenesisDistribute bool
	flagAllocations       cmdcommon.ListFlags
)

func init() {
	genesisCmd := &cobra.Command{
		Use:   "genesis [<owner address>]",
		Short: "initialize new ledger",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cfg := loadConfig(c)

			flagName, err := makeGenesisConfig(c, cfg, args)
			if err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			st := openStorage(c, cfg)
			defer st.Close()

			tk, err := token.Genesis(st, cfg.GenesisConfig())
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			log.Info("ledger created", "owner", tk.Owner(), "storage", cfg.Storage)
			printOutput(c, ledgerOutput(tk))
		},
	}

	genesisCmd.Flags().Uint64Var(&flagGenesisHeight, "height", flagGenesisHeight, "height of genesis")
	genesisCmd.Flags().BoolVar(&flagGenesisDistribute, "distribute", flagGenesisDistribute, "distribute the initial supply over the allocations")
	genesisCmd.Flags().Var(&flagAllocations, "allocation", "initial allocation, '<address>,<amount in borks>'; can be given multiple times")
	addFormatFlag(genesisCmd)

	rootCmd.AddCommand(genesisCmd)
}

// makeGenesisConfig applies the arguments and the flags to the genesis of
// cfg. If it fails, the name of the wrong flag is returned.
func makeGenesisConfig(c *cobra.Command, cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		cfg.Genesis.Owner = args[0]
	}
	if len(cfg.Genesis.Owner) < 1 {
		return "<owner address>", fmt.Errorf("owner must be given")
	}
	if c.Flags().Changed("height") {
		cfg.Genesis.Height = flagGenesisHeight
	}
	if c.Flags().Changed("distribute") {
		cfg.Genesis.Distribute = flagGenesisDistribute
	}

	for _, s := range flagAllocations {
		allocation, err := parseAllocation(s)
		if err != nil {
			return "--allocation", err
		}
		cfg.Genesis.Allocations = append(cfg.Genesis.Allocations, allocation)
	}

	if err := cfg.Validate(); err != nil {
		return "--config", err
	}

	return "", nil
}

func parseAllocation(s string) (allocation token.Allocation, err error) {
	parsed := strings.SplitN(s, ",", 2)
	if len(parsed) != 2 {
		err = fmt.Errorf("allocation expects '<address>,<amount>'")
		return
	}

	allocation.Address = strings.TrimSpace(parsed[0])
	allocation.Amount, err = cmdcommon.ParseAmountFromString(strings.TrimSpace(parsed[1]))
	return
}
