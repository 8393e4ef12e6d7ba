package cmd

import (
	"context"

	"github.com/spf13/cobra"

	cmdcommon "github.com/ModernExodus/tontoken/cmd/tontoken/common"
	"github.com/ModernExodus/tontoken/lib/client"
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/voting"
)

var (
	flagEndpoint  string = common.GetENVValue("TONTOKEN_ENDPOINT", "http://localhost:12345")
	flagEventType string
	flagStream    bool
)

func newRemoteClient(c *cobra.Command) *client.Client {
	cl, err := client.NewClient(flagEndpoint, client.DefaultRetrySetting)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--endpoint", err)
	}
	return cl
}

func init() {
	remoteCmd := &cobra.Command{
		Use:   "remote",
		Short: "Read the ledger thru the api of `serve`",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}
	remoteCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of api server")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "ledger, voting cycle and pool",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			cl := newRemoteClient(c)
			defer cl.Close()

			summary, err := cl.LoadSummary(context.Background())
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			printOutput(c, summary)
		},
	}
	addFormatFlag(summaryCmd)

	accountCmd := &cobra.Command{
		Use:   "account <address>",
		Short: "account; with --stream, every change of account",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cl := newRemoteClient(c)
			defer cl.Close()

			if !flagStream {
				account, err := cl.LoadAccount(context.Background(), args[0])
				if err != nil {
					cmdcommon.PrintError(c, err)
				}
				printOutput(c, account)
				return
			}

			ctx, cancel := cmdcommon.SignalContext(context.Background())
			defer cancel()

			err := cl.StreamAccount(ctx, args[0], func(account client.Account) {
				printOutput(c, account)
			})
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}
	accountCmd.Flags().BoolVar(&flagStream, "stream", flagStream, "stream the changes")
	addFormatFlag(accountCmd)

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "stream voting events",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			cl := newRemoteClient(c)
			defer cl.Close()

			ctx, cancel := cmdcommon.SignalContext(context.Background())
			defer cancel()

			err := cl.StreamVotingEvents(ctx, voting.EventType(flagEventType), func(e voting.Event) {
				printOutput(c, e)
			})
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}
	eventsCmd.Flags().StringVar(&flagEventType, "type", flagEventType, "type of event, {VotingPostponed, VoteUncontested, VotingExtended, VotingInactive}")
	addFormatFlag(eventsCmd)

	remoteCmd.AddCommand(summaryCmd, accountCmd, eventsCmd)
	rootCmd.AddCommand(remoteCmd)
}
