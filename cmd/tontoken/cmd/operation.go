package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	cmdcommon "github.com/ModernExodus/tontoken/cmd/tontoken/common"
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

var (
	flagSecretSeed string = common.GetENVValue("TONTOKEN_SECRET_SEED", "")
	flagHeight     uint64
	flagRemote     bool

	flagCandidateName        string
	flagCandidateDescription string
	flagCandidateWebsite     string
)

// operationFunc makes the operation of the command arguments.
type operationFunc func(args []string) (token.Operation, error)

type operationResult struct {
	Operation string         `json:"operation"`
	Sender    string         `json:"sender"`
	Height    uint64         `json:"height"`
	Hash      string         `json:"hash,omitempty"`
	Events    []voting.Event `json:"events"`
}

// newOperationCmd makes the command of the ledger operation; the sender is
// the account of `--secret-seed`. With `--remote`, the signed operation is
// submitted to the `serve` of `--endpoint`, which holds the ledger.
func newOperationCmd(use, short string, nargs int, makeOperation operationFunc) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		Run: func(c *cobra.Command, args []string) {
			kp, err := parseSecretSeed(flagSecretSeed)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--secret-seed", err)
			}

			op, err := makeOperation(args)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			op.Sender = kp.Address()

			var result operationResult
			if flagRemote {
				result, err = submitOperation(c, kp, op)
			} else {
				result, err = applyOperation(c, op)
			}
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			printOutput(c, result)
		},
	}

	c.Flags().StringVar(&flagSecretSeed, "secret-seed", flagSecretSeed, "secret seed of sender")
	c.Flags().Uint64Var(&flagHeight, "height", flagHeight, "current block height; the last height of ledger by default")
	c.Flags().BoolVar(&flagRemote, "remote", flagRemote, "submit to the api server of --endpoint instead of the local storage")
	c.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of api server")
	addFormatFlag(c)

	return c
}

// applyOperation executes op on the local storage.
func applyOperation(c *cobra.Command, op token.Operation) (result operationResult, err error) {
	tk, closeFunc := openToken(c)
	defer closeFunc()

	op.Height = flagHeight
	if !c.Flags().Changed("height") {
		if op.Height, err = tk.LastHeight(); err != nil {
			return
		}
	}

	events, err := tk.Apply(op, "")
	if err != nil {
		return
	}

	return operationResult{
		Operation: string(op.Type),
		Sender:    op.Sender,
		Height:    op.Height,
		Events:    events,
	}, nil
}

// submitOperation signs op and submits it to the api server.
func submitOperation(c *cobra.Command, kp *keypair.Full, op token.Operation) (result operationResult, err error) {
	cl := newRemoteClient(c)
	defer cl.Close()

	ledger, err := cl.LoadLedger(context.Background())
	if err != nil {
		return
	}

	op.Height = flagHeight
	if !c.Flags().Changed("height") {
		op.Height = ledger.LastHeight
	}
	op.Nonce = uuid.New().String()

	signed, err := token.Sign(op, kp, token.NetworkIDOf(ledger.Owner))
	if err != nil {
		return
	}

	applied, err := cl.SubmitOperation(context.Background(), signed)
	if err != nil {
		return
	}

	return operationResult{
		Operation: string(op.Type),
		Sender:    op.Sender,
		Height:    op.Height,
		Hash:      applied.Hash,
		Events:    applied.Events,
	}, nil
}

func parseSecretSeed(seed string) (*keypair.Full, error) {
	if len(seed) < 1 {
		return nil, fmt.Errorf("must be given")
	}

	kp, err := keypair.Parse(seed)
	if err != nil {
		return nil, err
	}
	full, ok := kp.(*keypair.Full)
	if !ok {
		return nil, fmt.Errorf("provided key is an address, not a secret seed")
	}

	return full, nil
}

func parseAmount(s string) (common.Amount, error) {
	amount, err := cmdcommon.ParseAmountFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount, %q: %v", s, err)
	}
	return amount, nil
}

func transfer(args []string) (token.Operation, error) {
	amount, err := parseAmount(args[1])
	if err != nil {
		return token.Operation{}, err
	}
	return token.Operation{Type: token.OperationTransfer, Target: args[0], Amount: amount}, nil
}

func approve(args []string) (token.Operation, error) {
	amount, err := parseAmount(args[1])
	if err != nil {
		return token.Operation{}, err
	}
	return token.Operation{Type: token.OperationApprove, Target: args[0], Amount: amount}, nil
}

func transferFrom(args []string) (token.Operation, error) {
	amount, err := parseAmount(args[2])
	if err != nil {
		return token.Operation{}, err
	}
	return token.Operation{Type: token.OperationTransferFrom, Source: args[0], Target: args[1], Amount: amount}, nil
}

func donate(args []string) (token.Operation, error) {
	amount, err := parseAmount(args[0])
	if err != nil {
		return token.Operation{}, err
	}
	return token.Operation{Type: token.OperationDonate, Amount: amount}, nil
}

func propose(args []string) (token.Operation, error) {
	return token.Operation{
		Type:        token.OperationPropose,
		Target:      args[0],
		Name:        flagCandidateName,
		Description: flagCandidateDescription,
		Website:     flagCandidateWebsite,
	}, nil
}

func vote(args []string) (token.Operation, error) {
	return token.Operation{Type: token.OperationVote, Target: args[0]}, nil
}

func delegate(args []string) (token.Operation, error) {
	return token.Operation{Type: token.OperationDelegate, Target: args[0]}, nil
}

func discharge(args []string) (token.Operation, error) {
	return token.Operation{Type: token.OperationDischarge}, nil
}

func delegatedVote(args []string) (token.Operation, error) {
	return token.Operation{Type: token.OperationDelegatedVote, Source: args[0], Target: args[1]}, nil
}

func init() {
	proposeCmd := newOperationCmd("propose <recipient>", "propose candidate of the pool", 1, propose)
	proposeCmd.Flags().StringVar(&flagCandidateName, "name", flagCandidateName, "name of candidate")
	proposeCmd.Flags().StringVar(&flagCandidateDescription, "description", flagCandidateDescription, "description of candidate")
	proposeCmd.Flags().StringVar(&flagCandidateWebsite, "website", flagCandidateWebsite, "website of candidate")

	rootCmd.AddCommand(
		newOperationCmd("transfer <recipient> <amount>", "transfer <amount> borks to <recipient>", 2, transfer),
		newOperationCmd("approve <spender> <amount>", "allow <spender> to spend <amount> borks of sender", 2, approve),
		newOperationCmd("transfer-from <owner> <recipient> <amount>", "transfer <amount> borks of <owner> by allowance", 3, transferFrom),
		newOperationCmd("donate <amount>", "donate <amount> borks to the pool", 1, donate),
		proposeCmd,
		newOperationCmd("vote <candidate>", "vote for <candidate>", 1, vote),
		newOperationCmd("delegate <delegate>", "delegate the vote of sender to <delegate>", 1, delegate),
		newOperationCmd("discharge", "discharge the delegate of sender", 0, discharge),
		newOperationCmd("delegated-vote <delegator> <candidate>", "vote for <candidate> on behalf of <delegator>", 2, delegatedVote),
	)
}
