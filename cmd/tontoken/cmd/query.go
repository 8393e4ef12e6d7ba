package cmd

import (
	"github.com/spf13/cobra"

	cmdcommon "github.com/ModernExodus/tontoken/cmd/tontoken/common"
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

var (
	flagCursor  string
	flagReverse bool
	flagLimit   uint64 = 100
)

type queryFunc func(tk *token.Token, args []string) (interface{}, error)

func newQueryCmd(use, short string, nargs int, query queryFunc) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		Run: func(c *cobra.Command, args []string) {
			tk, closeFunc := openToken(c)
			defer closeFunc()

			v, err := query(tk, args)
			if err != nil {
				closeFunc()
				cmdcommon.PrintError(c, err)
			}

			printOutput(c, v)
		},
	}
	addFormatFlag(c)

	return c
}

type ledgerResult struct {
	Name       string        `json:"name"`
	Symbol     string        `json:"symbol"`
	Decimals   uint8         `json:"decimals"`
	Owner      string        `json:"owner"`
	LastHeight uint64        `json:"last_height"`
	Params     voting.Params `json:"params"`
}

func ledgerOutput(tk *token.Token) ledgerResult {
	height, _ := tk.LastHeight()
	return ledgerResult{
		Name:       token.Name,
		Symbol:     token.Symbol,
		Decimals:   token.Decimals,
		Owner:      tk.Owner(),
		LastHeight: height,
		Params:     tk.Params(),
	}
}

func queryLedger(tk *token.Token, args []string) (interface{}, error) {
	return ledgerOutput(tk), nil
}

type accountResult struct {
	Address     string        `json:"address"`
	Balance     common.Amount `json:"balance"`
	Locked      common.Amount `json:"locked"`
	Delegate    string        `json:"delegate,omitempty"`
	Voted       bool          `json:"voted"`
	Proposed    bool          `json:"proposed"`
	IsCandidate bool          `json:"is_candidate"`
}

func queryAccount(tk *token.Token, args []string) (interface{}, error) {
	address := args[0]
	if err := common.CheckAddress(address); err != nil {
		return nil, err
	}

	var r accountResult
	var err error

	r.Address = address
	if r.Balance, err = tk.BalanceOf(address); err != nil {
		return nil, err
	}
	if r.Locked, err = tk.GetLockedBorks(address); err != nil {
		return nil, err
	}
	if r.Delegate, err = tk.GetDelegate(address); err != nil {
		return nil, err
	}
	if r.Voted, err = tk.HasAlreadyVoted(address); err != nil {
		return nil, err
	}
	if r.Proposed, err = tk.HasAlreadyAddedCandidate(address); err != nil {
		return nil, err
	}
	if r.IsCandidate, err = tk.GetIsCandidate(address); err != nil {
		return nil, err
	}

	return r, nil
}

func queryAccounts(tk *token.Token, args []string) (interface{}, error) {
	return tk.AccountsPage(flagCursor, flagReverse, flagLimit), nil
}

type allowanceResult struct {
	Owner   string        `json:"owner"`
	Spender string        `json:"spender"`
	Amount  common.Amount `json:"amount"`
}

func queryAllowance(tk *token.Token, args []string) (interface{}, error) {
	amount, err := tk.Allowance(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return allowanceResult{Owner: args[0], Spender: args[1], Amount: amount}, nil
}

type votingResult struct {
	Status           voting.Status `json:"status"`
	Active           bool          `json:"active"`
	Tied             bool          `json:"tied"`
	CycleID          uint64        `json:"cycle_id"`
	SessionsHeld     uint64        `json:"sessions_held"`
	LastVotingBlock  uint64        `json:"last_voting_block"`
	MostRecentWinner string        `json:"most_recent_winner"`
	Leader           string        `json:"leader"`
	LeaderVotes      uint64        `json:"leader_votes"`
	Candidates       []string      `json:"candidates"`
	VotingMinimum    common.Amount `json:"voting_minimum"`
	ProposalMinimum  common.Amount `json:"proposal_minimum"`
	ActiveLength     uint64        `json:"active_voting_length"`
	InactiveLength   uint64        `json:"inactive_voting_length"`
}

func queryVoting(tk *token.Token, args []string) (interface{}, error) {
	var r votingResult
	var err error

	if r.Status, err = tk.GetVotingStatus(); err != nil {
		return nil, err
	}
	if r.Active, err = tk.IsVotingActive(); err != nil {
		return nil, err
	}
	if r.Tied, err = tk.IsCurrentlyTied(); err != nil {
		return nil, err
	}
	if r.CycleID, err = tk.GetCurrentVotingCycleId(); err != nil {
		return nil, err
	}
	if r.SessionsHeld, err = tk.TotalVoteSessionsHeld(); err != nil {
		return nil, err
	}
	if r.LastVotingBlock, err = tk.GetLastVotingBlock(); err != nil {
		return nil, err
	}
	if r.MostRecentWinner, err = tk.MostRecentWinner(); err != nil {
		return nil, err
	}
	if r.Leader, err = tk.GetCurrentLeader(); err != nil {
		return nil, err
	}
	if r.LeaderVotes, err = tk.GetCurrentLeaderVoteCount(); err != nil {
		return nil, err
	}
	if r.Candidates, err = tk.GetPoolCandidateAddresses(); err != nil {
		return nil, err
	}

	r.VotingMinimum = tk.GetVotingMinimum()
	r.ProposalMinimum = tk.GetProposalMinimum()
	r.ActiveLength = tk.GetActiveVotingLength()
	r.InactiveLength = tk.GetInactiveVotingLength()

	return r, nil
}

type candidateResult struct {
	voting.Candidate
	Votes uint64 `json:"votes"`
}

func queryCandidates(tk *token.Token, args []string) (interface{}, error) {
	candidates, err := tk.GetPoolCandidates()
	if err != nil {
		return nil, err
	}

	rs := []candidateResult{}
	for _, c := range candidates {
		votes, err := tk.GetNumberOfVotes(c.Recipient)
		if err != nil {
			return nil, err
		}
		rs = append(rs, candidateResult{Candidate: c, Votes: votes})
	}

	return rs, nil
}

type poolResult struct {
	Address      string        `json:"address"`
	Balance      common.Amount `json:"balance"`
	TotalMatched common.Amount `json:"total_matched"`
	TotalDonated common.Amount `json:"total_donated"`
	TotalSupply  common.Amount `json:"total_supply"`
}

func queryPool(tk *token.Token, args []string) (interface{}, error) {
	r := poolResult{Address: common.PoolAddress}
	var err error

	if r.Balance, err = tk.Pool(); err != nil {
		return nil, err
	}
	if r.TotalMatched, err = tk.TotalMatched(); err != nil {
		return nil, err
	}
	if r.TotalDonated, err = tk.TotalDonated(); err != nil {
		return nil, err
	}
	if r.TotalSupply, err = tk.TotalSupply(); err != nil {
		return nil, err
	}

	return r, nil
}

func init() {
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "query the ledger",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	accountsCmd := newQueryCmd("accounts", "list accounts", 0, queryAccounts)
	accountsCmd.Flags().StringVar(&flagCursor, "cursor", flagCursor, "list after the address")
	accountsCmd.Flags().BoolVar(&flagReverse, "reverse", flagReverse, "list in reverse order")
	accountsCmd.Flags().Uint64Var(&flagLimit, "limit", flagLimit, "maximum number of accounts, 0 for all")

	queryCmd.AddCommand(
		newQueryCmd("ledger", "metadata of ledger", 0, queryLedger),
		newQueryCmd("account <address>", "balance, locked borks and voting state of account", 1, queryAccount),
		accountsCmd,
		newQueryCmd("allowance <owner> <spender>", "allowance of <spender> over <owner>", 2, queryAllowance),
		newQueryCmd("voting", "state of the current voting cycle", 0, queryVoting),
		newQueryCmd("candidates", "candidates of the current voting cycle", 0, queryCandidates),
		newQueryCmd("pool", "pool balance and counters", 0, queryPool),
	)

	rootCmd.AddCommand(queryCmd)
}
