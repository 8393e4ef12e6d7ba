package client

import (
	"fmt"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Error is the problem the server responded with.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Problem.Status, e.Problem.Type, e.Problem.Title)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Ledger struct {
	Links struct {
		Self     Link `json:"self"`
		Accounts Link `json:"accounts"`
		Voting   Link `json:"voting"`
		Pool     Link `json:"pool"`
	} `json:"_links"`

	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Decimals   uint8  `json:"decimals"`
	Owner      string `json:"owner"`
	LastHeight uint64 `json:"last_height"`
	Version    string `json:"version"`
}

type Account struct {
	Links struct {
		Self     Link `json:"self"`
		Delegate Link `json:"delegate"`
	} `json:"_links"`

	Address  string        `json:"address"`
	Balance  common.Amount `json:"balance"`
	Locked   common.Amount `json:"locked"`
	Delegate string        `json:"delegate"`
}

type AccountsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Account `json:"records"`
	} `json:"_embedded"`
}

type Allowance struct {
	Owner   string        `json:"owner"`
	Spender string        `json:"spender"`
	Amount  common.Amount `json:"amount"`
}

type Voting struct {
	Status           voting.Status `json:"status"`
	CycleID          uint64        `json:"cycle_id"`
	StartBlock       uint64        `json:"start_block"`
	LastEndBlock     uint64        `json:"last_end_block"`
	SessionsHeld     uint64        `json:"sessions_held"`
	MostRecentWinner string        `json:"most_recent_winner"`
	Candidates       int           `json:"candidates"`
	TotalVotes       uint64        `json:"total_votes"`
	Leader           string        `json:"leader"`
	LeaderVotes      uint64        `json:"leader_votes"`
	Params           voting.Params `json:"params"`
}

type Candidate struct {
	Recipient   string `json:"recipient"`
	Proposer    string `json:"proposer"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Votes       uint64 `json:"votes"`
}

type CandidatesPage struct {
	Embedded struct {
		Records []Candidate `json:"records"`
	} `json:"_embedded"`
}

type Pool struct {
	Address      string        `json:"address"`
	Balance      common.Amount `json:"balance"`
	TotalMatched common.Amount `json:"total_matched"`
	TotalDonated common.Amount `json:"total_donated"`
	TotalSupply  common.Amount `json:"total_supply"`
}

// Summary is the overview of a ledger.
type Summary struct {
	Ledger Ledger `json:"ledger"`
	Voting Voting `json:"voting"`
	Pool   Pool   `json:"pool"`
}

// OperationResult is the applied operation with the events it emitted.
type OperationResult struct {
	Hash      string          `json:"hash"`
	Operation token.Operation `json:"operation"`
	Events    []voting.Event  `json:"events"`
}
