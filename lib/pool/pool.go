// Package pool computes the contribution minted into the pool for every
// transfer and keeps the lifetime counters of the pool.
package pool

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/storage"
)

const (
	MatchDivisor common.Amount = 64
	MinimumMatch common.Amount = 1
)

const AccountingKey = "tt-pool"

// Match returns the contribution minted for a transfer of `a` borks.
func Match(a common.Amount) common.Amount {
	if a < MatchDivisor {
		return MinimumMatch
	}
	return a / MatchDivisor
}

type Accounting struct {
	TotalMatched common.Amount `json:"total_matched"`
	TotalDonated common.Amount `json:"total_donated"`
}

// OnTransfer records the match of a transfer and returns the amount to be
// credited to the pool account.
func (a *Accounting) OnTransfer(amount common.Amount) (common.Amount, error) {
	match := Match(amount)

	total, err := a.TotalMatched.Add(match)
	if err != nil {
		return 0, err
	}
	a.TotalMatched = total

	return match, nil
}

// Donate records a donation and returns the amount to be credited to the pool
// account, the donation itself plus its match.
func (a *Accounting) Donate(amount common.Amount) (common.Amount, error) {
	if amount < 1 {
		return 0, errors.InvalidAmount.With("amount", amount)
	}

	match := Match(amount)
	minted, err := amount.Add(match)
	if err != nil {
		return 0, err
	}

	matched, err := a.TotalMatched.Add(match)
	if err != nil {
		return 0, err
	}
	donated, err := a.TotalDonated.Add(amount)
	if err != nil {
		return 0, err
	}

	a.TotalMatched = matched
	a.TotalDonated = donated

	return minted, nil
}

func (a *Accounting) Save(st *storage.LevelDBBackend) error {
	return st.Save(AccountingKey, a)
}

func GetAccounting(st *storage.LevelDBBackend) (*Accounting, error) {
	a := &Accounting{}
	if err := st.Get(AccountingKey, a); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return &Accounting{}, nil
		}
		return nil, err
	}

	return a, nil
}
