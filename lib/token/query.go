package token

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/pool"
	"github.com/ModernExodus/tontoken/lib/voting"
)

// Queries read the committed state and never advance the voting cycle.

func (t *Token) account(address string) (*Account, error) {
	if cached, found := t.cache.Get(address); found {
		return cached.(*Account), nil
	}

	a, err := GetOrNewAccount(t.st, address)
	if err != nil {
		return nil, err
	}
	t.cache.Add(address, a)

	return a, nil
}

func (t *Token) GetAccount(address string) (*Account, error) {
	t.RLock()
	defer t.RUnlock()

	a, err := t.account(address)
	if err != nil {
		return nil, err
	}
	copied := *a

	return &copied, nil
}

func (t *Token) BalanceOf(address string) (common.Amount, error) {
	a, err := t.GetAccount(address)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

func (t *Token) GetDelegate(address string) (string, error) {
	a, err := t.GetAccount(address)
	if err != nil {
		return "", err
	}
	return a.Delegate, nil
}

func (t *Token) Allowance(owner, spender string) (common.Amount, error) {
	t.RLock()
	defer t.RUnlock()

	a, err := GetAllowance(t.st, owner, spender)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

func (t *Token) LastHeight() (uint64, error) {
	t.RLock()
	defer t.RUnlock()

	meta, err := GetMeta(t.st)
	if err != nil {
		return 0, err
	}
	return meta.LastHeight, nil
}

func (t *Token) Pool() (common.Amount, error) {
	return t.BalanceOf(common.PoolAddress)
}

func (t *Token) accounting() (*pool.Accounting, error) {
	t.RLock()
	defer t.RUnlock()

	return pool.GetAccounting(t.st)
}

func (t *Token) TotalMatched() (common.Amount, error) {
	a, err := t.accounting()
	if err != nil {
		return 0, err
	}
	return a.TotalMatched, nil
}

func (t *Token) TotalDonated() (common.Amount, error) {
	a, err := t.accounting()
	if err != nil {
		return 0, err
	}
	return a.TotalDonated, nil
}

// TotalSupply is the initial supply plus every bork minted into the pool.
func (t *Token) TotalSupply() (common.Amount, error) {
	a, err := t.accounting()
	if err != nil {
		return 0, err
	}
	supply, err := common.InitialSupply.Add(a.TotalMatched)
	if err != nil {
		return 0, err
	}
	if supply, err = supply.Add(a.TotalDonated); err != nil {
		return 0, err
	}
	return supply, nil
}

// Cycle returns a copy of the committed voting cycle.
func (t *Token) Cycle() (*voting.Cycle, error) {
	t.RLock()
	defer t.RUnlock()

	return voting.GetCycle(t.st)
}

func (t *Token) GetVotingStatus() (voting.Status, error) {
	c, err := t.Cycle()
	if err != nil {
		return voting.StatusInactive, err
	}
	return c.Status, nil
}

func (t *Token) IsVotingActive() (bool, error) {
	status, err := t.GetVotingStatus()
	return status.IsVoting(), err
}

func (t *Token) IsCurrentlyTied() (bool, error) {
	status, err := t.GetVotingStatus()
	return status == voting.StatusTied, err
}

func (t *Token) GetCurrentLeader() (string, error) {
	c, err := t.Cycle()
	if err != nil {
		return "", err
	}
	leader, _ := c.Leader()
	return leader, nil
}

func (t *Token) GetCurrentLeaderVoteCount() (uint64, error) {
	c, err := t.Cycle()
	if err != nil {
		return 0, err
	}
	_, votes := c.Leader()
	return votes, nil
}

func (t *Token) GetNumberOfVotes(recipient string) (uint64, error) {
	c, err := t.Cycle()
	if err != nil {
		return 0, err
	}
	return c.VotesOf(recipient), nil
}

// GetLockedBorks returns the locked balance of address, never above its
// balance.
func (t *Token) GetLockedBorks(address string) (common.Amount, error) {
	c, err := t.Cycle()
	if err != nil {
		return 0, err
	}
	balance, err := t.BalanceOf(address)
	if err != nil {
		return 0, err
	}
	return c.LockedOf(address).Min(balance), nil
}

func (t *Token) GetPoolCandidateAddresses() ([]string, error) {
	c, err := t.Cycle()
	if err != nil {
		return nil, err
	}
	return c.CandidateAddresses(), nil
}

func (t *Token) GetPoolCandidates() ([]voting.Candidate, error) {
	c, err := t.Cycle()
	if err != nil {
		return nil, err
	}
	return c.Candidates, nil
}

func (t *Token) GetIsCandidate(recipient string) (bool, error) {
	c, err := t.Cycle()
	if err != nil {
		return false, err
	}
	return c.IsCandidate(recipient), nil
}

// HasAlreadyAddedCandidate is true when proposer can not propose under the
// uniqueness policy.
func (t *Token) HasAlreadyAddedCandidate(proposer string) (bool, error) {
	c, err := t.Cycle()
	if err != nil {
		return false, err
	}
	return c.HasProposed(proposer), nil
}

func (t *Token) HasAlreadyVoted(address string) (bool, error) {
	c, err := t.Cycle()
	if err != nil {
		return false, err
	}
	return c.HasVoted(address), nil
}

func (t *Token) GetLastVotingBlock() (uint64, error) {
	c, err := t.Cycle()
	if err != nil {
		return 0, err
	}
	return c.LastEndBlock, nil
}

func (t *Token) GetCurrentVotingCycleId() (uint64, error) {
	c, err := t.Cycle()
	if err != nil {
		return 0, err
	}
	return c.CycleID, nil
}

func (t *Token) TotalVoteSessionsHeld() (uint64, error) {
	c, err := t.Cycle()
	if err != nil {
		return 0, err
	}
	return c.SessionsHeld, nil
}

func (t *Token) MostRecentWinner() (string, error) {
	c, err := t.Cycle()
	if err != nil {
		return "", err
	}
	return c.MostRecentWinner, nil
}

func (t *Token) GetVotingMinimum() common.Amount {
	return t.params.VotingMinimum
}

func (t *Token) GetProposalMinimum() common.Amount {
	return t.params.ProposalMinimum
}

func (t *Token) GetActiveVotingLength() uint64 {
	return t.params.ActiveWindow
}

func (t *Token) GetInactiveVotingLength() uint64 {
	return t.params.InactiveWindow
}

// Accounts returns the stored accounts ordered by address, the pool account
// included.
func (t *Token) Accounts() []*Account {
	return t.AccountsPage("", false, 0)
}

// AccountsPage returns at most limit accounts following cursor, the address
// of the last account of the previous page. Zero limit returns every account.
func (t *Token) AccountsPage(cursor string, reverse bool, limit uint64) (accounts []*Account) {
	t.RLock()
	defer t.RUnlock()

	iterFunc, closeFunc := GetAccounts(t.st, reverse)
	defer closeFunc()

	for {
		a, hasNext := iterFunc()
		if !hasNext {
			break
		}
		if len(cursor) > 0 {
			if !reverse && a.Address <= cursor {
				continue
			}
			if reverse && a.Address >= cursor {
				continue
			}
		}
		accounts = append(accounts, a)
		if limit > 0 && uint64(len(accounts)) == limit {
			break
		}
	}

	return
}
