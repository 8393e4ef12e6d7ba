package voting

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
)

type TiePolicy string

const (
	// TieExtend keeps the tally and votes for another active window.
	TieExtend TiePolicy = "extend"
	// TieReset drops the candidates and the tally and waits for new proposals.
	TieReset TiePolicy = "reset"
)

type UniquenessPolicy string

const (
	UniquePerCycle UniquenessPolicy = "per-cycle"
	UniqueLifetime UniquenessPolicy = "lifetime"
)

type LockPolicy string

const (
	// LockBalance locks the whole balance of a proposer or a voter.
	LockBalance LockPolicy = "balance"
	// LockMinimum locks the proposal or the voting minimum, accumulated
	// per action.
	LockMinimum LockPolicy = "minimum"
)

const (
	DefaultInactiveWindow uint64 = 7
	DefaultActiveWindow   uint64 = 1
)

var (
	DefaultProposalMinimum = common.Tontokens(50000)
	DefaultVotingMinimum   = common.Tontokens(10000)
)

type Params struct {
	InactiveWindow   uint64           `json:"inactive_window" yaml:"inactive_window"`
	ActiveWindow     uint64           `json:"active_window" yaml:"active_window"`
	ProposalMinimum  common.Amount    `json:"proposal_minimum" yaml:"proposal_minimum"`
	VotingMinimum    common.Amount    `json:"voting_minimum" yaml:"voting_minimum"`
	TiePolicy        TiePolicy        `json:"tie_policy" yaml:"tie_policy"`
	UniquenessPolicy UniquenessPolicy `json:"uniqueness_policy" yaml:"uniqueness_policy"`
	LockPolicy       LockPolicy       `json:"lock_policy" yaml:"lock_policy"`
	// LockEnforced limits transfers to the unlocked balance; by default the
	// locked balance is bookkeeping only.
	LockEnforced bool `json:"lock_enforced" yaml:"lock_enforced"`
}

func DefaultParams() Params {
	return Params{
		InactiveWindow:   DefaultInactiveWindow,
		ActiveWindow:     DefaultActiveWindow,
		ProposalMinimum:  DefaultProposalMinimum,
		VotingMinimum:    DefaultVotingMinimum,
		TiePolicy:        TieExtend,
		UniquenessPolicy: UniquePerCycle,
		LockPolicy:       LockBalance,
	}
}

func (p Params) Validate() error {
	if p.InactiveWindow < 1 {
		return errors.InvalidParameter.With("inactive_window", p.InactiveWindow)
	}
	if p.ActiveWindow < 1 {
		return errors.InvalidParameter.With("active_window", p.ActiveWindow)
	}
	if p.ProposalMinimum < 1 || p.ProposalMinimum > common.MaximumBalance {
		return errors.InvalidParameter.With("proposal_minimum", uint64(p.ProposalMinimum))
	}
	if p.VotingMinimum < 1 || p.VotingMinimum > common.MaximumBalance {
		return errors.InvalidParameter.With("voting_minimum", uint64(p.VotingMinimum))
	}

	switch p.TiePolicy {
	case TieExtend, TieReset:
	default:
		return errors.InvalidParameter.With("tie_policy", p.TiePolicy)
	}

	switch p.UniquenessPolicy {
	case UniquePerCycle, UniqueLifetime:
	default:
		return errors.InvalidParameter.With("uniqueness_policy", p.UniquenessPolicy)
	}

	switch p.LockPolicy {
	case LockBalance, LockMinimum:
	default:
		return errors.InvalidParameter.With("lock_policy", p.LockPolicy)
	}

	return nil
}

// LockAmount is the amount locked for an action requiring `minimum` by an
// account holding `balance`.
func (p Params) LockAmount(balance, minimum common.Amount) common.Amount {
	if p.LockPolicy == LockMinimum {
		return minimum.Min(balance)
	}
	return balance
}
