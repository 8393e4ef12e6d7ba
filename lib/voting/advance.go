package voting

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/keygen"
)

// Ledger pays the pool out of the ledger.
type Ledger interface {
	// PayPool moves the whole pool to recipient and returns the paid amount.
	PayPool(recipient string) (common.Amount, error)
}

type Nonces interface {
	GenerateKeyFromUint64(uint64) keygen.Key
	ChangeSalt(height uint64)
}

// Advance evaluates the pending transition of the cycle at height. At most
// one transition happens per call, however long the gap since the last one.
// On error the cycle may be partially modified; callers discard it.
func (c *Cycle) Advance(height uint64, params Params, ledger Ledger, nonces Nonces) ([]Event, error) {
	switch c.Status {
	case StatusInactive:
		if height < c.LastEndBlock || height-c.LastEndBlock < params.InactiveWindow {
			return nil, nil
		}
		return c.start(height, params, ledger, nonces)
	case StatusActive, StatusTied:
		if height < c.StartBlock || height-c.StartBlock < params.ActiveWindow {
			return nil, nil
		}
		return c.stop(height, params, ledger, nonces)
	}

	return nil, nil
}

func (c *Cycle) start(height uint64, params Params, ledger Ledger, nonces Nonces) ([]Event, error) {
	switch len(c.Candidates) {
	case 0:
		c.LastEndBlock = height
		log.Debug("voting postponed", "height", height, "reason", ReasonNoCandidates)

		return []Event{NewVotingPostponed(height, c.CycleID, ReasonNoCandidates)}, nil
	case 1:
		winner := c.Candidates[0].Recipient
		paid, err := ledger.PayPool(winner)
		if err != nil {
			return nil, err
		}

		c.SessionsHeld++
		event := NewVoteUncontested(height, c.CycleID, winner, paid)
		c.complete(height, winner, params, nonces)
		log.Info("pool paid", "height", height, "winner", winner, "amount", paid, "uncontested", true)

		return []Event{event}, nil
	}

	c.Status = StatusActive
	c.StartBlock = height
	c.SessionsHeld++
	c.Nonce = nonces.GenerateKeyFromUint64(c.SessionsHeld)
	log.Info(
		"voting started",
		"height", height,
		"candidates", len(c.Candidates),
		"session", c.SessionsHeld,
		"nonce", c.Nonce,
	)

	return nil, nil
}

func (c *Cycle) stop(height uint64, params Params, ledger Ledger, nonces Nonces) ([]Event, error) {
	top, max := c.topCandidates()

	switch {
	case max == 0:
		c.Status = StatusInactive
		c.LastEndBlock = height
		c.Tally = map[string]uint64{}
		c.Voters = map[string]bool{}
		log.Info("voting postponed", "height", height, "reason", ReasonNoVotes)

		return []Event{NewVotingPostponed(height, c.CycleID, ReasonNoVotes)}, nil
	case len(top) == 1:
		winner := top[0]
		paid, err := ledger.PayPool(winner)
		if err != nil {
			return nil, err
		}

		event := NewVotingInactive(height, c.CycleID, winner, max, paid)
		c.complete(height, winner, params, nonces)
		log.Info("pool paid", "height", height, "winner", winner, "votes", max, "amount", paid)

		return []Event{event}, nil
	}

	if params.TiePolicy == TieExtend {
		c.Status = StatusTied
		c.StartBlock = height
		log.Info("voting extended", "height", height, "tied", top, "votes", max)

		return []Event{NewVotingExtended(height, c.CycleID)}, nil
	}

	event := NewVotingPostponed(height, c.CycleID, ReasonTied)

	lockers := c.Lockers
	c.complete(height, "", params, nonces)
	// the pool and the locked balances are carried to the next cycle
	c.Lockers = lockers
	log.Info("voting postponed", "height", height, "reason", ReasonTied, "tied", top)

	return []Event{event}, nil
}

// complete closes the current cycle; every lock is released.
func (c *Cycle) complete(height uint64, winner string, params Params, nonces Nonces) {
	c.Status = StatusInactive
	c.LastEndBlock = height
	c.Candidates = nil
	c.Tally = map[string]uint64{}
	c.Voters = map[string]bool{}
	c.Lockers = map[string]common.Amount{}
	if params.UniquenessPolicy != UniqueLifetime {
		c.Proposers = map[string]string{}
	}
	if len(winner) > 0 {
		c.MostRecentWinner = winner
	}

	c.CycleID++
	nonces.ChangeSalt(height)
}
