package voting

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/keygen"
	"github.com/ModernExodus/tontoken/lib/storage"
)

const CycleKey = "tt-cycle"

// Cycle is the state of the voting state machine. Candidates keep the order
// in which they were proposed; the tally and the lockers are keyed by
// address.
type Cycle struct {
	Status       Status `json:"status"`
	StartBlock   uint64 `json:"start_block"`
	LastEndBlock uint64 `json:"last_end_block"`
	// CycleID counts the completed cycles
	CycleID uint64 `json:"cycle_id"`
	// SessionsHeld counts the cycles which reached a resolution or a vote
	SessionsHeld     uint64     `json:"sessions_held"`
	MostRecentWinner string     `json:"most_recent_winner"`
	Nonce            keygen.Key `json:"nonce"`

	Candidates []Candidate              `json:"candidates"`
	Tally      map[string]uint64        `json:"tally"`
	Voters     map[string]bool          `json:"voters"`
	Proposers  map[string]string        `json:"proposers"`
	Lockers    map[string]common.Amount `json:"lockers"`
}

func NewCycle(height uint64) *Cycle {
	c := &Cycle{
		Status:       StatusInactive,
		LastEndBlock: height,
	}
	c.init()

	return c
}

func (c *Cycle) init() {
	if c.Tally == nil {
		c.Tally = map[string]uint64{}
	}
	if c.Voters == nil {
		c.Voters = map[string]bool{}
	}
	if c.Proposers == nil {
		c.Proposers = map[string]string{}
	}
	if c.Lockers == nil {
		c.Lockers = map[string]common.Amount{}
	}
}

func (c *Cycle) Save(st *storage.LevelDBBackend) error {
	return st.Save(CycleKey, c)
}

func GetCycle(st *storage.LevelDBBackend) (*Cycle, error) {
	c := &Cycle{}
	if err := st.Get(CycleKey, c); err != nil {
		return nil, err
	}
	c.init()

	return c, nil
}

func (c *Cycle) IsCandidate(recipient string) bool {
	_, found := c.candidateIndex(recipient)
	return found
}

func (c *Cycle) candidateIndex(recipient string) (int, bool) {
	for i, candidate := range c.Candidates {
		if candidate.Recipient == recipient {
			return i, true
		}
	}
	return -1, false
}

// HasProposed is true when proposer can not propose again under the
// current uniqueness policy.
func (c *Cycle) HasProposed(proposer string) bool {
	_, found := c.Proposers[proposer]
	return found
}

func (c *Cycle) HasVoted(address string) bool {
	return c.Voters[address]
}

func (c *Cycle) CandidateAddresses() []string {
	addresses := make([]string, len(c.Candidates))
	for i, candidate := range c.Candidates {
		addresses[i] = candidate.Recipient
	}
	return addresses
}

func (c *Cycle) VotesOf(recipient string) uint64 {
	return c.Tally[recipient]
}

func (c *Cycle) TotalVotes() (total uint64) {
	for _, n := range c.Tally {
		total += n
	}
	return
}

// Leader returns the first candidate, in proposal order, holding the highest
// vote count. Without any vote there is no leader.
func (c *Cycle) Leader() (string, uint64) {
	var leader string
	var max uint64
	for _, candidate := range c.Candidates {
		if n := c.Tally[candidate.Recipient]; n > max {
			leader, max = candidate.Recipient, n
		}
	}

	return leader, max
}

// topCandidates returns every candidate holding the highest vote count.
func (c *Cycle) topCandidates() (top []string, max uint64) {
	for _, candidate := range c.Candidates {
		n := c.Tally[candidate.Recipient]
		switch {
		case n > max:
			top, max = []string{candidate.Recipient}, n
		case n == max && n > 0:
			top = append(top, candidate.Recipient)
		}
	}

	return
}

func (c *Cycle) AddCandidate(candidate Candidate) error {
	if c.Status.IsVoting() {
		return errors.VotingActive
	}
	if err := candidate.CheckMetadata(); err != nil {
		return err
	}
	if c.HasProposed(candidate.Proposer) {
		return errors.DuplicateProposal.With("proposer", candidate.Proposer)
	}
	if c.IsCandidate(candidate.Recipient) {
		return errors.AlreadyCandidate.With("recipient", candidate.Recipient)
	}

	c.Candidates = append(c.Candidates, candidate)
	c.Proposers[candidate.Proposer] = candidate.Recipient

	return nil
}

// CheckVote checks that voter can vote for recipient now.
func (c *Cycle) CheckVote(voter, recipient string) error {
	if !c.Status.IsVoting() {
		return errors.VotingNotActive
	}
	if !c.IsCandidate(recipient) {
		return errors.CandidateNotFound.With("recipient", recipient)
	}
	if c.HasVoted(voter) {
		return errors.AlreadyVoted.With("address", voter)
	}

	return nil
}

func (c *Cycle) CastVote(voter, recipient string) error {
	if err := c.CheckVote(voter, recipient); err != nil {
		return err
	}

	c.Voters[voter] = true
	c.Tally[recipient]++

	return nil
}

// MarkVoted excludes address from voting in this cycle without counting a
// vote.
func (c *Cycle) MarkVoted(address string) {
	c.Voters[address] = true
}

func (c *Cycle) LockedOf(address string) common.Amount {
	return c.Lockers[address]
}

// Lock adds amount to the locked balance of address. The locked balance never
// exceeds balance.
func (c *Cycle) Lock(address string, amount, balance common.Amount) {
	locked, err := c.Lockers[address].Add(amount)
	if err != nil {
		locked = balance
	}
	locked = locked.Min(balance)
	if locked < 1 {
		return
	}

	c.Lockers[address] = locked
}

// CapLock shrinks the locked balance of address down to balance.
func (c *Cycle) CapLock(address string, balance common.Amount) {
	locked, found := c.Lockers[address]
	if !found || locked <= balance {
		return
	}

	if balance < 1 {
		delete(c.Lockers, address)
		return
	}
	c.Lockers[address] = balance
}
