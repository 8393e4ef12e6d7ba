package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/voting"
)

type votingSetup struct {
	tk     *Token
	owner  string
	p1, p2 string
	r1, r2 string
	voters []string
}

// newVotingSetup funds two proposers and the voters at height 1, and
// proposes two candidates at height 2.
func newVotingSetup(t *testing.T, params voting.Params, voters int) *votingSetup {
	tk, owner := newTestToken(t, params)

	s := &votingSetup{
		tk:    tk,
		owner: owner,
		p1:    fund(t, tk, owner, 60000),
		p2:    fund(t, tk, owner, 60000),
		r1:    newAddress(),
		r2:    newAddress(),
	}
	for i := 0; i < voters; i++ {
		s.voters = append(s.voters, fund(t, tk, owner, 20000))
	}

	_, err := tk.ProposeCandidate(NewContext(s.p1, 2), s.r1)
	require.NoError(t, err)
	_, err = tk.ProposeCandidate(NewContext(s.p2, 2), s.r2)
	require.NoError(t, err)

	return s
}

// trigger runs an operation which changes neither balances nor the cycle,
// so only the pending transition happens.
func (s *votingSetup) trigger(t *testing.T, height uint64) []voting.Event {
	events, err := s.tk.DelegateVoter(NewContext(s.owner, height), newAddress())
	require.NoError(t, err)

	return events
}

func (s *votingSetup) vote(t *testing.T, voter, recipient string, height uint64) {
	_, err := s.tk.EnterVote(NewContext(voter, height), recipient)
	require.NoError(t, err)
}

func TestSingleCandidateResolution(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	p := fund(t, tk, owner, 60000)
	r := newAddress()

	_, err := tk.ProposeCandidate(NewContext(p, 2), r)
	require.NoError(t, err)
	requireLocked(t, tk, p, common.Tontokens(60000))

	proposed, _ := tk.HasAlreadyAddedCandidate(p)
	require.True(t, proposed)
	isCandidate, _ := tk.GetIsCandidate(r)
	require.True(t, isCandidate)

	events, err := tk.Transfer(NewContext(owner, 6), newAddress(), 1)
	require.NoError(t, err)
	require.Empty(t, events)
	requirePool(t, tk, 937500001)

	// the match of the triggering transfer is paid out too
	events, err = tk.Transfer(NewContext(owner, 7), newAddress(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVoteUncontested, events[0].Type)
	require.Equal(t, r, events[0].Winner)
	require.Equal(t, common.Amount(937500002), events[0].Payout)

	requireBalance(t, tk, r, 937500002)
	requirePool(t, tk, 0)
	requireLocked(t, tk, p, 0)
	requireStatus(t, tk, voting.StatusInactive)

	candidates, _ := tk.GetPoolCandidateAddresses()
	require.Empty(t, candidates)
	cycleID, _ := tk.GetCurrentVotingCycleId()
	require.Equal(t, uint64(1), cycleID)
	sessions, _ := tk.TotalVoteSessionsHeld()
	require.Equal(t, uint64(1), sessions)
	winner, _ := tk.MostRecentWinner()
	require.Equal(t, r, winner)
	last, _ := tk.GetLastVotingBlock()
	require.Equal(t, uint64(7), last)
}

func TestNoCandidateStasis(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	account := newAddress()

	events, err := tk.Transfer(NewContext(owner, 7), account, 6400)
	require.NoError(t, err)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVotingPostponed, events[0].Type)
	require.Equal(t, voting.ReasonNoCandidates, events[0].Reason)
	requirePool(t, tk, 100)

	events, err = tk.Transfer(NewContext(owner, 14), account, 6400)
	require.NoError(t, err)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVotingPostponed, events[0].Type)
	requirePool(t, tk, 200)
	requireBalance(t, tk, account, 12800)

	last, _ := tk.GetLastVotingBlock()
	require.Equal(t, uint64(14), last)
	cycleID, _ := tk.GetCurrentVotingCycleId()
	require.Equal(t, uint64(0), cycleID)
}

func TestVotingCycleWithWinner(t *testing.T) {
	s := newVotingSetup(t, voting.DefaultParams(), 3)
	tk := s.tk

	require.Equal(t, []string{s.r1, s.r2}, func() []string {
		addresses, _ := tk.GetPoolCandidateAddresses()
		return addresses
	}())

	s.vote(t, s.voters[0], s.r1, 7)
	requireStatus(t, tk, voting.StatusActive)
	active, _ := tk.IsVotingActive()
	require.True(t, active)

	s.vote(t, s.voters[1], s.r1, 7)
	s.vote(t, s.voters[2], s.r2, 7)

	_, err := tk.ProposeCandidate(NewContext(s.owner, 7), newAddress())
	require.True(t, errors.Is(err, errors.VotingActive))
	require.True(t, errors.IsState(err))

	leader, _ := tk.GetCurrentLeader()
	require.Equal(t, s.r1, leader)
	count, _ := tk.GetCurrentLeaderVoteCount()
	require.Equal(t, uint64(2), count)
	votes, _ := tk.GetNumberOfVotes(s.r2)
	require.Equal(t, uint64(1), votes)
	voted, _ := tk.HasAlreadyVoted(s.voters[0])
	require.True(t, voted)
	requireLocked(t, tk, s.voters[0], common.Tontokens(20000))

	pool, _ := tk.Pool()
	events := s.trigger(t, 8)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVotingInactive, events[0].Type)
	require.Equal(t, s.r1, events[0].Winner)
	require.Equal(t, uint64(2), events[0].VoteCount)
	require.Equal(t, pool, events[0].Payout)

	requireBalance(t, tk, s.r1, pool)
	requireBalance(t, tk, s.r2, 0)
	requirePool(t, tk, 0)
	requireStatus(t, tk, voting.StatusInactive)
	for _, address := range append([]string{s.p1, s.p2}, s.voters...) {
		requireLocked(t, tk, address, 0)
	}

	candidates, _ := tk.GetPoolCandidates()
	require.Empty(t, candidates)
	voted, _ = tk.HasAlreadyVoted(s.voters[0])
	require.False(t, voted)
	leader, _ = tk.GetCurrentLeader()
	require.Equal(t, "", leader)
	sessions, _ := tk.TotalVoteSessionsHeld()
	require.Equal(t, uint64(1), sessions)
}

func TestVotingPostponedWithoutVotes(t *testing.T) {
	s := newVotingSetup(t, voting.DefaultParams(), 0)
	tk := s.tk

	require.Empty(t, s.trigger(t, 7))
	requireStatus(t, tk, voting.StatusActive)

	pool, _ := tk.Pool()
	events := s.trigger(t, 8)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVotingPostponed, events[0].Type)
	require.Equal(t, voting.ReasonNoVotes, events[0].Reason)

	requirePool(t, tk, pool)
	requireStatus(t, tk, voting.StatusInactive)
	requireLocked(t, tk, s.p1, common.Tontokens(60000))
	candidates, _ := tk.GetPoolCandidateAddresses()
	require.Equal(t, []string{s.r1, s.r2}, candidates)
	last, _ := tk.GetLastVotingBlock()
	require.Equal(t, uint64(8), last)

	// the same candidates run again after the inactive window
	require.Empty(t, s.trigger(t, 15))
	requireStatus(t, tk, voting.StatusActive)
	sessions, _ := tk.TotalVoteSessionsHeld()
	require.Equal(t, uint64(2), sessions)
}

func TestTieWithholdingExtend(t *testing.T) {
	s := newVotingSetup(t, voting.DefaultParams(), 3)
	tk := s.tk

	s.vote(t, s.voters[0], s.r1, 7)
	s.vote(t, s.voters[1], s.r2, 7)

	pool, _ := tk.Pool()
	lockers := []string{s.p1, s.p2, s.voters[0], s.voters[1]}
	locked := map[string]common.Amount{}
	for _, address := range lockers {
		locked[address], _ = tk.GetLockedBorks(address)
		require.NotEqual(t, common.Amount(0), locked[address])
	}

	events := s.trigger(t, 8)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVotingExtended, events[0].Type)

	requirePool(t, tk, pool)
	for _, address := range lockers {
		requireLocked(t, tk, address, locked[address])
	}
	requireStatus(t, tk, voting.StatusTied)
	tied, _ := tk.IsCurrentlyTied()
	require.True(t, tied)

	_, err := tk.ProposeCandidate(NewContext(s.owner, 8), newAddress())
	require.True(t, errors.Is(err, errors.VotingActive))

	_, err = tk.EnterVote(NewContext(s.voters[0], 8), s.r2)
	require.True(t, errors.Is(err, errors.AlreadyVoted))

	// a new vote breaks the tie
	s.vote(t, s.voters[2], s.r1, 8)
	events = s.trigger(t, 9)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVotingInactive, events[0].Type)
	require.Equal(t, s.r1, events[0].Winner)
	require.Equal(t, uint64(2), events[0].VoteCount)

	requireBalance(t, tk, s.r1, pool)
	requirePool(t, tk, 0)
	for _, address := range lockers {
		requireLocked(t, tk, address, 0)
	}
}

func TestTieWithholdingReset(t *testing.T) {
	params := voting.DefaultParams()
	params.TiePolicy = voting.TieReset
	s := newVotingSetup(t, params, 2)
	tk := s.tk

	s.vote(t, s.voters[0], s.r1, 7)
	s.vote(t, s.voters[1], s.r2, 7)

	pool, _ := tk.Pool()
	events := s.trigger(t, 8)
	require.Equal(t, 1, len(events))
	require.Equal(t, voting.EventVotingPostponed, events[0].Type)
	require.Equal(t, voting.ReasonTied, events[0].Reason)

	requirePool(t, tk, pool)
	requireStatus(t, tk, voting.StatusInactive)
	for _, address := range []string{s.p1, s.p2} {
		requireLocked(t, tk, address, common.Tontokens(60000))
	}
	for _, address := range s.voters {
		requireLocked(t, tk, address, common.Tontokens(20000))
	}

	candidates, _ := tk.GetPoolCandidateAddresses()
	require.Empty(t, candidates)
	cycleID, _ := tk.GetCurrentVotingCycleId()
	require.Equal(t, uint64(1), cycleID)

	// fresh proposals are accepted again
	_, err := tk.ProposeCandidate(NewContext(s.p1, 9), s.r1)
	require.NoError(t, err)
}

func TestUniquenessPerCycle(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	p := fund(t, tk, owner, 60000)

	_, err := tk.ProposeCandidate(NewContext(p, 2), newAddress())
	require.NoError(t, err)
	_, err = tk.ProposeCandidate(NewContext(p, 3), newAddress())
	require.True(t, errors.Is(err, errors.DuplicateProposal))

	// resolved uncontested at height 7
	_, err = tk.Transfer(NewContext(owner, 7), newAddress(), 1)
	require.NoError(t, err)

	_, err = tk.ProposeCandidate(NewContext(p, 8), newAddress())
	require.NoError(t, err)
}

func TestUniquenessLifetime(t *testing.T) {
	params := voting.DefaultParams()
	params.UniquenessPolicy = voting.UniqueLifetime
	tk, owner := newTestToken(t, params)
	p := fund(t, tk, owner, 60000)

	_, err := tk.ProposeCandidate(NewContext(p, 2), newAddress())
	require.NoError(t, err)

	_, err = tk.Transfer(NewContext(owner, 7), newAddress(), 1)
	require.NoError(t, err)

	_, err = tk.ProposeCandidate(NewContext(p, 8), newAddress())
	require.True(t, errors.Is(err, errors.DuplicateProposal))

	proposed, _ := tk.HasAlreadyAddedCandidate(p)
	require.True(t, proposed)
}

func TestProposalValidation(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	poor := fund(t, tk, owner, 49999)
	p1 := fund(t, tk, owner, 50000)
	p2 := fund(t, tk, owner, 50000)
	r := newAddress()

	_, err := tk.ProposeCandidate(NewContext(poor, 2), r)
	require.True(t, errors.Is(err, errors.BelowProposalMinimum))

	_, err = tk.ProposeCandidate(NewContext(p1, 2), "showme")
	require.True(t, errors.Is(err, errors.InvalidAddress))

	_, err = tk.ProposeCandidate(NewContext(p1, 2), common.PoolAddress)
	require.True(t, errors.Is(err, errors.ReservedAddress))

	_, err = tk.ProposeCandidateWithMetadata(NewContext(p1, 2), r, "showme", "findme", "https://example.com")
	require.NoError(t, err)

	_, err = tk.ProposeCandidate(NewContext(p2, 2), r)
	require.True(t, errors.Is(err, errors.AlreadyCandidate))

	candidates, err := tk.GetPoolCandidates()
	require.NoError(t, err)
	require.Equal(t, []voting.Candidate{{
		Proposer:    p1,
		Recipient:   r,
		Name:        "showme",
		Description: "findme",
		Website:     "https://example.com",
	}}, candidates)
}

func TestVoteValidation(t *testing.T) {
	s := newVotingSetup(t, voting.DefaultParams(), 1)
	tk := s.tk
	poor := newAddress()
	_, err := tk.Transfer(NewContext(s.owner, 2), poor, common.Tontokens(1))
	require.NoError(t, err)

	_, err = tk.EnterVote(NewContext(s.voters[0], 3), s.r1)
	require.True(t, errors.Is(err, errors.VotingNotActive))

	_, err = tk.EnterVote(NewContext(poor, 7), s.r1)
	require.True(t, errors.Is(err, errors.BelowVotingMinimum))

	_, err = tk.EnterVote(NewContext(s.voters[0], 7), newAddress())
	require.True(t, errors.Is(err, errors.CandidateNotFound))

	s.vote(t, s.voters[0], s.r1, 7)
	_, err = tk.EnterVote(NewContext(s.voters[0], 7), s.r2)
	require.True(t, errors.Is(err, errors.AlreadyVoted))
}

func TestAtomicRollback(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	p := fund(t, tk, owner, 60000)
	r := newAddress()

	_, err := tk.ProposeCandidate(NewContext(p, 2), r)
	require.NoError(t, err)
	pool, _ := tk.Pool()

	// the tick resolves the cycle before the vote fails, and both are undone
	events, err := tk.EnterVote(NewContext(newAddress(), 7), r)
	require.True(t, errors.Is(err, errors.BelowVotingMinimum))
	require.Nil(t, events)

	requirePool(t, tk, pool)
	requireBalance(t, tk, r, 0)
	requireLocked(t, tk, p, common.Tontokens(60000))
	isCandidate, _ := tk.GetIsCandidate(r)
	require.True(t, isCandidate)
	height, _ := tk.LastHeight()
	require.Equal(t, uint64(2), height)

	events, err = tk.Transfer(NewContext(owner, 7), newAddress(), 1)
	require.NoError(t, err)
	require.Equal(t, voting.EventVoteUncontested, events[0].Type)
	requireBalance(t, tk, r, pool+1)
}

func TestLockAdvisory(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	p := fund(t, tk, owner, 60000)

	_, err := tk.ProposeCandidate(NewContext(p, 2), newAddress())
	require.NoError(t, err)
	requireLocked(t, tk, p, common.Tontokens(60000))

	_, err = tk.Transfer(NewContext(p, 3), owner, common.Tontokens(10000))
	require.NoError(t, err)
	requireLocked(t, tk, p, common.Tontokens(50000))
}

func TestLockEnforced(t *testing.T) {
	params := voting.DefaultParams()
	params.LockEnforced = true
	tk, owner := newTestToken(t, params)
	p := fund(t, tk, owner, 60000)

	_, err := tk.ProposeCandidate(NewContext(p, 2), newAddress())
	require.NoError(t, err)

	_, err = tk.Transfer(NewContext(p, 3), owner, 1)
	require.True(t, errors.Is(err, errors.InsufficientUnlocked))
	requireBalance(t, tk, p, common.Tontokens(60000))

	// released by the uncontested resolution
	_, err = tk.Transfer(NewContext(owner, 7), newAddress(), 1)
	require.NoError(t, err)
	_, err = tk.Transfer(NewContext(p, 8), owner, 1)
	require.NoError(t, err)
}

func TestLockMinimum(t *testing.T) {
	params := voting.DefaultParams()
	params.LockPolicy = voting.LockMinimum
	s := newVotingSetup(t, params, 0)

	requireLocked(t, s.tk, s.p1, common.Tontokens(50000))
	requireLocked(t, s.tk, s.p2, common.Tontokens(50000))

	s.vote(t, s.p1, s.r2, 7)
	requireLocked(t, s.tk, s.p1, common.Tontokens(60000))
	requireLocked(t, s.tk, s.p2, common.Tontokens(50000))
}
