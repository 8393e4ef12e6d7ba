package voting

import (
	"github.com/google/uuid"

	"github.com/ModernExodus/tontoken/lib/common"
)

type EventType string

const (
	EventVotingPostponed EventType = "VotingPostponed"
	EventVoteUncontested EventType = "VoteUncontested"
	EventVotingExtended  EventType = "VotingExtended"
	EventVotingInactive  EventType = "VotingInactive"
)

const (
	ReasonNoCandidates = "No candidates"
	ReasonNoVotes      = "No votes cast"
	ReasonTied         = "Vote tied"
)

// Event is emitted by a cycle transition.
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Height    uint64        `json:"height"`
	CycleID   uint64        `json:"cycle_id"`
	Reason    string        `json:"reason,omitempty"`
	Winner    string        `json:"winner,omitempty"`
	VoteCount uint64        `json:"vote_count,omitempty"`
	Payout    common.Amount `json:"payout,omitempty"`
}

func newEvent(t EventType, height, cycleID uint64) Event {
	return Event{
		ID:      uuid.Must(uuid.NewUUID()).String(),
		Type:    t,
		Height:  height,
		CycleID: cycleID,
	}
}

func NewVotingPostponed(height, cycleID uint64, reason string) Event {
	e := newEvent(EventVotingPostponed, height, cycleID)
	e.Reason = reason
	return e
}

func NewVoteUncontested(height, cycleID uint64, winner string, payout common.Amount) Event {
	e := newEvent(EventVoteUncontested, height, cycleID)
	e.Winner = winner
	e.Payout = payout
	return e
}

func NewVotingExtended(height, cycleID uint64) Event {
	return newEvent(EventVotingExtended, height, cycleID)
}

func NewVotingInactive(height, cycleID uint64, winner string, voteCount uint64, payout common.Amount) Event {
	e := newEvent(EventVotingInactive, height, cycleID)
	e.Winner = winner
	e.VoteCount = voteCount
	e.Payout = payout
	return e
}
