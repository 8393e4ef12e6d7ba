package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"github.com/ModernExodus/tontoken/lib/voting"
)

// Voting is the state of the current voting cycle.
type Voting struct {
	cycle  *voting.Cycle
	params voting.Params
}

func NewVoting(cycle *voting.Cycle, params voting.Params) *Voting {
	return &Voting{cycle: cycle, params: params}
}

func (v Voting) GetMap() hal.Entry {
	leader, votes := v.cycle.Leader()
	return hal.Entry{
		"status":             v.cycle.Status,
		"cycle_id":           v.cycle.CycleID,
		"start_block":        v.cycle.StartBlock,
		"last_end_block":     v.cycle.LastEndBlock,
		"sessions_held":      v.cycle.SessionsHeld,
		"most_recent_winner": v.cycle.MostRecentWinner,
		"nonce":              v.cycle.Nonce,
		"candidates":         len(v.cycle.Candidates),
		"total_votes":        v.cycle.TotalVotes(),
		"leader":             leader,
		"leader_votes":       votes,
		"params":             v.params,
	}
}

func (v Voting) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("candidates", hal.NewLink(URLCandidates))
	r.AddLink("events", hal.NewLink(URLEvents))
	if len(v.cycle.MostRecentWinner) > 0 {
		r.AddLink("most_recent_winner", hal.NewLink(strings.Replace(URLAccount, "{id}", v.cycle.MostRecentWinner, -1)))
	}
	return r
}

func (v Voting) LinkSelf() string {
	return URLVoting
}

type Candidate struct {
	c     voting.Candidate
	votes uint64
}

func NewCandidate(c voting.Candidate, votes uint64) *Candidate {
	return &Candidate{c: c, votes: votes}
}

func (c Candidate) GetMap() hal.Entry {
	return hal.Entry{
		"id":          c.c.Recipient,
		"recipient":   c.c.Recipient,
		"proposer":    c.c.Proposer,
		"name":        c.c.Name,
		"description": c.c.Description,
		"website":     c.c.Website,
		"votes":       c.votes,
	}
}

func (c Candidate) Resource() *hal.Resource {
	r := hal.NewResource(c, c.LinkSelf())
	r.AddLink("recipient", hal.NewLink(strings.Replace(URLAccount, "{id}", c.c.Recipient, -1)))
	r.AddLink("proposer", hal.NewLink(strings.Replace(URLAccount, "{id}", c.c.Proposer, -1)))
	return r
}

func (c Candidate) LinkSelf() string {
	return strings.Replace(URLCandidate, "{id}", c.c.Recipient, -1)
}
