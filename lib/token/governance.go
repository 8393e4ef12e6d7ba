package token

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/voting"
)

// ProposeCandidate nominates recipient to receive the pool.
func (t *Token) ProposeCandidate(ctx Context, recipient string) ([]voting.Event, error) {
	return t.ProposeCandidateWithMetadata(ctx, recipient, "", "", "")
}

// ProposeCandidateWithMetadata nominates recipient with its display
// metadata.
func (t *Token) ProposeCandidateWithMetadata(ctx Context, recipient, name, description, website string) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		Tick,
		CheckCandidateRecipient,
		CheckProposalMinimum,
		AddCandidate,
	)
	checker.Candidate = voting.Candidate{
		Proposer:    ctx.Sender,
		Recipient:   recipient,
		Name:        name,
		Description: description,
		Website:     website,
	}

	return t.execute("propose", ctx, checker)
}

// EnterVote votes for the candidate nominated for recipient.
func (t *Token) EnterVote(ctx Context, recipient string) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		Tick,
		CheckVotingMinimum,
		CastVote,
	)
	checker.Recipient = recipient

	return t.execute("vote", ctx, checker)
}

func CheckCandidateRecipient(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	return common.CheckAccountAddress(checker.Candidate.Recipient)
}

func CheckProposalMinimum(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	account, err := checker.State.Account(checker.Context.Sender)
	if err != nil {
		return err
	}

	return checkMinimum(account, checker.State.Params().ProposalMinimum, errors.BelowProposalMinimum)
}

func CheckVotingMinimum(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	account, err := checker.State.Account(checker.Context.Sender)
	if err != nil {
		return err
	}

	return checkMinimum(account, checker.State.Params().VotingMinimum, errors.BelowVotingMinimum)
}

// AddCandidate adds the candidate and locks the balance of its proposer.
func AddCandidate(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	state := checker.State
	if err := state.Cycle.AddCandidate(checker.Candidate); err != nil {
		return err
	}

	proposer, err := state.Account(checker.Candidate.Proposer)
	if err != nil {
		return err
	}
	state.Lock(proposer, state.Params().ProposalMinimum)

	checker.Log.Info(
		"candidate proposed",
		"recipient", checker.Candidate.Recipient,
		"locked", state.Cycle.LockedOf(proposer.Address),
	)

	return nil
}

// CastVote counts the vote of the sender and locks its balance.
func CastVote(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	state := checker.State
	if err := state.Cycle.CastVote(checker.Context.Sender, checker.Recipient); err != nil {
		return err
	}

	voter, err := state.Account(checker.Context.Sender)
	if err != nil {
		return err
	}
	state.Lock(voter, state.Params().VotingMinimum)

	checker.Log.Debug("vote entered", "recipient", checker.Recipient)

	return nil
}
