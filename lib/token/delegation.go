package token

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/voting"
)

// DelegateVoter lets delegate vote on behalf of the sender. A previous
// delegate is replaced.
func (t *Token) DelegateVoter(ctx Context, delegate string) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		Tick,
		CheckDelegate,
		SetDelegate,
	)
	checker.Delegate = delegate

	return t.execute("delegate", ctx, checker)
}

// DischargeDelegatedVoter removes the delegate of the sender.
func (t *Token) DischargeDelegatedVoter(ctx Context) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		Tick,
		ClearDelegate,
	)

	return t.execute("discharge", ctx, checker)
}

// EnterDelegatedVote votes for recipient on behalf of delegator. The sender
// must be the registered delegate of delegator; afterwards neither of them can
// vote again in this cycle.
func (t *Token) EnterDelegatedVote(ctx Context, delegator, recipient string) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		Tick,
		CheckDelegator,
		CastDelegatedVote,
	)
	checker.Delegator = delegator
	checker.Recipient = recipient

	return t.execute("delegated-vote", ctx, checker)
}

func CheckDelegate(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	if err := common.CheckAccountAddress(checker.Delegate); err != nil {
		return err
	}
	if checker.Delegate == checker.Context.Sender {
		return errors.InvalidDelegate.With("delegate", checker.Delegate)
	}

	return nil
}

func SetDelegate(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	account, err := checker.State.Account(checker.Context.Sender)
	if err != nil {
		return err
	}
	account.Delegate = checker.Delegate
	checker.State.touch(account)

	checker.Log.Debug("delegate registered", "delegate", checker.Delegate)

	return nil
}

func ClearDelegate(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	account, err := checker.State.Account(checker.Context.Sender)
	if err != nil {
		return err
	}
	if len(account.Delegate) < 1 {
		return errors.NoDelegate.With("address", account.Address)
	}
	account.Delegate = ""
	checker.State.touch(account)

	return nil
}

// CheckDelegator checks that the sender is the delegate of `Delegator` and the
// delegator holds the voting minimum.
func CheckDelegator(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	if err := common.CheckAccountAddress(checker.Delegator); err != nil {
		return err
	}

	delegator, err := checker.State.Account(checker.Delegator)
	if err != nil {
		return err
	}
	if len(delegator.Delegate) < 1 || delegator.Delegate != checker.Context.Sender {
		return errors.UnauthorizedDelegate.
			With("delegator", checker.Delegator).
			With("sender", checker.Context.Sender)
	}

	return checkMinimum(delegator, checker.State.Params().VotingMinimum, errors.BelowVotingMinimum)
}

// CastDelegatedVote counts one vote for the delegator, marks both parties as
// voted and locks the delegator's balance.
func CastDelegatedVote(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	cycle := checker.State.Cycle
	if err := cycle.CheckVote(checker.Delegator, checker.Recipient); err != nil {
		return err
	}
	if cycle.HasVoted(checker.Context.Sender) {
		return errors.AlreadyVoted.With("address", checker.Context.Sender)
	}

	if err := cycle.CastVote(checker.Delegator, checker.Recipient); err != nil {
		return err
	}
	cycle.MarkVoted(checker.Context.Sender)

	delegator, err := checker.State.Account(checker.Delegator)
	if err != nil {
		return err
	}
	checker.State.Lock(delegator, checker.State.Params().VotingMinimum)

	checker.Log.Debug("delegated vote entered", "delegator", checker.Delegator, "recipient", checker.Recipient)

	return nil
}
