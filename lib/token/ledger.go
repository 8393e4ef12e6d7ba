package token

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/voting"
)

// Transfer moves amount from the sender to recipient. The match of the
// transfer is minted into the pool, then the voting cycle is advanced.
func (t *Token) Transfer(ctx Context, recipient string, amount common.Amount) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		CheckRecipient,
		CheckAmount,
		MoveBalance,
		Tick,
	)
	checker.Owner = ctx.Sender
	checker.Recipient = recipient
	checker.Amount = amount

	return t.execute("transfer", ctx, checker)
}

// Approve sets the amount spender may transfer out of the sender's balance.
func (t *Token) Approve(ctx Context, spender string, amount common.Amount) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		Tick,
		CheckSpender,
		CheckAmount,
		SetAllowance,
	)
	checker.Owner = ctx.Sender
	checker.Spender = spender
	checker.Amount = amount

	return t.execute("approve", ctx, checker)
}

// TransferFrom moves amount from owner to recipient, spending the allowance
// given by owner to the sender.
func (t *Token) TransferFrom(ctx Context, owner, recipient string, amount common.Amount) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		CheckOwner,
		CheckRecipient,
		CheckAmount,
		SpendAllowance,
		MoveBalance,
		Tick,
	)
	checker.Owner = owner
	checker.Spender = ctx.Sender
	checker.Recipient = recipient
	checker.Amount = amount

	return t.execute("transfer-from", ctx, checker)
}

// Donate mints amount and its match into the pool.
func (t *Token) Donate(ctx Context, amount common.Amount) ([]voting.Event, error) {
	checker := newChecker(
		CheckSender,
		CheckHeight,
		CheckAmount,
		DonateToPool,
		Tick,
	)
	checker.Amount = amount

	return t.execute("donate", ctx, checker)
}

// MoveBalance moves `Amount` from `Owner` to `Recipient`.
func MoveBalance(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	if err := checker.State.Transfer(checker.Owner, checker.Recipient, checker.Amount); err != nil {
		return err
	}
	checker.Log.Debug("transferred", "from", checker.Owner, "to", checker.Recipient, "amount", checker.Amount)

	return nil
}

func SetAllowance(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	allowance, err := checker.State.Allowance(checker.Owner, checker.Spender)
	if err != nil {
		return err
	}
	allowance.Amount = checker.Amount

	return nil
}

func SpendAllowance(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	allowance, err := checker.State.Allowance(checker.Owner, checker.Spender)
	if err != nil {
		return err
	}

	return allowance.Spend(checker.Amount)
}

func DonateToPool(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	return checker.State.Donate(checker.Amount)
}
