package token

import (
	logging "github.com/inconshreveable/log15"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/voting"
)

// OperationChecker is shared by the checker funcs of one operation. The funcs
// run in order by `common.RunChecker`; the first error aborts the operation
// and its transaction is discarded.
type OperationChecker struct {
	common.DefaultChecker

	Log     logging.Logger
	State   *State
	Context Context
	Events  []voting.Event

	Owner     string
	Recipient string
	Spender   string
	Delegator string
	Delegate  string
	Amount    common.Amount
	Candidate voting.Candidate
}

func newChecker(funcs ...common.CheckerFunc) *OperationChecker {
	return &OperationChecker{
		DefaultChecker: common.DefaultChecker{Funcs: funcs},
	}
}

func errorInsufficientUnlocked(address string, unlocked, amount common.Amount) error {
	return errors.InsufficientUnlocked.
		With("address", address).
		With("unlocked", unlocked).
		With("amount", amount)
}

// CheckSender checks the calling account; the pool account never calls.
func CheckSender(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	return common.CheckAccountAddress(checker.Context.Sender)
}

// CheckHeight refuses a height lower than the last observed one and records
// the new height.
func CheckHeight(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	meta := checker.State.Meta
	if checker.Context.Height < meta.LastHeight {
		return errors.HeightRegression.
			With("height", checker.Context.Height).
			With("last_height", meta.LastHeight)
	}
	meta.LastHeight = checker.Context.Height

	return nil
}

// Tick evaluates the pending voting transition.
func Tick(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	events, err := checker.State.Tick(checker.Context.Height)
	if err != nil {
		return err
	}
	checker.Events = append(checker.Events, events...)

	for _, event := range events {
		checker.Log.Debug("voting event", "type", event.Type, "cycle", event.CycleID, "winner", event.Winner)
	}

	return nil
}

func CheckAmount(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	if checker.Amount > common.MaximumBalance {
		return errors.InvalidAmount.With("amount", uint64(checker.Amount))
	}

	return nil
}

// CheckRecipient accepts any account address including the pool.
func CheckRecipient(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	return common.CheckAddress(checker.Recipient)
}

func CheckOwner(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	return common.CheckAccountAddress(checker.Owner)
}

func CheckSpender(c common.Checker, args ...interface{}) error {
	checker := c.(*OperationChecker)

	return common.CheckAccountAddress(checker.Spender)
}

func checkMinimum(account *Account, required common.Amount, target *errors.Error) error {
	if account.Balance < required {
		return target.
			With("address", account.Address).
			With("balance", account.Balance).
			With("minimum", required)
	}

	return nil
}
