package voting

import (
	"github.com/ModernExodus/tontoken/lib/common"
)

// TestLedger keeps the pool in memory and records every payout.
type TestLedger struct {
	Pool     common.Amount
	Payments map[string]common.Amount
}

func NewTestLedger(pool common.Amount) *TestLedger {
	return &TestLedger{Pool: pool, Payments: map[string]common.Amount{}}
}

func (l *TestLedger) PayPool(recipient string) (common.Amount, error) {
	paid := l.Pool
	l.Payments[recipient] = l.Payments[recipient].MustAdd(paid)
	l.Pool = 0

	return paid, nil
}
