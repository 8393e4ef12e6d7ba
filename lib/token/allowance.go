package token

import (
	"fmt"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/storage"
)

// models
//   - 'owner' and 'spender'
//   - 'tt-allowance-<Allowance.Owner>-<Allowance.Spender>': `Allowance`
const AllowancePrefix string = "tt-allowance-"

type Allowance struct {
	Owner   string        `json:"owner"`
	Spender string        `json:"spender"`
	Amount  common.Amount `json:"amount"`
}

func GetAllowanceKey(owner, spender string) string {
	return fmt.Sprintf("%s%s-%s", AllowancePrefix, owner, spender)
}

func (a *Allowance) Save(st *storage.LevelDBBackend) error {
	return st.Save(GetAllowanceKey(a.Owner, a.Spender), a)
}

// GetAllowance returns the allowance of spender over owner's balance; a
// missing record is a zero allowance.
func GetAllowance(st *storage.LevelDBBackend, owner, spender string) (*Allowance, error) {
	a := &Allowance{}
	if err := st.Get(GetAllowanceKey(owner, spender), a); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return &Allowance{Owner: owner, Spender: spender}, nil
		}
		return nil, err
	}

	return a, nil
}

func (a *Allowance) Spend(amount common.Amount) error {
	if amount > a.Amount {
		return errors.InsufficientAllowance.
			With("owner", a.Owner).
			With("spender", a.Spender).
			With("allowance", a.Amount).
			With("amount", amount)
	}
	a.Amount = a.Amount.MustSub(amount)

	return nil
}
