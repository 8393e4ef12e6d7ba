package token

import (
	"fmt"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/storage"
)

// Account is the ledger record of an address.
//
// models
//   - 'address'
//   - 'tt-account-<Account.Address>': `Account`
const AccountPrefixAddress string = "tt-account-"

type Account struct {
	Address  string        `json:"address"`
	Balance  common.Amount `json:"balance"`
	Delegate string        `json:"delegate,omitempty"`
}

func NewAccount(address string, balance common.Amount) *Account {
	return &Account{
		Address: address,
		Balance: balance,
	}
}

func (a *Account) String() string {
	return string(common.MustMarshalJSON(a))
}

func (a *Account) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(a)
	return
}

func (a *Account) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, a)
}

func (a *Account) Save(st *storage.LevelDBBackend) error {
	return st.Save(GetAccountKey(a.Address), a)
}

func GetAccountKey(address string) string {
	return fmt.Sprintf("%s%s", AccountPrefixAddress, address)
}

func GetAccount(st *storage.LevelDBBackend, address string) (a *Account, err error) {
	a = &Account{}
	if err = st.Get(GetAccountKey(address), a); err != nil {
		return nil, err
	}

	return
}

// GetOrNewAccount returns the stored account or an empty one; accounts
// materialize on first reference.
func GetOrNewAccount(st *storage.LevelDBBackend, address string) (*Account, error) {
	a, err := GetAccount(st, address)
	if err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return NewAccount(address, 0), nil
		}
		return nil, err
	}

	return a, nil
}

// GetAccounts iterates the stored accounts ordered by address.
func GetAccounts(st *storage.LevelDBBackend, reverse bool) (func() (*Account, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(AccountPrefixAddress, reverse)

	return (func() (*Account, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			a := &Account{}
			if err := a.Deserialize(item.Value); err != nil {
				log.Error("failed to decode account", "key", string(item.Key), "error", err)
				return nil, false
			}
			return a, hasNext
		}), (func() {
			closeFunc()
		})
}

// Deposit adds fund to the account
//
// If the amount would make the account overflow over the maximum balance,
// an `error` is returned.
func (a *Account) Deposit(fund common.Amount) error {
	val, err := a.Balance.Add(fund)
	if err != nil {
		return err
	}
	a.Balance = val

	return nil
}

// Withdraw removes fund from the account
func (a *Account) Withdraw(fund common.Amount) error {
	if fund > a.Balance {
		return errors.InsufficientBalance.With("address", a.Address).With("balance", a.Balance).With("amount", fund)
	}
	a.Balance = a.Balance.MustSub(fund)

	return nil
}
