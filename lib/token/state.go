package token

import (
	"sort"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/keygen"
	"github.com/ModernExodus/tontoken/lib/pool"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/voting"
)

// State is the working copy of the ledger during one call. Records are
// loaded lazily from the transaction and written back by `flush`.
type State struct {
	st *storage.LevelDBBackend

	Meta       *Meta
	Cycle      *voting.Cycle
	Accounting *pool.Accounting
	Keygen     *keygen.KeyGenerator

	accounts   map[string]*Account
	allowances map[string]*Allowance
	touched    map[string]bool
}

func loadState(st *storage.LevelDBBackend) (s *State, err error) {
	s = &State{
		st:         st,
		accounts:   map[string]*Account{},
		allowances: map[string]*Allowance{},
		touched:    map[string]bool{},
	}

	if s.Meta, err = GetMeta(st); err != nil {
		return nil, err
	}
	if s.Cycle, err = voting.GetCycle(st); err != nil {
		return nil, err
	}
	if s.Accounting, err = pool.GetAccounting(st); err != nil {
		return nil, err
	}
	if s.Keygen, err = GetKeyGenerator(st); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *State) Params() voting.Params {
	return s.Meta.Params
}

func (s *State) Account(address string) (*Account, error) {
	if a, found := s.accounts[address]; found {
		return a, nil
	}

	a, err := GetOrNewAccount(s.st, address)
	if err != nil {
		return nil, err
	}
	s.accounts[address] = a

	return a, nil
}

// touch marks the account to be written back.
func (s *State) touch(a *Account) {
	s.touched[a.Address] = true
}

func (s *State) Allowance(owner, spender string) (*Allowance, error) {
	key := GetAllowanceKey(owner, spender)
	if a, found := s.allowances[key]; found {
		return a, nil
	}

	a, err := GetAllowance(s.st, owner, spender)
	if err != nil {
		return nil, err
	}
	s.allowances[key] = a

	return a, nil
}

// Unlocked is the part of the balance not locked by the current cycle.
func (s *State) Unlocked(a *Account) common.Amount {
	locked := s.Cycle.LockedOf(a.Address)
	if locked >= a.Balance {
		return 0
	}
	return a.Balance - locked
}

func (s *State) move(from, to *Account, amount common.Amount) error {
	if s.Params().LockEnforced && amount > s.Unlocked(from) {
		return errorInsufficientUnlocked(from.Address, s.Unlocked(from), amount)
	}
	if err := from.Withdraw(amount); err != nil {
		return err
	}
	if err := to.Deposit(amount); err != nil {
		return err
	}

	s.touch(from)
	s.touch(to)
	s.Cycle.CapLock(from.Address, from.Balance)

	return nil
}

// Transfer moves amount between two accounts and mints the match into the
// pool.
func (s *State) Transfer(from, to string, amount common.Amount) error {
	sender, err := s.Account(from)
	if err != nil {
		return err
	}
	receiver, err := s.Account(to)
	if err != nil {
		return err
	}

	if err := s.move(sender, receiver, amount); err != nil {
		return err
	}

	match, err := s.Accounting.OnTransfer(amount)
	if err != nil {
		return err
	}

	return s.mint(match)
}

// Donate mints amount plus its match into the pool. The donor balance is
// left untouched.
func (s *State) Donate(amount common.Amount) error {
	minted, err := s.Accounting.Donate(amount)
	if err != nil {
		return err
	}

	return s.mint(minted)
}

func (s *State) mint(amount common.Amount) error {
	poolAccount, err := s.Account(common.PoolAddress)
	if err != nil {
		return err
	}
	if err := poolAccount.Deposit(amount); err != nil {
		return err
	}
	s.touch(poolAccount)

	return nil
}

func (s *State) Pool() (common.Amount, error) {
	poolAccount, err := s.Account(common.PoolAddress)
	if err != nil {
		return 0, err
	}
	return poolAccount.Balance, nil
}

// PayPool moves the whole pool balance to recipient.
func (s *State) PayPool(recipient string) (common.Amount, error) {
	poolAccount, err := s.Account(common.PoolAddress)
	if err != nil {
		return 0, err
	}
	winner, err := s.Account(recipient)
	if err != nil {
		return 0, err
	}

	paid := poolAccount.Balance
	if err := poolAccount.Withdraw(paid); err != nil {
		return 0, err
	}
	if err := winner.Deposit(paid); err != nil {
		return 0, err
	}
	s.touch(poolAccount)
	s.touch(winner)

	return paid, nil
}

// Lock locks the amount required by the lock policy for an action needing
// minimum.
func (s *State) Lock(a *Account, minimum common.Amount) {
	s.Cycle.Lock(a.Address, s.Params().LockAmount(a.Balance, minimum), a.Balance)
}

// Tick evaluates the pending voting transition at height.
func (s *State) Tick(height uint64) ([]voting.Event, error) {
	return s.Cycle.Advance(height, s.Params(), s, s.Keygen)
}

// flush writes every modified record into the transaction and returns the
// addresses of the saved accounts.
func (s *State) flush() (saved []string, err error) {
	for address := range s.touched {
		saved = append(saved, address)
	}
	sort.Strings(saved)

	for _, address := range saved {
		if err = s.accounts[address].Save(s.st); err != nil {
			return nil, err
		}
	}
	for _, a := range s.allowances {
		if err = a.Save(s.st); err != nil {
			return nil, err
		}
	}

	if err = s.Meta.Save(s.st); err != nil {
		return nil, err
	}
	if err = s.Cycle.Save(s.st); err != nil {
		return nil, err
	}
	if err = s.Accounting.Save(s.st); err != nil {
		return nil, err
	}
	if err = saveKeyGenerator(s.st, s.Keygen); err != nil {
		return nil, err
	}

	return saved, nil
}
