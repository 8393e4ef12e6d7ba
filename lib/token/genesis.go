package token

import (
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/keygen"
	"github.com/ModernExodus/tontoken/lib/pool"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/voting"
)

type Allocation struct {
	Address string        `json:"address" yaml:"address"`
	Amount  common.Amount `json:"amount" yaml:"amount"`
}

type GenesisConfig struct {
	Owner  string
	Height uint64
	Params voting.Params
	// Distribute splits the initial supply over Allocations, the remainder
	// goes to Owner. Without it Owner receives the whole supply.
	Distribute  bool
	Allocations []Allocation
}

func (g GenesisConfig) balances() (map[string]common.Amount, error) {
	if err := common.CheckAccountAddress(g.Owner); err != nil {
		return nil, err
	}

	balances := map[string]common.Amount{}
	remaining := common.InitialSupply
	if g.Distribute {
		for _, allocation := range g.Allocations {
			if err := common.CheckAccountAddress(allocation.Address); err != nil {
				return nil, errors.InvalidGenesis.With("address", allocation.Address)
			}

			left, err := remaining.Sub(allocation.Amount)
			if err != nil {
				return nil, errors.InvalidGenesis.With("allocations", "exceed the initial supply")
			}
			remaining = left
			balances[allocation.Address] = balances[allocation.Address].MustAdd(allocation.Amount)
		}
	}
	balances[g.Owner] = balances[g.Owner].MustAdd(remaining)

	return balances, nil
}

// Genesis initializes the ledger in st. It fails when st already holds one.
func Genesis(st *storage.LevelDBBackend, config GenesisConfig) (*Token, error) {
	if err := config.Params.Validate(); err != nil {
		return nil, err
	}

	balances, err := config.balances()
	if err != nil {
		return nil, err
	}

	ts, err := st.OpenTransaction()
	if err != nil {
		return nil, err
	}

	if err := writeGenesis(ts, config, balances); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		return nil, err
	}

	log.Info(
		"genesis created",
		"owner", config.Owner,
		"height", config.Height,
		"supply", common.InitialSupply,
		"distribute", config.Distribute,
	)

	return Open(st)
}

func writeGenesis(st *storage.LevelDBBackend, config GenesisConfig, balances map[string]common.Amount) error {
	if exists, err := st.Has(MetaKey); err != nil {
		return err
	} else if exists {
		return errors.AlreadyInitialized
	}

	for address, balance := range balances {
		if err := NewAccount(address, balance).Save(st); err != nil {
			return err
		}
	}

	meta := &Meta{
		Owner:         config.Owner,
		GenesisHeight: config.Height,
		LastHeight:    config.Height,
		Params:        config.Params,
	}
	if err := meta.Save(st); err != nil {
		return err
	}
	if err := voting.NewCycle(config.Height).Save(st); err != nil {
		return err
	}
	if err := (&pool.Accounting{}).Save(st); err != nil {
		return err
	}

	return saveKeyGenerator(st, keygen.NewKeyGenerator())
}
