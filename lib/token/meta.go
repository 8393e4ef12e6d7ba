package token

import (
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/keygen"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/voting"
)

const (
	MetaKey   = "tt-meta"
	KeygenKey = "tt-keygen"
)

// Meta is written once at genesis; only LastHeight moves afterwards.
type Meta struct {
	Owner         string        `json:"owner"`
	GenesisHeight uint64        `json:"genesis_height"`
	LastHeight    uint64        `json:"last_height"`
	Params        voting.Params `json:"params"`
}

func (m *Meta) Save(st *storage.LevelDBBackend) error {
	return st.Save(MetaKey, m)
}

func GetMeta(st *storage.LevelDBBackend) (*Meta, error) {
	m := &Meta{}
	if err := st.Get(MetaKey, m); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return nil, errors.NotInitialized
		}
		return nil, err
	}

	return m, nil
}

func GetKeyGenerator(st *storage.LevelDBBackend) (*keygen.KeyGenerator, error) {
	g := &keygen.KeyGenerator{}
	if err := st.Get(KeygenKey, g); err != nil {
		return nil, err
	}

	return g, nil
}

func saveKeyGenerator(st *storage.LevelDBBackend, g *keygen.KeyGenerator) error {
	return st.Save(KeygenKey, g)
}
