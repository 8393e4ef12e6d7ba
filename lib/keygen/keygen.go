// Package keygen generates deterministic 32 byte identifiers from an input
// and a salt. Changing the salt moves every input onto a new identifier.
package keygen

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ModernExodus/tontoken/lib/common"
)

const KeyLength = 32

const (
	kindString uint8 = iota
	kindUint64
)

var initialSalt = []byte("tontoken")

type Key [KeyLength]byte

func (k Key) String() string {
	return base58.Encode(k[:])
}

func (k Key) IsZero() bool {
	return k == Key{}
}

func (k Key) MarshalJSON() ([]byte, error) {
	return common.EncodeJSONValue(k.String())
}

func (k *Key) UnmarshalJSON(b []byte) error {
	var s string
	if err := common.DecodeJSONValue(b, &s); err != nil {
		return err
	}

	decoded := base58.Decode(s)
	if len(decoded) != KeyLength {
		*k = Key{}
		return nil
	}
	copy(k[:], decoded)

	return nil
}

// KeyGenerator holds the salt register. The zero value is not usable, use
// `NewKeyGenerator`.
type KeyGenerator struct {
	Salt       []byte `json:"salt"`
	Generation uint64 `json:"generation"`
}

func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{Salt: common.Keccak256(initialSalt)}
}

type keyInput struct {
	Kind  uint8
	Input []byte
	Salt  []byte
}

func (g *KeyGenerator) generate(kind uint8, input []byte) (key Key) {
	encoded, err := rlp.EncodeToBytes(keyInput{Kind: kind, Input: input, Salt: g.Salt})
	if err != nil {
		// rlp never fails on byte slices and small integers
		panic(err)
	}
	copy(key[:], common.Keccak256(encoded))

	return
}

func (g *KeyGenerator) GenerateKey(input string) Key {
	return g.generate(kindString, []byte(input))
}

func (g *KeyGenerator) GenerateKeyFromUint64(input uint64) Key {
	encoded, err := rlp.EncodeToBytes(input)
	if err != nil {
		panic(err)
	}
	return g.generate(kindUint64, encoded)
}

// ChangeSalt chains the next salt from the current one and the block height
// at which it changes.
func (g *KeyGenerator) ChangeSalt(height uint64) {
	encoded, err := rlp.EncodeToBytes([]interface{}{g.Salt, g.Generation, height})
	if err != nil {
		panic(err)
	}

	g.Salt = common.Keccak256(encoded)
	g.Generation++

	log.Debug("salt changed", "generation", g.Generation, "height", height)
}
