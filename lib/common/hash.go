package common

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"
)

func Keccak256(b []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return h.Sum(nil)
}

// MakeObjectHash hashes the rlp encoding of i.
func MakeObjectHash(i interface{}) ([]byte, error) {
	encoded, err := rlp.EncodeToBytes(i)
	if err != nil {
		return nil, err
	}
	return Keccak256(encoded), nil
}

func MakeObjectHashString(i interface{}) (string, error) {
	b, err := MakeObjectHash(i)
	if err != nil {
		return "", err
	}
	return base58.Encode(b), nil
}
