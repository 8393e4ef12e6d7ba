package common

import (
	"github.com/stellar/go/keypair"

	"github.com/ModernExodus/tontoken/lib/errors"
)

// PoolPassphrase seeds the reserved account which holds the pool
const PoolPassphrase = "Tontoken bork pool"

// PoolAddress is the ledger's own account. Matching contributions and
// donations are credited to it and the voting winner is paid from it.
var PoolAddress = keypair.Master(PoolPassphrase).Address()

// IsValidAddress checks that address is a public account address, not a seed.
func IsValidAddress(address string) bool {
	kp, err := keypair.Parse(address)
	if err != nil {
		return false
	}
	_, ok := kp.(*keypair.FromAddress)
	return ok
}

func CheckAddress(address string) error {
	if !IsValidAddress(address) {
		return errors.InvalidAddress.With("address", address)
	}
	return nil
}

// CheckAccountAddress is `CheckAddress` which also refuses the pool address.
func CheckAccountAddress(address string) error {
	if err := CheckAddress(address); err != nil {
		return err
	}
	if address == PoolAddress {
		return errors.ReservedAddress.With("address", address)
	}
	return nil
}
