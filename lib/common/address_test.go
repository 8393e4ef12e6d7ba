package common

import (
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/errors"
)

func TestAddressValidation(t *testing.T) {
	kp, err := keypair.Random()
	require.NoError(t, err)

	require.True(t, IsValidAddress(kp.Address()))
	require.False(t, IsValidAddress(kp.Seed()))
	require.False(t, IsValidAddress("showme"))
	require.False(t, IsValidAddress(""))

	require.NoError(t, CheckAccountAddress(kp.Address()))
	require.True(t, errors.Is(CheckAccountAddress("showme"), errors.InvalidAddress))
}

func TestPoolAddress(t *testing.T) {
	require.True(t, IsValidAddress(PoolAddress))
	require.Equal(t, keypair.Master(PoolPassphrase).Address(), PoolAddress)
	require.True(t, errors.Is(CheckAccountAddress(PoolAddress), errors.ReservedAddress))
	require.NoError(t, CheckAddress(PoolAddress))
}
