package common

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/errors"
)

var (
	maximumBalance    = uint64(MaximumBalance)
	maximumBalanceStr = strconv.FormatUint(maximumBalance, 10)
)

func TestAmount_Invariant(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("exceeds max allowable amount value.")
		}
	}()

	amount := Amount(maximumBalance + 1)
	amount.Invariant()
}

func TestAmount_Mult(t *testing.T) {
	require.Equal(t, Amount(5000), Amount(100).MustMult(50))

	val, err := Amount(100).MultUint64(50)
	require.NoError(t, err)
	require.Equal(t, Amount(5000), val)

	// Test `MustMult` + overflow failure
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Expected `panic` did not happen")
			}
		}()
		_ = MaximumBalance.MustMult(2)
		t.Error("Unreachable code")
	}()
}

func TestAmount_AddSub(t *testing.T) {
	v, err := Amount(500).Add(7)
	require.NoError(t, err)
	require.Equal(t, Amount(507), v)

	_, err = MaximumBalance.Add(1)
	require.True(t, errors.Is(err, errors.MaximumBalanceReached))

	v, err = Amount(500).Sub(500)
	require.NoError(t, err)
	require.Equal(t, Amount(0), v)

	_, err = Amount(500).Sub(501)
	require.True(t, errors.Is(err, errors.AccountBalanceUnderZero))
}

func TestAmount_Uint64OutOfRange(t *testing.T) {
	amount, err := AmountFromString(maximumBalanceStr)
	require.NoError(t, err)
	require.Equal(t, maximumBalanceStr, amount.String())

	_, err = AmountFromString(strconv.FormatUint(maximumBalance+1, 10))
	require.Error(t, err)

	_, err = AmountFromString("-1")
	require.Error(t, err)
}

func TestAmount_JSON(t *testing.T) {
	b, err := json.Marshal(Amount(999999999500))
	require.NoError(t, err)
	require.Equal(t, `"999999999500"`, string(b))

	var a Amount
	require.NoError(t, json.Unmarshal(b, &a))
	require.Equal(t, Amount(999999999500), a)

	require.Error(t, json.Unmarshal([]byte(`12`), &a))
}

func TestAmount_Tontokens(t *testing.T) {
	require.Equal(t, "1000000", InitialSupply.Tontokens())
	require.Equal(t, "0.0005", Amount(500).Tontokens())
	require.Equal(t, "50000", Tontokens(50000).Tontokens())
	require.Equal(t, "1.000001", Amount(1000001).Tontokens())
	require.Equal(t, Amount(1000000000000), InitialSupply)
}
