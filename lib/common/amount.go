// Define the `Amount` type, which is the monetary type used accross the code base
//
// One Tontoken accounts for 1,000,000 borks, the smallest indivisible unit.
// In addition to the `Amount` type, some member functions are defined:
//   - `Add` / `Sub` do an addition / substraction and return an error object
//   - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a `panic`.
//     Those are provided for testing / quick prototyping and should not be in production code.
//   - Invariant `panic`s if the instance it's called on violates its invariant (see Contract programming)
package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ModernExodus/tontoken/lib/errors"
)

const (
	// 1,000,000 borks == 1 Tontoken
	BorksPerTontoken Amount = 1000000
	// Number of decimal digits between a bork and a Tontoken
	Decimals uint8 = 6
	// Supply credited at genesis, 1,000,000 Tontoken
	InitialSupply Amount = 1000000 * BorksPerTontoken
	// The maximum possible balance of any account, including the pool.
	// Pool matching mints new borks, so this is far above `InitialSupply`.
	MaximumBalance Amount = 1000000000000 * BorksPerTontoken
	// An invalid valid, used to make an instance unusable
	invalidValue = Amount(MaximumBalance + 1)
)

// Amount is counted in borks
type Amount uint64

// Check this type's invariant, that is, its value is <= MaximumBalance
func (a Amount) Invariant() {
	if a > MaximumBalance {
		// `uint64` is necessary to avoid a recursive call to `String`
		panic(fmt.Errorf("Amount '%d' is higher than the maximum balance (%d)", uint64(a), uint64(MaximumBalance)))
	}
}

// Stringer interface implementation
func (a Amount) String() string {
	a.Invariant()
	return strconv.FormatUint(uint64(a), 10)
}

// Tontokens formats the amount in display units, eg. "1234.000567"
func (a Amount) Tontokens() string {
	a.Invariant()
	whole := uint64(a / BorksPerTontoken)
	frac := uint64(a % BorksPerTontoken)
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}

	s := fmt.Sprintf("%d.%06d", whole, frac)
	return strings.TrimRight(s, "0")
}

// Add an `Amount` to this `Amount`
//
// If the resulting value would overflow MaximumBalance, an error is returned,
// along with the value (which would trigger a `panic` if used).
func (a Amount) Add(added Amount) (n Amount, err error) {
	a.Invariant()
	added.Invariant()
	if n = a + added; n > MaximumBalance {
		err = errors.MaximumBalanceReached
	}
	return
}

// Counterpart of `Add` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustAdd(added Amount) Amount {
	if v, err := a.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

// Substract an `Amount` to this `Amount`
//
// If the resulting value would underflow, an error is returned,
// along with an invalid value (which would trigger a `panic` if used).
func (a Amount) Sub(sub Amount) (Amount, error) {
	a.Invariant()
	sub.Invariant()
	if a < sub {
		return invalidValue, errors.AccountBalanceUnderZero
	}
	return a - sub, nil
}

// Counterpart of `Sub` which panic instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustSub(sub Amount) Amount {
	if v, err := a.Sub(sub); err != nil {
		panic(err)
	} else {
		return v
	}
}

// Add this `Amount` to itself, `n` times
//
// If the resulting value would overflow MaximumBalance, an error is returned,
// along with an invalid value.
func (a Amount) MultUint64(n uint64) (Amount, error) {
	if n == 0 {
		return Amount(0), nil
	}

	a.Invariant()
	if uint64(MaximumBalance)/n < uint64(a) {
		return invalidValue, errors.MaximumBalanceReached
	}

	return Amount(uint64(a) * n), nil
}

// Counterpart of `MultUint64` which panic instead of returning an error
func (a Amount) MustMult(n uint64) Amount {
	if v, err := a.MultUint64(n); err != nil {
		panic(err)
	} else {
		return v
	}
}

// Min returns the smaller of both amounts
func (a Amount) Min(b Amount) Amount {
	if a < b {
		return a
	}
	return b
}

// Implement JSON's Marshaler interface
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

// Implement JSON's Unmarshaler interface
// If Unmarshalling errors, `a` will have an `invalidValue`
func (a *Amount) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		*a = invalidValue
		return errors.InvalidAmount
	}
	*a, err = AmountFromString(string(b[1 : len(b)-1]))
	return
}

// Parse an `Amount` from a string input
//
// Params:
//
//	str = a string consisting only of numbers, expressing an amount in borks
//
// Returns:
//
//	A valid `Amount` and a `nil` error, or an invalid amount and an `error`
func AmountFromString(str string) (Amount, error) {
	value, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return invalidValue, err
	}
	if Amount(value) > MaximumBalance {
		return invalidValue, errors.MaximumBalanceReached
	}
	return Amount(value), nil
}

// Same as AmountFromString, except it `panic`s if an error happens
func MustAmountFromString(str string) Amount {
	if value, err := AmountFromString(str); err != nil {
		panic(err)
	} else {
		return value
	}
}

// Tontokens converts display units to borks
func Tontokens(n uint64) Amount {
	return BorksPerTontoken.MustMult(n)
}
