package token

import (
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/pool"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/voting"
)

func newAddress() string {
	kp, err := keypair.Random()
	if err != nil {
		panic(err)
	}
	return kp.Address()
}

func newTestToken(t *testing.T, params voting.Params) (*Token, string) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.NoError(t, err)

	owner := newAddress()
	tk, err := Genesis(st, GenesisConfig{Owner: owner, Params: params})
	require.NoError(t, err)

	return tk, owner
}

// fund transfers tontokens from owner to a new account at height 1.
func fund(t *testing.T, tk *Token, owner string, tontokens uint64) string {
	address := newAddress()
	_, err := tk.Transfer(NewContext(owner, 1), address, common.Tontokens(tontokens))
	require.NoError(t, err)

	return address
}

func requireBalance(t *testing.T, tk *Token, address string, expected common.Amount) {
	balance, err := tk.BalanceOf(address)
	require.NoError(t, err)
	require.Equal(t, expected, balance, "address=%s", address)
}

func requirePool(t *testing.T, tk *Token, expected common.Amount) {
	p, err := tk.Pool()
	require.NoError(t, err)
	require.Equal(t, expected, p)
}

func requireLocked(t *testing.T, tk *Token, address string, expected common.Amount) {
	locked, err := tk.GetLockedBorks(address)
	require.NoError(t, err)
	require.Equal(t, expected, locked, "address=%s", address)
}

func requireStatus(t *testing.T, tk *Token, expected voting.Status) {
	status, err := tk.GetVotingStatus()
	require.NoError(t, err)
	require.Equal(t, expected, status)
}

func TestMetadata(t *testing.T) {
	require.Equal(t, "Tontoken", Name)
	require.Equal(t, "TONT", Symbol)
	require.Equal(t, uint8(6), Decimals)
}

func TestEndToEndScenario(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	account1, account2, account6 := newAddress(), newAddress(), newAddress()

	requireBalance(t, tk, owner, 1000000000000)

	_, err := tk.Transfer(NewContext(owner, 1), account1, 500)
	require.NoError(t, err)
	requireBalance(t, tk, account1, 500)
	requireBalance(t, tk, owner, 999999999500)
	requirePool(t, tk, 7)

	_, err = tk.Approve(NewContext(owner, 1), account2, 100)
	require.NoError(t, err)
	allowance, err := tk.Allowance(owner, account2)
	require.NoError(t, err)
	require.Equal(t, common.Amount(100), allowance)

	_, err = tk.TransferFrom(NewContext(account2, 1), owner, account6, 95)
	require.NoError(t, err)
	allowance, err = tk.Allowance(owner, account2)
	require.NoError(t, err)
	require.Equal(t, common.Amount(5), allowance)
	requireBalance(t, tk, account6, 95)
	requireBalance(t, tk, owner, 999999999405)
	requirePool(t, tk, 8)

	_, err = tk.TransferFrom(NewContext(account2, 1), owner, account6, 6)
	require.True(t, errors.Is(err, errors.InsufficientAllowance))
	requireBalance(t, tk, account6, 95)
}

func TestTransferValidation(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	account := fund(t, tk, owner, 1)

	_, err := tk.Transfer(NewContext(account, 1), owner, common.Tontokens(2))
	require.True(t, errors.Is(err, errors.InsufficientBalance))
	require.True(t, errors.IsValidation(err))

	_, err = tk.Transfer(NewContext(account, 1), "showme", 1)
	require.True(t, errors.Is(err, errors.InvalidAddress))

	_, err = tk.Transfer(NewContext(common.PoolAddress, 1), account, 1)
	require.True(t, errors.Is(err, errors.ReservedAddress))

	_, err = tk.Transfer(NewContext(account, 1), owner, common.MaximumBalance+1)
	require.True(t, errors.Is(err, errors.InvalidAmount))
	require.NotPanics(t, func() {
		require.Contains(t, err.Error(), "1000000000000000001")
	})

	// a zero transfer still mints the minimum match
	before, _ := tk.Pool()
	_, err = tk.Transfer(NewContext(account, 1), owner, 0)
	require.NoError(t, err)
	requirePool(t, tk, before+1)

	// the pool can be paid directly
	_, err = tk.Transfer(NewContext(account, 1), common.PoolAddress, 100)
	require.NoError(t, err)
	requirePool(t, tk, before+1+100+1)
}

func TestDonate(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())

	_, err := tk.Donate(NewContext(owner, 1), common.Tontokens(942902))
	require.NoError(t, err)

	expected := common.Tontokens(942902) + common.Tontokens(942902)/64
	requirePool(t, tk, expected)
	requireBalance(t, tk, owner, common.InitialSupply)

	donated, err := tk.TotalDonated()
	require.NoError(t, err)
	require.Equal(t, common.Tontokens(942902), donated)

	matched, err := tk.TotalMatched()
	require.NoError(t, err)
	require.Equal(t, common.Tontokens(942902)/64, matched)

	_, err = tk.Donate(NewContext(owner, 1), 0)
	require.True(t, errors.Is(err, errors.InvalidAmount))
}

func TestTotalSupplyOverflow(t *testing.T) {
	tk, _ := newTestToken(t, voting.DefaultParams())

	accounting := &pool.Accounting{TotalMatched: common.MaximumBalance, TotalDonated: common.MaximumBalance}
	require.NoError(t, accounting.Save(tk.Storage()))

	require.NotPanics(t, func() {
		_, err := tk.TotalSupply()
		require.True(t, errors.Is(err, errors.MaximumBalanceReached))
	})
}

func TestConservation(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	accounts := []string{owner, newAddress(), newAddress(), newAddress()}

	amounts := []common.Amount{500, 0, 63, 64, 128, common.Tontokens(73242), 95, common.Tontokens(13)}
	for i, amount := range amounts {
		from := accounts[i%len(accounts)]
		to := accounts[(i+1)%len(accounts)]
		if balance, _ := tk.BalanceOf(from); balance < amount {
			from = owner
		}
		_, err := tk.Transfer(NewContext(from, uint64(i)), to, amount)
		require.NoError(t, err)

		if i%3 == 0 {
			_, err = tk.Donate(NewContext(to, uint64(i)), amount+1)
			require.NoError(t, err)
		}
	}

	var sum common.Amount
	for _, a := range tk.Accounts() {
		sum = sum.MustAdd(a.Balance)
	}

	matched, _ := tk.TotalMatched()
	donated, _ := tk.TotalDonated()
	require.Equal(t, common.InitialSupply+matched+donated, sum)

	supply, err := tk.TotalSupply()
	require.NoError(t, err)
	require.Equal(t, sum, supply)
}

func TestHeightRegression(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	account := newAddress()

	_, err := tk.Transfer(NewContext(owner, 5), account, 10)
	require.NoError(t, err)

	_, err = tk.Transfer(NewContext(owner, 4), account, 10)
	require.True(t, errors.Is(err, errors.HeightRegression))
	require.True(t, errors.IsState(err))
	requireBalance(t, tk, account, 10)

	height, err := tk.LastHeight()
	require.NoError(t, err)
	require.Equal(t, uint64(5), height)

	// the same height is fine
	_, err = tk.Transfer(NewContext(owner, 5), account, 10)
	require.NoError(t, err)
}

func TestOpen(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()

	_, err := Open(st)
	require.True(t, errors.Is(err, errors.NotInitialized))

	owner := newAddress()
	_, err = Genesis(st, GenesisConfig{Owner: owner, Height: 3, Params: voting.DefaultParams()})
	require.NoError(t, err)

	tk, err := Open(st)
	require.NoError(t, err)
	require.Equal(t, owner, tk.Owner())
	require.Equal(t, voting.DefaultParams(), tk.Params())

	last, err := tk.GetLastVotingBlock()
	require.NoError(t, err)
	require.Equal(t, uint64(3), last)

	_, err = Genesis(st, GenesisConfig{Owner: owner, Params: voting.DefaultParams()})
	require.True(t, errors.Is(err, errors.AlreadyInitialized))
}

func TestGenesisDistribute(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	owner, a, b := newAddress(), newAddress(), newAddress()

	tk, err := Genesis(st, GenesisConfig{
		Owner:      owner,
		Params:     voting.DefaultParams(),
		Distribute: true,
		Allocations: []Allocation{
			{Address: a, Amount: common.Tontokens(100000)},
			{Address: b, Amount: common.Tontokens(50000)},
		},
	})
	require.NoError(t, err)

	requireBalance(t, tk, a, common.Tontokens(100000))
	requireBalance(t, tk, b, common.Tontokens(50000))
	requireBalance(t, tk, owner, common.Tontokens(850000))
}

func TestGenesisValidation(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()

	_, err := Genesis(st, GenesisConfig{Owner: "showme", Params: voting.DefaultParams()})
	require.True(t, errors.Is(err, errors.InvalidAddress))

	_, err = Genesis(st, GenesisConfig{
		Owner:       newAddress(),
		Params:      voting.DefaultParams(),
		Distribute:  true,
		Allocations: []Allocation{{Address: newAddress(), Amount: common.InitialSupply + 1}},
	})
	require.True(t, errors.Is(err, errors.InvalidGenesis))

	params := voting.DefaultParams()
	params.ActiveWindow = 0
	_, err = Genesis(st, GenesisConfig{Owner: newAddress(), Params: params})
	require.True(t, errors.Is(err, errors.InvalidParameter))

	// nothing was written
	_, err = Open(st)
	require.True(t, errors.Is(err, errors.NotInitialized))
}
