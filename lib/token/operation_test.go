package token

import (
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/voting"
)

func newSender(t *testing.T) *keypair.Full {
	kp, err := keypair.Random()
	require.NoError(t, err)
	return kp
}

func TestSignedOperationAppliedOnce(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	defer tk.Storage().Close()

	sender := newSender(t)
	recipient := newAddress()

	op := Operation{
		Type:   OperationTransfer,
		Sender: sender.Address(),
		Height: 1,
		Target: recipient,
		Amount: common.Tontokens(3),
		Nonce:  "a",
	}
	signed, err := Sign(op, sender, tk.NetworkID())
	require.NoError(t, err)
	require.Equal(t, op.Hash(), signed.Hash)

	// a rejected operation is not marked as applied
	_, err = tk.ApplySigned(signed)
	require.True(t, errors.Is(err, errors.InsufficientBalance))

	_, err = tk.Transfer(NewContext(owner, 1), sender.Address(), common.Tontokens(10))
	require.NoError(t, err)

	_, err = tk.ApplySigned(signed)
	require.NoError(t, err)
	requireBalance(t, tk, recipient, common.Tontokens(3))

	_, err = tk.ApplySigned(signed)
	require.True(t, errors.Is(err, errors.AlreadyApplied))
	requireBalance(t, tk, recipient, common.Tontokens(3))
	requireBalance(t, tk, sender.Address(), common.Tontokens(7))

	// same operation with another nonce
	op.Nonce = "b"
	signed, err = Sign(op, sender, tk.NetworkID())
	require.NoError(t, err)
	_, err = tk.ApplySigned(signed)
	require.NoError(t, err)
	requireBalance(t, tk, recipient, common.Tontokens(6))
}

func TestSignedOperationVerify(t *testing.T) {
	tk, _ := newTestToken(t, voting.DefaultParams())
	defer tk.Storage().Close()

	sender := newSender(t)
	op := Operation{Type: OperationDonate, Sender: sender.Address(), Height: 1, Amount: 1}

	_, err := Sign(op, newSender(t), tk.NetworkID())
	require.True(t, errors.Is(err, errors.InvalidSignature))

	signed, err := Sign(op, sender, tk.NetworkID())
	require.NoError(t, err)
	require.NoError(t, signed.Verify(tk.NetworkID()))

	// signed for the ledger of another owner
	require.True(t, errors.Is(signed.Verify(NetworkIDOf(newAddress())), errors.InvalidSignature))

	{
		tampered := signed
		tampered.Operation.Amount = common.Tontokens(1)
		require.True(t, errors.Is(tampered.Verify(tk.NetworkID()), errors.InvalidSignature))
	}
	{
		tampered := signed
		tampered.Operation.Amount = common.Tontokens(1)
		tampered.Hash = tampered.Operation.Hash()
		require.True(t, errors.Is(tampered.Verify(tk.NetworkID()), errors.InvalidSignature))
	}
	{
		tampered := signed
		tampered.Operation.Sender = "GABC"
		require.True(t, errors.Is(tampered.Verify(tk.NetworkID()), errors.InvalidAddress))
	}
	{
		tampered := signed
		tampered.Signature = ""
		_, err := tk.ApplySigned(tampered)
		require.True(t, errors.Is(err, errors.InvalidSignature))
	}
}

func TestApplyOperations(t *testing.T) {
	tk, owner := newTestToken(t, voting.DefaultParams())
	defer tk.Storage().Close()

	spender := newAddress()
	recipient := newAddress()

	_, err := tk.Apply(Operation{Type: OperationApprove, Sender: owner, Height: 1, Target: spender, Amount: common.Tontokens(5)}, "")
	require.NoError(t, err)

	allowance, err := tk.Allowance(owner, spender)
	require.NoError(t, err)
	require.Equal(t, common.Tontokens(5), allowance)

	_, err = tk.Apply(Operation{Type: OperationTransferFrom, Sender: spender, Height: 1, Source: owner, Target: recipient, Amount: common.Tontokens(2)}, "")
	require.NoError(t, err)
	requireBalance(t, tk, recipient, common.Tontokens(2))

	_, err = tk.Apply(Operation{Type: OperationDonate, Sender: recipient, Height: 1, Amount: common.Tontokens(64)}, "")
	require.NoError(t, err)
	donated, err := tk.TotalDonated()
	require.NoError(t, err)
	require.Equal(t, common.Tontokens(64), donated)

	_, err = tk.Apply(Operation{Type: OperationDelegate, Sender: recipient, Height: 1, Target: spender}, "")
	require.NoError(t, err)
	d, err := tk.GetDelegate(recipient)
	require.NoError(t, err)
	require.Equal(t, spender, d)

	_, err = tk.Apply(Operation{Type: OperationDischarge, Sender: recipient, Height: 1}, "")
	require.NoError(t, err)
	d, err = tk.GetDelegate(recipient)
	require.NoError(t, err)
	require.Equal(t, "", d)

	_, err = tk.Apply(Operation{Type: "mint", Sender: owner, Height: 1}, "")
	require.True(t, errors.Is(err, errors.InvalidOperation))
}
