package token

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stellar/go/keypair"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/voting"
)

const AppliedPrefix = "tt-applied-"

func GetAppliedKey(hash string) string {
	return fmt.Sprintf("%s%s", AppliedPrefix, hash)
}

type OperationType string

const (
	OperationTransfer      OperationType = "transfer"
	OperationApprove       OperationType = "approve"
	OperationTransferFrom  OperationType = "transfer-from"
	OperationDonate        OperationType = "donate"
	OperationPropose       OperationType = "propose"
	OperationVote          OperationType = "vote"
	OperationDelegate      OperationType = "delegate"
	OperationDischarge     OperationType = "discharge"
	OperationDelegatedVote OperationType = "delegated-vote"
)

// Operation is one ledger call as data, so it can be signed by the sender
// and applied by the process holding the ledger.
//
// Target is the recipient, spender, candidate or delegate of the operation;
// Source is the owner of `transfer-from` and the delegator of
// `delegated-vote`. Nonce tells apart otherwise equal operations.
type Operation struct {
	Type        OperationType `json:"type"`
	Sender      string        `json:"sender"`
	Height      uint64        `json:"height"`
	Target      string        `json:"target,omitempty"`
	Source      string        `json:"source,omitempty"`
	Amount      common.Amount `json:"amount"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Website     string        `json:"website,omitempty"`
	Nonce       string        `json:"nonce"`
}

// Hash is the base58 keccak256 of the rlp encoded operation.
func (o Operation) Hash() string {
	hash, err := common.MakeObjectHashString(o)
	if err != nil {
		// rlp never fails on strings and unsigned integers
		panic(err)
	}
	return hash
}

// SignedOperation is an operation signed by the keypair of its sender.
type SignedOperation struct {
	Operation Operation `json:"operation"`
	Hash      string    `json:"hash"`
	Signature string    `json:"signature"`
}

func signingPayload(networkID []byte, hash string) []byte {
	return append(append([]byte{}, networkID...), []byte(hash)...)
}

// Sign signs o for the ledger of networkID; kp must be the keypair of the
// sender.
func Sign(o Operation, kp *keypair.Full, networkID []byte) (SignedOperation, error) {
	if kp.Address() != o.Sender {
		return SignedOperation{}, errors.InvalidSignature.With("sender", o.Sender)
	}

	hash := o.Hash()
	signature, err := kp.Sign(signingPayload(networkID, hash))
	if err != nil {
		return SignedOperation{}, err
	}

	return SignedOperation{Operation: o, Hash: hash, Signature: base58.Encode(signature)}, nil
}

// Verify checks the hash and the signature of the sender.
func (s SignedOperation) Verify(networkID []byte) error {
	if err := common.CheckAccountAddress(s.Operation.Sender); err != nil {
		return err
	}
	if s.Hash != s.Operation.Hash() {
		return errors.InvalidSignature.With("hash", s.Hash)
	}

	kp, err := keypair.Parse(s.Operation.Sender)
	if err != nil {
		return errors.InvalidAddress.With("address", s.Operation.Sender)
	}
	if err := kp.Verify(signingPayload(networkID, s.Hash), base58.Decode(s.Signature)); err != nil {
		return errors.InvalidSignature.With("hash", s.Hash)
	}

	return nil
}

// NetworkIDOf binds the signatures to the ledger of owner.
func NetworkIDOf(owner string) []byte {
	return []byte(Name + ":" + owner)
}

func (t *Token) NetworkID() []byte {
	return NetworkIDOf(t.owner)
}

// Apply executes o as its sender; a non empty hash is applied at most once.
func (t *Token) Apply(o Operation, hash string) ([]voting.Event, error) {
	ctx := Context{Sender: o.Sender, Height: o.Height, Hash: hash}

	switch o.Type {
	case OperationTransfer:
		return t.Transfer(ctx, o.Target, o.Amount)
	case OperationApprove:
		return t.Approve(ctx, o.Target, o.Amount)
	case OperationTransferFrom:
		return t.TransferFrom(ctx, o.Source, o.Target, o.Amount)
	case OperationDonate:
		return t.Donate(ctx, o.Amount)
	case OperationPropose:
		if len(o.Name) < 1 && len(o.Description) < 1 && len(o.Website) < 1 {
			return t.ProposeCandidate(ctx, o.Target)
		}
		return t.ProposeCandidateWithMetadata(ctx, o.Target, o.Name, o.Description, o.Website)
	case OperationVote:
		return t.EnterVote(ctx, o.Target)
	case OperationDelegate:
		return t.DelegateVoter(ctx, o.Target)
	case OperationDischarge:
		return t.DischargeDelegatedVoter(ctx)
	case OperationDelegatedVote:
		return t.EnterDelegatedVote(ctx, o.Source, o.Target)
	}

	return nil, errors.InvalidOperation.With("type", string(o.Type))
}

// ApplySigned verifies s and applies its operation once.
func (t *Token) ApplySigned(s SignedOperation) ([]voting.Event, error) {
	if err := s.Verify(t.NetworkID()); err != nil {
		return nil, err
	}
	return t.Apply(s.Operation, s.Hash)
}
