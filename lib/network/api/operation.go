package api

import (
	"encoding/json"
	"net/http"

	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/network/httputils"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

// MaxOperationBodySize limits the body of a submitted operation.
const MaxOperationBodySize = 16 * 1024

// AppliedOperation is the response of an operation applied to the ledger.
type AppliedOperation struct {
	Hash      string          `json:"hash"`
	Operation token.Operation `json:"operation"`
	Events    []voting.Event  `json:"events"`
}

// PostOperationHandler applies a signed operation. The ledger updates are
// triggered on the same observables the streams listen to.
func (api NetworkHandlerAPI) PostOperationHandler(w http.ResponseWriter, r *http.Request) {
	var signed token.SignedOperation

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxOperationBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&signed); err != nil {
		httputils.WriteJSONError(w, errors.InvalidOperation.With("error", err.Error()))
		return
	}

	events, err := api.token.ApplySigned(signed)
	if err != nil {
		log.Debug("operation rejected", "hash", signed.Hash, "error", err)
		httputils.WriteJSONError(w, err)
		return
	}
	if events == nil {
		events = []voting.Event{}
	}

	log.Debug("operation applied", "hash", signed.Hash, "type", signed.Operation.Type)
	httputils.MustWriteJSON(w, 200, AppliedOperation{
		Hash:      signed.Hash,
		Operation: signed.Operation,
		Events:    events,
	})
}
