package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ModernExodus/tontoken/lib/network/api/resource"
	"github.com/ModernExodus/tontoken/lib/token"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetLedgerHandlerPattern       = "/"
	GetAccountsHandlerPattern     = "/accounts"
	GetAccountHandlerPattern      = "/accounts/{id}"
	GetAllowanceHandlerPattern    = "/accounts/{id}/allowances/{spender}"
	GetVotingHandlerPattern       = "/voting"
	GetCandidatesHandlerPattern   = "/voting/candidates"
	GetCandidateHandlerPattern    = "/voting/candidates/{id}"
	GetVotingEventsHandlerPattern = "/voting/events"
	GetPoolHandlerPattern         = "/pool"
	PostOperationHandlerPattern   = "/operations"
)

// NetworkHandlerAPI serves the queries of the ledger and applies the signed
// operations.
type NetworkHandlerAPI struct {
	token     *token.Token
	urlPrefix string
	version   string
}

func NewNetworkHandlerAPI(tk *token.Token, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		token:     tk,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// Routes registers the handlers to router.
func (api NetworkHandlerAPI) Routes(router *mux.Router) {
	handlers := []struct {
		pattern string
		handler func(w http.ResponseWriter, r *http.Request)
		method  string
	}{
		{GetLedgerHandlerPattern, api.GetLedgerHandler, "GET"},
		{GetAccountsHandlerPattern, api.GetAccountsHandler, "GET"},
		{GetAccountHandlerPattern, api.GetAccountHandler, "GET"},
		{GetAllowanceHandlerPattern, api.GetAllowanceHandler, "GET"},
		{GetVotingHandlerPattern, api.GetVotingHandler, "GET"},
		{GetCandidatesHandlerPattern, api.GetCandidatesHandler, "GET"},
		{GetCandidateHandlerPattern, api.GetCandidateHandler, "GET"},
		{GetVotingEventsHandlerPattern, api.GetVotingEventsHandler, "GET"},
		{GetPoolHandlerPattern, api.GetPoolHandler, "GET"},
		{PostOperationHandlerPattern, api.PostOperationHandler, "POST"},
	}

	for _, h := range handlers {
		router.HandleFunc(api.HandlerURLPattern(h.pattern), h.handler).Methods(h.method)
	}
}

// DefaultURLPrefix makes the handler urls match the links of the resources.
const DefaultURLPrefix = resource.APIPrefix
