package api

import (
	"net/http"

	"github.com/ModernExodus/tontoken/lib/network/api/resource"
	"github.com/ModernExodus/tontoken/lib/network/httputils"
	"github.com/ModernExodus/tontoken/lib/token"
)

func (api NetworkHandlerAPI) GetLedgerHandler(w http.ResponseWriter, r *http.Request) {
	height, err := api.token.LastHeight()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.Ledger{
		Name:       token.Name,
		Symbol:     token.Symbol,
		Decimals:   token.Decimals,
		Owner:      api.token.Owner(),
		LastHeight: height,
	})
}

func (api NetworkHandlerAPI) GetPoolHandler(w http.ResponseWriter, r *http.Request) {
	readFunc := func() (payload interface{}, err error) {
		var p resource.Pool
		if p.Balance, err = api.token.Pool(); err != nil {
			return
		}
		if p.TotalMatched, err = api.token.TotalMatched(); err != nil {
			return
		}
		if p.TotalDonated, err = api.token.TotalDonated(); err != nil {
			return
		}
		if p.TotalSupply, err = api.token.TotalSupply(); err != nil {
			return
		}
		return p, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
