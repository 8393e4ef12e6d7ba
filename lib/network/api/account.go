package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/common/observer"
	"github.com/ModernExodus/tontoken/lib/network/api/resource"
	"github.com/ModernExodus/tontoken/lib/network/httputils"
	"github.com/ModernExodus/tontoken/lib/token"
)

func (api NetworkHandlerAPI) accountResource(a *token.Account) (*resource.Account, error) {
	locked, err := api.token.GetLockedBorks(a.Address)
	if err != nil {
		return nil, err
	}
	return resource.NewAccount(a, locked), nil
}

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	readFunc := func() (payload interface{}, err error) {
		if err = common.CheckAddress(address); err != nil {
			return nil, err
		}
		a, err := api.token.GetAccount(address)
		if err != nil {
			return nil, err
		}
		return api.accountResource(a)
	}

	if httputils.IsEventStream(r) {
		payload, err := readFunc()
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}

		es, err := NewEventStream(w, r, func(v interface{}) ([]byte, error) {
			if a, ok := v.(*token.Account); ok {
				ra, err := api.accountResource(a)
				if err != nil {
					return nil, err
				}
				v = ra
			}
			return renderJSON(v)
		})
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		es.Stream(observer.AccountObserver, observer.AccountAddressEvent(address), payload)
		return
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}

func (api NetworkHandlerAPI) GetAccountsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	accounts := api.token.AccountsPage(p.Cursor(), p.Reverse(), p.Limit())

	var rs []resource.APIResource
	for _, a := range accounts {
		ra, err := api.accountResource(a)
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		rs = append(rs, ra)
	}

	list := resource.ResourceList{
		Resources: rs,
		SelfLink:  p.SelfLink(),
	}
	if len(accounts) > 0 {
		list.PrevLink = p.PrevLink(accounts[0].Address)
		list.NextLink = p.NextLink(accounts[len(accounts)-1].Address)
	}

	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetAllowanceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner, spender := vars["id"], vars["spender"]

	readFunc := func() (payload interface{}, err error) {
		if err = common.CheckAddress(owner); err != nil {
			return nil, err
		}
		if err = common.CheckAddress(spender); err != nil {
			return nil, err
		}
		amount, err := api.token.Allowance(owner, spender)
		if err != nil {
			return nil, err
		}
		return resource.NewAllowance(&token.Allowance{Owner: owner, Spender: spender, Amount: amount}), nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
