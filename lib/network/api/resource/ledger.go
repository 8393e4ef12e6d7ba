package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/version"
)

// Ledger describes the token and its last observed height.
type Ledger struct {
	Name       string
	Symbol     string
	Decimals   uint8
	Owner      string
	LastHeight uint64
}

func (l Ledger) GetMap() hal.Entry {
	return hal.Entry{
		"name":        l.Name,
		"symbol":      l.Symbol,
		"decimals":    l.Decimals,
		"owner":       l.Owner,
		"last_height": l.LastHeight,
		"version":     version.Version,
	}
}

func (l Ledger) Resource() *hal.Resource {
	r := hal.NewResource(l, l.LinkSelf())
	r.AddLink("accounts", hal.NewLink(URLAccounts+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("account", hal.NewLink(URLAccount, hal.LinkAttr{"templated": true}))
	r.AddLink("voting", hal.NewLink(URLVoting))
	r.AddLink("pool", hal.NewLink(URLPool))
	r.AddLink("operations", hal.NewLink(URLOperations))
	return r
}

func (l Ledger) LinkSelf() string {
	return URLLedger
}

// Pool is the balance of the reserved pool account with the lifetime
// counters.
type Pool struct {
	Balance      common.Amount
	TotalMatched common.Amount
	TotalDonated common.Amount
	TotalSupply  common.Amount
}

func (p Pool) GetMap() hal.Entry {
	return hal.Entry{
		"address":       common.PoolAddress,
		"balance":       p.Balance,
		"total_matched": p.TotalMatched,
		"total_donated": p.TotalDonated,
		"total_supply":  p.TotalSupply,
	}
}

func (p Pool) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("account", hal.NewLink(strings.Replace(URLAccount, "{id}", common.PoolAddress, -1)))
	return r
}

func (p Pool) LinkSelf() string {
	return URLPool
}
