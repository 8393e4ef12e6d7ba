package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/token"
)

type Account struct {
	a      *token.Account
	locked common.Amount
}

func NewAccount(a *token.Account, locked common.Amount) *Account {
	return &Account{
		a:      a,
		locked: locked,
	}
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"id":       a.a.Address,
		"address":  a.a.Address,
		"balance":  a.a.Balance,
		"locked":   a.locked,
		"delegate": a.a.Delegate,
	}
}

func (a Account) Resource() *hal.Resource {
	r := hal.NewResource(a, a.LinkSelf())
	r.AddLink("allowances", hal.NewLink(a.LinkSelf()+"/allowances/{spender}", hal.LinkAttr{"templated": true}))
	if len(a.a.Delegate) > 0 {
		r.AddLink("delegate", hal.NewLink(strings.Replace(URLAccount, "{id}", a.a.Delegate, -1)))
	}
	return r
}

func (a Account) LinkSelf() string {
	return strings.Replace(URLAccount, "{id}", a.a.Address, -1)
}

type Allowance struct {
	a *token.Allowance
}

func NewAllowance(a *token.Allowance) *Allowance {
	return &Allowance{a: a}
}

func (a Allowance) GetMap() hal.Entry {
	return hal.Entry{
		"owner":   a.a.Owner,
		"spender": a.a.Spender,
		"amount":  a.a.Amount,
	}
}

func (a Allowance) Resource() *hal.Resource {
	r := hal.NewResource(a, a.LinkSelf())
	r.AddLink("owner", hal.NewLink(strings.Replace(URLAccount, "{id}", a.a.Owner, -1)))
	r.AddLink("spender", hal.NewLink(strings.Replace(URLAccount, "{id}", a.a.Spender, -1)))
	return r
}

func (a Allowance) LinkSelf() string {
	s := strings.Replace(URLAccountAllowance, "{id}", a.a.Owner, -1)
	return strings.Replace(s, "{spender}", a.a.Spender, -1)
}
