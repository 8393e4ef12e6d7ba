package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// AccountObserver is triggered with `saved address-<address>` after an
// account record is committed.
var AccountObserver = observable.New()

// VotingObserver is triggered with the event type, eg. `VotingInactive`, and
// with `all` for every voting event.
var VotingObserver = observable.New()

const (
	ResourceAccount  = "ac"
	ResourceVoting   = "vt"
	ConditionAll     = "*"
	ConditionType    = "type"
	ConditionAddress = "address"
)

const EventAll = "all"

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Event) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "="
		toStr += e.Id
	}
	return toStr
}

// AccountSavedEvent is the event name an account update is triggered with.
// The observable splits it by space, so subscribers listen on `saved` for
// every account or on `AccountAddressEvent(address)` for one.
func AccountSavedEvent(address string) string {
	return "saved " + AccountAddressEvent(address)
}

func AccountAddressEvent(address string) string {
	return "address-" + address
}
