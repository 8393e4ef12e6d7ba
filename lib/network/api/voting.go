package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ModernExodus/tontoken/lib/common/observer"
	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/network/api/resource"
	"github.com/ModernExodus/tontoken/lib/network/httputils"
	"github.com/ModernExodus/tontoken/lib/voting"
)

func (api NetworkHandlerAPI) GetVotingHandler(w http.ResponseWriter, r *http.Request) {
	cycle, err := api.token.Cycle()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewVoting(cycle, api.token.Params()))
}

func (api NetworkHandlerAPI) GetCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	cycle, err := api.token.Cycle()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.APIResource
	for _, c := range cycle.Candidates {
		rs = append(rs, resource.NewCandidate(c, cycle.VotesOf(c.Recipient)))
	}

	httputils.MustWriteJSON(w, 200, resource.ResourceList{
		Resources: rs,
		SelfLink:  r.URL.String(),
	})
}

func (api NetworkHandlerAPI) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	recipient := mux.Vars(r)["id"]

	cycle, err := api.token.Cycle()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	for _, c := range cycle.Candidates {
		if c.Recipient == recipient {
			httputils.MustWriteJSON(w, 200, resource.NewCandidate(c, cycle.VotesOf(c.Recipient)))
			return
		}
	}

	httputils.WriteJSONError(w, errors.CandidateNotFound.With("recipient", recipient))
}

// GetVotingEventsHandler streams the voting events. `type` selects one
// event type, eg. `VotingInactive`.
func (api NetworkHandlerAPI) GetVotingEventsHandler(w http.ResponseWriter, r *http.Request) {
	event := observer.EventAll
	if t := r.URL.Query().Get("type"); len(t) > 0 {
		switch voting.EventType(t) {
		case voting.EventVotingPostponed, voting.EventVoteUncontested, voting.EventVotingExtended, voting.EventVotingInactive:
			event = t
		default:
			httputils.WriteJSONError(w, errors.InvalidParameter.With("type", t))
			return
		}
	}

	es, err := NewEventStream(w, r, nil)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	es.Stream(observer.VotingObserver, event, nil)
}
