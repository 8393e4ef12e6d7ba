package api

import (
	"encoding/json"
	"errors"
	"net/http"

	observable "github.com/GianlucaGuarini/go-observable"

	"github.com/ModernExodus/tontoken/lib/metrics"
	"github.com/ModernExodus/tontoken/lib/network/httputils"
)

const DefaultContentType = "application/json"

// RenderFunc renders one streamed value. Nil output writes an empty line.
type RenderFunc func(v interface{}) ([]byte, error)

func renderJSON(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	if h, ok := v.(httputils.HALResource); ok {
		v = h.Resource()
	}
	return json.Marshal(v)
}

// EventStream writes the values triggered on an observable to a chunked
// response, one json document per line.
type EventStream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	render  RenderFunc
}

// NewEventStream fails when w can not flush; nil render writes the values as
// json.
func NewEventStream(w http.ResponseWriter, r *http.Request, render RenderFunc) (*EventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("http: response writer can not flush")
	}
	if render == nil {
		render = renderJSON
	}

	return &EventStream{w: w, r: r, flusher: flusher, render: render}, nil
}

func (s *EventStream) write(v interface{}) {
	b, err := s.render(v)
	if err != nil {
		b, _ = json.Marshal(httputils.NewErrorProblem(err, httputils.StatusCode(err)))
	}

	s.w.Write(append(b, '\n'))
	s.flusher.Flush()
}

// Stream writes first, then every value triggered on event until the request
// is done. The handler is registered before first is written, so nothing
// triggered in between is lost.
func (s *EventStream) Stream(ob *observable.Observable, event string, first interface{}) {
	values := make(chan interface{})
	done := s.r.Context().Done()

	onFunc := func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		select {
		case values <- args[len(args)-1]:
		case <-done:
		}
	}
	ob.On(event, onFunc)
	defer ob.Off(event, onFunc)

	metrics.API.StreamOpened()
	defer metrics.API.StreamClosed()

	s.w.Header().Set("Content-Type", DefaultContentType)
	s.write(first)

	for {
		select {
		case v := <-values:
			s.write(v)
		case <-done:
			return
		}
	}
}
