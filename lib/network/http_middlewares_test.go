package network

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/generic"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/errors"
	"github.com/ModernExodus/tontoken/lib/metrics"
)

func TestRecoverMiddleware(t *testing.T) {
	panicMsg := "Don't panic,just use go"

	router := mux.NewRouter()
	router.Use(RecoverMiddleware(false))
	router.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		panic(panicMsg)
	})
	router.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) {
		panic(errors.CandidateNotFound)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	{
		resp, err := http.Get(ts.URL + "/test")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 500, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header["Content-Type"][0])

		bs, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(bs, &msg))
		require.Equal(t, "panic: "+panicMsg, msg["title"])
	}

	{
		resp, err := http.Get(ts.URL + "/error")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 400, resp.StatusCode)

		bs, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(bs, &msg))
		require.Equal(t, errors.CandidateNotFound.Message, msg["title"])
	}
}

// countCounter counts Add calls over every label value.
type countCounter struct {
	n *int64
}

func (c countCounter) With(labelValues ...string) kitmetrics.Counter {
	return c
}

func (c countCounter) Add(delta float64) {
	atomic.AddInt64(c.n, 1)
}

func (c countCounter) Value() int64 {
	return atomic.LoadInt64(c.n)
}

func TestMetricsMiddleware(t *testing.T) {
	requests := countCounter{n: new(int64)}
	requestErrors := countCounter{n: new(int64)}

	defer func(m *metrics.APIMetrics) { metrics.API = m }(metrics.API)
	metrics.API = &metrics.APIMetrics{
		Requests: requests,
		Errors:   requestErrors,
		Duration: generic.NewHistogram("duration", 10),
		Streams:  generic.NewGauge("streams"),
	}

	router := mux.NewRouter()
	router.Use(MetricsMiddleware())
	router.HandleFunc("/ok/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	for _, path := range []string{"/ok/1", "/ok/2", "/missing"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	require.Equal(t, int64(3), requests.Value())
	require.Equal(t, int64(1), requestErrors.Value())
}

func TestRateLimitMiddleware(t *testing.T) {
	_, err := RateLimitMiddleware("wrong")
	require.Error(t, err)

	rateLimit, err := RateLimitMiddleware("2-M")
	require.NoError(t, err)

	router := mux.NewRouter()
	router.Use(rateLimit)
	router.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/test")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}

	require.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)
}
