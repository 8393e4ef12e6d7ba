package client

import (
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

type HttpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type BackoffStrategy = pester.BackoffStrategy

type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

// DefaultRetrySetting retries idempotent requests 3 times with exponential
// backoff.
var DefaultRetrySetting = &RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

type HTTPClient struct {
	doer      HttpDoer
	client    http.Client
	transport *http.Transport
}

// NewHTTPClient makes http client; with retrySetting, failed requests are
// retried by pester. Zero timeout keeps the connection for event streams.
func NewHTTPClient(timeout time.Duration, retrySetting *RetrySetting) (client *HTTPClient, err error) {
	transport := &http.Transport{
		IdleConnTimeout: 30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: 30 * time.Second,
			DualStack: true,
		}).DialContext,
	}

	if err = http2.ConfigureTransport(transport); err != nil {
		return
	}

	client = &HTTPClient{
		client: http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		transport: transport,
	}
	client.doer = &client.client

	if retrySetting != nil {
		ec := pester.NewExtendedClient(&client.client)
		{
			ec.MaxRetries = retrySetting.MaxRetries
			ec.Concurrency = retrySetting.Concurrency
			ec.Backoff = retrySetting.Backoff
			ec.KeepLog = true
		}
		client.doer = ec
	}

	return
}

func (c *HTTPClient) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTPClient) Get(url string, headers http.Header) (response *http.Response, err error) {
	var request *http.Request
	if request, err = http.NewRequest("GET", url, nil); err != nil {
		return
	}
	request.Header = headers

	return c.Do(request)
}

// It's same interface as https://golang.org/pkg/net/http/#Client.Do
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}

// DoOnce sends req without the retries.
func (c *HTTPClient) DoOnce(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
