package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlLedger       = "/"
	UrlAccounts     = "/accounts"
	UrlAccount      = "/accounts/{id}"
	UrlAllowance    = "/accounts/{id}/allowances/{spender}"
	UrlVoting       = "/voting"
	UrlCandidates   = "/voting/candidates"
	UrlCandidate    = "/voting/candidates/{id}"
	UrlVotingEvents = "/voting/events"
	UrlPool         = "/pool"
	UrlOperations   = "/operations"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
	QueryType    QueryKey = "type"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		urlValues.Add(q.Key.String(), q.Value)
	}
	return "?" + urlValues.Encode()
}

// Client reads a ledger thru the http api and submits the signed operations.
type Client struct {
	URL string

	HTTP   *HTTPClient
	Stream *HTTPClient
}

// NewClient makes client of the server at url, eg. `http://localhost:12345`.
// Requests are retried by retrySetting; event streams are never retried.
func NewClient(url string, retrySetting *RetrySetting) (*Client, error) {
	httpClient, err := NewHTTPClient(DefaultTimeout, retrySetting)
	if err != nil {
		return nil, err
	}
	streamClient, err := NewHTTPClient(0, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:    strings.TrimRight(url, "/"),
		HTTP:   httpClient,
		Stream: streamClient,
	}, nil
}

func (c *Client) Close() {
	c.HTTP.Close()
	c.Stream.Close()
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return
		}
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) url(path string) string {
	return c.URL + UrlPrefixForAPIV1 + path
}

func (c *Client) load(ctx context.Context, path string, response interface{}) error {
	req, err := http.NewRequest("GET", c.url(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req.WithContext(ctx))
	if err != nil {
		return err
	}
	return c.toResponse(resp, response)
}

func (c *Client) LoadLedger(ctx context.Context) (ledger Ledger, err error) {
	err = c.load(ctx, UrlLedger, &ledger)
	return
}

func (c *Client) LoadAccount(ctx context.Context, id string) (account Account, err error) {
	err = c.load(ctx, strings.Replace(UrlAccount, "{id}", id, -1), &account)
	return
}

func (c *Client) LoadAccounts(ctx context.Context, queries ...Q) (page AccountsPage, err error) {
	err = c.load(ctx, UrlAccounts+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadAllowance(ctx context.Context, owner, spender string) (allowance Allowance, err error) {
	path := strings.Replace(UrlAllowance, "{id}", owner, -1)
	path = strings.Replace(path, "{spender}", spender, -1)
	err = c.load(ctx, path, &allowance)
	return
}

func (c *Client) LoadVoting(ctx context.Context) (v Voting, err error) {
	err = c.load(ctx, UrlVoting, &v)
	return
}

func (c *Client) LoadCandidates(ctx context.Context) (page CandidatesPage, err error) {
	err = c.load(ctx, UrlCandidates, &page)
	return
}

func (c *Client) LoadCandidate(ctx context.Context, recipient string) (candidate Candidate, err error) {
	err = c.load(ctx, strings.Replace(UrlCandidate, "{id}", recipient, -1), &candidate)
	return
}

func (c *Client) LoadPool(ctx context.Context) (pool Pool, err error) {
	err = c.load(ctx, UrlPool, &pool)
	return
}

// SubmitOperation posts a signed operation. It is sent once; a retried
// operation would fail as already applied.
func (c *Client) SubmitOperation(ctx context.Context, signed token.SignedOperation) (result OperationResult, err error) {
	body, err := json.Marshal(signed)
	if err != nil {
		return
	}

	req, err := http.NewRequest("POST", c.url(UrlOperations), bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.DoOnce(req.WithContext(ctx))
	if err != nil {
		return
	}
	err = c.toResponse(resp, &result)
	return
}

// LoadSummary loads the ledger, the voting cycle and the pool at once.
func (c *Client) LoadSummary(ctx context.Context) (summary Summary, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.Ledger, err = c.LoadLedger(gctx)
		return
	})
	g.Go(func() (err error) {
		summary.Voting, err = c.LoadVoting(gctx)
		return
	})
	g.Go(func() (err error) {
		summary.Pool, err = c.LoadPool(gctx)
		return
	})

	err = g.Wait()
	return
}

// StreamPath reads the event stream of path until ctx is done or the connection
// is closed. Empty lines are skipped.
func (c *Client) StreamPath(ctx context.Context, path string, handler func(data []byte) error) error {
	req, err := http.NewRequest("GET", c.url(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.Stream.Do(req.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if err := handler(line); err != nil {
			return err
		}
	}
}

func (c *Client) StreamAccount(ctx context.Context, id string, handler func(Account)) error {
	return c.StreamPath(ctx, strings.Replace(UrlAccount, "{id}", id, -1), func(b []byte) error {
		var v Account
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		handler(v)
		return nil
	})
}

// StreamVotingEvents streams the voting events; eventType selects one type of
// event, every event by empty eventType.
func (c *Client) StreamVotingEvents(ctx context.Context, eventType voting.EventType, handler func(voting.Event)) error {
	path := UrlVotingEvents
	if len(eventType) > 0 {
		path += Queries{{Key: QueryType, Value: string(eventType)}}.toQueryString()
	}

	return c.StreamPath(ctx, path, func(b []byte) error {
		var v voting.Event
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		handler(v)
		return nil
	})
}
