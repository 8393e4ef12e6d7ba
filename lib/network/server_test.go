package network

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/client"
	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/network/httpcache"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

func newAddress() string {
	kp, _ := keypair.Random()
	return kp.Address()
}

func prepareServer(t *testing.T, config ServerConfig) (*httptest.Server, *token.Token, string) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.NoError(t, err)

	owner := newAddress()
	tk, err := token.Genesis(st, token.GenesisConfig{Owner: owner, Params: voting.DefaultParams()})
	require.NoError(t, err)

	s, err := NewServer(tk, config)
	require.NoError(t, err)

	return httptest.NewServer(s.Handler()), tk, owner
}

func getBody(t *testing.T, url string, header http.Header) (*http.Response, []byte) {
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, b
}

func TestServerRoutes(t *testing.T) {
	ts, tk, owner := prepareServer(t, ServerConfig{})
	defer tk.Storage().Close()
	defer ts.Close()

	{
		resp, b := getBody(t, ts.URL+"/api/v1/", nil)
		require.Equal(t, 200, resp.StatusCode)
		require.Equal(t, "application/hal+json", resp.Header.Get("Content-Type"))

		recv := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(b, &recv))
		require.Equal(t, owner, recv["owner"])
	}
	{
		resp, _ := getBody(t, ts.URL+"/api/v1/accounts/"+owner, nil)
		require.Equal(t, 200, resp.StatusCode)
	}
	{
		resp, _ := getBody(t, ts.URL+"/metrics", nil)
		require.Equal(t, 200, resp.StatusCode)
	}
	{
		resp, _ := getBody(t, ts.URL+"/api/v2/", nil)
		require.Equal(t, 404, resp.StatusCode)
	}
}

func TestServerCache(t *testing.T) {
	adapter, err := httpcache.NewMemCacheAdapter(10)
	require.NoError(t, err)

	ts, tk, owner := prepareServer(t, ServerConfig{Cache: adapter, CacheExpire: time.Minute})
	defer tk.Storage().Close()
	defer ts.Close()

	recipient := newAddress()
	url := ts.URL + "/api/v1/accounts/" + recipient

	readBalance := func() string {
		resp, b := getBody(t, url, nil)
		require.Equal(t, 200, resp.StatusCode)
		recv := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(b, &recv))
		return recv["balance"].(string)
	}

	require.Equal(t, "0", readBalance())

	_, err = tk.Transfer(token.NewContext(owner, 1), recipient, common.Tontokens(1))
	require.NoError(t, err)

	// cached until it expires
	require.Equal(t, "0", readBalance())
}

func TestServerCORS(t *testing.T) {
	ts, tk, _ := prepareServer(t, ServerConfig{AllowedOrigins: []string{"*"}})
	defer tk.Storage().Close()
	defer ts.Close()

	resp, _ := getBody(t, ts.URL+"/api/v1/pool", http.Header{"Origin": []string{"http://tontoken.io"}})
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServerRateLimit(t *testing.T) {
	_, err := NewServer(nil, ServerConfig{RateLimit: "often"})
	require.Error(t, err)
}

func TestServerStreamEndsWithStop(t *testing.T) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()

	tk, err := token.Genesis(st, token.GenesisConfig{Owner: newAddress(), Params: voting.DefaultParams()})
	require.NoError(t, err)

	s, err := NewServer(tk, ServerConfig{Address: "localhost:0"})
	require.NoError(t, err)

	ts := httptest.NewUnstartedServer(s.Handler())
	ts.Config.BaseContext = s.server.BaseContext
	ts.Start()
	defer ts.Close()

	req, err := http.NewRequest("GET", ts.URL+"/api/v1/voting/events", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	s.cancel()

	// the stream is closed by the server
	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			break
		}
		require.Equal(t, 0, len(bytes.TrimSpace(line)))
	}
	require.NoError(t, ctx.Err())
}

// A signed operation posted to the server reaches the account stream served
// by the same process.
func TestServerOperationReachesStream(t *testing.T) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()

	owner, err := keypair.Random()
	require.NoError(t, err)
	tk, err := token.Genesis(st, token.GenesisConfig{Owner: owner.Address(), Params: voting.DefaultParams()})
	require.NoError(t, err)

	s, err := NewServer(tk, ServerConfig{})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	cl, err := client.NewClient(ts.URL, nil)
	require.NoError(t, err)
	defer cl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	recipient := newAddress()
	accounts := make(chan client.Account)
	go cl.StreamAccount(ctx, recipient, func(a client.Account) {
		select {
		case accounts <- a:
		case <-ctx.Done():
		}
	})

	select {
	case a := <-accounts:
		require.Equal(t, common.Amount(0), a.Balance)
	case <-ctx.Done():
		require.FailNow(t, "account stream did not start")
	}

	op := token.Operation{
		Type:   token.OperationTransfer,
		Sender: owner.Address(),
		Height: 1,
		Target: recipient,
		Amount: common.Tontokens(1),
		Nonce:  "1",
	}
	signed, err := token.Sign(op, owner, tk.NetworkID())
	require.NoError(t, err)

	result, err := cl.SubmitOperation(ctx, signed)
	require.NoError(t, err)
	require.Equal(t, signed.Hash, result.Hash)
	require.Equal(t, op, result.Operation)

	select {
	case a := <-accounts:
		require.Equal(t, recipient, a.Address)
		require.Equal(t, common.Tontokens(1), a.Balance)
	case <-ctx.Done():
		require.FailNow(t, "account stream did not receive the transfer")
	}

	// applied once
	_, err = cl.SubmitOperation(ctx, signed)
	require.Error(t, err)
	cerr, ok := err.(client.Error)
	require.True(t, ok)
	require.Equal(t, http.StatusConflict, cerr.Problem.Status)
}

func TestServerOperationRejected(t *testing.T) {
	ts, tk, owner := prepareServer(t, ServerConfig{})
	defer tk.Storage().Close()
	defer ts.Close()

	post := func(body string) *http.Response {
		resp, err := http.Post(ts.URL+"/api/v1/operations", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	require.Equal(t, http.StatusBadRequest, post("{").StatusCode)

	// signed by another keypair
	other, err := keypair.Random()
	require.NoError(t, err)
	op := token.Operation{Type: token.OperationTransfer, Sender: other.Address(), Height: 1, Target: newAddress(), Amount: 1}
	signed, err := token.Sign(op, other, tk.NetworkID())
	require.NoError(t, err)
	signed.Operation.Sender = owner
	b, err := json.Marshal(signed)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, post(string(b)).StatusCode)

	balance, err := tk.BalanceOf(owner)
	require.NoError(t, err)
	require.Equal(t, common.InitialSupply, balance)

	resp, _ := getBody(t, ts.URL+"/api/v1/operations", nil)
	require.NotEqual(t, http.StatusOK, resp.StatusCode)
}
