package api

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/storage"
	"github.com/ModernExodus/tontoken/lib/token"
	"github.com/ModernExodus/tontoken/lib/voting"
)

func newAddress() string {
	kp, _ := keypair.Random()
	return kp.Address()
}

func prepareAPIServer(t *testing.T) (*httptest.Server, *token.Token, string) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.NoError(t, err)

	owner := newAddress()
	tk, err := token.Genesis(st, token.GenesisConfig{Owner: owner, Params: voting.DefaultParams()})
	require.NoError(t, err)

	apiHandler := NewNetworkHandlerAPI(tk, DefaultURLPrefix)

	router := mux.NewRouter()
	apiHandler.Routes(router)
	ts := httptest.NewServer(router)

	return ts, tk, owner
}

func url(pattern string) string {
	return NetworkHandlerAPI{urlPrefix: DefaultURLPrefix, version: APIVersionV1}.HandlerURLPattern(pattern)
}

func request(ts *httptest.Server, url string, streaming bool) *http.Response {
	req, err := http.NewRequest("GET", ts.URL+url, nil)
	if err != nil {
		panic(err)
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		panic(err)
	}
	return resp
}

func readJSON(t *testing.T, body io.Reader) map[string]interface{} {
	b, err := ioutil.ReadAll(body)
	require.NoError(t, err)

	recv := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(b, &recv))
	return recv
}

func getJSON(t *testing.T, ts *httptest.Server, url string, status int) map[string]interface{} {
	resp := request(ts, url, false)
	defer resp.Body.Close()
	require.Equal(t, status, resp.StatusCode)

	return readJSON(t, resp.Body)
}

func transfer(t *testing.T, tk *token.Token, from string, height uint64, to string, tontokens uint64) {
	_, err := tk.Transfer(token.NewContext(from, height), to, common.Tontokens(tontokens))
	require.NoError(t, err)
}
