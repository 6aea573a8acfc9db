package rpcclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/neorpc"
	"github.com/neotoolkit/neokit/pkg/neorpc/result"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestClient creates a Client without a server behind it, requests are
// to be intercepted via requestF.
func initTestClient(t *testing.T) *Client {
	c, err := New(context.TODO(), "http://localhost:10332", Options{})
	require.NoError(t, err)
	return c
}

// respondWith makes the client answer every request with the given result.
func respondWith(t *testing.T, c *Client, res any) {
	c.requestF = func(r *neorpc.Request) (*neorpc.Response, error) {
		data, err := json.Marshal(res)
		require.NoError(t, err)
		return &neorpc.Response{Result: data}, nil
	}
}

func TestClientInit(t *testing.T) {
	c := initTestClient(t)

	_, err := c.GetNetwork()
	require.ErrorIs(t, err, ErrNotInitialized)

	respondWith(t, c, result.Version{
		UserAgent: "/NEO-GO:0.0.1/",
		Protocol: result.Protocol{
			Network:         860833102,
			ValidatorsCount: 7,
		},
	})
	require.NoError(t, c.Init())

	m, err := c.GetNetwork()
	require.NoError(t, err)
	require.Equal(t, uint32(860833102), m)
}

func TestRPCError(t *testing.T) {
	c := initTestClient(t)
	c.requestF = func(r *neorpc.Request) (*neorpc.Response, error) {
		return &neorpc.Response{
			HeaderAndError: neorpc.HeaderAndError{
				Error: neorpc.NewInvalidParamsError("unparseable"),
			},
		}, nil
	}
	_, err := c.GetBlockCount()
	require.Error(t, err)
	require.ErrorIs(t, err, neorpc.NewInvalidParamsError("other text, code matters"))
}

func TestGetBlockCount(t *testing.T) {
	c := initTestClient(t)
	respondWith(t, c, 991991)
	count, err := c.GetBlockCount()
	require.NoError(t, err)
	require.Equal(t, uint32(991991), count)
}

func TestInvokeScript(t *testing.T) {
	c := initTestClient(t)
	script := []byte{1, 2, 3}
	signer := transaction.Signer{
		Account: util.Uint160{3, 2, 1},
		Scopes:  transaction.CalledByEntry,
	}

	var captured *neorpc.Request
	c.requestF = func(r *neorpc.Request) (*neorpc.Response, error) {
		captured = r
		data, err := json.Marshal(result.Invoke{State: "HALT", GasConsumed: 42, Script: script})
		require.NoError(t, err)
		return &neorpc.Response{Result: data}, nil
	}

	res, err := c.InvokeScript(script, []transaction.Signer{signer})
	require.NoError(t, err)
	require.Equal(t, "HALT", res.State)
	require.Equal(t, int64(42), res.GasConsumed)
	require.Equal(t, script, res.Script)

	require.NotNil(t, captured)
	require.Equal(t, "invokescript", captured.Method)
	require.Equal(t, 2, len(captured.Params))
	require.Equal(t, base64.StdEncoding.EncodeToString(script), captured.Params[0])
	sws, ok := captured.Params[1].([]neorpc.SignerWithWitness)
	require.True(t, ok)
	require.Equal(t, 1, len(sws))
	require.Equal(t, signer, sws[0].Signer)

	// Signers are serialized with the scope as a string and 0x-prefixed hash.
	data, err := json.Marshal(&sws[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"0x`+signer.Account.StringLE()+`"`)
	assert.Contains(t, string(data), `"CalledByEntry"`)
}

func TestCalculateNetworkFee(t *testing.T) {
	c := initTestClient(t)
	tx := transaction.New([]byte{1, 2, 3}, 1)
	tx.Signers = []transaction.Signer{{}}
	tx.Scripts = []transaction.Witness{{}}

	var captured *neorpc.Request
	c.requestF = func(r *neorpc.Request) (*neorpc.Response, error) {
		captured = r
		return &neorpc.Response{Result: json.RawMessage(`{"networkfee":"1234500"}`)}, nil
	}
	fee, err := c.CalculateNetworkFee(tx)
	require.NoError(t, err)
	require.Equal(t, int64(1234500), fee)
	require.Equal(t, "calculatenetworkfee", captured.Method)
	require.Equal(t, base64.StdEncoding.EncodeToString(tx.Bytes()), captured.Params[0])
}

func TestSendRawTransaction(t *testing.T) {
	c := initTestClient(t)
	tx := transaction.New([]byte{1, 2, 3}, 1)
	tx.Signers = []transaction.Signer{{}}
	tx.Scripts = []transaction.Witness{{}}

	serverHash := util.Uint256{1, 2, 3}
	respondWith(t, c, result.RelayResult{Hash: serverHash})
	h, err := c.SendRawTransaction(tx)
	require.NoError(t, err)
	require.Equal(t, serverHash, h)

	// On error the locally-computed hash is returned.
	c.requestF = func(r *neorpc.Request) (*neorpc.Response, error) {
		return &neorpc.Response{
			HeaderAndError: neorpc.HeaderAndError{
				Error: neorpc.NewInternalServerError("verification failed"),
			},
		}, nil
	}
	h, err = c.SendRawTransaction(tx)
	require.Error(t, err)
	require.Equal(t, tx.Hash(), h)
}

func TestSessions(t *testing.T) {
	c := initTestClient(t)
	sessionID := uuid.New()
	iteratorID := uuid.New()

	items := []result.Item{
		{Type: "Integer", Value: json.RawMessage(`"1"`)},
		{Type: "Integer", Value: json.RawMessage(`"2"`)},
	}
	var captured *neorpc.Request
	c.requestF = func(r *neorpc.Request) (*neorpc.Response, error) {
		captured = r
		data, err := json.Marshal(items)
		require.NoError(t, err)
		return &neorpc.Response{Result: data}, nil
	}
	got, err := c.TraverseIterator(sessionID, iteratorID, 10)
	require.NoError(t, err)
	require.Equal(t, items, got)
	require.Equal(t, []any{sessionID.String(), iteratorID.String(), 10}, captured.Params)

	respondWith(t, c, true)
	ok, err := c.TerminateSession(sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	respondWith(t, c, false)
	_, err = c.TerminateSession(sessionID)
	require.Error(t, err)
}

func TestHTTPTransport(t *testing.T) {
	var (
		status int
		body   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := New(context.TODO(), srv.URL, Options{})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	require.NoError(t, c.Ping())

	// Proper JSON-RPC result over HTTP.
	status = http.StatusOK
	body = `{"jsonrpc":"2.0","id":1,"result":12345}`
	count, err := c.GetBlockCount()
	require.NoError(t, err)
	require.Equal(t, uint32(12345), count)

	// JSON-RPC error has priority over the HTTP status code.
	status = http.StatusUnprocessableEntity
	body = `{"jsonrpc":"2.0","id":1,"error":{"code":-500,"message":"verification failed"}}`
	_, err = c.GetBlockCount()
	require.Error(t, err)
	require.Contains(t, err.Error(), "verification failed")

	// Garbage response leads to an HTTP-level error.
	status = http.StatusInternalServerError
	body = `garbage`
	_, err = c.GetBlockCount()
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP 500")
}

func TestBadEndpoint(t *testing.T) {
	_, err := New(context.TODO(), ":malformed:", Options{})
	require.Error(t, err)
}
