package rpcclient

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/neorpc"
	"github.com/neotoolkit/neokit/pkg/neorpc/result"
	"github.com/neotoolkit/neokit/pkg/util"
)

// GetVersion returns the version information about the queried node.
func (c *Client) GetVersion() (*result.Version, error) {
	var resp = &result.Version{}

	if err := c.performRequest("getversion", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetBlockCount returns the number of blocks in the chain.
func (c *Client) GetBlockCount() (uint32, error) {
	var resp uint32

	if err := c.performRequest("getblockcount", nil, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// InvokeScript returns the result of the given script after running it true
// the VM. NOTE: This is a test invoke and will not affect the blockchain.
func (c *Client) InvokeScript(script []byte, signers []transaction.Signer) (*result.Invoke, error) {
	var p = []any{base64.StdEncoding.EncodeToString(script)}
	p, err := c.appendSigners(p, signers)
	if err != nil {
		return nil, err
	}
	return c.invokeSomething("invokescript", p)
}

// appendSigners appends signers to the given parameters, returning a new
// parameter set.
func (c *Client) appendSigners(p []any, signers []transaction.Signer) ([]any, error) {
	if signers != nil {
		sws := make([]neorpc.SignerWithWitness, len(signers))
		for i := range signers {
			sws[i].Signer = signers[i]
		}
		p = append(p, sws)
	}
	return p, nil
}

// invokeSomething is an inner wrapper for Invoke* functions.
func (c *Client) invokeSomething(method string, p []any) (*result.Invoke, error) {
	var resp = new(result.Invoke)

	if err := c.performRequest(method, p, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CalculateNetworkFee calculates network fee for the transaction. The transaction may
// have dummy witnesses for unsigned accounts or contract witnesses.
func (c *Client) CalculateNetworkFee(tx *transaction.Transaction) (int64, error) {
	var (
		params = []any{base64.StdEncoding.EncodeToString(tx.Bytes())}
		resp   = new(result.NetworkFee)
	)
	if err := c.performRequest("calculatenetworkfee", params, resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}

// SendRawTransaction broadcasts the given transaction to the Neo network.
// It always returns transaction hash, when successful (no error) this is the
// hash returned from the server, when not it's a locally calculated rawTX hash.
func (c *Client) SendRawTransaction(rawTX *transaction.Transaction) (util.Uint256, error) {
	var (
		params = []any{base64.StdEncoding.EncodeToString(rawTX.Bytes())}
		resp   = new(result.RelayResult)
	)
	if err := c.performRequest("sendrawtransaction", params, resp); err != nil {
		return rawTX.Hash(), err
	}
	return resp.Hash, nil
}

// TraverseIterator returns a set of iterator values (maxItemsCount at max)
// for the specified iterator and session. If result contains no elements,
// then either Iterator has no elements or session was expired and
// terminated by the server.
func (c *Client) TraverseIterator(sessionID, iteratorID uuid.UUID, maxItemsCount int) ([]result.Item, error) {
	var (
		params = []any{sessionID.String(), iteratorID.String(), maxItemsCount}
		resp   []result.Item
	)
	if err := c.performRequest("traverseiterator", params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TerminateSession tries to terminate the specified session and returns
// `true` iff the specified session was found on server.
func (c *Client) TerminateSession(sessionID uuid.UUID) (bool, error) {
	var resp bool
	params := []any{sessionID.String()}
	if err := c.performRequest("terminatesession", params, &resp); err != nil {
		return false, err
	}
	if !resp {
		return false, fmt.Errorf("terminatesession returned false")
	}
	return resp, nil
}
