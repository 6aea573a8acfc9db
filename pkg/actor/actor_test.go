package actor

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/neorpc/result"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/wallet"
	"github.com/stretchr/testify/require"
)

type RPCClient struct {
	err     error
	invRes  *result.Invoke
	netFee  int64
	bCount  atomic.Uint32
	version *result.Version
	hash    util.Uint256
}

func (r *RPCClient) InvokeScript(script []byte, signers []transaction.Signer) (*result.Invoke, error) {
	return r.invRes, r.err
}
func (r *RPCClient) CalculateNetworkFee(tx *transaction.Transaction) (int64, error) {
	return r.netFee, r.err
}
func (r *RPCClient) GetBlockCount() (uint32, error) {
	return r.bCount.Load(), r.err
}
func (r *RPCClient) GetVersion() (*result.Version, error) {
	verCopy := *r.version
	return &verCopy, r.err
}
func (r *RPCClient) SendRawTransaction(tx *transaction.Transaction) (util.Uint256, error) {
	return r.hash, r.err
}

func testRPCAndAccount(t *testing.T) (*RPCClient, *wallet.Account) {
	client := &RPCClient{
		version: &result.Version{
			Protocol: result.Protocol{
				Network:              42,
				MillisecondsPerBlock: 1000,
				ValidatorsCount:      7,
			},
		},
	}
	acc, err := wallet.NewAccount()
	require.NoError(t, err)
	return client, acc
}

func TestNew(t *testing.T) {
	client, acc := testRPCAndAccount(t)

	// No signers.
	_, err := New(client, nil)
	require.Error(t, err)

	_, err = New(client, []SignerAccount{})
	require.Error(t, err)

	_, err = NewTuned(client, []SignerAccount{}, NewDefaultOptions())
	require.Error(t, err)

	// Good simple.
	a, err := NewSimple(client, acc)
	require.NoError(t, err)
	require.Equal(t, 1, len(a.signers))
	require.Equal(t, 1, len(a.txSigners))
	require.Equal(t, transaction.CalledByEntry, a.signers[0].Signer.Scopes)
	require.Equal(t, transaction.CalledByEntry, a.txSigners[0].Scopes)

	// GetVersion returning error.
	client.err = errors.New("bad")
	_, err = NewSimple(client, acc)
	require.Error(t, err)
	client.err = nil

	// Account mismatch.
	acc2, err := wallet.NewAccount()
	require.NoError(t, err)
	signers := []SignerAccount{{
		Signer: transaction.Signer{
			Account: acc2.Contract.ScriptHash(),
			Scopes:  transaction.None,
		},
		Account: acc,
	}, {
		Signer: transaction.Signer{
			Account: acc2.Contract.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: acc2,
	}}
	_, err = New(client, signers)
	require.Error(t, err)

	// Good multiaccount.
	signers[0].Signer.Account = acc.Contract.ScriptHash()
	a, err = New(client, signers)
	require.NoError(t, err)
	require.Equal(t, 2, len(a.signers))
	require.Equal(t, 2, len(a.txSigners))

	// Good tuned.
	opts := Options{
		Attributes: []transaction.Attribute{{Type: transaction.HighPriority}},
	}
	a, err = NewTuned(client, signers, opts)
	require.NoError(t, err)
	require.Equal(t, 1, len(a.opts.Attributes))
}

func TestSimpleWrappers(t *testing.T) {
	client, acc := testRPCAndAccount(t)
	origVer := *client.version

	a, err := NewSimple(client, acc)
	require.NoError(t, err)

	client.netFee = 42
	nf, err := a.CalculateNetworkFee(new(transaction.Transaction))
	require.NoError(t, err)
	require.Equal(t, int64(42), nf)

	client.bCount.Store(100500)
	bc, err := a.GetBlockCount()
	require.NoError(t, err)
	require.Equal(t, uint32(100500), bc)

	// Version is cached at creation time.
	require.Equal(t, uint32(42), a.GetNetwork())
	client.version.Protocol.Network = 100
	require.Equal(t, uint32(42), a.GetNetwork())
	require.Equal(t, origVer, a.GetVersion())

	a, err = NewSimple(client, acc)
	require.NoError(t, err)
	require.Equal(t, uint32(100), a.GetNetwork())
	require.Equal(t, *client.version, a.GetVersion())

	client.hash = util.Uint256{1, 2, 3}
	h, vub, err := a.Send(&transaction.Transaction{ValidUntilBlock: 123})
	require.NoError(t, err)
	require.Equal(t, client.hash, h)
	require.Equal(t, uint32(123), vub)
}

func TestSign(t *testing.T) {
	client, acc := testRPCAndAccount(t)
	acc2, err := wallet.NewAccount()
	require.NoError(t, err)

	a, err := New(client, []SignerAccount{{
		Signer: transaction.Signer{
			Account: acc.Contract.ScriptHash(),
			Scopes:  transaction.None,
		},
		Account: acc,
	}, {
		Signer: transaction.Signer{
			Account: acc2.Contract.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: &wallet.Account{ // Looks like acc2, but has no private key.
			Address:  acc2.Address,
			Contract: acc2.Contract,
		},
	}})
	require.NoError(t, err)

	script := []byte{1, 2, 3}
	client.invRes = &result.Invoke{State: "HALT", GasConsumed: 3, Script: script}

	tx, err := a.MakeUnsignedRun(script, nil)
	require.NoError(t, err)
	require.Error(t, a.Sign(tx))
	_, _, err = a.SignAndSend(tx)
	require.Error(t, err)

	// Externally-witnessed signer leaves an empty witness slot.
	a, err = New(client, []SignerAccount{
		AccountSigner(acc, transaction.None),
		TransactionSigner(transaction.Signer{
			Account: acc2.Contract.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		}),
	})
	require.NoError(t, err)
	tx, err = a.MakeUnsignedRun(script, nil)
	require.NoError(t, err)
	require.NoError(t, a.Sign(tx))
	require.Equal(t, 2, len(tx.Scripts))
	require.NotEmpty(t, tx.Scripts[0].InvocationScript)
	require.Equal(t, transaction.Witness{}, tx.Scripts[1])
}

func TestMakeRuns(t *testing.T) {
	client, acc := testRPCAndAccount(t)
	a, err := NewSimple(client, acc)
	require.NoError(t, err)
	script := []byte{1, 2, 3}

	// Bad: can't do test invocation.
	client.err = errors.New("bad")
	_, err = a.MakeRun(script)
	require.Error(t, err)
	client.err = nil

	// Bad: FAULT state.
	client.invRes = &result.Invoke{State: "FAULT", GasConsumed: 3, Script: script}
	_, err = a.MakeRun(script)
	require.Error(t, err)
	_, err = a.MakeUnsignedRun(script, nil)
	require.Error(t, err)

	// Bad: hook returning an error.
	client.invRes = &result.Invoke{State: "HALT", GasConsumed: 3, Script: script}
	_, err = a.MakeTunedRun(script, nil, func(r *result.Invoke, t *transaction.Transaction) error {
		return errors.New("bad")
	})
	require.Error(t, err)
	_, err = a.MakeUncheckedRun(script, 1, nil, func(t *transaction.Transaction) error {
		return errors.New("bad")
	})
	require.Error(t, err)

	// Good.
	client.netFee = 55
	tx, err := a.MakeRun(script)
	require.NoError(t, err)
	require.Equal(t, script, tx.Script)
	require.Equal(t, int64(3), tx.SystemFee)
	require.Equal(t, int64(55), tx.NetworkFee)
	require.Equal(t, uint32(8), tx.ValidUntilBlock)
	require.Equal(t, 1, len(tx.Scripts))
	require.NotEmpty(t, tx.Scripts[0].InvocationScript)

	tx, err = a.MakeUnsignedRun(script, nil)
	require.NoError(t, err)
	require.Equal(t, 1, len(tx.Scripts))
	require.Empty(t, tx.Scripts[0].InvocationScript)
	require.Equal(t, acc.Contract.Script, tx.Scripts[0].VerificationScript)

	// Hook changing the fee.
	tx, err = a.MakeTunedRun(script, nil, func(r *result.Invoke, t *transaction.Transaction) error {
		t.SystemFee = 100500
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(100500), tx.SystemFee)

	// Default attributes are used when not overridden.
	at, err := NewTuned(client, []SignerAccount{AccountSignerCalledByEntry(acc)}, Options{
		Attributes: []transaction.Attribute{{Type: transaction.HighPriority}},
	})
	require.NoError(t, err)
	tx, err = at.MakeRun(script)
	require.NoError(t, err)
	require.Equal(t, 1, len(tx.Attributes))
	require.Equal(t, transaction.HighPriority, tx.Attributes[0].Type)
}

func TestSenders(t *testing.T) {
	client, acc := testRPCAndAccount(t)
	a, err := NewSimple(client, acc)
	require.NoError(t, err)
	script := []byte{1, 2, 3}

	// Bad.
	client.invRes = &result.Invoke{State: "FAULT", GasConsumed: 3, Script: script}
	_, _, err = a.SendCall(util.Uint160{1}, "method", 42)
	require.Error(t, err)
	_, _, err = a.SendRun(script)
	require.Error(t, err)

	// Good.
	client.hash = util.Uint256{2, 5, 6}
	client.invRes = &result.Invoke{State: "HALT", GasConsumed: 3, Script: script}
	h, vub, err := a.SendCall(util.Uint160{1}, "method", 42)
	require.NoError(t, err)
	require.Equal(t, client.hash, h)
	require.Equal(t, uint32(8), vub)

	h, vub, err = a.SendRun(script)
	require.NoError(t, err)
	require.Equal(t, client.hash, h)
	require.Equal(t, uint32(8), vub)
}

func TestSender(t *testing.T) {
	client, acc := testRPCAndAccount(t)
	a, err := NewSimple(client, acc)
	require.NoError(t, err)
	require.Equal(t, acc.ScriptHash(), a.Sender())
}

func TestCalculateValidUntilBlock(t *testing.T) {
	client, acc := testRPCAndAccount(t)
	a, err := NewSimple(client, acc)
	require.NoError(t, err)

	client.err = errors.New("error")
	_, err = a.CalculateValidUntilBlock()
	require.Error(t, err)
	client.err = nil

	client.bCount.Store(42)
	vub, err := a.CalculateValidUntilBlock()
	require.NoError(t, err)
	require.Equal(t, uint32(42+7+1), vub)
}
