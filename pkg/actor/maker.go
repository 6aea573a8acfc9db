package actor

import (
	"fmt"

	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/neorpc/result"
	"github.com/neotoolkit/neokit/pkg/smartcontract"
	"github.com/neotoolkit/neokit/pkg/util"
)

// vmHaltState is the VM state of a successful invocation.
const vmHaltState = "HALT"

// TransactionCheckerModifier is a callback that receives the result of
// test-invocation and the transaction that can perform the same invocation
// on chain. This callback is accepted by methods that create transactions, it
// can examine both arguments and return an error if there is anything wrong
// there which will abort the creation process. Notice that when used this
// callback is completely responsible for invocation result checking,
// including checking for HALT execution state (so if you don't check for it
// in a callback you can send a transaction that is known to end up in FAULT
// state). It can also modify the transaction (see TransactionModifier).
type TransactionCheckerModifier func(r *result.Invoke, t *transaction.Transaction) error

// TransactionModifier is a callback that receives the transaction before
// it's signed from a method that creates signed transactions. It can check
// fees and other fields of the transaction and return an error if there is
// anything wrong there which will abort the creation process. It also can
// modify Nonce, SystemFee, NetworkFee and ValidUntilBlock values taking full
// responsibility on the effects of these modifications. Mostly it's useful
// for increasing fee values since by default they're just enough for
// transaction to be successfully accepted and executed.
type TransactionModifier func(t *transaction.Transaction) error

// DefaultModifier is the default modifier, it does nothing.
func DefaultModifier(t *transaction.Transaction) error {
	return nil
}

// DefaultCheckerModifier is the default TransactionCheckerModifier, it checks
// for HALT state in the invocation result given to it and does nothing else.
func DefaultCheckerModifier(r *result.Invoke, t *transaction.Transaction) error {
	if r.State != vmHaltState {
		var d string
		if r.FaultException != nil {
			d = *r.FaultException
		}
		return fmt.Errorf("script failed (%s state) due to an error: %s", r.State, d)
	}
	return nil
}

// MakeCall creates a transaction that calls the given method of the given
// contract with the given parameters. Test call is performed and filtered
// through Actor-configured TransactionCheckerModifier. The resulting
// transaction has Actor-configured attributes added as well. If you need to
// override attributes and/or TransactionCheckerModifier use MakeTunedCall.
func (a *Actor) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	return a.MakeTunedCall(contract, method, nil, nil, params...)
}

// MakeTunedCall creates a transaction with the given attributes (or Actor
// default ones if nil) that calls the given method of the given contract with
// the given parameters. It's filtered through the provided callback (or Actor
// default one's if nil, see TransactionCheckerModifier documentation also),
// so the process can be aborted and transaction can be modified before
// signing.
func (a *Actor) MakeTunedCall(contract util.Uint160, method string, attrs []transaction.Attribute, txHook TransactionCheckerModifier, params ...any) (*transaction.Transaction, error) {
	script, err := smartcontract.CreateCallScript(contract, method, params...)
	if err != nil {
		return nil, err
	}
	return a.MakeTunedRun(script, attrs, txHook)
}

// MakeRun creates a transaction with the given executable script. Test
// invocation of this script is performed and filtered through Actor's
// TransactionCheckerModifier. The resulting transaction has attributes that
// are configured for current Actor. If you need to override them or use a
// different TransactionCheckerModifier use MakeTunedRun.
func (a *Actor) MakeRun(script []byte) (*transaction.Transaction, error) {
	return a.MakeTunedRun(script, nil, nil)
}

// MakeTunedRun creates a transaction with the given attributes (or Actor
// default ones if nil) that executes the given script. It's filtered through
// the provided callback (if not nil, otherwise Actor default one is used, see
// TransactionCheckerModifier documentation also), so the process can be
// aborted and transaction can be modified before signing.
func (a *Actor) MakeTunedRun(script []byte, attrs []transaction.Attribute, txHook TransactionCheckerModifier) (*transaction.Transaction, error) {
	r, err := a.client.InvokeScript(script, a.txSigners)
	return a.makeUncheckedWrapper(r, err, attrs, txHook)
}

func (a *Actor) makeUncheckedWrapper(r *result.Invoke, err error, attrs []transaction.Attribute, txHook TransactionCheckerModifier) (*transaction.Transaction, error) {
	if err != nil {
		return nil, fmt.Errorf("test invocation failed: %w", err)
	}
	return a.MakeUncheckedRun(r.Script, r.GasConsumed, attrs, func(tx *transaction.Transaction) error {
		if txHook == nil {
			txHook = a.opts.CheckerModifier
		}
		return txHook(r, tx)
	})
}

// MakeUncheckedRun creates a transaction with the given attributes (or Actor
// default ones if nil) that executes the given script and is expected to use
// up to sysfee GAS for its execution. The transaction is filtered through the
// provided callback (or Actor default one, see TransactionModifier
// documentation also), so the process can be aborted and transaction can be
// modified before signing. This method is mostly useful when test invocation
// is already performed and the script and required system fee values are
// already known.
func (a *Actor) MakeUncheckedRun(script []byte, sysfee int64, attrs []transaction.Attribute, txHook TransactionModifier) (*transaction.Transaction, error) {
	tx, err := a.MakeUnsignedUncheckedRun(script, sysfee, attrs)
	if err != nil {
		return nil, err
	}

	if txHook == nil {
		txHook = a.opts.Modifier
	}
	err = txHook(tx)
	if err != nil {
		return nil, err
	}
	err = a.Sign(tx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// MakeUnsignedRun creates an unsigned transaction with the given attributes
// that executes the given script. Test-invocation is performed and is
// expected to end up in HALT state, the transaction returned has correct
// SystemFee and NetworkFee values. TransactionModifier is not applied to the
// result of this method, but default attributes are used if attrs is nil.
func (a *Actor) MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	r, err := a.client.InvokeScript(script, a.txSigners)
	if err != nil {
		return nil, fmt.Errorf("failed to test-invoke: %w", err)
	}
	err = DefaultCheckerModifier(r, nil) // We know it doesn't care about transaction anyway.
	if err != nil {
		return nil, err
	}
	return a.MakeUnsignedUncheckedRun(r.Script, r.GasConsumed, attrs)
}

// MakeUnsignedUncheckedRun creates an unsigned transaction containing the
// given script with the system fee value and attributes. It's expected to be
// used when test invocation is already done and the script and system fee
// value are already known to be good, so it doesn't do test invocation
// internally. But it fills Signers with Actor's signers, calculates proper
// ValidUntilBlock and NetworkFee values. The resulting transaction can be
// changed in its Nonce, SystemFee, NetworkFee and ValidUntilBlock values and
// then be signed and sent. TransactionModifier is not applied to the result
// of this method, but default attributes are used if attrs is nil.
func (a *Actor) MakeUnsignedUncheckedRun(script []byte, sysFee int64, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	if attrs == nil {
		attrs = a.opts.Attributes // Might as well be nil, but it's OK.
	}
	b := NewBuilder(a.client, a.signers...)
	b.version = a.version
	return b.Script(script).
		SystemFee(sysFee).
		Attributes(attrs...).
		Unsigned()
}
