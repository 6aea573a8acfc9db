package actor

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/neorpc/result"
)

// Transaction construction errors.
var (
	ErrNoScript     = errors.New("no script")
	ErrNoSigners    = errors.New("no signers")
	ErrManySigners  = errors.New("too many signers")
	ErrDupSigners   = errors.New("signers should be unique")
	ErrNegativeFee  = errors.New("negative fee")
	ErrFaultedState = errors.New("test invocation faulted")
	ErrTxTooBig     = errors.New("transaction exceeds size limit")
)

// maxSigners is the maximum number of signers a transaction can have (the
// limit shared with attributes).
const maxSigners = 16

// Builder accumulates transaction fields and then completes the transaction
// with network-derived values (fees, height-based lifetime and random nonce)
// in Unsigned or Signed. It's reusable, one builder can create any number of
// transactions.
type Builder struct {
	ra      RPCActor
	version *result.Version

	script      []byte
	signers     []SignerAccount
	attrs       []transaction.Attribute
	nonce       *uint32
	vub         *uint32
	sysFee      *int64
	extraSysFee int64
	extraNetFee int64
}

// NewBuilder creates a Builder that will use the given RPC interface and the
// given set of signers for all transactions it creates.
func NewBuilder(ra RPCActor, signers ...SignerAccount) *Builder {
	return &Builder{
		ra:      ra,
		signers: signers,
	}
}

// Script sets the script to be executed by the transaction.
func (b *Builder) Script(script []byte) *Builder {
	b.script = script
	return b
}

// Attributes appends the given attributes to the transaction.
func (b *Builder) Attributes(attrs ...transaction.Attribute) *Builder {
	b.attrs = append(b.attrs, attrs...)
	return b
}

// Nonce sets an explicit nonce value. By default a random one is used.
func (b *Builder) Nonce(nonce uint32) *Builder {
	b.nonce = &nonce
	return b
}

// ValidUntilBlock sets an explicit transaction expiration height. By default
// it's derived from the current height.
func (b *Builder) ValidUntilBlock(vub uint32) *Builder {
	b.vub = &vub
	return b
}

// SystemFee sets an explicit system fee value skipping the test invocation
// that is otherwise used to derive it.
func (b *Builder) SystemFee(fee int64) *Builder {
	b.sysFee = &fee
	return b
}

// AdditionalSystemFee adds the given amount of GAS on top of the system fee
// derived from the test invocation.
func (b *Builder) AdditionalSystemFee(fee int64) *Builder {
	b.extraSysFee = fee
	return b
}

// AdditionalNetworkFee adds the given amount of GAS on top of the calculated
// network fee. It can be used to give the transaction a priority boost.
func (b *Builder) AdditionalNetworkFee(fee int64) *Builder {
	b.extraNetFee = fee
	return b
}

// Unsigned validates accumulated fields and creates a transaction with
// signers, fees and ValidUntilBlock set, but without witnesses filled in (a
// witness template with the verification script is added for every
// non-deployed signer). No network requests are performed if all of the
// system fee, ValidUntilBlock and nonce are set explicitly and network fee
// can be derived, otherwise test invocation, height and fee requests are made
// through the RPCActor.
func (b *Builder) Unsigned() (*transaction.Transaction, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	txSigners := make([]transaction.Signer, len(b.signers))
	for i := range b.signers {
		txSigners[i] = b.signers[i].Signer
	}

	sysFee, err := b.systemFee(txSigners)
	if err != nil {
		return nil, err
	}

	tx := transaction.New(b.script, sysFee)
	tx.Signers = txSigners
	tx.Attributes = append(tx.Attributes, b.attrs...)

	if b.nonce != nil {
		tx.Nonce = *b.nonce
	} else {
		tx.Nonce, err = randomNonce()
		if err != nil {
			return nil, fmt.Errorf("randomizing nonce: %w", err)
		}
	}

	if b.vub != nil {
		tx.ValidUntilBlock = *b.vub
	} else {
		tx.ValidUntilBlock, err = b.calculateValidUntilBlock()
		if err != nil {
			return nil, fmt.Errorf("calculating validUntilBlock: %w", err)
		}
	}

	tx.Scripts = make([]transaction.Witness, len(b.signers))
	for i := range b.signers {
		if c := b.signers[i].Account.Contract; c != nil && !c.Deployed {
			tx.Scripts[i].VerificationScript = c.Script
		}
	}
	// CalculateNetworkFee doesn't call Hash or Size, only serializes the
	// transaction via Bytes, so it's safe wrt internal caching.
	tx.NetworkFee, err = b.ra.CalculateNetworkFee(tx)
	if err != nil {
		return nil, fmt.Errorf("calculating network fee: %w", err)
	}
	tx.NetworkFee += b.extraNetFee

	if size := len(tx.Bytes()); size > transaction.MaxTransactionSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTxTooBig, size)
	}
	return tx, nil
}

// Signed creates a transaction via Unsigned and signs it with all of the
// builder's signers (see also Actor.Sign).
func (b *Builder) Signed() (*transaction.Transaction, error) {
	tx, err := b.Unsigned()
	if err != nil {
		return nil, err
	}
	version, err := b.getVersion()
	if err != nil {
		return nil, err
	}
	for i, signer := range b.signers {
		if signer.Account.Contract == nil {
			continue
		}
		err := signer.Account.SignTx(version.Protocol.Network, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to add witness for signer #%d (%s): %w", i, signer.Account.Address, err)
		}
	}
	return tx, nil
}

func (b *Builder) validate() error {
	if len(b.script) == 0 {
		return ErrNoScript
	}
	if len(b.signers) == 0 {
		return ErrNoSigners
	}
	if len(b.signers) > maxSigners {
		return fmt.Errorf("%w: %d", ErrManySigners, len(b.signers))
	}
	for i := 0; i < len(b.signers); i++ {
		for j := i + 1; j < len(b.signers); j++ {
			if b.signers[i].Signer.Account.Equals(b.signers[j].Signer.Account) {
				return ErrDupSigners
			}
		}
	}
	if b.sysFee != nil && *b.sysFee < 0 || b.extraSysFee < 0 || b.extraNetFee < 0 {
		return ErrNegativeFee
	}
	return nil
}

// systemFee returns an explicitly set system fee or performs a test
// invocation to measure it.
func (b *Builder) systemFee(txSigners []transaction.Signer) (int64, error) {
	if b.sysFee != nil {
		return *b.sysFee + b.extraSysFee, nil
	}
	r, err := b.ra.InvokeScript(b.script, txSigners)
	if err != nil {
		return 0, fmt.Errorf("test invocation failed: %w", err)
	}
	if r.State != vmHaltState {
		var d string
		if r.FaultException != nil {
			d = *r.FaultException
		}
		return 0, fmt.Errorf("%w (%s): %s", ErrFaultedState, r.State, d)
	}
	return r.GasConsumed + b.extraSysFee, nil
}

func (b *Builder) getVersion() (*result.Version, error) {
	if b.version == nil {
		version, err := b.ra.GetVersion()
		if err != nil {
			return nil, fmt.Errorf("failed to get version: %w", err)
		}
		b.version = version
	}
	return b.version, nil
}

func (b *Builder) calculateValidUntilBlock() (uint32, error) {
	version, err := b.getVersion()
	if err != nil {
		return 0, err
	}
	blockCount, err := b.ra.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("can't get block count: %w", err)
	}
	return blockCount + uint32(version.Protocol.ValidatorsCount) + 1, nil
}

func randomNonce() (uint32, error) {
	var buf [4]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
