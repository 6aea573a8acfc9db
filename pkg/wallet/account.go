package wallet

import (
	"errors"
	"fmt"

	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/crypto/hash"
	"github.com/neotoolkit/neokit/pkg/crypto/keys"
	"github.com/neotoolkit/neokit/pkg/encoding/address"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/smartcontract"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
)

// Account represents a NEO account. It holds the private and public key
// along with some metadata.
type Account struct {
	// NEO private key.
	privateKey *keys.PrivateKey

	// Script hash of the account's contract, cached on first derivation.
	scriptHash util.Uint160

	// NEO public address.
	Address string `json:"address"`

	// Label is a label the user had made for this account.
	Label string `json:"label"`

	// Contract is a Contract object which describes the details of the
	// contract. This field can be null (for watch-only address).
	Contract *Contract `json:"contract"`

	// Indicates whether the account is locked by the user.
	// The client shouldn't spend the funds in a locked account.
	Locked bool `json:"lock"`

	// Indicates whether the account is the default change account.
	Default bool `json:"isDefault"`
}

// Contract represents a subset of the smartcontract to embed in the
// Account so it's NEP-6 compliant.
type Contract struct {
	// Script of the contract deployed on the blockchain.
	Script []byte `json:"script"`

	// A list of parameters used deploying this contract.
	Parameters []ContractParam `json:"parameters"`

	// Indicates whether the contract has been deployed to the blockchain.
	Deployed bool `json:"deployed"`

	// InvocationBuilder returns invocation script for deployed contracts.
	// It's used by SignTx to create contract-based witnesses.
	InvocationBuilder func(tx *transaction.Transaction) ([]byte, error) `json:"-"`
}

// ContractParam is a descriptor of a contract parameter
// containing its name and type.
type ContractParam struct {
	Name string                  `json:"name"`
	Type smartcontract.ParamType `json:"type"`
}

// ScriptHash returns the hash of contract's script.
func (c Contract) ScriptHash() util.Uint160 {
	return hash.Hash160(c.Script)
}

// NewAccount creates a new Account with a random generated PrivateKey.
func NewAccount() (*Account, error) {
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(priv), nil
}

// NewAccountFromWIF creates a new Account from the given WIF.
func NewAccountFromWIF(wif string) (*Account, error) {
	privKey, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(privKey), nil
}

// NewAccountFromPrivateKey creates a wallet from the given PrivateKey.
func NewAccountFromPrivateKey(p *keys.PrivateKey) *Account {
	pubKey := p.PublicKey()

	a := &Account{
		privateKey: p,
		Address:    p.Address(),
		Contract: &Contract{
			Script: pubKey.GetVerificationScript(),
			Parameters: []ContractParam{{
				Name: "signature",
				Type: smartcontract.SignatureType,
			}},
		},
	}

	return a
}

// NewMultiSigAccount creates a multi-sig account for the given threshold and
// set of public keys. The account has no private key, it can only be used
// as a part of a bigger signing setup.
func NewMultiSigAccount(m int, pubs []*keys.PublicKey) (*Account, error) {
	script, err := smartcontract.CreateMultiSigRedeemScript(m, pubs)
	if err != nil {
		return nil, err
	}
	params := make([]ContractParam, m)
	for i := range params {
		params[i].Name = fmt.Sprintf("parameter%d", i)
		params[i].Type = smartcontract.SignatureType
	}
	return &Account{
		Address: address.Uint160ToString(hash.Hash160(script)),
		Contract: &Contract{
			Script:     script,
			Parameters: params,
		},
	}, nil
}

// NewContractAccount creates a contract account belonging to some deployed
// contract. SignTx can be called on this account with no error and will
// create invocation script which puts provided parameters on stack for
// use in `verify`.
func NewContractAccount(hash util.Uint160, args ...any) *Account {
	return &Account{
		Address: address.Uint160ToString(hash),
		Contract: &Contract{
			Parameters: make([]ContractParam, len(args)),
			Deployed:   true,
			InvocationBuilder: func(tx *transaction.Transaction) ([]byte, error) {
				w := io.NewBufBinWriter()
				for i := range args {
					p, err := smartcontract.NewParameterFromValue(args[i])
					if err != nil {
						return nil, err
					}
					smartcontract.EmitParameter(w.BinWriter, p)
				}
				if w.Err != nil {
					return nil, w.Err
				}
				return w.Bytes(), nil
			},
		},
	}
}

// ScriptHash returns the script hash (account) that the Account.Address is
// derived from. It never returns an error, so if this Account has an
// invalid Address, it returns a zero uint160.
func (a *Account) ScriptHash() util.Uint160 {
	if a.scriptHash.Equals(util.Uint160{}) {
		a.scriptHash, _ = address.StringToUint160(a.Address)
	}
	return a.scriptHash
}

// GetVerificationScript returns account's verification script.
func (a *Account) GetVerificationScript() []byte {
	if a.Contract != nil {
		return a.Contract.Script
	}
	return a.ScriptHash().BytesBE()
}

// PrivateKey returns private key corresponding to the account if it's
// unlocked, nil otherwise.
func (a *Account) PrivateKey() *keys.PrivateKey {
	return a.privateKey
}

// PublicKey returns the public key of the account if it can be obtained from
// the private key, nil otherwise.
func (a *Account) PublicKey() *keys.PublicKey {
	if a.privateKey == nil {
		return nil
	}
	return a.privateKey.PublicKey()
}

// CanSign returns true when account is capable of signing transactions,
// that is it has a private key.
func (a *Account) CanSign() bool {
	return a.privateKey != nil
}

// IsMultiSig checks whether the account is a multi-sig account, which means
// it has a proper verification script and no private key.
func (a *Account) IsMultiSig() bool {
	return a.Contract != nil && vm.IsMultiSigContract(a.Contract.Script)
}

// SignHashable signs the given Hashable item and returns the signature. If
// this account can't sign (CanSign() returns false) an error is returned.
func (a *Account) SignHashable(net uint32, item hash.Hashable) ([]byte, error) {
	if !a.CanSign() {
		return nil, errors.New("account has no independent signing capability")
	}
	return a.privateKey.SignHashable(net, item), nil
}

// SignTx signs transaction t and updates it's Witnesses.
func (a *Account) SignTx(net uint32, t *transaction.Transaction) error {
	var (
		haveAcc bool
		pos     int
	)
	if a.Locked {
		return errors.New("account is locked")
	}
	if a.Contract == nil {
		return errors.New("account has no contract")
	}
	accHash := a.ScriptHash()
	for i := range t.Signers {
		if t.Signers[i].Account.Equals(accHash) {
			haveAcc = true
			pos = i
			break
		}
	}
	if !haveAcc {
		return errors.New("transaction is not signed by this account")
	}
	if len(t.Scripts) < pos {
		return errors.New("transaction is not yet signed by the previous signer")
	}
	if len(t.Scripts) == pos {
		t.Scripts = append(t.Scripts, transaction.Witness{
			VerificationScript: a.Contract.Script, // Can be nil for deployed contract.
		})
	}
	if a.Contract.Deployed && a.Contract.InvocationBuilder != nil {
		invoc, err := a.Contract.InvocationBuilder(t)
		t.Scripts[pos].InvocationScript = invoc
		return err
	}
	if a.IsMultiSig() {
		return errors.New("can't sign transactions with the multi-signature account")
	}
	if !a.CanSign() {
		return errors.New("account key is not available (need to decrypt?)")
	}
	sign := a.privateKey.SignHashable(net, t)

	invoc := append([]byte{byte(opcode.PUSHDATA1), keys.SignatureLen}, sign...)
	t.Scripts[pos].InvocationScript = invoc
	return nil
}
