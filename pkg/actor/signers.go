package actor

import (
	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/encoding/address"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/wallet"
)

// SignerAccount represents combination of the transaction.Signer and the
// corresponding wallet.Account. It's used to create and sign transactions,
// each transaction has a set of signers that must witness the transaction
// with their signatures.
type SignerAccount struct {
	Signer  transaction.Signer
	Account *wallet.Account
}

// AccountSigner combines the given wallet account with the given witness
// scope. The account must have a contract (it can't be watch-only).
func AccountSigner(acc *wallet.Account, scopes transaction.WitnessScope) SignerAccount {
	return SignerAccount{
		Signer: transaction.Signer{
			Account: acc.Contract.ScriptHash(),
			Scopes:  scopes,
		},
		Account: acc,
	}
}

// AccountSignerNone creates a fee-only signer from the given account, its
// witness is valid in no execution context at all.
func AccountSignerNone(acc *wallet.Account) SignerAccount {
	return AccountSigner(acc, transaction.None)
}

// AccountSignerCalledByEntry creates a signer from the given account with the
// CalledByEntry scope, which is a safe default for NEP-17 transfers.
func AccountSignerCalledByEntry(acc *wallet.Account) SignerAccount {
	return AccountSigner(acc, transaction.CalledByEntry)
}

// AccountSignerGlobal creates a signer from the given account with the Global
// scope. Use with care, its witness is valid for any contract in any context.
func AccountSignerGlobal(acc *wallet.Account) SignerAccount {
	return AccountSigner(acc, transaction.Global)
}

// ContractSigner creates a signer for a deployed contract. Transactions made
// with it get a contract-based witness with an invocation script that pushes
// the given parameters for the contract's `verify` method.
func ContractSigner(hash util.Uint160, scopes transaction.WitnessScope, verifyParams ...any) SignerAccount {
	return SignerAccount{
		Signer: transaction.Signer{
			Account: hash,
			Scopes:  scopes,
		},
		Account: wallet.NewContractAccount(hash, verifyParams...),
	}
}

// TransactionSigner wraps a raw transaction signer whose witness is to be
// supplied externally (for example, a partially-signed transaction exchanged
// with other parties). Sign leaves an empty witness slot for it.
func TransactionSigner(signer transaction.Signer) SignerAccount {
	return SignerAccount{
		Signer: signer,
		Account: &wallet.Account{
			Address: address.Uint160ToString(signer.Account),
		},
	}
}
