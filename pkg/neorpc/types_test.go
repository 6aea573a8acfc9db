package neorpc

import (
	"encoding/json"
	"testing"

	"github.com/neotoolkit/neokit/pkg/core/transaction"
	"github.com/neotoolkit/neokit/pkg/encoding/address"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestSignerWithWitnessMarshalUnmarshalJSON(t *testing.T) {
	s := &SignerWithWitness{
		Signer: transaction.Signer{
			Account:          util.Uint160{1, 2, 3},
			Scopes:           transaction.CalledByEntry | transaction.CustomContracts,
			AllowedContracts: []util.Uint160{{1, 2, 3, 4}},
		},
		Witness: transaction.Witness{
			InvocationScript:   []byte{1, 2, 3},
			VerificationScript: []byte{4, 5, 6},
		},
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.Contains(t, string(data), `"0x`+s.Account.StringLE()+`"`)

	actual := &SignerWithWitness{}
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, s, actual)

	// Address instead of a hex hash.
	data = []byte(`{"account":"` + address.Uint160ToString(s.Account) + `","scopes":"CalledByEntry"}`)
	actual = &SignerWithWitness{}
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, s.Account, actual.Account)
	require.Equal(t, transaction.CalledByEntry, actual.Scopes)

	// Not an account at all.
	data = []byte(`{"account":"not-an-account","scopes":"CalledByEntry"}`)
	require.Error(t, json.Unmarshal(data, &SignerWithWitness{}))
}

func TestErrorIs(t *testing.T) {
	err := NewInvalidParamsError("some text")
	require.ErrorIs(t, err, NewInvalidParamsError("different text"))
	require.NotErrorIs(t, err, NewInternalServerError("some text"))

	var wrapped error = NewInternalServerError("boom")
	require.ErrorIs(t, wrapped, NewInternalServerError(""))
	require.Contains(t, wrapped.Error(), "boom")
}
