package smartcontract

import (
	"testing"

	"github.com/neotoolkit/neokit/pkg/crypto/keys"
	"github.com/neotoolkit/neokit/pkg/vm"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
)

func TestCreateMultiSigRedeemScript(t *testing.T) {
	var pubs keys.PublicKeys
	for i := 0; i < 3; i++ {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)
		pubs = append(pubs, priv.PublicKey())
	}

	out, err := CreateMultiSigRedeemScript(3, pubs)
	require.NoError(t, err)
	require.True(t, vm.IsMultiSigContract(out))

	m, parsedPubs, err := vm.ParseMultiSigContract(out)
	require.NoError(t, err)
	require.Equal(t, 3, m)
	require.Equal(t, 3, len(parsedPubs))
	// Keys are sorted inside, so expect them in the ascending order.
	for i := range pubs {
		require.Equal(t, pubs[i].Bytes(), parsedPubs[i])
		if i > 0 {
			require.True(t, pubs[i-1].Cmp(pubs[i]) < 0)
		}
	}

	require.Equal(t, opcode.PUSH3, opcode.Opcode(out[0]))

	// Invalid signature thresholds.
	_, err = CreateMultiSigRedeemScript(0, pubs)
	require.Error(t, err)
	_, err = CreateMultiSigRedeemScript(4, pubs)
	require.Error(t, err)

	// Too many keys, even for a low threshold.
	large := make(keys.PublicKeys, 1025)
	for i := range large {
		large[i] = pubs[0]
	}
	_, err = CreateMultiSigRedeemScript(1, large)
	require.Error(t, err)
}

func TestMultiSigRedeemScriptKeyOrder(t *testing.T) {
	// The 0x02-prefixed key must be emitted first even though its X
	// coordinate is larger, keys are ordered by their encoded form.
	k3, err := keys.NewPublicKeyFromString("036b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296")
	require.NoError(t, err)
	k2, err := keys.NewPublicKeyFromString("02e2534a3532d08fbba02dde659ee62bd0031fe2db785596ef509302446b030852")
	require.NoError(t, err)

	out, err := CreateMultiSigRedeemScript(1, keys.PublicKeys{k3, k2})
	require.NoError(t, err)
	_, parsedPubs, err := vm.ParseMultiSigContract(out)
	require.NoError(t, err)
	require.Equal(t, k2.Bytes(), parsedPubs[0])
	require.Equal(t, k3.Bytes(), parsedPubs[1])
}

func TestDefaultAndMajorityScripts(t *testing.T) {
	var pubs keys.PublicKeys
	for i := 0; i < 7; i++ {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)
		pubs = append(pubs, priv.PublicKey())
	}

	require.Equal(t, 5, GetDefaultHonestNodeCount(7))
	require.Equal(t, 4, GetMajorityHonestNodeCount(7))

	out, err := CreateDefaultMultiSigRedeemScript(pubs)
	require.NoError(t, err)
	m, _, err := vm.ParseMultiSigContract(out)
	require.NoError(t, err)
	require.Equal(t, 5, m)

	out, err = CreateMajorityMultiSigRedeemScript(pubs)
	require.NoError(t, err)
	m, _, err = vm.ParseMultiSigContract(out)
	require.NoError(t, err)
	require.Equal(t, 4, m)
}
