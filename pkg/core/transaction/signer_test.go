package transaction

import (
	"testing"

	"github.com/neotoolkit/neokit/internal/testserdes"
	"github.com/neotoolkit/neokit/pkg/crypto/keys"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestSignerEncodeDecode(t *testing.T) {
	expected := &Signer{
		Account:          util.Uint160{1, 2, 3, 4, 5},
		Scopes:           CustomContracts,
		AllowedContracts: []util.Uint160{{1, 2, 3, 4}, {6, 7, 8, 9}},
	}
	actual := &Signer{}
	testserdes.EncodeDecodeBinary(t, expected, actual)
}

func TestSignerMarshallUnmarshallJSON(t *testing.T) {
	expected := &Signer{
		Account:          util.Uint160{1, 2, 3, 4, 5},
		Scopes:           CustomContracts,
		AllowedContracts: []util.Uint160{{1, 2, 3, 4}, {6, 7, 8, 9}},
	}
	actual := &Signer{}
	testserdes.MarshalUnmarshalJSON(t, expected, actual)
}

func TestSignerEncodeDecodeWithRules(t *testing.T) {
	b := true
	expected := &Signer{
		Account: util.Uint160{1, 2, 3, 4, 5},
		Scopes:  CalledByEntry | Rules,
		Rules: []WitnessRule{{
			Action:    WitnessAllow,
			Condition: (*ConditionBoolean)(&b),
		}},
	}
	actual := &Signer{}
	testserdes.EncodeDecodeBinary(t, expected, actual)
}

func TestSignerDecodeBad(t *testing.T) {
	t.Run("invalid scope", func(t *testing.T) {
		bin := append(make([]byte, util.Uint160Size), 0xff)
		require.Error(t, testserdes.DecodeBinary(bin, &Signer{}))
	})
	t.Run("too many allowed contracts", func(t *testing.T) {
		s := &Signer{
			Account: util.Uint160{1, 2, 3},
			Scopes:  CustomContracts,
		}
		for i := 0; i <= maxSubitems; i++ {
			s.AllowedContracts = append(s.AllowedContracts, util.Uint160{byte(i)})
		}
		bin, err := testserdes.EncodeBinary(s)
		require.NoError(t, err)
		require.Error(t, testserdes.DecodeBinary(bin, &Signer{}))
	})
}

func TestSignerSetAllowedContracts(t *testing.T) {
	s := &Signer{
		Account: util.Uint160{1, 2, 3},
		Scopes:  CalledByEntry,
	}
	contracts := []util.Uint160{{5, 6, 7}}
	require.NoError(t, s.SetAllowedContracts(contracts))
	require.Equal(t, CalledByEntry|CustomContracts, s.Scopes)
	require.Equal(t, contracts, s.AllowedContracts)

	require.NoError(t, s.SetAllowedContracts(nil))
	require.Equal(t, CalledByEntry, s.Scopes)
	require.Nil(t, s.AllowedContracts)

	s.Scopes = Global
	require.Error(t, s.SetAllowedContracts(contracts))

	s.Scopes = None
	var tooMany []util.Uint160
	for i := 0; i <= maxSubitems; i++ {
		tooMany = append(tooMany, util.Uint160{byte(i)})
	}
	require.Error(t, s.SetAllowedContracts(tooMany))
}

func TestSignerSetAllowedGroups(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	groups := []*keys.PublicKey{priv.PublicKey()}

	s := &Signer{
		Account: util.Uint160{1, 2, 3},
		Scopes:  None,
	}
	require.NoError(t, s.SetAllowedGroups(groups))
	require.Equal(t, CustomGroups, s.Scopes)

	s.Scopes = Global
	require.Error(t, s.SetAllowedGroups(groups))
}

func TestSignerSetRules(t *testing.T) {
	b := true
	rules := []WitnessRule{{
		Action:    WitnessAllow,
		Condition: (*ConditionBoolean)(&b),
	}}

	s := &Signer{
		Account: util.Uint160{1, 2, 3},
		Scopes:  CalledByEntry,
	}
	require.NoError(t, s.SetRules(rules))
	require.Equal(t, CalledByEntry|Rules, s.Scopes)
	require.Equal(t, rules, s.Rules)

	s.Scopes = Global
	require.Error(t, s.SetRules(rules))

	s.Scopes = None
	tooDeep := []WitnessRule{{
		Action: WitnessAllow,
		Condition: &ConditionNot{
			Condition: &ConditionNot{
				Condition: (*ConditionBoolean)(&b),
			},
		},
	}}
	require.Error(t, s.SetRules(tooDeep))
}

func TestSignerCopy(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	b := true
	s := &Signer{
		Account:          util.Uint160{1, 2, 3},
		Scopes:           CustomContracts | CustomGroups | Rules,
		AllowedContracts: []util.Uint160{{4, 5, 6}},
		AllowedGroups:    []*keys.PublicKey{priv.PublicKey()},
		Rules: []WitnessRule{{
			Action:    WitnessAllow,
			Condition: (*ConditionBoolean)(&b),
		}},
	}
	cp := s.Copy()
	require.Equal(t, s, cp)

	cp.AllowedContracts[0] = util.Uint160{9}
	require.NotEqual(t, s.AllowedContracts, cp.AllowedContracts)

	// Group keys are shared, but the slice itself is not.
	require.Same(t, s.AllowedGroups[0], cp.AllowedGroups[0])
	cp.AllowedGroups[0] = nil
	require.NotNil(t, s.AllowedGroups[0])

	var nilSigner *Signer
	require.Nil(t, nilSigner.Copy())
}
