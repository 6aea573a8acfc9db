package transaction

import (
	"testing"

	"github.com/neotoolkit/neokit/internal/testserdes"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestAttributeSerDes(t *testing.T) {
	attrs := []*Attribute{
		{Type: HighPriority},
		{Type: OracleResponseT, Value: &OracleResponse{
			ID:     0x1122334455,
			Code:   Success,
			Result: []byte{1, 2, 3},
		}},
		{Type: NotValidBeforeT, Value: &NotValidBefore{
			Height: 100500,
		}},
		{Type: ConflictsT, Value: &Conflicts{
			Hash: util.Uint256{1, 2, 3},
		}},
	}
	for i, attr := range attrs {
		actual := &Attribute{}
		testserdes.EncodeDecodeBinary(t, attr, actual)
		testserdes.MarshalUnmarshalJSON(t, attr, actual)
		require.NotNil(t, attr, "case %d", i)
	}
}

func TestAttributeDecodeBad(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		require.Error(t, testserdes.DecodeBinary([]byte{0x7f}, &Attribute{}))
	})
	t.Run("invalid oracle code", func(t *testing.T) {
		require.Error(t, testserdes.DecodeBinary([]byte{byte(OracleResponseT), 1, 0, 0, 0, 0, 0, 0, 0, 0x42, 0}, &Attribute{}))
	})
	t.Run("nonempty result for non-success oracle", func(t *testing.T) {
		bad := &Attribute{Type: OracleResponseT, Value: &OracleResponse{
			ID:     1,
			Code:   Timeout,
			Result: []byte{1},
		}}
		data, err := testserdes.EncodeBinary(bad)
		require.NoError(t, err)
		require.ErrorIs(t, testserdes.DecodeBinary(data, &Attribute{}), ErrInvalidResult)
	})
}

func TestAttributeJSONBad(t *testing.T) {
	var cases = []string{
		`{}`,
		`{"type":"Unknown"}`,
		`{"type":42}`,
	}
	for i := range cases {
		require.Error(t, (&Attribute{}).UnmarshalJSON([]byte(cases[i])), "case %d", i)
	}
}
