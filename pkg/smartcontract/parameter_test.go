package smartcontract

import (
	"math/big"
	"testing"

	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestNewParameterFromValue(t *testing.T) {
	check := func(value any, expType ParamType, expValue any) {
		p, err := NewParameterFromValue(value)
		require.NoError(t, err)
		require.Equal(t, expType, p.Type)
		require.Equal(t, expValue, p.Value)
	}

	check([]byte{1, 2, 3}, ByteArrayType, []byte{1, 2, 3})
	check("hello", StringType, "hello")
	check(true, BoolType, true)
	check(42, IntegerType, int64(42))
	check(int16(-5), IntegerType, int64(-5))
	check(byte(7), IntegerType, int64(7))
	check(int64(100500), IntegerType, int64(100500))
	check(uint64(100500), IntegerType, big.NewInt(100500))
	check(big.NewInt(7), IntegerType, big.NewInt(7))
	check(util.Uint160{1}, Hash160Type, util.Uint160{1})
	check(util.Uint256{2}, Hash256Type, util.Uint256{2})
	check(nil, AnyType, nil)

	// Nested values.
	check([]any{1, "2"}, ArrayType, []Parameter{
		{Type: IntegerType, Value: int64(1)},
		{Type: StringType, Value: "2"},
	})
	check([]Parameter{{Type: BoolType, Value: false}}, ArrayType,
		[]Parameter{{Type: BoolType, Value: false}})

	_, err := NewParameterFromValue(make(chan int))
	require.Error(t, err)
	_, err = NewParameterFromValue([]any{1, make(chan int)})
	require.Error(t, err)
}

func TestNewParametersFromValues(t *testing.T) {
	res, err := NewParametersFromValues(42, "some", []byte{3, 2, 1})
	require.NoError(t, err)
	require.Equal(t, []Parameter{
		{Type: IntegerType, Value: int64(42)},
		{Type: StringType, Value: "some"},
		{Type: ByteArrayType, Value: []byte{3, 2, 1}},
	}, res)

	_, err = NewParametersFromValues(42, nil, make(map[string]int))
	require.Error(t, err)
}
