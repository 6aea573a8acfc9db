package smartcontract

import (
	"testing"

	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	require.Equal(t, 0, b.Len())
	b.InvokeMethod(util.Uint160{1, 2, 3}, "method")
	require.Equal(t, 38, b.Len())
	b.InvokeMethod(util.Uint160{1, 2, 3}, "transfer", util.Uint160{3, 2, 1}, util.Uint160{9, 8, 7}, 100500)
	require.Equal(t, 128, b.Len())
	s, err := b.Script()
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, 128, len(s))
	b.Reset()
	require.Equal(t, 0, b.Len())

	// InvokeMethod drops the result, InvokeCall leaves it on the stack.
	b.InvokeCall(util.Uint160{1, 2, 3}, "method")
	require.Equal(t, 37, b.Len())
	s, err = b.Script()
	require.NoError(t, err)
	require.NotEqual(t, opcode.DROP, opcode.Opcode(s[len(s)-1]))

	b.Reset()
	b.InvokeWithAssert(util.Uint160{1, 2, 3}, "method")
	s, err = b.Script()
	require.NoError(t, err)
	require.Equal(t, 38, len(s))
	require.Equal(t, opcode.ASSERT, opcode.Opcode(s[len(s)-1]))

	// Bad parameter types break the script.
	b.Reset()
	b.InvokeMethod(util.Uint160{1, 2, 3}, "method", make(chan int))
	_, err = b.Script()
	require.Error(t, err)
}

func TestEmitParameter(t *testing.T) {
	bad := []Parameter{
		{Type: BoolType, Value: "not a bool"},
		{Type: IntegerType, Value: "not an int"},
		{Type: ByteArrayType, Value: 42},
		{Type: StringType, Value: 42},
		{Type: Hash160Type, Value: []byte{1, 2, 3}},
		{Type: Hash256Type, Value: util.Uint160{}},
		{Type: ArrayType, Value: 42},
		{Type: MapType, Value: 42},
		{Type: AnyType, Value: 42},
		{Type: InteropInterfaceType, Value: nil},
	}
	for _, p := range bad {
		t.Run(p.Type.String(), func(t *testing.T) {
			b := NewBuilder()
			EmitParameter(b.bw.BinWriter, p)
			_, err := b.Script()
			require.Error(t, err)
		})
	}

	// Array and Map are packed preserving the ordering.
	b := NewBuilder()
	EmitParameter(b.bw.BinWriter, Parameter{Type: ArrayType, Value: []Parameter{
		{Type: IntegerType, Value: int64(1)},
		{Type: IntegerType, Value: int64(2)},
	}})
	s, err := b.Script()
	require.NoError(t, err)
	require.Equal(t, []byte{
		byte(opcode.PUSH2), byte(opcode.PUSH1),
		byte(opcode.PUSH2), byte(opcode.PACK),
	}, s)

	b.Reset()
	EmitParameter(b.bw.BinWriter, Parameter{Type: MapType, Value: []ParameterPair{{
		Key:   Parameter{Type: IntegerType, Value: int64(1)},
		Value: Parameter{Type: BoolType, Value: true},
	}}})
	s, err = b.Script()
	require.NoError(t, err)
	require.Equal(t, []byte{
		byte(opcode.PUSHT), byte(opcode.PUSH1),
		byte(opcode.PUSH1), byte(opcode.PACKMAP),
	}, s)

	b.Reset()
	EmitParameter(b.bw.BinWriter, Parameter{Type: ArrayType, Value: []Parameter{}})
	s, err = b.Script()
	require.NoError(t, err)
	require.Equal(t, []byte{byte(opcode.NEWARRAY0)}, s)

	b.Reset()
	EmitParameter(b.bw.BinWriter, Parameter{Type: AnyType, Value: nil})
	s, err = b.Script()
	require.NoError(t, err)
	require.Equal(t, []byte{byte(opcode.PUSHNULL)}, s)
}
