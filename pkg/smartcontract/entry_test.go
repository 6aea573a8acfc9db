package smartcontract

import (
	"testing"

	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
)

func TestCreateCallScript(t *testing.T) {
	contract := util.Uint160{1, 2, 3}

	script, err := CreateCallScript(contract, "method", 42)
	require.NoError(t, err)

	b := NewBuilder()
	b.InvokeCall(contract, "method", 42)
	expected, err := b.Script()
	require.NoError(t, err)
	require.Equal(t, expected, script)

	_, err = CreateCallScript(contract, "method", make(chan int))
	require.Error(t, err)

	script, err = CreateCallWithAssertScript(contract, "method", 42)
	require.NoError(t, err)
	require.Equal(t, opcode.ASSERT, opcode.Opcode(script[len(script)-1]))
}

func TestCreateCallAndUnwrapIteratorScript(t *testing.T) {
	contract := util.Uint160{1, 2, 3}

	script, err := CreateCallAndUnwrapIteratorScript(contract, "method", 2)
	require.NoError(t, err)
	require.Equal(t, 67, len(script))

	// Prologue: limit, arguments, call, result array.
	require.Equal(t, opcode.PUSH2, opcode.Opcode(script[0]))
	require.Equal(t, opcode.NEWARRAY0, opcode.Opcode(script[1]))
	require.Equal(t, opcode.SYSCALL, opcode.Opcode(script[33]))
	require.Equal(t, opcode.NEWARRAY0, opcode.Opcode(script[38]))

	// Traversal cycle starts with the iterator check.
	require.Equal(t, opcode.OVER, opcode.Opcode(script[39]))
	require.Equal(t, opcode.SYSCALL, opcode.Opcode(script[40]))

	// Exit jumps are backpatched to the result loading code.
	require.Equal(t, opcode.JMPIFNOT, opcode.Opcode(script[45]))
	require.Equal(t, byte(65-45), script[46])
	require.Equal(t, opcode.JMPIF, opcode.Opcode(script[61]))
	require.Equal(t, byte(65-61), script[62])

	// The cycle is closed by a backwards jump.
	require.Equal(t, opcode.JMP, opcode.Opcode(script[63]))
	require.Equal(t, byte(0xE8), script[64]) // -24, to the OVER above.

	// Epilogue drops everything but the result array.
	require.Equal(t, opcode.NIP, opcode.Opcode(script[65]))
	require.Equal(t, opcode.NIP, opcode.Opcode(script[66]))

	// Arguments are packed into an array for the call.
	script, err = CreateCallAndUnwrapIteratorScript(contract, "method", 2, 1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, opcode.PUSH2, opcode.Opcode(script[0]))
	require.Equal(t, []byte{
		byte(opcode.PUSH3), byte(opcode.PUSH2), byte(opcode.PUSH1),
		byte(opcode.PUSH3), byte(opcode.PACK),
	}, script[1:6])

	_, err = CreateCallAndUnwrapIteratorScript(contract, "method", 2, make(chan int))
	require.Error(t, err)
}
