package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Nothing more to test here, really.
func TestStringer(t *testing.T) {
	tests := map[Opcode]string{
		ADD:       "ADD",
		SUB:       "SUB",
		PUSHT:     "PUSHT",
		PUSHF:     "PUSHF",
		ASSERTMSG: "ASSERTMSG",
		ABORTMSG:  "ABORTMSG",
		SYSCALL:   "SYSCALL",
		JMPL:      "JMP_L",
	}
	for o, s := range tests {
		assert.Equal(t, s, o.String())
	}
}

func TestIsValid(t *testing.T) {
	require.True(t, IsValid(ADD))
	require.True(t, IsValid(PUSHINT8))
	require.True(t, IsValid(SYSCALL))
	require.False(t, IsValid(Opcode(0x07)))
	require.False(t, IsValid(Opcode(0xFF)))
	require.False(t, IsValid(Opcode(0x42)))
}

func TestOperand(t *testing.T) {
	sz, ok := Operand(PUSHDATA1)
	require.True(t, ok)
	require.Equal(t, OperandSize{Prefix: 1}, sz)

	sz, ok = Operand(SYSCALL)
	require.True(t, ok)
	require.Equal(t, OperandSize{Size: 4}, sz)

	sz, ok = Operand(PUSHINT256)
	require.True(t, ok)
	require.Equal(t, OperandSize{Size: 32}, sz)

	_, ok = Operand(RET)
	require.False(t, ok)
}

func TestPrice(t *testing.T) {
	require.EqualValues(t, 0, Price(SYSCALL))
	require.EqualValues(t, 1, Price(PUSH1))
	require.EqualValues(t, 1<<12, Price(PUSHDATA4))
	require.EqualValues(t, 1<<15, Price(CALLT))
	require.EqualValues(t, 1<<1, Price(DUP))
}
