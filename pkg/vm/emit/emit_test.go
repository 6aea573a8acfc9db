package emit

import (
	"encoding/binary"
	"errors"
	"math/big"
	"testing"

	"github.com/neotoolkit/neokit/pkg/interop/interopnames"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/smartcontract/callflag"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitInt(t *testing.T) {
	t.Run("minus one", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, -1)
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHM1, result[0])
	})

	t.Run("zero", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 0)
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSH0, result[0])
	})

	t.Run("one-byte int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 16)
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSH16, result[0])
	})

	t.Run("big negative int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, -800000)
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHINT32, result[0])
		assert.Equal(t, []byte{0x00, 0xCB, 0xF3, 0xFF}, result[1:])
	})

	t.Run("medium int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 1000)
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHINT16, result[0])
		assert.EqualValues(t, 1000, binary.LittleEndian.Uint16(result[1:3]))
	})

	t.Run("byte-sized int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 100)
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHINT8, result[0])
		assert.EqualValues(t, 100, result[1])
	})
}

func TestEmitBigInt(t *testing.T) {
	t.Run("small int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		BigInt(buf.BinWriter, big.NewInt(10))
		result := buf.Bytes()
		require.Equal(t, []byte{byte(opcode.PUSH10)}, result)
	})

	t.Run("int256", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		n := new(big.Int).Lsh(big.NewInt(1), 254)
		BigInt(buf.BinWriter, n)
		result := buf.Bytes()
		require.EqualValues(t, opcode.PUSHINT256, result[0])
		require.Equal(t, 33, len(result))
	})

	t.Run("overflow", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		n := new(big.Int).Lsh(big.NewInt(1), 255)
		BigInt(buf.BinWriter, n)
		require.Error(t, buf.Err)
	})
}

func TestBytes(t *testing.T) {
	t.Run("small slice", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Bytes(buf.BinWriter, []byte{0xAA})
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA1, result[0])
		assert.EqualValues(t, 1, result[1])
		assert.EqualValues(t, 0xAA, result[2])
	})

	t.Run("medium slice", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Bytes(buf.BinWriter, make([]byte, 300))
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA2, result[0])
		assert.EqualValues(t, 300, binary.LittleEndian.Uint16(result[1:3]))
	})

	t.Run("big slice", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Bytes(buf.BinWriter, make([]byte, 100000))
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA4, result[0])
		assert.EqualValues(t, 100000, binary.LittleEndian.Uint32(result[1:5]))
	})

	t.Run("prefix boundaries", func(t *testing.T) {
		for _, tc := range []struct {
			size int
			op   opcode.Opcode
		}{
			{0xff, opcode.PUSHDATA1},
			{0x100, opcode.PUSHDATA2},
			{0xffff, opcode.PUSHDATA2},
			{0x10000, opcode.PUSHDATA4},
		} {
			buf := io.NewBufBinWriter()
			Bytes(buf.BinWriter, make([]byte, tc.size))
			result := buf.Bytes()
			assert.EqualValues(t, tc.op, result[0], "size %#x", tc.size)
			switch tc.op {
			case opcode.PUSHDATA1:
				assert.EqualValues(t, tc.size, result[1])
				assert.Equal(t, 2+tc.size, len(result))
			case opcode.PUSHDATA2:
				assert.EqualValues(t, tc.size, binary.LittleEndian.Uint16(result[1:3]))
				assert.Equal(t, 3+tc.size, len(result))
			default:
				assert.EqualValues(t, tc.size, binary.LittleEndian.Uint32(result[1:5]))
				assert.Equal(t, 5+tc.size, len(result))
			}
		}
	})
}

func TestEmitArray(t *testing.T) {
	t.Run("good", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		u160 := util.Uint160{1, 2, 3}
		u256 := util.Uint256{1, 2, 3}
		veryBig := new(big.Int).SetUint64(1 << 63)
		Array(buf.BinWriter, u160, u256, veryBig,
			[]any{int64(1), int64(2)}, nil, int64(1), "str", true, []byte{0xCA, 0xFE})
		require.NoError(t, buf.Err)

		res := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA1, res[0])
		assert.EqualValues(t, 2, res[1])
		assert.EqualValues(t, []byte{0xCA, 0xFE}, res[2:4])
		assert.EqualValues(t, opcode.PUSHT, res[4])
		assert.EqualValues(t, opcode.PUSHDATA1, res[5])
		assert.EqualValues(t, 3, res[6])
		assert.EqualValues(t, []byte("str"), res[7:10])
		assert.EqualValues(t, opcode.PUSH1, res[10])
		assert.EqualValues(t, opcode.PUSHNULL, res[11])
	})

	t.Run("empty", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Array(buf.BinWriter)
		require.NoError(t, buf.Err)
		require.Equal(t, []byte{byte(opcode.NEWARRAY0)}, buf.Bytes())
	})

	t.Run("invalid type", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Array(buf.BinWriter, struct{}{})
		require.Error(t, buf.Err)
	})
}

func TestEmitBool(t *testing.T) {
	buf := io.NewBufBinWriter()
	Bool(buf.BinWriter, true)
	Bool(buf.BinWriter, false)
	result := buf.Bytes()
	assert.EqualValues(t, opcode.PUSHT, result[0])
	assert.EqualValues(t, opcode.PUSHF, result[1])
}

func TestEmitString(t *testing.T) {
	buf := io.NewBufBinWriter()
	str := "City of Zion"
	String(buf.BinWriter, str)
	assert.Equal(t, buf.Len(), len(str)+2)
	assert.Equal(t, buf.Bytes()[2:], []byte(str))
}

func TestEmitSyscall(t *testing.T) {
	syscalls := []string{
		interopnames.SystemRuntimeLog,
		interopnames.SystemRuntimeNotify,
		"System.Runtime.Whatever",
	}

	buf := io.NewBufBinWriter()
	for _, syscall := range syscalls {
		Syscall(buf.BinWriter, syscall)
		result := buf.Bytes()
		assert.Equal(t, 5, len(result))
		assert.EqualValues(t, opcode.SYSCALL, result[0])
		assert.EqualValues(t, interopnames.ToID([]byte(syscall)), binary.LittleEndian.Uint32(result[1:]))
		buf.Reset()
	}

	t.Run("empty syscall", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Syscall(buf.BinWriter, "")
		assert.Error(t, buf.Err)
	})

	t.Run("empty syscall after error", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		err := errors.New("first error")

		buf.Err = err
		Syscall(buf.BinWriter, "System.Runtime.Log")
		assert.Equal(t, err, buf.Err)
	})
}

func TestJmp(t *testing.T) {
	const label = 0x23

	t.Run("short", func(t *testing.T) {
		ops := []opcode.Opcode{opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT, opcode.CALL}
		for i := range ops {
			t.Run(ops[i].String(), func(t *testing.T) {
				buf := io.NewBufBinWriter()
				Jmp(buf.BinWriter, ops[i], label)
				assert.NoError(t, buf.Err)

				result := buf.Bytes()
				assert.Equal(t, 2, len(result))
				assert.EqualValues(t, ops[i], result[0])
				assert.EqualValues(t, 0x23, result[1])
			})
		}
	})

	t.Run("long", func(t *testing.T) {
		ops := []opcode.Opcode{opcode.JMPL, opcode.JMPIFL, opcode.JMPIFNOTL, opcode.CALLL}
		for i := range ops {
			t.Run(ops[i].String(), func(t *testing.T) {
				buf := io.NewBufBinWriter()
				Jmp(buf.BinWriter, ops[i], label)
				assert.NoError(t, buf.Err)

				result := buf.Bytes()
				assert.Equal(t, 5, len(result))
				assert.EqualValues(t, ops[i], result[0])
				assert.EqualValues(t, 0x23, binary.LittleEndian.Uint16(result[1:]))
			})
		}
	})

	t.Run("label too big for short form", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Jmp(buf.BinWriter, opcode.JMP, 0x100)
		assert.Error(t, buf.Err)

		buf = io.NewBufBinWriter()
		Jmp(buf.BinWriter, opcode.JMPL, 0x100)
		assert.NoError(t, buf.Err)
	})

	t.Run("not a jump instruction", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Jmp(buf.BinWriter, opcode.ABORT, label)
		assert.Error(t, buf.Err)
	})
}

func TestJmpDisassembles(t *testing.T) {
	buf := io.NewBufBinWriter()
	Jmp(buf.BinWriter, opcode.JMP, 4)
	Jmp(buf.BinWriter, opcode.JMPL, 7)
	Opcodes(buf.BinWriter, opcode.RET)
	require.NoError(t, buf.Err)

	instrs, err := vm.Disassemble(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 3, len(instrs))
	require.Equal(t, opcode.JMP, instrs[0].Opcode)
	require.Equal(t, []byte{4}, instrs[0].Param)
	require.Equal(t, opcode.JMPL, instrs[1].Opcode)
	require.Equal(t, 4, len(instrs[1].Param))
	require.Equal(t, opcode.RET, instrs[2].Opcode)
}

func TestEmitAppCall(t *testing.T) {
	buf := io.NewBufBinWriter()
	AppCall(buf.BinWriter, util.Uint160{}, "foo", callflag.All, int64(1))
	require.NoError(t, buf.Err)

	res := buf.Bytes()
	// The script ends with a System.Contract.Call syscall.
	require.EqualValues(t, opcode.SYSCALL, res[len(res)-5])
	require.EqualValues(t, interopnames.ToID([]byte(interopnames.SystemContractCall)),
		binary.LittleEndian.Uint32(res[len(res)-4:]))
}
