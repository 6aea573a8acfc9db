// Package emit provides a convenient way to emit NeoVM instruction sequences
// into any io.BinWriter.
package emit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/neotoolkit/neokit/pkg/encoding/bigint"
	"github.com/neotoolkit/neokit/pkg/interop/interopnames"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/smartcontract/callflag"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
)

// Instruction emits a VM Instruction with data inside.
func Instruction(w *io.BinWriter, op opcode.Opcode, b []byte) {
	w.WriteB(byte(op))
	w.WriteBytes(b)
}

// Opcodes emits a single VM Instruction without arguments.
func Opcodes(w *io.BinWriter, ops ...opcode.Opcode) {
	for _, op := range ops {
		w.WriteB(byte(op))
	}
}

// Bool emits a bool type to the given buffer.
func Bool(w *io.BinWriter, ok bool) {
	if ok {
		Opcodes(w, opcode.PUSHT)
		return
	}
	Opcodes(w, opcode.PUSHF)
}

func padRight(s int, buf []byte) []byte {
	l := len(buf)
	buf = buf[:s]
	if buf[l-1]&0x80 != 0 {
		for i := l; i < s; i++ {
			buf[i] = 0xFF
		}
	}
	return buf
}

// Int emits an int type to the given buffer.
func Int(w *io.BinWriter, i int64) {
	if smallInt(w, i) {
		return
	}
	bigInt(w, big.NewInt(i), false)
}

// BigInt emits a big-integer type to the given buffer.
func BigInt(w *io.BinWriter, n *big.Int) {
	bigInt(w, n, true)
}

func smallInt(w *io.BinWriter, i int64) bool {
	switch {
	case i == -1:
		Opcodes(w, opcode.PUSHM1)
	case i >= 0 && i < 16:
		val := opcode.Opcode(int(opcode.PUSH0) + int(i))
		Opcodes(w, val)
	case i == 16:
		Opcodes(w, opcode.PUSH16)
	default:
		return false
	}
	return true
}

func bigInt(w *io.BinWriter, n *big.Int, trySmall bool) {
	if w.Err != nil {
		return
	}
	if trySmall && n.IsInt64() && smallInt(w, n.Int64()) {
		return
	}

	if err := checkIntSize(n); err != nil {
		w.Err = err
		return
	}

	buf := bigint.ToPreallocatedBytes(n, make([]byte, 0, 32))
	if len(buf) == 0 {
		Opcodes(w, opcode.PUSH0)
		return
	}
	padSize := byte(8 - bits.LeadingZeros8(byte(len(buf)-1)))
	Opcodes(w, opcode.PUSHINT8+opcode.Opcode(padSize))
	w.WriteBytes(padRight(1<<padSize, buf))
}

func checkIntSize(n *big.Int) error {
	limit := big.NewInt(1)
	limit.Lsh(limit, 255)

	if n.Sign() >= 0 {
		if n.Cmp(limit) >= 0 {
			return errors.New("integer does not fit into 32 bytes")
		}
		return nil
	}
	limit.Neg(limit)
	if n.Cmp(limit) < 0 {
		return errors.New("integer does not fit into 32 bytes")
	}
	return nil
}

// Array emits an array of elements to the given buffer. The elements are
// pushed in the reverse order and then packed, so that the resulting VM array
// keeps the original ordering.
func Array(w *io.BinWriter, es ...any) {
	if len(es) == 0 {
		Opcodes(w, opcode.NEWARRAY0)
		return
	}
	for i := len(es) - 1; i >= 0; i-- {
		switch e := es[i].(type) {
		case []any:
			Array(w, e...)
		case int64:
			Int(w, e)
		case uint64:
			BigInt(w, new(big.Int).SetUint64(e))
		case int32:
			Int(w, int64(e))
		case uint32:
			Int(w, int64(e))
		case int16:
			Int(w, int64(e))
		case uint16:
			Int(w, int64(e))
		case int8:
			Int(w, int64(e))
		case byte:
			Int(w, int64(e))
		case int:
			Int(w, int64(e))
		case *big.Int:
			BigInt(w, e)
		case string:
			String(w, e)
		case util.Uint160:
			Bytes(w, e.BytesBE())
		case util.Uint256:
			Bytes(w, e.BytesBE())
		case []byte:
			Bytes(w, e)
		case bool:
			Bool(w, e)
		case nil:
			Opcodes(w, opcode.PUSHNULL)
		default:
			if es[i] != nil {
				w.Err = fmt.Errorf("unsupported type: %T", e)
				return
			}
			Opcodes(w, opcode.PUSHNULL)
		}
	}
	Int(w, int64(len(es)))
	Opcodes(w, opcode.PACK)
}

// String emits a string to the given buffer.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Bytes emits a byte array to the given buffer.
func Bytes(w *io.BinWriter, b []byte) {
	var n = len(b)

	switch {
	case n <= 255:
		Instruction(w, opcode.PUSHDATA1, []byte{byte(n)})
	case n <= 65535:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(n))
		Instruction(w, opcode.PUSHDATA2, buf)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(n))
		Instruction(w, opcode.PUSHDATA4, buf)
	}
	w.WriteBytes(b)
}

// Syscall emits the syscall node to the given buffer.
func Syscall(w *io.BinWriter, api string) {
	if w.Err != nil {
		return
	} else if len(api) == 0 {
		w.Err = errors.New("syscall api cannot be of length 0")
		return
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, interopnames.ToID([]byte(api)))
	Instruction(w, opcode.SYSCALL, buf)
}

// Jmp emits a jump instruction with the label to the given buffer. Short
// jump forms carry a single-byte offset, so the label must fit into a byte
// for them.
func Jmp(w *io.BinWriter, op opcode.Opcode, label uint16) {
	if w.Err != nil {
		return
	} else if !isInstructionJmp(op) {
		w.Err = fmt.Errorf("opcode %s is not a jump or call type", op.String())
		return
	}
	sz, _ := opcode.Operand(op)
	buf := make([]byte, sz.Size)
	if sz.Size == 1 {
		if label > math.MaxUint8 {
			w.Err = fmt.Errorf("label %d doesn't fit into short %s", label, op.String())
			return
		}
		buf[0] = byte(label)
	} else {
		binary.LittleEndian.PutUint16(buf, label)
	}
	Instruction(w, op, buf)
}

// Call emits a call Instruction with the label to the given buffer.
func Call(w *io.BinWriter, op opcode.Opcode, label uint16) {
	Jmp(w, op, label)
}

func isInstructionJmp(op opcode.Opcode) bool {
	return opcode.JMP <= op && op <= opcode.CALLL
}

// AppCallNoArgs emits a call to the provided contract.
func AppCallNoArgs(w *io.BinWriter, scriptHash util.Uint160, operation string, f callflag.CallFlag) {
	Int(w, int64(f))
	String(w, operation)
	Bytes(w, scriptHash.BytesBE())
	Syscall(w, interopnames.SystemContractCall)
}

// AppCall emits an APPCALL with the given number of arguments to the given
// contract and method.
func AppCall(w *io.BinWriter, scriptHash util.Uint160, operation string, f callflag.CallFlag, args ...any) {
	Array(w, args...)
	AppCallNoArgs(w, scriptHash, operation, f)
}
