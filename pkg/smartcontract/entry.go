package smartcontract

import (
	"fmt"

	"github.com/neotoolkit/neokit/pkg/interop/interopnames"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/smartcontract/callflag"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm/emit"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
)

// CreateCallScript returns a script that calls contract's method with
// the specified parameters. Whatever this method returns remains on the stack
// (and is a script return value).
func CreateCallScript(contract util.Uint160, method string, params ...any) ([]byte, error) {
	b := NewBuilder()
	b.InvokeCall(contract, method, params...)
	return b.Script()
}

// CreateCallWithAssertScript returns a script that calls contract's method
// with the specified parameters expecting a Boolean value to be returned that
// then is used for ASSERT. It's mostly useful for methods returning true on
// success and false (or FAULTing) otherwise.
func CreateCallWithAssertScript(contract util.Uint160, method string, params ...any) ([]byte, error) {
	b := NewBuilder()
	b.InvokeWithAssert(contract, method, params...)
	return b.Script()
}

// CreateCallAndUnwrapIteratorScript creates a script that calls 'operation'
// method of the 'contract' with the specified arguments. This method is
// expected to return an iterator that then is traversed (using
// System.Iterator.Next) with values (System.Iterator.Value) extracted and
// added into array. At most maxIteratorResultItems number of items is
// processed this way (and this number can't exceed VM limits), the result of
// the script is an array containing extracted value elements. This script can
// be useful for interactions with RPC server that have iterator sessions
// disabled.
func CreateCallAndUnwrapIteratorScript(contract util.Uint160, operation string, maxIteratorResultItems int, params ...any) ([]byte, error) {
	script := io.NewBufBinWriter()
	emit.Int(script.BinWriter, int64(maxIteratorResultItems))
	// Pack arguments for System.Contract.Call.
	emit.Array(script.BinWriter, params...)
	// The call itself, it will push an iterator on the stack.
	emit.AppCallNoArgs(script.BinWriter, contract, operation, callflag.All)
	// The resulting array of iterator's elements.
	emit.Opcodes(script.BinWriter, opcode.NEWARRAY0)

	// Start of the iterator traversal cycle.
	cycleStart := script.Len()
	// Load iterator from the 1-st cell of the stack, check whether it has
	// any more items.
	emit.Opcodes(script.BinWriter, opcode.OVER)
	emit.Syscall(script.BinWriter, interopnames.SystemIteratorNext)
	jmpIfNotOffset := script.Len()
	// No more items, jump to the end of the program. The offset is
	// backpatched below once it's known.
	emit.Instruction(script.BinWriter, opcode.JMPIFNOT, []byte{0x00})
	// Take the iterator's current value and append it to the resulting
	// array.
	emit.Opcodes(script.BinWriter, opcode.DUP, opcode.PUSH2, opcode.PICK)
	emit.Syscall(script.BinWriter, interopnames.SystemIteratorValue)
	emit.Opcodes(script.BinWriter, opcode.APPEND)
	// Compare len(arr) and maxIteratorResultItems.
	emit.Opcodes(script.BinWriter, opcode.DUP, opcode.SIZE,
		opcode.PUSH3, opcode.PICK, opcode.GE)
	jmpIfMaxReachedOffset := script.Len()
	// Limit reached, jump to the end of the program (backpatched below).
	emit.Instruction(script.BinWriter, opcode.JMPIF, []byte{0x00})
	jmpOffset := script.Len()
	// Jump back to the start of the iterator traversal cycle, the offset is
	// relative to the JMP position.
	emit.Instruction(script.BinWriter, opcode.JMP,
		[]byte{uint8(cycleStart - jmpOffset)})

	// End of the program: leave only the resulting array on the stack.
	loadResultOffset := script.Len()
	emit.Opcodes(script.BinWriter, opcode.NIP, opcode.NIP)
	if err := script.Err; err != nil {
		return nil, fmt.Errorf("emitting iterator unwrapper script: %w", err)
	}

	// Fill in the jump offsets, they're relative to the jump instructions.
	bytes := script.Bytes()
	bytes[jmpIfNotOffset+1] = uint8(loadResultOffset - jmpIfNotOffset)
	bytes[jmpIfMaxReachedOffset+1] = uint8(loadResultOffset - jmpIfMaxReachedOffset)
	return bytes, nil
}
