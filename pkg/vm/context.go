// Package vm implements static analysis of NeoVM scripts: instruction
// decoding and structural checks for standard signature and multisignature
// verification contracts.
package vm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/neotoolkit/neokit/pkg/vm/opcode"
)

// ErrInvalidScript is returned by script analysis functions on malformed
// scripts, wrapped with the concrete reason.
var ErrInvalidScript = errors.New("invalid script")

// Context is a read cursor over a script. It decodes one instruction at a
// time and can remember a position to return to, which allows speculative
// parsing of instruction sequences.
type Context struct {
	script []byte
	ip     int
	mark   int
}

// NewContext returns a new Context over the given script with the
// instruction pointer at the start.
func NewContext(script []byte) *Context {
	return &Context{script: script, mark: -1}
}

// IP returns the current instruction offset.
func (c *Context) IP() int {
	return c.ip
}

// LenInstr returns the number of bytes left to decode.
func (c *Context) LenInstr() int {
	return len(c.script) - c.ip
}

// Mark remembers the current position, ResetToMark returns to it.
func (c *Context) Mark() {
	c.mark = c.ip
}

// ResetToMark moves the instruction pointer back to the last marked
// position.
func (c *Context) ResetToMark() {
	if c.mark >= 0 {
		c.ip = c.mark
	}
}

// Next decodes the instruction at the current offset and advances past it.
// It returns the opcode and its operand (nil if the opcode has none). On
// malformed input an error wrapping ErrInvalidScript is returned and the
// pointer is left untouched.
func (c *Context) Next() (opcode.Opcode, []byte, error) {
	if c.ip >= len(c.script) {
		return 0, nil, fmt.Errorf("%w: offset %d is out of range", ErrInvalidScript, c.ip)
	}
	op := opcode.Opcode(c.script[c.ip])
	if !opcode.IsValid(op) {
		return 0, nil, fmt.Errorf("%w: unknown opcode 0x%02x at offset %d", ErrInvalidScript, byte(op), c.ip)
	}

	pos := c.ip + 1
	sz, ok := opcode.Operand(op)
	if !ok {
		c.ip = pos
		return op, nil, nil
	}

	numtoread := sz.Size
	if sz.Prefix > 0 {
		if pos+sz.Prefix > len(c.script) {
			return 0, nil, fmt.Errorf("%w: %s operand prefix is truncated at offset %d", ErrInvalidScript, op, c.ip)
		}
		switch sz.Prefix {
		case 1:
			numtoread = int(c.script[pos])
		case 2:
			numtoread = int(binary.LittleEndian.Uint16(c.script[pos:]))
		case 4:
			n := binary.LittleEndian.Uint32(c.script[pos:])
			if n > maxParamSize {
				return 0, nil, fmt.Errorf("%w: parameter of %d bytes is too big at offset %d", ErrInvalidScript, n, c.ip)
			}
			numtoread = int(n)
		}
		pos += sz.Prefix
	}
	if pos+numtoread > len(c.script) {
		return 0, nil, fmt.Errorf("%w: %s operand is truncated at offset %d", ErrInvalidScript, op, c.ip)
	}
	param := c.script[pos : pos+numtoread]
	c.ip = pos + numtoread
	return op, param, nil
}

// maxParamSize limits PUSHDATA4 operands, the same way the VM limits single
// stack items.
const maxParamSize = 0x10000

// Instruction represents a single decoded script instruction.
type Instruction struct {
	IP     int
	Opcode opcode.Opcode
	Param  []byte
}

// String implements the fmt.Stringer interface.
func (i Instruction) String() string {
	if len(i.Param) != 0 {
		return fmt.Sprintf("%-8d%s\t%x", i.IP, i.Opcode, i.Param)
	}
	return fmt.Sprintf("%-8d%s", i.IP, i.Opcode)
}

// Disassemble decodes the whole script into a sequence of instructions. It
// stops at the first malformed instruction returning both the instructions
// decoded so far and the error.
func Disassemble(script []byte) ([]Instruction, error) {
	var res []Instruction

	ctx := NewContext(script)
	for ctx.LenInstr() > 0 {
		ip := ctx.IP()
		op, param, err := ctx.Next()
		if err != nil {
			return res, err
		}
		res = append(res, Instruction{IP: ip, Opcode: op, Param: param})
	}
	return res, nil
}
