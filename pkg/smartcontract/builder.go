package smartcontract

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/smartcontract/callflag"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm/emit"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
)

// Builder allows to create arbitrary scripts from the set of methods it
// exposes. Each method emits some set of opcodes performing an action and
// (in most cases) returning a result. These chunks of code can be composed
// together to perform several actions in the same script (and therefore in
// the same transaction), but the end result in the general case is a set of
// elements on the NeoVM stack.
type Builder struct {
	bw *io.BufBinWriter
}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{
		bw: io.NewBufBinWriter(),
	}
}

// InvokeMethod is the most generic contract method invoker, the method it
// calls doesn't return anything, so it's only good for occasions where you're
// not interested in the result and expect the method to be successful.
func (b *Builder) InvokeMethod(contract util.Uint160, method string, params ...any) {
	b.appCall(contract, method, params)
	emit.Opcodes(b.bw.BinWriter, opcode.DROP)
}

// Assert appends an ASSERT opcode to the script, it fails the execution if
// the value on the top of the stack is not true.
func (b *Builder) Assert() {
	emit.Opcodes(b.bw.BinWriter, opcode.ASSERT)
}

// InvokeWithAssert emits an invocation of the method and an ASSERT after it,
// it's good for methods returning boolean values that must be true for the
// whole script to be successful.
func (b *Builder) InvokeWithAssert(contract util.Uint160, method string, params ...any) {
	b.appCall(contract, method, params)
	b.Assert()
}

// InvokeCall emits an invocation of the method leaving the result on the
// stack for the subsequent instructions (or as a script return value).
func (b *Builder) InvokeCall(contract util.Uint160, method string, params ...any) {
	b.appCall(contract, method, params)
}

func (b *Builder) appCall(contract util.Uint160, method string, params []any) {
	emit.AppCall(b.bw.BinWriter, contract, method, callflag.All, params...)
}

// Len returns the current length of the script.
func (b *Builder) Len() int {
	return b.bw.Len()
}

// Script returns the constructed script or an error if anything went wrong
// during its creation.
func (b *Builder) Script() ([]byte, error) {
	return b.bw.Bytes(), b.bw.Err
}

// Reset resets the Builder, allowing to reuse the same script buffer (but
// previous script will be overwritten there).
func (b *Builder) Reset() {
	b.bw.Reset()
}

// EmitParameter emits the given Parameter into the script. Array and Map
// parameters are packed after their elements, so that the stack keeps the
// original ordering.
func EmitParameter(w *io.BinWriter, param Parameter) {
	if w.Err != nil {
		return
	}
	switch param.Type {
	case AnyType:
		if param.Value == nil {
			emit.Opcodes(w, opcode.PUSHNULL)
			return
		}
		w.Err = fmt.Errorf("wrong value of Any parameter: %v", param.Value)
	case BoolType:
		v, ok := param.Value.(bool)
		if !ok {
			w.Err = errors.New("wrong value of Boolean parameter")
			return
		}
		emit.Bool(w, v)
	case IntegerType:
		switch v := param.Value.(type) {
		case int:
			emit.Int(w, int64(v))
		case int64:
			emit.Int(w, v)
		case *big.Int:
			emit.BigInt(w, v)
		default:
			w.Err = errors.New("wrong value of Integer parameter")
		}
	case ByteArrayType, SignatureType, PublicKeyType:
		v, ok := param.Value.([]byte)
		if !ok {
			w.Err = fmt.Errorf("wrong value of %s parameter", param.Type.String())
			return
		}
		emit.Bytes(w, v)
	case StringType:
		v, ok := param.Value.(string)
		if !ok {
			w.Err = errors.New("wrong value of String parameter")
			return
		}
		emit.String(w, v)
	case Hash160Type:
		v, ok := param.Value.(util.Uint160)
		if !ok {
			w.Err = errors.New("wrong value of Hash160 parameter")
			return
		}
		emit.Bytes(w, v.BytesBE())
	case Hash256Type:
		v, ok := param.Value.(util.Uint256)
		if !ok {
			w.Err = errors.New("wrong value of Hash256 parameter")
			return
		}
		emit.Bytes(w, v.BytesBE())
	case ArrayType:
		v, ok := param.Value.([]Parameter)
		if !ok {
			w.Err = errors.New("wrong value of Array parameter")
			return
		}
		if len(v) == 0 {
			emit.Opcodes(w, opcode.NEWARRAY0)
			return
		}
		for i := len(v) - 1; i >= 0; i-- {
			EmitParameter(w, v[i])
		}
		emit.Int(w, int64(len(v)))
		emit.Opcodes(w, opcode.PACK)
	case MapType:
		v, ok := param.Value.([]ParameterPair)
		if !ok {
			w.Err = errors.New("wrong value of Map parameter")
			return
		}
		for i := len(v) - 1; i >= 0; i-- {
			EmitParameter(w, v[i].Value)
			EmitParameter(w, v[i].Key)
		}
		emit.Int(w, int64(len(v)))
		emit.Opcodes(w, opcode.PACKMAP)
	default:
		w.Err = fmt.Errorf("%w: %v", ErrUnknownParamType, param.Type)
	}
}
