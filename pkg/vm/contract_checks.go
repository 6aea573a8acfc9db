package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/neotoolkit/neokit/pkg/interop/interopnames"
	"github.com/neotoolkit/neokit/pkg/vm/opcode"
)

var (
	verifyInteropID   = interopnames.ToID([]byte(interopnames.SystemCryptoCheckSig))
	multisigInteropID = interopnames.ToID([]byte(interopnames.SystemCryptoCheckMultisig))
)

// sigScriptLen is the length of a standard signature verification script:
// PUSHDATA1, key length, 33 bytes of a key, SYSCALL with a 4-byte ID.
const sigScriptLen = 40

// maxMultisigKeys is the maximum number of keys a standard multisignature
// contract can have.
const maxMultisigKeys = 16

// ParseSignatureContract parses a simple signature contract and returns the
// public key it uses.
func ParseSignatureContract(script []byte) ([]byte, error) {
	if len(script) != sigScriptLen {
		return nil, fmt.Errorf("%w: invalid length %d", ErrInvalidScript, len(script))
	}
	ctx := NewContext(script)
	op, param, err := ctx.Next()
	if err != nil {
		return nil, err
	}
	if op != opcode.PUSHDATA1 || len(param) != 33 {
		return nil, fmt.Errorf("%w: no public key push", ErrInvalidScript)
	}
	key := param
	op, param, err = ctx.Next()
	if err != nil {
		return nil, err
	}
	if op != opcode.SYSCALL || binary.LittleEndian.Uint32(param) != verifyInteropID {
		return nil, fmt.Errorf("%w: no CheckSig syscall", ErrInvalidScript)
	}
	return key, nil
}

// IsSignatureContract checks whether the passed script is a signature check
// contract.
func IsSignatureContract(script []byte) bool {
	_, err := ParseSignatureContract(script)
	return err == nil
}

// ParseMultiSigContract parses a multisignature contract and returns the
// signature threshold and the list of public keys in the script order. Only
// standard contracts with 1 to 16 keys and the threshold not above the key
// count are accepted.
func ParseMultiSigContract(script []byte) (int, [][]byte, error) {
	ctx := NewContext(script)

	nsigs, err := parseSmallInt(ctx)
	if err != nil {
		return 0, nil, err
	}
	if nsigs < 1 {
		return 0, nil, fmt.Errorf("%w: bad signature count %d", ErrInvalidScript, nsigs)
	}

	var pubs [][]byte
	for {
		ctx.Mark()
		op, param, err := ctx.Next()
		if err != nil {
			return 0, nil, err
		}
		if op != opcode.PUSHDATA1 || len(param) != 33 {
			ctx.ResetToMark()
			break
		}
		pubs = append(pubs, param)
		if len(pubs) > maxMultisigKeys {
			return 0, nil, fmt.Errorf("%w: too many keys", ErrInvalidScript)
		}
	}
	if len(pubs) == 0 {
		return 0, nil, fmt.Errorf("%w: no public keys", ErrInvalidScript)
	}
	if nsigs > len(pubs) {
		return 0, nil, fmt.Errorf("%w: threshold %d is above the key count %d", ErrInvalidScript, nsigs, len(pubs))
	}

	nkeys, err := parseSmallInt(ctx)
	if err != nil {
		return 0, nil, err
	}
	if nkeys != len(pubs) {
		return 0, nil, fmt.Errorf("%w: key count %d doesn't match the number of keys %d", ErrInvalidScript, nkeys, len(pubs))
	}

	op, param, err := ctx.Next()
	if err != nil {
		return 0, nil, err
	}
	if op != opcode.SYSCALL || binary.LittleEndian.Uint32(param) != multisigInteropID {
		return 0, nil, fmt.Errorf("%w: no CheckMultisig syscall", ErrInvalidScript)
	}
	if ctx.LenInstr() != 0 {
		return 0, nil, fmt.Errorf("%w: trailing bytes", ErrInvalidScript)
	}
	return nsigs, pubs, nil
}

// parseSmallInt decodes an integer in the 1 to 16 range pushed either with
// a dedicated PUSHN opcode or as a PUSHINT8/PUSHINT16 operand.
func parseSmallInt(ctx *Context) (int, error) {
	op, param, err := ctx.Next()
	if err != nil {
		return 0, err
	}
	switch {
	case op >= opcode.PUSH1 && op <= opcode.PUSH16:
		return int(op - opcode.PUSH0), nil
	case op == opcode.PUSHINT8:
		return int(int8(param[0])), nil
	case op == opcode.PUSHINT16:
		return int(int16(binary.LittleEndian.Uint16(param))), nil
	default:
		return 0, fmt.Errorf("%w: %s is not an integer push", ErrInvalidScript, op)
	}
}

// IsMultiSigContract checks whether the passed script is a multi-signature
// contract.
func IsMultiSigContract(script []byte) bool {
	_, _, err := ParseMultiSigContract(script)
	return err == nil
}

// IsStandardContract checks whether the passed script is a signature or
// multi-signature contract.
func IsStandardContract(script []byte) bool {
	return IsSignatureContract(script) || IsMultiSigContract(script)
}
