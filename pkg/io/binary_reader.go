package io

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// MaxArraySize is the maximum size of an array which can be decoded.
const MaxArraySize = 0x1000000

var errNonCanonicalVarInt = errors.New("non-canonical var-int encoding")

// BinReader is a convenient wrapper around a byte slice and err object.
// Used to simplify error handling when reading into a struct with many fields.
type BinReader struct {
	b   []byte
	ptr int
	Err error
	u   [8]byte
}

// NewBinReaderFromBuf makes a BinReader from the byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{b: b}
}

// Len returns the number of bytes not yet consumed.
func (r *BinReader) Len() int {
	return len(r.b) - r.ptr
}

// ReadBytes copies fixed-size buffer from the reader to provided slice.
func (r *BinReader) ReadBytes(buf []byte) {
	if r.Err != nil {
		return
	}
	if r.Len() < len(buf) {
		r.ptr = len(r.b)
		r.Err = io.ErrUnexpectedEOF
		return
	}
	copy(buf, r.b[r.ptr:])
	r.ptr += len(buf)
}

// ReadB reads a byte from the reader.
func (r *BinReader) ReadB() byte {
	r.ReadBytes(r.u[:1])
	if r.Err != nil {
		return 0
	}
	return r.u[0]
}

// ReadBool reads a boolean value encoded as a byte with values of 0 or 1.
func (r *BinReader) ReadBool() bool {
	b := r.ReadB()
	if r.Err == nil && b > 1 {
		r.Err = fmt.Errorf("invalid bool value: 0x%02x", b)
		return false
	}
	return b != 0
}

// ReadU16LE reads a little-endian encoded uint16 value.
func (r *BinReader) ReadU16LE() uint16 {
	r.ReadBytes(r.u[:2])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(r.u[:2])
}

// ReadU32LE reads a little-endian encoded uint32 value.
func (r *BinReader) ReadU32LE() uint32 {
	r.ReadBytes(r.u[:4])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(r.u[:4])
}

// ReadU64LE reads a little-endian encoded uint64 value.
func (r *BinReader) ReadU64LE() uint64 {
	r.ReadBytes(r.u[:8])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(r.u[:8])
}

// ReadVarUint reads a variable-length-encoded integer from the underlying
// reader. Only minimal encodings are accepted, anything else sets Err.
func (r *BinReader) ReadVarUint() uint64 {
	if r.Err != nil {
		return 0
	}

	var b = r.ReadB()
	switch b {
	case 0xfd:
		v := r.ReadU16LE()
		if r.Err == nil && v < 0xfd {
			r.Err = errNonCanonicalVarInt
		}
		return uint64(v)
	case 0xfe:
		v := r.ReadU32LE()
		if r.Err == nil && v <= 0xffff {
			r.Err = errNonCanonicalVarInt
		}
		return uint64(v)
	case 0xff:
		v := r.ReadU64LE()
		if r.Err == nil && v <= 0xffffffff {
			r.Err = errNonCanonicalVarInt
		}
		return v
	default:
		return uint64(b)
	}
}

// ReadVarBytes reads the next set of bytes from the underlying reader.
// ReadVarUint() is used to determine how large that slice is.
func (r *BinReader) ReadVarBytes(maxSize ...int) []byte {
	ms := MaxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}
	n := r.ReadVarUint()
	if n > uint64(ms) {
		r.Err = fmt.Errorf("byte-slice is too big (%d)", n)
		return nil
	}
	if r.Err != nil {
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	if r.Err != nil {
		return nil
	}
	return b
}

// ReadString calls ReadVarBytes and casts the results as a string.
func (r *BinReader) ReadString(maxSize ...int) string {
	return string(r.ReadVarBytes(maxSize...))
}

// ReadArray reads a var-int prefixed list of Serializable items into the
// value, which must be a pointer to a slice.
func (r *BinReader) ReadArray(t any, maxSize ...int) {
	value := reflect.ValueOf(t)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Slice {
		panic(value.Type().String() + " is not a pointer to a slice")
	}

	if r.Err != nil {
		return
	}

	sliceType := value.Elem().Type()
	elemType := sliceType.Elem()
	isPtr := elemType.Kind() == reflect.Ptr

	ms := MaxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}

	lu := r.ReadVarUint()
	if lu > uint64(ms) {
		r.Err = fmt.Errorf("array is too big (%d)", lu)
		return
	}
	if r.Err != nil {
		return
	}

	l := int(lu)
	arr := reflect.MakeSlice(sliceType, l, l)

	for i := 0; i < l; i++ {
		var elem reflect.Value
		if isPtr {
			elem = reflect.New(elemType.Elem())
			arr.Index(i).Set(elem)
		} else {
			elem = arr.Index(i).Addr()
		}

		el, ok := elem.Interface().(Serializable)
		if !ok {
			panic(elemType.String() + " is not Serializable")
		}

		el.DecodeBinary(r)
	}

	value.Elem().Set(arr)
}
