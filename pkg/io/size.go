package io

import (
	"fmt"
	"reflect"
)

// counterWriter is an io.Writer that counts the bytes written through it.
type counterWriter struct {
	counter int
}

// Write implements the io.Writer interface.
func (cw *counterWriter) Write(p []byte) (int, error) {
	n := len(p)
	cw.counter += n
	return n, nil
}

// GetVarIntSize returns the size in number of bytes of a variable integer.
func GetVarIntSize(value int) int {
	var size int

	if value < 0xfd {
		size = 1 // unit8
	} else if value <= 0xffff {
		size = 3 // byte + uint16
	} else {
		size = 5 // byte + uint32
	}
	return size
}

// GetVarStringSize returns the size of a variable string.
func GetVarStringSize(value string) int {
	valueSize := len([]byte(value))
	return GetVarIntSize(valueSize) + valueSize
}

// GetVarSize returns the number of bytes in the variable-prefixed encoding
// of value, which can be a string, an integer (the prefix alone), a
// Serializable item or a slice of bytes, fixed-width integers or
// Serializable items.
func GetVarSize(value any) int {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return GetVarStringSize(v.String())
	case reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64:
		return GetVarIntSize(int(v.Int()))
	case reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64:
		return GetVarIntSize(int(v.Uint()))
	case reflect.Ptr, reflect.Struct:
		vser, ok := v.Interface().(Serializable)
		if !ok {
			panic(fmt.Sprintf("unable to calculate GetVarSize for a non-Serializable: %s", reflect.TypeOf(value)))
		}
		return getSerializableSize(vser)
	case reflect.Slice, reflect.Array:
		valueLength := v.Len()
		valueSize := 0

		if valueLength != 0 {
			switch v.Index(0).Interface().(type) {
			case Serializable:
				for i := 0; i < valueLength; i++ {
					valueSize += getSerializableSize(v.Index(i).Interface().(Serializable))
				}
			case uint8, int8:
				valueSize = valueLength
			case uint16, int16:
				valueSize = valueLength * 2
			case uint32, int32:
				valueSize = valueLength * 4
			case uint64, int64:
				valueSize = valueLength * 8
			}
		}

		return GetVarIntSize(valueLength) + valueSize
	default:
		panic(fmt.Sprintf("unable to calculate GetVarSize, %s", reflect.TypeOf(value)))
	}
}

func getSerializableSize(v Serializable) int {
	cw := counterWriter{}
	w := NewBinWriterFromIO(&cw)
	v.EncodeBinary(w)
	if w.Err != nil {
		panic(fmt.Sprintf("error serializing %s: %s", reflect.TypeOf(v), w.Err.Error()))
	}
	return cw.counter
}
