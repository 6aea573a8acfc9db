package io

// Serializable defines the binary encoding/decoding interface. Errors are
// returned via BinReader/BinWriter Err field.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}

// encodable is the encoding half of Serializable, used by the reflect-based
// BinWriter.WriteArray.
type encodable interface {
	EncodeBinary(*BinWriter)
}

// ToByteArray serializes a to a byte slice.
func ToByteArray(a Serializable) ([]byte, error) {
	w := NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// FromByteArray deserializes a from a byte slice.
func FromByteArray(a Serializable, data []byte) error {
	r := NewBinReaderFromBuf(data)
	a.DecodeBinary(r)
	return r.Err
}
