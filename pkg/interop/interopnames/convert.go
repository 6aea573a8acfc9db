package interopnames

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

var errNotFound = errors.New("interop not found")

// The mapping is built once at startup and never mutated afterwards, so
// lookups need no locking.
var fromIDs = func() map[uint32]string {
	m := make(map[uint32]string, len(names))
	for i := range names {
		m[ToID([]byte(names[i]))] = names[i]
	}
	return m
}()

// ToID returns an identifier of the method based on its name.
func ToID(name []byte) uint32 {
	h := sha256.Sum256(name)
	return binary.LittleEndian.Uint32(h[:4])
}

// FromID returns an interop name from its id.
func FromID(id uint32) (string, error) {
	if name, ok := fromIDs[id]; ok {
		return name, nil
	}
	return "", errNotFound
}
