// Package address implements conversion between Uint160 script hashes and
// NEO addresses.
package address

import (
	"errors"

	"github.com/neotoolkit/neokit/pkg/encoding/base58"
	"github.com/neotoolkit/neokit/pkg/util"
)

// Prefix is the byte used to prepend to addresses when encoding them, it can
// be changed and defaults to 53 (0x35), the standard NEO prefix.
var Prefix = byte(NEO3Prefix)

const (
	// NEO2Prefix is the first byte of an address for NEO2.
	NEO2Prefix byte = 0x17
	// NEO3Prefix is the first byte of an address for NEO3.
	NEO3Prefix byte = 0x35
)

// Uint160ToString returns the "NEO address" from the given Uint160.
func Uint160ToString(u util.Uint160) string {
	b := append([]byte{Prefix}, u.BytesBE()...)
	return base58.CheckEncode(b)
}

// StringToUint160 attempts to decode the given NEO address string
// into a Uint160.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return u, err
	}
	if len(b) != util.Uint160Size+1 {
		return u, errors.New("wrong address length")
	}
	if b[0] != Prefix {
		return u, errors.New("wrong address prefix")
	}
	return util.Uint160DecodeBytesBE(b[1:21])
}
