package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/neotoolkit/neokit/pkg/crypto/hash"
	"github.com/neotoolkit/neokit/pkg/encoding/address"
	"github.com/neotoolkit/neokit/pkg/interop/interopnames"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/util"
	"github.com/neotoolkit/neokit/pkg/vm/emit"
)

// coordLen is the number of bytes in a serialized X or Y coordinate.
const coordLen = 32

// SignatureLen is the length of a standard signature for 256-bit EC key.
const SignatureLen = 64

// PublicKey represents a public key and provides a high level API around
// ecdsa.PublicKey.
type PublicKey ecdsa.PublicKey

// PublicKeys is a list of public keys.
type PublicKeys []*PublicKey

func (keys PublicKeys) Len() int      { return len(keys) }
func (keys PublicKeys) Swap(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
func (keys PublicKeys) Less(i, j int) bool {
	return keys[i].Cmp(keys[j]) == -1
}

// Bytes encodes PublicKeys to a compressed form.
func (keys PublicKeys) Bytes() []byte {
	buf := make([]byte, 0, 33*len(keys))
	for i := range keys {
		buf = append(buf, keys[i].Bytes()...)
	}
	return buf
}

// Contains checks whether the passed param is contained in PublicKeys.
func (keys PublicKeys) Contains(pKey *PublicKey) bool {
	for _, key := range keys {
		if key.Equal(pKey) {
			return true
		}
	}
	return false
}

// Copy returns a copy of keys.
func (keys PublicKeys) Copy() PublicKeys {
	if keys == nil {
		return nil
	}
	res := make(PublicKeys, len(keys))
	copy(res, keys)
	return res
}

// Unique returns a set of keys.
func (keys PublicKeys) Unique() PublicKeys {
	unique := PublicKeys{}
	for _, publicKey := range keys {
		if !unique.Contains(publicKey) {
			unique = append(unique, publicKey)
		}
	}
	return unique
}

// NewPublicKeyFromString returns a public key created from the given hex
// string public key representation in compressed form.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b, elliptic.P256())
}

// NewPublicKeyFromBytes returns a public key created from b using the given
// elliptic curve.
func NewPublicKeyFromBytes(b []byte, curve elliptic.Curve) (*PublicKey, error) {
	pubKey := PublicKey{Curve: curve}
	if err := pubKey.DecodeBytes(b); err != nil {
		return nil, err
	}
	return &pubKey, nil
}

// Equal returns true if both keys are equal.
func (p *PublicKey) Equal(key *PublicKey) bool {
	return p.X.Cmp(key.X) == 0 && p.Y.Cmp(key.Y) == 0
}

// Cmp compares two public keys in the order of their compressed
// serialized form.
func (p *PublicKey) Cmp(key *PublicKey) int {
	return bytes.Compare(p.Bytes(), key.Bytes())
}

// IsInfinity checks if the key is infinite (null, basically).
func (p *PublicKey) IsInfinity() bool {
	return p.X == nil && p.Y == nil
}

// Bytes returns byte array representation of the public key in compressed
// form (33 bytes with 0x02 or 0x03 prefix, except infinity which is a single
// zero byte).
func (p *PublicKey) Bytes() []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}

	var (
		x       = p.X.Bytes()
		paddedX = append(bytes.Repeat([]byte{0x00}, coordLen-len(x)), x...)
		prefix  = byte(0x03)
	)

	if p.Y.Bit(0) == 0 {
		prefix = byte(0x02)
	}

	return append([]byte{prefix}, paddedX...)
}

// UncompressedBytes returns byte array representation of the public key in
// uncompressed form (65 bytes with 0x04 prefix, except infinity which is a
// single zero byte).
func (p *PublicKey) UncompressedBytes() []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}

	var (
		x       = p.X.Bytes()
		y       = p.Y.Bytes()
		paddedX = append(bytes.Repeat([]byte{0x00}, coordLen-len(x)), x...)
		paddedY = append(bytes.Repeat([]byte{0x00}, coordLen-len(y)), y...)
	)
	return append(append([]byte{0x04}, paddedX...), paddedY...)
}

// DecodeBytes decodes a PublicKey from the given slice of bytes.
func (p *PublicKey) DecodeBytes(data []byte) error {
	switch len(data) {
	case 1, 33, 65:
	default:
		return fmt.Errorf("invalid key size (1, 33 or 65 bytes expected): %d", len(data))
	}
	b := io.NewBinReaderFromBuf(data)
	p.DecodeBinary(b)
	if b.Err != nil {
		return b.Err
	}
	if b.Len() != 0 {
		return errors.New("extra data")
	}
	return nil
}

// DecodeBinary decodes a PublicKey from the given BinReader.
func (p *PublicKey) DecodeBinary(r *io.BinReader) {
	var prefix uint8
	var x, y *big.Int
	var err error

	prefix = r.ReadB()
	if r.Err != nil {
		return
	}

	if p.Curve == nil {
		p.Curve = elliptic.P256()
	}

	switch prefix {
	// Infinity.
	case 0x00:
		// noop, initialized to nil.
		return
	// Compressed public keys.
	case 0x02, 0x03:
		var b = make([]byte, coordLen)
		r.ReadBytes(b)
		if r.Err != nil {
			return
		}
		x = new(big.Int).SetBytes(b)
		y, err = decodeCompressedY(x, uint(prefix&0x1), p.Curve)
		if err != nil {
			r.Err = err
			return
		}
	// Uncompressed public keys.
	case 0x04:
		var b = make([]byte, 2*coordLen)
		r.ReadBytes(b)
		if r.Err != nil {
			return
		}
		x = new(big.Int).SetBytes(b[:coordLen])
		y = new(big.Int).SetBytes(b[coordLen:])
		if !p.Curve.IsOnCurve(x, y) {
			r.Err = errors.New("encoded point is not on the P256 curve")
		}
	default:
		r.Err = fmt.Errorf("invalid prefix %d", prefix)
		return
	}
	if x.Cmp(p.Curve.Params().P) >= 0 || y.Cmp(p.Curve.Params().P) >= 0 {
		r.Err = errors.New("encoded point is not correct (X or Y is bigger than P)")
		return
	}
	p.X, p.Y = x, y
}

// decodeCompressedY performs decompression of Y coordinate for the given X
// and Y's least significant bit.
func decodeCompressedY(x *big.Int, ylsb uint, curve elliptic.Curve) (*big.Int, error) {
	cp := curve.Params()
	three := big.NewInt(3)
	/* y**2 = x**3 + a*x + b  % p */
	xCubed := new(big.Int).Exp(x, three, cp.P)
	threeX := new(big.Int).Mul(x, three)
	threeX.Mod(threeX, cp.P)
	ySquared := new(big.Int).Sub(xCubed, threeX)
	ySquared.Add(ySquared, cp.B)
	ySquared.Mod(ySquared, cp.P)
	y := new(big.Int).ModSqrt(ySquared, cp.P)
	if y == nil {
		return nil, errors.New("error computing Y for compressed point")
	}
	if y.Bit(0) != ylsb {
		y.Neg(y)
		y.Mod(y, cp.P)
	}
	return y, nil
}

// EncodeBinary encodes a PublicKey to the given BinWriter.
func (p *PublicKey) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(p.Bytes())
}

// GetVerificationScript returns NEO VM bytecode with CHECKSIG command for the
// public key.
func (p *PublicKey) GetVerificationScript() []byte {
	buf := io.NewBufBinWriter()
	emit.Bytes(buf.BinWriter, p.Bytes())
	emit.Syscall(buf.BinWriter, interopnames.SystemCryptoCheckSig)

	return buf.Bytes()
}

// GetScriptHash returns a Hash160 of verification script for the key.
func (p *PublicKey) GetScriptHash() util.Uint160 {
	return hash.Hash160(p.GetVerificationScript())
}

// Address returns a base58-encoded NEO-specific address based on the key hash.
func (p *PublicKey) Address() string {
	return address.Uint160ToString(p.GetScriptHash())
}

// Verify returns true if the signature is valid and corresponds to the hash
// and public key.
func (p *PublicKey) Verify(signature []byte, hash []byte) bool {
	if p.X == nil || p.Y == nil || len(signature) != SignatureLen {
		return false
	}
	rBytes := new(big.Int).SetBytes(signature[0:32])
	sBytes := new(big.Int).SetBytes(signature[32:64])
	return ecdsa.Verify((*ecdsa.PublicKey)(p), hash, rBytes, sBytes)
}

// VerifyHashable returns true if the signature is valid and corresponds to
// the hash of the item for the given network.
func (p *PublicKey) VerifyHashable(signature []byte, net uint32, hh hash.Hashable) bool {
	var digest = hash.NetSha256(net, hh)
	return p.Verify(signature, digest.BytesBE())
}

// MarshalJSON implements the json.Marshaler interface.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hex.EncodeToString(p.Bytes()) + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	gotKey, err := NewPublicKeyFromString(s)
	if err != nil {
		return err
	}

	*p = *gotKey
	return nil
}

// String implements the Stringer interface.
func (p *PublicKey) String() string {
	if p.IsInfinity() {
		return "00"
	}
	bx := hex.EncodeToString(p.X.Bytes())
	by := hex.EncodeToString(p.Y.Bytes())
	return fmt.Sprintf("%s%s", bx, by)
}

// Sort sorts the keys in ascending order of their compressed form.
func (keys PublicKeys) Sort() {
	sort.Sort(keys)
}
