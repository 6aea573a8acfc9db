package smartcontract

import (
	"fmt"
	"sort"

	"github.com/neotoolkit/neokit/pkg/crypto/keys"
	"github.com/neotoolkit/neokit/pkg/interop/interopnames"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/vm/emit"
)

// CreateMultiSigRedeemScript creates an "m out of n" type verification script
// where n is the length of publicKeys. The script is composed of a
// signature threshold, the keys in the ascending order and a final
// CheckMultisig syscall.
func CreateMultiSigRedeemScript(m int, publicKeys keys.PublicKeys) ([]byte, error) {
	if m < 1 {
		return nil, fmt.Errorf("m must be positive, got %d", m)
	}
	if m > len(publicKeys) {
		return nil, fmt.Errorf("length of the signatures (%d) is higher than the number of public keys", m)
	}
	if len(publicKeys) > 1024 {
		return nil, fmt.Errorf("public key count %d exceeds maximum of length 1024", len(publicKeys))
	}

	buf := io.NewBufBinWriter()
	emit.Int(buf.BinWriter, int64(m))
	sort.Sort(publicKeys)
	for _, pubKey := range publicKeys {
		emit.Bytes(buf.BinWriter, pubKey.Bytes())
	}
	emit.Int(buf.BinWriter, int64(len(publicKeys)))
	emit.Syscall(buf.BinWriter, interopnames.SystemCryptoCheckMultisig)

	return buf.Bytes(), nil
}

// CreateDefaultMultiSigRedeemScript creates an "m out of n" type verification
// script using the publicKeys length with m = n - (n-1)/3. This is the
// expected script of the consensus node majority.
func CreateDefaultMultiSigRedeemScript(publicKeys keys.PublicKeys) ([]byte, error) {
	n := len(publicKeys)
	m := GetDefaultHonestNodeCount(n)
	return CreateMultiSigRedeemScript(m, publicKeys)
}

// CreateMajorityMultiSigRedeemScript creates an "m out of n" type verification
// script using the publicKeys length with m = n/2+1.
func CreateMajorityMultiSigRedeemScript(publicKeys keys.PublicKeys) ([]byte, error) {
	n := len(publicKeys)
	m := GetMajorityHonestNodeCount(n)
	return CreateMultiSigRedeemScript(m, publicKeys)
}

// GetDefaultHonestNodeCount returns the minimum number of honest nodes
// required for the network of size n to function properly.
func GetDefaultHonestNodeCount(n int) int {
	return n - (n-1)/3
}

// GetMajorityHonestNodeCount returns the minimum number of honest nodes
// required for the network of size n to reach simple majority.
func GetMajorityHonestNodeCount(n int) int {
	return n/2 + 1
}
