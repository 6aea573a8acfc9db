package result

import (
	"github.com/neotoolkit/neokit/pkg/util"
)

// NetworkFee represents a result of calculatenetworkfee RPC call.
type NetworkFee struct {
	Value int64 `json:"networkfee,string"`
}

// RelayResult is a result of `sendrawtransaction` or `submitblock` RPC calls.
type RelayResult struct {
	Hash util.Uint256 `json:"hash"`
}
