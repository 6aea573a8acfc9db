package result

// Version model used for reporting server version info.
type Version struct {
	TCPPort   uint16   `json:"tcpport"`
	Nonce     uint32   `json:"nonce"`
	UserAgent string   `json:"useragent"`
	Protocol  Protocol `json:"protocol"`
}

// Protocol represents network-dependent parameters of the server.
type Protocol struct {
	AddressVersion              byte   `json:"addressversion"`
	Network                     uint32 `json:"network"`
	MillisecondsPerBlock        int    `json:"msperblock"`
	MaxTraceableBlocks          uint32 `json:"maxtraceableblocks"`
	MaxValidUntilBlockIncrement uint32 `json:"maxvaliduntilblockincrement"`
	MaxTransactionsPerBlock     uint16 `json:"maxtransactionsperblock"`
	MemoryPoolMaxTransactions   int    `json:"memorypoolmaxtransactions"`
	ValidatorsCount             byte   `json:"validatorscount"`
	InitialGasDistribution      int64  `json:"initialgasdistribution"`
}
