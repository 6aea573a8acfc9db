package interopnames

// Base fees of the interops, in fractions of GAS.
var prices = map[string]int64{
	SystemRuntimePlatform:           1 << 3,
	SystemRuntimeGetTrigger:         1 << 3,
	SystemRuntimeGetTime:            1 << 3,
	SystemRuntimeGetScriptContainer: 1 << 3,
	SystemRuntimeGetNetwork:         1 << 3,

	SystemIteratorValue:                 1 << 4,
	SystemRuntimeGetExecutingScriptHash: 1 << 4,
	SystemRuntimeGetCallingScriptHash:   1 << 4,
	SystemRuntimeGetEntryScriptHash:     1 << 4,
	SystemRuntimeGetInvocationCounter:   1 << 4,
	SystemRuntimeGasLeft:                1 << 4,
	SystemRuntimeBurnGas:                1 << 4,
	SystemRuntimeGetRandom:              1 << 4,
	SystemStorageGetContext:             1 << 4,
	SystemStorageGetReadOnlyContext:     1 << 4,
	SystemStorageAsReadOnly:             1 << 4,

	SystemContractGetCallFlags: 1 << 10,
	SystemRuntimeCheckWitness:  1 << 10,

	SystemRuntimeGetNotifications: 1 << 12,

	SystemCryptoCheckSig:                1 << 15,
	SystemContractCall:                  1 << 15,
	SystemContractCreateStandardAccount: 1 << 15,
	SystemIteratorNext:                  1 << 15,
	SystemRuntimeLog:                    1 << 15,
	SystemRuntimeNotify:                 1 << 15,
	SystemStorageGet:                    1 << 15,
	SystemStorageFind:                   1 << 15,
	SystemStoragePut:                    1 << 15,
	SystemStorageDelete:                 1 << 15,
}

// Price returns the base fee of the interop with the given name. Interops
// with a variable or parameter-dependent fee (like System.Crypto.CheckMultisig)
// have no fixed base and yield zero.
func Price(name string) int64 {
	return prices[name]
}
