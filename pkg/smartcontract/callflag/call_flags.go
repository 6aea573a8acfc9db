// Package callflag defines flags used to control contract invocation rights.
package callflag

// CallFlag represents a call flag.
type CallFlag byte

// Default flags.
const (
	ReadStates CallFlag = 1 << iota
	WriteStates
	AllowCall
	AllowNotify
	States            = ReadStates | WriteStates
	ReadOnly          = ReadStates | AllowCall
	All               = States | AllowCall | AllowNotify
	NoneFlag CallFlag = 0
)

// Has returns true if the given flag is set.
func (f CallFlag) Has(cf CallFlag) bool {
	return f&cf == cf
}
