package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// WitnessScope represents set of witness flags for Transaction signer.
type WitnessScope byte

const (
	// None specifies that no contract was witnessed. Only sign the transaction.
	None WitnessScope = 0
	// CalledByEntry means that this condition must hold: EntryScriptHash == CallingScriptHash.
	// No params is needed, as the witness/permission/signature given on first invocation will
	// automatically expire if entering deeper internal invokes. This can be the default safe
	// choice for native NEO/GAS.
	CalledByEntry WitnessScope = 0x01
	// CustomContracts define valid custom contract hashes for witness check.
	CustomContracts WitnessScope = 0x10
	// CustomGroups define custom public keys for group members.
	CustomGroups WitnessScope = 0x20
	// Rules is a set of conditions with boolean operators.
	Rules WitnessScope = 0x40
	// Global allows this witness in all contexts. This cannot be combined
	// with other flags.
	Global WitnessScope = 0x80
)

var scopeNames = map[WitnessScope]string{
	None:            "None",
	CalledByEntry:   "CalledByEntry",
	CustomContracts: "CustomContracts",
	CustomGroups:    "CustomGroups",
	Rules:           "WitnessRules",
	Global:          "Global",
}

// String implements the fmt.Stringer interface.
func (s WitnessScope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("WitnessScope(%#x)", byte(s))
}

// ScopesFromString converts a string of comma-separated scopes to a set of scopes
// (case-sensitive). The string can combine several scopes, e.g. be any of:
// 'Global', 'CalledByEntry,CustomGroups' etc. In case of an empty string an
// error will be returned.
func ScopesFromString(s string) (WitnessScope, error) {
	var result WitnessScope
	scopes := strings.Split(s, ",")
	dict := map[string]WitnessScope{
		"Global":          Global,
		"CalledByEntry":   CalledByEntry,
		"CustomContracts": CustomContracts,
		"CustomGroups":    CustomGroups,
		"WitnessRules":    Rules,
		"None":            None,
	}
	var isGlobal bool
	for _, scopeStr := range scopes {
		scope, ok := dict[strings.TrimSpace(scopeStr)]
		if !ok {
			return result, fmt.Errorf("invalid witness scope: %v", scopeStr)
		}
		if isGlobal && scope != Global {
			return result, errors.New("Global scope can not be combined with other scopes")
		}
		result |= scope
		if scope == Global {
			isGlobal = true
			if result != Global {
				return result, errors.New("Global scope can not be combined with other scopes")
			}
		}
	}
	return result, nil
}

// ScopesFromByte converts a byte to a set of scopes and performs validity
// check.
func ScopesFromByte(b byte) (WitnessScope, error) {
	var res = WitnessScope(b)
	if res & ^(None|CalledByEntry|CustomContracts|CustomGroups|Rules|Global) != 0 {
		return 0, fmt.Errorf("invalid scope %d", b)
	}
	if res&Global != 0 && res != Global {
		return 0, errors.New("Global scope can not be combined with other scopes")
	}
	return res, nil
}

// scopesToString converts witness scope to its string representation. It uses
// `, ` to separate scope names.
func scopesToString(scopes WitnessScope) string {
	if scopes&Global != 0 || scopes == None {
		return scopes.String()
	}
	var b strings.Builder
	for _, scope := range []WitnessScope{CalledByEntry, CustomContracts, CustomGroups, Rules} {
		if scopes&scope != 0 {
			if b.Len() != 0 {
				b.WriteString(", ")
			}
			b.WriteString(scope.String())
		}
	}
	return b.String()
}

// Count returns the number of set scope flags.
func (s WitnessScope) Count() int {
	return bits.OnesCount8(byte(s))
}

// MarshalJSON implements the json.Marshaler interface.
func (s WitnessScope) MarshalJSON() ([]byte, error) {
	return []byte(`"` + scopesToString(s) + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *WitnessScope) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	scopes, err := ScopesFromString(js)
	if err != nil {
		return err
	}
	*s = scopes
	return nil
}
