package transaction

import (
	"errors"
	"fmt"

	"github.com/neotoolkit/neokit/pkg/crypto/keys"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/util"
)

// The maximum number of AllowedContracts, AllowedGroups or Rules.
const maxSubitems = 16

// Signer implements a Transaction signer.
type Signer struct {
	Account          util.Uint160      `json:"account"`
	Scopes           WitnessScope      `json:"scopes"`
	AllowedContracts []util.Uint160    `json:"allowedcontracts,omitempty"`
	AllowedGroups    []*keys.PublicKey `json:"allowedgroups,omitempty"`
	Rules            []WitnessRule     `json:"rules,omitempty"`
}

// EncodeBinary implements the Serializable interface.
func (c *Signer) EncodeBinary(bw *io.BinWriter) {
	bw.WriteBytes(c.Account[:])
	bw.WriteB(byte(c.Scopes))
	if c.Scopes&CustomContracts != 0 {
		bw.WriteArray(c.AllowedContracts)
	}
	if c.Scopes&CustomGroups != 0 {
		bw.WriteArray(c.AllowedGroups)
	}
	if c.Scopes&Rules != 0 {
		bw.WriteArray(c.Rules)
	}
}

// DecodeBinary implements the Serializable interface.
func (c *Signer) DecodeBinary(br *io.BinReader) {
	br.ReadBytes(c.Account[:])
	c.Scopes = WitnessScope(br.ReadB())
	if br.Err == nil {
		_, err := ScopesFromByte(byte(c.Scopes))
		if err != nil {
			br.Err = fmt.Errorf("invalid scopes: %w", err)
			return
		}
	}
	if c.Scopes&CustomContracts != 0 {
		br.ReadArray(&c.AllowedContracts, maxSubitems)
	}
	if c.Scopes&CustomGroups != 0 {
		br.ReadArray(&c.AllowedGroups, maxSubitems)
	}
	if c.Scopes&Rules != 0 {
		br.ReadArray(&c.Rules, maxSubitems)
	}
}

// SignersToStringSlice returns a slice of signer's accounts.
func SignersToStringSlice(signers []Signer) []string {
	res := make([]string, len(signers))
	for i, s := range signers {
		res[i] = s.Account.String()
	}
	return res
}

// Copy creates a deep copy of the Signer.
func (c *Signer) Copy() *Signer {
	if c == nil {
		return nil
	}
	cp := *c
	if c.AllowedContracts != nil {
		cp.AllowedContracts = make([]util.Uint160, len(c.AllowedContracts))
		copy(cp.AllowedContracts, c.AllowedContracts)
	}
	if c.AllowedGroups != nil {
		// Keys are immutable, so copying pointers is enough.
		cp.AllowedGroups = make([]*keys.PublicKey, len(c.AllowedGroups))
		copy(cp.AllowedGroups, c.AllowedGroups)
	}
	if c.Rules != nil {
		cp.Rules = make([]WitnessRule, len(c.Rules))
		for i, r := range c.Rules {
			cp.Rules[i] = *r.Copy()
		}
	}
	return &cp
}

// SetAllowedContracts sets the list of contracts the signer's witness is
// valid for and adjusts scopes accordingly.
func (c *Signer) SetAllowedContracts(contracts []util.Uint160) error {
	if c.Scopes == Global {
		return errors.New("can't set contracts for Global scope")
	}
	if len(contracts) > maxSubitems {
		return fmt.Errorf("no more than %d contracts is allowed", maxSubitems)
	}
	if len(contracts) == 0 {
		c.Scopes &^= CustomContracts
		c.AllowedContracts = nil
		return nil
	}
	c.Scopes |= CustomContracts
	c.AllowedContracts = contracts
	return nil
}

// SetAllowedGroups sets the list of contract groups the signer's witness is
// valid for and adjusts scopes accordingly.
func (c *Signer) SetAllowedGroups(groups []*keys.PublicKey) error {
	if c.Scopes == Global {
		return errors.New("can't set groups for Global scope")
	}
	if len(groups) > maxSubitems {
		return fmt.Errorf("no more than %d groups is allowed", maxSubitems)
	}
	if len(groups) == 0 {
		c.Scopes &^= CustomGroups
		c.AllowedGroups = nil
		return nil
	}
	c.Scopes |= CustomGroups
	c.AllowedGroups = groups
	return nil
}

// SetRules sets the list of witness rules for the signer and adjusts scopes
// accordingly.
func (c *Signer) SetRules(rules []WitnessRule) error {
	if c.Scopes == Global {
		return errors.New("can't set rules for Global scope")
	}
	if len(rules) > maxSubitems {
		return fmt.Errorf("no more than %d rules is allowed", maxSubitems)
	}
	for i := range rules {
		if depth := conditionNestingDepth(rules[i].Condition); depth > MaxConditionNesting {
			return fmt.Errorf("condition %d has nesting level %d, only %d is allowed", i, depth, MaxConditionNesting)
		}
	}
	if len(rules) == 0 {
		c.Scopes &^= Rules
		c.Rules = nil
		return nil
	}
	c.Scopes |= Rules
	c.Rules = rules
	return nil
}
