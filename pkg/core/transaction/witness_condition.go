package transaction

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/neotoolkit/neokit/pkg/crypto/keys"
	"github.com/neotoolkit/neokit/pkg/io"
	"github.com/neotoolkit/neokit/pkg/util"
)

// WitnessConditionType encodes a type of witness condition.
type WitnessConditionType byte

const (
	// WitnessBoolean is a generic boolean condition.
	WitnessBoolean WitnessConditionType = 0x00
	// WitnessNot reverses another condition.
	WitnessNot WitnessConditionType = 0x01
	// WitnessAnd means that all conditions must be met.
	WitnessAnd WitnessConditionType = 0x02
	// WitnessOr means that any of conditions must be met.
	WitnessOr WitnessConditionType = 0x03
	// WitnessScriptHash matches executing contract's script hash.
	WitnessScriptHash WitnessConditionType = 0x18
	// WitnessGroup matches executing contract's group key.
	WitnessGroup WitnessConditionType = 0x19
	// WitnessCalledByEntry matches when current script is an entry script or is
	// called by an entry script.
	WitnessCalledByEntry WitnessConditionType = 0x20
	// WitnessCalledByContract matches when current script is called by the
	// specified contract.
	WitnessCalledByContract WitnessConditionType = 0x28
	// WitnessCalledByGroup matches when current script is called by contract
	// belonging to the specified group.
	WitnessCalledByGroup WitnessConditionType = 0x29

	// MaxConditionNesting limits the maximum allowed level of condition
	// nesting.
	MaxConditionNesting = 2
)

// WitnessCondition is a condition of WitnessRule.
type WitnessCondition interface {
	// Type returns a type of this condition.
	Type() WitnessConditionType
	// EncodeBinary writes condition to the given writer including the type data.
	EncodeBinary(*io.BinWriter)
	// DecodeBinarySpecific reads condition-specific data (without the type) from
	// the given reader, decoding any nested conditions up to the given depth.
	DecodeBinarySpecific(*io.BinReader, int)
	// MarshalJSON implements the json.Marshaler interface.
	MarshalJSON() ([]byte, error)
	// Copy returns a deep copy of the condition.
	Copy() WitnessCondition
}

type (
	// ConditionBoolean is a boolean condition type.
	ConditionBoolean bool
	// ConditionNot inverses the meaning of the contained condition.
	ConditionNot struct {
		Condition WitnessCondition
	}
	// ConditionAnd is a set of conditions required to be true.
	ConditionAnd []WitnessCondition
	// ConditionOr is a set of conditions one of which is required to be true.
	ConditionOr []WitnessCondition
	// ConditionScriptHash is a condition matching executing script hash.
	ConditionScriptHash util.Uint160
	// ConditionGroup is a condition matching executing script group.
	ConditionGroup keys.PublicKey
	// ConditionCalledByEntry is a condition matching an entry script or one
	// directly called by it.
	ConditionCalledByEntry struct{}
	// ConditionCalledByContract is a condition matching calling script hash.
	ConditionCalledByContract util.Uint160
	// ConditionCalledByGroup is a condition matching calling script group.
	ConditionCalledByGroup keys.PublicKey
)

// conditionAux is used for JSON marshaling/unmarshaling.
type conditionAux struct {
	Expression  json.RawMessage   `json:"expression,omitempty"`
	Expressions []json.RawMessage `json:"expressions,omitempty"`
	Group       string            `json:"group,omitempty"`
	Hash        string            `json:"hash,omitempty"`
	Type        string            `json:"type"`
}

// The maximum number of subconditions in And/Or conditions.
const maxConditionSubitems = 16

var conditionTypeNames = map[WitnessConditionType]string{
	WitnessBoolean:          "Boolean",
	WitnessNot:              "Not",
	WitnessAnd:              "And",
	WitnessOr:               "Or",
	WitnessScriptHash:       "ScriptHash",
	WitnessGroup:            "Group",
	WitnessCalledByEntry:    "CalledByEntry",
	WitnessCalledByContract: "CalledByContract",
	WitnessCalledByGroup:    "CalledByGroup",
}

// String implements the fmt.Stringer interface.
func (t WitnessConditionType) String() string {
	if name, ok := conditionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("WitnessConditionType(%#x)", byte(t))
}

// Type implements the WitnessCondition interface.
func (c *ConditionBoolean) Type() WitnessConditionType {
	return WitnessBoolean
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionBoolean) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessBoolean))
	w.WriteBool(bool(*c))
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionBoolean) DecodeBinarySpecific(r *io.BinReader, _ int) {
	*c = ConditionBoolean(r.ReadBool())
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionBoolean) MarshalJSON() ([]byte, error) {
	boolStr := strconv.FormatBool(bool(*c))
	return json.Marshal(conditionAux{
		Type:       WitnessBoolean.String(),
		Expression: json.RawMessage(boolStr),
	})
}

// Copy implements the WitnessCondition interface.
func (c *ConditionBoolean) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionNot) Type() WitnessConditionType {
	return WitnessNot
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionNot) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessNot))
	c.Condition.EncodeBinary(w)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionNot) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	c.Condition = decodeBinaryCondition(r, maxDepth-1)
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionNot) MarshalJSON() ([]byte, error) {
	cond, err := c.Condition.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{
		Type:       WitnessNot.String(),
		Expression: cond,
	})
}

// Copy implements the WitnessCondition interface.
func (c *ConditionNot) Copy() WitnessCondition {
	cc := *c
	cc.Condition = c.Condition.Copy()
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionAnd) Type() WitnessConditionType {
	return WitnessAnd
}

func encodeConditions(w *io.BinWriter, conds []WitnessCondition) {
	w.WriteVarUint(uint64(len(conds)))
	for i := range conds {
		conds[i].EncodeBinary(w)
	}
}

func decodeConditions(r *io.BinReader, maxDepth int) []WitnessCondition {
	l := r.ReadVarUint()
	if l == 0 {
		r.Err = errors.New("empty condition list")
		return nil
	}
	if l > maxConditionSubitems {
		r.Err = fmt.Errorf("too many conditions: %d", l)
		return nil
	}
	conds := make([]WitnessCondition, l)
	for i := range conds {
		conds[i] = decodeBinaryCondition(r, maxDepth-1)
		if r.Err != nil {
			return nil
		}
	}
	return conds
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionAnd) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessAnd))
	encodeConditions(w, *c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionAnd) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	*c = decodeConditions(r, maxDepth)
}

func arrayToJSON(t WitnessConditionType, conds []WitnessCondition) ([]byte, error) {
	exprs := make([]json.RawMessage, len(conds))
	for i := range conds {
		b, err := conds[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		exprs[i] = json.RawMessage(b)
	}
	return json.Marshal(conditionAux{
		Type:        t.String(),
		Expressions: exprs,
	})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionAnd) MarshalJSON() ([]byte, error) {
	return arrayToJSON(WitnessAnd, *c)
}

func copyConditions(conds []WitnessCondition) []WitnessCondition {
	res := make([]WitnessCondition, len(conds))
	for i := range conds {
		res[i] = conds[i].Copy()
	}
	return res
}

// Copy implements the WitnessCondition interface.
func (c *ConditionAnd) Copy() WitnessCondition {
	cp := ConditionAnd(copyConditions(*c))
	return &cp
}

// Type implements the WitnessCondition interface.
func (c *ConditionOr) Type() WitnessConditionType {
	return WitnessOr
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionOr) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessOr))
	encodeConditions(w, *c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionOr) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	*c = decodeConditions(r, maxDepth)
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionOr) MarshalJSON() ([]byte, error) {
	return arrayToJSON(WitnessOr, *c)
}

// Copy implements the WitnessCondition interface.
func (c *ConditionOr) Copy() WitnessCondition {
	cp := ConditionOr(copyConditions(*c))
	return &cp
}

// Type implements the WitnessCondition interface.
func (c *ConditionScriptHash) Type() WitnessConditionType {
	return WitnessScriptHash
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionScriptHash) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessScriptHash))
	w.WriteBytes(c[:])
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionScriptHash) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionScriptHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type: WitnessScriptHash.String(),
		Hash: util.Uint160(*c).StringLE(),
	})
}

// Copy implements the WitnessCondition interface.
func (c *ConditionScriptHash) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionGroup) Type() WitnessConditionType {
	return WitnessGroup
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessGroup))
	(*keys.PublicKey)(c).EncodeBinary(w)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type:  WitnessGroup.String(),
		Group: hex.EncodeToString((*keys.PublicKey)(c).Bytes()),
	})
}

// Copy implements the WitnessCondition interface.
func (c *ConditionGroup) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c ConditionCalledByEntry) Type() WitnessConditionType {
	return WitnessCalledByEntry
}

// EncodeBinary implements the WitnessCondition interface.
func (c ConditionCalledByEntry) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByEntry))
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c ConditionCalledByEntry) DecodeBinarySpecific(_ *io.BinReader, _ int) {
}

// MarshalJSON implements the json.Marshaler interface.
func (c ConditionCalledByEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type: WitnessCalledByEntry.String(),
	})
}

// Copy implements the WitnessCondition interface.
func (c ConditionCalledByEntry) Copy() WitnessCondition {
	return ConditionCalledByEntry{}
}

// Type implements the WitnessCondition interface.
func (c *ConditionCalledByContract) Type() WitnessConditionType {
	return WitnessCalledByContract
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionCalledByContract) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByContract))
	w.WriteBytes(c[:])
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionCalledByContract) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByContract) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type: WitnessCalledByContract.String(),
		Hash: util.Uint160(*c).StringLE(),
	})
}

// Copy implements the WitnessCondition interface.
func (c *ConditionCalledByContract) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) Type() WitnessConditionType {
	return WitnessCalledByGroup
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByGroup))
	(*keys.PublicKey)(c).EncodeBinary(w)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type:  WitnessCalledByGroup.String(),
		Group: hex.EncodeToString((*keys.PublicKey)(c).Bytes()),
	})
}

// Copy implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// DecodeBinaryCondition decodes and returns condition from the given binary
// stream.
func DecodeBinaryCondition(r *io.BinReader) WitnessCondition {
	return decodeBinaryCondition(r, MaxConditionNesting)
}

func decodeBinaryCondition(r *io.BinReader, maxDepth int) WitnessCondition {
	if maxDepth <= 0 {
		r.Err = errors.New("too many nesting levels")
		return nil
	}
	t := WitnessConditionType(r.ReadB())
	if r.Err != nil {
		return nil
	}
	var res WitnessCondition
	switch t {
	case WitnessBoolean:
		var v ConditionBoolean
		res = &v
	case WitnessNot:
		res = &ConditionNot{}
	case WitnessAnd:
		res = &ConditionAnd{}
	case WitnessOr:
		res = &ConditionOr{}
	case WitnessScriptHash:
		res = &ConditionScriptHash{}
	case WitnessGroup:
		res = &ConditionGroup{}
	case WitnessCalledByEntry:
		res = ConditionCalledByEntry{}
	case WitnessCalledByContract:
		res = &ConditionCalledByContract{}
	case WitnessCalledByGroup:
		res = &ConditionCalledByGroup{}
	default:
		r.Err = fmt.Errorf("invalid condition type: %d", t)
		return nil
	}
	res.DecodeBinarySpecific(r, maxDepth)
	if r.Err != nil {
		return nil
	}
	return res
}

func unmarshalArrayOfConditionJSONs(arr []json.RawMessage, maxDepth int) ([]WitnessCondition, error) {
	l := len(arr)
	if l == 0 {
		return nil, errors.New("empty condition list")
	}
	if l > maxConditionSubitems {
		return nil, fmt.Errorf("too many conditions: %d", l)
	}
	res := make([]WitnessCondition, l)
	for i := range arr {
		c, err := unmarshalConditionJSON(arr[i], maxDepth-1)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}
	return res, nil
}

// UnmarshalConditionJSON unmarshals a condition from the given JSON data.
func UnmarshalConditionJSON(data []byte) (WitnessCondition, error) {
	return unmarshalConditionJSON(data, MaxConditionNesting)
}

func unmarshalConditionJSON(data []byte, maxDepth int) (WitnessCondition, error) {
	if maxDepth <= 0 {
		return nil, errors.New("too many nesting levels")
	}
	aux := &conditionAux{}
	err := json.Unmarshal(data, aux)
	if err != nil {
		return nil, err
	}
	var res WitnessCondition
	switch aux.Type {
	case WitnessBoolean.String():
		var v bool
		err = json.Unmarshal(aux.Expression, &v)
		if err != nil {
			return nil, err
		}
		res = (*ConditionBoolean)(&v)
	case WitnessNot.String():
		c, err := unmarshalConditionJSON(aux.Expression, maxDepth-1)
		if err != nil {
			return nil, err
		}
		res = &ConditionNot{Condition: c}
	case WitnessAnd.String():
		conds, err := unmarshalArrayOfConditionJSONs(aux.Expressions, maxDepth)
		if err != nil {
			return nil, err
		}
		res = (*ConditionAnd)(&conds)
	case WitnessOr.String():
		conds, err := unmarshalArrayOfConditionJSONs(aux.Expressions, maxDepth)
		if err != nil {
			return nil, err
		}
		res = (*ConditionOr)(&conds)
	case WitnessScriptHash.String():
		h, err := util.Uint160DecodeStringLE(aux.Hash)
		if err != nil {
			return nil, err
		}
		res = (*ConditionScriptHash)(&h)
	case WitnessGroup.String():
		pk, err := keys.NewPublicKeyFromString(aux.Group)
		if err != nil {
			return nil, err
		}
		res = (*ConditionGroup)(pk)
	case WitnessCalledByEntry.String():
		res = ConditionCalledByEntry{}
	case WitnessCalledByContract.String():
		h, err := util.Uint160DecodeStringLE(aux.Hash)
		if err != nil {
			return nil, err
		}
		res = (*ConditionCalledByContract)(&h)
	case WitnessCalledByGroup.String():
		pk, err := keys.NewPublicKeyFromString(aux.Group)
		if err != nil {
			return nil, err
		}
		res = (*ConditionCalledByGroup)(pk)
	default:
		return nil, errors.New("invalid condition type")
	}
	return res, nil
}

// conditionNestingDepth returns the nesting level of the given condition.
func conditionNestingDepth(c WitnessCondition) int {
	switch t := c.(type) {
	case *ConditionNot:
		return 1 + conditionNestingDepth(t.Condition)
	case *ConditionAnd:
		var max int
		for i := range *t {
			if d := conditionNestingDepth((*t)[i]); d > max {
				max = d
			}
		}
		return 1 + max
	case *ConditionOr:
		var max int
		for i := range *t {
			if d := conditionNestingDepth((*t)[i]); d > max {
				max = d
			}
		}
		return 1 + max
	default:
		return 1
	}
}
