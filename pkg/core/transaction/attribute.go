package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/neotoolkit/neokit/pkg/io"
)

// AttrValue represents a Transaction Attribute value.
type AttrValue interface {
	io.Serializable
	// toJSONMap is used for embedded json serialization.
	toJSONMap(map[string]any)
	// Copy returns a deep copy of the attribute value.
	Copy() AttrValue
}

// Attribute represents a Transaction attribute.
type Attribute struct {
	Type  AttrType
	Value AttrValue
}

// attrJSON is used for JSON I/O of Attribute.
type attrJSON struct {
	Type string `json:"type"`
}

// DecodeBinary implements the Serializable interface.
func (attr *Attribute) DecodeBinary(br *io.BinReader) {
	attr.Type = AttrType(br.ReadB())

	switch t := attr.Type; t {
	case HighPriority:
		return
	case OracleResponseT:
		attr.Value = new(OracleResponse)
	case NotValidBeforeT:
		attr.Value = new(NotValidBefore)
	case ConflictsT:
		attr.Value = new(Conflicts)
	default:
		if br.Err == nil {
			br.Err = fmt.Errorf("failed decoding TX attribute usage: 0x%2x", int(attr.Type))
		}
		return
	}
	attr.Value.DecodeBinary(br)
}

// EncodeBinary implements the Serializable interface.
func (attr *Attribute) EncodeBinary(bw *io.BinWriter) {
	bw.WriteB(byte(attr.Type))
	switch t := attr.Type; t {
	case HighPriority:
	case OracleResponseT, NotValidBeforeT, ConflictsT:
		attr.Value.EncodeBinary(bw)
	default:
		bw.Err = fmt.Errorf("failed encoding TX attribute usage: 0x%2x", attr.Type)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (attr *Attribute) MarshalJSON() ([]byte, error) {
	m := map[string]any{"type": attr.Type.String()}
	if attr.Value != nil {
		attr.Value.toJSONMap(m)
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (attr *Attribute) UnmarshalJSON(data []byte) error {
	aux := new(attrJSON)
	err := json.Unmarshal(data, aux)
	if err != nil {
		return err
	}
	switch aux.Type {
	case "HighPriority":
		attr.Type = HighPriority
		return nil
	case "OracleResponse":
		attr.Type = OracleResponseT
		// Note: because `type` is already defined as a string, we cannot
		// unmarshal `id` as a uint64 within the same json.Unmarshal call,
		// hence this intermediate structure.
		aux := new(struct {
			ID     uint64             `json:"id"`
			Code   OracleResponseCode `json:"code"`
			Result []byte             `json:"result"`
		})
		if err := json.Unmarshal(data, aux); err != nil {
			return err
		}
		attr.Value = &OracleResponse{
			ID:     aux.ID,
			Code:   aux.Code,
			Result: aux.Result,
		}
	case "NotValidBefore":
		attr.Type = NotValidBeforeT
		value := new(NotValidBefore)
		if err := json.Unmarshal(data, value); err != nil {
			return err
		}
		attr.Value = value
	case "Conflicts":
		attr.Type = ConflictsT
		value := new(Conflicts)
		if err := json.Unmarshal(data, value); err != nil {
			return err
		}
		attr.Value = value
	default:
		return errors.New("wrong attribute type")
	}
	return nil
}

// Copy creates a deep copy of the Attribute.
func (attr *Attribute) Copy() *Attribute {
	if attr == nil {
		return nil
	}
	cp := &Attribute{
		Type: attr.Type,
	}
	if attr.Value != nil {
		cp.Value = attr.Value.Copy()
	}
	return cp
}
