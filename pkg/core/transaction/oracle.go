package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/neotoolkit/neokit/pkg/io"
)

// OracleResponseCode represents result code of oracle response.
type OracleResponseCode byte

// OracleResponse represents oracle response.
type OracleResponse struct {
	ID     uint64             `json:"id"`
	Code   OracleResponseCode `json:"code"`
	Result []byte             `json:"result"`
}

// MaxOracleResultSize is the maximum allowed oracle answer size.
const MaxOracleResultSize = math.MaxUint16

// Enumeration of possible oracle response types.
const (
	Success                 OracleResponseCode = 0x00
	ProtocolNotSupported    OracleResponseCode = 0x10
	ConsensusUnreachable    OracleResponseCode = 0x12
	NotFound                OracleResponseCode = 0x14
	Timeout                 OracleResponseCode = 0x16
	Forbidden               OracleResponseCode = 0x18
	ResponseTooLarge        OracleResponseCode = 0x1a
	InsufficientFunds       OracleResponseCode = 0x1c
	ContentTypeNotSupported OracleResponseCode = 0x1f
	Error                   OracleResponseCode = 0xff
)

// Various validation errors.
var (
	ErrInvalidResponseCode = errors.New("invalid oracle response code")
	ErrInvalidResult       = errors.New("oracle response != success, but result is not empty")
)

var oracleResponseCodeNames = map[OracleResponseCode]string{
	Success:                 "Success",
	ProtocolNotSupported:    "ProtocolNotSupported",
	ConsensusUnreachable:    "ConsensusUnreachable",
	NotFound:                "NotFound",
	Timeout:                 "Timeout",
	Forbidden:               "Forbidden",
	ResponseTooLarge:        "ResponseTooLarge",
	InsufficientFunds:       "InsufficientFunds",
	ContentTypeNotSupported: "ContentTypeNotSupported",
	Error:                   "Error",
}

// String implements the fmt.Stringer interface.
func (c OracleResponseCode) String() string {
	if name, ok := oracleResponseCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("OracleResponseCode(%#x)", byte(c))
}

// IsValid checks if c is valid response code.
func (c OracleResponseCode) IsValid() bool {
	_, ok := oracleResponseCodeNames[c]
	return ok
}

// MarshalJSON implements the json.Marshaler interface.
func (c OracleResponseCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *OracleResponseCode) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	js = strings.ToLower(js)
	for code, name := range oracleResponseCodeNames {
		if js == strings.ToLower(name) {
			*c = code
			return nil
		}
	}
	return ErrInvalidResponseCode
}

// DecodeBinary implements the Serializable interface.
func (r *OracleResponse) DecodeBinary(br *io.BinReader) {
	r.ID = br.ReadU64LE()
	r.Code = OracleResponseCode(br.ReadB())
	if br.Err == nil && !r.Code.IsValid() {
		br.Err = ErrInvalidResponseCode
		return
	}
	r.Result = br.ReadVarBytes(MaxOracleResultSize)
	if r.Code != Success && len(r.Result) > 0 {
		br.Err = ErrInvalidResult
	}
}

// EncodeBinary implements the Serializable interface.
func (r *OracleResponse) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(r.ID)
	w.WriteB(byte(r.Code))
	w.WriteVarBytes(r.Result)
}

func (r *OracleResponse) toJSONMap(m map[string]any) {
	m["id"] = r.ID
	m["code"] = r.Code
	m["result"] = r.Result
}

// Copy implements the AttrValue interface.
func (r *OracleResponse) Copy() AttrValue {
	return &OracleResponse{
		ID:     r.ID,
		Code:   r.Code,
		Result: bytesClone(r.Result),
	}
}
