// Package smartcontract contains the basic types used when interacting with
// NEO contracts: typed parameters and their conversions.
package smartcontract

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/neotoolkit/neokit/pkg/util"
)

// Parameter represents a smart contract parameter.
type Parameter struct {
	// Type of the parameter.
	Type ParamType `json:"type"`
	// The actual value of the parameter.
	Value any `json:"value"`
}

// ParameterPair represents a key-value pair, a slice of which is stored in
// MapType Parameter.
type ParameterPair struct {
	Key   Parameter `json:"key"`
	Value Parameter `json:"value"`
}

// NewParameter returns a Parameter with a proper initialized Value of the
// given ParamType.
func NewParameter(t ParamType) Parameter {
	return Parameter{
		Type:  t,
		Value: nil,
	}
}

// NewParameterFromValue infers the parameter type from the value given and
// packs them into a Parameter.
func NewParameterFromValue(value any) (Parameter, error) {
	var result = Parameter{
		Value: value,
	}

	switch v := value.(type) {
	case []byte:
		result.Type = ByteArrayType
	case string:
		result.Type = StringType
	case bool:
		result.Type = BoolType
	case *big.Int:
		result.Type = IntegerType
	case int8:
		result.Type = IntegerType
		result.Value = int64(v)
	case byte:
		result.Type = IntegerType
		result.Value = int64(v)
	case int16:
		result.Type = IntegerType
		result.Value = int64(v)
	case uint16:
		result.Type = IntegerType
		result.Value = int64(v)
	case int32:
		result.Type = IntegerType
		result.Value = int64(v)
	case uint32:
		result.Type = IntegerType
		result.Value = int64(v)
	case int:
		result.Type = IntegerType
		result.Value = int64(v)
	case uint:
		result.Type = IntegerType
		result.Value = new(big.Int).SetUint64(uint64(v))
	case int64:
		result.Type = IntegerType
	case uint64:
		result.Type = IntegerType
		result.Value = new(big.Int).SetUint64(v)
	case util.Uint160:
		result.Type = Hash160Type
	case util.Uint256:
		result.Type = Hash256Type
	case nil:
		result.Type = AnyType
	case []Parameter:
		result.Type = ArrayType
	case []ParameterPair:
		result.Type = MapType
	case []any:
		arr := make([]Parameter, 0, len(v))
		for i := range v {
			elem, err := NewParameterFromValue(v[i])
			if err != nil {
				return result, fmt.Errorf("array index %d: %w", i, err)
			}
			arr = append(arr, elem)
		}
		result.Type = ArrayType
		result.Value = arr
	default:
		return result, fmt.Errorf("unsupported parameter %T", value)
	}
	return result, nil
}

// NewParametersFromValues is similar to NewParameterFromValue, but works with
// multiple values and returns a simple slice of Parameter.
func NewParametersFromValues(values ...any) ([]Parameter, error) {
	res := make([]Parameter, 0, len(values))
	for i := range values {
		elem, err := NewParameterFromValue(values[i])
		if err != nil {
			return nil, err
		}
		res = append(res, elem)
	}
	return res, nil
}

// ErrUnknownParamType is returned when a type of a smart contract parameter
// can not be handled.
var ErrUnknownParamType = errors.New("unknown parameter type")
