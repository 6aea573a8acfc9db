package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160UnmarshalJSON(t *testing.T) {
	str := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	expected, err := Uint160DecodeStringLE(str)
	require.NoError(t, err)

	var u1, u2 Uint160

	require.NoError(t, json.Unmarshal([]byte(`"`+str+`"`), &u1))
	assert.True(t, expected.Equals(u1))

	require.NoError(t, json.Unmarshal([]byte(`"0x`+str+`"`), &u2))
	assert.True(t, expected.Equals(u2))

	assert.Error(t, json.Unmarshal([]byte(`123`), &u1))
}

func TestUint160DecodeString(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	val, err := Uint160DecodeStringBE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, hexStr, val.String())

	valLE, err := Uint160DecodeStringLE(hexStr)
	require.NoError(t, err)
	assert.Equal(t, val, valLE.Reverse())

	_, err = Uint160DecodeStringBE(hexStr[1:])
	require.Error(t, err)

	_, err = Uint160DecodeStringBE(hexStr[:len(hexStr)-2] + "zz")
	require.Error(t, err)
}

func TestUint160DecodeBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	val, err := Uint160DecodeBytesBE(b)
	require.NoError(t, err)
	assert.Equal(t, b, val.BytesBE())

	valLE, err := Uint160DecodeBytesLE(b)
	require.NoError(t, err)
	assert.Equal(t, b, valLE.BytesLE())

	_, err = Uint160DecodeBytesBE(b[1:])
	require.Error(t, err)
}

func TestUint160Less(t *testing.T) {
	a := Uint160{1}
	b := Uint160{2}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}
