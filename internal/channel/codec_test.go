package channel

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMethodCodecMethodCall(t *testing.T) {
	codec := JSONMethodCodec{}

	data, err := codec.EncodeMethodCall(&MethodCall{Method: "getPlatformVersion"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"method":"getPlatformVersion"}`, string(data))

	call, err := codec.DecodeMethodCall([]byte(`{"method":"getPlatformVersion","args":{"a":1}}`))
	require.NoError(t, err)
	assert.Equal(t, "getPlatformVersion", call.Method)
	assert.JSONEq(t, `{"a":1}`, string(call.Arguments))
}

func TestJSONMethodCodecRejectsBadCalls(t *testing.T) {
	codec := JSONMethodCodec{}

	_, err := codec.EncodeMethodCall(&MethodCall{})
	assert.Error(t, err)

	for _, in := range []string{``, `[]`, `{"args":1}`, `{"method":""}`, `not json`} {
		_, err := codec.DecodeMethodCall([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestJSONMethodCodecSuccessEnvelope(t *testing.T) {
	codec := JSONMethodCodec{}

	data, err := codec.EncodeSuccessEnvelope("iOS 17.0")
	require.NoError(t, err)
	assert.Equal(t, `["iOS 17.0"]`, string(data))

	result, err := codec.DecodeEnvelope(data)
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(result, &s))
	assert.Equal(t, "iOS 17.0", s)
}

func TestJSONMethodCodecErrorEnvelope(t *testing.T) {
	codec := JSONMethodCodec{}

	data, err := codec.EncodeErrorEnvelope("unavailable", "no version", map[string]int{"retry": 0})
	require.NoError(t, err)

	_, err = codec.DecodeEnvelope(data)
	var envErr *Error
	require.True(t, errors.As(err, &envErr))
	assert.Equal(t, "unavailable", envErr.Code)
	assert.Equal(t, "no version", envErr.Message)
	assert.JSONEq(t, `{"retry":0}`, string(envErr.Details))
	assert.Equal(t, "unavailable: no version", envErr.Error())
}

func TestJSONMethodCodecErrorEnvelopeNullFields(t *testing.T) {
	_, err := JSONMethodCodec{}.DecodeEnvelope([]byte(`["oops",null,null]`))

	var envErr *Error
	require.True(t, errors.As(err, &envErr))
	assert.Equal(t, "oops", envErr.Code)
	assert.Empty(t, envErr.Message)
	assert.Nil(t, envErr.Details)
	assert.Equal(t, "oops", envErr.Error())
}

func TestJSONMethodCodecInvalidEnvelope(t *testing.T) {
	for _, in := range []string{`{}`, `[]`, `[1,2]`, `[1,"m",null]`, `["c",5,null]`} {
		_, err := JSONMethodCodec{}.DecodeEnvelope([]byte(in))
		assert.ErrorIs(t, err, ErrInvalidEnvelope, "input %q", in)
	}
}
