package rpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbridge/noderpc/pkg/jsonval"
	"github.com/coinbridge/noderpc/pkg/rpc"
)

func TestDecodeResponse(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name   string
		input  string
		check  func(t *testing.T, res rpc.Response)
		errMsg string
	}{
		{
			name:  "integer result",
			input: `{"result": 12345, "error": null, "id": "1"}`,
			check: func(t *testing.T, res rpc.Response) {
				assert.True(t, res.ID.Equal(rpc.StringID("1")))
				require.Nil(t, res.Err)

				text, ok := res.Result.NumberText()
				require.True(t, ok)
				assert.Equal(t, "12345", text)
			},
		},
		{
			name:  "amount result keeps exact literal",
			input: `{"result": "0.00000001", "error": null, "id": "2"}`,
			check: func(t *testing.T, res rpc.Response) {
				a, err := rpc.DecodeAmount(res.Result)
				require.NoError(t, err)
				assert.Equal(t, int64(1), a.Units())
			},
		},
		{
			name:  "node error",
			input: `{"result": null, "error": {"code": -32601, "message": "Method not found"}, "id": "3"}`,
			check: func(t *testing.T, res rpc.Response) {
				require.NotNil(t, res.Err)
				assert.Equal(t, int64(-32601), res.Err.Code)
				assert.Equal(t, "Method not found", res.Err.Message)
				assert.Equal(t, rpc.ErrorKindMethodNotFound, res.Err.Kind())
			},
		},
		{
			name:  "error with data",
			input: `{"result": null, "error": {"code": -5, "message": "not found", "data": {"txid": "ab"}}, "id": 4}`,
			check: func(t *testing.T, res rpc.Response) {
				require.NotNil(t, res.Err)
				assert.Equal(t, rpc.ErrorKindOther, res.Err.Kind())

				obj, ok := res.Err.Data.Obj()
				require.True(t, ok)
				_, ok = obj.Get("txid")
				assert.True(t, ok)
			},
		},
		{
			name:  "absent result with error populated",
			input: `{"error": {"code": -32603, "message": "boom"}, "id": 1}`,
			check: func(t *testing.T, res rpc.Response) {
				require.NotNil(t, res.Err)
				assert.Equal(t, rpc.ErrorKindInternalNodeError, res.Err.Kind())
			},
		},
		{
			name:  "unknown envelope members are ignored",
			input: `{"result": 1, "error": null, "id": 1, "jsonrpc": "2.0", "hostname": "node0"}`,
			check: func(t *testing.T, res rpc.Response) {
				require.Nil(t, res.Err)
			},
		},
		{
			name:   "invalid JSON",
			input:  `{"result": 1,`,
			errMsg: "payload is not valid JSON",
		},
		{
			name:   "non-object payload",
			input:  `[1, 2, 3]`,
			errMsg: "payload is a JSON array, want object",
		},
		{
			name:   "missing id",
			input:  `{"result": 1, "error": null}`,
			errMsg: "missing id",
		},
		{
			name:   "null id",
			input:  `{"result": 1, "error": null, "id": null}`,
			errMsg: "id is a JSON null",
		},
		{
			name:   "boolean id",
			input:  `{"result": 1, "error": null, "id": true}`,
			errMsg: "id is a JSON bool",
		},
		{
			name:   "both result and error",
			input:  `{"result": 1, "error": {"code": 1, "message": "x"}, "id": 1}`,
			errMsg: "both result and error are populated",
		},
		{
			name:   "neither result nor error",
			input:  `{"result": null, "error": null, "id": 1}`,
			errMsg: "neither result nor error is populated",
		},
		{
			name:   "error is not an object",
			input:  `{"result": null, "error": "boom", "id": 1}`,
			errMsg: "error member is a JSON string, want object",
		},
		{
			name:   "error lacks code",
			input:  `{"result": null, "error": {"message": "x"}, "id": 1}`,
			errMsg: "error object lacks a code",
		},
		{
			name:   "error code not an integer",
			input:  `{"result": null, "error": {"code": 1.5, "message": "x"}, "id": 1}`,
			errMsg: "not an integer",
		},
		{
			name:   "error lacks message",
			input:  `{"result": null, "error": {"code": -1}, "id": 1}`,
			errMsg: "error object lacks a message",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			res, err := rpc.DecodeResponse([]byte(tc.input))
			if tc.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)

				var protocolErr *rpc.ProtocolError
				assert.ErrorAs(t, err, &protocolErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, res)
		})
	}
}

func TestDecodeResponseWrapsParseError(t *testing.T) {
	t.Parallel()

	_, err := rpc.DecodeResponse([]byte(`{"result": 1x}`))
	require.Error(t, err)

	var parseErr *jsonval.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestMatchResponse(t *testing.T) {
	t.Parallel()

	res, err := rpc.DecodeResponse([]byte(`{"result": 1, "error": null, "id": 7}`))
	require.NoError(t, err)

	assert.NoError(t, rpc.MatchResponse(rpc.NumberID(7), res))

	err = rpc.MatchResponse(rpc.NumberID(8), res)
	var correlationErr *rpc.CorrelationError
	require.ErrorAs(t, err, &correlationErr)
	assert.True(t, correlationErr.Want.Equal(rpc.NumberID(8)))
	assert.True(t, correlationErr.Got.Equal(rpc.NumberID(7)))

	// A string id is not the same token as a numeric id.
	err = rpc.MatchResponse(rpc.StringID("7"), res)
	assert.ErrorAs(t, err, &correlationErr)
}
