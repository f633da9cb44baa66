package bus

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/datamodeld/pkg/datamodel"
	"github.com/carverauto/datamodeld/pkg/logger"
)

func testService(t *testing.T, attrs []datamodel.Attribute) *Service {
	t.Helper()

	cfg := &Config{NATSURL: "nats://127.0.0.1:4222"}
	svc, err := NewService(cfg, datamodel.NewRegistry(attrs), logger.NewTestLogger(io.Discard))
	require.NoError(t, err)

	return svc
}

func TestNewServiceRequiresRegistry(t *testing.T) {
	cfg := &Config{NATSURL: "nats://127.0.0.1:4222"}

	_, err := NewService(cfg, nil, logger.NewTestLogger(io.Discard))
	require.ErrorIs(t, err, errRegistryRequired)
}

func TestGetReply(t *testing.T) {
	svc := testService(t, []datamodel.Attribute{
		{Name: "X.Y", Kind: datamodel.KindUInt32, Value: datamodel.UInt32Value(7)},
	})

	reply := svc.getReply(context.Background(), []byte(`{"name":"X.Y"}`))
	require.True(t, reply.OK)
	require.NotNil(t, reply.Value)
	require.Equal(t, int(datamodel.KindUInt32), reply.Value.Type)
	require.JSONEq(t, `7`, string(reply.Value.Value))
}

func TestGetReplyErrors(t *testing.T) {
	svc := testService(t, []datamodel.Attribute{
		{Name: "X.Y", Kind: datamodel.KindUInt32, Value: datamodel.UInt32Value(7)},
		{
			Name: "X.Broken",
			Kind: datamodel.KindString,
			Getter: func(context.Context) (datamodel.Value, error) {
				return datamodel.Value{}, datamodel.ErrAcquisition
			},
		},
	})

	tests := []struct {
		name     string
		request  string
		wantCode string
	}{
		{"unknown name", `{"name":"X.Missing"}`, ErrorCodeNotFound},
		{"empty name", `{"name":""}`, ErrorCodeInvalidRequest},
		{"malformed json", `{`, ErrorCodeInvalidRequest},
		{"provider failure", `{"name":"X.Broken"}`, ErrorCodeAcquisition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := svc.getReply(context.Background(), []byte(tt.request))
			require.False(t, reply.OK)
			require.Equal(t, tt.wantCode, reply.Error)
		})
	}
}

func TestSetReplyRoundTrip(t *testing.T) {
	svc := testService(t, []datamodel.Attribute{
		{Name: "X.Y", Kind: datamodel.KindUInt32, Value: datamodel.UInt32Value(7)},
	})

	ctx := context.Background()

	reply := svc.setReply(ctx, []byte(`{"name":"X.Y","value":{"type":2,"value":9999}}`))
	require.True(t, reply.OK, "unexpected error %q", reply.Error)

	got := svc.getReply(ctx, []byte(`{"name":"X.Y"}`))
	require.True(t, got.OK)
	require.JSONEq(t, `9999`, string(got.Value.Value))
}

func TestSetReplyErrors(t *testing.T) {
	svc := testService(t, []datamodel.Attribute{
		{Name: "X.Y", Kind: datamodel.KindUInt32, Value: datamodel.UInt32Value(7)},
	})

	tests := []struct {
		name     string
		request  string
		wantCode string
	}{
		{"type mismatch", `{"name":"X.Y","value":{"type":3,"value":true}}`, ErrorCodeTypeMismatch},
		{"unknown name", `{"name":"X.Z","value":{"type":2,"value":1}}`, ErrorCodeNotFound},
		{"out of range", `{"name":"X.Y","value":{"type":2,"value":4294967296}}`, ErrorCodeOutOfRange},
		{"invalid type code", `{"name":"X.Y","value":{"type":99,"value":1}}`, ErrorCodeInvalidRequest},
		{"malformed json", `nope`, ErrorCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := svc.setReply(context.Background(), []byte(tt.request))
			require.False(t, reply.OK)
			require.Equal(t, tt.wantCode, reply.Error)
		})
	}
}

func TestSubscribeReplyIsAcknowledgedNoOp(t *testing.T) {
	svc := testService(t, []datamodel.Attribute{
		{Name: "X.Y", Kind: datamodel.KindUInt32, Value: datamodel.UInt32Value(7)},
	})

	reply := svc.subscribeReply([]byte(`{"name":"X.Y","action":"subscribe"}`))
	require.True(t, reply.OK)

	reply = svc.subscribeReply([]byte(`{"name":"X.Y","action":"unsubscribe"}`))
	require.True(t, reply.OK)

	// The registry is untouched by subscription traffic.
	got := svc.getReply(context.Background(), []byte(`{"name":"X.Y"}`))
	require.True(t, got.OK)
	require.JSONEq(t, `7`, string(got.Value.Value))
}

func TestWireValueEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		value datamodel.Value
	}{
		{"string", datamodel.StringValue("abc")},
		{"uint32", datamodel.UInt32Value(42)},
		{"bool", datamodel.BoolValue(true)},
		{"int64", datamodel.Int64Value(-1 << 40)},
		{"float64", datamodel.Float64Value(1.5)},
		{"byte", datamodel.ByteValue(200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wv, err := encodeWireValue(tt.value)
			require.NoError(t, err)

			decoded, err := decodeWireValue(*wv)
			require.NoError(t, err)
			require.Equal(t, tt.value, decoded)
		})
	}
}

func TestReplyEnvelopeJSON(t *testing.T) {
	wv := &WireValue{Type: 2, Value: json.RawMessage(`7`)}

	data, err := json.Marshal(Reply{OK: true, Value: wv})
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true,"value":{"type":2,"value":7}}`, string(data))

	data, err = json.Marshal(Reply{Error: ErrorCodeNotFound})
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":false,"error":"not_found"}`, string(data))
}
