package bus

import (
	"encoding/json"
	"errors"

	"github.com/carverauto/datamodeld/pkg/datamodel"
)

// Error codes carried in replies so bus clients can tell a bad name from a
// bad value without parsing error text.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeTypeMismatch   = "type_mismatch"
	ErrorCodeOutOfRange     = "out_of_range"
	ErrorCodeAcquisition    = "acquisition_failed"
	ErrorCodeInternal       = "internal_error"
)

// WireValue is the typed value representation on the bus: the schema's
// integer type code plus the natural JSON literal.
type WireValue struct {
	Type  int             `json:"type"`
	Value json.RawMessage `json:"value"`
}

// GetRequest asks for one attribute by name.
type GetRequest struct {
	Name string `json:"name"`
}

// SetRequest writes one attribute by name.
type SetRequest struct {
	Name  string    `json:"name"`
	Value WireValue `json:"value"`
}

// SubscribeRequest notifies the provider of a client-side subscription
// change. It is acknowledged and logged but otherwise a no-op.
type SubscribeRequest struct {
	Name   string `json:"name"`
	Action string `json:"action"`
}

// Reply is the response envelope for get, set and subscribe requests.
type Reply struct {
	OK    bool       `json:"ok"`
	Value *WireValue `json:"value,omitempty"`
	Error string     `json:"error,omitempty"`
}

func encodeWireValue(v datamodel.Value) (*WireValue, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &WireValue{Type: int(v.Kind()), Value: payload}, nil
}

func decodeWireValue(wv WireValue) (datamodel.Value, error) {
	return datamodel.ValueFromJSON(datamodel.Kind(wv.Type), wv.Value)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, datamodel.ErrNotFound):
		return ErrorCodeNotFound
	case errors.Is(err, datamodel.ErrTypeMismatch):
		return ErrorCodeTypeMismatch
	case errors.Is(err, datamodel.ErrOutOfRange):
		return ErrorCodeOutOfRange
	case errors.Is(err, datamodel.ErrInvalidDeclaration):
		return ErrorCodeInvalidRequest
	case errors.Is(err, datamodel.ErrAcquisition):
		return ErrorCodeAcquisition
	default:
		return ErrorCodeInternal
	}
}
