package datamodel

import (
	"encoding/json"
	"fmt"
	"math"
)

// ValueFromJSON converts a raw JSON literal into a Value of the given kind.
//
// The policy is deliberately lenient about presence: a missing literal
// (len(raw) == 0 or JSON null) and a literal of the wrong JSON type both
// degrade to the kind's default instead of erroring. Numeric literals that
// are present and well-typed are range checked against the kind and
// rejected with ErrOutOfRange, never clamped. Booleans accept only JSON
// true/false; anything else degrades to false.
func ValueFromJSON(kind Kind, raw json.RawMessage) (Value, error) {
	if !kind.Valid() {
		return Value{}, fmt.Errorf("%w: type code %d", ErrInvalidDeclaration, kind)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return ZeroValue(kind), nil
	}

	switch kind {
	case KindString, KindDateTime, KindBase64:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ZeroValue(kind), nil
		}

		return TextValue(kind, s), nil
	case KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return ZeroValue(kind), nil
		}

		return BoolValue(b), nil
	default:
		return numberFromJSON(kind, raw)
	}
}

func numberFromJSON(kind Kind, raw json.RawMessage) (Value, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return ZeroValue(kind), nil
	}

	if !numberInRange(kind, f) {
		return Value{}, fmt.Errorf("%w: %v does not fit %s", ErrOutOfRange, f, kind)
	}

	switch kind {
	case KindInt32:
		return Int32Value(int32(f)), nil
	case KindUInt32:
		return UInt32Value(uint32(f)), nil
	case KindInt64:
		return Int64Value(int64(f)), nil
	case KindUInt64:
		return UInt64Value(uint64(f)), nil
	case KindFloat32:
		return Float32Value(float32(f)), nil
	case KindFloat64:
		return Float64Value(f), nil
	case KindByte:
		return ByteValue(byte(f)), nil
	default:
		return ZeroValue(kind), nil
	}
}

func numberInRange(kind Kind, f float64) bool {
	switch kind {
	case KindInt32:
		return f >= math.MinInt32 && f <= math.MaxInt32
	case KindUInt32:
		return f >= 0 && f <= math.MaxUint32
	case KindInt64:
		return f >= math.MinInt64 && f <= math.MaxInt64
	case KindUInt64:
		return f >= 0 && f <= math.MaxUint64
	case KindByte:
		return f >= 0 && f <= math.MaxUint8
	default:
		// Floats accept any JSON number.
		return true
	}
}

// MarshalJSON renders the payload as the natural JSON literal for the
// kind, used in get replies and initial-value publication.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString, KindDateTime, KindBase64:
		return json.Marshal(v.str)
	case KindInt32, KindInt64:
		return json.Marshal(v.i)
	case KindUInt32, KindUInt64, KindByte:
		return json.Marshal(v.u)
	case KindBool:
		return json.Marshal(v.b)
	case KindFloat32, KindFloat64:
		return json.Marshal(v.f)
	default:
		return []byte("null"), nil
	}
}
