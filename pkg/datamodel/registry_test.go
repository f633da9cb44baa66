package datamodel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrySetGetRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		value Value
	}{
		{"string", KindString, StringValue("updated")},
		{"int32", KindInt32, Int32Value(-7)},
		{"uint32", KindUInt32, UInt32Value(9999)},
		{"bool", KindBool, BoolValue(true)},
		{"datetime", KindDateTime, DateTimeValue("2024-02-07T23:52:32")},
		{"base64", KindBase64, Base64Value("aGVsbG8=")},
		{"int64", KindInt64, Int64Value(-1 << 40)},
		{"uint64", KindUInt64, UInt64Value(1 << 40)},
		{"float32", KindFloat32, Float32Value(1.5)},
		{"float64", KindFloat64, Float64Value(2.25)},
		{"byte", KindByte, ByteValue(255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry([]Attribute{
				{Name: "Device.Test.Attr", Kind: tt.kind, Value: ZeroValue(tt.kind)},
			})

			require.NoError(t, reg.Set(context.Background(), "Device.Test.Attr", tt.value))

			got, err := reg.Get(context.Background(), "Device.Test.Attr")
			require.NoError(t, err)
			require.Equal(t, tt.value, got)
		})
	}
}

func TestRegistryUnknownName(t *testing.T) {
	reg := NewRegistry([]Attribute{
		{Name: "Device.Test.Attr", Kind: KindUInt32, Value: UInt32Value(7)},
	})

	_, err := reg.Get(context.Background(), "Device.Missing")
	require.ErrorIs(t, err, ErrNotFound)

	err = reg.Set(context.Background(), "Device.Missing", UInt32Value(1))
	require.ErrorIs(t, err, ErrNotFound)

	// The miss must leave existing entries untouched.
	got, err := reg.Get(context.Background(), "Device.Test.Attr")
	require.NoError(t, err)
	require.Equal(t, UInt32Value(7), got)
}

func TestRegistrySetTypeMismatch(t *testing.T) {
	reg := NewRegistry([]Attribute{
		{Name: "Device.Test.Attr", Kind: KindUInt32, Value: UInt32Value(7)},
	})

	err := reg.Set(context.Background(), "Device.Test.Attr", BoolValue(true))
	require.ErrorIs(t, err, ErrTypeMismatch)

	got, err := reg.Get(context.Background(), "Device.Test.Attr")
	require.NoError(t, err)
	require.Equal(t, UInt32Value(7), got)
}

func TestRegistryGetterBypassesStoredValue(t *testing.T) {
	calls := 0
	reg := NewRegistry([]Attribute{
		{
			Name:  "Device.Test.Computed",
			Kind:  KindString,
			Value: StringValue("stored"),
			Getter: func(context.Context) (Value, error) {
				calls++
				return StringValue("computed"), nil
			},
		},
	})

	got, err := reg.Get(context.Background(), "Device.Test.Computed")
	require.NoError(t, err)
	require.Equal(t, StringValue("computed"), got)
	require.Equal(t, 1, calls)
}

func TestRegistryGetterErrorPropagates(t *testing.T) {
	wantErr := errors.New("probe failed")
	reg := NewRegistry([]Attribute{
		{
			Name: "Device.Test.Computed",
			Kind: KindString,
			Getter: func(context.Context) (Value, error) {
				return Value{}, wantErr
			},
		},
	})

	_, err := reg.Get(context.Background(), "Device.Test.Computed")
	require.ErrorIs(t, err, wantErr)
}

func TestRegistrySetterInvoked(t *testing.T) {
	var received Value

	reg := NewRegistry([]Attribute{
		{
			Name: "Device.Test.Writable",
			Kind: KindUInt32,
			Setter: func(_ context.Context, v Value) error {
				received = v
				return nil
			},
		},
	})

	require.NoError(t, reg.Set(context.Background(), "Device.Test.Writable", UInt32Value(42)))
	require.Equal(t, UInt32Value(42), received)
}

func TestRegistrySetOnComputedReplacesStoredValue(t *testing.T) {
	// A getter without a setter still accepts writes to its stored value;
	// reads keep returning the computed result.
	reg := NewRegistry([]Attribute{
		{
			Name:  "Device.Test.Computed",
			Kind:  KindString,
			Value: StringValue("unknown"),
			Getter: func(context.Context) (Value, error) {
				return StringValue("computed"), nil
			},
		},
	})

	require.NoError(t, reg.Set(context.Background(), "Device.Test.Computed", StringValue("written")))

	got, err := reg.Get(context.Background(), "Device.Test.Computed")
	require.NoError(t, err)
	require.Equal(t, StringValue("computed"), got)
}

func TestRegistryFirstMatchWins(t *testing.T) {
	reg := NewRegistry([]Attribute{
		{Name: "Device.Test.Attr", Kind: KindUInt32, Value: UInt32Value(1)},
		{
			Name: "Device.Test.Attr",
			Kind: KindString,
			Getter: func(context.Context) (Value, error) {
				return StringValue("shadowed"), nil
			},
		},
	})

	got, err := reg.Get(context.Background(), "Device.Test.Attr")
	require.NoError(t, err)
	require.Equal(t, UInt32Value(1), got)

	require.NoError(t, reg.Set(context.Background(), "Device.Test.Attr", UInt32Value(2)))

	got, err = reg.Get(context.Background(), "Device.Test.Attr")
	require.NoError(t, err)
	require.Equal(t, UInt32Value(2), got)
}

func TestRegistryForEachVisitsAllInOrder(t *testing.T) {
	providerErr := errors.New("provider down")
	reg := NewRegistry([]Attribute{
		{Name: "A", Kind: KindUInt32, Value: UInt32Value(1)},
		{
			Name: "B",
			Kind: KindString,
			Getter: func(context.Context) (Value, error) {
				return Value{}, providerErr
			},
		},
		{Name: "C", Kind: KindBool, Value: BoolValue(true)},
	})

	var names []string

	var errs []error

	err := reg.ForEach(context.Background(), func(name string, _ Value, err error) error {
		names = append(names, name)
		errs = append(errs, err)

		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []string{"A", "B", "C"}, names)
	require.NoError(t, errs[0])
	require.ErrorIs(t, errs[1], providerErr)
	require.NoError(t, errs[2])
}
