package sysinfo

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/datamodeld/pkg/datamodel"
	"github.com/carverauto/datamodeld/pkg/logger"
)

func TestBuiltinsShape(t *testing.T) {
	c := NewCollector(logger.NewTestLogger(io.Discard))

	builtins := Builtins(c)
	require.Len(t, builtins, 8)

	wantNames := []string{
		"Device.DeviceInfo.SerialNumber",
		"Device.DeviceInfo.X_RDKCENTRAL-COM_SystemTime",
		"Device.DeviceInfo.UpTime",
		"Device.DeviceInfo.X_COMCAST-COM_CM_MAC",
		"Device.DeviceInfo.MemoryStatus.Total",
		"Device.DeviceInfo.MemoryStatus.Used",
		"Device.DeviceInfo.MemoryStatus.Free",
		"Device.Time.CurrentLocalTime",
	}

	for i, b := range builtins {
		require.Equal(t, wantNames[i], b.Name)
		require.NotNil(t, b.Getter, "built-in %s must be computed", b.Name)
		require.Nil(t, b.Setter)
	}

	require.Equal(t, datamodel.KindUInt32, builtins[4].Kind)
	require.Equal(t, datamodel.KindUInt32, builtins[5].Kind)
	require.Equal(t, datamodel.KindUInt32, builtins[6].Kind)
	require.Equal(t, datamodel.KindDateTime, builtins[7].Kind)
}

func TestRegistryCountWithBuiltins(t *testing.T) {
	src := &fakeSource{now: time.Unix(1700000000, 0), vm: testVMStat(), ifaces: testInterfaces(), uptime: 12345}
	c := testCollector(src)

	schema := `[
		{"name": "Device.A", "type": 0, "value": "a"},
		{"name": "Device.B", "type": 2, "value": 2},
		{"name": "Device.C", "type": 3, "value": true}
	]`

	reg, err := datamodel.BuildRegistry([]byte(schema), Builtins(c), nil)
	require.NoError(t, err)
	require.Equal(t, 11, reg.Len(), "3 declared plus 8 built-ins")

	got, err := reg.Get(context.Background(), "Device.DeviceInfo.UpTime")
	require.NoError(t, err)
	require.Equal(t, datamodel.StringValue("12345"), got)
}
