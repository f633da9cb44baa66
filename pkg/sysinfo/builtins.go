package sysinfo

import (
	"github.com/carverauto/datamodeld/pkg/datamodel"
)

// Builtins returns the computed attributes backed by live system queries,
// in their fixed registration order. Each call returns independent
// Attribute instances; the registry owns them afterwards.
func Builtins(c *Collector) []datamodel.Attribute {
	return []datamodel.Attribute{
		{
			Name:   "Device.DeviceInfo.SerialNumber",
			Kind:   datamodel.KindString,
			Value:  datamodel.StringValue("unknown"),
			Getter: c.SerialNumber,
		},
		{
			Name:   "Device.DeviceInfo.X_RDKCENTRAL-COM_SystemTime",
			Kind:   datamodel.KindString,
			Value:  datamodel.StringValue("unknown"),
			Getter: c.SystemTime,
		},
		{
			Name:   "Device.DeviceInfo.UpTime",
			Kind:   datamodel.KindString,
			Value:  datamodel.StringValue("unknown"),
			Getter: c.Uptime,
		},
		{
			Name:   "Device.DeviceInfo.X_COMCAST-COM_CM_MAC",
			Kind:   datamodel.KindString,
			Value:  datamodel.StringValue("unknown"),
			Getter: c.MACAddress,
		},
		{
			Name:   "Device.DeviceInfo.MemoryStatus.Total",
			Kind:   datamodel.KindUInt32,
			Value:  datamodel.UInt32Value(0),
			Getter: c.MemoryTotal,
		},
		{
			Name:   "Device.DeviceInfo.MemoryStatus.Used",
			Kind:   datamodel.KindUInt32,
			Value:  datamodel.UInt32Value(0),
			Getter: c.MemoryUsed,
		},
		{
			Name:   "Device.DeviceInfo.MemoryStatus.Free",
			Kind:   datamodel.KindUInt32,
			Value:  datamodel.UInt32Value(0),
			Getter: c.MemoryFree,
		},
		{
			Name:   "Device.Time.CurrentLocalTime",
			Kind:   datamodel.KindDateTime,
			Value:  datamodel.DateTimeValue("unknown"),
			Getter: c.LocalTime,
		},
	}
}
