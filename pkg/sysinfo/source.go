// Package sysinfo acquires live system values for the computed attributes:
// device identity, uptime, memory statistics and wall-clock time.
package sysinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
)

// Source abstracts the OS queries behind the computed providers so that
// provider logic stays platform-agnostic and testable. The default
// implementation delegates to gopsutil, which carries the per-platform
// code paths.
type Source interface {
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Uptime(ctx context.Context) (uint64, error)
	Interfaces(ctx context.Context) (gnet.InterfaceStatList, error)
	Now() time.Time
}

type hostSource struct{}

// NewSource returns the gopsutil-backed Source for the running host.
func NewSource() Source {
	return hostSource{}
}

func (hostSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (hostSource) Uptime(ctx context.Context) (uint64, error) {
	return host.UptimeWithContext(ctx)
}

func (hostSource) Interfaces(ctx context.Context) (gnet.InterfaceStatList, error) {
	return gnet.InterfacesWithContext(ctx)
}

func (hostSource) Now() time.Time {
	return time.Now()
}
