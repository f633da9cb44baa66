package sysinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
)

// fakeSource lets tests script OS query results and control the clock.
type fakeSource struct {
	now time.Time

	vm      *mem.VirtualMemoryStat
	vmErr   error
	vmCalls int

	uptime    uint64
	uptimeErr error

	ifaces    gnet.InterfaceStatList
	ifacesErr error
}

func (f *fakeSource) VirtualMemory(_ context.Context) (*mem.VirtualMemoryStat, error) {
	f.vmCalls++

	if f.vmErr != nil {
		return nil, f.vmErr
	}

	return f.vm, nil
}

func (f *fakeSource) Uptime(_ context.Context) (uint64, error) {
	if f.uptimeErr != nil {
		return 0, f.uptimeErr
	}

	return f.uptime, nil
}

func (f *fakeSource) Interfaces(_ context.Context) (gnet.InterfaceStatList, error) {
	if f.ifacesErr != nil {
		return nil, f.ifacesErr
	}

	return f.ifaces, nil
}

func (f *fakeSource) Now() time.Time {
	return f.now
}

func (f *fakeSource) advance(d time.Duration) {
	f.now = f.now.Add(d)
}
