package sysinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/carverauto/datamodeld/pkg/datamodel"
	"github.com/carverauto/datamodeld/pkg/logger"
)

const localTimeLayout = "2006-01-02T15:04:05"

// Collector owns the OS source and the shared memory cache and exposes the
// computed attribute providers. Providers never touch registry state; they
// synthesize a fresh Value on every call.
type Collector struct {
	src   Source
	cache *MemoryCache
	log   logger.Logger
}

// NewCollector builds a Collector over the running host.
func NewCollector(log logger.Logger) *Collector {
	return NewCollectorWithSource(NewSource(), log)
}

// NewCollectorWithSource builds a Collector over an explicit Source, used
// by tests to substitute OS queries.
func NewCollectorWithSource(src Source, log logger.Logger) *Collector {
	return &Collector{
		src:   src,
		cache: NewMemoryCache(src, MemoryCacheTTL),
		log:   log,
	}
}

// SerialNumber returns the device identity: the first non-loopback
// interface's hardware address as 12 uppercase hex digits with no
// separators.
func (c *Collector) SerialNumber(ctx context.Context) (datamodel.Value, error) {
	mac, err := c.firstHardwareAddr(ctx)
	if err != nil {
		return datamodel.Value{}, err
	}

	serial := strings.ToUpper(strings.ReplaceAll(mac, ":", ""))

	return datamodel.StringValue(serial), nil
}

// SystemTime returns wall-clock seconds and microseconds since the epoch
// as "<sec>.<6-digit-usec>".
func (c *Collector) SystemTime(_ context.Context) (datamodel.Value, error) {
	now := c.src.Now()
	usec := now.UnixMicro() - now.Unix()*1_000_000

	return datamodel.StringValue(fmt.Sprintf("%d.%06d", now.Unix(), usec)), nil
}

// Uptime returns seconds since boot as a decimal string.
func (c *Collector) Uptime(ctx context.Context) (datamodel.Value, error) {
	seconds, err := c.src.Uptime(ctx)
	if err != nil {
		return datamodel.Value{}, fmt.Errorf("%w: uptime query: %w", datamodel.ErrAcquisition, err)
	}

	return datamodel.StringValue(strconv.FormatUint(seconds, 10)), nil
}

// MACAddress returns the first non-loopback interface's hardware address
// as six colon-separated lowercase hex octets. Note the deliberate
// formatting asymmetry with SerialNumber.
func (c *Collector) MACAddress(ctx context.Context) (datamodel.Value, error) {
	mac, err := c.firstHardwareAddr(ctx)
	if err != nil {
		return datamodel.Value{}, err
	}

	return datamodel.StringValue(strings.ToLower(mac)), nil
}

// LocalTime returns the current local wall-clock time as
// YYYY-MM-DDThh:mm:ss.
func (c *Collector) LocalTime(_ context.Context) (datamodel.Value, error) {
	return datamodel.DateTimeValue(c.src.Now().Format(localTimeLayout)), nil
}

// MemoryTotal returns total system memory in kilobytes from the shared
// snapshot.
func (c *Collector) MemoryTotal(ctx context.Context) (datamodel.Value, error) {
	snap, err := c.cache.Snapshot(ctx)
	if err != nil {
		return datamodel.Value{}, err
	}

	return datamodel.UInt32Value(uint32(snap.TotalKB)), nil
}

// MemoryUsed returns used system memory in kilobytes from the shared
// snapshot.
func (c *Collector) MemoryUsed(ctx context.Context) (datamodel.Value, error) {
	snap, err := c.cache.Snapshot(ctx)
	if err != nil {
		return datamodel.Value{}, err
	}

	return datamodel.UInt32Value(uint32(snap.UsedKB)), nil
}

// MemoryFree returns free system memory in kilobytes from the shared
// snapshot.
func (c *Collector) MemoryFree(ctx context.Context) (datamodel.Value, error) {
	snap, err := c.cache.Snapshot(ctx)
	if err != nil {
		return datamodel.Value{}, err
	}

	return datamodel.UInt32Value(uint32(snap.FreeKB)), nil
}

func (c *Collector) firstHardwareAddr(ctx context.Context) (string, error) {
	ifaces, err := c.src.Interfaces(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: interface query: %w", datamodel.ErrAcquisition, err)
	}

	for _, iface := range ifaces {
		if iface.HardwareAddr == "" || isLoopback(iface.Flags) {
			continue
		}

		c.log.Trace().Str("interface", iface.Name).Msg("Using interface for device identity")

		return iface.HardwareAddr, nil
	}

	return "", fmt.Errorf("%w: no non-loopback interface with a hardware address", datamodel.ErrAcquisition)
}

func isLoopback(flags []string) bool {
	for _, flag := range flags {
		if flag == "loopback" {
			return true
		}
	}

	return false
}
