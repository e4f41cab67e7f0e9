package metrics

import (
	"context"
	"time"

	"github.com/NitishVankina/ServerPet/internal/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// cpuWindow is the blocking measurement interval for CPU utilization.
// This is the dominant latency of a tick.
const cpuWindow = time.Second

// HostSource reads metrics from the local host via gopsutil.
type HostSource struct{}

func NewHostSource() *HostSource {
	return &HostSource{}
}

func (*HostSource) CPUPercent(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, cpuWindow, false)
	if err != nil {
		return 0, errors.Wrap(ErrCPURead, err)
	}
	if len(percents) == 0 {
		return 0, errors.New(ErrCPURead)
	}

	return percents[0], nil
}

func (*HostSource) RAMPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, errors.Wrap(ErrRAMRead, err)
	}

	return vm.UsedPercent, nil
}

func (*HostSource) DiskPercent(path string) (float64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, errors.Wrap(ErrDiskRead, err)
	}

	return usage.UsedPercent, nil
}

func (*HostSource) NetworkCounters() (Counters, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return Counters{}, errors.Wrap(ErrNetRead, err)
	}
	if len(counters) == 0 {
		return Counters{}, errors.New(ErrNetRead)
	}

	return Counters{
		BytesSent: counters[0].BytesSent,
		BytesRecv: counters[0].BytesRecv,
		Timestamp: time.Now(),
	}, nil
}
