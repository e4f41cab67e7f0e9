package sysinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// NetInterface carries cumulative traffic totals for one interface.
type NetInterface struct {
	Name      string
	BytesSent uint64
	BytesRecv uint64
}

// Info is a best-effort snapshot of static and slow-moving host details for
// the details view. Fields a platform cannot provide stay at their zero value.
type Info struct {
	Hostname     string
	Platform     string
	Kernel       string
	Arch         string
	BootTime     time.Time
	Uptime       time.Duration
	Processes    uint64
	CPUModel     string
	LogicalCores int
	PerCoreCPU   []float64
	RAMUsed      uint64
	RAMTotal     uint64
	SwapUsed     uint64
	SwapTotal    uint64
	DiskPath     string
	DiskUsed     uint64
	DiskTotal    uint64
	Interfaces   []NetInterface
	TempC        float64
	HasTemp      bool
}

// Collect gathers host details. Every read is best-effort: a failing sensor
// leaves its field empty rather than returning an error.
func Collect(ctx context.Context, diskPath string) Info {
	info := Info{DiskPath: diskPath}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = hi.Hostname
		info.Platform = hi.Platform + " " + hi.PlatformVersion
		info.Kernel = hi.KernelVersion
		info.Arch = hi.KernelArch
		info.BootTime = time.Unix(int64(hi.BootTime), 0)
		info.Uptime = time.Duration(hi.Uptime) * time.Second
		info.Processes = hi.Procs
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
	}
	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.LogicalCores = count
	}
	// Percent with a zero interval compares against the previous call, so
	// repeated Collects stay cheap.
	if perCore, err := cpu.PercentWithContext(ctx, 0, true); err == nil {
		info.PerCoreCPU = perCore
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.RAMUsed = vm.Used
		info.RAMTotal = vm.Total
	}
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		info.SwapUsed = swap.Used
		info.SwapTotal = swap.Total
	}

	if usage, err := disk.UsageWithContext(ctx, diskPath); err == nil {
		info.DiskUsed = usage.Used
		info.DiskTotal = usage.Total
	}

	if counters, err := net.IOCountersWithContext(ctx, true); err == nil {
		for _, c := range counters {
			info.Interfaces = append(info.Interfaces, NetInterface{
				Name:      c.Name,
				BytesSent: c.BytesSent,
				BytesRecv: c.BytesRecv,
			})
		}
	}

	if temps, err := host.SensorsTemperaturesWithContext(ctx); err == nil {
		for _, t := range temps {
			if t.Temperature > 0 {
				info.TempC = t.Temperature
				info.HasTemp = true
				break
			}
		}
	}

	return info
}
