package metrics

import "github.com/NitishVankina/ServerPet/internal/errors"

const (
	ErrCPURead  = errors.ErrorCode("metrics_cpu_read_failed")
	ErrRAMRead  = errors.ErrorCode("metrics_ram_read_failed")
	ErrDiskRead = errors.ErrorCode("metrics_disk_read_failed")
	ErrNetRead  = errors.ErrorCode("metrics_net_read_failed")
)
