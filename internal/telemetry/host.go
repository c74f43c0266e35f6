package telemetry

import (
	"time"

	"codeberg.org/mutker/znfsd/internal/errors"
	"codeberg.org/mutker/znfsd/internal/netrate"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// HostSource reads CPU, memory, boot time and interface counters of the
// running system through gopsutil.
type HostSource struct{}

func NewHostSource() *HostSource {
	return &HostSource{}
}

// CPUPercent returns the utilization since the previous call. The first call
// compares against boot.
func (*HostSource) CPUPercent() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, errors.New().Wrap(ErrHostRead, err)
	}
	if len(percents) == 0 {
		return 0, errors.New().WithData(ErrHostRead, "no cpu percentage reported")
	}

	return percents[0], nil
}

// MemPercent returns the share of memory that is not free, buffers and page
// cache included.
func (*HostSource) MemPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, errors.New().Wrap(ErrHostRead, err)
	}
	if vm.Total == 0 {
		return 0, errors.New().WithData(ErrHostRead, "total memory reported as zero")
	}

	return float64(vm.Total-vm.Free) / float64(vm.Total) * 100, nil
}

func (*HostSource) BootTime() (time.Time, error) {
	boot, err := host.BootTime()
	if err != nil {
		return time.Time{}, errors.New().Wrap(ErrHostRead, err)
	}

	return time.Unix(int64(boot), 0), nil
}

func (*HostSource) NetCounters() (map[string]netrate.Counters, error) {
	stats, err := net.IOCounters(true)
	if err != nil {
		return nil, errors.New().Wrap(ErrHostRead, err)
	}

	counters := make(map[string]netrate.Counters, len(stats))
	for _, s := range stats {
		counters[s.Name] = netrate.Counters{BytesSent: s.BytesSent, BytesRecv: s.BytesRecv}
	}

	return counters, nil
}
