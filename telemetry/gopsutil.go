package telemetry

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/friendteaminc/jukebox/payload"
)

// GopsutilSampler is the default Sampler, grounded on the CPU/memory
// polling idiom in guiperry-HASHER's operator console (psutil.Percent /
// psmem.VirtualMemory on a 1 Hz tick). GPU/VRAM fields are left blank:
// gopsutil has no portable GPU reader, and spec §3 only requires the
// fields be present as small fixed-capacity strings, not populated.
type GopsutilSampler struct{}

func (GopsutilSampler) Sample() (payload.SystemStats, error) {
	cpuPercent, err := cpu.Percent(0, false)
	if err != nil {
		return payload.SystemStats{}, fmt.Errorf("telemetry: cpu percent: %w", err)
	}
	cpuUsage := "0"
	if len(cpuPercent) > 0 {
		cpuUsage = formatPercent(cpuPercent[0])
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return payload.SystemStats{}, fmt.Errorf("telemetry: virtual memory: %w", err)
	}

	return payload.SystemStats{
		CPUName:   "CPU",
		CPUUsage:  cpuUsage,
		CPUTemp:   "",
		MemUsed:   fmt.Sprintf("%d", vm.Used/1024/1024),
		MemTotal:  fmt.Sprintf("%d", vm.Total/1024/1024),
		MemUnit:   "MB",
		GPUName:   "",
		GPUUsage:  "",
		GPUTemp:   "",
		VRAMUsed:  "",
		VRAMTotal: "",
		VRAMUnit:  "",
	}, nil
}
