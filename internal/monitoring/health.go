package monitoring

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthSnapshot is the payload of the health endpoint.
type HealthSnapshot struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

var startedAt = time.Now()

// Health reports host-level resource usage alongside process uptime.
// Metric failures degrade to zero values; health never errors.
func Health() HealthSnapshot {
	snap := HealthSnapshot{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	} else if err != nil {
		log.Warn().Err(err).Msg("Could not read CPU usage")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemoryPercent = vm.UsedPercent
	} else {
		log.Warn().Err(err).Msg("Could not read memory usage")
	}

	return snap
}
