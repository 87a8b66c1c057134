package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/avramidis/quotemetrics/internal/cache"
)

// healthResponse reports service liveness, cache occupancy and coarse
// system load.
type healthResponse struct {
	Status        string      `json:"status"`
	Cache         cache.Stats `json:"cache"`
	UptimeSeconds float64     `json:"uptimeSeconds"`
	System        systemStats `json:"system"`
}

type systemStats struct {
	CPUPercent float64 `json:"cpuPercent"`
	RAMPercent float64 `json:"ramPercent"`
}

// handleHealth returns service status and cache statistics.
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := s.systemStats()

	response := healthResponse{
		Status:        "ok",
		Cache:         s.cache.Stats(),
		UptimeSeconds: time.Since(s.started).Seconds(),
		System: systemStats{
			CPUPercent: cpuPercent,
			RAMPercent: ramPercent,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// systemStats samples CPU and RAM usage. A 100ms CPU sample keeps the
// endpoint responsive for frequent pollers.
func (s *Server) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
