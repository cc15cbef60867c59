// Package monitoring exposes process runtime statistics.
package monitoring

import (
	"runtime"
	"time"
)

const bytesPerMB = 1024 * 1024

// MemoryStats is a point-in-time view of heap and scheduler usage.
type MemoryStats struct {
	Timestamp     time.Time `json:"timestamp"`
	HeapAllocMB   float64   `json:"heap_alloc_mb"`
	HeapInuseMB   float64   `json:"heap_inuse_mb"`
	HeapObjects   uint64    `json:"heap_objects"`
	NumGC         uint32    `json:"num_gc"`
	NumGoroutine  int       `json:"num_goroutine"`
	LastGCPauseMs float64   `json:"last_gc_pause_ms,omitempty"`
}

// ReadMemory samples runtime.MemStats. The classifier's result cache never
// evicts, so heap growth here is the signal to watch.
func ReadMemory() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := MemoryStats{
		Timestamp:    time.Now().UTC(),
		HeapAllocMB:  float64(m.HeapAlloc) / bytesPerMB,
		HeapInuseMB:  float64(m.HeapInuse) / bytesPerMB,
		HeapObjects:  m.HeapObjects,
		NumGC:        m.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	}
	if m.NumGC > 0 {
		stats.LastGCPauseMs = float64(m.PauseNs[(m.NumGC+255)%256]) / float64(time.Millisecond)
	}
	return stats
}
