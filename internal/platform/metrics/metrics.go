package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process counters for the HTTP surface and the
// report exporter. Snapshot is served on an operator endpoint; there is no
// external metrics backend.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	unauthorized    uint64
	pdfExports      uint64
	recomputedDays  uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
	case status == 401:
		atomic.AddUint64(&c.unauthorized, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordExport counts a finished PDF export.
func (c *Collector) RecordExport() {
	atomic.AddUint64(&c.pdfExports, 1)
}

// RecordRecompute counts work days whose totals were refreshed, whether by
// the batch endpoint or the background job.
func (c *Collector) RecordRecompute(days int) {
	if days > 0 {
		atomic.AddUint64(&c.recomputedDays, uint64(days))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal":    atomic.LoadUint64(&c.rateLimited),
		"unauthorizedTotal":   atomic.LoadUint64(&c.unauthorized),
		"pdfExportsTotal":     atomic.LoadUint64(&c.pdfExports),
		"recomputedDaysTotal": atomic.LoadUint64(&c.recomputedDays),
		"avgDurationMs":       avg,
	}
}
