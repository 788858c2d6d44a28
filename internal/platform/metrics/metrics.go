package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	payrollRuns     uint64
	payrollRowsProc uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordRun counts one completed payroll computation and its row count.
func (c *Collector) RecordRun(rows int) {
	atomic.AddUint64(&c.payrollRuns, 1)
	if rows > 0 {
		atomic.AddUint64(&c.payrollRowsProc, uint64(rows))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	runs := atomic.LoadUint64(&c.payrollRuns)
	rows := atomic.LoadUint64(&c.payrollRowsProc)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      errs,
		"payrollRunsTotal": runs,
		"payrollRowsTotal": rows,
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
	}
}
