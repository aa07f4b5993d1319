package debug

// Debug runtime loggers. Started only when config.Debug is true.
// The goroutine logger also samples booth gauges such as live playback loops
// so a leaked loop or worker shows up next to the goroutine count.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// Gauge is a named integer sampled on every log tick.
type Gauge struct {
	Name string
	Read func() int64
}

// StartGoroutineLogger logs goroutine count, stack memory and gauges every
// interval until ctx is done.
func StartGoroutineLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, gauges ...Gauge) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			attrs := []any{
				slog.Uint64("goroutines", samples[0].Value.Uint64()),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
			}
			logger.Info("goroutine-stacks", append(attrs, gaugeAttrs(gauges)...)...)
		}
	}()
}

func gaugeAttrs(gauges []Gauge) []any {
	out := make([]any, 0, len(gauges))
	for _, g := range gauges {
		if g.Read == nil {
			continue
		}
		out = append(out, slog.Int64(g.Name, g.Read()))
	}
	return out
}
