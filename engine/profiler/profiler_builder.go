package profiler

import (
	"log"
	"time"
)

// ProfilerOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are logged. Values <= 0 are ignored.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - ProfilerOption: the option to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger redirects the profiler output.
//
// Parameters:
//   - logger: the destination logger, nil is ignored
//
// Returns:
//   - ProfilerOption: the option to apply
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStatsSource registers a named counter source, see AddStatsSource.
//
// Parameters:
//   - name: the label printed before the source's fields
//   - src: the source
//
// Returns:
//   - ProfilerOption: the option to apply
func WithStatsSource(name string, src StatsSource) ProfilerOption {
	return func(p *Profiler) {
		p.AddStatsSource(name, src)
	}
}

// withClock replaces the time source.
func withClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}
