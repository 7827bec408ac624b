package resolver

import "go.uber.org/zap"

// ProgressFunc receives a monotonically non-decreasing percentage and a
// human-readable phase description at fixed checkpoints.
type ProgressFunc func(percent int, phase string)

// Progress checkpoints per tier.
const (
	progressStart      = 10
	progressWebSearch  = 50
	progressSocial     = 75
	progressEnrichment = 85
	progressDone       = 100
)

// reporter guards the caller's progress callback: percentages never go
// backwards and a panicking callback never aborts the search.
type reporter struct {
	fn   ProgressFunc
	last int
}

func newReporter(fn ProgressFunc) *reporter {
	return &reporter{fn: fn}
}

func (r *reporter) report(percent int, phase string) {
	if r.fn == nil {
		return
	}
	if percent < r.last {
		percent = r.last
	}
	r.last = percent

	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Warn("resolver: progress callback panicked", zap.Any("panic", rec))
		}
	}()
	r.fn(percent, phase)
}
