package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged random draws.
// Every draw is logged at debug level with its inputs and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Chance draws a uniform value in [0, 1) and reports whether it is below p.
// p <= 0 never succeeds; p >= 1 always succeeds.
//
// Postcondition: the draw, probability, and outcome are logged.
func (r *Roller) Chance(label string, p float64) bool {
	draw := r.src.Float64()
	hit := draw < p
	r.logger.Debug("chance roll",
		zap.String("label", label),
		zap.Float64("draw", draw),
		zap.Float64("probability", p),
		zap.Bool("hit", hit),
	)
	return hit
}

// Between returns a uniform int in [lo, hi]. When hi <= lo it returns lo
// without consuming a draw.
func (r *Roller) Between(label string, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("range roll",
		zap.String("label", label),
		zap.Int("min", lo),
		zap.Int("max", hi),
		zap.Int("result", v),
	)
	return v
}
