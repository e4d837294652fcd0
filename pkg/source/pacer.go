package source

import (
	"time"

	"golang.org/x/time/rate"
)

// newPacer returns a limiter letting the first call through immediately
// and spacing every following call by delay
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
