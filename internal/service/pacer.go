package service

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next article may be processed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// newPacer hands out one token per delay with a burst of one, so the first
// article starts immediately and later ones are spaced at least delay apart.
// A non-positive delay disables pacing.
func newPacer(delay time.Duration) Pacer {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
