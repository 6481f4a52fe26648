package pipeline

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/resumatch/internal/portal"
)

// IsRetryable reports whether a portal lookup error is transient.
func IsRetryable(err error) bool {
	var retryErr *portal.RetryableError
	return errors.As(err, &retryErr)
}

// RetryPolicy bounds the portal lookups made for one job posting.
type RetryPolicy struct {
	Attempts int           // total calls, including the first
	Base     time.Duration // delay after the first failure, doubled each time
	Max      time.Duration // cap before jitter
	Jitter   float64       // extra random delay as a fraction of the capped delay
}

// DefaultRetryPolicy makes three calls, waiting 1s then 2s plus up to 50%.
var DefaultRetryPolicy = RetryPolicy{
	Attempts: 3,
	Base:     time.Second,
	Max:      30 * time.Second,
	Jitter:   0.5,
}

// Delay returns how long to wait after failed attempt n (0-indexed).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if p.Base <= 0 {
		return 0
	}
	d := p.Base
	for i := 0; i < attempt && (p.Max <= 0 || d < p.Max); i++ {
		d *= 2
	}
	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	if spread := int64(float64(d) * p.Jitter); spread > 0 {
		d += time.Duration(rand.Int64N(spread))
	}
	return d
}

func (p RetryPolicy) attempts() int {
	return max(p.Attempts, 1)
}
