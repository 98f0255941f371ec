package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/artex"
	"golang.org/x/time/rate"
)

var _ artex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per publisher host using token buckets.
// Hosts are compared case-insensitively and without a leading "www.", so
// "www.lance.com.br" and "lance.com.br" share one bucket.
type DomainLimiter struct {
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
	limit rate.Limit
}

// NewDomainLimiter returns a limiter allowing rps requests per second to each
// host with no bursting. A non-positive rps disables pacing.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		hosts: make(map[string]*rate.Limiter),
		limit: limit,
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	key := strings.TrimPrefix(strings.ToLower(host), "www.")

	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[key]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[key] = l
	}
	return l
}
