// Package runlock guards against two sweeps of the same tenant running at
// once. The lock is a Redis key claimed with SET NX and bounded by a TTL so
// a crashed sweeper cannot wedge the tenant forever.
package runlock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "privsweep/pkg/domain-errors"
)

const (
	// Redis key prefix for active sweep leases
	lockKeyPrefix = "sweep:lock:"
)

// Lock is a Redis-backed single-run-per-tenant lease.
type Lock struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a run lock. TTL must outlast the longest expected sweep.
func New(client *redis.Client, ttl time.Duration) (*Lock, error) {
	if client == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "redis client is required")
	}
	if ttl <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "lock TTL must be positive")
	}
	return &Lock{client: client, ttl: ttl}, nil
}

// Acquire claims the lease for a tenant. The stored value identifies the
// holding run so Release cannot drop a lease owned by someone else.
func (l *Lock) Acquire(ctx context.Context, tenant, runID string) error {
	if tenant == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant is required")
	}
	ok, err := l.client.SetNX(ctx, lockKeyPrefix+tenant, runID, l.ttl).Result()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "acquire run lock")
	}
	if !ok {
		return dErrors.New(dErrors.CodeConflict, "a sweep is already running for tenant "+tenant)
	}
	return nil
}

// Release drops the lease if this run still holds it. A lease that expired
// or was taken over by another run is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *Lock) Release(ctx context.Context, tenant, runID string) error {
	if tenant == "" {
		return nil
	}
	err := releaseScript.Run(ctx, l.client, []string{lockKeyPrefix + tenant}, runID).Err()
	if err != nil && err != redis.Nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "release run lock")
	}
	return nil
}
