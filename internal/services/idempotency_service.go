// Package services – IdempotencyService
//
// Create endpoints accept an Idempotency-Key header. The first successful
// request records (key, scope) -> resource id; a retry with the same key within
// TTL is answered from that record instead of creating a second resource.
package services

import (
	"context"
	"time"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// DefaultIdempotencyTTL is used when IdempotencyService.TTL is not positive.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyService records and looks up idempotent create results.
type IdempotencyService struct {
	Repo IdempotencyRepo
	TTL  time.Duration
	// Now is overridable in tests.
	Now func() time.Time
}

// NewIdempotencyService constructs an IdempotencyService.
func NewIdempotencyService(r IdempotencyRepo, ttl time.Duration) *IdempotencyService {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyService{Repo: r, TTL: ttl, Now: func() time.Time { return time.Now().UTC() }}
}

// Lookup returns the live record for (key, scope). found is false when there
// is none; err is set only for store failures.
func (s *IdempotencyService) Lookup(ctx context.Context, key, scope string) (rec *domain.Idempotency, found bool, err error) {
	rec, err = s.Repo.GetIdempotency(ctx, key, scope, s.Now())
	if err != nil {
		if store.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return rec, true, nil
}

// Remember records resourceID as the result of (key, scope). A concurrent
// request that recorded the same key first wins; that is not an error.
func (s *IdempotencyService) Remember(ctx context.Context, key, scope, resourceID string, status int) error {
	_, err := s.Repo.CreateIdempotency(ctx, key, scope, resourceID, status, s.TTL)
	if err != nil && store.KindOf(err) != store.KindDuplicateKey {
		return err
	}
	return nil
}

// Purge deletes expired records and returns how many were removed.
func (s *IdempotencyService) Purge(ctx context.Context) (int64, error) {
	return s.Repo.PurgeExpiredIdempotency(ctx, s.Now())
}
