package filings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/forzencookie/verifikat/internal/periods"
)

// SnapshotStore persists frozen filing payloads. SaveOnce is the
// compare-and-set of the draft-to-submitted transition: it succeeds at most
// once per key, so two racing submissions cannot both win.
type SnapshotStore interface {
	Load(ctx context.Context, kind periods.Kind, periodID string) ([]byte, bool, error)
	SaveOnce(ctx context.Context, kind periods.Kind, periodID string, payload []byte) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a redis client as a SnapshotStore.
func NewRedisStore(client *redis.Client) SnapshotStore {
	return &redisStore{client: client}
}

func snapshotKey(kind periods.Kind, periodID string) string {
	return fmt.Sprintf("filing:%s:%s", kind, periodID)
}

func (s *redisStore) Load(ctx context.Context, kind periods.Kind, periodID string) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, snapshotKey(kind, periodID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("filings: load snapshot: %w", err)
	}
	return payload, true, nil
}

func (s *redisStore) SaveOnce(ctx context.Context, kind periods.Kind, periodID string, payload []byte) error {
	ok, err := s.client.SetNX(ctx, snapshotKey(kind, periodID), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("filings: save snapshot: %w", err)
	}
	if !ok {
		return ErrAlreadySubmitted
	}
	return nil
}
