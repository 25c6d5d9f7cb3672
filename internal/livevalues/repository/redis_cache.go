package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/livecanvas/dashboard-backend/internal/livevalues/domain"
)

const (
	valuesKey   = "live:values"      // hash: code -> json(LiveValue)
	warmKey     = "live:values:warm" // set while the hash mirrors the backing store
	genKey      = "live:values:gen"  // bumped on every write-through
	defaultWarm = 30 * time.Second
)

var errStaleSnapshot = errors.New("live values changed during refill")

// Store is the backing live-value store the cache fronts.
type Store interface {
	List(ctx context.Context) ([]domain.LiveValue, error)
	Get(ctx context.Context, code string) (*domain.LiveValue, error)
	Upsert(ctx context.Context, code, value string) (*domain.LiveValue, error)
}

// CachedStore is a write-through Redis hash in front of a Store. Reads are
// served from the hash while the warm marker is alive; the marker expires so
// rows written to the table by other producers show up within one window.
type CachedStore struct {
	inner  Store
	client *redis.Client
	warm   time.Duration
}

func NewCachedStore(inner Store, client *redis.Client, warm time.Duration) *CachedStore {
	if warm <= 0 {
		warm = defaultWarm
	}
	return &CachedStore{inner: inner, client: client, warm: warm}
}

func (s *CachedStore) List(ctx context.Context) ([]domain.LiveValue, error) {
	if s.isWarm(ctx) {
		fields, err := s.client.HGetAll(ctx, valuesKey).Result()
		if err == nil {
			return decodeAll(fields), nil
		}
	}

	gen, genErr := s.generation(ctx)
	values, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		s.fill(ctx, gen, values)
	}
	return values, nil
}

func (s *CachedStore) Get(ctx context.Context, code string) (*domain.LiveValue, error) {
	data, err := s.client.HGet(ctx, valuesKey, code).Result()
	if err == nil {
		var v domain.LiveValue
		if json.Unmarshal([]byte(data), &v) == nil {
			return &v, nil
		}
	}
	if errors.Is(err, redis.Nil) && s.isWarm(ctx) {
		return nil, domain.ErrNotFound
	}
	return s.inner.Get(ctx, code)
}

func (s *CachedStore) Upsert(ctx context.Context, code, value string) (*domain.LiveValue, error) {
	v, err := s.inner.Upsert(ctx, code, value)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal live value: %w", err)
	}
	// a failed cache write only costs freshness until the marker expires
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, valuesKey, v.Code, data)
	pipe.Incr(ctx, genKey)
	_, _ = pipe.Exec(ctx)
	return v, nil
}

func (s *CachedStore) isWarm(ctx context.Context) bool {
	n, err := s.client.Exists(ctx, warmKey).Result()
	return err == nil && n > 0
}

func (s *CachedStore) generation(ctx context.Context) (int64, error) {
	gen, err := s.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// fill replaces the hash with values and marks it warm, unless a write-through
// happened since gen was read. The cache then stays cold and the next List
// reads the table again.
func (s *CachedStore) fill(ctx context.Context, gen int64, values []domain.LiveValue) {
	_ = s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleSnapshot
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, valuesKey)
			for _, v := range values {
				data, err := json.Marshal(v)
				if err != nil {
					continue
				}
				pipe.HSet(ctx, valuesKey, v.Code, data)
			}
			pipe.Set(ctx, warmKey, "1", s.warm)
			return nil
		})
		return err
	}, genKey)
}

func decodeAll(fields map[string]string) []domain.LiveValue {
	out := make([]domain.LiveValue, 0, len(fields))
	for _, data := range fields {
		var v domain.LiveValue
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b domain.LiveValue) int { return strings.Compare(a.Code, b.Code) })
	return out
}
