package store

import (
	"context"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"scaffold/internal/example/models"
)

const (
	defaultKeyPrefix = "example:"
	defaultIndexKey  = "examples"

	fieldName      = "name"
	fieldCreatedAt = "created_at"
)

// RedisStore keeps one hash per example plus a set of known ids. Writes run
// in MULTI/EXEC so the hash and the index never diverge.
type RedisStore struct {
	client    redis.Cmdable
	keyPrefix string
	indexKey  string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces keys, e.g. per environment.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix + defaultKeyPrefix
			s.indexKey = prefix + defaultIndexKey
		}
	}
}

func NewRedis(client redis.Cmdable, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		indexKey:  defaultIndexKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

func (s *RedisStore) FindByID(ctx context.Context, id string) (*models.Example, error) {
	fields, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, translateRedis("find example", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return decodeHash(id, fields)
}

// Save upserts by id. HSETNX keeps the first creation time.
func (s *RedisStore) Save(ctx context.Context, example *models.Example) (*models.Example, error) {
	key := s.key(example.ID())
	var stored *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, fieldCreatedAt, example.CreatedAt().UTC().Format(time.RFC3339Nano))
		pipe.HSet(ctx, key, fieldName, example.Name())
		pipe.SAdd(ctx, s.indexKey, example.ID())
		stored = pipe.HGetAll(ctx, key)
		return nil
	})
	if err != nil {
		return nil, translateRedis("save example", err)
	}
	return decodeHash(example.ID(), stored.Val())
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(id))
		pipe.SRem(ctx, s.indexKey, id)
		return nil
	})
	return translateRedis("delete example", err)
}

// FindAll returns examples ordered by creation time, then id. Ids left in
// the index without a hash are skipped.
func (s *RedisStore) FindAll(ctx context.Context) ([]*models.Example, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey).Result()
	if err != nil {
		return nil, translateRedis("list example ids", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, s.key(id))
		}
		return nil
	})
	if err != nil {
		return nil, translateRedis("list examples", err)
	}

	out := make([]*models.Example, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		e, err := decodeHash(ids[i], fields)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *models.Example) int {
		return compareRecords(
			record{id: a.ID(), createdAt: a.CreatedAt()},
			record{id: b.ID(), createdAt: b.CreatedAt()},
		)
	})
	return out, nil
}

func decodeHash(id string, fields map[string]string) (*models.Example, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, invalidRow(id, err)
	}
	e, err := models.Rehydrate(id, fields[fieldName], createdAt.UTC())
	if err != nil {
		return nil, invalidRow(id, err)
	}
	return e, nil
}
