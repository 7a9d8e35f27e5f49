package store

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"scaffold/internal/example/ports"
	"scaffold/pkg/platform/sentinel"
)

type RedisStoreSuite struct {
	RepositoryContractSuite
	mini   *miniredis.Miniredis
	client *redis.Client
}

func TestRedisStoreSuite(t *testing.T) {
	s := new(RedisStoreSuite)
	s.newRepo = func() ports.ExampleRepository {
		s.mini.FlushAll()
		return NewRedis(s.client, WithKeyPrefix("test:"))
	}
	suite.Run(t, s)
}

func (s *RedisStoreSuite) SetupSuite() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
}

func (s *RedisStoreSuite) TearDownSuite() {
	_ = s.client.Close()
}

func (s *RedisStoreSuite) TestKeyLayout() {
	_, err := s.repo.Save(s.ctx, s.example("A", "Widget", base))
	s.Require().NoError(err)

	s.Equal("Widget", s.mini.HGet("test:example:A", fieldName))
	s.True(s.mini.Exists("test:examples"))
	members, err := s.mini.SMembers("test:examples")
	s.Require().NoError(err)
	s.Equal([]string{"A"}, members)
}

func (s *RedisStoreSuite) TestStaleIndexEntriesAreSkipped() {
	_, err := s.repo.Save(s.ctx, s.example("A", "Widget", base))
	s.Require().NoError(err)
	_, err = s.mini.SAdd("test:examples", "ghost")
	s.Require().NoError(err)

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *RedisStoreSuite) TestCorruptHashIsInvalidState() {
	s.mini.HSet("test:example:bad", fieldName, "Widget")
	s.mini.HSet("test:example:bad", fieldCreatedAt, "not a time")

	_, err := s.repo.FindByID(s.ctx, "bad")
	s.ErrorIs(err, sentinel.ErrInvalidState)
}

func (s *RedisStoreSuite) TestServerErrorIsNotTransient() {
	s.mini.SetError("ERR something odd")
	defer s.mini.SetError("")

	_, err := s.repo.FindByID(s.ctx, "A")
	s.Require().Error(err)
	s.NotErrorIs(err, sentinel.ErrUnavailable)
}

func TestRedisStoreUnavailable(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr(), MaxRetries: -1})
	defer client.Close()
	repo := NewRedis(client)
	mini.Close()

	_, err := repo.FindByID(t.Context(), "A")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}
