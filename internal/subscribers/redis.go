package subscribers

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scaffold/internal/cqrs"
)

// ChannelPublisher is the part of the go-redis client used for pub/sub.
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher broadcasts event envelopes on a pub/sub channel. Delivery is
// fire-and-forget on the Redis side: nobody listening is not an error.
type RedisPublisher struct {
	client  ChannelPublisher
	channel string
	timeout time.Duration
}

func NewRedisPublisher(client ChannelPublisher, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel, timeout: defaultFanoutTimeout}
}

func (p *RedisPublisher) Handle(ctx context.Context, event cqrs.Event) error {
	env, err := cqrs.NewEnvelope(event)
	if err != nil {
		return err
	}
	payload, err := env.Marshal()
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.EventName(), p.channel, err)
	}
	return nil
}
