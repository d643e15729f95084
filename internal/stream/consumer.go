package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pavlem/postflow/internal/domain"
	"github.com/redis/go-redis/v9"
)

// HandlerFunc processes one created-post event. Returning an error leaves the
// entry unacknowledged, so the group redelivers it (at-least-once; handlers
// are not assumed idempotent).
type HandlerFunc func(ctx context.Context, entryID string, post domain.Post) error

// Consumer reads created-post events off the stream as a member of the
// consumer group and acknowledges each entry after its handler succeeds.
type Consumer struct {
	client *redis.Client
	name   string
	block  time.Duration
	handle HandlerFunc
}

func NewConsumer(client *redis.Client, name string, handle HandlerFunc) *Consumer {
	return &Consumer{
		client: client,
		name:   name,
		block:  2 * time.Second,
		handle: handle,
	}
}

// Run polls the stream until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	for {
		res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    Group,
			Consumer: c.name,
			Streams:  []string{Key, ">"},
			Block:    c.block,
		}).Result()
		if errors.Is(err, redis.Nil) {
			// block window elapsed with no new entries
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("stream consumer: read: %v", err)
			continue
		}

		for _, str := range res {
			for _, msg := range str.Messages {
				if err := c.process(ctx, msg); err != nil {
					log.Printf("stream consumer: entry %s: %v", msg.ID, err)
					continue
				}
				if err := c.client.XAck(ctx, Key, Group, msg.ID).Err(); err != nil {
					log.Printf("stream consumer: ack %s: %v", msg.ID, err)
				}
			}
		}
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, Key, Group, "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) error {
	raw, ok := msg.Values["data"].(string)
	if !ok {
		return fmt.Errorf("entry has no data field")
	}

	var post domain.Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		return fmt.Errorf("decoding post: %w", err)
	}

	return c.handle(ctx, msg.ID, post)
}
