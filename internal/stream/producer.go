package stream

import (
	"context"
	"encoding/json"
	"log"

	"github.com/pavlem/postflow/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	// Key is the stream that created posts are appended to.
	Key = "postStream"
	// Group is the consumer group that shares delivery of stream entries.
	Group = "postConsumerGroup"
)

// Producer appends created posts to the Redis stream. Publishing is
// best-effort: failures are logged and swallowed so the insert that triggered
// them still succeeds.
type Producer struct {
	client *redis.Client
}

func NewProducer(client *redis.Client) *Producer {
	return &Producer{client: client}
}

func (p *Producer) PublishPostCreated(ctx context.Context, post *domain.Post) {
	data, err := json.Marshal(post)
	if err != nil {
		log.Printf("stream producer: marshal post %s: %v", post.ID, err)
		return
	}

	entryID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: Key,
		Values: map[string]any{"data": string(data)},
	}).Result()
	if err != nil {
		log.Printf("stream producer: publish post %s: %v", post.ID, err)
		return
	}

	log.Printf("Produced post %s as stream entry %s", post.ID, entryID)
}
