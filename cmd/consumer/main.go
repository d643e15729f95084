package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pavlem/postflow/internal/cache"
	"github.com/pavlem/postflow/internal/config"
	"github.com/pavlem/postflow/internal/domain"
	"github.com/pavlem/postflow/internal/stream"
)

func main() {
	cfg := config.Load()

	redisClient, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()
	log.Println("Connected to redis")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := stream.NewConsumer(redisClient, "postConsumer", func(ctx context.Context, entryID string, post domain.Post) error {
		log.Printf("Received post %s (entry %s): %q by user %s", post.ID, entryID, post.Title, post.UserID)
		return nil
	})

	log.Println("started consumer")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
