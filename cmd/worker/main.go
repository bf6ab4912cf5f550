package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/gourav132/Show-IT/adapters/event"
	"github.com/gourav132/Show-IT/adapters/persistence"
	"github.com/gourav132/Show-IT/internal/config"
	"github.com/gourav132/Show-IT/pkg/logger"
)

// The worker keeps derived state honest: profile events drop the cached
// public snapshot for the saved username, and project events re-publish the
// owner's change notification so watchers converge even when the write came
// from outside the API process.
func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Show-IT Worker...")

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	projectFeed := event.NewProjectFeed(redisClient, projectRepo, appLogger)

	profileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-cache-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer profileConsumer.Close()

	projectConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProjectEvents,
		GroupID:  "project-feed-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer projectConsumer.Close()

	ctx := context.Background()

	go consumeProjectEvents(ctx, projectConsumer, projectFeed)
	consumeProfileEvents(ctx, profileConsumer, redisClient)
}

func consumeProfileEvents(ctx context.Context, consumer *kafka.Reader, rdb *redis.Client) {
	log.Printf("Worker listening on topic '%s'...", event.TopicProfileEvents)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal profile event: %v. Skipping.", err)
			commitMessage(consumer, msg)
			continue
		}

		if payload.Username != "" {
			if err := rdb.Del(ctx, "public_profile:"+payload.Username).Err(); err != nil {
				log.Printf("ERROR: Failed to drop cached profile for %s: %v", payload.Username, err)
				continue
			}
		}

		commitMessage(consumer, msg)
	}
}

func consumeProjectEvents(ctx context.Context, consumer *kafka.Reader, feed *event.ProjectFeed) {
	log.Printf("Worker listening on topic '%s'...", event.TopicProjectEvents)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ProjectEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal project event: %v. Skipping.", err)
			commitMessage(consumer, msg)
			continue
		}

		if err := feed.Notify(ctx, payload.OwnerID); err != nil {
			log.Printf("ERROR: Failed to notify watchers for owner %s: %v", payload.OwnerID, err)
			continue
		}

		commitMessage(consumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
