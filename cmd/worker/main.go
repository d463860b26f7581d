package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"eventpass/internal/config"
	"eventpass/internal/event"
	"eventpass/internal/queue"
	"eventpass/internal/store"
)

// toastChannel is the redis pub/sub channel connected clients subscribe to
// for toast delivery.
const toastChannel = "eventpass:toasts"

// Worker consumes queued notifications and fans them out to subscribed
// clients. With the in-memory queue it only makes sense inside the API
// process; as a standalone binary it expects the redis backend.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Client.Close()

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		log.Println("warning: memory queue selected, standalone worker will receive nothing")
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for notifications...")
	for msg := range messages {
		if msg.Type != queue.TypeNotification {
			continue
		}

		var n event.Notification
		if err := json.Unmarshal(msg.Body, &n); err != nil {
			log.Printf("bad notification payload: %v", err)
			continue
		}

		if err := deliver(ctx, redisClient.Client, msg.Body); err != nil {
			log.Printf("deliver notification %s failed: %v", n.ID, err)
			continue
		}
		log.Printf("delivered notification %s: %s", n.ID, n.Title)
	}

	log.Println("worker stopped")
}

func deliver(ctx context.Context, client *redis.Client, payload []byte) error {
	return client.Publish(ctx, toastChannel, payload).Err()
}
