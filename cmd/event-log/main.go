// Command event-log prints the domain events published by the backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"hackathon-backend/events"
	"hackathon-backend/log"
)

func main() {
	url := flag.String("amqp", os.Getenv("RABBITMQ_CONNSTRING"), "RabbitMQ connection string")
	key := flag.String("key", "#", "Routing key to bind, e.g. user.* or project.created")
	flag.Parse()
	log.EnsureLogger()
	defer log.Sync()

	if *url == "" {
		fmt.Println("--amqp or RABBITMQ_CONNSTRING is required")
		os.Exit(1)
	}

	bus, err := events.Dial(*url)
	if err != nil {
		log.Logger.Fatal("failed connecting to rabbitmq", zap.Error(err))
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ch, err := bus.Consume(ctx, *key)
	if err != nil {
		log.Logger.Fatal("failed consuming events", zap.Error(err))
	}

	for e := range ch {
		log.Logger.Info(string(e.Type),
			zap.String("id", e.ID.String()),
			zap.Time("time", e.Time),
			zap.String("subject", e.Subject),
			zap.Any("data", e.Data),
		)
	}
}
