package events

import (
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"hackathon-backend/log"
)

// Exchange is the topic exchange every domain event is published to, routed by its Type.
const Exchange = "hackathon"

const dialAttempts = 6

type Bus struct {
	conn *amqp.Connection
}

// Dial connects to rabbitmq, retrying with exponential backoff, and declares the exchange.
func Dial(url string) (*Bus, error) {
	log.Logger.Info("Trying to connect to rabbitmq...")

	var (
		conn *amqp.Connection
		err  error
	)
	t := time.Second
	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		if i == dialAttempts-1 {
			return nil, err
		}

		log.Logger.Warn("rabbitmq unavailable, retrying", zap.Duration("backoff", t), zap.Error(err))
		time.Sleep(t)
		t *= 2
	}
	log.Logger.Info("Connected to rabbitmq")

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Bus{conn: conn}, nil
}

func (b *Bus) Close() error {
	return b.conn.Close()
}
