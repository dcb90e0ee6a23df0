package events

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

type Type string

const (
	UserRegistered Type = "user.registered"
	UserVerified   Type = "user.verified"
	UserAdmission  Type = "user.admission"
	UserConfirmed  Type = "user.confirmed"
	ProjectCreated Type = "project.created"
	PrizeEntered   Type = "project.prize_entered"
	CheckedIn      Type = "checkin.recorded"
)

type Event struct {
	ID   uuid.UUID
	Type Type
	Time time.Time
	// Subject is the hex id of the document the event is about.
	Subject string
	Data    map[string]string
}

func New(t Type, subject string, data map[string]string) *Event {
	return &Event{
		ID:      uuid.New(),
		Type:    t,
		Time:    time.Now().UTC(),
		Subject: subject,
		Data:    data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e *Event) error
}

func (b *Bus) Publish(ctx context.Context, e *Event) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return err
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	return ch.Publish(Exchange, string(e.Type), false, false, amqp.Publishing{
		ContentType: "application/x-gob",
		MessageId:   e.ID.String(),
		Timestamp:   e.Time,
		Body:        buf.Bytes(),
	})
}

type nop struct{}

// Nop returns a Publisher that drops every event.
func Nop() Publisher {
	return nop{}
}

func (nop) Publish(context.Context, *Event) error {
	return nil
}
