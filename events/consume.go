package events

import (
	"bytes"
	"context"
	"encoding/gob"

	"go.uber.org/zap"
	"hackathon-backend/log"
)

// Consume binds an exclusive queue to the exchange with the given routing key
// ("#" for everything) and delivers decoded events until ctx is done.
func (b *Bus) Consume(ctx context.Context, key string) (<-chan *Event, error) {
	rch, err := b.conn.Channel()
	if err != nil {
		return nil, err
	}

	q, err := rch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		rch.Close()
		return nil, err
	}

	if err := rch.QueueBind(q.Name, key, Exchange, false, nil); err != nil {
		rch.Close()
		return nil, err
	}

	msgs, err := rch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		rch.Close()
		return nil, err
	}

	ch := make(chan *Event)
	go func() {
		defer close(ch)
		defer func() {
			if err := rch.Close(); err != nil {
				log.Logger.Error("unable to close channel", zap.Error(err))
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}

				e := &Event{}
				if err := gob.NewDecoder(bytes.NewReader(d.Body)).Decode(e); err != nil {
					log.Logger.Error("unable to decode event", zap.Error(err))
					continue
				}

				select {
				case ch <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
