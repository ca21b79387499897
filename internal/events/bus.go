package events

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/notification"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

// Message references a persisted outbox row. The bus carries only the
// reference; the dispatcher reloads the row so a consumer on another
// instance sees the committed state.
type Message struct {
	EventID   uuid.UUID              `json:"event_id"`
	EventType notification.EventType `json:"event_type"`
}

type Bus interface {
	Publish(ctx context.Context, msg Message) error
	StartForwarder(ctx context.Context, onMsg func(m Message)) error
	Close() error
}

// memoryBus is the single-instance default: a buffered channel fan-in with
// one forwarder goroutine.
type memoryBus struct {
	log  *logger.Logger
	ch   chan Message
	once sync.Once
}

func NewMemoryBus(log *logger.Logger) Bus {
	return &memoryBus{
		log: log.With("service", "MemoryEventBus"),
		ch:  make(chan Message, 256),
	}
}

func (b *memoryBus) Publish(ctx context.Context, msg Message) error {
	select {
	case b.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Dropping is acceptable: the outbox row stays pending and the
		// dispatcher drains pending rows on its next sweep.
		b.log.Warn("event bus full, message dropped to outbox sweep", "event_id", msg.EventID)
		return nil
	}
}

func (b *memoryBus) StartForwarder(ctx context.Context, onMsg func(m Message)) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-b.ch:
				if !ok {
					return
				}
				onMsg(m)
			}
		}
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.once.Do(func() { close(b.ch) })
	return nil
}
