package mailer

import (
	"context"
	"fmt"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier hands messages to the email worker through RabbitMQ.
type QueueNotifier struct {
	Pub Publisher
}

func NewQueueNotifier(pub Publisher) *QueueNotifier { return &QueueNotifier{Pub: pub} }

func (q *QueueNotifier) Send(ctx context.Context, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if err := q.Pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}
