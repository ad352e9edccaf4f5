package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Outcome tells the queue consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Requeue         // transient send failure, try again once
	Drop            // malformed or already retried; dead-letter or discard
)

// Deliver decodes one queued EmailJob and sends it through n. A send failure is
// requeued unless the message was already redelivered.
func Deliver(ctx context.Context, n Notifier, body []byte, redelivered bool, timeout time.Duration) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("bad message: %w", err)
	}
	if err := job.Validate(); err != nil {
		return Drop, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := n.Send(ctx, job); err != nil {
		if redelivered {
			return Drop, fmt.Errorf("send failed after retry: %w", err)
		}
		return Requeue, fmt.Errorf("send failed: %w", err)
	}
	return Ack, nil
}
