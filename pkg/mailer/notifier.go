package mailer

import (
	"context"
	"errors"
)

var ErrIncompleteMessage = errors.New("missing email details")

// Notifier delivers a single message. Implementations return only after the
// message has been accepted downstream, so callers can surface failures.
type Notifier interface {
	Send(ctx context.Context, job EmailJob) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, job EmailJob) error

func (f NotifierFunc) Send(ctx context.Context, job EmailJob) error { return f(ctx, job) }

// Disabled drops every message. Used when MAIL_SEND_ENABLED=false.
type Disabled struct{}

func (Disabled) Send(context.Context, EmailJob) error { return nil }
