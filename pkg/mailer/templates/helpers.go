package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = strings.TrimSpace(ip) } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}
func WithAppName(name string) Option { return func(d *EmailData) { d.AppName = name } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewForgotPasswordData builds the data for the forgot_password template.
func NewForgotPasswordData(name, email, resetURL string, expiresIn time.Duration, opts ...Option) EmailData {
	d := EmailData{
		Name:      name,
		Email:     email,
		ResetURL:  resetURL,
		ExpiresIn: expiresIn,
	}
	for _, o := range opts {
		o(&d)
	}
	return d
}
