package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPRelay posts messages to the mail service as JSON {to, subject, html}.
type HTTPRelay struct {
	URL    string
	Client *http.Client
}

func NewHTTPRelay(url string, timeout time.Duration) *HTTPRelay {
	return &HTTPRelay{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Send performs one POST. Any non-2xx response is an error; there is no retry.
func (r *HTTPRelay) Send(ctx context.Context, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("mail service: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("mail service: status %d: %s", res.StatusCode, bytes.TrimSpace(msg))
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}
