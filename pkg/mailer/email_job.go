package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// It mirrors the mail service contract: {to, subject, html} with optional text.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// Validate reports whether the job carries enough to be delivered.
func (j EmailJob) Validate() error {
	if j.To == "" || j.Subject == "" || (j.Text == "" && j.HTML == "") {
		return ErrIncompleteMessage
	}
	return nil
}
