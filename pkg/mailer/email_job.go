package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either a rendered Subject/Text/HTML or a Template name with Data can be
// provided; the worker renders templates before sending.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// WelcomeJob builds the queued job for the account-created email.
func WelcomeJob(to string) EmailJob {
	return EmailJob{
		To:       to,
		Template: "welcome",
		Data:     map[string]any{"Email": to},
	}
}
