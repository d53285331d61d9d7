// Package mail sends campaign and reminder email. With no SendGrid key
// configured it falls back to logging messages to the console, which is
// what you want in development.
package mail

import (
	"github.com/bottegalab/gestionale/internal/config"
)

type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

type Service interface {
	Send(msg Message) error
}

// New picks the sender from configuration.
func New() Service {
	if key := config.SendgridKey(); key != "" {
		return &sendgridService{key: key, from: config.FromEmail(), fromName: config.AppName()}
	}
	return &consoleService{from: config.FromEmail()}
}
