package mail

import (
	"github.com/sirupsen/logrus"

	"github.com/bottegalab/gestionale/internal/config"
)

type consoleService struct {
	from string
}

func (s *consoleService) Send(msg Message) error {
	config.Logger().WithFields(logrus.Fields{
		"from":    s.from,
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}
