package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Publisher puts a JSON document on a queue. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier hands messages to the email worker through a queue.
type QueueNotifier struct {
	Pub Publisher
}

func NewQueueNotifier(pub Publisher) *QueueNotifier {
	return &QueueNotifier{Pub: pub}
}

func (n *QueueNotifier) Send(ctx context.Context, to string, msg Message) error {
	if n.Pub == nil {
		return errors.New("mail queue not configured")
	}
	return n.Pub.PublishJSON(ctx, EmailJob{To: to, Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML})
}

// LogNotifier only logs outgoing messages. Used when MAIL_SEND_ENABLED=false.
type LogNotifier struct {
	Logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to string, msg Message) error {
	if n.Logger != nil {
		n.Logger.WithFields(logrus.Fields{"to": to, "subject": msg.Subject}).Info("email sending disabled; message dropped")
		n.Logger.WithField("to", to).Debug(msg.Text)
	}
	return nil
}
