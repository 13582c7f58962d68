package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	bodies [][]byte
	err    error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	p.bodies = append(p.bodies, b)
	return nil
}

func TestQueueNotifier_PublishesRenderedJob(t *testing.T) {
	pub := &capturePublisher{}
	n := NewQueueNotifier(pub)

	err := n.Send(context.Background(), "a@x.com", Message{Subject: "Confirm", Text: "link", HTML: "<a>link</a>"})
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)

	var job EmailJob
	require.NoError(t, json.Unmarshal(pub.bodies[0], &job))
	assert.Equal(t, "a@x.com", job.To)
	assert.Equal(t, "Confirm", job.Subject)
	assert.True(t, job.Rendered())
	assert.Empty(t, job.Template)
}

func TestQueueNotifier_Errors(t *testing.T) {
	assert.Error(t, NewQueueNotifier(nil).Send(context.Background(), "a@x.com", Message{}))

	boom := errors.New("channel closed")
	err := NewQueueNotifier(&capturePublisher{err: boom}).Send(context.Background(), "a@x.com", Message{Subject: "s"})
	assert.ErrorIs(t, err, boom)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	require.NoError(t, NewLogNotifier(logger).Send(context.Background(), "a@x.com", Message{Subject: "Confirm", Text: "body"}))
	assert.Contains(t, buf.String(), `"to":"a@x.com"`)
	assert.Contains(t, buf.String(), `"subject":"Confirm"`)

	assert.NoError(t, NewLogNotifier(nil).Send(context.Background(), "a@x.com", Message{}))
}

func TestEmailJob(t *testing.T) {
	assert.False(t, EmailJob{Subject: "s"}.Rendered())
	assert.True(t, EmailJob{Subject: "s", HTML: "h"}.Rendered())

	j := EmailJob{To: "a@x.com", Template: "confirm_email"}
	j.EnsureRecipient()
	assert.Equal(t, "a@x.com", j.Data["Email"])

	j = EmailJob{To: "a@x.com", Data: map[string]any{"Email": "b@x.com"}}
	j.EnsureRecipient()
	assert.Equal(t, "b@x.com", j.Data["Email"])
}
