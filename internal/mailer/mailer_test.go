package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/storytimehq/storytime-api/pkg/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureTransport records the last message instead of delivering it.
type captureTransport struct {
	lastMsg message
	sends   int
	err     error
}

func (c *captureTransport) send(_ context.Context, msg message) error {
	c.sends++
	c.lastMsg = msg
	return c.err
}

func newTestService(t *testing.T, tr Transport) *Service {
	t.Helper()

	svc, err := NewService(tr, "team@storytime.app", time.Second)
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresTransportAndInbox(t *testing.T) {
	_, err := NewService(nil, "team@storytime.app", time.Second)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewService(&captureTransport{}, "", time.Second)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSendWelcome_RendersRecipientDetails(t *testing.T) {
	capture := &captureTransport{}
	svc := newTestService(t, capture)

	err := svc.SendWelcome(context.Background(), "jane@example.com", "Jane")
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", capture.lastMsg.To)
	assert.Equal(t, "Welcome to the StoryTime Waitlist!", capture.lastMsg.Subject)
	assert.Contains(t, capture.lastMsg.HTML, "Jane")
	assert.Contains(t, capture.lastMsg.HTML, "jane@example.com")
	assert.Equal(t, "waitlist-welcome", capture.lastMsg.Tag)
}

func TestSendContactConfirmation_GoesToSender(t *testing.T) {
	capture := &captureTransport{}
	svc := newTestService(t, capture)

	err := svc.SendContactConfirmation(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", capture.lastMsg.To)
	assert.Contains(t, capture.lastMsg.HTML, "Ada")
}

func TestSendContactNotification_GoesToTeamInbox(t *testing.T) {
	capture := &captureTransport{}
	svc := newTestService(t, capture)

	err := svc.SendContactNotification(context.Background(), "Ada", "ada@example.com", "Hello there")
	require.NoError(t, err)

	assert.Equal(t, "team@storytime.app", capture.lastMsg.To)
	assert.Contains(t, capture.lastMsg.Subject, "Ada")
	assert.Contains(t, capture.lastMsg.HTML, "Hello there")
	assert.Contains(t, capture.lastMsg.HTML, "ada@example.com")
}

func TestSendContactNotification_EscapesHTMLInMessage(t *testing.T) {
	capture := &captureTransport{}
	svc := newTestService(t, capture)

	err := svc.SendContactNotification(context.Background(), "Mallory", "m@example.com", `<script>alert("x")</script>`)
	require.NoError(t, err)

	assert.NotContains(t, capture.lastMsg.HTML, "<script>")
}

func TestDispatch_WrapsTransportFailures(t *testing.T) {
	capture := &captureTransport{err: errors.New("connection refused")}
	svc := newTestService(t, capture)

	err := svc.SendWelcome(context.Background(), "jane@example.com", "Jane")
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestDevTransport_WritesHTMLAndMetadata(t *testing.T) {
	dir := t.TempDir()
	tr := NewDevTransport(dir)

	err := tr.send(context.Background(), message{
		To:      "jane@example.com",
		Subject: "Hi",
		HTML:    "<p>hello</p>",
		Tag:     "waitlist-welcome",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var metaPath string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			metaPath = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, metaPath)

	raw, err := os.ReadFile(metaPath)
	require.NoError(t, err)

	var meta devMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "jane@example.com", meta.To)
	assert.Equal(t, "waitlist-welcome", meta.Tag)
}

func TestWithCircuitBreaker_SkipsSendsWhileOpen(t *testing.T) {
	capture := &captureTransport{err: errors.New("smtp down")}
	cb := circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Minute,
		SuccessThreshold: 1,
	})
	tr := WithCircuitBreaker(capture, cb)

	err := tr.send(context.Background(), message{To: "a@example.com"})
	require.Error(t, err)
	assert.Equal(t, 1, capture.sends)

	err = tr.send(context.Background(), message{To: "a@example.com"})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, 1, capture.sends, "open circuit must not reach the transport")
}
