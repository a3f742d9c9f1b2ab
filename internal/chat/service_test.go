package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayti/agribot/internal/config"
)

type fakeResponder struct {
	reply string
	err   error
	calls int
}

func (f *fakeResponder) Reply(_ context.Context, sender, message string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendChat(_ context.Context, msg string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeWordlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type serviceHarness struct {
	svc       *Service
	responder *fakeResponder
	sender    *fakeSender
	clock     *time.Time
}

func newHarness(t *testing.T, triggers []string) *serviceHarness {
	t.Helper()
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	recent, err := lru.New[string, time.Time](RecentSendersCap)
	require.NoError(t, err)

	h := &serviceHarness{
		responder: &fakeResponder{reply: "tkt bg"},
		sender:    &fakeSender{},
		clock:     &now,
	}
	h.svc = &Service{
		cfg:      config.AutoReply{Enabled: true, Pseudo: "Dayti"},
		parser:   NewParser(),
		triggers: triggers,
		responder: h.responder,
		sender:    h.sender,
		log:       testLogger(),
		now:       func() time.Time { return *h.clock },
		minDelay:  MinReplyDelay,
		recent:    recent,
	}
	return h
}

func (h *serviceHarness) advance(d time.Duration) {
	*h.clock = h.clock.Add(d)
}

func chatLine(sender, body string) string {
	return fmt.Sprintf("[14:02:11] [Render thread/INFO]: [System] [CHAT] %s: %s", sender, body)
}

func TestServiceEchoReply(t *testing.T) {
	h := newHarness(t, nil)

	h.svc.handleLine(context.Background(), chatLine("Steve", "re"))

	assert.Equal(t, []string{"re"}, h.sender.sent)
	assert.Equal(t, 0, h.responder.calls, "the echo reply never calls the model")
}

func TestServiceTriggerReply(t *testing.T) {
	h := newHarness(t, []string{"salut"})

	h.svc.handleLine(context.Background(), chatLine("Steve", "salut toi"))

	assert.Equal(t, 1, h.responder.calls)
	assert.Equal(t, []string{"tkt bg"}, h.sender.sent)
}

func TestServiceIgnoresOwnMessages(t *testing.T) {
	h := newHarness(t, []string{"salut"})

	h.svc.handleLine(context.Background(), chatLine("?Divinum?Dayti", "salut"))
	h.svc.handleLine(context.Background(), chatLine("Dayti", "re"))

	assert.Empty(t, h.sender.sent)
	assert.Equal(t, 0, h.responder.calls)
}

func TestServiceIgnoresNonTriggerMessages(t *testing.T) {
	h := newHarness(t, []string{"salut"})

	h.svc.handleLine(context.Background(), chatLine("Steve", "quelqu'un vend du fer ?"))

	assert.Empty(t, h.sender.sent)
	assert.Equal(t, 0, h.responder.calls)
}

func TestServiceGlobalReplyDelay(t *testing.T) {
	h := newHarness(t, nil)

	h.advance(time.Hour)
	h.svc.handleLine(context.Background(), chatLine("Steve", "re"))
	h.svc.handleLine(context.Background(), chatLine("Alex", "re"))

	assert.Equal(t, []string{"re"}, h.sender.sent, "second reply inside the delay is dropped")

	h.advance(MinReplyDelay)
	h.svc.handleLine(context.Background(), chatLine("Alex", "re"))
	assert.Equal(t, []string{"re", "re"}, h.sender.sent)
}

func TestServiceSenderCooldown(t *testing.T) {
	h := newHarness(t, []string{"salut"})

	h.advance(time.Hour)
	h.svc.handleLine(context.Background(), chatLine("Steve", "salut"))
	require.Equal(t, 1, h.responder.calls)

	// Past the global delay but still inside Steve's cooldown.
	h.advance(MinReplyDelay + time.Second)
	h.svc.handleLine(context.Background(), chatLine("Steve", "salut encore"))
	assert.Equal(t, 1, h.responder.calls)

	// Another player is answered right away.
	h.svc.handleLine(context.Background(), chatLine("Alex", "salut"))
	assert.Equal(t, 2, h.responder.calls)

	// Steve is answered again once the cooldown has passed.
	h.advance(SenderCooldown)
	h.svc.handleLine(context.Background(), chatLine("Steve", "salut"))
	assert.Equal(t, 3, h.responder.calls)
}

func TestServiceResponderError(t *testing.T) {
	h := newHarness(t, []string{"salut"})
	h.responder.err = errors.New("api down")

	var gotErr error
	h.svc.OnError = func(err error) { gotErr = err }

	h.advance(time.Hour)
	h.svc.handleLine(context.Background(), chatLine("Steve", "salut"))

	assert.Empty(t, h.sender.sent)
	assert.ErrorContains(t, gotErr, "api down")
}

func TestServiceRunTailsLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "latest.log")
	require.NoError(t, os.WriteFile(logPath, []byte("old line\n"), 0o644))

	wordlist := writeWordlist(t, "salut\n")
	cfg := config.AutoReply{Enabled: true, Pseudo: "Dayti", WordlistPath: wordlist}

	responder := &fakeResponder{reply: "yo"}
	sender := &fakeSender{}
	svc, err := NewService(cfg, logPath, responder, sender, testLogger())
	require.NoError(t, err)
	svc.pollInterval = 20 * time.Millisecond

	replies := make(chan string, 1)
	svc.OnReply = func(msg string) { replies <- msg }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// Give the tailer time to seek past the existing content.
	time.Sleep(50 * time.Millisecond)

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(chatLine("Steve", "salut") + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case msg := <-replies:
		assert.Equal(t, "yo", msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply observed")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
