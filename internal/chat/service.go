package chat

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dayti/agribot/internal/config"
	"github.com/dayti/agribot/internal/domain"
	"github.com/dayti/agribot/internal/logtail"
	"github.com/dayti/agribot/internal/metrics"
)

// Responder generates a reply to a player message. *reply.Responder
// satisfies it.
type Responder interface {
	Reply(ctx context.Context, sender, message string) (string, error)
}

// Sender delivers a message to the in-game chat. game.Client satisfies it.
type Sender interface {
	SendChat(ctx context.Context, msg string) error
}

// Service is the auto-reply loop. It tails the game log on its own cursor,
// independent of the session driver's detector.
type Service struct {
	cfg       config.AutoReply
	tailer    *logtail.Tailer
	parser    *Parser
	triggers  []string
	responder Responder
	sender    Sender
	log       *slog.Logger
	now       func() time.Time

	pollInterval time.Duration
	minDelay     time.Duration
	lastReply    time.Time
	recent       *lru.Cache[string, time.Time]

	// OnReply and OnError surface outcomes to the caller; both optional.
	OnReply func(msg string)
	OnError func(err error)
}

// NewService builds the auto-reply service. The wordlist is loaded once; a
// missing file means only the echo reply is active.
func NewService(cfg config.AutoReply, logPath string, responder Responder, sender Sender, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}

	triggers, err := LoadWordlist(cfg.WordlistPath)
	if err != nil {
		return nil, err
	}
	log.Info("wordlist loaded", "triggers", len(triggers), "path", cfg.WordlistPath)

	recent, err := lru.New[string, time.Time](RecentSendersCap)
	if err != nil {
		return nil, fmt.Errorf("failed to build sender cache: %w", err)
	}

	return &Service{
		cfg:          cfg,
		tailer:       logtail.NewTailer(logPath),
		parser:       NewParser(),
		triggers:     triggers,
		responder:    responder,
		sender:       sender,
		log:          log,
		now:          time.Now,
		pollInterval: PollInterval,
		minDelay:     MinReplyDelay,
		recent:       recent,
	}, nil
}

// Run tails the log until ctx is cancelled, answering messages as they
// appear. Only historical lines are skipped: the cursor starts at the
// current end of file.
func (s *Service) Run(ctx context.Context) error {
	if err := s.tailer.SeekEnd(); err != nil {
		s.log.Warn("failed to seek log end", "error", err)
	}

	// Filesystem notifications wake the loop early; the ticker below is
	// the correctness path, notifications only reduce latency.
	var events chan fsnotify.Event
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Warn("filesystem watcher unavailable, polling only", "error", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(s.tailer.Path())); err != nil {
			s.log.Warn("failed to watch log directory, polling only", "error", err)
		} else {
			events = watcher.Events
		}
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.log.Info("auto-reply started", "pseudo", s.cfg.Pseudo)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if ev.Op.Has(fsnotify.Write) && ev.Name == s.tailer.Path() {
				s.drain(ctx)
			}
		case <-ticker.C:
			s.drain(ctx)
		}
	}
}

// drain reads everything new in the log and handles each line.
func (s *Service) drain(ctx context.Context) {
	lines, reset, err := s.tailer.ReadNewLines()
	if err != nil {
		metrics.LogReadErrors.Inc()
		s.log.Warn("log read failed", "error", err)
		return
	}
	if reset {
		metrics.LogResets.Inc()
		s.log.Info("log rotation detected")
	}
	for _, line := range lines {
		s.handleLine(ctx, line)
	}
}

func (s *Service) handleLine(ctx context.Context, line string) {
	msg, ok := s.parser.Parse(line)
	if !ok {
		return
	}
	if s.isOwnMessage(msg) {
		return
	}

	body := strings.ToLower(strings.TrimSpace(msg.Body))
	switch {
	case body == EchoBody:
		s.log.Info("echo trigger", "sender", msg.Sender)
		s.reply(ctx, msg.Sender, EchoBody)
	case ContainsTrigger(msg.Body, s.triggers):
		s.log.Info("trigger word matched", "sender", msg.Sender)
		s.generateAndReply(ctx, msg)
	}
}

func (s *Service) isOwnMessage(msg domain.ChatMessage) bool {
	return strings.Contains(strings.ToLower(msg.Sender), strings.ToLower(s.cfg.Pseudo))
}

// generateAndReply runs the model and sends its answer, respecting the
// global delay and the per-sender cooldown.
func (s *Service) generateAndReply(ctx context.Context, msg domain.ChatMessage) {
	if !s.canReplyTo(msg.Sender) {
		return
	}

	text, err := s.responder.Reply(ctx, msg.Sender, msg.Body)
	if err != nil {
		metrics.ChatReplyErrors.Inc()
		s.log.Error("reply generation failed", "sender", msg.Sender, "error", err)
		if s.OnError != nil {
			s.OnError(err)
		}
		return
	}
	s.reply(ctx, msg.Sender, text)
}

// canReplyTo checks the global delay and per-sender cooldown.
func (s *Service) canReplyTo(sender string) bool {
	now := s.now()
	if now.Sub(s.lastReply) < s.minDelay {
		s.log.Debug("reply suppressed, global delay", "sender", sender)
		return false
	}
	if last, ok := s.recent.Get(strings.ToLower(sender)); ok && now.Sub(last) < SenderCooldown {
		s.log.Debug("reply suppressed, sender cooldown", "sender", sender)
		return false
	}
	return true
}

// reply sends text to the in-game chat and records the send time.
func (s *Service) reply(ctx context.Context, sender, text string) {
	now := s.now()
	if now.Sub(s.lastReply) < s.minDelay {
		return
	}

	if err := s.sender.SendChat(ctx, text); err != nil {
		metrics.ChatReplyErrors.Inc()
		s.log.Error("failed to send reply", "error", err)
		if s.OnError != nil {
			s.OnError(err)
		}
		return
	}

	s.lastReply = now
	s.recent.Add(strings.ToLower(sender), now)
	metrics.ChatReplies.Inc()
	s.log.Info("reply sent", "sender", sender)
	if s.OnReply != nil {
		s.OnReply(text)
	}
}
