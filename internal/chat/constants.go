package chat

import "time"

const (
	// MinReplyDelay is the global floor between two sent replies.
	MinReplyDelay = 3 * time.Second
	// SenderCooldown is how long a single player is ignored after being
	// answered, so a chatty player cannot drain the API.
	SenderCooldown = 30 * time.Second
	// RecentSendersCap bounds the per-sender cooldown cache.
	RecentSendersCap = 128

	// PollInterval is the fallback log poll cadence when filesystem
	// notifications are unavailable or coalesced.
	PollInterval = 300 * time.Millisecond

	// EchoBody is answered in kind without going through the model.
	EchoBody = "re"
)
