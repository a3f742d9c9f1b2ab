package reply

import "strings"

// MaxReplyLen is the cap applied before sending; the in-game chat box
// rejects longer messages.
const MaxReplyLen = 200

// stripPrefixes are labels the model sometimes prepends despite the prompt.
var stripPrefixes = []string{"Réponse:", "Assistant:", "Bot:"}

// Clean normalizes a generated reply: quotes removed, leading labels and the
// bot's own pseudo stripped, length capped.
func Clean(reply, pseudo string) string {
	reply = strings.Trim(reply, `"'`)

	prefixes := append([]string{pseudo + ":"}, stripPrefixes...)
	for _, prefix := range prefixes {
		if prefix != ":" && len(reply) >= len(prefix) &&
			strings.EqualFold(reply[:len(prefix)], prefix) {
			reply = strings.TrimSpace(reply[len(prefix):])
		}
	}

	if runes := []rune(reply); len(runes) > MaxReplyLen {
		reply = string(runes[:MaxReplyLen-3]) + "..."
	}
	return reply
}
