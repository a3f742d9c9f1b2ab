// Package chat watches the game log for player messages and answers the
// ones addressed to the bot.
package chat

import (
	"regexp"
	"strings"

	"github.com/dayti/agribot/internal/domain"
)

// ChatMarker precedes every chat payload in the game log.
const ChatMarker = "[CHAT]"

// systemPrefixes open messages emitted by the server itself, which are
// never treated as player chat.
var systemPrefixes = []string{
	"»",
	"Téléporté",
	"Mode de vol",
	"PASSE DE COMBAT",
	"SurvivalWorld",
}

// Format extracts sender and body from the payload after the chat marker.
// New chat layouts are supported by adding formats, not by changing the
// parser.
type Format interface {
	Parse(content string) (sender, body string, ok bool)
}

// colorCodeRE strips the rank and color-code soup glued in front of player
// names ("?Divinum?Dayti" parses to "Dayti").
var colorCodeRE = regexp.MustCompile(`^[?§\[\]0-9a-zA-Z]*[?§]`)

func cleanSender(s string) string {
	return strings.TrimSpace(colorCodeRE.ReplaceAllString(s, ""))
}

// ColonFormat matches "Prefix Name: message".
type ColonFormat struct{}

var colonRE = regexp.MustCompile(`^(?:\[\d+\]\s*)?(?:\S*\s*)?([^:»]+?):\s*(.+)$`)

func (ColonFormat) Parse(content string) (string, string, bool) {
	m := colonRE.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	sender := cleanSender(m[1])
	body := strings.TrimSpace(m[2])
	if sender == "" || body == "" {
		return "", "", false
	}
	return sender, body, true
}

// GuillemetFormat matches "[Rank] Prefix Name » message".
type GuillemetFormat struct{}

var guillemetRE = regexp.MustCompile(`^(?:\[\d+\]\s*)?(?:\S*\s*)?([^»]+?)\s*»\s*(.+)$`)

func (GuillemetFormat) Parse(content string) (string, string, bool) {
	m := guillemetRE.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	sender := cleanSender(m[1])
	body := strings.TrimSpace(m[2])
	if sender == "" || body == "" {
		return "", "", false
	}
	return sender, body, true
}

// Parser turns raw log lines into chat messages by trying each format in
// order.
type Parser struct {
	formats []Format
}

// NewParser builds a parser; with no formats it uses the two known layouts.
func NewParser(formats ...Format) *Parser {
	if len(formats) == 0 {
		formats = []Format{ColonFormat{}, GuillemetFormat{}}
	}
	return &Parser{formats: formats}
}

// Parse extracts a player message from a raw log line. Lines without the
// chat marker, server messages and unrecognized layouts report ok=false.
func (p *Parser) Parse(line string) (domain.ChatMessage, bool) {
	idx := strings.Index(line, ChatMarker)
	if idx < 0 {
		return domain.ChatMessage{}, false
	}
	content := strings.TrimSpace(line[idx+len(ChatMarker):])
	if content == "" {
		return domain.ChatMessage{}, false
	}

	for _, prefix := range systemPrefixes {
		if strings.HasPrefix(content, prefix) {
			return domain.ChatMessage{}, false
		}
	}

	for _, f := range p.formats {
		if sender, body, ok := f.Parse(content); ok {
			return domain.ChatMessage{Sender: sender, Body: body, RawLine: line}, true
		}
	}
	return domain.ChatMessage{}, false
}
