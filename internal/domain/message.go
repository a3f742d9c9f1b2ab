package domain

// ChatMessage is one player chat line extracted from the game log.
type ChatMessage struct {
	Sender  string `json:"sender"`
	Body    string `json:"body"`
	RawLine string `json:"raw_line"`
}
