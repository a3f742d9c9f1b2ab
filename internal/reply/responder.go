// Package reply generates short chat answers through the Mistral
// chat-completions API, keeping a bounded conversation history for context.
package reply

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// BaseURL targets Mistral's OpenAI-compatible endpoint.
	BaseURL = "https://api.mistral.ai/v1"
	// Model is the completion model used for chat replies.
	Model = "mistral-small-latest"

	// MaxHistory bounds the conversation context sent with each request.
	MaxHistory = 10
	// MaxTokens bounds the generated reply length server-side.
	MaxTokens = 100
	// Temperature keeps replies varied but on-topic.
	Temperature = 0.7
	// RequestTimeout bounds each API call.
	RequestTimeout = 10 * time.Second
)

// systemPrompt frames the model as a casual French player so replies blend
// into the server chat.
const systemPrompt = `Tu es un joueur de Minecraft sur un serveur français.
Tu dois répondre de manière naturelle, courte et amicale aux messages.
- Réponds en français
- Sois décontracté et amical
- Garde tes réponses courtes (1-2 phrases max)
- Utilise le langage courant des joueurs Minecraft
- Tu peux utiliser des abréviations comme "tkt", "bg", "mdr", etc.
- N'utilise pas d'emojis
- Ne mets pas de préfixe comme "Réponse:" ou ton pseudo`

// Responder generates replies with conversation memory. Safe for use from a
// single goroutine per conversation; the mutex guards the shared history.
type Responder struct {
	client openai.Client
	pseudo string
	log    *slog.Logger

	mu      sync.Mutex
	history []openai.ChatCompletionMessageParamUnion
}

// NewResponder builds a responder for the given API key and own pseudo.
func NewResponder(apiKey, pseudo string, log *slog.Logger) *Responder {
	if log == nil {
		log = slog.Default()
	}
	return &Responder{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(BaseURL),
		),
		pseudo: pseudo,
		log:    log,
	}
}

// Reply generates an answer to a chat message. The sender name is folded
// into the user turn so the model knows who is talking.
func (r *Responder) Reply(ctx context.Context, sender, message string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, openai.UserMessage(fmt.Sprintf("%s: %s", sender, message)))
	if len(r.history) > MaxHistory {
		r.history = r.history[len(r.history)-MaxHistory:]
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(r.history)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	messages = append(messages, r.history...)

	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	resp, err := r.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:       Model,
		Messages:    messages,
		MaxTokens:   openai.Int(MaxTokens),
		Temperature: openai.Float(Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("reply generation returned no choices")
	}

	text := Clean(strings.TrimSpace(resp.Choices[0].Message.Content), r.pseudo)
	r.history = append(r.history, openai.AssistantMessage(text))

	r.log.Debug("generated reply", "sender", sender)
	return text, nil
}
