package adapter

import (
	"context"
	"iter"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// Gemini creates streaming chat transports. The system prompt is fixed at
// chat creation and applies to every exchange on that chat.
type Gemini interface {
	CreateChat(ctx context.Context, systemPrompt string, history []*genai.Content) (ChatStream, error)
}

// ChatStream is one bound conversation. Send yields the reply as ordered text
// chunks; iteration stops at end-of-stream or at the first error.
type ChatStream interface {
	Send(ctx context.Context, text string) iter.Seq2[string, error]
}

type GeminiClient struct {
	client          *genai.Client
	generativeModel string
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = model
	}
}

func NewGemini(ctx context.Context, projectID, location string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:          client,
		generativeModel: "gemini-2.5-flash",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) CreateChat(ctx context.Context, systemPrompt string, history []*genai.Content) (ChatStream, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, ""),
	}

	chat, err := g.client.Chats.Create(ctx, g.generativeModel, config, history)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create new gemini chat")
	}

	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) Send(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range c.chat.SendMessageStream(ctx, genai.Part{Text: text}) {
			if err != nil {
				yield("", goerr.Wrap(err, "gemini stream failed"))
				return
			}
			chunk := resp.Text()
			if chunk == "" {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}
