package chat

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/adapter"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

// fallbackText replaces the partial reply when the transport fails
// mid-stream, so a broken exchange still finalizes cleanly.
const fallbackText = "Sorry, I ran into a problem answering that. Please try again."

const defaultTimeout = 30 * time.Second

// SnapshotSource provides the dashboard data the system prompt is built
// from. The dashboard store implements it.
type SnapshotSource interface {
	Global() *model.GlobalSnapshot
	Countries() []model.CountryRecord
}

// Session owns an ordered conversation log and a streaming transport.
// At most one exchange is in flight at a time; while it streams, the
// assistant reply is the last log entry and the only mutable one.
type Session struct {
	mu      sync.Mutex
	gemini  adapter.Gemini
	source  SnapshotSource
	stream  adapter.ChatStream
	log     []*model.ChatMessage
	busy    bool
	closed  bool
	timeout time.Duration
	onChunk func(chunk string)
}

type Option func(*Session)

// WithSendTimeout bounds one whole streaming exchange
func WithSendTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithChunkHook calls fn for every applied chunk, outside the session lock
func WithChunkHook(fn func(chunk string)) Option {
	return func(s *Session) {
		s.onChunk = fn
	}
}

func New(gemini adapter.Gemini, source SnapshotSource, opts ...Option) *Session {
	s := &Session{
		gemini:  gemini,
		source:  source,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ensureStream lazily creates the underlying chat. The system prompt is
// built once here from the snapshot current at this moment and is
// deliberately not rebuilt per message; a long session answers from the
// data it started with.
func (s *Session) ensureStream(ctx context.Context) error {
	if s.stream != nil {
		return nil
	}

	prompt, err := buildSystemPrompt(s.source.Global(), s.source.Countries())
	if err != nil {
		return err
	}

	stream, err := s.gemini.CreateChat(ctx, prompt, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create chat stream")
	}
	s.stream = stream
	return nil
}

// Send runs one streaming exchange: it appends the user message, opens the
// stream, grows the assistant reply chunk by chunk and freezes it at
// end-of-stream. While the previous exchange is still streaming it fails
// with model.ErrBusy and mutates nothing. On a transport error the reply is
// finalized with the fallback text and the busy flag is cleared, so the
// session is never left stuck; the caller may retry.
func (s *Session) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.ErrClosed
	}
	if s.busy {
		s.mu.Unlock()
		return goerr.Wrap(model.ErrBusy, "previous exchange still streaming")
	}
	if err := s.ensureStream(ctx); err != nil {
		s.mu.Unlock()
		return err
	}

	now := time.Now()
	s.log = append(s.log, &model.ChatMessage{
		Role:      model.RoleUser,
		Text:      text,
		CreatedAt: now,
	})
	reply := &model.ChatMessage{
		Role:      model.RoleAssistant,
		CreatedAt: now,
		Streaming: true,
	}
	s.log = append(s.log, reply)
	s.busy = true
	stream := s.stream
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for chunk, err := range stream.Send(ctx, text) {
		if err != nil {
			s.finalize(reply, fallbackText)
			return goerr.Wrap(err, "assistant stream failed")
		}
		if !s.apply(reply, chunk) {
			return model.ErrClosed
		}
	}

	// End of stream; zero chunks is a valid, empty reply.
	s.finalize(reply, "")
	return nil
}

// apply appends one chunk to the in-flight reply. Returns false when the
// session was torn down mid-stream; the chunk is discarded in that case.
func (s *Session) apply(reply *model.ChatMessage, chunk string) bool {
	s.mu.Lock()
	if s.closed {
		s.busy = false
		s.mu.Unlock()
		return false
	}
	reply.Text += chunk
	hook := s.onChunk
	s.mu.Unlock()

	if hook != nil {
		hook(chunk)
	}
	return true
}

// finalize freezes the reply and clears the busy flag. A non-empty fallback
// replaces whatever partial text had accumulated.
func (s *Session) finalize(reply *model.ChatMessage, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fallback != "" {
		reply.Text = fallback
	}
	reply.Streaming = false
	s.busy = false
}

// Messages returns a copy of the conversation log in order.
func (s *Session) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChatMessage, 0, len(s.log))
	for _, m := range s.log {
		out = append(out, *m)
	}
	return out
}

// Busy reports whether an exchange is currently streaming.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Close tears the session down. Chunks of an in-flight exchange arriving
// after Close are discarded, never applied to the log.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stream = nil
}

// History rebuilds the transport-level conversation from the finalized log,
// for callers that want to persist or replay it.
func (s *Session) History() []*genai.Content {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*genai.Content, 0, len(s.log))
	for _, m := range s.log {
		if m.Streaming {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if m.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Text, role))
	}
	return out
}
