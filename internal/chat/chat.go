// Package chat is the question-answering client over a case's uploaded
// documents. The backend does the retrieval and inference; this side keeps
// the conversation log and the per-conversation session id.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"caselink/internal/gateway"
	dErrors "caselink/pkg/domain-errors"
)

// Message is one entry in a conversation log.
type Message struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"` // "user" or "ai"
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
	Sources   []string `json:"sources,omitempty"`
}

// response is the backend's answer envelope.
type response struct {
	AIMessage string   `json:"ai_message"`
	Citations []string `json:"citations"`
	SessionID string   `json:"session_id"`
}

// Service starts conversations over the gateway.
type Service struct {
	gw  *gateway.Gateway
	now func() time.Time
}

func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw, now: time.Now}
}

// Start opens a conversation about caseID grounded on documentIDs. userID is
// the asking principal's label; the backend threads follow-up questions by
// the generated session id.
func (s *Service) Start(caseID int, userID string, documentIDs []string) *Conversation {
	// Session ids pair the case with the conversation start time so backend
	// logs stay greppable by case.
	sessionID := fmt.Sprintf("%d_%s", caseID, s.now().UTC().Format("20060102T150405"))
	return &Conversation{
		site:        s.gw.Site("chat"),
		now:         s.now,
		caseID:      caseID,
		userID:      userID,
		sessionID:   sessionID,
		documentIDs: documentIDs,
	}
}

// Conversation is one chat thread. Sends are sequential per conversation;
// the log is safe to read while a send is in flight.
type Conversation struct {
	site        *gateway.CallSite
	now         func() time.Time
	caseID      int
	userID      string
	sessionID   string
	documentIDs []string

	mu       sync.Mutex
	messages []Message
}

// SessionID returns the conversation's thread id.
func (c *Conversation) SessionID() string {
	return c.sessionID
}

// Send posts the user's question and appends both it and the answer to the
// log. The user message is logged even when the backend fails, matching how
// a chat surface keeps what the user typed.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	if text == "" {
		return Message{}, dErrors.New(dErrors.CodeValidation, "message text is required")
	}

	userMessage := Message{
		ID:        uuid.NewString(),
		Type:      "user",
		Content:   text,
		Timestamp: c.now().UTC().Format(time.RFC3339),
	}
	c.append(userMessage)

	result := c.site.Post(ctx, map[string]any{
		"user_message": text,
		"user_id":      c.userID,
		"case_id":      fmt.Sprintf("%d", c.caseID),
		"session_id":   c.sessionID,
		"document_ids": c.documentIDs,
	})
	if !result.Ok() {
		return Message{}, dErrors.New(dErrors.CodeInternal, result.ErrMessage())
	}

	var resp response
	if !result.Decode(&resp) {
		return Message{}, dErrors.New(dErrors.CodeInternal, "unexpected chat response shape")
	}

	aiMessage := Message{
		ID:        uuid.NewString(),
		Type:      "ai",
		Content:   resp.AIMessage,
		Timestamp: c.now().UTC().Format(time.RFC3339),
		Sources:   resp.Citations,
	}
	c.append(aiMessage)
	return aiMessage, nil
}

// Messages returns a snapshot of the conversation log.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) append(m Message) {
	c.mu.Lock()
	c.messages = append(c.messages, m)
	c.mu.Unlock()
}
