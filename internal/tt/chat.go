package tt

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// ChatModel - implements llms.Model
// -----------------------------------------------------------------------------

// ChatModel answers chat calls with a reply function and records each conversation, flattened
// to "role: text" lines.
type ChatModel struct {
	mu      sync.Mutex
	reply   func(conversation string) (string, error)
	calls   []string
	options []llms.CallOptions
}

// NewChatModel creates a ChatModel that answers with reply.
func NewChatModel(reply func(conversation string) (string, error)) *ChatModel {
	return &ChatModel{reply: reply}
}

// GenerateContent records the messages and returns the reply as the only choice.
func (m *ChatModel) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	opts ...llms.CallOption,
) (*llms.ContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var options llms.CallOptions
	for _, opt := range opts {
		opt(&options)
	}

	var lines []string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				lines = append(lines, string(msg.Role)+": "+text.Text)
			}
		}
	}
	conversation := strings.Join(lines, "\n")

	m.mu.Lock()
	m.calls = append(m.calls, conversation)
	m.options = append(m.options, options)
	m.mu.Unlock()

	out, err := m.reply(conversation)
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: out}}}, nil
}

// Call implements the single-prompt shortcut.
func (m *ChatModel) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, opts...)
}

// Conversations returns every recorded conversation, in call order.
func (m *ChatModel) Conversations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Options returns the call options of every call, in call order.
func (m *ChatModel) Options() []llms.CallOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llms.CallOptions(nil), m.options...)
}

var _ llms.Model = (*ChatModel)(nil)
