package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atlas/backend/internal/domain/shared"
)

// Scope narrows what the assistant focuses on
type Scope string

const (
	ScopeGeneral   Scope = "general"
	ScopeSales     Scope = "sales"
	ScopeCash      Scope = "cash"
	ScopeInventory Scope = "inventory"
)

// ParseScope validates a scope; empty means general
func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case "":
		return ScopeGeneral, nil
	case ScopeGeneral, ScopeSales, ScopeCash, ScopeInventory:
		return sc, nil
	}
	return "", shared.NewValidationError("scope must be one of general, sales, cash, inventory")
}

// Limits of the prompt
const (
	MaxContextChars = 8000
	MaxHistoryTurns = 6
	Temperature     = 0.2
)

// SystemPrompt is sent ahead of every conversation
const SystemPrompt = `You are Atlas, the business assistant of a retail operations console.
Answer in the language the user writes in, concisely and with concrete figures.
Use only the JSON business context provided with the question. If a figure is not
in the context, say that you do not have that data instead of guessing.
Money amounts are in the store currency and must not be converted.`

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Slice is one named piece of business context
type Slice struct {
	Name string
	Data any
}

// Source produces one context slice. A nil result with a nil error means
// the source had nothing to contribute.
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) (any, error)
}

// Request identifies who is asking and about what
type Request struct {
	TenantID string
	PersonID string
	Role     string
	Name     string
	Scope    Scope
}

// Completer sends messages to a chat-completion model
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature float64) (string, error)
}

// BuildContext serializes slices in order as one JSON object and cuts the
// result at MaxContextChars runes. The cut is not JSON-aware.
func BuildContext(scope Scope, slices []Slice) string {
	var b strings.Builder
	b.WriteString(`{"scope":`)
	scopeJSON, _ := json.Marshal(string(scope))
	b.Write(scopeJSON)
	for _, s := range slices {
		if s.Data == nil {
			continue
		}
		raw, err := json.Marshal(s.Data)
		if err != nil || isEmptyJSON(raw) {
			continue
		}
		name, _ := json.Marshal(s.Name)
		b.WriteByte(',')
		b.Write(name)
		b.WriteByte(':')
		b.Write(raw)
	}
	b.WriteByte('}')
	return Truncate(b.String(), MaxContextChars)
}

func isEmptyJSON(raw []byte) bool {
	switch string(raw) {
	case "null", "[]", "{}", `""`:
		return true
	}
	return false
}

// Truncate cuts s to at most limit runes
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// BuildMessages assembles the system prompt, the last MaxHistoryTurns turns
// of history and the question with its context.
func BuildMessages(question string, history []Message, contextJSON string) []Message {
	msgs := make([]Message, 0, MaxHistoryTurns+2)
	msgs = append(msgs, Message{Role: "system", Content: SystemPrompt})

	kept := make([]Message, 0, len(history))
	for _, h := range history {
		role := strings.ToLower(strings.TrimSpace(h.Role))
		if (role != "user" && role != "assistant") || strings.TrimSpace(h.Content) == "" {
			continue
		}
		kept = append(kept, Message{Role: role, Content: h.Content})
	}
	if len(kept) > MaxHistoryTurns {
		kept = kept[len(kept)-MaxHistoryTurns:]
	}
	msgs = append(msgs, kept...)

	msgs = append(msgs, Message{
		Role:    "user",
		Content: fmt.Sprintf("Business context (JSON):\n%s\n\nQuestion: %s", contextJSON, strings.TrimSpace(question)),
	})
	return msgs
}
