package core

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// previewLen bounds the content shown by AgentMessage.String.
const previewLen = 100

// AgentMessage is a handoff record between two pipeline participants. After
// construction it must be treated as immutable; NewAgentMessage copies the
// metadata map so later writes by the caller do not leak into history.
type AgentMessage struct {
	ID        string         `json:"id"`
	From      Role           `json:"from_agent"`
	To        Role           `json:"to_agent"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewAgentMessage creates a message with a fresh ID and UTC timestamp.
func NewAgentMessage(from, to Role, content string, metadata map[string]any) AgentMessage {
	md := make(map[string]any, len(metadata))
	maps.Copy(md, metadata)

	return AgentMessage{
		ID:        NewID(),
		From:      from,
		To:        to,
		Content:   content,
		Metadata:  md,
		Timestamp: time.Now().UTC(),
	}
}

// String renders "[from → to]: <first 100 runes of content>...".
func (m AgentMessage) String() string {
	preview := []rune(m.Content)
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}
	return fmt.Sprintf("[%s → %s]: %s...", m.From, m.To, string(preview))
}

// NewID generates a new unique identifier.
func NewID() string { return uuid.NewString() }
