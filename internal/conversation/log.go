// Package conversation keeps the chat history owned by interactive clients.
// The matching core never reads it.
package conversation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced an entry.
type Role string

// Roles of a conversation entry.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is a single message in the log.
type Entry struct {
	Role    Role
	Content string
	At      time.Time
}

// Log is an append-only conversation history bound to a session ID.
// It is safe for concurrent use.
type Log struct {
	mu        sync.RWMutex
	sessionID string
	entries   []Entry
	now       func() time.Time
}

// NewLog starts an empty log with a fresh session ID.
func NewLog() *Log {
	return &Log{sessionID: uuid.NewString(), now: time.Now}
}

// SessionID identifies the conversation.
func (l *Log) SessionID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sessionID
}

// Append records a message.
func (l *Log) Append(role Role, content string) error {
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("unknown role %q", role)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Role: role, Content: content, At: l.now()})
	return nil
}

// Entries returns a copy of the log in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear drops every entry and starts a new session.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.sessionID = uuid.NewString()
}
