package chat

import (
	"sync"
	"time"
)

// Role enum
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn. Once appended to a Log it is never changed.
type Message struct {
	ID               int64     `json:"id"`
	Role             Role      `json:"role"`
	Text             string    `json:"text"`
	CreatedAt        time.Time `json:"created_at"`
	SuggestedReplies []string  `json:"suggested_replies,omitempty"`
}

func (m Message) clone() Message {
	if m.SuggestedReplies != nil {
		m.SuggestedReplies = append([]string(nil), m.SuggestedReplies...)
	}
	return m
}

// Log is the append-only, ordered list of messages of one session.
// Insertion order is display order.
type Log struct {
	mu       sync.RWMutex
	messages []Message
	lastID   int64
}

func NewLog() *Log { return &Log{} }

// Append stores m with the next id and returns the stored copy. Any id set by
// the caller is ignored so ids stay unique and increasing.
func (l *Log) Append(m Message) Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastID++
	m.ID = l.lastID
	m = m.clone()
	l.messages = append(l.messages, m)
	return m.clone()
}

// All returns a copy of every message in insertion order.
func (l *Log) All() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.messages))
	for i, m := range l.messages {
		out[i] = m.clone()
	}
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
