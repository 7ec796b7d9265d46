// Package flash keeps one-shot user messages between a redirect and the
// page that renders them. Messages live in Redis, keyed by session.
package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Message categories understood by the templates.
const (
	CategoryError   = "error"
	CategorySuccess = "success"
)

// Message is a single flash shown once to the user.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Error builds an error-category message.
func Error(text string) Message { return Message{Category: CategoryError, Text: text} }

// Success builds a success-category message.
func Success(text string) Message { return Message{Category: CategorySuccess, Text: text} }

// Store reads and writes flash messages.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore constructs a Store with a 10-minute TTL.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: defaultTTL}
}

// Ping checks that the backing Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("flash store ping: %w", err)
	}
	return nil
}

func key(session string) string {
	return "flash:" + strings.TrimSpace(session)
}

// Add appends msg to the session's queue and refreshes its TTL.
func (s *Store) Add(ctx context.Context, session string, msg Message) error {
	if session == "" {
		return fmt.Errorf("flash add: empty session id")
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling flash message: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key(session), b)
		pipe.Expire(ctx, key(session), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("flash add for session %s: %w", session, err)
	}
	return nil
}

// Pop returns every queued message for the session in insertion order and
// clears the queue. An empty session or queue yields nil, nil.
func (s *Store) Pop(ctx context.Context, session string) ([]Message, error) {
	if session == "" {
		return nil, nil
	}

	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key(session), 0, -1)
		pipe.Del(ctx, key(session))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("flash pop for session %s: %w", session, err)
	}

	raw := lrange.Val()
	if len(raw) == 0 {
		return nil, nil
	}

	msgs := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, fmt.Errorf("unmarshaling flash message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
