// Package conversation keeps per-sender chat history for channels that do not send it back.
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/Ramsu24/D-Solar-sub001/internal/cache"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// History stores the most recent turns of each sender in a cache.
type History struct {
	cache cache.Client
	ttl   time.Duration
	limit int
}

// NewHistory creates a history store. limit <= 0 keeps every turn.
func NewHistory(c cache.Client, ttl time.Duration, limit int) *History {
	return &History{cache: c, ttl: ttl, limit: limit}
}

func key(senderID string) string {
	return cache.CacheKey("messenger", "history", senderID)
}

// Load returns the stored turns for senderID, oldest first. Unknown senders have no turns.
func (h *History) Load(ctx context.Context, senderID string) ([]domain.ChatTurn, error) {
	var turns []domain.ChatTurn
	err := cache.GetJSON(ctx, h.cache, key(senderID), &turns)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.StorageError("load conversation", err)
	}
	return turns, nil
}

// Append adds turns for senderID, trims to the limit and refreshes the TTL.
func (h *History) Append(ctx context.Context, senderID string, turns ...domain.ChatTurn) error {
	existing, err := h.Load(ctx, senderID)
	if err != nil {
		return err
	}
	existing = append(existing, turns...)
	if h.limit > 0 && len(existing) > h.limit {
		existing = existing[len(existing)-h.limit:]
	}
	if err := cache.SetJSON(ctx, h.cache, key(senderID), existing, h.ttl); err != nil {
		return domain.StorageError("save conversation", err)
	}
	return nil
}

// Reset forgets the conversation of senderID.
func (h *History) Reset(ctx context.Context, senderID string) error {
	return h.cache.Delete(ctx, key(senderID))
}
