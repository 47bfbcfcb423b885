package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gracepath/gracepath-api/internal/domain"
)

// Type represents the type of an event
type Type string

// Common event types
const (
	XPAwarded      Type = "progression.xp_awarded"
	LevelUp        Type = "progression.level_up"
	RewardUnlocked Type = "reward.unlocked"
)

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// Typed event payloads for type safety

// XPAwardedPayloadV1 is the typed payload for XP award events
type XPAwardedPayloadV1 struct {
	UserID     string            `json:"user_id"`
	ActionType domain.ActionType `json:"action_type"`
	Amount     int               `json:"amount"`
	XPTotal    int64             `json:"xp_total"`
	Level      int               `json:"level"`
	Timestamp  int64             `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level-up events
type LevelUpPayloadV1 struct {
	UserID    string `json:"user_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	XPTotal   int64  `json:"xp_total"`
	Timestamp int64  `json:"timestamp"`
}

// RewardUnlockedPayloadV1 is the typed payload for reward unlock events
type RewardUnlockedPayloadV1 struct {
	UserID    string   `json:"user_id"`
	RewardIDs []string `json:"reward_ids"`
	Level     int      `json:"level"`
	Timestamp int64    `json:"timestamp"`
}

// NewXPAwardedEvent creates an XP award event
func NewXPAwardedEvent(userID string, actionType domain.ActionType, amount int, xpTotal int64, lvl int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    XPAwarded,
		Payload: XPAwardedPayloadV1{
			UserID:     userID,
			ActionType: actionType,
			Amount:     amount,
			XPTotal:    xpTotal,
			Level:      lvl,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewLevelUpEvent creates a level-up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, xpTotal int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:    userID,
			OldLevel:  oldLevel,
			NewLevel:  newLevel,
			XPTotal:   xpTotal,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewRewardUnlockedEvent creates a reward unlock event
func NewRewardUnlockedEvent(userID string, rewardIDs []string, lvl int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardUnlocked,
		Payload: RewardUnlockedPayloadV1{
			UserID:    userID,
			RewardIDs: rewardIDs,
			Level:     lvl,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers execute
// synchronously; a failing handler does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
