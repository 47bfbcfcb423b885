package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	received := make([]Event, 0)
	bus.Subscribe(XPAwarded, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	evt := NewXPAwardedEvent("user-1", "CHAPTER_READ", 10, 10, 1)
	if err := bus.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Type != XPAwarded {
		t.Errorf("expected type %s, got %s", XPAwarded, received[0].Type)
	}
	if received[0].Version != EventSchemaVersion {
		t.Errorf("expected version %s, got %s", EventSchemaVersion, received[0].Version)
	}
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	evt := NewLevelUpEvent("user-1", 1, 2, 300)
	if err := bus.Publish(context.Background(), evt); err != nil {
		t.Errorf("Publish with no subscribers should not error, got: %v", err)
	}
}

func TestMemoryBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewMemoryBus()

	var secondCalled bool
	bus.Subscribe(LevelUp, func(ctx context.Context, e Event) error {
		return errors.New("handler failure")
	})
	bus.Subscribe(LevelUp, func(ctx context.Context, e Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewLevelUpEvent("user-1", 1, 2, 300))
	if err == nil {
		t.Error("expected aggregated handler error")
	}
	if !secondCalled {
		t.Error("second handler should run even when the first fails")
	}
}

func TestMemoryBus_ConcurrentSubscribePublish(t *testing.T) {
	bus := NewMemoryBus()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(RewardUnlocked, func(ctx context.Context, e Event) error { return nil })
		}()
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), NewRewardUnlockedEvent("user-1", []string{"r1"}, 5))
		}()
	}
	wg.Wait()
}

func TestDecodePayload_DirectType(t *testing.T) {
	payload := XPAwardedPayloadV1{UserID: "user-1", Amount: 20, XPTotal: 20, Level: 1}

	decoded, err := DecodePayload[XPAwardedPayloadV1](payload)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}
	if decoded.UserID != "user-1" || decoded.Amount != 20 {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{
		"user_id":   "user-2",
		"old_level": 1,
		"new_level": 2,
		"xp_total":  300,
	}

	decoded, err := DecodePayload[LevelUpPayloadV1](raw)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}
	if decoded.UserID != "user-2" || decoded.NewLevel != 2 {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestResilientPublisher_SuccessPassthrough(t *testing.T) {
	bus := NewMemoryBus()
	pub := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})

	var called bool
	pub.Subscribe(XPAwarded, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	if err := pub.Publish(context.Background(), NewXPAwardedEvent("user-1", "CHAPTER_READ", 10, 10, 1)); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if !called {
		t.Error("subscriber should receive event on first attempt")
	}
}

// failNBus fails the first n publishes, then delegates.
type failNBus struct {
	inner    Bus
	mu       sync.Mutex
	failures int
	attempts int
}

func (b *failNBus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	b.attempts++
	fail := b.attempts <= b.failures
	b.mu.Unlock()
	if fail {
		return errors.New("transient publish failure")
	}
	return b.inner.Publish(ctx, e)
}

func (b *failNBus) Subscribe(t Type, h Handler) { b.inner.Subscribe(t, h) }

func TestResilientPublisher_RetriesUntilSuccess(t *testing.T) {
	inner := &failNBus{inner: NewMemoryBus(), failures: 2}
	pub := NewResilientPublisher(inner, ResilientConfig{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	done := make(chan struct{})
	pub.Subscribe(LevelUp, func(ctx context.Context, e Event) error {
		close(done)
		return nil
	})

	if err := pub.Publish(context.Background(), NewLevelUpEvent("user-1", 1, 2, 300)); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered after retries")
	}
}

func TestResilientPublisher_DeadLetterOnExhaustion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dead_letter.jsonl")

	inner := &failNBus{inner: NewMemoryBus(), failures: 100}
	pub := NewResilientPublisher(inner, ResilientConfig{
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: path,
	})

	if err := pub.Publish(context.Background(), NewRewardUnlockedEvent("user-1", []string{"r1"}, 3)); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("dead letter file was not written after retry exhaustion")
}
