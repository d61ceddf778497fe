package bus

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func waitForSubscribers(t *testing.T, b *Bus, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b.SubscriberCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("subscriber count never reached %d (at %d)", want, b.SubscriberCount())
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	a := b.Subscribe()
	c := b.Subscribe()
	waitForSubscribers(t, b, 2)

	b.Publish(Event{Type: EventCollectionsChanged, Data: map[string]int{"count": 3}})

	for _, ch := range []chan Event{a, c} {
		select {
		case ev := <-ch:
			if ev.Type != EventCollectionsChanged {
				t.Errorf("event type = %q", ev.Type)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("subscriber never received the event")
		}
	}
}

func TestUnsubscribeClosesChannelAndStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	ch := b.Subscribe()
	waitForSubscribers(t, b, 1)

	b.Unsubscribe(ch)
	waitForSubscribers(t, b, 0)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel, got an event")
		}
	case <-time.After(time.Second):
		t.Error("unsubscribed channel was not closed")
	}
}

func TestCloseIsIdempotentAndClosesSubscribers(t *testing.T) {
	b := New()
	ch := b.Subscribe()
	waitForSubscribers(t, b, 1)

	b.Close()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("subscriber channel still open after Close")
	}
	if n := b.SubscriberCount(); n != 0 {
		t.Errorf("SubscriberCount after Close = %d", n)
	}
	// Publishing after Close must not panic or block.
	b.Publish(Event{Type: EventStoreChanged})
}

func TestServeHTTPStreamsEvents(t *testing.T) {
	b := New()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, req)
		close(done)
	}()

	waitForSubscribers(t, b, 1)
	b.Publish(Event{Type: EventCatalogSynced, Data: map[string]int{"sources": 12}})

	// The recorder is not safe for concurrent reads; give the stream a
	// moment to flush, then stop the handler before inspecting the body.
	time.Sleep(200 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after context cancel")
	}

	body := rec.Body.String()
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, "event: catalog.synced\ndata: {\"sources\":12}\n\n") {
		t.Errorf("SSE frame missing from body:\n%s", body)
	}
}
