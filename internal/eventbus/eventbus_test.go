package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := New()
	got := make(chan string, 1)

	bus.Subscribe(EventToast, func(e DomainEvent) {
		got <- e.(ToastEvent).Message
	})

	bus.Publish(ToastEvent{Message: "hello"})

	select {
	case msg := <-got:
		require.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestSubscribeOnlyReceivesOwnType(t *testing.T) {
	bus := New()
	got := make(chan DomainEvent, 2)

	bus.Subscribe(EventError, func(e DomainEvent) { got <- e })

	bus.Publish(ToastEvent{Message: "ignored"})
	bus.Publish(ErrorEvent{Message: "boom"})

	select {
	case e := <-got:
		require.Equal(t, EventError, e.Type())
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}

	select {
	case e := <-got:
		t.Fatalf("unexpected delivery: %v", e.Type())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	got := make(chan string, 4)

	unsub := bus.Subscribe(EventToast, func(e DomainEvent) { got <- "first" })
	bus.Subscribe(EventToast, func(e DomainEvent) { got <- "second" })

	unsub()
	bus.Publish(ToastEvent{Message: "x"})

	select {
	case who := <-got:
		require.Equal(t, "second", who)
	case <-time.After(time.Second):
		t.Fatal("remaining handler never called")
	}

	select {
	case who := <-got:
		t.Fatalf("unsubscribed handler still called: %s", who)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := New()
	got := make(chan string, 4)

	unsub := bus.Subscribe(EventToast, func(e DomainEvent) { got <- "first" })
	bus.Subscribe(EventToast, func(e DomainEvent) { got <- "second" })

	unsub()
	unsub()
	bus.Publish(ToastEvent{Message: "x"})

	select {
	case who := <-got:
		require.Equal(t, "second", who)
	case <-time.After(time.Second):
		t.Fatal("remaining handler never called")
	}
}
