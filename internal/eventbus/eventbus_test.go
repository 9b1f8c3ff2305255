package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	if got := <-ch; got != "hello" {
		t.Fatalf("got %q", got)
	}
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("channel must be closed after unsubscribe")
	}
}

func TestBusNonBlockingPublish(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	for i := 0; i < 50; i++ {
		bus.Publish(i) // must not block even though nobody reads
	}
	if got := <-ch; got != 0 {
		t.Fatalf("first buffered event = %d", got)
	}
}

func TestBusClose(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch; ok {
		t.Fatal("subscriber channel must close with the bus")
	}
	bus.Publish(1) // no-op, must not panic
	bus.Close()    // idempotent
}
