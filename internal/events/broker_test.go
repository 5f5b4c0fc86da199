package events

import "testing"

func TestBroker_RoutesByType(t *testing.T) {
	b := NewBroker()
	changed := b.Subscribe(ParameterChangedEvent)
	all := b.Subscribe()

	b.Publish(Event{Type: ParameterChangedEvent, Payload: ParameterPayload{Name: "speed"}})
	b.Publish(Event{Type: ParametersSavedEvent})

	if got := len(changed); got != 1 {
		t.Errorf("typed subscriber got %d events, want 1", got)
	}
	if got := len(all); got != 2 {
		t.Errorf("wildcard subscriber got %d events, want 2", got)
	}
	ev := <-changed
	if p, ok := ev.Payload.(ParameterPayload); !ok || p.Name != "speed" {
		t.Errorf("payload = %#v", ev.Payload)
	}
}

func TestBroker_FullBufferDrops(t *testing.T) {
	b := NewBroker(WithBufferSize(1))
	ch := b.Subscribe(StatusMessageEvent)

	b.Publish(Event{Type: StatusMessageEvent})
	b.Publish(Event{Type: StatusMessageEvent})

	if len(ch) != 1 {
		t.Errorf("buffered = %d, want 1", len(ch))
	}
	if b.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", b.Dropped())
	}
}

func TestBroker_UnsubscribeClosesOnce(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe(ParameterChangedEvent, ParameterResetEvent)

	b.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Error("channel still open after Unsubscribe")
	}

	// publishing afterwards must not panic on the closed channel
	b.Publish(Event{Type: ParameterResetEvent})
	b.Clear()
}

func TestBroker_NilPublish(t *testing.T) {
	var b *Broker
	b.Publish(Event{Type: StatusMessageEvent})
}
