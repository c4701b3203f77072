package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestBus_PublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close(context.Background())

	var wg sync.WaitGroup
	wg.Add(2)

	got := make(chan Event, 2)
	handler := func(e Event) {
		got <- e
		wg.Done()
	}
	b.Subscribe(EventTypeTrackPrepared, handler)
	b.Subscribe(EventTypeTrackPrepared, handler)

	if n := b.Publish(Event{Type: EventTypeTrackPrepared, TrackID: "demo"}); n != 2 {
		t.Fatalf("Publish() queued %d, want 2", n)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		e := <-got
		if e.TrackID != "demo" || e.Seq == 0 {
			t.Errorf("event = %+v", e)
		}
	}
}

func TestBus_SeqIncreases(t *testing.T) {
	b := NewWithConfig(1, 8)
	defer b.Close(context.Background())

	got := make(chan uint64, 3)
	b.Subscribe(EventTypeFrame, func(e Event) { got <- e.Seq })

	for i := 0; i < 3; i++ {
		b.Publish(Event{Type: EventTypeFrame})
	}

	var last uint64
	for i := 0; i < 3; i++ {
		select {
		case seq := <-got:
			if seq <= last {
				t.Errorf("seq %d after %d", seq, last)
			}
			last = seq
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBus_NoSubscribers(t *testing.T) {
	b := New()
	defer b.Close(context.Background())

	if n := b.Publish(Event{Type: EventTypePlaybackStopped}); n != 0 {
		t.Errorf("Publish() queued %d, want 0", n)
	}
}

func TestBus_DropsWhenFull(t *testing.T) {
	b := NewWithConfig(1, 1)
	defer b.Close(context.Background())

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	b.Subscribe(EventTypeFrame, func(Event) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	})

	b.Publish(Event{Type: EventTypeFrame})
	<-started
	b.Publish(Event{Type: EventTypeFrame}) // fills the queue
	if n := b.Publish(Event{Type: EventTypeFrame}); n != 0 {
		t.Errorf("Publish() on full queue queued %d, want 0", n)
	}
	close(release)
}

func TestBus_PanicDoesNotKillWorker(t *testing.T) {
	b := NewWithConfig(1, 4)
	defer b.Close(context.Background())

	done := make(chan struct{})
	b.Subscribe(EventTypeInterpreterFault, func(Event) { panic("boom") })
	b.Subscribe(EventTypePlaybackStarted, func(Event) { close(done) })

	b.Publish(Event{Type: EventTypeInterpreterFault})
	b.Publish(Event{Type: EventTypePlaybackStarted})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker stopped after handler panic")
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	b := New()
	b.Subscribe(EventTypeFrame, func(Event) {})
	b.Close(context.Background())
	b.Close(context.Background())

	if n := b.Publish(Event{Type: EventTypeFrame}); n != 0 {
		t.Errorf("Publish() after Close queued %d, want 0", n)
	}
}
