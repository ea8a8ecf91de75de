package recorder_test

import (
	"testing"
	"time"

	"github.com/deskautomate/engine/internal/recorder"
)

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := recorder.NewBroadcaster(4)

	ch1, unsub1 := b.Subscribe()
	defer unsub1()

	ch2, unsub2 := b.Subscribe()
	defer unsub2()

	b.Publish(recorder.Event{Kind: recorder.KindMouseMove})

	select {
	case evt := <-ch1:
		if evt.Kind != recorder.KindMouseMove {
			t.Errorf("ch1 Kind = %v, want %v", evt.Kind, recorder.KindMouseMove)
		}
	case <-time.After(time.Second):
		t.Fatal("ch1 did not receive event")
	}

	select {
	case evt := <-ch2:
		if evt.Kind != recorder.KindMouseMove {
			t.Errorf("ch2 Kind = %v, want %v", evt.Kind, recorder.KindMouseMove)
		}
	case <-time.After(time.Second):
		t.Fatal("ch2 did not receive event")
	}
}

func TestBroadcasterReportsLagOnFullBuffer(t *testing.T) {
	b := recorder.NewBroadcaster(1)

	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(recorder.Event{Kind: recorder.KindMouseMove})
	b.Publish(recorder.Event{Kind: recorder.KindMouseDown})
	b.Publish(recorder.Event{Kind: recorder.KindMouseUp})

	first := <-ch
	if first.Kind != recorder.KindMouseMove {
		t.Fatalf("first Kind = %v, want %v", first.Kind, recorder.KindMouseMove)
	}

	b.Publish(recorder.Event{Kind: recorder.KindScroll})

	select {
	case evt := <-ch:
		if evt.Kind != recorder.KindLagged {
			t.Errorf("Kind = %v, want %v", evt.Kind, recorder.KindLagged)
		}

		if evt.Dropped == 0 {
			t.Error("Dropped = 0, want > 0")
		}
	case <-time.After(time.Second):
		t.Fatal("did not receive lagged notice")
	}
}

func TestBroadcasterUnsubscribeClosesChannel(t *testing.T) {
	b := recorder.NewBroadcaster(2)

	ch, unsub := b.Subscribe()
	unsub()

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after Unsubscribe")
	}
}

func TestBroadcasterCloseClosesAllSubscribers(t *testing.T) {
	b := recorder.NewBroadcaster(2)

	ch1, _ := b.Subscribe()
	ch2, _ := b.Subscribe()

	b.Close()

	if _, ok := <-ch1; ok {
		t.Error("expected ch1 to be closed after Close")
	}

	if _, ok := <-ch2; ok {
		t.Error("expected ch2 to be closed after Close")
	}

	b.Publish(recorder.Event{Kind: recorder.KindMouseMove})
}
