package events

import (
	"context"
	"testing"
	"time"
)

// TestEmitAndSubscribe проверяет доставку события подписчику.
func TestEmitAndSubscribe(t *testing.T) {
	e := NewChanEmitter(1)
	defer e.Close()

	sub := e.Subscribe()
	e.Emit(context.Background(), Event{
		Type: EventAnalysis,
		Data: AnalysisData{Category: "factual", Temperature: 0.12},
	})

	select {
	case ev := <-sub.Events():
		if ev.Type != EventAnalysis {
			t.Errorf("expected %q, got %q", EventAnalysis, ev.Type)
		}
		data, ok := ev.Data.(AnalysisData)
		if !ok {
			t.Fatalf("expected AnalysisData, got %T", ev.Data)
		}
		if data.Category != "factual" {
			t.Errorf("expected category 'factual', got %q", data.Category)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

// TestEmitAfterClose: события после Close молча отбрасываются.
func TestEmitAfterClose(t *testing.T) {
	e := NewChanEmitter(1)
	e.Close()

	// Не должно паниковать на закрытом канале
	e.Emit(context.Background(), Event{Type: EventError, Data: ErrorData{}})
}

// TestEmitCancelledContext: отменённый контекст не блокирует отправку
// в переполненный канал.
func TestEmitCancelledContext(t *testing.T) {
	e := NewChanEmitter(0) // небуферизованный, читателей нет
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		e.Emit(ctx, Event{Type: EventGenerating, Data: GeneratingData{}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on cancelled context")
	}
}

// TestCloseIdempotent: повторный Close безопасен.
func TestCloseIdempotent(t *testing.T) {
	e := NewChanEmitter(1)
	e.Close()
	e.Close()
}

// TestSubscriberSeesClose: закрытие эмиттера закрывает канал подписчика.
func TestSubscriberSeesClose(t *testing.T) {
	e := NewChanEmitter(1)
	sub := e.Subscribe()
	e.Close()

	select {
	case _, open := <-sub.Events():
		if open {
			t.Error("expected closed channel after emitter Close")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed")
	}
}
