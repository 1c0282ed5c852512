// Package bus is a small in-process publish/subscribe channel used to keep
// session consumers in sync. It replaces the untyped cross-view signals of
// the web product (storage events, "auth changed" window events, the
// show-feedback flag) with typed payloads.
package bus

import (
	"context"
	"sync"

	"github.com/visualcaption/vcap/internal/logging"
)

// Event is implemented by all bus payload types.
type Event interface{ event() }

// AuthChanged is published by session login/logout so every consumer in the
// process re-derives its view of the identity.
type AuthChanged struct{}

// StorageChanged is published whenever a persisted client-state key is
// written or deleted.
type StorageChanged struct{ Key string }

// ShowFeedbackPanel asks the active view to open or close the feedback panel.
type ShowFeedbackPanel struct{ Visible bool }

func (AuthChanged) event()       {}
func (StorageChanged) event()    {}
func (ShowFeedbackPanel) event() {}

// Bus dispatches events synchronously on the publisher's goroutine, in
// subscription order. A handler panic is absorbed and logged so one broken
// consumer cannot take down the rest.
type subscriber struct {
	id int
	fn func(Event)
}

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
	log    logging.Logger
}

func New(log logging.Logger) *Bus {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Bus{log: log}
}

// Subscribe registers fn for all events and returns an unsubscribe func.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every current subscriber. The subscriber set is
// snapshotted first, so handlers may publish or unsubscribe reentrantly.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, s := range b.subs {
		handlers = append(handlers, s.fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		b.deliver(fn, e)
	}
}

func (b *Bus) deliver(fn func(Event), e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error(context.Background(), "event handler panicked", "event", e, "panic", r)
		}
	}()
	fn(e)
}
