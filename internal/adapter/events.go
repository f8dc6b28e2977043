package adapter

import (
	"sync"
	"time"
)

// SessionExpired is published when the backend rejects the session with
// 401. The session has already been cleared when subscribers run.
type SessionExpired struct {
	StatusCode int
	URL        string
	At         time.Time
}

// Events is a synchronous publish/subscribe bus for SessionExpired.
// It is safe for concurrent use; subscribers are called outside the lock,
// in subscription order, on the publishing goroutine.
type Events struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(SessionExpired)
}

// NewEvents returns an empty bus.
func NewEvents() *Events {
	return &Events{}
}

// Subscribe registers fn and returns a function that removes it.
func (e *Events) Subscribe(fn func(SessionExpired)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every current subscriber.
func (e *Events) Publish(ev SessionExpired) {
	if e == nil {
		return
	}

	e.mu.Lock()
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}
