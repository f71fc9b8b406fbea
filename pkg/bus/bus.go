// Package bus is the in-process command channel collaborators use to add
// tasks or raise notifications without holding a reference to the engine.
package bus

import (
	"fmt"
	"sync"
)

// Message is one of AddTask or Notify.
type Message interface {
	Describe() string
	message()
}

// AddTask asks the owner of the task repository to create a task.
type AddTask struct {
	Text   string
	Source string
}

func (AddTask) message() {}

// Describe renders the message for logs.
func (m AddTask) Describe() string {
	return fmt.Sprintf(`add-task text:%q source:%q`, m.Text, m.Source)
}

// Notify asks the owner of the notification log to push an entry. Type is
// one of info, success, warning, error; empty means info.
type Notify struct {
	Title   string
	Message string
	Type    string
	Source  string
}

func (Notify) message() {}

// Describe renders the message for logs.
func (m Notify) Describe() string {
	return fmt.Sprintf(`notify title:%q type:%q source:%q`, m.Title, m.Type, m.Source)
}

// Handler receives published messages.
type Handler func(Message)

// Bus dispatches every published message synchronously to the handlers
// subscribed at publish time, in subscription order. There is no
// acknowledgement and publishing with no subscribers does nothing.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id      int
	handler Handler
}

// New returns a Bus with no subscribers.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it. The cancel
// function is safe to call more than once.
func (b *Bus) Subscribe(h Handler) (cancel func()) {
	if h == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

// Publish delivers msg to each current subscriber once. Handlers may
// subscribe, unsubscribe or publish from inside a delivery.
func (b *Bus) Publish(msg Message) {
	if msg == nil {
		return
	}
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(msg)
	}
}

// Len is the number of subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}
