package engine

import (
	"tableflip.dev/cmdcenter/pkg/notify"
)

// Notify pushes a notification directly. Collaborators without an engine
// reference publish bus.Notify instead.
func (e *Engine) Notify(title, message string, typ notify.Type, source string) notify.Notification {
	var n notify.Notification
	_ = e.mutate(func() error {
		n = e.log.Push(title, message, typ, source)
		return nil
	})
	return n
}

// MarkRead marks one notification read.
func (e *Engine) MarkRead(id string) {
	_ = e.mutate(func() error {
		e.log.MarkRead(id)
		return nil
	})
}

// MarkAllRead marks every notification read.
func (e *Engine) MarkAllRead() {
	_ = e.mutate(func() error {
		e.log.MarkAllRead()
		return nil
	})
}

// DeleteNotification removes one notification.
func (e *Engine) DeleteNotification(id string) error {
	return e.mutate(func() error {
		return e.log.Delete(id)
	})
}

// ClearNotifications empties the log.
func (e *Engine) ClearNotifications() {
	_ = e.mutate(func() error {
		e.log.Clear()
		return nil
	})
}

// Notifications returns the log, newest first.
func (e *Engine) Notifications() []notify.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.List()
}
