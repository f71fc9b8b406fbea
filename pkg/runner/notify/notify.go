// Package notify holds the notification runners.
package notify

import (
	"context"
	"errors"

	"tableflip.dev/cmdcenter/pkg/bus"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/printers"
)

// Notify raises a notification the way an outside collaborator would, by
// publishing on the engine's command bus.
type Notify struct {
	Title   string
	Message string
	Type    string
	Source  string

	JSON   bool
	Engine *engine.Engine
}

func (n *Notify) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not notify, no engine")
	}
	typ, err := notify.ParseType(n.Type)
	if err != nil {
		return err
	}
	n.Engine.Bus().Publish(bus.Notify{Title: n.Title, Message: n.Message, Type: string(typ), Source: n.Source})

	pp := printers.PrettyPrint{}
	latest := n.Engine.Notifications()
	if len(latest) > 1 {
		latest = latest[:1]
	}
	if n.JSON {
		return pp.JSON(latest)
	}
	pp.Notifications(latest...)
	return nil
}

type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionDelete Action = "delete"
	ActionClear  Action = "clear"
)

// Notifications lists or edits the log. Read with no ID marks everything
// read.
type Notifications struct {
	Action     Action
	ID         string
	UnreadOnly bool

	ShowID bool
	JSON   bool
	Engine *engine.Engine
}

func (n *Notifications) Do(ctx context.Context) error {
	if n.Engine == nil {
		return errors.New("can not list notifications, no engine")
	}
	switch n.Action {
	case ActionRead:
		if n.ID == "" {
			n.Engine.MarkAllRead()
			break
		}
		found, err := n.Engine.ResolveNotification(n.ID)
		if err != nil {
			return err
		}
		n.Engine.MarkRead(found.ID)
	case ActionDelete:
		found, err := n.Engine.ResolveNotification(n.ID)
		if err != nil {
			return err
		}
		if err := n.Engine.DeleteNotification(found.ID); err != nil {
			return err
		}
	case ActionClear:
		n.Engine.ClearNotifications()
	}

	list := n.Engine.Notifications()
	if n.UnreadOnly {
		unread := list[:0]
		for _, item := range list {
			if !item.Read {
				unread = append(unread, item)
			}
		}
		list = unread
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(list)
	}
	pp.TitleWithCount("notifications", len(list), "notification", "notifications")
	pp.Notifications(list...)
	return nil
}
