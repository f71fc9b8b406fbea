package engine

import (
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/task"
)

// ResolveTask finds a task by full id or by a unique id prefix, as typed on
// the command line.
func (e *Engine) ResolveTask(ref string) (task.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	all := e.tasks.All()
	ids := make([]string, len(all))
	for i, t := range all {
		ids[i] = t.ID
	}
	i, err := resolve("task", ref, ids)
	if err != nil {
		return task.Task{}, err
	}
	return all[i], nil
}

// ResolveNotification is ResolveTask for the notification log.
func (e *Engine) ResolveNotification(ref string) (notify.Notification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	all := e.log.List()
	ids := make([]string, len(all))
	for i, n := range all {
		ids[i] = n.ID
	}
	i, err := resolve("notification", ref, ids)
	if err != nil {
		return notify.Notification{}, err
	}
	return all[i], nil
}

func resolve(kind, ref string, ids []string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, errs.Invalid("id", "must not be empty")
	}
	if i := slices.Index(ids, ref); i >= 0 {
		return i, nil
	}
	match := -1
	for i, id := range ids {
		if strings.HasPrefix(id, ref) {
			if match >= 0 {
				return -1, errs.Invalid("id", fmt.Sprintf("%q matches more than one %s", ref, kind))
			}
			match = i
		}
	}
	if match < 0 {
		return -1, errs.NotFound(kind, ref)
	}
	return match, nil
}
