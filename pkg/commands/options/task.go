package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/task"
)

// TaskOptions
type TaskOptions struct {
	Category string
	Priority string
	Notes    string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "work",
		"Task category, one of work, dev, personal, urgent, research.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "2",
		"Task priority, 1-4 or low, medium, high, critical.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Free text notes.")
}

func (o *TaskOptions) Parse() (task.Category, task.Priority, error) {
	c, err := task.ParseCategory(o.Category)
	if err != nil {
		return "", 0, err
	}
	p, err := task.ParsePriority(o.Priority)
	if err != nil {
		return "", 0, err
	}
	return c, p, nil
}
