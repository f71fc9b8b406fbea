package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/task"
)

// FilterOptions
type FilterOptions struct {
	Status   string
	Category string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Status, "status", "s", "",
		"Only show tasks with this status: todo, in-progress, done.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Only show tasks in this category.")
}

func (o *FilterOptions) Filter() (task.Filter, error) {
	var f task.Filter
	if o.Status != "" {
		s, err := task.ParseStatus(o.Status)
		if err != nil {
			return f, err
		}
		f.Status = s
	}
	if o.Category != "" {
		c, err := task.ParseCategory(o.Category)
		if err != nil {
			return f, err
		}
		f.Category = c
	}
	return f, nil
}
