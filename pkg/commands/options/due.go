package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/task"
)

const (
	layoutLoose = "2006-1-2"
	layoutShort = "1/2"
)

// DueOptions
type DueOptions struct {
	DueString string
}

func AddDueArgs(cmd *cobra.Command, o *DueOptions) {
	cmd.Flags().StringVar(&o.DueString, "due", "",
		`Set a due date, example: --due="2020-2-28" or --due="2/28".`)
}

// GetDue parses the flag. An empty flag is no due date.
func (o *DueOptions) GetDue(now time.Time) (*task.Date, error) {
	return ParseDue(o.DueString, now)
}

// ParseDue accepts YYYY-M-D or M/D. A short date that already passed this
// year is taken to mean next year.
func ParseDue(raw string, now time.Time) (*task.Date, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(layoutLoose, raw, time.UTC)
	if err != nil {
		t, err = time.ParseInLocation(layoutShort, raw, time.UTC)
		if err != nil {
			return nil, errs.Invalid("due", "expected YYYY-M-D or M/D, got "+raw)
		}
		t = t.AddDate(now.Year(), 0, 0)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return &task.Date{Time: t}, nil
}
