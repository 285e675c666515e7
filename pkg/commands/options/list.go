// Package options defines shared flag helpers for CLI commands.
package options

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/lists"
)

// ListOptions captures ordering and filtering flags for personal lists.
type ListOptions struct {
	Sort   string
	Asc    bool
	Desc   bool
	Filter string
	Since  string
}

// AddListArgs wires list ordering flags on the provided command.
func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Sort, "sort", "s", string(lists.SortAddedAt),
		"Sort by one of addedAt, title, vote_average or release_date.")
	cmd.Flags().BoolVar(&o.Asc, "asc", false, "Sort ascending.")
	cmd.Flags().BoolVar(&o.Desc, "desc", false, "Sort descending.")
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", "",
		"Only show titles fuzzily matching this text.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		"Only show movies added within this window, e.g. 2w or 3mo.")
}

// Order resolves the sort field and direction. Without --asc or --desc the
// field's natural direction is used.
func (o *ListOptions) Order() (lists.SortField, lists.SortDir, error) {
	field, err := lists.ParseSortField(o.Sort)
	if err != nil {
		return "", "", err
	}
	switch {
	case o.Asc && o.Desc:
		return "", "", errors.New("options: --asc and --desc are exclusive")
	case o.Asc:
		return field, lists.Asc, nil
	case o.Desc:
		return field, lists.Desc, nil
	}
	return field, lists.DefaultDir(field), nil
}

// Window parses --since. Zero means no window.
func (o *ListOptions) Window() (time.Duration, error) {
	if o.Since == "" {
		return 0, nil
	}
	d, _, err := lists.ParseWindow(o.Since)
	return d, err
}
