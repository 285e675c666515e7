package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/runner/person"
)

func addPerson(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	id := 0

	cmd := &cobra.Command{
		Use:   "person <person-id>",
		Short: "show a cast or crew member's biography and filmography",
		Example: `
abcinema person 525
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected one person id, got %d", len(args))
			}
			var err error
			if id, err = strconv.Atoi(args[0]); err != nil || id <= 0 {
				return fmt.Errorf("invalid person id %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			p := person.Person{Service: svc, ID: id, Output: oo}
			return oo.HandleError(p.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
