package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "show the list symbols and interface shortcuts",
		Example: `
abcinema key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return k.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
