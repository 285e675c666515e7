package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/transfer"
)

// TransferOptions controls export and import.
type TransferOptions struct {
	Format string
	Merge  bool
}

func AddExportArgs(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVar(&o.Format, "format", "",
		"One of json, yaml or toml. Defaults to the file extension.")
}

func AddImportArgs(cmd *cobra.Command, o *TransferOptions) {
	AddExportArgs(cmd, o)
	cmd.Flags().BoolVar(&o.Merge, "merge", false,
		"Keep existing entries instead of replacing each list.")
}

// FormatFor resolves the format for path.
func (o *TransferOptions) FormatFor(path string) (transfer.Format, error) {
	if o.Format == "" {
		return transfer.FormatForPath(path), nil
	}
	return transfer.ParseFormat(o.Format)
}
