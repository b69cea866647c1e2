package app

import (
	"fmt"

	"github.com/GriffinCanCode/appwrite-go/internal/services/storage"
	"github.com/spf13/cobra"
)

// NewDownloadCommand creates the download command.
//
// Usage:
//
//	appwrite download BUCKET FILE DEST
func NewDownloadCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "download BUCKET FILE DEST",
		Short: "Download a file to disk",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger, err := getClient(globalOpts)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			n, err := storage.New(c).DownloadFile(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s to %s\n", formatSize(n), args[2])
			return nil
		},
	}
}
