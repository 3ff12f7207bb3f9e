package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carto/create/internal/output"
	"github.com/carto/create/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			output.Println(version.GetInfo().String())
			return nil
		},
	}
}
