package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command. Content validation (HTML,
// links, assets) is planned but not yet ported; the command is registered so
// the surface is stable for scripts.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate published site content",
		Long:  `Validate the content of a published GitHub Pages site: HTML validity, internal links, and asset references.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("content validation is not implemented yet; run 'pagesmedic diagnose' for workflow checks")
		},
	}
}

// NewRepairCommand creates the repair command. Automated repairs are planned
// but not yet ported; diagnose reports suggest fixes in the meantime.
func NewRepairCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Apply automated fixes for diagnosed issues",
		Long:  `Apply automated repairs for issues found by diagnose. Repairs default to dry-run mode with backups enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("automated repair is not implemented yet; see the suggested fixes in the diagnose report")
		},
	}
}
