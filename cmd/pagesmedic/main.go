// Command pagesmedic diagnoses GitHub Pages deployment problems in a
// repository's GitHub Actions workflows.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pagesmedic/pagesmedic/pkg/cli"
	"github.com/pagesmedic/pagesmedic/pkg/console"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "pagesmedic",
	Short:         "Diagnose GitHub Pages deployment workflows",
	Long:          `pagesmedic analyzes a repository's GitHub Actions workflows for GitHub Pages deployment problems: permissions, triggers, action versions, and deployment step completeness.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(cli.NewDiagnoseCommand())
	rootCmd.AddCommand(cli.NewValidateCommand())
	rootCmd.AddCommand(cli.NewRepairCommand())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the pagesmedic version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
