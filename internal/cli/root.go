// Package cli implements billctl, a command-line companion to the API for
// pricing carts and minting development tokens.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/pkg/logger"
)

var version = "1.0.0"

// NewRootCmd builds the billctl command tree
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "billctl",
		Short: "billctl prices GST carts and mints API tokens",
		Long: `billctl runs the billing engine used by the API from the command line.

Carts are read as JSON in the same shape as POST /api/v1/billing/calculate.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCalcCmd(cfg))
	root.AddCommand(newSettleCmd())
	root.AddCommand(newTokenCmd(cfg))
	return root
}

// Execute runs billctl and returns the process exit code
func Execute(cfg *config.Config) int {
	log := logger.WithComponent("billctl")

	if err := NewRootCmd(cfg).Execute(); err != nil {
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
