package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Admin console gateway for the dressmaking backend",
	Long: `The console sits between the staff browser UI and the dressmaking
backend's REST API. It owns the login session, injects bearer tokens into
backend calls (with a single automatic refresh), and implements the
workflows the raw API does not: property assignment forms, multi-customer
order composition, and name-resolved order views.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
