package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the prkeeper application
var rootCmd = &cobra.Command{
	Use:   "prkeeper",
	Short: "Keeps pull requests and their linked issues tidy",
	Long: `prkeeper is a set of GitHub Actions bots that automate pull request
lifecycle chores for a repository:

  - reopen:   reassign linked issues when a pull request is reopened
  - activity: clear the stale state when a contributor follows up
  - stale:    warn, unassign and close pull requests after review inactivity`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "prkeeper version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newReopenCmd())
	rootCmd.AddCommand(newActivityCmd())
	rootCmd.AddCommand(newStaleCmd())
	rootCmd.AddCommand(newVersionCmd())
}
