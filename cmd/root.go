package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "awl-scanner",
		Short: "Attendance list scanner for trainers",
		Long: `AWL Scanner digitizes paper attendance lists.

Uploaded sheet photos are read by a vision LLM, merged into one attendee
list, exported as CSV plus a scanned PDF, and mailed to training partners.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())

	return cmd
}
