package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pwaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pwaudit",
		Short: "Heuristic password strength auditor",
		Long: `pwaudit estimates the strength of passwords and reports it with
recommendations and projected crack times.

Passwords are never logged, written to reports or stored in clear text.
Reports show a masked form only; the optional audit history keeps a keyed
fingerprint so reuse across runs can be spotted.

Use only in a controlled environment on passwords you are allowed to audit.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
