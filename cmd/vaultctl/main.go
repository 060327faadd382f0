// Command vaultctl administers a prompt vault.
//
// Store commands (migrate, seed, export, import) use the server
// configuration and talk to the catalog store directly. Session commands
// (login, logout, delete-category) talk to a running server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/prompt-vault/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Prompt vault administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&sessionPath, "session", "", "session file (default $XDG_CONFIG_HOME/prompt-vault/session.yaml)")

	sessions := func() (*sessionStore, error) {
		return openSessionStore(sessionPath)
	}

	cmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		exportCmd(),
		importCmd(),
		backupsCmd(),
		loginCmd(sessions),
		logoutCmd(sessions),
		deleteCategoryCmd(sessions),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "vaultctl %s\n", app.BuildVersion())
			},
		},
	)

	return cmd
}
