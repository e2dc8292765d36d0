package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/quickbooks-mcp/internal/auth"
	"github.com/teemow/quickbooks-mcp/internal/config"
	"github.com/teemow/quickbooks-mcp/internal/logging"
)

// authDeps builds the collaborators shared by the auth subcommands.
func authDeps(tokenFile string) (*config.Config, *auth.Discovery, *auth.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	if tokenFile == "" {
		tokenFile, err = auth.DefaultTokenFile()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return cfg, auth.NewDiscovery(cfg.Environment.DiscoveryURL(), nil), auth.NewStore(tokenFile), nil
}

func newAuthCmd() *cobra.Command {
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize with QuickBooks",
		Long: `Run the one-shot interactive OAuth authorization flow.

A browser window opens on the Intuit consent page; after you approve access
the server receives the redirect on a local listener, exchanges the code for
tokens and saves them. The flow then exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, discovery, store, err := authDeps(tokenFile)
			if err != nil {
				return err
			}

			flow := auth.NewFlow(cfg, discovery, store, logging.DefaultLogger())

			fmt.Fprintln(cmd.ErrOrStderr(), "Opening browser for QuickBooks authorization...")

			tokens, err := flow.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "\nAuthorization successful!\n")
			fmt.Fprintf(cmd.ErrOrStderr(), "  Realm ID: %s\n", tokens.RealmID)
			fmt.Fprintf(cmd.ErrOrStderr(), "  Tokens saved to %s\n", store.Path())
			fmt.Fprintf(cmd.ErrOrStderr(), "\nYou can now start the MCP server with: quickbooks-mcp serve\n")
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "Token file path (default: user cache directory)")

	cmd.AddCommand(newAuthStatusCmd(&tokenFile))
	cmd.AddCommand(newAuthRevokeCmd(&tokenFile))

	return cmd
}

func newAuthStatusCmd(tokenFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored authorization state",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := authDeps(*tokenFile)
			if err != nil {
				return err
			}

			tokens, err := store.Load()
			if err != nil {
				return err
			}
			if tokens == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not authenticated. Run 'quickbooks-mcp auth' to authorize.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Authenticated.\n")
			fmt.Fprintf(cmd.OutOrStdout(), "  Realm ID:     %s\n", tokens.RealmID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Access token: %s\n", logging.SanitizeToken(tokens.AccessToken))
			fmt.Fprintf(cmd.OutOrStdout(), "  Expires at:   %s\n", tokens.Expiry().Format(time.RFC3339))
			if tokens.Expired(time.Now()) {
				fmt.Fprintln(cmd.OutOrStdout(), "  The access token is expired and will be refreshed on the next API call.")
			}
			return nil
		},
	}
}

func newAuthRevokeCmd(tokenFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Revoke the stored refresh token and clear local tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, discovery, store, err := authDeps(*tokenFile)
			if err != nil {
				return err
			}

			if err := auth.Revoke(cmd.Context(), cfg, discovery, store, nil); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Tokens revoked and cleared.")
			return nil
		},
	}
}
