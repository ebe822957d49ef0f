package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sagarc03/endpoint"
	"github.com/sagarc03/endpoint/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect credential tokens",
}

var tokenInspectCmd = &cobra.Command{
	Use:   "inspect <token>",
	Short: "Verify a token with the configured keys and print its identity",
	Long: `Verify a credential token against the configured signing keys and
print the identity it carries. With --role the token is also checked against
that minimum role, the same way a dispatcher would.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenInspect,
}

func init() {
	tokenInspectCmd.Flags().Int("role", int(endpoint.Anonymous), "minimum role to check (-1 = none)")

	tokenCmd.AddCommand(tokenInspectCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	auth, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}

	identity, err := auth.Verify(args[0])
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	role, _ := cmd.Flags().GetInt("role")
	if role >= 0 {
		if err := auth.CheckUserPermission(args[0], endpoint.Role(role)); err != nil {
			return fmt.Errorf("permission check: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "role %d satisfied\n", role)
	}

	return nil
}
