package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/pkg/utils"
)

var knownRoles = []string{"cashier", "manager", "admin"}

func newTokenCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with JWT_SECRET",
		Long: `Mint an access token for local development and scripts. Production
tokens come from the identity provider that shares JWT_SECRET.`,
		Example: `  billctl token --name Meena --roles cashier
  billctl token --user 6f1c... --roles manager,admin --ttl 2h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userFlag, _ := cmd.Flags().GetString("user")
			name, _ := cmd.Flags().GetString("name")
			roles, _ := cmd.Flags().GetStringSlice("roles")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			userID := uuid.New()
			if userFlag != "" {
				parsed, err := uuid.Parse(userFlag)
				if err != nil {
					return fmt.Errorf("invalid user id %q", userFlag)
				}
				userID = parsed
			}

			for _, role := range roles {
				if !isKnownRole(role) {
					return fmt.Errorf("unknown role %q (use %s)", role, strings.Join(knownRoles, ", "))
				}
			}
			if ttl <= 0 {
				ttl = cfg.JWT.ExpiryHours
			}

			token, err := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, ttl).GenerateAccessToken(userID, name, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("user", "", "User ID (random when empty)")
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().StringSlice("roles", []string{"cashier"}, "Comma separated roles")
	cmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_EXPIRY_HOURS)")
	return cmd
}

func isKnownRole(role string) bool {
	for _, r := range knownRoles {
		if r == role {
			return true
		}
	}
	return false
}
