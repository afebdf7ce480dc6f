package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nkp491/surehelp/internal/auth"
	"github.com/spf13/cobra"
)

var (
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a development access token",
	Long: `Signs a token with JWT_SECRET for the given user id. Only useful against
a server configured with the same secret.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := mintToken(auth.NewJWTValidator(cfg.JWTSecret), args[0], tokenEmail, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func mintToken(v *auth.JWTValidator, userID, email string, ttl time.Duration) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("user id must be a UUID: %w", err)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive")
	}
	return v.Sign(userID, email, ttl)
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
