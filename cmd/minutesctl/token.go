package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

var (
	tokenSubject string
	tokenEmail   string
	tokenRole    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token signed with SUPABASE_JWT_SECRET for local testing",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "user ID placed in the subject claim")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "authenticated", "role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("sub")
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Auth.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is not set")
	}

	manager := jwt.NewManager(cfg.Auth.SupabaseJWTSecret, cfg.Auth.Audience, tokenTTL)
	token, err := manager.GenerateAccessToken(tokenSubject, tokenEmail, tokenRole)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires in %s (sub=%s, aud=%s)\n", manager.GetAccessExpiry(), tokenSubject, cfg.Auth.Audience)
	return nil
}
