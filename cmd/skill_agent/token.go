package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/config"
	"github.com/jonathan/skill-extractor/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the /analyses endpoints",
	Long: `Mint a JWT signed with JWT_SECRET whose subject is --owner. The server scopes saved
analyses to that owner. Expiry comes from JWT_EXPIRATION_HOURS (default 24).`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

var tokenOwner string

func init() {
	tokenCmd.Flags().StringVar(&tokenOwner, "owner", "", "Token subject (required)")
	_ = tokenCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenOwner)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
