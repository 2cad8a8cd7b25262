package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a draft access token",
	Long:  "Signs a bearer token for the drafts API with JWT_SECRET. The token subject is the owner UUID; a new one is generated when --owner is not given.",
	RunE:  runToken,
}

var tokenOwner string

func init() {
	tokenCmd.Flags().StringVar(&tokenOwner, "owner", "", "Owner UUID (default: a new random UUID)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	owner := uuid.New()
	if tokenOwner != "" {
		parsed, err := uuid.Parse(tokenOwner)
		if err != nil {
			return fmt.Errorf("invalid owner: %w", err)
		}
		owner = parsed
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(jwtConfig).GenerateToken(owner)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "owner: %s\n", owner)
	_, _ = fmt.Fprintf(out, "token: %s\n", token)
	return nil
}
