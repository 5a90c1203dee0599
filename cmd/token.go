package cmd

import (
	"fmt"
	"time"

	"stock-manager/core/config"
	"stock-manager/core/middleware/auth"

	"github.com/spf13/cobra"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token [subject]",
	Short: "Issue a bearer token for a client",
	Long:  `Signs an HS256 token with server.jwt_secret. Scanners and other clients send it as "Authorization: Bearer <token>".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ttl, _ := cmd.Flags().GetDuration("ttl")
		token, err := auth.GenerateToken(cfg.Server.JWTSecret, args[0], cfg.Server.Ledger, ttl)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 30*24*time.Hour, "Token lifetime")
	RootCmd.AddCommand(tokenCmd)
}
