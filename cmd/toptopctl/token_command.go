package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"toptop/internal/identity"
	"toptop/internal/model"
)

// newTokenCommand mints identity tokens for local development against JWT_SECRET.
func newTokenCommand() *cobra.Command {
	var name string
	var picture string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <account-id>",
		Short: "Mint a development identity token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}
			cfg, err := loadConfigWithLogging()
			if err != nil {
				return err
			}

			id := model.Identity{Subject: args[0], Name: name}
			if picture != "" {
				id.Picture = &picture
			}
			if id.Name == "" {
				id.Name = args[0]
			}

			token, err := identity.Sign(id, cfg.JWTSecret, ttl)
			if err != nil {
				return errors.Wrap(err, "sign token")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name claim (defaults to the account id)")
	cmd.Flags().StringVar(&picture, "picture", "", "Avatar URL claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
