package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if strings.TrimSpace(userID) == "" {
				return errors.New("--user is required")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}
			jwt.SetSecret(cfg.JWTSecret)
			if jwt.UsingDefaultSecret() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: jwt_secret is not set, token uses the built-in default secret")
			}
			token, err := jwt.Sign(userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the token")
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 7*24*time.Hour, "token lifetime")
	return cmd
}
