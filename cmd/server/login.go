package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/scent-api/internal/authclient"
	"github.com/spf13/cobra"
)

type loginOptions struct {
	url      string
	email    string
	password string
	timeout  time.Duration
}

// newLoginCmd checks credentials against a remote login service, the same
// call the server makes when auth.remote_login_url is set.
func newLoginCmd() *cobra.Command {
	opts := &loginOptions{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in against a remote login service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authclient.New(opts.url)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if opts.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.timeout)
				defer cancel()
			}

			res, err := client.Login(ctx, opts.email, opts.password)
			if err != nil {
				var remote *authclient.RemoteError
				if errors.As(err, &remote) {
					return errors.New(remote.Message)
				}
				return err
			}

			name := res.Name
			if name == "" {
				name = "User"
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Welcome back, %s!\n", name)
			_, _ = fmt.Fprintf(out, "token: %s\n", res.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", "", "base URL of the login service")
	cmd.Flags().StringVar(&opts.email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.password, "password", "", "account password")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	for _, name := range []string{"url", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
