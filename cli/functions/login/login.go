/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package login

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
	"github.com/UnifyEM/storefront/cli/global"
	"github.com/UnifyEM/storefront/cli/session"
)

func Register(opts *app.Options) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login [-u user]",
		Short: "log in to the storefront",
		Long: fmt.Sprintf("log in to the storefront. Missing values are taken from %s and %s, "+
			"then prompted for", global.EnvUser, global.EnvPass),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				return execute(ctx, a, username)
			}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "user", "u", "", "username")
	return cmd
}

func execute(ctx context.Context, a *app.App, username string) error {
	envUser, envPass := global.EnvCredentials()
	if username == "" {
		username = envUser
	}

	// The password from the environment belongs to the user from the environment
	password := ""
	if username == envUser {
		password = envPass
	}

	reader := bufio.NewReader(a.In)
	var err error

	if username == "" {
		username, err = prompt(reader, a.Out, "Username: ")
		if err != nil {
			return err
		}
	}

	if password == "" {
		password, err = promptPassword(reader, a.In, a.Out)
		if err != nil {
			return err
		}
	}

	if username == "" || password == "" {
		return errors.New("a username and password are required")
	}

	if err = a.Session.Login(ctx, username, password); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return session.ErrInvalidCredentials
		}
		// The tokens are kept even if the profile could not be fetched
		if state, _ := a.Session.State(); state != session.Authenticated {
			return err
		}
		display.ErrorWrapper(err)
	}

	name := username
	if _, user := a.Session.State(); user != nil {
		name = user.DisplayName()
	}
	_, _ = fmt.Fprintf(a.Out, "Logged in as %s\n", name)
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal
func promptPassword(reader *bufio.Reader, in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(out, "Password: ")
		pw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(pw), nil
	}
	return prompt(reader, out, "Password: ")
}
