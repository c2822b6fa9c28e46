package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-recordshop/internal/client"
	"go-recordshop/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if email == "" {
				if email, err = prompt(cmd, in, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(cmd, in, "Password: "); err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return errors.New("Email and password are required")
			}

			res, err := a.client(nil).Login(email, password)
			if err != nil {
				a.log.Warn("login failed", zap.String("email", email), zap.Error(err))
				if errors.Is(err, client.ErrUnavailable) {
					return errors.New("Login failed")
				}
				return errors.New(client.Describe(err, a.apiURL))
			}

			if err := a.sessions.Save(client.Session{User: res.Principal, Token: res.Token}); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			a.log.Info("logged in", zap.String("email", res.Email), zap.String("role", res.Role))
			cmd.Printf("Logged in as %s (%s)\n", res.Name, res.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions.Clear(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and what they may do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.guard.RequireLogin()
			if err != nil {
				return err
			}
			u := sess.User
			cmd.Printf("%s <%s>\nRole: %s\n", u.Name, u.Email, u.Role)

			var allowed []string
			for _, r := range []client.Route{
				client.RouteList, client.RouteShow, client.RouteAdd,
				client.RouteEdit, client.RouteDelete, client.RouteExport,
			} {
				if client.Allows(r, u.Role) {
					allowed = append(allowed, string(r))
				}
			}
			cmd.Printf("Commands: %s\n", strings.Join(allowed, ", "))
			if role, ok := model.FindRole(u.Role); ok {
				cmd.Printf("Privileges: %s\n", strings.Join(role.Privileges, ", "))
			}
			return nil
		},
	}
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	cmd.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
