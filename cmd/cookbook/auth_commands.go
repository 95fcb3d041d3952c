package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/cookbook/backend/internal/auth"
	"github.com/pageza/cookbook/backend/internal/types"
)

type credentialsFlags struct {
	email    string
	password string
}

func (f *credentialsFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")
}

func (f *credentialsFlags) resolve(cmd *cobra.Command) (string, string, error) {
	if f.password != "" {
		return f.email, f.password, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", "", errors.New("password is required")
	}
	return f.email, password, nil
}

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var creds credentialsFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return signIn(cmd, ctx, &creds, (*auth.Session).Register)
		},
	}
	creds.bind(cmd)
	return cmd
}

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var creds credentialsFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return signIn(cmd, ctx, &creds, (*auth.Session).Login)
		},
	}
	creds.bind(cmd)
	return cmd
}

func signIn(cmd *cobra.Command, ctx *commandContext, creds *credentialsFlags, fn func(*auth.Session, context.Context, string, string) error) error {
	session, _, err := ctx.ensureSession()
	if err != nil {
		return err
	}
	email, password, err := creds.resolve(cmd)
	if err != nil {
		return err
	}
	if err := fn(session, cmd.Context(), email, password); err != nil {
		return err
	}
	if err := ctx.saved(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", session.Snapshot().User.Email)
	return nil
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			if !session.Snapshot().SignedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			logoutErr := session.Logout(cmd.Context())
			if err := ctx.saved(); err != nil {
				return err
			}
			if logoutErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", logoutErr)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, api, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			if !session.Snapshot().SignedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			profile, err := api.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderProfile(profile))
			return nil
		},
	}
}

func renderProfile(p *types.Profile) string {
	rows := [][]string{
		{"ID", p.ID},
		{"Email", p.Email},
		{"Member since", p.MemberSince.Format("January 2006")},
		{"Recipes", strconv.Itoa(p.RecipesCount)},
		{"Favorites", strconv.Itoa(p.FavoritesCount)},
	}
	return renderTable([]string{"Account", ""}, rows, []columnAlignment{alignLeft, alignLeft})
}
