package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(e *env) *cobra.Command {
	var (
		username      string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = line
			}
			if username == "" || password == "" {
				return errors.New("--username and a password are required")
			}

			state, err := e.shell.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			e.state = state
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (role %s)\n", username, state.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := e.shell.Logout(cmd.Context())
			if err != nil {
				return err
			}
			e.state = state
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the role and the pages it can open",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if e.state.Authenticated {
				fmt.Fprintf(out, "Role:     %s\n", e.state.Role)
				fmt.Fprintf(out, "Elevated: %t\n", e.state.Access.Elevated())
			} else {
				fmt.Fprintln(out, "Not signed in")
			}

			fmt.Fprintln(out, "Pages:")
			for _, item := range e.state.Navigation() {
				fmt.Fprintf(out, "  %-12s %s\n", item.Label, item.Path)
			}
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
