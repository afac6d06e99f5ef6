package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/astro-web3/hrdesk-console/internal/app/shell"
	"github.com/astro-web3/hrdesk-console/internal/config"
	"github.com/astro-web3/hrdesk-console/internal/domain/access"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
	"github.com/astro-web3/hrdesk-console/internal/infra/credstore"
	"github.com/astro-web3/hrdesk-console/pkg/logger"
)

// env is what every command runs against: one credential file, a gateway
// reading it and the shell deriving access from it.
type env struct {
	store   *credstore.File
	gateway *api.Gateway
	shell   *shell.Shell
	state   shell.State
}

type rootOptions struct {
	apiURL    string
	tokenPath string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	var (
		opts rootOptions
		e    env
	)

	cmd := &cobra.Command{
		Use:           "hrdeskctl",
		Short:         "Command line access to the HR Desk API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			level := cfg.Observability.LogLevel
			if opts.verbose {
				level = "debug"
			}
			logger.InitLoggerTo(os.Stderr, level, "text", false)

			built, err := newEnv(cmd, cfg, opts)
			if err != nil {
				return err
			}
			e = *built
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "HR API base URL (default from config)")
	cmd.PersistentFlags().StringVar(&opts.tokenPath, "token-file", "", "Credential file (default in the user config dir)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log API calls to stderr")

	cmd.AddCommand(
		newLoginCmd(&e),
		newLogoutCmd(&e),
		newWhoamiCmd(&e),
		newPhonebookCmd(&e),
		newBirthdaysCmd(&e),
		newAuditCmd(&e),
	)
	return cmd
}

func newEnv(cmd *cobra.Command, cfg *config.Config, opts rootOptions) (*env, error) {
	path := opts.tokenPath
	if path == "" {
		path = cfg.CLI.TokenPath
	}
	if path == "" {
		var err error
		if path, err = credstore.DefaultFilePath(); err != nil {
			return nil, err
		}
	}

	baseURL := cfg.API.BaseURL
	if opts.apiURL != "" {
		baseURL = opts.apiURL
	}

	store := credstore.NewFile(path)
	gateway := api.NewGateway(baseURL, store)
	sh := shell.New(store, gateway)

	return &env{
		store:   store,
		gateway: gateway,
		shell:   sh,
		state:   sh.Start(cmd.Context()),
	}, nil
}

// require fails unless the current access decision mounts item, the same
// check the console's route gate makes. Public pages need no sign-in.
func (e *env) require(item access.Item) error {
	if item.ElevatedOnly && !e.state.Authenticated {
		return errors.New("not signed in, run hrdeskctl login first")
	}
	if !e.state.Access.Mounted(item.Path) {
		return fmt.Errorf("%s is not available to role %s", item.Label, e.state.Role)
	}
	return nil
}
