// Package cmd implements the cardmarket CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/card-market/internal/app"
	"github.com/donaldgifford/card-market/internal/config"
	"github.com/donaldgifford/card-market/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "cardmarket",
		Short: "CLI client for the card marketplace",
		Long: "cardmarket is a command-line client for the trading card marketplace.\n" +
			"It signs you in, browses the card catalog, manages your collection,\n" +
			"and publishes trade offers. Session and caches persist between runs.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.cardmarket.yaml)")
	rootCmd.PersistentFlags().
		String("server", config.DefaultBaseURL, "marketplace API URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		Bool("metrics", false, "print client metrics after the command")

	for _, name := range []string{"server", "output", "log-level", "metrics"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		googleLoginCmd(),
		logoutCmd(),
		meCmd(),
		cardsCmd(),
		tradesCmd(),
		themeCmd(),
		avatarCmd(),
		syncCmd(),
		versionCmd(),
	)
}

func initConfig() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	viper.SetEnvPrefix("CARDMARKET")
	viper.AutomaticEnv()
}

// loadConfig reads --config, then $HOME/.cardmarket.yaml, and falls back to
// defaults. Flags and CARDMARKET_* variables override file values.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".cardmarket.yaml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if viper.IsSet("server") {
		cfg.API.BaseURL = viper.GetString("server")
	}
	if lvl := viper.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// runFunc is a command body that receives a started application.
type runFunc func(ctx context.Context, cmd *cobra.Command, a *app.App, args []string) error

// withApp builds and starts the application around fn and closes it after.
func withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				log.Warn("closing app", "error", cerr)
			}
		}()

		a.Start(ctx)
		err = fn(ctx, cmd, a, args)

		if viper.GetBool("metrics") {
			if merr := printMetrics(cmd.ErrOrStderr()); merr != nil {
				log.Warn("printing metrics", "error", merr)
			}
		}
		return err
	}
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// actionError carries the user-facing message of a failed store action
// while keeping the underlying error for errors.Is and errors.As.
type actionError struct {
	message string
	err     error
}

func (e *actionError) Error() string { return e.message }
func (e *actionError) Unwrap() error { return e.err }

// failed wraps err with message when message is set.
func failed(message string, err error) error {
	if err == nil {
		return nil
	}
	if message == "" {
		return err
	}
	return &actionError{message: message, err: err}
}

// authRequired restores the session and fails with a readable message when
// nobody is signed in.
func authRequired(ctx context.Context, a *app.App) error {
	if err := a.RequireAuth(ctx); err != nil {
		return failed("Usuario nao autenticado. Use 'cardmarket login' primeiro.", err)
	}
	return nil
}

// guestOnly fails when somebody is already signed in.
func guestOnly(ctx context.Context, a *app.App) error {
	if err := a.RequireGuest(ctx); err != nil {
		if errors.Is(err, app.ErrAlreadySignedIn) {
			u := a.Session.User()
			return fmt.Errorf("already signed in as %s; run 'cardmarket logout' first", u.Email)
		}
		return err
	}
	return nil
}
