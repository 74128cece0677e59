package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/card-market/internal/app"
	"github.com/donaldgifford/card-market/internal/validate"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

func registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a marketplace account",
		Long: "Create a marketplace account. Registration does not sign you in;\n" +
			"run 'cardmarket login' afterwards. The password is read from stdin\n" +
			"when --password is not given.",
		Example: `  cardmarket register --name Ana --email ana@example.com --password s3cret!
  echo s3cret! | cardmarket register --name Ana --email ana@example.com`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := guestOnly(ctx, a); err != nil {
				return err
			}
			if password == "" {
				var err error
				if password, err = readSecret(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			form := validate.RegisterForm{Name: name, Email: email, Password: password}
			if errs := validate.Register(form); !errs.Valid() {
				return errs.Err()
			}

			err := a.Session.Register(ctx, domain.RegisterRequest{
				Name:     strings.TrimSpace(name),
				Email:    strings.TrimSpace(email),
				Password: password,
			})
			if err != nil {
				return failed(a.Session.State().Error, err)
			}
			_, err = fmt.Fprintln(stdout(cmd), "Account created. Sign in with 'cardmarket login'.")
			return err
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 6 characters")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	cobra.CheckErr(cmd.MarkFlagRequired("email"))

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: "Sign in with email and password. The session token is stored locally\n" +
			"and restored on the next run.",
		Example: `  cardmarket login --email ana@example.com --password s3cret!
  echo s3cret! | cardmarket login --email ana@example.com`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := guestOnly(ctx, a); err != nil {
				return err
			}
			if password == "" {
				var err error
				if password, err = readSecret(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			if errs := validate.Login(validate.LoginForm{Email: email, Password: password}); !errs.Valid() {
				return errs.Err()
			}

			err := a.Session.Login(ctx, domain.LoginRequest{
				Email:    strings.TrimSpace(email),
				Password: password,
			})
			if err != nil {
				return failed(a.Session.State().Error, err)
			}
			return printWelcome(cmd, a)
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cobra.CheckErr(cmd.MarkFlagRequired("email"))

	return cmd
}

func googleLoginCmd() *cobra.Command {
	var credential string

	cmd := &cobra.Command{
		Use:   "google-login",
		Short: "Sign in with a Google ID token",
		Long: "Sign in with a Google Identity Services credential (an ID token).\n" +
			"A marketplace account is created for the Google profile on first use.\n" +
			"The credential is read from stdin when --credential is not given.",
		Example: `  cardmarket google-login --credential eyJhbGciOi...
  cat id_token.txt | cardmarket google-login`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := guestOnly(ctx, a); err != nil {
				return err
			}
			if credential == "" {
				var err error
				if credential, err = readSecret(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			if err := a.Session.LoginWithGoogleCredential(ctx, credential); err != nil {
				return failed(a.Session.State().Error, err)
			}
			return printWelcome(cmd, a)
		}),
	}

	cmd.Flags().StringVar(&credential, "credential", "", "Google ID token")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			wasSignedIn := a.Session.IsAuthenticated()
			a.Session.Logout()
			msg := "Signed out."
			if !wasSignedIn {
				msg = "No active session."
			}
			_, err := fmt.Fprintln(stdout(cmd), msg)
			return err
		}),
	}
}

func meCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in profile",
		Example: `  cardmarket me
  cardmarket me --refresh --output json`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			if refresh {
				if err := a.Session.RefreshMe(ctx); err != nil {
					return failed(a.Session.State().Error, err)
				}
			}

			u := a.Session.User()
			if u == nil {
				return errors.New("profile not loaded")
			}
			_, hasAvatar := a.Prefs.Avatar(u.ID)
			if jsonOutput() {
				return outputJSON(stdout(cmd), u)
			}
			return printProfile(stdout(cmd), u, hasAvatar)
		}),
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the profile from the API again")

	return cmd
}

func printWelcome(cmd *cobra.Command, a *app.App) error {
	u := a.Session.User()
	if u == nil {
		_, err := fmt.Fprintln(stdout(cmd), "Signed in.")
		return err
	}
	_, err := fmt.Fprintf(stdout(cmd), "Signed in as %s <%s>.\n", u.Name, u.Email)
	return err
}

// readSecret reads the first line of r with surrounding whitespace removed.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
