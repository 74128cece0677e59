package cmd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/card-market/internal/app"
	"github.com/donaldgifford/card-market/internal/prefs"
)

// maxAvatarBytes bounds the image stored as a profile avatar.
const maxAvatarBytes = 2 << 20

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or change the color theme",
		Example: `  cardmarket theme
  cardmarket theme light
  cardmarket theme toggle`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *app.App, args []string) error {
			var theme prefs.Theme
			switch {
			case len(args) == 0:
				theme = a.Prefs.Theme()
			case strings.EqualFold(args[0], "toggle"):
				theme = a.Prefs.ToggleTheme()
			default:
				t, err := prefs.ParseTheme(args[0])
				if err != nil {
					return err
				}
				a.Prefs.SetTheme(t)
				theme = t
			}
			if jsonOutput() {
				return outputJSON(stdout(cmd), map[string]string{"theme": string(theme)})
			}
			_, err := fmt.Fprintf(stdout(cmd), "Theme: %s\n", theme)
			return err
		}),
	}
}

func avatarCmd() *cobra.Command {
	avatarRoot := &cobra.Command{
		Use:   "avatar",
		Short: "Manage your local profile avatar",
		Long: "Manage the profile avatar stored on this machine. Avatars are kept\n" +
			"per user and are never uploaded to the marketplace.",
	}

	avatarRoot.AddCommand(
		avatarSetCmd(),
		avatarShowCmd(),
		avatarRemoveCmd(),
	)

	return avatarRoot
}

func avatarSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <image-file>",
		Short:   "Store an image as your avatar",
		Example: `  cardmarket avatar set ~/Pictures/me.png`,
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, args []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			dataURL, err := readAvatar(args[0])
			if err != nil {
				return err
			}
			if !a.Prefs.SetAvatar(a.Session.User().ID, dataURL) {
				return errors.New("could not store the avatar")
			}
			_, err = fmt.Fprintln(stdout(cmd), "Avatar updated.")
			return err
		}),
	}
}

func avatarShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print your avatar as a data URL",
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			dataURL, ok := a.Prefs.Avatar(a.Session.User().ID)
			if !ok {
				_, err := fmt.Fprintln(stdout(cmd), "No avatar set.")
				return err
			}
			if jsonOutput() {
				return outputJSON(stdout(cmd), map[string]string{"avatar": dataURL})
			}
			_, err := fmt.Fprintln(stdout(cmd), dataURL)
			return err
		}),
	}
}

func avatarRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete your stored avatar",
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			if !a.Prefs.RemoveAvatar(a.Session.User().ID) {
				return errors.New("could not remove the avatar")
			}
			_, err := fmt.Fprintln(stdout(cmd), "Avatar removed.")
			return err
		}),
	}
}

// readAvatar loads an image file and encodes it as a base64 data URL.
func readAvatar(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading avatar: %w", err)
	}
	return avatarDataURL(data)
}

func avatarDataURL(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("avatar file is empty")
	}
	if len(data) > maxAvatarBytes {
		return "", fmt.Errorf("avatar is %d bytes; the limit is %d", len(data), maxAvatarBytes)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("avatar must be an image (got %s)", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
