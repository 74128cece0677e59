package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/card-market/internal/app"
	"github.com/donaldgifford/card-market/internal/notify"
	"github.com/donaldgifford/card-market/internal/refresh"
)

const syncStopTimeout = 30 * time.Second

func syncCmd() *cobra.Command {
	var (
		watch       bool
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local caches from the API",
		Long: "Refetch catalog pages, the first trade page, and, when signed in,\n" +
			"your collection. With --watch the refresh repeats on a schedule until\n" +
			"interrupted; new cards in your collection are logged and, when\n" +
			"notify.discord_webhook_url is set, posted to Discord.",
		Example: `  cardmarket sync
  cardmarket sync --watch --interval 5m
  cardmarket sync --watch --metrics-addr :9464`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			cfg := refresh.Config{
				Interval:     a.Config.Refresh.Interval,
				CatalogPages: a.Config.Refresh.CatalogPages,
				RPP:          a.Config.Refresh.RPP,
			}
			if interval > 0 {
				cfg.Interval = interval
			}

			var notifier notify.Notifier = notify.NewNoOpNotifier(a.Log)
			if webhook := a.Config.Notify.DiscordWebhookURL; webhook != "" {
				notifier = notify.NewDiscordNotifier(webhook,
					notify.WithHTTPClient(&http.Client{Timeout: a.Config.API.Timeout}))
			}

			r, err := refresh.New(cfg, a.Cards, a.Cards, a.Trades, a.Session, a.Log,
				refresh.WithNotifier(notifier))
			if err != nil {
				return err
			}

			res, err := r.RunOnce(ctx)
			if jsonOutput() {
				if jerr := outputJSON(stdout(cmd), res); jerr != nil {
					return jerr
				}
			} else if perr := printSyncResult(cmd, res); perr != nil {
				return perr
			}
			if !watch {
				return err
			}
			if err != nil {
				a.Log.Warn("initial refresh failed", "error", err)
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				e := metricsServer(metricsAddr, a.Log)
				defer func() {
					sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if serr := e.Shutdown(sctx); serr != nil {
						a.Log.Warn("stopping metrics listener", "error", serr)
					}
				}()
			}

			r.Start()
			a.Log.Info("watching for changes", "interval", cfg.Interval)
			<-ctx.Done()

			select {
			case <-r.Stop().Done():
			case <-time.After(syncStopTimeout):
				fmt.Fprintln(cmd.ErrOrStderr(), "timed out waiting for refresh to finish")
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing on a schedule")
	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval (default from config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while watching")

	return cmd
}

// metricsServer exposes /metrics on addr in the background.
func metricsServer(addr string, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener failed", "error", err)
		}
	}()
	return e
}

func printSyncResult(cmd *cobra.Command, res refresh.Result) error {
	tw := newTabWriter(stdout(cmd))
	tw.writef("Catalog pages:\t%d\n", res.CatalogPages)
	tw.writef("Trades:\t%d\n", res.Trades)
	tw.writef("Owned cards:\t%d\n", res.Inventory)
	return tw.finish()
}
