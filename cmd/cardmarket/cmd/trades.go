package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/card-market/internal/app"
	"github.com/donaldgifford/card-market/internal/store"
	"github.com/donaldgifford/card-market/internal/validate"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

func tradesCmd() *cobra.Command {
	tradesRoot := &cobra.Command{
		Use:   "trades",
		Short: "Browse and manage trade offers",
		Long: "Browse the public trade offers and publish or withdraw your own.\n" +
			"A trade offers cards you own in exchange for catalog cards.",
	}

	tradesRoot.AddCommand(
		tradesListCmd(),
		tradesCreateCmd(),
		tradesDeleteCmd(),
	)

	return tradesRoot
}

func tradesListCmd() *cobra.Command {
	var (
		page, rpp int
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a page of trade offers",
		Example: `  cardmarket trades list
  cardmarket trades list --page 2 --output json`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			data, err := a.Trades.FetchTrades(ctx, page, rpp, force)
			if err != nil {
				return failed(a.Trades.State().Error, err)
			}
			if jsonOutput() {
				return outputJSON(stdout(cmd), data)
			}
			if len(data.List) == 0 {
				_, err := fmt.Fprintln(stdout(cmd), "No trades found.")
				return err
			}
			if err := printTradeTable(stdout(cmd), data.List); err != nil {
				return err
			}
			return printPageFooter(stdout(cmd), data.Page, data.RPP, data.More)
		}),
	}

	cmd.Flags().IntVar(&page, "page", store.DefaultTradesPage, "page number")
	cmd.Flags().IntVar(&rpp, "rpp", store.DefaultTradesRPP, "trades per page")
	cmd.Flags().BoolVar(&force, "force", false, "bypass the in-memory cache")

	return cmd
}

func tradesCreateCmd() *cobra.Command {
	var offering, receiving []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a trade offer",
		Long: "Publish a trade offer. --offer names cards from your collection and\n" +
			"--receive names catalog cards you want in exchange. A card cannot be\n" +
			"on both sides.",
		Example: `  cardmarket trades create --offer id-1 --receive id-7
  cardmarket trades create --offer id-1,id-2 --receive id-7 --receive id-8`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			form := validate.TradeForm{OfferingIDs: offering, ReceivingIDs: receiving}
			if errs := validate.Trade(form); !errs.Valid() {
				return errs.Err()
			}

			resp, err := a.Trades.CreateTrade(ctx, domain.NewCreateTradeRequest(offering, receiving))
			if err != nil {
				return failed(a.Trades.State().Error, err)
			}
			if jsonOutput() {
				return outputJSON(stdout(cmd), resp)
			}
			if resp == nil || resp.TradeID == "" {
				_, err = fmt.Fprintln(stdout(cmd), "Trade published.")
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "Trade %s published.\n", resp.TradeID)
			return err
		}),
	}

	cmd.Flags().StringSliceVar(&offering, "offer", nil, "card id you give away (repeatable)")
	cmd.Flags().StringSliceVar(&receiving, "receive", nil, "card id you want (repeatable)")

	return cmd
}

func tradesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <trade-id>",
		Short:   "Withdraw one of your trade offers",
		Example: `  cardmarket trades delete 6f1c2a9e-7b3d-4e8f-a1c5-2d9b8e4f0a37`,
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, args []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			if err := a.Trades.DeleteTrade(ctx, args[0]); err != nil {
				return failed(a.Trades.State().Error, err)
			}
			_, err := fmt.Fprintf(stdout(cmd), "Trade %s deleted.\n", args[0])
			return err
		}),
	}
}
