package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/card-market/internal/app"
	"github.com/donaldgifford/card-market/internal/store"
)

func cardsCmd() *cobra.Command {
	cardsRoot := &cobra.Command{
		Use:   "cards",
		Short: "Browse the catalog and manage your collection",
		Long: "Browse the card catalog and manage the cards you own. Catalog pages\n" +
			"and your collection are cached locally; use --force to bypass the cache.",
	}

	cardsRoot.AddCommand(
		cardsListCmd(),
		cardsMineCmd(),
		cardsAddCmd(),
		cardsAckCmd(),
	)

	return cardsRoot
}

func cardsListCmd() *cobra.Command {
	var (
		page, rpp int
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a page of the card catalog",
		Example: `  cardmarket cards list
  cardmarket cards list --page 2 --rpp 24
  cardmarket cards list --force --output json`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			data, err := a.Cards.FetchCatalog(ctx, page, rpp, force)
			if err != nil {
				return failed(a.Cards.State().Error, err)
			}
			if jsonOutput() {
				return outputJSON(stdout(cmd), data)
			}
			if len(data.List) == 0 {
				_, err := fmt.Fprintln(stdout(cmd), "No cards found.")
				return err
			}
			if err := printCardTable(stdout(cmd), data.List, nil); err != nil {
				return err
			}
			return printPageFooter(stdout(cmd), data.Page, data.RPP, data.More)
		}),
	}

	cmd.Flags().IntVar(&page, "page", store.DefaultCatalogPage, "page number")
	cmd.Flags().IntVar(&rpp, "rpp", store.DefaultCatalogRPP, "cards per page")
	cmd.Flags().BoolVar(&force, "force", false, "bypass the local cache")

	return cmd
}

func cardsMineCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List the cards you own",
		Long: "List the cards you own. Cards added recently and not yet\n" +
			"acknowledged are marked with '*' in the NEW column.",
		Example: `  cardmarket cards mine
  cardmarket cards mine --force --output json`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			owned, err := a.Cards.FetchMyCards(ctx, force)
			if err != nil {
				return failed(a.Cards.State().Error, err)
			}
			if jsonOutput() {
				return outputJSON(stdout(cmd), owned)
			}
			if len(owned) == 0 {
				_, err := fmt.Fprintln(stdout(cmd), "You do not own any cards yet.")
				return err
			}
			return printCardTable(stdout(cmd), owned, a.Cards.IsNewCard)
		}),
	}

	cmd.Flags().BoolVar(&force, "force", false, "bypass the local cache")

	return cmd
}

func cardsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <card-id>...",
		Short: "Add catalog cards to your collection",
		Example: `  cardmarket cards add 0b9f5c1e-2d4a-4c52-9e1f-6a8b3c7d2e10
  cardmarket cards add id-1 id-2 id-3`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, args []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			if err := a.Cards.AddCards(ctx, args); err != nil {
				return failed(a.Cards.State().Error, err)
			}
			_, err := fmt.Fprintf(stdout(cmd), "Added %d card(s). You now own %d.\n",
				len(args), len(a.Cards.MyCards()))
			return err
		}),
	}
}

func cardsAckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ack [card-id]...",
		Short: "Acknowledge new cards",
		Long: "Clear the new-card marker on the given cards, or on every card\n" +
			"when no id is given.",
		Example: `  cardmarket cards ack
  cardmarket cards ack id-1 id-2`,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App, args []string) error {
			if err := authRequired(ctx, a); err != nil {
				return err
			}
			// Loading the collection selects the user's new card set.
			if _, err := a.Cards.FetchMyCards(ctx, false); err != nil {
				return failed(a.Cards.State().Error, err)
			}
			a.Cards.AcknowledgeNewCards(args...)
			_, err := fmt.Fprintf(stdout(cmd), "%d new card(s) remaining.\n", len(a.Cards.NewCardIDs()))
			return err
		}),
	}
}
