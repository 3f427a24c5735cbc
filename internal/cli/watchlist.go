package cli

import (
	"github.com/spf13/cobra"

	apperrors "stocksignal/internal/errors"
	"stocksignal/internal/logging"
)

// addWatchlistCommands adds the watchlist management commands.
func addWatchlistCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newWatchlistCmd(app))
}

func newWatchlistCmd(app *App) *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"wl"},
		Short:   "Manage symbol watchlists",
	}
	cmd.PersistentFlags().StringVar(&listName, "name", "default", "watchlist name")

	requireStore := func() error {
		if app.Store == nil {
			return apperrors.Wrap(apperrors.ErrDatabaseError, "store unavailable")
		}
		return nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <symbol> [symbol...]",
		Short: "Add symbols to a watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)
			for _, symbol := range args {
				if err := app.Store.AddToWatchlist(ctx, symbol, listName); err != nil {
					return err
				}
			}
			output.Success("Added %d symbol(s) to %s", len(args), listName)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <symbol> [symbol...]",
		Short: "Remove symbols from a watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)
			for _, symbol := range args {
				if err := app.Store.RemoveFromWatchlist(ctx, symbol, listName); err != nil {
					return err
				}
			}
			output.Success("Removed %d symbol(s) from %s", len(args), listName)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the symbols of a watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)
			symbols, err := app.Store.GetWatchlist(ctx, listName)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string][]string{listName: symbols})
			}
			output.Bold("Watchlist: %s", listName)
			if len(symbols) == 0 {
				output.Dim("  (empty)")
				return nil
			}
			for _, s := range symbols {
				output.Printf("  %s\n", s)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "lists",
		Short: "Show every watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx := logging.WithLogger(cmd.Context(), app.Logger)
			lists, err := app.Store.GetAllWatchlists(ctx)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(lists)
			}
			if len(lists) == 0 {
				output.Dim("No watchlists")
				return nil
			}
			for name, symbols := range lists {
				output.Bold("%s (%d)", name, len(symbols))
				for _, s := range symbols {
					output.Printf("  %s\n", s)
				}
			}
			return nil
		},
	})

	return cmd
}
