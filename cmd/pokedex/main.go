// Command pokedex is the terminal client: an interactive browser and a plain
// card listing, both backed by PokeAPI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pokedex/internal/domain/pokemon"
	"pokedex/internal/infrastructure/pokeapi"
	"pokedex/internal/interfaces/tui"
	"pokedex/internal/shared/config"
	"pokedex/internal/shared/logging"
)

var (
	appConfig *config.Config
	logger    *zap.Logger

	listPages  int
	listSearch string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse Pokémon from PokeAPI in the terminal",
	Long: `pokedex loads Pokémon from PokeAPI twenty at a time and shows them as
cards with their types and base stats.

Configuration is read from the environment (and an optional .env file):
POKEAPI_BASE_URL, POKEAPI_TIMEOUT, POKEAPI_MAX_CONCURRENCY, LOG_LEVEL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		appConfig, err = config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		logger, err = logging.New(appConfig.Log.Level, appConfig.Log.Development)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// browseCmd launches the interactive browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive card browser",
	Long: `Opens a full-screen browser over the loaded cards.

Type to filter by name, ctrl+n loads the next page, esc quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Log output would corrupt the full-screen view.
		return tui.Run(newSession(zap.NewNop()))
	},
}

// listCmd prints cards without any interaction
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Load pages and print the cards",
	Long: `Loads the given number of pages and prints every card whose name
contains the search term.

Example:
  pokedex list --pages 3 --search saur`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listPages < 1 {
			return fmt.Errorf("--pages must be at least 1, got %d", listPages)
		}
		return runList(cmd.Context(), cmd.OutOrStdout(), newSession(logger), listPages, listSearch)
	},
}

func init() {
	listCmd.Flags().IntVarP(&listPages, "pages", "p", 1, "number of pages of 20 to load")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only print cards whose name contains this term")

	rootCmd.AddCommand(browseCmd, listCmd)
}

func newSession(log *zap.Logger) *pokemon.Session {
	client := pokeapi.NewClient(appConfig.PokeAPI.BaseURL, appConfig.PokeAPI.Timeout)
	acc := pokemon.NewAccumulatorWithConcurrency(client, appConfig.PokeAPI.MaxConcurrency, log)
	return pokemon.NewSession(acc)
}

// runList loads pages one after another and prints the filtered cards. A
// failed page stops the listing; what loaded before it is still printed.
func runList(ctx context.Context, out io.Writer, session *pokemon.Session, pages int, search string) error {
	var loadErr error
	for i := 0; i < pages && loadErr == nil; i++ {
		if i == 0 {
			loadErr = session.Load(ctx)
		} else {
			loadErr = session.LoadMore(ctx)
		}
	}

	cards := pokemon.BuildViews(session.Snapshot().Collection.Filter(search))
	for _, card := range cards {
		fmt.Fprintln(out, tui.RenderCard(card))
	}
	fmt.Fprintf(out, "%d Pokémon\n", len(cards))

	return loadErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
