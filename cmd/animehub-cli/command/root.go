package command

// root.go defines the root command for the animehub admin CLI.
// Global flags point it at the same catalog and stores the web server uses.

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	catalogPath string
	accountsDB  string
	reviewsDB   string
	special     string
	logger      *slog.Logger
}

// NewRootCmd builds the command tree. Flag defaults come from the environment
// (and .env) so the CLI sees what the server sees.
func NewRootCmd() *cobra.Command {
	_ = godotenv.Load(".env")
	opts := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	rootCmd := &cobra.Command{
		Use:   "animehub-cli",
		Short: "animehub-cli - AnimeHub administration",
		Long: `animehub-cli works directly on the AnimeHub catalog and record stores.
Use it to:
- Validate a catalog spreadsheet before deploying it
- Browse genres and anime the way the site does
- Create accounts, such as the highlighted reviewer
- List the reviews of an anime in display order

Use "animehub-cli command --help" to see all available commands.`,
		SilenceUsage: true,
	}

	// Global persistent flags = available to all subcommands
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.catalogPath, "catalog", envOr("CATALOG_PATH", "CS_IA_Anime_Spreadsheet.csv"), "catalog CSV path")
	flags.StringVar(&opts.accountsDB, "accounts-db", envOr("ACCOUNTS_DATABASE_URL", "users.db"), "account store URL or sqlite file")
	flags.StringVar(&opts.reviewsDB, "reviews-db", envOr("REVIEWS_DATABASE_URL", "reviews.db"), "review store URL or sqlite file")
	flags.StringVar(&opts.special, "special-username", envOr("SPECIAL_USERNAME", "Creator"), "account whose reviews are listed first")

	rootCmd.AddCommand(newCatalogCmd(opts), newAccountCmd(opts), newReviewCmd(opts))
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
