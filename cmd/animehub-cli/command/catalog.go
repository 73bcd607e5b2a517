package command

import (
	"fmt"
	"strconv"
	"strings"

	"animehub/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *options) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog inspection commands",
		Long:  `Inspect the catalog spreadsheet: validate it, list genres, search by genre and show one anime`,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(opts.catalogPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d anime, %d genres\n", opts.catalogPath, c.Len(), len(c.Genres()))
			return nil
		},
	}

	genresCmd := &cobra.Command{
		Use:   "genres",
		Short: "List every genre with its page slug and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(opts.catalogPath)
			if err != nil {
				return err
			}

			genres := c.Genres()
			if len(genres) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No genres found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Available genres (%d total):\n\n", len(genres))
			for _, g := range genres {
				fmt.Fprintf(cmd.OutOrStdout(), "%s | /genres/%s.html | %d anime\n", g, catalog.Slug(g), len(c.Search(g)))
			}
			return nil
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [genre]",
		Short: "List the anime of one genre, by name or page slug",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(opts.catalogPath)
			if err != nil {
				return err
			}

			genre := c.GenreForSlug(strings.Join(args, " "))
			results := c.Search(genre)
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No anime found for %q.\n", genre)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d results):\n\n", genre, len(results))
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "ID: %s | %s | %s | %d episodes\n", r.ID, r.Title, r.Genres, r.Episodes)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [anime-id]",
		Short: "Show one anime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid anime ID: %w", err)
			}

			c, err := catalog.Load(opts.catalogPath)
			if err != nil {
				return err
			}

			anime, ok := c.ByID(id)
			if !ok {
				return fmt.Errorf("anime %d not found", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n", anime.Title)
			fmt.Fprintf(out, "Genres: %s\n", anime.GenreList())
			fmt.Fprintf(out, "Episodes: %d\n", anime.Episodes)
			fmt.Fprintf(out, "Page: /anime%d.html\n", anime.ID)
			return nil
		},
	}

	catalogCmd.AddCommand(checkCmd, genresCmd, searchCmd, showCmd)
	return catalogCmd
}
