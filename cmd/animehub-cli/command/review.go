package command

import (
	"fmt"
	"strconv"

	"animehub/database"
	"animehub/internal/web/models"
	"animehub/internal/web/repository"
	"animehub/internal/web/service"

	"github.com/spf13/cobra"
)

func newReviewCmd(opts *options) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Review commands",
	}

	listCmd := &cobra.Command{
		Use:   "list [anime-id]",
		Short: "List the reviews of an anime in page order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid anime ID: %w", err)
			}

			db, err := database.Connect(opts.reviewsDB, opts.logger, &models.Review{})
			if err != nil {
				return err
			}
			defer database.Close(db)

			reviews := service.NewReviewService(repository.NewReviewRepository(db), opts.special)
			listed, err := reviews.ListByAnime(cmd.Context(), animeID)
			if err != nil {
				return fmt.Errorf("failed to list reviews: %w", err)
			}

			if len(listed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reviews yet.")
				return nil
			}

			for _, r := range listed {
				marker := " "
				if r.Username == opts.special {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s (%s): %s\n", marker, r.ID, r.Username, r.CreatedAt.Format("2006-01-02 15:04"), r.Content)
			}
			return nil
		},
	}

	reviewCmd.AddCommand(listCmd)
	return reviewCmd
}
