package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/results"
	"github.com/abhisek/quizmaster/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats [lecture]",
	Short: "Show quiz results per lecture",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := ctxOf(cmd)
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		catalog, err := d.loadCatalog(ctx)
		if err != nil {
			return err
		}
		state := session.NewStore(d.blobs, d.logger).Load(ctx)

		lectures := catalog.Lectures()
		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid lecture %q: %w", args[0], err)
			}
			lec, ok := catalog.Get(id)
			if !ok {
				return fmt.Errorf("lecture %d: %w", id, lecture.ErrNotFound)
			}
			lectures = []lecture.Lecture{lec}
		}

		fmt.Printf("%-8s  %8s  %9s  %6s  %9s  %s\n",
			"Lecture", "Correct", "Incorrect", "Score", "Favorites", "All attempts")
		fmt.Println(strings.Repeat("─", 66))
		for _, lec := range lectures {
			res := results.Compute(lec, state)
			attempts := "-"
			if d.events != nil {
				acc, n, err := d.events.LectureAccuracy(ctx, lec.ID)
				if err != nil {
					return err
				}
				if n > 0 {
					attempts = fmt.Sprintf("%.0f%% of %d", acc*100, n)
				}
			}
			fmt.Printf("%-8d  %8d  %9d  %5d%%  %9d  %s\n",
				lec.ID, res.Correct, res.Incorrect, res.Percentage, res.FavoriteCount, attempts)
		}
		return nil
	},
}
