package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/session"
)

var lecturesCmd = &cobra.Command{
	Use:   "lectures",
	Short: "List available lectures and saved progress",
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

		fmt.Printf("%-10s  %9s  %10s  %9s\n", "Lecture", "Questions", "Answered", "Favorites")
		fmt.Println(strings.Repeat("─", 45))
		for _, lec := range catalog.Lectures() {
			fmt.Printf("%-10d  %9d  %10s  %9d\n",
				lec.ID, lec.Len(),
				fmt.Sprintf("%d/%d", state.AnsweredCount(lec.ID), lec.Len()),
				state.FavoriteCount(lec.ID))
		}
		fmt.Printf("\n%d lectures from %s\n", catalog.Len(), d.cfg.Lectures.Source)
		return nil
	},
}
