package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase saved answers, favorites and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("This clears all saved answers, favorites and progress. Continue? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		ctx := ctxOf(cmd)
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sessions := session.NewStore(d.blobs, d.logger)
		sessions.Reset(ctx, sessions.Load(ctx))
		if d.events != nil {
			if err := d.events.Clear(ctx); err != nil {
				return err
			}
		}
		fmt.Println("Session reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
