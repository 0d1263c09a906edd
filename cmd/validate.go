package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/lecture"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check lecture files against the lecture schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err == nil {
				err = lecture.Validate(data)
			}
			if err != nil {
				failed++
				fmt.Printf("FAIL  %s: %v\n", path, err)
				continue
			}
			fmt.Printf("ok    %s\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files invalid", failed, len(args))
		}
		return nil
	},
}
