package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizmaster/internal/app"
	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/session"
)

// runApp opens storage, loads lectures and the saved session, and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := ctxOf(cmd)
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	catalog, err := d.loadCatalog(ctx)
	if err != nil {
		d.logger.Error("no lectures loaded", zap.Error(err), zap.String("source", d.cfg.Lectures.Source))
		if errors.Is(err, lecture.ErrEmptyCatalog) {
			if uiErr := app.RunFailure(err); uiErr != nil {
				return uiErr
			}
		}
		return err
	}

	sessions := session.NewStore(d.blobs, d.logger)
	opts := []quiz.Option{quiz.WithLogger(d.logger)}
	if d.events != nil {
		opts = append(opts, quiz.WithAnswerLog(d.events))
	}
	ctrl := quiz.New(catalog, sessions, sessions.Load(ctx), opts...)

	d.logger.Info("starting",
		zap.Int("lectures", catalog.Len()),
		zap.String("run_id", ctrl.RunID()))
	return app.Run(ctrl)
}
