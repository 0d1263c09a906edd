package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizmaster/internal/config"
	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/logger"
	"github.com/abhisek/quizmaster/internal/store"
	"github.com/abhisek/quizmaster/internal/store/postgres"
)

var rootCmd = &cobra.Command{
	Use:   "quizmaster",
	Short: "Lecture quizzes in the terminal",
	Long:  "QuizMaster: bilingual multiple-choice lecture quizzes with reviews, favorites and saved progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZMASTER_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("lectures", "", "Lecture directory or http(s) base URL (overrides QUIZMASTER_LECTURES_SOURCE)")

	rootCmd.AddCommand(lecturesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps is what every command that touches learner data needs.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	blobs  store.BlobRepo
	// events is nil for the postgres driver, which only stores the session.
	events store.EventRepo
	close  func()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{File: file, Flags: cmd.Flags()})
}

// openDeps loads configuration, builds the logger and opens storage.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	d := &deps{cfg: cfg, logger: log}
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		repo, err := postgres.Open(ctxOf(cmd), cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		d.blobs = repo
		d.close = repo.Close
	default:
		path := cfg.Storage.Path
		if path == "" {
			if path, err = store.DefaultDBPath(); err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
		} else if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.blobs = st.BlobRepo()
		d.events = st.EventRepo()
		d.close = func() { _ = st.Close() }
	}

	log.Debug("storage opened", zap.String("driver", cfg.Storage.Driver))
	return d, nil
}

func (d *deps) Close() {
	if d.close != nil {
		d.close()
	}
	_ = d.logger.Sync()
}

// loadCatalog loads every lecture the configured source provides.
func (d *deps) loadCatalog(ctx context.Context) (*lecture.Catalog, error) {
	repo := lecture.NewRepository(
		lecture.NewFetcher(d.cfg.Lectures.Source),
		lecture.Config{MaxLectures: d.cfg.Lectures.Max, Concurrency: d.cfg.Lectures.Concurrency},
		d.logger,
	)
	return repo.LoadAll(ctx)
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
