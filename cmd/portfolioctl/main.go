// Package main provides portfolioctl, an operator tool for the portfolio
// content database. It works directly on the SQLite file and does not need
// the server to be running.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jrsteele09/go-portfolio-cms/content"
	"github.com/jrsteele09/go-portfolio-cms/internal/config"
	"github.com/jrsteele09/go-portfolio-cms/internal/storage/sqlite"
	"github.com/jrsteele09/go-portfolio-cms/sections"
	"github.com/jrsteele09/go-portfolio-cms/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dbPath string
	debug  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Portfolio CMS operator tool",
		Long: `portfolioctl manages the portfolio content database directly:
reset admin passwords, export a backup and restore one.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.debug)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file path (defaults to DATA_FOLDER/DB_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(newSetPasswordCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newImportCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))
	return rootCmd
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// services are the stores a command works against, opened from one database file.
type services struct {
	config      config.Config
	store       *sqlite.Store
	credentials *users.Store
	content     *content.Facade
}

func openServices(ctx context.Context, opts *rootOptions) (*services, error) {
	c, err := config.New()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(opts.dbPath)
	if path == "" {
		path = c.GetDatabasePath()
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug().Str("path", path).Msg("Store opened")
	return &services{
		config:      c,
		store:       store,
		credentials: users.NewStore(store),
		content:     content.New(sections.NewStore(store)),
	}, nil
}

func (s *services) Close() {
	if err := s.store.Close(); err != nil {
		log.Err(err).Msg("Failed to close store")
	}
}
