package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapp/config/database"
	"notesapp/internal/note/repository"
	"notesapp/pkg/logger"
	"notesapp/router"
	"notesapp/socket"

	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveDriver string
	serveDSN    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notes API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if serveDriver != "" {
			cfg.DBDriver = serveDriver
		}
		if serveDSN != "" {
			cfg.DBDSN = serveDSN
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		repo, closeRepo, err := openRepository(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer closeRepo()

		// The hub fans out creations to websocket subscribers until shutdown.
		hub := socket.NewHub()
		go hub.Run(ctx)

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           router.Setup(repo, hub, cfg.CORSOrigin),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Sugar.Infof("Notes API listening on %s (storage: %s)", cfg.Addr, cfg.DBDriver)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Sugar.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Sugar.Errorf("Graceful shutdown failed: %v", err)
		}
		<-hub.Done()
		return nil
	},
}

func openRepository(ctx context.Context, driver, dsn string) (repository.Repository, func(), error) {
	if driver == "memory" {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	dialect, err := repository.ParseDialect(driver)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewNoteRepository(db, dialect)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, func() { db.Close() }, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $NOTES_ADDR or :8080)")
	serveCmd.Flags().StringVar(&serveDriver, "driver", "", "storage: memory, postgres, sqlite3, mysql (default $NOTES_DB_DRIVER or memory)")
	serveCmd.Flags().StringVar(&serveDSN, "dsn", "", "database DSN (default $NOTES_DB_DSN)")
}
