package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carecircle/internal/database"
	httpapi "carecircle/internal/http"
	"carecircle/internal/media"
	"carecircle/internal/repository"
	"carecircle/internal/service"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.NewPostgresDB(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			persons := repository.NewPostgresPersonsRepository(db)
			circleLinks := repository.NewPostgresCircleRepository(db)
			tasks := repository.NewPostgresTasksRepository(db)
			checkins := repository.NewPostgresCheckInsRepository(db)
			alerts := repository.NewPostgresAlertsRepository(db)
			memories := repository.NewPostgresMemoriesRepository(db)

			circle := service.NewCircleService(persons, circleLinks, log)
			feed := service.NewFeedService(circle, tasks, checkins, alerts, memories, log)
			store := media.NewStore(cfg.Upload.Dir, cfg.Upload.PublicPath)

			router := httpapi.NewRouter(log)
			router.RegisterCaregiverRoutes(httpapi.NewCaregiverHandler(circle, feed, log))
			router.RegisterTaskRoutes(httpapi.NewTaskHandler(tasks, persons, log))
			router.RegisterCheckinRoutes(httpapi.NewCheckinHandler(checkins, persons, log))
			router.RegisterAlertRoutes(httpapi.NewAlertHandler(alerts, persons, log))
			router.RegisterMemoryRoutes(httpapi.NewMemoryHandler(memories, log))
			router.RegisterUploadRoutes(httpapi.NewUploadHandler(store, log))

			srv := service.NewServer(cfg.HTTP.Addr, router, log)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case <-cmd.Context().Done():
			case err := <-errCh:
				if err != nil {
					log.Error("HTTP server failed", zap.Error(err))
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
}
