package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"metalprices/internal/interaction/httpapi"
	"metalprices/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the price snapshot over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		log := logger.With("package", "cmd")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Initialize cache
		cache, closeCache := mustNewCacheStore(ctx)
		defer closeCache()

		// Initialize usecases
		snapshotUC := newSnapshotUseCase(cache)

		// Initialize scheduler
		if cnf.Warmup.Schedule != "" {
			sched := scheduler.New(logger, time.UTC)
			sched.Add("warmup", cnf.Warmup.Schedule, func(ctx context.Context) {
				snapshotUC.Refresh(ctx)
			})

			go func() {
				if err := sched.Start(ctx); err != nil {
					log.Error("failed to start scheduler", "error", err)
				}
			}()
		}

		gin.SetMode(gin.ReleaseMode)
		api := httpapi.NewInteraction(logger, snapshotUC, cnf.HTTP.Path)

		log.Info("starting http api")
		cobra.CheckErr(api.Start(ctx, cnf.HTTP.Addr, cnf.HTTP.ShutdownTimeout))
	},
}
