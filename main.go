package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"channel-stats/domain/model"
	"channel-stats/infrastructure/chart"
	youtubeclient "channel-stats/infrastructure/clients/youtube"
	"channel-stats/infrastructure/configuration"
	"channel-stats/infrastructure/filecsv"
	"channel-stats/infrastructure/logger"
	"channel-stats/infrastructure/persistence"
	httpHandler "channel-stats/interfaces/http"
	"channel-stats/server"
	"channel-stats/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
		os.Exit(3)
	}
}

func main() {
	defer recoverPanic()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	config, err := configuration.LoadConfig()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot load configuration")
		os.Exit(2)
	}
	if err := config.Validate(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Invalid configuration")
		os.Exit(2)
	}

	runID := uuid.NewString()
	report, charts, err := run(ctx, config, runID)
	if err != nil {
		logger.GetLogger().WithField("run_id", runID).WithField("error", err).Error("Run failed")
		os.Exit(exitCode(err))
	}

	if !config.App.Serve {
		return
	}
	if err := serve(ctx, config.App, report, charts); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// run builds the report, writes charts and tables, and stores a snapshot when
// a database is configured.
func run(ctx context.Context, config *configuration.Config, runID string) (*model.Report, []model.BarChart, error) {
	log := logger.GetLogger().WithField("run_id", runID)

	ytConfig := config.GetYouTubeConfig()
	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
		APIKey:   ytConfig.APIKey,
		Endpoint: ytConfig.Endpoint,
	})
	if err != nil {
		return nil, nil, err
	}

	channelUseCase := usecase.NewChannelUseCase(youtubeClient)
	collectorUseCase := usecase.NewCollectorUseCase(youtubeClient)
	reportUseCase := usecase.NewReportUseCase(channelUseCase, collectorUseCase, usecase.ReportOptions{
		ChannelID:   config.Report.ChannelID,
		MonthFilter: config.MonthFilter(),
		TopN:        config.Report.TopN,
	})

	log.WithField("channels", len(config.YouTube.ChannelIDs)).Info("Starting run")
	report, err := reportUseCase.Build(ctx, config.YouTube.ChannelIDs)
	if err != nil {
		return nil, nil, err
	}
	charts := reportUseCase.Charts(report)

	outDir := filepath.Join(config.App.OutputDir, runID)
	if _, err := chart.NewRenderer().WriteAll(filepath.Join(outDir, "charts"), charts); err != nil {
		return nil, nil, err
	}
	if _, err := filecsv.WriteReport(outDir, report); err != nil {
		return nil, nil, err
	}

	if config.Database.Psql.Enabled() {
		if err := saveSnapshot(ctx, config.Database.Psql, runID, report); err != nil {
			log.WithField("error", err).Warn("Snapshot not stored")
		}
	}

	log.WithField("output", outDir).
		WithField("selected", report.Selected.Title).
		WithField("videos", len(report.Playlist)).
		Info("Run finished")
	return report, charts, nil
}

func saveSnapshot(ctx context.Context, cfg configuration.Db, runID string, report *model.Report) error {
	db, err := persistence.NewPostgreSQLDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := persistence.EnsureSnapshotSchema(db); err != nil {
		return err
	}
	return persistence.NewSnapshotRepository(db).Save(ctx, runID, report)
}

// serve exposes the finished report until ctx is cancelled.
func serve(ctx context.Context, app configuration.App, report *model.Report, charts []model.BarChart) error {
	gin.SetMode(gin.ReleaseMode)
	reportHandler := httpHandler.NewReportHandler(report, charts, chart.NewRenderer())
	router := server.InitiateRouter(reportHandler, app.AllowOrigins)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.GetLogger().WithField("port", app.Port).Info("Serving report")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// exitCode maps lookup and transport failures to distinct exit statuses.
func exitCode(err error) int {
	switch {
	case errors.Is(err, model.ErrChannelNotFound):
		return 4
	case errors.Is(err, model.ErrFetchFailed):
		return 5
	default:
		return 1
	}
}
