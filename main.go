package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/candidatos-info/civic-enrichers/config"
	"github.com/candidatos-info/civic-enrichers/filestorage"
	"github.com/candidatos-info/civic-enrichers/ingest"
	"github.com/candidatos-info/civic-enrichers/jobserver"
	"github.com/candidatos-info/civic-enrichers/logger"
	"github.com/candidatos-info/civic-enrichers/metrics"
	"github.com/candidatos-info/civic-enrichers/processor"
	"github.com/candidatos-info/civic-enrichers/status"
	"github.com/candidatos-info/civic-enrichers/store"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logg, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		log.Fatalf("failed to create logger, error %q", err)
	}
	defer logg.Sync()
	cfg, err := config.Load(".env", logg)
	if err != nil {
		logg.Fatal("invalid configuration", "error", err.Error())
	}
	if cfg.UserName == "" {
		logg.Fatal("missing USER_NAME environment variables")
	}
	if cfg.Password == "" {
		logg.Fatal("missing PASSWORD environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, logg)
	if err != nil {
		logg.Fatal("failed to open database", "error", err.Error())
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		logg.Fatal("failed to migrate database", "error", err.Error())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storage := filestorage.Opener{AWS: filestorage.AWSConfig{
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Region:          cfg.AWSRegion,
	}}

	var handler *jobserver.Handler
	runner := ingest.New(st, processor.New(logg, cfg.Workers), storage, metrics.New(reg), logg, ingest.Options{
		Archive:  cfg.ArchiveLocation,
		Attempts: cfg.Attempts,
		OnStatus: func(s status.Status) { handler.SetStatus(s) },
	})
	handler = jobserver.New(ctx, runner, logg)

	e := echo.New()
	e.HideBanner = true
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	api := e.Group("", middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		return (username == cfg.UserName && password == cfg.Password), nil
	}))
	api.GET("/ingest", handler.Get)
	api.POST("/ingest", handler.Post)

	go func() {
		<-ctx.Done()
		_ = e.Close()
	}()
	logg.Info("server online", "port", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil && ctx.Err() == nil {
		logg.Fatal("server stopped", "error", err.Error())
	}
}
