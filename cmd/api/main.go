package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/config"
	"github.com/comitanigiacomo/kanso-fit/internal/logging"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

func main() {
	env := flag.String("env", "dev", "environment section of the config file [dev, prod]")
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})

	if cfg.Environment == "prod" || cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.NewManager("kanso", "api", prometheus.DefaultRegisterer)

	a, err := newApp(cfg, m, prometheus.DefaultGatherer)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	ctx, stopWorker := context.WithCancel(context.Background())
	a.worker.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("kanso fit api running on http://localhost:%d (storage=%s, streaks=%s)", cfg.Port, cfg.Storage, cfg.Granularity())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stop signal received, shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}

	stopWorker()
	select {
	case <-a.worker.Done():
	case <-shutdownCtx.Done():
		log.Warn("snapshot worker did not stop in time")
	}

	if err := a.close(); err != nil {
		log.Errorf("closing resources: %v", err)
	}

	log.Info("server stopped gracefully")
}
