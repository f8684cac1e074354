package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/api"
	"github.com/cmw1990/quitopia-support-sub008/internal/auth"
	"github.com/cmw1990/quitopia-support-sub008/internal/config"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

type application struct {
	logger      internal.Logger
	eventRepo   storage.EventRepository
	profileRepo storage.ProfileRepository
}

func (a *application) Logger() internal.Logger                { return a.logger }
func (a *application) EventRepo() storage.EventRepository     { return a.eventRepo }
func (a *application) ProfileRepo() storage.ProfileRepository { return a.profileRepo }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	var eventRepo storage.EventRepository
	var profileRepo storage.ProfileRepository
	switch cfg.DBType {
	case "postgres":
		eventRepo, profileRepo, err = storage.NewPostgresRepositories(cfg.DBDSN, logger)
	default:
		if dir := filepath.Dir(cfg.FileEvents); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		eventRepo, profileRepo, err = storage.NewFileRepositories(cfg.FileEvents, cfg.FileProfiles, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.LocalToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	app := &application{logger: logger, eventRepo: eventRepo, profileRepo: profileRepo}

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(api.RequestLogger(logger))
	r.Use(auth.AuthMiddleware(provider, cfg))
	api.RegisterRoutes(r, app)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Infof("server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if closer, ok := eventRepo.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Errorf("storage close: %v", err)
		}
	}
}
