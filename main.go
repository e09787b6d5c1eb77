package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/uno-arcade/uno-service/internal/auth"
	"github.com/uno-arcade/uno-service/internal/cache"
	"github.com/uno-arcade/uno-service/internal/database"
	"github.com/uno-arcade/uno-service/internal/handlers"
	"github.com/uno-arcade/uno-service/internal/middleware"
)

func main() {
	logger := logrus.New()
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// init token signing keys
	auth.Init()

	// optional persistence and action historian
	if ok, err := database.Connect(context.Background()); err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	} else if ok {
		logger.Info("game result persistence enabled")
	}
	defer database.Close()

	if ok, err := cache.ConnectRedis(); err != nil {
		logger.Fatalf("failed to connect to redis: %v", err)
	} else if ok {
		logger.Info("action historian enabled")
	}

	gs := handlers.NewGameServer(logger)
	handler := middleware.LogMiddleware(logger)(gs.Routes())

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	l, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		logger.Fatalf("failed to listen: %v", err)
	}
	logger.Infof("listening on %s", l.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Errorf("failed to serve: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
}
