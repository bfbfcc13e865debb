package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/wayfarer/pkg/auth"
	authhandlers "github.com/cbodonnell/wayfarer/pkg/auth/handlers"
	"github.com/cbodonnell/wayfarer/pkg/config"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/version"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting auth server version %s", version.Get())
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if cfg.FirebaseAPIKey == "" {
		panic("WAYFARER_FIREBASE_API_KEY environment variable must be set")
	}

	repository, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.SQLiteMigrations)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(ctx)

	authServerOpts := auth.NewAuthServerOptions{
		Port: *port,
		Handler: authhandlers.NewFirebaseAuthHandler(authhandlers.NewFirebaseAuthHandlerOptions{
			APIKey: cfg.FirebaseAPIKey,
			Emails: repository,
		}),
		AllowOrigin: cfg.AllowOrigin,
	}
	if cfg.TLSEnabled() {
		authServerOpts.TLS = &auth.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
	}
	server := auth.NewAuthServer(authServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Stop(stopCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}
