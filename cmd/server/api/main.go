package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/wayfarer/pkg/api"
	authproviders "github.com/cbodonnell/wayfarer/pkg/auth/providers"
	"github.com/cbodonnell/wayfarer/pkg/config"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/resources"
	"github.com/cbodonnell/wayfarer/pkg/router"
	"github.com/cbodonnell/wayfarer/pkg/state"
	"github.com/cbodonnell/wayfarer/pkg/version"
	"github.com/cbodonnell/wayfarer/pkg/workers"
)

func main() {
	port := flag.Int("port", 9090, "port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting api server version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	var authProvider authproviders.AuthProvider
	switch cfg.AuthProvider {
	case config.AuthProviderFirebase:
		authProvider, err = authproviders.NewFirebaseAuthProvider(ctx, authproviders.NewFirebaseAuthProviderOptions{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			panic(fmt.Sprintf("Failed to create Firebase auth provider: %v", err))
		}
	case config.AuthProviderJWT:
		authProvider, err = authproviders.NewJWTAuthProvider(authproviders.NewJWTAuthProviderOptions{
			Secret: cfg.JWTSecret,
		})
		if err != nil {
			panic(fmt.Sprintf("Failed to create JWT auth provider: %v", err))
		}
	}

	repository, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.SQLiteMigrations)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(context.Background())

	saveDataChan := make(chan workers.SaveGameDataRequest, 1000)
	sessions := state.NewInMemorySessionManager(state.NewInMemorySessionManagerOptions{
		AuthProvider: authProvider,
		Repository:   repository,
		SaveDataChan: saveDataChan,
	})

	saveWorker := workers.NewSaveGameDataWorker(workers.NewSaveGameDataWorkerOptions{
		Repository:   repository,
		SaveDataChan: saveDataChan,
		Source:       sessions,
		Interval:     cfg.SaveInterval,
	})
	workerDone := make(chan struct{})
	go func() {
		saveWorker.Start(ctx)
		close(workerDone)
	}()

	preloader := resources.New(resources.DefaultImages(cfg.AssetDir))

	apiServerOpts := api.NewAPIServerOptions{
		Port:        *port,
		Sessions:    sessions,
		Repository:  repository,
		Router:      router.NewRouter(router.NewRouterOptions{Sessions: sessions}),
		Preloader:   preloader,
		AllowOrigin: cfg.AllowOrigin,
	}
	if cfg.TLSEnabled() {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	log.Info("Shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := server.Stop(stopCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}

	// the worker drains pending saves before the repository closes
	cancel()
	<-workerDone
}
