package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/wayfarer/pkg/auth"
	authproviders "github.com/cbodonnell/wayfarer/pkg/auth/providers"
	"github.com/cbodonnell/wayfarer/pkg/config"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-log-level level] <command> [flags]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  delete-user -email <email>   delete the account and saved game of a user")
	fmt.Fprintln(os.Stderr, "  lookup-user -email <email>   print the user id registered for an email")
	flag.PrintDefaults()
}

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Usage = usage
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel))

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	command, args := flag.Arg(0), flag.Args()[1:]

	cmdFlags := flag.NewFlagSet(command, flag.ExitOnError)
	email := cmdFlags.String("email", "", "email of the user")
	cmdFlags.Parse(args)
	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		os.Exit(2)
	}

	ctx := context.Background()
	admin, closeAdmin, err := newAdmin(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeAdmin()

	switch command {
	case "delete-user":
		if !admin.DeleteUserByEmail(ctx, *email) {
			closeAdmin()
			os.Exit(1)
		}
		fmt.Printf("Deleted user %s\n", *email)
	case "lookup-user":
		userID, err := admin.GetUserIDByEmail(ctx, *email)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			closeAdmin()
			os.Exit(1)
		}
		fmt.Println(userID)
	default:
		usage()
		closeAdmin()
		os.Exit(2)
	}
}

func newAdmin(ctx context.Context) (*auth.Admin, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %v", err)
	}

	repository, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.SQLiteMigrations)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open repository: %v", err)
	}
	closeRepository := func() { repository.Close(ctx) }

	opts := auth.NewAdminOptions{Repository: repository}
	if cfg.AuthProvider == config.AuthProviderFirebase {
		provider, err := authproviders.NewFirebaseAuthProvider(ctx, authproviders.NewFirebaseAuthProviderOptions{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			closeRepository()
			return nil, nil, fmt.Errorf("failed to create Firebase auth provider: %v", err)
		}
		opts.Deleter = provider
	}
	return auth.NewAdmin(opts), closeRepository, nil
}
