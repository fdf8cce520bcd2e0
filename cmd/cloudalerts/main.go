package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/iudanet/cloudalerts/internal/client/cli"
	"github.com/iudanet/cloudalerts/internal/client/iocli"
	"github.com/iudanet/cloudalerts/internal/client/storage/boltdb"
	"github.com/iudanet/cloudalerts/internal/client/sync"
	"github.com/iudanet/cloudalerts/internal/commands"
	"github.com/iudanet/cloudalerts/internal/config"
	"github.com/iudanet/cloudalerts/internal/directory/sqlite"
	"github.com/iudanet/cloudalerts/internal/models"
	"github.com/iudanet/cloudalerts/internal/useralerts"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", config.DefaultConfigPath(), "Path to config file")
	dbPath := flag.String("db", "", "Path to local metadata database")
	directoryPath := flag.String("directory", "", "Path to local directory database")
	me := flag.String("me", "", "Local account handle (base64)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Usage = func() { cli.PrintUsage(os.Stderr) }

	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		return 1
	}
	command := args[0]

	switch command {
	case "version":
		printVersion()
		return 0
	case "init":
		if err := config.SaveConfig(*configPath, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Config written to %s\n", *configPath)
		return 0
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// флаги командной строки важнее файла
	if *dbPath != "" {
		cfg.Storage.ClientDB = *dbPath
	}
	if *directoryPath != "" {
		cfg.Storage.DirectoryDB = *directoryPath
	}
	if *me != "" {
		cfg.Me = *me
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := newLogger(cfg.Level())

	meHandle, err := cfg.MeHandle()
	if err != nil {
		switch command {
		case "status", "pending", "flush":
			meHandle = models.Undef
		default:
			fmt.Fprintf(os.Stderr, "Error: %v (set 'me' in %s or pass --me)\n", err, *configPath)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.Storage.ClientDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Открываем справочник пользователей и узлов
	nodes, err := sqlite.New(ctx, cfg.Storage.DirectoryDB, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open directory: %v\n", err)
		return 1
	}
	defer func() {
		if err := nodes.Close(); err != nil {
			logger.Error("failed to close directory", "error", err)
		}
	}()

	queue := commands.NewQueue(boltStorage, logger)
	if err := queue.Restore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	alerts := useralerts.New(meHandle, nodes.View(ctx), queue, logger, useralerts.WithFlags(cfg.Alerts))
	syncService := sync.NewService(alerts, nodes, boltStorage, logger)
	c := cli.New(iocli.NewStdio(), alerts, syncService, queue, boltStorage, logger)

	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(os.Stderr)
		}
		return 1
	}
	return 0
}

// newLogger writes text logs to an interactive stderr and JSON otherwise.
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func printVersion() {
	fmt.Printf("CloudAlerts Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
