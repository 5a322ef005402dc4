package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cbodonnell/savestate/pkg/api"
	"github.com/cbodonnell/savestate/pkg/codec"
	"github.com/cbodonnell/savestate/pkg/config"
	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/queue"
	"github.com/cbodonnell/savestate/pkg/repositories"
	"github.com/cbodonnell/savestate/pkg/session"
	"github.com/cbodonnell/savestate/pkg/version"
	"github.com/cbodonnell/savestate/pkg/workers"
)

const usage = `usage: savestate [-log-level level] <command> [arguments]

commands:
  serve                          run the session host and the slot API
  list                           list stored slots
  export [-format json|yaml] ID  print a stored slot
  delete ID                      delete a stored slot
`

func main() {
	logLevel := flag.String("log-level", "", "Log level (overrides SAVESTATE_LOG_LEVEL)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Debug("Log level set to %s", parsedLogLevel)

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(context.Background())

	args := flag.Args()[1:]
	switch flag.Arg(0) {
	case "serve":
		err = serve(ctx, cfg, repository)
	case "list":
		err = listSlots(ctx, repository, os.Stdout)
	case "export":
		err = exportCommand(ctx, repository, args)
	case "delete":
		err = deleteCommand(ctx, repository, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("%s failed: %v", flag.Arg(0), err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config, repository repositories.Repository) error {
	log.Info("Starting savestate version %s", version.Get())

	c, err := codec.ForFormat(cfg.Format)
	if err != nil {
		return err
	}

	// the worker outlives the host so the final save can complete
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	saveChannelSize := 16
	saveChan := make(chan workers.SaveRequest, saveChannelSize)
	saveWorker := workers.NewSaveWorker(workers.NewSaveWorkerOptions{
		Repository: repository,
		Codec:      c,
		SaveChan:   saveChan,
	})
	go saveWorker.Start(workerCtx)

	host := session.NewHost(session.NewHostOptions{
		Repository:       repository,
		Codec:            c,
		SaveChan:         saveChan,
		CommandQueue:     queue.NewInMemoryQueue[session.Command](queue.QueueBufferSize),
		CurrentVersion:   cfg.SlotVersion,
		TickInterval:     cfg.TickInterval,
		AutosaveInterval: cfg.AutosaveInterval,
	})
	host.Register(session.NewStats(time.Now))

	if _, err := host.NewGame(ctx); err != nil {
		return fmt.Errorf("failed to start new game: %w", err)
	}

	server := api.NewAPIServer(api.NewAPIServerOptions{
		Port:       cfg.APIPort,
		Repository: repository,
		Host:       host,
	})
	go server.Start()

	log.Info("Starting session host")
	if err := host.Run(ctx); err != nil {
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
	if _, err := host.Save(shutdownCtx, ""); err != nil {
		return fmt.Errorf("failed to save on shutdown: %w", err)
	}
	log.Info("Saved active slot on shutdown")

	return nil
}

func exportCommand(ctx context.Context, repository repositories.Repository, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", codec.FormatJSON, "Output format (json or yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	slotID, err := parseSlotArg(fs.Args())
	if err != nil {
		return err
	}
	return exportSlot(ctx, repository, os.Stdout, slotID, *format)
}

func deleteCommand(ctx context.Context, repository repositories.Repository, args []string) error {
	slotID, err := parseSlotArg(args)
	if err != nil {
		return err
	}
	if err := repository.DeleteSlot(ctx, slotID); err != nil {
		return err
	}
	log.Info("Deleted slot %d", slotID)
	return nil
}

func parseSlotArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one slot ID")
	}
	slotID, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid slot ID %q", args[0])
	}
	return slotID, nil
}
