package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/mappin-app/mappin/pkg/config"
	"github.com/mappin-app/mappin/pkg/content"
	"github.com/mappin-app/mappin/pkg/dedup"
	"github.com/mappin-app/mappin/pkg/extract"
	"github.com/mappin-app/mappin/pkg/feed"
	"github.com/mappin-app/mappin/pkg/geo"
	"github.com/mappin-app/mappin/pkg/ingest"
	"github.com/mappin-app/mappin/pkg/llm"
	"github.com/mappin-app/mappin/pkg/publish"
	"github.com/mappin-app/mappin/pkg/repository"
	"github.com/mappin-app/mappin/pkg/scheduler"
	"github.com/mappin-app/mappin/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"mappin.yml" description:"configuration file"`

	Once    bool   `long:"once" description:"run one ingestion batch and exit"`
	Cleanup bool   `long:"cleanup" description:"remove duplicated records and exit"`
	Keep    string `long:"keep" default:"oldest" choice:"oldest" choice:"newest" description:"record kept in a duplicate group"`
	Dedup   string `long:"dedup" choice:"exact" choice:"normalized" description:"duplicate key for cleanup, default from config"`
	DryRun  bool   `long:"dry-run" description:"report duplicates without deleting"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting mappin version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LLM.APIKey != "" {
		setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] can't close database: %v", err)
		}
	}()
	log.Printf("[INFO] using %s database", repos.Dialect)

	if opts.Cleanup {
		return cleanup(ctx, repos.Conflict, cfg, opts)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	live := publish.NewLiveHub(cfg.Server.AllowedOrigins)
	notifiers := []ingest.Notifier{live}
	if cfg.Publish.URL != "" {
		pub, err := publish.Dial(cfg.Publish)
		if err != nil {
			return fmt.Errorf("failed to start publisher: %w", err)
		}
		defer func() {
			if err := pub.Close(); err != nil {
				log.Printf("[WARN] can't close publisher: %v", err)
			}
		}()
		notifiers = append(notifiers, pub)
	}

	gaz := geo.New()
	mode := extract.Mode(cfg.Ingest.Mode)
	params := ingest.Params{
		Reader:     feed.NewReader(cfg.Extraction.Timeout, cfg.Extraction.UserAgent),
		Fallback:   extract.NewKeyword(gaz, mode),
		Store:      repos.Conflict,
		Notifiers:  notifiers,
		DedupMode:  dedup.Mode(cfg.Ingest.Dedup),
		DroppedTTL: cfg.Ingest.DroppedTTL,
		Metrics:    ingest.NewMetrics(reg),
	}

	var analyst server.Analyst
	if cfg.LLM.APIKey != "" {
		client := llm.NewClient(cfg.LLM)
		if cfg.Ingest.Strategy == "llm" {
			params.Primary = llm.NewExtractor(client, gaz, mode)
		}
		var articles llm.ArticleFetcher
		if cfg.Extraction.Enabled {
			articles = content.NewExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MaxChars)
		}
		analyst = llm.NewAnalyst(client, articles)
		log.Printf("[INFO] llm %s at %s, strategy %s", client.Model(), cfg.LLM.Endpoint, cfg.Ingest.Strategy)
	}

	interval := cfg.Schedule.Interval
	if !cfg.Schedule.Enabled {
		interval = 0
	}
	feeds := cfg.DomainFeeds()
	sched := scheduler.NewScheduler(scheduler.Params{
		Runner:   ingest.NewOrchestrator(params),
		Settings: repos.Setting,
		Feeds:    feeds,
		Options:  cfg.BatchOptions(),
		Interval: interval,
		Cooldown: cfg.Server.TriggerCooldown,
	})

	if opts.Once {
		summary, err := sched.RunNow(ctx)
		if err != nil {
			return fmt.Errorf("failed to run batch: %w", err)
		}
		log.Printf("[INFO] %s", summary.Message)
		return nil
	}

	srv := server.New(server.Params{
		Config:         cfg,
		Store:          repos.Conflict,
		Batch:          sched,
		Analyst:        analyst,
		Feeds:          feeds,
		Live:           live,
		Metrics:        reg,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Version:        revision,
		Debug:          opts.Debug,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		sched.Run(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// cleanup removes duplicated records and prints the report as JSON
func cleanup(ctx context.Context, store dedup.Store, cfg *config.Config, opts Opts) error {
	modeStr := opts.Dedup
	if modeStr == "" {
		modeStr = cfg.Ingest.Dedup
	}
	mode, err := dedup.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid dedup mode: %w", err)
	}
	keep, err := dedup.ParseKeep(opts.Keep)
	if err != nil {
		return fmt.Errorf("invalid keep strategy: %w", err)
	}

	cleaner := &dedup.Cleaner{Store: store, Mode: mode, Keep: keep}
	rep, err := cleaner.Run(ctx, opts.DryRun)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("can't write report: %w", err)
	}
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

