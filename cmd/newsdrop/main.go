package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsdrop/pkg/channel"
	"github.com/umputun/newsdrop/pkg/config"
	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/feed"
	"github.com/umputun/newsdrop/pkg/recommend"
	"github.com/umputun/newsdrop/pkg/repository"
	"github.com/umputun/newsdrop/pkg/scheduler"
	"github.com/umputun/newsdrop/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

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
	lgr.Printf("[INFO] starting newsdrop version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()
	lgr.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, opts.NoColor, secrets(cfg.Channels)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	engine := recommend.NewEngine(recommend.EngineConfig{Profiles: repos.Profile, Articles: repos.Article, Ledger: repos.Delivery})
	ingester := recommend.NewIngester(recommend.IngesterConfig{Profiles: repos.Profile, Ledger: repos.Delivery})

	feeds := cfg.Feeds.Categories
	if len(feeds) == 0 {
		feeds = feed.DefaultFeeds()
	}
	collector := feed.NewCollector(feed.CollectorConfig{
		Store:       repos.Article,
		Fetcher:     feed.NewParser(cfg.Feeds.Timeout, cfg.Feeds.UserAgent),
		Feeds:       feeds,
		Concurrency: cfg.Feeds.Concurrency,
	})

	adapters, closeAdapters := makeAdapters(cfg.Channels, cfg.Delivery.SendTimeout)
	defer closeAdapters()
	dispatcher := dispatch.New(cfg.Delivery.SendTimeout, adapters...)
	lgr.Printf("[INFO] delivery channels: %v", dispatcher.Channels())

	orchestrator := scheduler.NewOrchestrator(scheduler.OrchestratorConfig{
		Users:       repos.User,
		Recommender: engine,
		Ledger:      repos.Delivery,
		Dispatcher:  dispatcher,
		MaxWorkers:  cfg.Delivery.MaxWorkers,
		PerCategory: cfg.Delivery.PerCategory,
		BatchSize:   cfg.Delivery.BatchSize,
	})

	schedParams := scheduler.Params{
		Orchestrator:     orchestrator,
		Decayer:          ingester,
		DeliveryInterval: cfg.Delivery.Interval,
		DecayInterval:    cfg.Decay.Interval,
		CollectInterval:  cfg.Feeds.Interval,
		CleanupInterval:  cfg.Feeds.CleanupInterval,
		Retention:        cfg.Feeds.Retention,
	}
	if cfg.Feeds.Enabled {
		schedParams.Collector = collector
	}
	sched := scheduler.NewScheduler(schedParams)
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:            cfg,
		Recommender:       engine,
		Preferences:       ingester,
		Notifications:     repos.Delivery,
		Users:             repos.User,
		Sender:            orchestrator,
		Categories:        repos.Article,
		Articles:          repos.Article,
		Scraper:           collector,
		Telegram:          telegramBot(adapters),
		TelegramSecret:    cfg.Channels.Telegram.WebhookSecret,
		Retention:         cfg.Feeds.Retention,
		DefaultCategories: collector.Categories(),
		RecommendLimit:    cfg.Server.RecommendLimit,
		Version:           revision,
		Debug:             opts.Debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeAdapters builds channel adapters for enabled channels. With dry run every disabled channel
// gets a log adapter. The returned func releases adapter resources.
func makeAdapters(cfg config.ChannelsConfig, timeout time.Duration) (adapters []dispatch.Adapter, closeFn func()) {
	enabled := map[domain.Channel]bool{}
	closeFn = func() {}

	if cfg.Email.Enabled {
		adapters = append(adapters, channel.NewEmail(channel.EmailParams{Host: cfg.Email.Host, Port: cfg.Email.Port,
			Username: cfg.Email.Username, Password: cfg.Email.Password, From: cfg.Email.From,
			TLS: cfg.Email.TLS, StartTLS: cfg.Email.StartTLS, Timeout: timeout}))
		enabled[domain.ChannelEmail] = true
	}
	if cfg.Telegram.Enabled {
		adapters = append(adapters, channel.NewTelegram(channel.TelegramParams{Token: cfg.Telegram.Token,
			APIURL: cfg.Telegram.APIURL, RPS: cfg.Telegram.RPS, Timeout: timeout}))
		enabled[domain.ChannelTelegram] = true
	}
	gateways := []struct {
		ch  domain.Channel
		cfg config.GatewayConfig
	}{{domain.ChannelSMS, cfg.SMS}, {domain.ChannelWhatsApp, cfg.WhatsApp}}
	for _, gw := range gateways {
		if !gw.cfg.Enabled {
			continue
		}
		adapters = append(adapters, channel.NewGateway(channel.GatewayParams{Channel: gw.ch, URL: gw.cfg.URL,
			Token: gw.cfg.Token, Sender: gw.cfg.Sender, RPS: gw.cfg.RPS, Timeout: timeout}))
		enabled[gw.ch] = true
	}
	if cfg.Push.Enabled {
		push := channel.NewPush(cfg.Push.Brokers, cfg.Push.Topic)
		adapters = append(adapters, push)
		enabled[domain.ChannelApp] = true
		closeFn = func() {
			if err := push.Close(); err != nil {
				lgr.Printf("[WARN] failed to close push writer: %v", err)
			}
		}
	}

	if cfg.DryRun {
		for _, ch := range domain.AllChannels {
			if !enabled[ch] {
				adapters = append(adapters, channel.NewLog(ch))
			}
		}
	}
	return adapters, closeFn
}

// telegramBot returns the telegram adapter to answer webhook callbacks, nil if telegram is disabled
func telegramBot(adapters []dispatch.Adapter) server.TelegramBot {
	for _, a := range adapters {
		if tg, ok := a.(*channel.Telegram); ok {
			return tg
		}
	}
	return nil
}

// secrets returns credentials to be masked in logs
func secrets(cfg config.ChannelsConfig) []string {
	var res []string
	for _, s := range []string{cfg.Email.Password, cfg.Telegram.Token, cfg.Telegram.WebhookSecret, cfg.SMS.Token, cfg.WhatsApp.Token} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
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
