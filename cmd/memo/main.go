// Package main provides the memo terminal application: a memo list on the
// left and an editor for the selected memo on the right.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/memo/pkg/config"
	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/memo"
	"github.com/entrhq/memo/pkg/tui"
)

const version = "0.1.0"

// Flags holds the command line options. Boolean overrides only apply when
// the flag was set explicitly.
type Flags struct {
	ConfigPath  string
	StorePath   string
	Seed        bool
	AutoSave    bool
	Watch       bool
	List        bool
	Match       string
	InitConfig  bool
	ShowVersion bool

	set map[string]bool
}

func main() {
	flags := parseFlags()

	if flags.ShowVersion {
		fmt.Printf("memo v%s\n", version)
		return
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if flags.InitConfig {
		if err := config.Save(flags.ConfigPath, cfg); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Wrote %s\n", flags.ConfigPath)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if runErr := run(ctx, cfg, flags); runErr != nil {
		cancel()
		log.Fatalf("Application error: %v", runErr)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *Flags {
	f := &Flags{set: make(map[string]bool)}

	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = "memo.yaml"
	}

	flag.StringVar(&f.ConfigPath, "config", defaultConfig, "Path to the YAML config file")
	flag.StringVar(&f.StorePath, "store", "", "Path to the JSON memo file (default: in-memory)")
	flag.BoolVar(&f.Seed, "seed", true, "Start with the sample memos when the store is empty")
	flag.BoolVar(&f.AutoSave, "auto-save", true, "Save the editor buffer after every edit")
	flag.BoolVar(&f.Watch, "watch", false, "Reload memos when the store file changes")
	flag.BoolVar(&f.List, "list", false, "Print memos and exit")
	flag.StringVar(&f.Match, "match", "", "Glob pattern on titles for -list (e.g. 'work*')")
	flag.BoolVar(&f.InitConfig, "init-config", false, "Write the effective config to -config and exit")
	flag.BoolVar(&f.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "memo - browse and edit memos in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: memo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  memo                                  # Sample memos, kept in memory\n")
		fmt.Fprintf(os.Stderr, "  memo -store ~/memos.json -watch\n")
		fmt.Fprintf(os.Stderr, "  memo -store ~/memos.json -list -match 'work*'\n")
	}

	flag.Parse()
	flag.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(f *Flags) (*config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *Flags) apply(cfg *config.Config) {
	if f.set["store"] {
		cfg.Store.Path = f.StorePath
	}
	if f.set["seed"] {
		cfg.SeedData = f.Seed
	}
	if f.set["auto-save"] {
		cfg.AutoSave = f.AutoSave
	}
	if f.set["watch"] {
		cfg.Store.Watch = f.Watch
	}
}

// run executes the main application logic
func run(ctx context.Context, cfg *config.Config, flags *Flags) error {
	logger, err := logging.NewLogger("cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	logger.Infof("memo v%s starting (store=%q seed=%t auto_save=%t watch=%t)",
		version, cfg.Store.Path, cfg.SeedData, cfg.AutoSave, cfg.Store.Watch)

	repo, label, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}

	if flags.List {
		return listMemos(ctx, os.Stdout, repo, flags.Match)
	}

	tuiLogger := newTUILogger()
	defer tuiLogger.Close()

	opts := tui.Options{
		AutoSave:      cfg.AutoSave,
		FetchOnSelect: cfg.FetchOnSelect,
		StoreLabel:    label,
		Logger:        tuiLogger,
	}
	if cfg.Store.Watch {
		opts.WatchPath = cfg.Store.Path
	}

	executor := tui.NewExecutor(repo, opts)
	if err := executor.Run(ctx); err != nil {
		return fmt.Errorf("executor error: %w", err)
	}

	logger.Infof("memo stopped")
	return nil
}

// newTUILogger returns the file logger for the TUI, or a discarding one when
// file logging is unavailable. A stderr fallback would draw over the alt
// screen; the cli logger has already reported the failure.
func newTUILogger() *logging.Logger {
	l, err := logging.NewLogger("tui")
	if err != nil {
		return logging.NewNopLogger("tui")
	}
	return l
}

// listMemos writes one "id<TAB>title" line per memo whose title matches
// pattern. An empty pattern lists everything.
func listMemos(ctx context.Context, w io.Writer, l memo.Loader, pattern string) error {
	memos, err := l.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load memos: %w", err)
	}

	matched, err := memo.FilterByTitle(memos, pattern)
	if err != nil {
		return err
	}

	for _, m := range matched {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", m.ID, m.Title); err != nil {
			return err
		}
	}
	return nil
}
