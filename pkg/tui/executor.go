// Package tui provides the terminal interface for browsing and editing
// memos.
//
// The TUI codebase is split into multiple files:
// - executor.go: program lifecycle and store watching
// - model.go: root model that owns all memo state
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and layout
// - sidebar.go: memo list panel
// - mainarea.go: content editor panel
// - commands.go: repository calls run as tea.Cmds
// - keys.go, styles.go: key bindings and colors
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/memo"
	"github.com/entrhq/memo/pkg/memo/store"
)

// Options configures the TUI.
type Options struct {
	// AutoSave persists the buffer after every edit.
	AutoSave bool

	// FetchOnSelect loads the stored body after a memo is selected.
	FetchOnSelect bool

	// WatchPath, when set, reloads the collection whenever this file
	// changes on disk.
	WatchPath string

	// StoreLabel is shown in the header.
	StoreLabel string

	// Logger receives debug output. Nil discards it.
	Logger *logging.Logger
}

// Executor runs the memo TUI against a repository.
type Executor struct {
	repo    memo.Repository
	opts    Options
	log     *logging.Logger
	program *tea.Program
}

// NewExecutor creates a new TUI executor.
func NewExecutor(repo memo.Repository, opts Options) *Executor {
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger("tui")
	}
	return &Executor{
		repo: repo,
		opts: opts,
		log:  log,
	}
}

// Run loads the initial collection, starts the TUI and blocks until the
// user quits or ctx is cancelled.
func (e *Executor) Run(ctx context.Context) error {
	e.log.Infof("TUI executor starting")

	memos, err := e.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load memos: %w", err)
	}
	e.log.Infof("Loaded %d memos", len(memos))

	m := newModel(ctx, e.repo, memos, e.opts, e.log)
	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	if e.opts.WatchPath != "" {
		go func() {
			err := store.Watch(watchCtx, e.opts.WatchPath,
				func() { e.program.Send(storeChangedMsg{}) },
				func(err error) { e.log.Warnf("Store watcher error: %v", err) },
			)
			if err != nil {
				e.log.Errorf("Store watcher stopped: %v", err)
			}
		}()
	}

	if _, err := e.program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	e.log.Infof("TUI executor stopped")
	return nil
}
