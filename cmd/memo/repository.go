package main

import (
	"context"
	"fmt"

	"github.com/entrhq/memo/pkg/config"
	"github.com/entrhq/memo/pkg/memo"
	"github.com/entrhq/memo/pkg/memo/store"
)

// openRepository picks the backing store from cfg and returns it along
// with the label shown in the TUI header.
//
// Without a store path memos live in memory and start from the sample
// collection when seeding is on. A file store is seeded only while empty.
func openRepository(ctx context.Context, cfg *config.Config) (memo.Repository, string, error) {
	if cfg.Store.Path == "" {
		var initial []memo.Memo
		if cfg.SeedData {
			initial = memo.SeedMemos()
		}
		return memo.NewMemoryStore(initial), "in-memory", nil
	}

	fs, err := store.NewFileStore(cfg.Store.Path)
	if err != nil {
		return nil, "", err
	}

	if cfg.SeedData {
		if err := seedIfEmpty(ctx, fs); err != nil {
			return nil, "", err
		}
	}
	return fs, fs.Path(), nil
}

func seedIfEmpty(ctx context.Context, repo memo.Repository) error {
	existing, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load memos: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, m := range memo.SeedMemos() {
		if _, err := repo.Create(ctx, m.Title, m.Content); err != nil {
			return fmt.Errorf("failed to seed memo %q: %w", m.Title, err)
		}
	}
	return nil
}
