package cmd

import (
	"fmt"

	"fabswap/internal/config"
	"fabswap/internal/db"
	"fabswap/internal/models"
	"fabswap/internal/swap"
)

// buildSwapper wires a swapper over the job store, rehydrating the undo
// history from the persisted window and persisting it back after every
// mutation through the change notification.
func buildSwapper(database *db.DB) (*swap.Swapper, error) {
	history := swap.NewHistory()

	records, err := database.LoadHistory(swap.DefaultHistoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("load swap history: %w", err)
	}
	for _, rec := range records {
		history.Push(rec)
	}

	// Registered after rehydration so replaying records does not rewrite
	// the table it was just read from.
	history.OnChange(func() {
		// Best effort: a persistence hiccup must not fail the edit itself.
		_ = database.SaveHistory(history.Records())
	})

	return swap.NewSwapper(database, database, database, refreshSink{db: database}, history), nil
}

// refreshSink is the CLI's stand-in for a view refresh: changed items get
// their updated_at bumped so inspection commands reflect the edit.
type refreshSink struct {
	db *db.DB
}

func (s refreshSink) NotifyChanged(items []*models.PlacedItem) {
	for _, item := range items {
		if item == nil {
			continue
		}
		_ = s.db.TouchItem(item.ID)
	}
}

// resolveService returns the service to operate in: the --service flag when
// given, else the configured active service.
func resolveService(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return "", err
	}
	if cfg.ActiveService == "" {
		return "", fmt.Errorf("no service selected: pass --service or run 'fab service <name>'")
	}
	return cfg.ActiveService, nil
}
