package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/baldecash-team/baldecash-sub002/internal/selection"
)

// Kind names one of the persisted selection lists.
type Kind string

const (
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
	KindCompare  Kind = "compare"
)

const selectionTTL = 30 * 24 * time.Hour

// SelectionStore persists selections per session. Every accepted mutation is
// a full-state overwrite, never a delta.
type SelectionStore struct {
	provider Provider
	logger   *slog.Logger
}

func NewSelectionStore(provider Provider, logger *slog.Logger) *SelectionStore {
	return &SelectionStore{
		provider: provider,
		logger:   logger,
	}
}

// Load reads one selection list. A missing or corrupt entry loads as empty;
// a malformed persisted value must never break session start.
func (s *SelectionStore) Load(ctx context.Context, sessionID string, kind Kind) selection.Selection {
	raw, err := s.provider.Get(ctx, selectionKey(sessionID, kind))
	if errors.Is(err, ErrNotFound) {
		return selection.Selection{}
	}
	if err != nil {
		s.logger.Warn("failed to load selection", "kind", kind, "error", err)
		return selection.Selection{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("discarding corrupt selection entry", "kind", kind, "error", err)
		return selection.Selection{}
	}
	return selection.Selection{IDs: ids}
}

// Save overwrites one selection list.
func (s *SelectionStore) Save(ctx context.Context, sessionID string, kind Kind, sel selection.Selection) error {
	ids := sel.IDs
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	if err := s.provider.Set(ctx, selectionKey(sessionID, kind), string(raw), selectionTTL); err != nil {
		return fmt.Errorf("failed to persist selection: %w", err)
	}
	return nil
}

// Clear removes one selection list.
func (s *SelectionStore) Clear(ctx context.Context, sessionID string, kind Kind) error {
	return s.provider.Delete(ctx, selectionKey(sessionID, kind))
}

func selectionKey(sessionID string, kind Kind) string {
	return fmt.Sprintf("%s:%s", sessionID, kind)
}
