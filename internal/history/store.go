package history

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fatihahmukti-create/Marko-AI/internal/models"
	"github.com/fatihahmukti-create/Marko-AI/internal/repository"
)

// BlobStore persists one serialized history list per user. Load returns
// repository.ErrNotFound when the user has no entry yet.
type BlobStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]byte, error)
	Save(ctx context.Context, userID uuid.UUID, blob []byte) error
}

// Store keeps generated plans per user, newest first. The whole list is
// re-serialized and written on every mutation; items are immutable once
// created. A corrupt blob degrades silently to an empty history.
type Store struct {
	blobs  BlobStore
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates the history store.
func NewStore(blobs BlobStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		blobs:  blobs,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the user's history, newest first. Missing or unparseable
// blobs yield an empty list rather than an error.
func (s *Store) List(ctx context.Context, userID uuid.UUID) ([]models.HistoryItem, error) {
	blob, err := s.blobs.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []models.HistoryItem{}, nil
		}
		return nil, err
	}

	var items []models.HistoryItem
	if err := json.Unmarshal(blob, &items); err != nil {
		s.logger.Warn("failed to parse history, falling back to empty",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return []models.HistoryItem{}, nil
	}

	return items, nil
}

// Add prepends a new item built from a successful generation and rewrites the
// whole list. The id is the creation time in milliseconds, kept opaque.
func (s *Store) Add(ctx context.Context, userID uuid.UUID, input models.BusinessInput, plan models.MarketingPlan) (models.HistoryItem, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return models.HistoryItem{}, err
	}

	now := s.now().UTC()
	item := models.HistoryItem{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		Date:         now.Format(time.RFC3339),
		BusinessName: input.BusinessName,
		Industry:     input.Industry,
		Plan:         plan,
	}

	updated := append([]models.HistoryItem{item}, items...)
	if err := s.save(ctx, userID, updated); err != nil {
		return models.HistoryItem{}, err
	}

	return item, nil
}

// Get returns one history item by id.
func (s *Store) Get(ctx context.Context, userID uuid.UUID, id string) (models.HistoryItem, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return models.HistoryItem{}, err
	}

	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}

	return models.HistoryItem{}, repository.ErrNotFound
}

// Delete removes exactly one item by id, preserving the order of the rest.
// Deleting an unknown id is a no-op and does not rewrite the blob.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	kept := items[:0:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	if len(kept) == len(items) {
		return nil
	}

	return s.save(ctx, userID, kept)
}

func (s *Store) save(ctx context.Context, userID uuid.UUID, items []models.HistoryItem) error {
	if items == nil {
		items = []models.HistoryItem{}
	}

	blob, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return s.blobs.Save(ctx, userID, blob)
}
