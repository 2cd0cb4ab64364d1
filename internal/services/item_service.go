package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ItemServiceImpl implements ItemService
var _ ItemService = (*ItemServiceImpl)(nil)

// ItemServiceImpl handles listing management. Redemption itself lives in
// the points engine; this service only owns the catalog side.
type ItemServiceImpl struct {
	itemRepo repositories.ItemRepository
}

// NewItemService creates a new ItemServiceImpl
func NewItemService(itemRepo repositories.ItemRepository) *ItemServiceImpl {
	return &ItemServiceImpl{itemRepo: itemRepo}
}

// CreateItem stores a new listing with a fresh public ID and active status.
func (s *ItemServiceImpl) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.ItemID = uuid.NewString()
	item.Status = models.ItemStatusActive
	item.Views = 0
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	slog.Info("Item created", "itemId", item.ItemID, "sellerId", item.SellerID, "title", item.Title)
	return item, nil
}

// GetItem returns a listing and bumps its view counter.
func (s *ItemServiceImpl) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := s.itemRepo.FindByItemID(ctx, itemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	// View counting is best effort; a lost increment is not worth failing
	// the read.
	if err := s.itemRepo.IncrementViews(ctx, itemID); err != nil {
		slog.Warn("Failed to count view", "itemId", itemID, "error", err)
	} else {
		item.Views++
	}
	return item, nil
}

// ListItems returns listings matching the filter, newest first.
func (s *ItemServiceImpl) ListItems(ctx context.Context, filter repositories.ItemFilter, page, limit int) ([]*models.Item, error) {
	items, err := s.itemRepo.Find(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// CountItems returns the number of listings matching the filter.
func (s *ItemServiceImpl) CountItems(ctx context.Context, filter repositories.ItemFilter) (int64, error) {
	count, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// RemoveItem withdraws an active listing from the catalog.
func (s *ItemServiceImpl) RemoveItem(ctx context.Context, itemID string) error {
	item, err := s.itemRepo.FindByItemID(ctx, itemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to load item: %w", err)
	}
	if item.Status != models.ItemStatusActive {
		return ErrItemNotActive
	}
	if err := s.itemRepo.UpdateStatus(ctx, itemID, models.ItemStatusRemoved); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	slog.Info("Item removed", "itemId", itemID)
	return nil
}
