package services

import (
	"context"
	"testing"

	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemAssignsIDAndStatus(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewItemService(&memItemRepo{s: store})

	item, err := svc.CreateItem(ctx, &models.Item{
		Title:       "Denim jacket",
		Description: "Lightly worn",
		Price:       25,
		Category:    "outerwear",
		Condition:   "good",
		SellerID:    "seller-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ItemID)
	assert.Equal(t, models.ItemStatusActive, item.Status)
	assert.Equal(t, 0, item.Views)
}

func TestGetItemCountsViews(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewItemService(&memItemRepo{s: store})
	seedActiveItem(store, "item-1", "Denim jacket")

	for i := 1; i <= 3; i++ {
		item, err := svc.GetItem(ctx, "item-1")
		require.NoError(t, err)
		assert.Equal(t, i, item.Views)
	}

	_, err := svc.GetItem(ctx, "ghost")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewItemService(&memItemRepo{s: store})
	seedActiveItem(store, "item-1", "Denim jacket")

	require.NoError(t, svc.RemoveItem(ctx, "item-1"))
	assert.Equal(t, models.ItemStatusRemoved, store.items["item-1"].Status)

	// A withdrawn listing cannot be withdrawn again.
	assert.ErrorIs(t, svc.RemoveItem(ctx, "item-1"), ErrItemNotActive)
	assert.ErrorIs(t, svc.RemoveItem(ctx, "ghost"), ErrItemNotFound)
}

func TestListItemsFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewItemService(&memItemRepo{s: store})
	seedActiveItem(store, "item-1", "Denim jacket")
	seedActiveItem(store, "item-2", "Wool coat")
	store.items["item-2"].Status = models.ItemStatusRedeemed

	active, err := svc.ListItems(ctx, repositories.ItemFilter{Status: models.ItemStatusActive}, 1, 20)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "item-1", active[0].ItemID)

	count, err := svc.CountItems(ctx, repositories.ItemFilter{Status: models.ItemStatusActive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListItemsSearch(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewItemService(&memItemRepo{s: store})

	jacket, err := svc.CreateItem(ctx, &models.Item{
		Title:       "Denim jacket",
		Description: "Lightly worn",
		Brand:       "Levi's",
		SellerID:    "seller-1",
	})
	require.NoError(t, err)
	coat, err := svc.CreateItem(ctx, &models.Item{
		Title:       "Wool coat",
		Description: "Warm winter layer",
		SellerID:    "seller-2",
	})
	require.NoError(t, err)

	// Title match, case-insensitive.
	hits, err := svc.ListItems(ctx, repositories.ItemFilter{Search: "JACKET"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, jacket.ItemID, hits[0].ItemID)

	// Brand match.
	hits, err = svc.ListItems(ctx, repositories.ItemFilter{Search: "levi"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, jacket.ItemID, hits[0].ItemID)

	// Description match.
	hits, err = svc.ListItems(ctx, repositories.ItemFilter{Search: "winter"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, coat.ItemID, hits[0].ItemID)

	// No match.
	hits, err = svc.ListItems(ctx, repositories.ItemFilter{Search: "sneaker"}, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, hits)

	count, err := svc.CountItems(ctx, repositories.ItemFilter{Search: "coat"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListItemsPagination(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewItemService(&memItemRepo{s: store})

	titles := []string{"Item 1", "Item 2", "Item 3", "Item 4", "Item 5"}
	for _, title := range titles {
		_, err := svc.CreateItem(ctx, &models.Item{Title: title, SellerID: "seller-1"})
		require.NoError(t, err)
	}

	// Newest first, two per page.
	page1, err := svc.ListItems(ctx, repositories.ItemFilter{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "Item 5", page1[0].Title)
	assert.Equal(t, "Item 4", page1[1].Title)

	page2, err := svc.ListItems(ctx, repositories.ItemFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "Item 3", page2[0].Title)
	assert.Equal(t, "Item 2", page2[1].Title)

	page3, err := svc.ListItems(ctx, repositories.ItemFilter{}, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "Item 1", page3[0].Title)

	// Past the end.
	page4, err := svc.ListItems(ctx, repositories.ItemFilter{}, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, page4)
}
