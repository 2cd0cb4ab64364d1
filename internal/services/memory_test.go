package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errStorageDown = errors.New("storage down")

// memoryStore backs the fake repositories used in service tests. Its
// transaction runner takes a snapshot before running the callback and
// restores it on error, mirroring the commit-or-nothing guarantee of the
// real session runner.
type memoryStore struct {
	mu       sync.Mutex
	balances map[string]*models.PointBalance
	txns     []*models.PointTransaction
	items    map[string]*models.Item
	images   map[string]*models.ImageMetadata

	failUpdateStatus bool
	failTxnCreate    bool
	failImageCreate  bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		balances: make(map[string]*models.PointBalance),
		items:    make(map[string]*models.Item),
		images:   make(map[string]*models.ImageMetadata),
	}
}

type storeSnapshot struct {
	balances map[string]*models.PointBalance
	txns     []*models.PointTransaction
	items    map[string]*models.Item
	images   map[string]*models.ImageMetadata
}

func (s *memoryStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		balances: make(map[string]*models.PointBalance, len(s.balances)),
		txns:     make([]*models.PointTransaction, len(s.txns)),
		items:    make(map[string]*models.Item, len(s.items)),
		images:   make(map[string]*models.ImageMetadata, len(s.images)),
	}
	for k, v := range s.balances {
		c := *v
		snap.balances[k] = &c
	}
	for i, t := range s.txns {
		c := *t
		snap.txns[i] = &c
	}
	for k, v := range s.items {
		c := *v
		snap.items[k] = &c
	}
	for k, v := range s.images {
		c := *v
		snap.images[k] = &c
	}
	return snap
}

// WithTransaction implements repositories.TxRunner
func (s *memoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.balances, s.txns, s.items, s.images = snap.balances, snap.txns, snap.items, snap.images
		s.mu.Unlock()
		return err
	}
	return nil
}

type memBalanceRepo struct{ s *memoryStore }

func (r *memBalanceRepo) Create(ctx context.Context, balance *models.PointBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	balance.ID = primitive.NewObjectID()
	balance.CreatedAt = time.Now()
	balance.UpdatedAt = time.Now()
	c := *balance
	r.s.balances[balance.UserID] = &c
	return nil
}

func (r *memBalanceRepo) FindByUserID(ctx context.Context, userID string) (*models.PointBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	balance, ok := r.s.balances[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c := *balance
	return &c, nil
}

func (r *memBalanceRepo) Update(ctx context.Context, balance *models.PointBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	balance.UpdatedAt = time.Now()
	c := *balance
	r.s.balances[balance.UserID] = &c
	return nil
}

type memTransactionRepo struct{ s *memoryStore }

func (r *memTransactionRepo) Create(ctx context.Context, transaction *models.PointTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failTxnCreate {
		return errStorageDown
	}
	transaction.ID = primitive.NewObjectID()
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	c := *transaction
	r.s.txns = append(r.s.txns, &c)
	return nil
}

func (r *memTransactionRepo) FindByUserID(ctx context.Context, userID string, limit int64) ([]*models.PointTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	transactions := []*models.PointTransaction{}
	// Most recent first: walk the append-only log backwards.
	for i := len(r.s.txns) - 1; i >= 0 && int64(len(transactions)) < limit; i-- {
		if r.s.txns[i].UserID == userID {
			c := *r.s.txns[i]
			transactions = append(transactions, &c)
		}
	}
	return transactions, nil
}

type memItemRepo struct{ s *memoryStore }

func (r *memItemRepo) Create(ctx context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	c := *item
	r.s.items[item.ItemID] = &c
	return nil
}

func (r *memItemRepo) FindByItemID(ctx context.Context, itemID string) (*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[itemID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c := *item
	return &c, nil
}

// matchesSearch mirrors the case-insensitive title/description/brand match
// of the real repository.
func matchesSearch(item *models.Item, search string) bool {
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Description), q) ||
		strings.Contains(strings.ToLower(item.Brand), q)
}

func (r *memItemRepo) Find(ctx context.Context, filter repositories.ItemFilter, page, limit int) ([]*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := []*models.Item{}
	for _, item := range r.s.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.SellerID != "" && item.SellerID != filter.SellerID {
			continue
		}
		if filter.Search != "" && !matchesSearch(item, filter.Search) {
			continue
		}
		c := *item
		matched = append(matched, &c)
	}
	// Newest first. ObjectIDs generated within one process are monotonic,
	// so their hex order stands in for the createdAt sort.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []*models.Item{}, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *memItemRepo) UpdateStatus(ctx context.Context, itemID string, status models.ItemStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUpdateStatus {
		return errStorageDown
	}
	item, ok := r.s.items[itemID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	item.Status = status
	return nil
}

func (r *memItemRepo) IncrementViews(ctx context.Context, itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[itemID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	item.Views++
	return nil
}

func (r *memItemRepo) Count(ctx context.Context, filter repositories.ItemFilter) (int64, error) {
	items, err := r.Find(ctx, filter, 1, 1<<30)
	return int64(len(items)), err
}

type memImageRepo struct{ s *memoryStore }

func (r *memImageRepo) Create(ctx context.Context, image *models.ImageMetadata) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failImageCreate {
		return errStorageDown
	}
	image.ID = primitive.NewObjectID()
	image.UploadedAt = time.Now()
	c := *image
	r.s.images[image.ImageID] = &c
	return nil
}

func (r *memImageRepo) FindByImageID(ctx context.Context, imageID string) (*models.ImageMetadata, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	image, ok := r.s.images[imageID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c := *image
	return &c, nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*models.Category
	failFind   bool
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[string]*models.Category)}
}

func (r *memCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	c := *category
	r.categories[category.Name] = &c
	return nil
}

func (r *memCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFind {
		return nil, errStorageDown
	}
	category, ok := r.categories[name]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c := *category
	return &c, nil
}

func (r *memCategoryRepo) FindAll(ctx context.Context) ([]*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	categories := []*models.Category{}
	for _, category := range r.categories {
		c := *category
		categories = append(categories, &c)
	}
	return categories, nil
}

// staticAuthorizer grants admin privilege to a fixed set of actors.
type staticAuthorizer struct {
	admins map[string]bool
}

func (a *staticAuthorizer) IsAdmin(ctx context.Context, actorID string) (bool, error) {
	return a.admins[actorID], nil
}
