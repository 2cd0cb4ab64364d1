package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rewoven/marketplace-backend/internal/config"
	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PointsServiceImpl implements PointsService
var _ PointsService = (*PointsServiceImpl)(nil)

// PointsServiceImpl is the points engine. It owns the balance and
// transaction collections: every mutation goes through record, inside a
// storage transaction, under the owning user's lock.
type PointsServiceImpl struct {
	balanceRepo     repositories.BalanceRepository
	transactionRepo repositories.TransactionRepository
	itemRepo        repositories.ItemRepository
	tx              repositories.TxRunner
	authorizer      Authorizer
	cfg             config.PointsConfig
	milestones      *MilestoneEvaluator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPointsService creates a new PointsServiceImpl
func NewPointsService(
	balanceRepo repositories.BalanceRepository,
	transactionRepo repositories.TransactionRepository,
	itemRepo repositories.ItemRepository,
	tx repositories.TxRunner,
	authorizer Authorizer,
	cfg config.PointsConfig,
) *PointsServiceImpl {
	return &PointsServiceImpl{
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		itemRepo:        itemRepo,
		tx:              tx,
		authorizer:      authorizer,
		cfg:             cfg,
		milestones:      NewMilestoneEvaluator(cfg.Milestones),
		locks:           make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing operations for one user.
// Operations on different users proceed in parallel.
func (s *PointsServiceImpl) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// getOrCreateBalance resolves the user's balance, creating a zeroed record
// on first use.
func (s *PointsServiceImpl) getOrCreateBalance(ctx context.Context, userID string) (*models.PointBalance, error) {
	balance, err := s.balanceRepo.FindByUserID(ctx, userID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	balance = &models.PointBalance{UserID: userID}
	if err := s.balanceRepo.Create(ctx, balance); err != nil {
		return nil, fmt.Errorf("failed to create balance: %w", err)
	}
	return balance, nil
}

// record appends a transaction and applies it to the owning balance. The
// caller is responsible for running it inside a storage transaction; the
// appended record and the balance update are never observable separately.
func (s *PointsServiceImpl) record(ctx context.Context, userID string, kind models.TransactionType, delta int, description, relatedItemID string) (*models.PointTransaction, *models.PointBalance, error) {
	balance, err := s.getOrCreateBalance(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	transaction := &models.PointTransaction{
		UserID:          userID,
		TransactionType: kind,
		PointsChange:    delta,
		Description:     description,
		RelatedItemID:   relatedItemID,
		CreatedAt:       time.Now(),
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	balance.TotalPoints += delta
	switch kind {
	case models.TransactionUpload:
		balance.UploadsCount++
	case models.TransactionRedeem:
		balance.RedeemsCount++
	case models.TransactionSwap:
		balance.SwapsCount++
	case models.TransactionAdminBonus, models.TransactionMilestone:
		// no action counter
	}
	if err := s.balanceRepo.Update(ctx, balance); err != nil {
		return nil, nil, fmt.Errorf("failed to update balance: %w", err)
	}

	return transaction, balance, nil
}

// earnUpload records the upload transaction and any milestone bonus the
// post-increment count triggers. Runs inside the caller's storage
// transaction.
func (s *PointsServiceImpl) earnUpload(ctx context.Context, userID, description string) (*models.PointTransaction, error) {
	transaction, balance, err := s.record(ctx, userID, models.TransactionUpload, s.cfg.UploadReward, description, "")
	if err != nil {
		return nil, err
	}

	bonus, ok := s.milestones.Evaluate(balance)
	if !ok {
		return transaction, nil
	}
	bonusDesc := fmt.Sprintf("Milestone bonus: %d uploads", balance.UploadsCount)
	if _, _, err := s.record(ctx, userID, models.TransactionMilestone, bonus, bonusDesc, ""); err != nil {
		return nil, err
	}
	slog.Info("Milestone bonus awarded", "userId", userID, "uploads", balance.UploadsCount, "bonus", bonus)
	return transaction, nil
}

// Earn records a positive transaction for an upload or swap event and, for
// uploads, consults the milestone table on the post-increment count.
func (s *PointsServiceImpl) Earn(ctx context.Context, userID string, kind models.TransactionType, description string) (*models.PointTransaction, error) {
	var delta int
	switch kind {
	case models.TransactionUpload:
		delta = s.cfg.UploadReward
	case models.TransactionSwap:
		delta = s.cfg.SwapReward
	default:
		return nil, ErrInvalidEarnKind
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var transaction *models.PointTransaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if kind == models.TransactionUpload {
			transaction, err = s.earnUpload(ctx, userID, description)
		} else {
			transaction, _, err = s.record(ctx, userID, kind, delta, description, "")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Points earned", "userId", userID, "kind", kind, "points", delta)
	return transaction, nil
}

// RecordUpload runs store and the upload earn inside one storage
// transaction, under the user's lock. The stored record and the award are
// never observable separately: if either write fails, both roll back.
func (s *PointsServiceImpl) RecordUpload(ctx context.Context, userID, description string, store func(ctx context.Context) error) (*models.PointTransaction, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var transaction *models.PointTransaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if store != nil {
			if err := store(ctx); err != nil {
				return err
			}
		}
		var err error
		transaction, err = s.earnUpload(ctx, userID, description)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Points earned", "userId", userID, "kind", models.TransactionUpload, "points", s.cfg.UploadReward)
	return transaction, nil
}

// Redeem spends points to claim an item. The balance check, the deduction
// and the item status transition succeed or fail together.
func (s *PointsServiceImpl) Redeem(ctx context.Context, userID, itemID string) (*models.PointTransaction, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var transaction *models.PointTransaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.getOrCreateBalance(ctx, userID)
		if err != nil {
			return err
		}
		if balance.TotalPoints < s.cfg.RedeemCost {
			slog.Warn("Redeem rejected", "userId", userID, "have", balance.TotalPoints, "need", s.cfg.RedeemCost)
			return ErrInsufficientPoints
		}

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

		transaction, _, err = s.record(ctx, userID, models.TransactionRedeem, -s.cfg.RedeemCost, "Redeemed: "+item.Title, itemID)
		if err != nil {
			return err
		}
		if err := s.itemRepo.UpdateStatus(ctx, itemID, models.ItemStatusRedeemed); err != nil {
			return fmt.Errorf("failed to mark item redeemed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Item redeemed", "userId", userID, "itemId", itemID, "cost", s.cfg.RedeemCost)
	return transaction, nil
}

// AdminAdjust applies an arbitrary signed delta to the target's balance.
// No sufficiency check applies; an adjustment may drive the balance
// negative.
func (s *PointsServiceImpl) AdminAdjust(ctx context.Context, actorID, targetUserID string, delta int, reason string) (*models.PointTransaction, error) {
	ok, err := s.authorizer.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check privilege: %w", err)
	}
	if !ok {
		slog.Warn("Adjustment rejected", "actorId", actorID, "targetUserId", targetUserID)
		return nil, ErrNotAuthorized
	}

	lock := s.userLock(targetUserID)
	lock.Lock()
	defer lock.Unlock()

	var transaction *models.PointTransaction
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		transaction, _, err = s.record(ctx, targetUserID, models.TransactionAdminBonus, delta, "Admin: "+reason, "")
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Points adjusted", "actorId", actorID, "targetUserId", targetUserID, "delta", delta)
	return transaction, nil
}

// CompleteSwap credits both participants of a finalized swap. Each user's
// recording is atomic on its own; the two are not a single cross-user
// transaction.
func (s *PointsServiceImpl) CompleteSwap(ctx context.Context, swapID, userA, userB string) error {
	description := "Completed swap: " + swapID
	for _, userID := range []string{userA, userB} {
		lock := s.userLock(userID)
		lock.Lock()
		err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			_, _, err := s.record(ctx, userID, models.TransactionSwap, s.cfg.SwapReward, description, "")
			return err
		})
		lock.Unlock()
		if err != nil {
			return fmt.Errorf("failed to credit swap for user %s: %w", userID, err)
		}
	}

	slog.Info("Swap completed", "swapId", swapID, "userA", userA, "userB", userB, "reward", s.cfg.SwapReward)
	return nil
}

// GetBalance returns the user's balance. A user with no transactions yet
// gets a zero-valued balance; nothing is persisted on read.
func (s *PointsServiceImpl) GetBalance(ctx context.Context, userID string) (*models.PointBalance, error) {
	balance, err := s.balanceRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.PointBalance{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}
	return balance, nil
}

// GetTransactions returns the user's transaction history, most recent
// first.
func (s *PointsServiceImpl) GetTransactions(ctx context.Context, userID string, limit int64) ([]*models.PointTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	transactions, err := s.transactionRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return transactions, nil
}
