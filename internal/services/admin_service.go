package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AdminServiceImpl implements AdminService
var _ AdminService = (*AdminServiceImpl)(nil)

// AdminServiceImpl handles account and order management.
type AdminServiceImpl struct {
	userRepo  repositories.AdminUserRepository
	orderRepo repositories.OrderRepository
}

// NewAdminService creates a new AdminServiceImpl
func NewAdminService(userRepo repositories.AdminUserRepository, orderRepo repositories.OrderRepository) *AdminServiceImpl {
	return &AdminServiceImpl{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// GetUsers retrieves all accounts
func (s *AdminServiceImpl) GetUsers(ctx context.Context) ([]*models.AdminUser, error) {
	return s.userRepo.FindAll(ctx)
}

// CreateUser registers a new account with a hashed password.
func (s *AdminServiceImpl) CreateUser(ctx context.Context, name, email, password, role, details string) (*models.AdminUser, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("account with email %s already exists", email)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = models.RoleCustomer
	}

	user := &models.AdminUser{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Details:      details,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("Account created", "email", email, "role", role)
	return user, nil
}

// DeleteUser removes an account
func (s *AdminServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.Delete(ctx, id)
}

// PromoteUser grants an account the Admin role.
func (s *AdminServiceImpl) PromoteUser(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("account not found")
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	user.Role = models.RoleAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to promote account: %w", err)
	}

	slog.Info("Account promoted", "email", user.Email)
	return user, nil
}

// SearchUsers finds accounts matching the query
func (s *AdminServiceImpl) SearchUsers(ctx context.Context, query string) ([]*models.AdminUser, error) {
	return s.userRepo.Search(ctx, query)
}

// GetOrders retrieves all orders
func (s *AdminServiceImpl) GetOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

// CreateOrder records a new pending order
func (s *AdminServiceImpl) CreateOrder(ctx context.Context, userID, itemID string) (*models.Order, error) {
	order := &models.Order{
		UserID: userID,
		ItemID: itemID,
		Status: models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// UpdateOrderStatus moves an order through its fulfilment states.
func (s *AdminServiceImpl) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusCompleted:
	default:
		return fmt.Errorf("invalid order status %q", status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("order not found")
		}
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}
