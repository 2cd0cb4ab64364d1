package services

import (
	"context"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rewoven/marketplace-backend/internal/config"
	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type memAdminUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.AdminUser
}

func newMemAdminUserRepo() *memAdminUserRepo {
	return &memAdminUserRepo{users: make(map[primitive.ObjectID]*models.AdminUser)}
}

func (r *memAdminUserRepo) Create(ctx context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *memAdminUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c := *user
	return &c, nil
}

func (r *memAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			c := *user
			return &c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memAdminUserRepo) Update(ctx context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *memAdminUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memAdminUserRepo) FindAll(ctx context.Context) ([]*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []*models.AdminUser{}
	for _, user := range r.users {
		c := *user
		users = append(users, &c)
	}
	return users, nil
}

func (r *memAdminUserRepo) Search(ctx context.Context, query string) ([]*models.AdminUser, error) {
	return r.FindAll(ctx)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: 3600,
		},
	}
}

func seedAccount(t *testing.T, repo *memAdminUserRepo, email, password, role string) *models.AdminUser {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.AdminUser{
		Name:         "Test Account",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLoginIssuesTokenWithRole(t *testing.T) {
	ctx := context.Background()
	repo := newMemAdminUserRepo()
	cfg := testAuthConfig()
	svc := NewAuthService(repo, cfg)

	account := seedAccount(t, repo, "ops@rewoven.io", "s3cure-pass", models.RoleAdmin)

	tokenString, err := svc.Login(ctx, "ops@rewoven.io", "s3cure-pass")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, account.ID.Hex(), claims["sub"])
	assert.Equal(t, "ops@rewoven.io", claims["email"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newMemAdminUserRepo()
	svc := NewAuthService(repo, testAuthConfig())

	seedAccount(t, repo, "ops@rewoven.io", "s3cure-pass", models.RoleAdmin)

	_, err := svc.Login(ctx, "ops@rewoven.io", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@rewoven.io", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newMemAdminUserRepo()
	svc := NewAuthService(repo, testAuthConfig())

	admin := seedAccount(t, repo, "ops@rewoven.io", "pw-admin-1", models.RoleAdmin)
	customer := seedAccount(t, repo, "shopper@rewoven.io", "pw-cust-1", models.RoleCustomer)

	ok, err := svc.IsAdmin(ctx, admin.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdmin(ctx, customer.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown or malformed actor IDs are simply not admins.
	ok, err = svc.IsAdmin(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsAdmin(ctx, "not-an-object-id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminAdjustThroughAuthService(t *testing.T) {
	ctx := context.Background()
	repo := newMemAdminUserRepo()
	authService := NewAuthService(repo, testAuthConfig())

	admin := seedAccount(t, repo, "ops@rewoven.io", "pw-admin-1", models.RoleAdmin)
	customer := seedAccount(t, repo, "shopper@rewoven.io", "pw-cust-1", models.RoleCustomer)

	store := newMemoryStore()
	points := newTestEngine(store, authService, testPointsConfig())

	_, err := points.AdminAdjust(ctx, customer.ID.Hex(), "u1", 100, "self-serve bonus")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	txn, err := points.AdminAdjust(ctx, admin.ID.Hex(), "u1", 100, "goodwill")
	require.NoError(t, err)
	assert.Equal(t, 100, txn.PointsChange)
}
