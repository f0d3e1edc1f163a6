package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// testLogger returns a logger that discards all output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repository mocks ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*entity.Item); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *mockItemRepository) Update(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *mockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockItemRepository) FindByCountry(ctx context.Context, country string) ([]*entity.Item, error) {
	args := m.Called(ctx, country)
	if items, ok := args.Get(0).([]*entity.Item); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemRepository) FindByCity(ctx context.Context, city string) ([]*entity.Item, error) {
	args := m.Called(ctx, city)
	if items, ok := args.Get(0).([]*entity.Item); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemRepository) FindByCategory(ctx context.Context, category string) ([]*entity.Item, error) {
	args := m.Called(ctx, category)
	if items, ok := args.Get(0).([]*entity.Item); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemRepository) FindByDate(ctx context.Context, date string) ([]*entity.Item, error) {
	args := m.Called(ctx, date)
	if items, ok := args.Get(0).([]*entity.Item); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

// --- transaction fakes ---

// stubRepoFactory hands out the fixed repositories above, standing in for
// transaction-bound repositories.
type stubRepoFactory struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }
func (f *stubRepoFactory) ItemRepo() repository.ItemRepository { return f.itemRepo }

// stubTxManager runs the transactional function directly against the stub
// factory, with no real transaction semantics.
type stubTxManager struct {
	factory repository.RepositoryFactory
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- service mocks ---

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(userID uuid.UUID, username, passwordDigest string) (string, error) {
	args := m.Called(userID, username, passwordDigest)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) TokenTTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishItemEvent(ctx context.Context, event *service.ItemEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

type mockQRCodeService struct {
	mock.Mock
}

func (m *mockQRCodeService) GenerateItemQR(itemID uuid.UUID) ([]byte, error) {
	args := m.Called(itemID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockQRCodeService) ParseItemQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)

	return args.Get(0).(uuid.UUID), args.Error(1)
}
