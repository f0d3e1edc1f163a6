package impl

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	userRepo     *mockUserRepository
	hasher       *mockPasswordHasher
	tokenService *mockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	userRepo := &mockUserRepository{}
	hasher := &mockPasswordHasher{}
	tokenService := &mockTokenService{}
	txManager := &stubTxManager{factory: &stubRepoFactory{userRepo: userRepo}}

	service := NewAccountService(txManager, userRepo, hasher, tokenService, testLogger())

	return accountServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret").Return("$2a$06$digest", nil)
	fx.userRepo.On("ExistsByUsername", ctx, "walter").Return(false, nil)
	fx.userRepo.On("ExistsByEmail", ctx, "walter@example.com").Return(false, nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "walter",
		Email:    "walter@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "walter", output.User.Username)
	assert.Equal(t, "walter@example.com", output.User.Email)
	assert.Equal(t, "$2a$06$digest", output.User.PasswordDigest)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
	fx.userRepo.AssertExpectations(t)
}

func TestAccountService_Register_UsernameTaken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret").Return("$2a$06$digest", nil)
	fx.userRepo.On("ExistsByUsername", ctx, "walter").Return(true, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "walter",
		Email:    "walter@example.com",
		Password: "s3cret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret").Return("$2a$06$digest", nil)
	fx.userRepo.On("ExistsByUsername", ctx, "walter").Return(false, nil)
	fx.userRepo.On("ExistsByEmail", ctx, "walter@example.com").Return(true, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "walter",
		Email:    "walter@example.com",
		Password: "s3cret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret").Return("", errors.New("bcrypt exploded"))

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "walter",
		Email:    "walter@example.com",
		Password: "s3cret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	userID := uuid.New()
	user := &entity.User{
		ID:             userID,
		Username:       "walter",
		Email:          "walter@example.com",
		PasswordDigest: "$2a$06$digest",
	}

	fx.userRepo.On("FindByUsername", ctx, "walter").Return(user, nil)
	fx.hasher.On("Check", "s3cret", "$2a$06$digest").Return(true)
	fx.tokenService.On("Issue", userID, "walter", "$2a$06$digest").Return("signed.token.string", nil)
	fx.tokenService.On("TokenTTL").Return(24 * time.Hour)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "walter",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.token.string", output.Token)
	assert.Equal(t, int64(86400), output.ExpiresIn)
	assert.Equal(t, user, output.User)
}

func TestAccountService_Login_UnknownUsername(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByUsername", ctx, "nobody").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "nobody",
		Password: "s3cret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	fx.tokenService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:             uuid.New(),
		Username:       "walter",
		PasswordDigest: "$2a$06$digest",
	}

	fx.userRepo.On("FindByUsername", ctx, "walter").Return(user, nil)
	fx.hasher.On("Check", "wrong", "$2a$06$digest").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "walter",
		Password: "wrong",
	})

	require.Error(t, err)
	// Unknown username and wrong password collapse into the same outcome.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	fx.tokenService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}
