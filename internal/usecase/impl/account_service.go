// Package impl contains the implementations of the application's use cases.
package impl

import (
	"context"
	"log/slog"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register orchestrates the complete account registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Starting account registration", "username", input.Username)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	var registeredUser *entity.User

	// Execute the entire creation process within a single database transaction
	// so the uniqueness checks and the insert are genuinely atomic.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// 1. Duplicate username and duplicate email are distinct conflicts.
		usernameTaken, err := userRepo.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return errors.Wrap(err, "failed to check username availability")
		}
		if usernameTaken {
			return domainerrors.ErrUsernameTaken.WrapMessage("account registration failed")
		}

		emailTaken, err := userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email availability")
		}
		if emailTaken {
			return domainerrors.ErrEmailTaken.WrapMessage("account registration failed")
		}

		// 2. Create the User entity with the salted digest, never the plaintext.
		newUser := &entity.User{
			Username:       input.Username,
			Email:          input.Email,
			PasswordDigest: hashedPassword,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.WithStack(err)
		}
		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to execute account registration transaction", "error", err, "username", input.Username)

		return nil, errors.Wrap(err, "failed to execute account registration transaction")
	}
	srv.logger.Debug("Account registered successfully", "userID", registeredUser.ID)

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login orchestrates the account login process. An unknown username and a
// password mismatch both surface as the same invalid-credentials outcome;
// only the log entry records which one happened.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting account login", "username", input.Username)

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login failed: unknown username", "username", input.Username)

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	if !srv.hasher.Check(input.Password, user.PasswordDigest) {
		srv.logger.Warn("Login failed: password mismatch", "username", input.Username)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(user.ID, user.Username, user.PasswordDigest)
	if err != nil {
		srv.logger.Error("Failed to issue token", "error", err, "userID", user.ID)

		return nil, errors.Wrap(err, "failed to issue token")
	}
	srv.logger.Debug("Account logged in successfully", "userID", user.ID)

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresIn: int64(srv.tokenService.TokenTTL().Seconds()),
		User:      user,
	}, nil
}
