package usecase

import (
	"context"

	"viva/internal/domain/entity"
	"viva/internal/domain/repository"
	"viva/pkg/logger"
)

type UserUseCase struct {
	userRepo  repository.UserRepository
	directory UserDirectory
}

func NewUserUseCase(userRepo repository.UserRepository, directory UserDirectory) *UserUseCase {
	return &UserUseCase{
		userRepo:  userRepo,
		directory: directory,
	}
}

// GetUserProfile returns the profile document, filling the email from the
// identity provider when the document lacks it.
func (uc *UserUseCase) GetUserProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Email == "" && uc.directory != nil {
		email, err := uc.directory.GetUserEmail(ctx, userID)
		if err != nil {
			logger.Warn("Could not read email for user %s: %v", userID, err)
		} else {
			user.Email = email
		}
	}

	return user, nil
}
