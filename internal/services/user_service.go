package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/recipe-helper/internal/database"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error) {
	user := &database.User{}
	result := s.db.WithContext(ctx).
		Where(database.User{TelegramID: telegramID}).
		Attrs(database.User{Username: username, FirstName: firstName, LastName: lastName}).
		FirstOrCreate(user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to register user: %w", result.Error)
	}

	return user, nil
}

func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user", telegramID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// SetCredentials stores the email and a bcrypt hash of password.
func (s *UserService) SetCredentials(ctx context.Context, userID uint, email, password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError("WEAK_PASSWORD",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	result := s.db.WithContext(ctx).Model(&database.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"email": email, "password_hash": string(hash)})
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user", userID)
	}
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (s *UserService) CheckPassword(ctx context.Context, userID uint, password string) (bool, error) {
	var user database.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.NewNotFoundError("user", userID)
		}
		return false, apperrors.NewDatabaseError(err)
	}
	if user.PasswordHash == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	return true, nil
}
