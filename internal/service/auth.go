package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/recipe-api/internal/models"
	"github.com/plateful/recipe-api/internal/types"
)

// AuthService owns accounts and their bearer tokens.
type AuthService struct {
	db         *gorm.DB
	bcryptCost int
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db, bcryptCost: bcrypt.DefaultCost}
}

// NewAuthServiceWithCost lets tests lower the bcrypt cost.
func NewAuthServiceWithCost(db *gorm.DB, cost int) *AuthService {
	return &AuthService{db: db, bcryptCost: cost}
}

// NormalizeEmail lowercases the address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with a hashed password.
func (s *AuthService) Register(ctx context.Context, req *types.CreateUserRequest) (*models.User, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	email := NormalizeEmail(req.Email)

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, types.FieldErrors{"email": {"user with this email already exists"}}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IssueToken checks the credentials and returns the user's persistent token,
// minting one on first login. The error never says whether the email or the
// password was wrong.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", types.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.IsActive {
		return "", types.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", types.ErrInvalidCredentials
	}

	var token models.AuthToken
	err = s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		key, genErr := generateTokenKey()
		if genErr != nil {
			return "", genErr
		}
		// Two concurrent first logins race on the user_id unique index;
		// the loser falls through and reads back the winner's token.
		fresh := models.AuthToken{Key: key, UserID: user.ID}
		createErr := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&fresh).Error
		if createErr != nil {
			return "", createErr
		}
		if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&token).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", &now).Error; err != nil {
		return "", err
	}

	return token.Key, nil
}

// ResolveToken maps a bearer token back to its active user.
func (s *AuthService) ResolveToken(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, types.ErrInvalidToken
	}
	var token models.AuthToken
	err := s.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrInvalidToken
		}
		return nil, err
	}
	if !token.User.IsActive {
		return nil, types.ErrInvalidToken
	}
	return &token.User, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a self-service profile update. Only name and password
// are writable; a new password is re-hashed before storage.
func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, req *types.UpdateUserRequest) (*models.User, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if hashErr != nil {
			return nil, hashErr
		}
		updates["password_hash"] = string(hashed)
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

// generateTokenKey returns a 40-character hex token, the same shape users of
// the old API already store.
func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
