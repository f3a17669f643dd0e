package repositories

import (
	"context"
	"log"
	"strings"
	"time"

	"onramp/internal/models"
	"onramp/internal/repositories/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	result := r.db.Create(user)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate") ||
			strings.Contains(result.Error.Error(), "unique") {
			return ErrEmailTaken
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		if user, err := r.cache.GetUser(context.Background(), key); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}

	if r.cache != nil {
		if err := r.cache.CacheUser(context.Background(), &user); err != nil {
			log.Printf("Failed to cache user %s: %v", user.ID, err)
		}
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(user)
	return nil
}

func (r *userRepository) UpdateOnboardingStatus(userID uuid.UUID, status models.OnboardingStatus) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"onboarding_status": status,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidateByID(userID)
	return nil
}

func (r *userRepository) UpdateKYCStatus(userID uuid.UUID, status models.KYCStatus, approvedAt *time.Time, rejectionReason *string) error {
	updates := map[string]interface{}{
		"kyc_status": status,
		"updated_at": time.Now(),
	}
	if approvedAt != nil {
		updates["kyc_approved_at"] = approvedAt
	}
	if rejectionReason != nil {
		updates["kyc_rejection_reason"] = rejectionReason
	}

	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidateByID(userID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uuid.UUID) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error; err != nil {
		return ErrDatabaseOperation
	}
	r.invalidateByID(userID)
	return nil
}

func (r *userRepository) invalidate(user *models.User) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
		log.Printf("Warning: failed to invalidate user cache: %v", err)
	}
}

func (r *userRepository) invalidateByID(userID uuid.UUID) {
	if r.cache == nil {
		return
	}
	var user models.User
	if err := r.db.First(&user, "id = ?", userID).Error; err == nil {
		r.invalidate(&user)
	}
}
