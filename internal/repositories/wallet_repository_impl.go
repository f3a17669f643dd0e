package repositories

import (
	"strings"
	"time"

	"onramp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new instance of WalletRepository
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") ||
			strings.Contains(err.Error(), "unique") {
			return ErrDuplicateWallet
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *walletRepository) GetByUserAndChain(userID uuid.UUID, chain models.Chain) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("user_id = ? AND chain = ?", userID, chain).First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUser(userID uuid.UUID) ([]*models.Wallet, error) {
	var wallets []*models.Wallet
	err := r.db.Where("user_id = ?", userID).Order("chain ASC").Find(&wallets).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return wallets, nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *walletRepository) Transition(walletID uuid.UUID, from, to models.WalletStatus) error {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ? AND status = ?", walletID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}
