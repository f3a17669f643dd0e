// Package auth is the identity-provider seam: credential issuance and
// password verification. The onboarding core treats it as a collaborator.
package auth

import (
	"log"
	"strings"

	apperrors "onramp/internal/errors"
	"onramp/internal/models"
	"onramp/internal/repositories"
	"onramp/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(email, password string, phone *string) (*models.User, string, error)
	Login(email, password string) (*models.User, string, string, error)
	Logout(userID uuid.UUID) error
	GetUserTokenVersion(userID uuid.UUID) (int, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) Register(email, password string, phone *string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", apperrors.ErrEmailInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:            email,
		Password:         string(hashedPassword),
		Phone:            phone,
		Role:             "user",
		TokenVersion:     1,
		OnboardingStatus: models.OnboardingStatusStarted,
		KYCStatus:        models.KYCStatusNotSubmitted,
	}

	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrEmailTaken {
			return nil, "", apperrors.ErrEmailInUse
		}
		return nil, "", err
	}

	accessToken, _, err := utils.GenerateTokens(s.claimsFor(user))
	if err != nil {
		log.Printf("Error generating tokens for user %s: %v", user.ID, err)
		return nil, "", err
	}

	return user, accessToken, nil
}

func (s *service) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Login failed: incorrect password for user %s", user.ID)
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(s.claimsFor(user))
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) Logout(userID uuid.UUID) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) GetUserTokenVersion(userID uuid.UUID) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

func (s *service) claimsFor(user *models.User) *models.UserClaims {
	return &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	}
}
