// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/catalogadmin/backend/internal/config"
	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/models"
	"github.com/catalogadmin/backend/internal/repository"
	"github.com/catalogadmin/backend/internal/utils"
)

type AuthService struct {
	admins repository.AdminRepository
	cfg    *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// AdminSummary is the public profile of an admin. It never carries the password hash.
type AdminSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"` // in seconds
}

func NewAuthService(admins repository.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		admins: admins,
		cfg:    cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AdminSummary, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	// Check if admin already exists
	if _, err := s.admins.GetByEmail(ctx, req.Email); err == nil {
		return nil, errs.Conflict(i18n.KeyAuthUserExists)
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return nil, errs.Internal(fmt.Errorf("failed to look up admin: %w", err))
	}

	admin := &models.Admin{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	if err := s.admins.Create(ctx, admin); err != nil {
		// a concurrent registration can win the race past the lookup above
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errs.Conflict(i18n.KeyAuthUserExists)
		}
		return nil, errs.Internal(fmt.Errorf("failed to create admin: %w", err))
	}

	logrus.WithField("admin_id", admin.ID).Info("Admin registered")
	return toAdminSummary(admin), nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, errs.InvalidCredentials(i18n.KeyAuthEmailNotFound)
		}
		return nil, errs.Internal(fmt.Errorf("failed to look up admin: %w", err))
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, errs.InvalidCredentials(i18n.KeyAuthInvalidCredentials)
	}

	ttl := time.Duration(s.cfg.JWT.TTLHours) * time.Hour
	token, err := utils.GenerateJWT(admin.ID, ttl)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}

// GetCurrent resolves the admin id placed in the request context by the auth gate.
func (s *AuthService) GetCurrent(ctx context.Context, adminID string) (*AdminSummary, error) {
	id, err := uuid.Parse(adminID)
	if err != nil {
		return nil, errs.Unauthorized(i18n.KeyAuthRequired)
	}

	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, errs.NotFound(i18n.KeyAdminNotFound)
		}
		return nil, errs.Internal(fmt.Errorf("failed to get admin: %w", err))
	}

	return toAdminSummary(admin), nil
}

func toAdminSummary(admin *models.Admin) *AdminSummary {
	return &AdminSummary{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validationError turns validator failures into a classified error carrying field details.
func validationError(err error) *errs.Error {
	details := utils.GetValidationErrors(err)

	switch {
	case utils.HasTag(details, "required"):
		return errs.Validation(i18n.KeyValidationRequired, details)
	case len(details) == 0:
		return errs.Validation(i18n.KeyValidationInvalid, nil).WithArgs("input")
	case details[0].Field == "password" && details[0].Tag == "min":
		return errs.Validation(i18n.KeyValidationPassword, details)
	default:
		return errs.Validation(i18n.KeyValidationInvalid, details).WithArgs(details[0].Field)
	}
}
