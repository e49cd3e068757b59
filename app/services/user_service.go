package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardsapi/app/apperrors"
	"cardsapi/app/models"
	"cardsapi/app/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// EnsureAdmin seeds the bootstrap admin account when it does not exist yet.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	count, err := s.users.CountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.users.Create(ctx, &models.User{Email: email, PasswordHash: string(hash), Role: models.RoleAdmin})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// RegisterUser creates a user with the given role, defaulting to MEMBER.
func (s *UserService) RegisterUser(ctx context.Context, email, password, role string) (*models.User, error) {
	if violations := validateUserFields(email, password); len(violations) > 0 {
		return nil, &apperrors.ValidationError{Violations: violations}
	}
	userRole := models.RoleMember
	if role != "" {
		switch models.UserRole(role) {
		case models.RoleMember, models.RoleAdmin:
			userRole = models.UserRole(role)
		default:
			return nil, &apperrors.ValidationError{Violations: []string{fmt.Sprintf("Unrecognized user role: %s.", role)}}
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	// The unique index on email is the authority on duplicates; a prior
	// existence check would race with concurrent registrations.
	u := &models.User{Email: email, PasswordHash: string(hash), Role: userRole}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperrors.EmailExistsError{Email: email}
		}
		return nil, err
	}
	return u, nil
}

// ValidateCredentials answers with the same error for unknown email and
// wrong password.
func (s *UserService) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return u, nil
}

func validateUserFields(email, password string) []string {
	var violations []string
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		violations = append(violations, "Please provide a valid email address.")
	}
	if len(password) < 8 || len(password) > 30 {
		violations = append(violations, "Password must be between 8 and 30 characters.")
	}
	return violations
}
