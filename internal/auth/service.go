// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"morphecms/internal/content"
	"morphecms/internal/models"
	"morphecms/internal/store"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserRepository persists users. *store.UserStore implements it.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, email, password, name string, role models.Role) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
}

var _ UserRepository = (*store.UserStore)(nil)

// LoginInput is the body of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Email    string      `json:"email" validate:"required,email,max=254"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Name     string      `json:"name" validate:"required,max=100"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=ADMIN EDITOR"`
}

// Service implements login, registration and profile lookup.
type Service struct {
	users  UserRepository
	tokens *JWTManager
}

// NewService creates a Service.
func NewService(users UserRepository, tokens *JWTManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login checks credentials and returns a signed token for the user.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := content.Validate(in); err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !s.users.CheckPassword(user, in.Password) {
		slog.Warn("failed login attempt", "email", in.Email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	return token, user, nil
}

// Register creates a user. New users are editors unless a role is given.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := content.Validate(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleEditor
	}

	user, err := s.users.Create(ctx, in.Email, in.Password, in.Name, in.Role)
	if errors.Is(err, store.ErrUniqueViolation) {
		return nil, &content.ValidationError{Field: "email", Message: "is already registered"}
	}
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}

// Me returns the user behind the principal.
func (s *Service) Me(ctx context.Context, p models.Principal) (*models.User, error) {
	if p.UserID == uuid.Nil {
		return nil, content.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	if user == nil {
		return nil, content.ErrUnauthenticated
	}
	return user, nil
}
