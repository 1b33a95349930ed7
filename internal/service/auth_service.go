package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"wonders-cms/internal/auth"
	"wonders-cms/internal/config"
	"wonders-cms/internal/data"
	"wonders-cms/internal/storage"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Email  string `json:"email" validate:"required,email"`
	Avatar string `json:"avatar"`
}

type PasswordInput struct {
	Current string `json:"current_password" validate:"required"`
	New     string `json:"new_password" validate:"required,min=8"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Admin     *data.Admin `json:"admin"`
}

// AuthService handles administrator login and profile management.
type AuthService struct {
	base
	tokens *auth.TokenIssuer
}

func NewAuthService(d Deps, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{base: newBase(d, "auth"), tokens: tokens}
}

func (s *AuthService) repo() *data.AdminRepository {
	return data.NewAdminRepository(s.db)
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords both yield ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	admin, err := s.repo().ByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !auth.CheckPassword(admin.Password, in.Password) {
		return nil, ErrUnauthorized
	}
	token, exp, err := s.tokens.Issue(admin.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("admin %d logged in", admin.ID))
	return &Session{Token: token, ExpiresAt: exp, Admin: admin}, nil
}

func (s *AuthService) Profile(ctx context.Context, adminID int64) (*data.Admin, error) {
	return s.repo().ByID(ctx, adminID)
}

// UpdateProfile rewrites name, email and, when a new one was uploaded, the avatar.
func (s *AuthService) UpdateProfile(ctx context.Context, adminID int64, in ProfileInput) error {
	if err := check(in); err != nil {
		return err
	}
	repo := s.repo()
	a, err := repo.ByID(ctx, adminID)
	if err != nil {
		return err
	}
	var stale storage.File
	a.Name = in.Name
	a.Email = strings.ToLower(in.Email)
	a.Avatar, stale = replace(storage.DirAdmin, a.Avatar, in.Avatar)
	if err := repo.UpdateProfile(ctx, a); err != nil {
		return err
	}
	s.release(stale)
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, adminID int64, in PasswordInput) error {
	if err := check(in); err != nil {
		return err
	}
	repo := s.repo()
	a, err := repo.ByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(a.Password, in.Current) {
		return invalid("current_password", "does not match")
	}
	hash, err := auth.HashPassword(in.New)
	if err != nil {
		return err
	}
	return repo.UpdatePassword(ctx, adminID, hash)
}

// EnsureAdmin creates the configured administrator when no account with
// that email exists. It does nothing when the email or password is unset.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		s.log.Warn("No bootstrap admin configured")
		return nil
	}
	email := strings.ToLower(cfg.Email)
	_, err := s.repo().ByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, data.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	if _, err := s.repo().Create(ctx, &data.Admin{Name: cfg.Name, Email: email, Password: hash}); err != nil {
		return err
	}
	s.log.Info("Bootstrap admin created: " + email)
	return nil
}
