package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/stallcraft/backend/pkg/auth"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db"
	"github.com/stallcraft/backend/pkg/db/models"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
	"github.com/stallcraft/backend/pkg/security"
)

// Service handles dashboard sign-in and admin provisioning.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CreateAdmin(ctx context.Context, email, password string) (*models.AdminUser, error)
	EnsureAdmin(ctx context.Context, email, password string) (*models.AdminUser, error)
}

// LoginResult carries the signed token and its owner.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.AdminUser
}

type service struct {
	repo    *Repository
	jwtCfg  config.JWTConfig
	passCfg config.PasswordConfig
	now     func() time.Time
	logg    *logger.Logger
}

// NewService constructs the auth service.
func NewService(repo *Repository, jwtCfg config.JWTConfig, passCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:    repo,
		jwtCfg:  jwtCfg,
		passCfg: passCfg,
		now:     time.Now,
		logg:    logg,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			// same response as a wrong password; do not leak which accounts exist
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading admin account")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.jwtCfg.Expiration()),
		Admin:     admin,
	}, nil
}

func (s *service) CreateAdmin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(password, s.passCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	admin, err := s.repo.Create(ctx, &models.AdminUser{Email: email, PasswordHash: hash})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "an admin with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating admin account")
	}
	return admin, nil
}

// EnsureAdmin provisions the account when it does not exist yet. The startup
// bootstrap calls this so a fresh deployment has a working dashboard login.
func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return admin, nil
	}
	if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading admin account")
	}
	return s.CreateAdmin(ctx, email, password)
}
