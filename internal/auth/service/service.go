package service

import (
	"context"
	"errors"
	"time"

	"github.com/modern-notepad/backend/internal/common/clock"
	commoncrypto "github.com/modern-notepad/backend/internal/common/crypto"
	"github.com/modern-notepad/backend/internal/common/logger"
	"github.com/modern-notepad/backend/internal/observability/metrics"
	userdomain "github.com/modern-notepad/backend/internal/user/domain"
	userrepo "github.com/modern-notepad/backend/internal/user/repository"
)

type AuthService struct {
	repo      userrepo.Repository
	hasher    commoncrypto.PasswordHasher
	ids       commoncrypto.IDGenerator
	clock     clock.Clock
	log       *logger.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

type AuthServiceDeps struct {
	Repo   userrepo.Repository
	Hasher commoncrypto.PasswordHasher
	IDs    commoncrypto.IDGenerator
	Clock  clock.Clock
	Log    *logger.Logger
}

type AuthServiceConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthService(deps AuthServiceDeps, cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		repo:      deps.Repo,
		hasher:    deps.Hasher,
		ids:       deps.IDs,
		clock:     deps.Clock,
		log:       deps.Log,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token string
	User  userdomain.Summary
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.ID, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return "", ErrInternal.WithCause(err)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			return "", ErrDuplicateUser
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return "", ErrInternal.WithCause(err)
	}

	metrics.RegistrationsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return user.ID, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginFailuresTotal.Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			return LoginResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, ErrInternal.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.LoginFailuresTotal.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, ErrInternal.WithCause(err)
	}

	metrics.LoginsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return LoginResult{
		Token: token,
		User: userdomain.Summary{
			ID:       user.ID,
			Username: user.Username,
		},
	}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID userdomain.ID, currentPassword, newPassword string) error {
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"action":  "change_password_attempt",
	}).Info("change password attempt")

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "change_password_fetch_failed",
		}).Errorf("change password failed: %v", err)
		return ErrInternal.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "change_password_wrong_current",
		}).Warn("change password failed: current password mismatch")
		return ErrCurrentPasswordIncorrect
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return ErrInternal.WithCause(err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "change_password_update_failed",
		}).Errorf("change password failed: %v", err)
		return ErrInternal.WithCause(err)
	}

	metrics.PasswordChangesTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"action":  "change_password_success",
	}).Info("change password success")

	return nil
}
