package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"DOIT_BACK-END/internal/auth"
	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/config"
	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/models"
	"DOIT_BACK-END/internal/repositories"
)

// LoginResult is what a successful sign-in hands back to the caller.
type LoginResult struct {
	Token string
	User  *models.User
}

// UpdateUserInput replaces name and email; Password is left alone when nil.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password *string
}

// GoogleIdentity is the verified profile returned by the Google userinfo API.
type GoogleIdentity struct {
	Email    string
	Name     string
	Verified bool
}

var ErrUnverifiedEmail = errors.New("google account email is not verified")

type UserService struct {
	users repositories.UserRepository
	jwt   *config.JWTConfig
	log   logging.Logger
	now   func() time.Time
}

func NewUserService(users repositories.UserRepository, jwtCfg *config.JWTConfig, log logging.Logger) *UserService {
	return &UserService{
		users: users,
		jwt:   jwtCfg,
		log:   log.With("component", "user_service"),
		now:   defaultClock,
	}
}

// Register creates an account. The pre-check gives a fast Conflict; the
// unique constraint still decides races.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck spends the same bcrypt work as a real comparison so an
// unknown email cannot be told apart by response time.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("not-a-real-password")
	})
	auth.CheckPassword(dummyHash, password)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			burnPasswordCheck(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.log.Warn(ctx, "failed login", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// LoginWithGoogle signs in the account matching the Google email, creating
// one with an unusable random password on first use.
func (s *UserService) LoginWithGoogle(ctx context.Context, id GoogleIdentity) (*LoginResult, error) {
	email := normalizeEmail(id.Email)
	if !id.Verified || email == "" {
		return nil, ErrUnverifiedEmail
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.issue(ctx, user)
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	password, err := auth.RandomPassword()
	if err != nil {
		return nil, fmt.Errorf("random password: %w", err)
	}
	if user, err = s.Register(ctx, name, email, password); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *UserService) issue(ctx context.Context, user *models.User) (*LoginResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwt)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

// LoadByEmail resolves the identity behind a bearer token.
func (s *UserService) LoadByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) GetByID(ctx context.Context, requesterID, targetID uuid.UUID) (*models.User, error) {
	if requesterID != targetID {
		return nil, common.ErrForbidden
	}
	return s.users.GetByID(ctx, targetID)
}

func (s *UserService) Update(ctx context.Context, requesterID, targetID uuid.UUID, in UpdateUserInput) (*models.User, error) {
	if requesterID != targetID {
		return nil, common.ErrForbidden
	}

	current, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if email != current.Email {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.ErrDuplicateEmail
		}
	}

	upd := models.UserUpdate{
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		UpdatedAt: s.now(),
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, targetID, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user updated", "user_id", user.ID)
	return user, nil
}

// Delete removes the account and, with it, every note it owns.
func (s *UserService) Delete(ctx context.Context, requesterID, targetID uuid.UUID) error {
	if requesterID != targetID {
		return common.ErrForbidden
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	s.log.Info(ctx, "user deleted", "user_id", targetID)
	return nil
}
