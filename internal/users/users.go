// Package users handles registration, sign-in and profile edits.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/upskill/internal/logger"
	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/store"
	"github.com/abhisek/upskill/internal/validate"
)

var (
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

// ValidationError reports which input fields were rejected.
type ValidationError = validate.ValidationError

type NewUser struct {
	Name       string `json:"name" validate:"notblank,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"notblank"`
	Department string `json:"department" validate:"notblank"`
}

// UpdateUser holds profile edits. Nil fields are left unchanged.
type UpdateUser struct {
	Name       *string  `json:"name" validate:"omitempty,notblank,max=100"`
	Role       *string  `json:"role" validate:"omitempty,notblank"`
	Department *string  `json:"department" validate:"omitempty,notblank"`
	JobTitle   *string  `json:"jobTitle" validate:"omitempty,max=100"`
	Bio        *string  `json:"bio" validate:"omitempty,max=500"`
	Skills     []string `json:"skills" validate:"omitempty,dive,notblank"`
	Password   *string  `json:"password" validate:"omitempty,min=8"`
}

type Service struct {
	repo   store.UserRepo
	notify notify.Sender
	log    *logger.Logger
	now    func() time.Time
}

// New returns a Service. sender may be nil.
func New(repo store.UserRepo, sender notify.Sender, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, notify: sender, log: log.With("component", "users"), now: time.Now}
}

func (s *Service) Register(ctx context.Context, nu NewUser) (*store.User, error) {
	nu.Email = strings.ToLower(strings.TrimSpace(nu.Email))
	nu.Name = strings.TrimSpace(nu.Name)
	if err := validate.Struct(nu); err != nil {
		return nil, err
	}

	existing, err := s.repo.ByEmail(ctx, nu.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := hashPassword(nu.Password)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	u := &store.User{
		ID:           uuid.NewString(),
		Name:         nu.Name,
		Email:        nu.Email,
		PasswordHash: hash,
		Role:         strings.TrimSpace(nu.Role),
		Department:   strings.TrimSpace(nu.Department),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.log.Info("user registered", "user_id", u.ID)

	if s.notify != nil {
		if _, err := s.notify.Send(ctx, notify.Welcome(*u)); err != nil {
			s.log.Warn("welcome email failed", "user_id", u.ID, "error", err)
		}
	}
	return u, nil
}

// Authenticate returns the user matching email and password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*store.User, error) {
	u, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*store.User, error) {
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, uu UpdateUser) (*store.User, error) {
	if err := validate.Struct(uu); err != nil {
		return nil, err
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if uu.Name != nil {
		u.Name = strings.TrimSpace(*uu.Name)
	}
	if uu.Role != nil {
		u.Role = strings.TrimSpace(*uu.Role)
	}
	if uu.Department != nil {
		u.Department = strings.TrimSpace(*uu.Department)
	}
	if uu.JobTitle != nil {
		u.JobTitle = *uu.JobTitle
	}
	if uu.Bio != nil {
		u.Bio = *uu.Bio
	}
	if uu.Skills != nil {
		u.Skills = append([]string(nil), uu.Skills...)
	}
	if uu.Password != nil {
		hash, err := hashPassword(*uu.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return u, nil
}

func hashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
