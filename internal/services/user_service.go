package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smartewaste/ewaste-backend/internal/apperrors"
	"github.com/smartewaste/ewaste-backend/internal/auth"
	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/policy"
	repo "github.com/smartewaste/ewaste-backend/internal/repository"
)

type UserService struct {
	users    repo.Users
	profiles repo.Profiles
	tm       *auth.TokenManager
}

func NewUserService(users repo.Users, profiles repo.Profiles, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, profiles: profiles, tm: tm}
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (in *RegisterInput) trim() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
}

// Register creates a user-role account. The identity and its profile are
// persisted atomically, then the role promotion hook runs at the same
// boundary.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, models.Profile, error) {
	return s.register(ctx, in, models.RoleUser)
}

// RegisterCollector is the admin-only collector onboarding path.
func (s *UserService) RegisterCollector(ctx context.Context, actor policy.Actor, in RegisterInput) (models.User, models.Profile, error) {
	if d := policy.CanRegisterCollector(actor); !d.Allowed {
		return models.User{}, models.Profile{}, apperrors.Forbidden(d.Reason)
	}
	if len(in.Password) < 8 {
		return models.User{}, models.Profile{}, apperrors.Validation("Password must be at least 8 characters")
	}
	return s.register(ctx, in, models.RoleCollector)
}

func (s *UserService) register(ctx context.Context, in RegisterInput, role string) (models.User, models.Profile, error) {
	in.trim()
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return models.User{}, models.Profile{}, apperrors.Validation("first_name, last_name, email and password are required")
	}
	taken, err := s.users.EmailTaken(ctx, in.Email, "")
	if err != nil {
		return models.User{}, models.Profile{}, err
	}
	if taken {
		return models.User{}, models.Profile{}, apperrors.Validation("Email already exists")
	}

	username, err := s.uniqueUsernameFromEmail(ctx, in.Email)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}

	u := models.User{
		Username:     username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
	}
	p := models.Profile{Phone: in.Phone, Address: in.Address, Role: role}
	u, err = s.users.Create(ctx, u, p)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}
	p.UserID = u.ID
	if err := s.syncRoleFromFlags(ctx, u, &p); err != nil {
		return models.User{}, models.Profile{}, err
	}
	return u, p, nil
}

// Normal registrations use the email as username; collisions get a numeric
// suffix.
func (s *UserService) uniqueUsernameFromEmail(ctx context.Context, email string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(email))
	candidate := base
	for index := 1; ; index++ {
		taken, err := s.users.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, index)
	}
}

// syncRoleFromFlags re-derives the profile role from the identity's
// privilege flags. Invoked after every identity save, which replaces the
// hidden persistence trigger the behavior came from.
func (s *UserService) syncRoleFromFlags(ctx context.Context, u models.User, p *models.Profile) error {
	if (u.IsStaff || u.IsSuperuser) && p.Role != models.RoleAdmin {
		p.Role = models.RoleAdmin
		return s.profiles.SetRole(ctx, u.ID, models.RoleAdmin)
	}
	return nil
}

// Login accepts an email or, as a fallback for older accounts, a username.
func (s *UserService) Login(ctx context.Context, email, username, password string) (models.User, models.Profile, string, error) {
	denied := apperrors.Unauthenticated("Invalid email/username or password")

	var (
		u   models.User
		err error
	)
	switch {
	case strings.TrimSpace(email) != "":
		u, err = s.users.GetByEmail(ctx, strings.TrimSpace(email))
	case strings.TrimSpace(username) != "":
		u, err = s.users.GetByUsername(ctx, strings.TrimSpace(username))
	default:
		return models.User{}, models.Profile{}, "", denied
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, models.Profile{}, "", denied
		}
		return models.User{}, models.Profile{}, "", err
	}
	if !u.IsActive || auth.VerifyPassword(password, u.PasswordHash) != nil {
		return models.User{}, models.Profile{}, "", denied
	}

	p, err := s.profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		return models.User{}, models.Profile{}, "", err
	}
	token, _, err := s.tm.Generate(u.ID, p.Role)
	if err != nil {
		return models.User{}, models.Profile{}, "", err
	}
	return u, p, token, nil
}

func (s *UserService) ForgotPassword(ctx context.Context, email, newPassword string) error {
	email = strings.TrimSpace(email)
	if email == "" || newPassword == "" {
		return apperrors.Validation("email and new_password are required")
	}
	if len(newPassword) < 8 {
		return apperrors.Validation("Password must be at least 8 characters")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperrors.NotFound("No user found with provided email")
		}
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, u.ID, hash)
}

func (s *UserService) Me(ctx context.Context, userID string) (models.User, models.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, models.Profile{}, apperrors.Unauthenticated("Authentication required")
		}
		return models.User{}, models.Profile{}, err
	}
	p, err := s.profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}
	return u, p, nil
}

type ProfileUpdateInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdateProfile applies a partial update. Empty input fields keep the
// stored value; fields can be replaced but not cleared here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (models.User, models.Profile, error) {
	u, p, err := s.Me(ctx, userID)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = u.Email
	}
	taken, err := s.users.EmailTaken(ctx, email, u.ID)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}
	if taken {
		return models.User{}, models.Profile{}, apperrors.Validation("Email already exists")
	}

	u.Email = email
	u.FirstName = mergeField(in.FirstName, u.FirstName)
	u.LastName = mergeField(in.LastName, u.LastName)
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, models.Profile{}, err
	}

	p.Phone = mergeField(in.Phone, p.Phone)
	p.Address = mergeField(in.Address, p.Address)
	if err := s.profiles.Update(ctx, p); err != nil {
		return models.User{}, models.Profile{}, err
	}
	if err := s.syncRoleFromFlags(ctx, u, &p); err != nil {
		return models.User{}, models.Profile{}, err
	}
	return u, p, nil
}

func (s *UserService) ListCollectors(ctx context.Context, actor policy.Actor) ([]models.UserRef, error) {
	if d := policy.CanViewCollectors(actor); !d.Allowed {
		return nil, apperrors.Forbidden(d.Reason)
	}
	return s.users.ListCollectors(ctx)
}

// mergeField implements the "empty means keep" partial-update semantic.
func mergeField(input, existing string) string {
	if v := strings.TrimSpace(input); v != "" {
		return v
	}
	return existing
}
