package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartewaste/ewaste-backend/internal/apperrors"
	"github.com/smartewaste/ewaste-backend/internal/auth"
	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/policy"
)

func newUserService(s *memStore) *UserService {
	tm := auth.NewTokenManager("test-secret", "test", time.Hour)
	return NewUserService(&memUsers{s}, &memProfiles{s}, tm)
}

func registerInput() RegisterInput {
	return RegisterInput{
		FirstName: "Amina",
		LastName:  "Juma",
		Email:     "amina@example.com",
		Password:  "supersecret",
		Phone:     "0777",
		Address:   "Stone Town",
	}
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)

	u, p, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.Equal(t, "amina@example.com", u.Email)
	assert.Equal(t, "amina@example.com", u.Username)
	assert.Equal(t, models.RoleUser, p.Role)
	assert.Equal(t, "0777", p.Phone)
	assert.Len(t, s.users, 1)
	assert.Len(t, s.profiles, 1)
	// raw password is never stored
	assert.NotEqual(t, "supersecret", u.PasswordHash)
	assert.NoError(t, auth.VerifyPassword("supersecret", u.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)

	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Email = "AMINA@example.com" // case-insensitive
	_, _, err = svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "Email already exists", err.Error())
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Len(t, s.users, 1)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newUserService(newMemStore())
	in := registerInput()
	in.LastName = "  "
	_, _, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "first_name, last_name, email and password are required", err.Error())
}

func TestUsernameSuffixOnCollision(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)

	u := s.seedUser("amina@example.com", models.RoleUser)
	u.Email = "other@example.com"
	s.users[u.ID] = u

	created, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com_1", created.Username)
}

func TestStaffFlagPromotesRole(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)

	u, p, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, p.Role)

	// flip the privilege flag, then run any identity save
	u.IsStaff = true
	s.users[u.ID] = u
	_, p, err = svc.UpdateProfile(context.Background(), u.ID, ProfileUpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.Equal(t, models.RoleAdmin, s.profiles[u.ID].Role)
}

func TestLoginByEmailAndUsername(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, token, err := svc.Login(context.Background(), "amina@example.com", "", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, _, err = svc.Login(context.Background(), "", "amina@example.com", "supersecret")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "amina@example.com", "", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthenticated))
	assert.Equal(t, "Invalid email/username or password", err.Error())
}

func TestForgotPassword(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	u, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	err = svc.ForgotPassword(context.Background(), "amina@example.com", "short")
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 8 characters", err.Error())

	err = svc.ForgotPassword(context.Background(), "nobody@example.com", "longenough")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	err = svc.ForgotPassword(context.Background(), "amina@example.com", "longenough")
	require.NoError(t, err)
	assert.NoError(t, auth.VerifyPassword("longenough", s.users[u.ID].PasswordHash))
}

func TestUpdateProfileMergeKeepsOnEmpty(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	u, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	// empty strings keep existing values, non-empty replace
	gotU, gotP, err := svc.UpdateProfile(context.Background(), u.ID, ProfileUpdateInput{
		FirstName: "",
		LastName:  "Said",
		Phone:     "",
		Address:   "Ng'ambo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina", gotU.FirstName)
	assert.Equal(t, "Said", gotU.LastName)
	assert.Equal(t, "0777", gotP.Phone)
	assert.Equal(t, "Ng'ambo", gotP.Address)
}

func TestUpdateProfileEmailUniqueness(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	u, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	s.seedUser("taken", models.RoleUser) // taken@example.com

	_, _, err = svc.UpdateProfile(context.Background(), u.ID, ProfileUpdateInput{Email: "taken@example.com"})
	require.Error(t, err)
	assert.Equal(t, "Email already exists", err.Error())
}

func TestCollectorRegistration(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	admin := policy.Actor{ID: "a", Role: models.RoleAdmin}

	in := registerInput()
	in.Password = "short"
	_, _, err := svc.RegisterCollector(context.Background(), admin, in)
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 8 characters", err.Error())

	in = registerInput()
	_, p, err := svc.RegisterCollector(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCollector, p.Role)

	_, _, err = svc.RegisterCollector(context.Background(), policy.Actor{ID: "u", Role: models.RoleUser}, registerInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	assert.Equal(t, "Only admins can register collectors", err.Error())
}

func TestListCollectorsAdminOnly(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	s.seedUser("zuber", models.RoleCollector)
	s.seedUser("ali", models.RoleCollector)
	s.seedUser("mwajuma", models.RoleUser)

	refs, err := svc.ListCollectors(context.Background(), policy.Actor{ID: "a", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "ali", refs[0].Username)
	assert.Equal(t, "zuber", refs[1].Username)

	_, err = svc.ListCollectors(context.Background(), policy.Actor{ID: "c", Role: models.RoleCollector})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}
