package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/upskill/internal/notify"
	"github.com/abhisek/upskill/internal/store"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.NewMemory()
	return New(st.UserRepo(), notify.New(st.EmailRepo(), nil, nil), nil), st
}

func validUser() NewUser {
	return NewUser{
		Name:       "Grace Hopper",
		Email:      "  Grace@Example.com ",
		Password:   "correct-horse",
		Role:       "Engineer",
		Department: "Platform",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	u, err := svc.Register(ctx, validUser())
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", u.Email)
	assert.NotEqual(t, "correct-horse", u.PasswordHash)
	assert.NotEmpty(t, u.ID)

	inbox, err := st.EmailRepo().ByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, store.EmailWelcome, inbox[0].Kind)

	_, err = svc.Register(ctx, validUser())
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newService(t)

	nu := validUser()
	nu.Email = "not-an-email"
	nu.Password = "short"
	nu.Department = " "

	_, err := svc.Register(context.Background(), nu)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.NotEmpty(t, verr.Field("email"))
	assert.NotEmpty(t, verr.Field("password"))
	assert.Equal(t, "department cannot be blank", verr.Field("department"))
	assert.Empty(t, verr.Field("name"))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	u, err := svc.Register(ctx, validUser())
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "GRACE@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "grace@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	u, err := svc.Register(ctx, validUser())
	require.NoError(t, err)

	title := "Staff Engineer"
	pwd := "new-password-1"
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateUser{
		JobTitle: &title,
		Skills:   []string{"go", "cobol"},
		Password: &pwd,
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.JobTitle)
	assert.Equal(t, "Grace Hopper", updated.Name)
	assert.Equal(t, []string{"go", "cobol"}, updated.Skills)

	_, err = svc.Authenticate(ctx, "grace@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "grace@example.com", "new-password-1")
	assert.NoError(t, err)

	blank := ""
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateUser{Name: &blank})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = svc.UpdateProfile(ctx, "missing", UpdateUser{JobTitle: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}
