package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-directory/internal/model"
	"employee-directory/internal/pkg/jwtutil"
	"employee-directory/internal/repository"
)

type fakeUserStore struct {
	users     []*model.User
	createErr error
}

func (f *fakeUserStore) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return fmt.Errorf("create user: %w", repository.ErrDuplicateKey)
		}
		if existing.Username != nil && user.Username != nil && *existing.Username == *user.Username {
			return fmt.Errorf("create user: %w", repository.ErrDuplicateKey)
		}
	}
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, "test-secret", time.Hour)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserStore{})
	result, err := svc.Register(RegisterInput{
		FullName: "Jane Doe",
		Username: "jane",
		Email:    "JANE@EX.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@ex.com", result.User.Email)
	require.NotNil(t, result.User.Username)
	assert.Equal(t, "jane", *result.User.Username)
	assert.NotEqual(t, "s3cretpass", result.User.PasswordHash)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "jane@ex.com", claims.Email)
	assert.Equal(t, "jane", claims.Username)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserStore{})

	_, err := svc.Register(RegisterInput{Email: "", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)

	_, err = svc.Register(RegisterInput{Email: "a@b.co", Password: ""})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func TestRegister_DuplicateFailsSecondTime(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserStore{})
	input := RegisterInput{Username: "jane", Email: "jane@ex.com", Password: "s3cretpass"}

	_, err := svc.Register(input)
	require.NoError(t, err)

	_, err = svc.Register(input)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_StoreResolvesRace(t *testing.T) {
	t.Parallel()

	// Both racing registrations pass the existence lookups; the store's
	// unique index rejects the loser and the service reports a conflict.
	store := &fakeUserStore{createErr: fmt.Errorf("create user: %w", repository.ErrDuplicateKey)}
	svc := newAuthService(store)

	_, err := svc.Register(RegisterInput{Email: "jane@ex.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_ByEmailAndUsername(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserStore{})
	_, err := svc.Register(RegisterInput{Username: "jane", Email: "jane@ex.com", Password: "s3cretpass"})
	require.NoError(t, err)

	byEmail, err := svc.Login(LoginInput{Identifier: "JANE@EX.COM", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "jane@ex.com", byEmail.User.Email)

	byUsername, err := svc.Login(LoginInput{Identifier: "jane", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, byEmail.User.ID, byUsername.User.ID)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserStore{})
	_, err := svc.Register(RegisterInput{Email: "jane@ex.com", Password: "s3cretpass"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(LoginInput{Identifier: "jane@ex.com", Password: "bad-guess"})
	_, unknownUser := svc.Login(LoginInput{Identifier: "nobody@ex.com", Password: "bad-guess"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredential)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredential)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserStore{})

	_, err := svc.Login(LoginInput{Identifier: "", Password: "x"})
	assert.ErrorIs(t, err, ErrIdentifierPasswordRequired)

	_, err = svc.Login(LoginInput{Identifier: "jane", Password: ""})
	assert.ErrorIs(t, err, ErrIdentifierPasswordRequired)
}
