package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/internal/repository/memory"
	"ai-companion-be/pkg/events"
)

func newAuthFixture() (IAuthService, ISessionService, *fakeFactory, *recordingAudit) {
	factory := newFakeFactory()
	sessions := NewSessionService(factory, memory.NewSessionCache())
	audit := &recordingAudit{}
	auth := NewAuthService(factory, sessions, audit, nopLogger{})
	return auth, sessions, factory, audit
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	auth, sessions, factory, audit := newAuthFixture()
	ctx := context.Background()

	res, err := auth.Register(ctx, &dto.RegisterRequest{
		Email:    "bob@example.com",
		Password: "hunter22",
		Name:     "Bob",
	})
	require.NoError(t, err)

	require.Len(t, factory.uow.users.users, 1)
	user := factory.uow.users.users[0]
	assert.Equal(t, "Bob", user.Name)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

	got, err := sessions.Validate(ctx, res.CookieValue)
	require.NoError(t, err)
	assert.Equal(t, res.UserId, got)

	require.Len(t, audit.published, 1)
	assert.Equal(t, events.TypeUserRegistered, audit.published[0].EventType())
}

func TestRegisterDefaultsNameToEmailLocalPart(t *testing.T) {
	auth, _, factory, _ := newAuthFixture()

	_, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "carol.smith@example.com",
		Password: "pw",
	})
	require.NoError(t, err)

	require.Len(t, factory.uow.users.users, 1)
	assert.Equal(t, "carol.smith", factory.uow.users.users[0].Name)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	auth, _, factory, _ := newAuthFixture()
	ctx := context.Background()

	for _, req := range []*dto.RegisterRequest{
		{Email: "", Password: "pw"},
		{Email: "a@b.c", Password: ""},
		{},
	} {
		_, err := auth.Register(ctx, req)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.EqualError(t, err, "Email and password are required")
	}
	assert.Empty(t, factory.uow.users.users)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _, factory, _ := newAuthFixture()
	ctx := context.Background()

	_, err := auth.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "other"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.EqualError(t, err, "User already exists")
	assert.Len(t, factory.uow.users.users, 1)
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginUniformErrors(t *testing.T) {
	auth, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := auth.Register(ctx, &dto.RegisterRequest{Email: "dave@example.com", Password: "correct"})
	require.NoError(t, err)

	_, errUnknown := auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "correct"})
	_, errWrongPw := auth.Login(ctx, &dto.LoginRequest{Email: "dave@example.com", Password: "wrong"})

	for _, err := range []error{errUnknown, errWrongPw} {
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
		assert.EqualError(t, err, "Invalid credentials")
	}
}

func TestLoginIssuesFreshSession(t *testing.T) {
	auth, sessions, _, audit := newAuthFixture()
	ctx := context.Background()

	reg, err := auth.Register(ctx, &dto.RegisterRequest{Email: "eve@example.com", Password: "pw"})
	require.NoError(t, err)

	login, err := auth.Login(ctx, &dto.LoginRequest{Email: "eve@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserId, login.UserId)
	assert.NotEqual(t, reg.CookieValue, login.CookieValue)

	got, err := sessions.Validate(ctx, login.CookieValue)
	require.NoError(t, err)
	assert.Equal(t, login.UserId, got)

	types := make([]string, 0, len(audit.published))
	for _, evt := range audit.published {
		types = append(types, evt.EventType())
	}
	assert.Contains(t, types, events.TypeUserLogin)
}

func TestLogoutRevokesSession(t *testing.T) {
	auth, sessions, _, audit := newAuthFixture()
	ctx := context.Background()

	res, err := auth.Register(ctx, &dto.RegisterRequest{Email: "fred@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, res.CookieValue))

	got, err := sessions.Validate(ctx, res.CookieValue)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)

	types := make([]string, 0, len(audit.published))
	for _, evt := range audit.published {
		types = append(types, evt.EventType())
	}
	assert.Contains(t, types, events.TypeUserLogout)

	// Stale cookie: logout still succeeds.
	require.NoError(t, auth.Logout(ctx, res.CookieValue))
}

func TestCurrentUser(t *testing.T) {
	auth, _, _, _ := newAuthFixture()
	ctx := context.Background()

	res, err := auth.Register(ctx, &dto.RegisterRequest{Email: "gina@example.com", Password: "pw", Name: "Gina"})
	require.NoError(t, err)

	profile, err := auth.CurrentUser(ctx, res.UserId)
	require.NoError(t, err)
	assert.Equal(t, res.UserId, profile.Id)
	assert.Equal(t, "gina@example.com", profile.Email)
	assert.Equal(t, "Gina", profile.Name)
}
