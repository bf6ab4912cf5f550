package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/internal/domain/user"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/auth"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*user.User{}}
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return apperror.NewConflict("user", "email", u.Email)
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[uuid.UUID]*profile.Profile{}}
}

func (r *memProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("profile", ownerID.String())
	}
	return p.Clone(), nil
}

func (r *memProfileRepo) GetByUsername(ctx context.Context, username string) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Username == username {
			return p.Clone(), nil
		}
	}
	return nil, apperror.NewNotFound("profile", username)
}

func (r *memProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.OwnerID] = p.Clone()
	return nil
}

func (r *memProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.OwnerID] = p.Clone()
	return nil
}

func TestDeriveUsername(t *testing.T) {
	for i := 0; i < 20; i++ {
		u := deriveUsername("Jane Doe")
		require.True(t, strings.HasPrefix(u, "jane"), "got %q", u)
		digits := strings.TrimPrefix(u, "jane")
		require.Len(t, digits, 4)
		assert.NotEqual(t, '0', rune(digits[0]))
	}
}

func TestRegisterCreatesUserAndDefaultProfile(t *testing.T) {
	users := newMemUserRepo()
	profiles := newMemProfileRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	uc := NewRegisterUseCase(users, profiles, jwtSvc, "http://localhost:5173/", logger.NewNop())

	out, err := uc.Execute(context.Background(), RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-enough",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Username, "jane"))
	assert.Equal(t, "http://localhost:5173/portfolio/"+out.Username, out.PublicURL)
	assert.NotEmpty(t, out.AccessToken)

	created, err := users.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, out.UserID, created.ID)
	assert.NotEqual(t, "s3cret-enough", created.PasswordHash)

	p, err := profiles.GetByOwner(context.Background(), out.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.DisplayName)
	assert.Equal(t, out.Username, p.Username)
	assert.Empty(t, p.Skills)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.UserID, claims.OwnerID)
	assert.Equal(t, out.Username, claims.Username)
}

func TestRegisterRejectsBlankName(t *testing.T) {
	uc := NewRegisterUseCase(newMemUserRepo(), newMemProfileRepo(), auth.NewJWTService("s", time.Hour), "http://localhost:5173", logger.NewNop())

	_, err := uc.Execute(context.Background(), RegisterInput{Name: "   ", Email: "x@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newMemUserRepo()
	uc := NewRegisterUseCase(users, newMemProfileRepo(), auth.NewJWTService("s", time.Hour), "http://localhost:5173", logger.NewNop())

	_, err := uc.Execute(context.Background(), RegisterInput{Name: "Jane Doe", Email: "jane@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), RegisterInput{Name: "Jane Smith", Email: "jane@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLoginVerifiesPassword(t *testing.T) {
	users := newMemUserRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	hash, err := auth.HashPassword("right-password")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &user.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		Username:     "jane4821",
		PasswordHash: hash,
	}))

	uc := NewLoginUseCase(users, jwtSvc, logger.NewNop())

	out, err := uc.Execute(context.Background(), LoginInput{Email: "jane@example.com", Password: "right-password"})
	require.NoError(t, err)
	assert.Equal(t, "jane4821", out.Username)
	assert.NotEmpty(t, out.AccessToken)

	_, err = uc.Execute(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
