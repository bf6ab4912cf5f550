package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gourav132/Show-IT/internal/builder"
	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/auth"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
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
	if _, ok := r.profiles[p.OwnerID]; !ok {
		return apperror.NewNotFound("profile", p.OwnerID.String())
	}
	r.profiles[p.OwnerID] = p.Clone()
	return nil
}

// memProjectStore backs both the writer and the watcher, re-delivering the
// full list after every write like the real feed does.
type memProjectStore struct {
	mu       sync.Mutex
	projects []*project.Project
	updates  chan []*project.Project
}

func newMemProjectStore() *memProjectStore {
	return &memProjectStore{updates: make(chan []*project.Project, 8)}
}

func (s *memProjectStore) deliverLocked() {
	list := make([]*project.Project, len(s.projects))
	copy(list, s.projects)
	s.updates <- list
}

func (s *memProjectStore) Create(ctx context.Context, ownerID uuid.UUID, d builder.ProjectDraft) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &project.Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       d.Title,
		Description: d.Description,
		About:       d.About,
		GithubLink:  d.GithubLink,
		ProjectLink: d.ProjectLink,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.projects = append(s.projects, p)
	s.deliverLocked()
	return p, nil
}

func (s *memProjectStore) Update(ctx context.Context, id, ownerID uuid.UUID, d builder.ProjectDraft) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			p.Title = d.Title
			p.Description = d.Description
			s.deliverLocked()
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("project", id.String())
}

func (s *memProjectStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.deliverLocked()
	return nil
}

func (s *memProjectStore) Watch(ctx context.Context, ownerID uuid.UUID) (<-chan []*project.Project, func(), error) {
	s.mu.Lock()
	s.deliverLocked()
	s.mu.Unlock()
	return s.updates, func() {}, nil
}

type builderFlowFixture struct {
	router  *gin.Engine
	token   string
	ownerID uuid.UUID
}

func newBuilderFlowFixture(t *testing.T) *builderFlowFixture {
	t.Helper()

	ownerID := uuid.New()
	profiles := &memProfileRepo{profiles: map[uuid.UUID]*profile.Profile{}}
	seed := profile.Default(ownerID, "jane4821", "http://localhost:5173/portfolio/jane4821")
	require.NoError(t, profiles.Create(context.Background(), seed))

	projects := newMemProjectStore()
	log := logger.NewNop()

	manager := builder.NewManager(profiles, projects, projects, log, builder.WizardConfig{StrictJumps: true})
	handler := NewBuilderHandler(manager, log)

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtSvc.GenerateToken(ownerID, "jane4821")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(log))

	b := router.Group("/api/builder")
	b.Use(AuthMiddleware(jwtSvc))
	{
		b.GET("", handler.State)
		b.POST("/next", handler.Next)
		b.POST("/back", handler.Back)
		b.POST("/jump", handler.Jump)
		b.POST("/save", handler.Save)
		b.PUT("/introduction", handler.UpdateIntroduction)
		b.PUT("/overview", handler.UpdateOverview)
		b.POST("/services/toggle", handler.ToggleService)
		b.POST("/skills", handler.SubmitSkill)
	}

	return &builderFlowFixture{router: router, token: token, ownerID: ownerID}
}

func (f *builderFlowFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestBuilderFlowRequiresAuth(t *testing.T) {
	f := newBuilderFlowFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/builder", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuilderFlowHappyPath(t *testing.T) {
	f := newBuilderFlowFixture(t)

	w := f.do(t, http.MethodGet, "/api/builder", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state BuilderStateDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "introduction", state.Step)
	assert.Equal(t, "jane4821", state.Profile.Username)

	// Advancing with an empty introduction is refused with field errors.
	w = f.do(t, http.MethodPost, "/api/builder/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var refused struct {
		Step   string              `json:"step"`
		Errors builder.FieldErrors `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refused))
	assert.Equal(t, "introduction", refused.Step)
	assert.Equal(t, "Name is required", refused.Errors["display_name"])

	w = f.do(t, http.MethodPut, "/api/builder/introduction", gin.H{"field": "display_name", "value": "Jane Doe"})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodPut, "/api/builder/introduction", gin.H{"field": "tagline", "value": "Building useful things"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/builder/next", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPut, "/api/builder/overview", gin.H{"overview": "I am a backend developer who enjoys infrastructure work."})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodPost, "/api/builder/services/toggle", gin.H{"title": "Backend Developer"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/builder/next", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/builder/skills", gin.H{"name": "Go", "level": "Expert"})
	require.Equal(t, http.StatusOK, w.Code)

	// Invalid skill level comes back as a field error, not a write.
	w = f.do(t, http.MethodPost, "/api/builder/skills", gin.H{"name": "Go", "level": "Guru"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodPost, "/api/builder/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/builder", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "skills", state.Step)
	require.Len(t, state.Profile.Skills, 1)
	assert.Equal(t, "Go", state.Profile.Skills[0].Name)
}

func TestBuilderFlowStrictJumpGates(t *testing.T) {
	f := newBuilderFlowFixture(t)

	w := f.do(t, http.MethodPost, "/api/builder/jump", gin.H{"step": "projects"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodPost, "/api/builder/jump", gin.H{"step": "launchpad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/builder/introduction", gin.H{"field": "display_name", "value": "Jane Doe"})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodPut, "/api/builder/introduction", gin.H{"field": "tagline", "value": "Building useful things"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/builder/jump", gin.H{"step": "projects"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Step string `json:"step"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "projects", resp.Step)
}
