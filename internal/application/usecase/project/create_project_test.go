package project

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type memProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*project.Project
	saveErr  error
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[uuid.UUID]*project.Project{}}
}

func (r *memProjectRepo) Save(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *memProjectRepo) Update(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return apperror.NewNotFound("project", p.ID.String())
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return apperror.NewNotFound("project", id.String())
	}
	delete(r.projects, id)
	return nil
}

func (r *memProjectRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, apperror.NewNotFound("project", id.String())
	}
	cp := *p
	return &cp, nil
}

func (r *memProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []*project.Project{}
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

type recordingUploader struct {
	mu        sync.Mutex
	uploadErr error
	uploads   []string
	deletes   []string
}

func (u *recordingUploader) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.uploadErr != nil {
		return "", u.uploadErr
	}
	u.uploads = append(u.uploads, folder+"/"+publicID)
	return "https://cdn.example/" + publicID, nil
}

func (u *recordingUploader) Delete(ctx context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deletes = append(u.deletes, publicID)
	return nil
}

func TestCreateProjectUploadsBeforeWrite(t *testing.T) {
	repo := newMemProjectRepo()
	up := &recordingUploader{}
	uc := NewCreateProjectUseCase(repo, up, nil, nil, logger.NewNop())
	ownerID := uuid.New()

	out, err := uc.Execute(context.Background(), CreateProjectInput{
		OwnerID:     ownerID,
		Title:       "Showcase",
		Description: "A project worth showing off",
		File:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/"+out.ID.String(), out.FileURL)
	assert.Len(t, up.uploads, 1)
	assert.Contains(t, up.uploads[0], "users/"+ownerID.String()+"/projects")

	stored, err := repo.FindByID(context.Background(), out.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, out.FileURL, stored.FileURL)
}

func TestCreateProjectUploadFailureAbortsWrite(t *testing.T) {
	repo := newMemProjectRepo()
	up := &recordingUploader{uploadErr: errors.New("network down")}
	uc := NewCreateProjectUseCase(repo, up, nil, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreateProjectInput{
		OwnerID:     uuid.New(),
		Title:       "Showcase",
		Description: "A project worth showing off",
		File:        strings.NewReader("png-bytes"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUploadFailed)
	assert.Empty(t, repo.projects)
}

func TestCreateProjectWriteFailureDestroysBlob(t *testing.T) {
	repo := newMemProjectRepo()
	repo.saveErr = apperror.NewInternal("disk full", nil)
	up := &recordingUploader{}
	uc := NewCreateProjectUseCase(repo, up, nil, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreateProjectInput{
		OwnerID:     uuid.New(),
		Title:       "Showcase",
		Description: "A project worth showing off",
		File:        strings.NewReader("png-bytes"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrWriteFailed)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		up.mu.Lock()
		n := len(up.deletes)
		up.mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("orphaned blob was never destroyed")
}

func TestCreateProjectInvalidLinkRejected(t *testing.T) {
	repo := newMemProjectRepo()
	up := &recordingUploader{}
	uc := NewCreateProjectUseCase(repo, up, nil, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreateProjectInput{
		OwnerID:     uuid.New(),
		Title:       "Showcase",
		Description: "A project worth showing off",
		GithubLink:  "ftp://example.com/repo",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, up.uploads)
}

func TestUpdateProjectKeepsIDAndCreatedAt(t *testing.T) {
	repo := newMemProjectRepo()
	up := &recordingUploader{}
	createUC := NewCreateProjectUseCase(repo, up, nil, nil, logger.NewNop())
	updateUC := NewUpdateProjectUseCase(repo, up, nil, nil, logger.NewNop())
	ownerID := uuid.New()

	created, err := createUC.Execute(context.Background(), CreateProjectInput{
		OwnerID:     ownerID,
		Title:       "Showcase",
		Description: "A project worth showing off",
	})
	require.NoError(t, err)

	updated, err := updateUC.Execute(context.Background(), UpdateProjectInput{
		ProjectID:   created.ID,
		OwnerID:     ownerID,
		Title:       "Showcase v2",
		Description: "A project worth showing off twice",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Showcase v2", updated.Title)
}

func TestDeleteProjectDestroysCover(t *testing.T) {
	repo := newMemProjectRepo()
	up := &recordingUploader{}
	createUC := NewCreateProjectUseCase(repo, up, nil, nil, logger.NewNop())
	deleteUC := NewDeleteProjectUseCase(repo, up, nil, nil, logger.NewNop())
	ownerID := uuid.New()

	created, err := createUC.Execute(context.Background(), CreateProjectInput{
		OwnerID:     ownerID,
		Title:       "Showcase",
		Description: "A project worth showing off",
		File:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	require.NoError(t, deleteUC.Execute(context.Background(), created.ID, ownerID))
	_, err = repo.FindByID(context.Background(), created.ID, ownerID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		up.mu.Lock()
		n := len(up.deletes)
		up.mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("cover blob was never destroyed")
}
