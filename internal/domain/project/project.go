package project

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Project is its own remotely persisted document, one per showcase entry,
// keyed by owner. Unlike profile sub-records, every add/update/delete is an
// immediate remote write.
type Project struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	About       string    `json:"about"`
	GithubLink  string    `json:"github_link"`
	ProjectLink string    `json:"project_link"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidLink     = errors.New("link must start with http:// or https://")
	linkRegex          = regexp.MustCompile(`^https?://.+`)
)

func (p *Project) Validate() error {
	if p.GithubLink != "" && !linkRegex.MatchString(p.GithubLink) {
		return ErrInvalidLink
	}
	if p.ProjectLink != "" && !linkRegex.MatchString(p.ProjectLink) {
		return ErrInvalidLink
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Project, error)
}

// Watcher is the live read path: after any committed write by any session of
// the owner, the channel re-delivers the full result set. stop must be
// called when the consuming view goes away or the identity changes.
type Watcher interface {
	Watch(ctx context.Context, ownerID uuid.UUID) (updates <-chan []*Project, stop func(), err error)
}

// ChangeNotifier is the write side of the live read path: writers call Notify
// after a committed change so watchers of that owner re-deliver.
type ChangeNotifier interface {
	Notify(ctx context.Context, ownerID uuid.UUID) error
}
