package builder

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type ProjectDraft struct {
	Title       string
	Description string
	About       string
	GithubLink  string
	ProjectLink string
	FileName    string
	File        io.Reader
}

var projectSchema = Schema{
	"title": {
		{Required: true, Message: "Project title is required"},
	},
	"description": {
		{Required: true, Message: "Project description is required"},
		{MinLength: 20, Message: "Project description must be at least 20 characters"},
	},
	"github_link": {
		{Pattern: URLPattern, Message: "GitHub link must start with http:// or https://"},
	},
	"project_link": {
		{Pattern: URLPattern, Message: "Project link must start with http:// or https://"},
	},
}

// ProjectWriter performs the remote writes for the projects step: upload the
// cover file, then write or delete the document.
type ProjectWriter interface {
	Create(ctx context.Context, ownerID uuid.UUID, draft ProjectDraft) (*project.Project, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, draft ProjectDraft) (*project.Project, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// ProjectEditor differs from the in-profile editors: every submit is an
// immediate remote write, and the local list mirrors the watcher feed only.
// Nothing is appended optimistically; the view converges when the change
// notification round-trips, which is the intended eventually-consistent
// behavior, not a bug.
type ProjectEditor struct {
	mu        sync.Mutex
	mode      EditorMode
	editingID uuid.UUID
	busy      bool
	ownerID   uuid.UUID
	writer    ProjectWriter
	watcher   project.Watcher
	log       logger.Logger
	mirror    []*project.Project
	stop      func()
}

func NewProjectEditor(ownerID uuid.UUID, writer ProjectWriter, watcher project.Watcher, log logger.Logger) *ProjectEditor {
	return &ProjectEditor{
		mode:    ModeAdd,
		ownerID: ownerID,
		writer:  writer,
		watcher: watcher,
		log:     log,
	}
}

// Start opens the live subscription. Must be paired with Stop when the
// session ends or the identity changes, or the listener leaks against a
// stale identity.
func (e *ProjectEditor) Start(ctx context.Context) error {
	updates, stop, err := e.watcher.Watch(ctx, e.ownerID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.stop = stop
	e.mu.Unlock()

	go func() {
		for list := range updates {
			e.mu.Lock()
			e.mirror = list
			e.mu.Unlock()
		}
	}()
	return nil
}

func (e *ProjectEditor) Stop() {
	e.mu.Lock()
	stop := e.stop
	e.stop = nil
	e.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Projects returns the current mirror of the remote collection.
func (e *ProjectEditor) Projects() []*project.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*project.Project(nil), e.mirror...)
}

func (e *ProjectEditor) Mode() EditorMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Busy reports an in-flight submission; re-submission is refused until the
// current one completes or fails.
func (e *ProjectEditor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *ProjectEditor) Validate(d ProjectDraft) FieldErrors {
	return projectSchema.Validate(map[string]string{
		"title":        d.Title,
		"description":  d.Description,
		"github_link":  d.GithubLink,
		"project_link": d.ProjectLink,
	})
}

func (e *ProjectEditor) BeginEdit(id uuid.UUID) (*project.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.mirror {
		if p.ID == id {
			e.mode = ModeEdit
			e.editingID = id
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("project", id.String())
}

func (e *ProjectEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeAdd
	e.editingID = uuid.Nil
}

func (e *ProjectEditor) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return apperror.NewConflict("project submission", "state", "in-flight")
	}
	e.busy = true
	return nil
}

func (e *ProjectEditor) release() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

// Submit validates the draft and issues the remote write. An upload failure
// aborts before any document write and leaves the editor in its
// pre-submission state, so the user can just retry.
func (e *ProjectEditor) Submit(ctx context.Context, d ProjectDraft) (FieldErrors, error) {
	if errs := e.Validate(d); !errs.Ok() {
		return errs, nil
	}
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	e.mu.Lock()
	mode, editingID := e.mode, e.editingID
	e.mu.Unlock()

	var err error
	if mode == ModeEdit {
		_, err = e.writer.Update(ctx, editingID, e.ownerID, d)
	} else {
		_, err = e.writer.Create(ctx, e.ownerID, d)
	}
	if err != nil {
		e.log.Error("project submit failed", err, zap.String("owner_id", e.ownerID.String()))
		return nil, err
	}

	e.mu.Lock()
	e.mode = ModeAdd
	e.editingID = uuid.Nil
	e.mu.Unlock()
	return nil, nil
}

// Delete removes the project selected for editing; the draft does not need
// to be valid.
func (e *ProjectEditor) Delete(ctx context.Context) error {
	e.mu.Lock()
	if e.mode != ModeEdit {
		e.mu.Unlock()
		return apperror.NewInvalidInput("delete requires a project selected for editing", nil)
	}
	id := e.editingID
	e.mu.Unlock()

	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if err := e.writer.Delete(ctx, id, e.ownerID); err != nil {
		return err
	}

	e.mu.Lock()
	e.mode = ModeAdd
	e.editingID = uuid.Nil
	e.mu.Unlock()
	return nil
}
