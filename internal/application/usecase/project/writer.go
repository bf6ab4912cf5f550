package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/gourav132/Show-IT/internal/builder"
	"github.com/gourav132/Show-IT/internal/domain/project"
)

// Writer adapts the create/update/delete use cases to the builder's
// ProjectWriter port, so builder sessions never see kafka, redis or the
// uploader directly.
type Writer struct {
	create *CreateProjectUseCase
	update *UpdateProjectUseCase
	delete *DeleteProjectUseCase
}

func NewWriter(create *CreateProjectUseCase, update *UpdateProjectUseCase, del *DeleteProjectUseCase) *Writer {
	return &Writer{create: create, update: update, delete: del}
}

func (w *Writer) Create(ctx context.Context, ownerID uuid.UUID, d builder.ProjectDraft) (*project.Project, error) {
	return w.create.Execute(ctx, CreateProjectInput{
		OwnerID:     ownerID,
		Title:       d.Title,
		Description: d.Description,
		About:       d.About,
		GithubLink:  d.GithubLink,
		ProjectLink: d.ProjectLink,
		File:        d.File,
	})
}

func (w *Writer) Update(ctx context.Context, id, ownerID uuid.UUID, d builder.ProjectDraft) (*project.Project, error) {
	return w.update.Execute(ctx, UpdateProjectInput{
		ProjectID:   id,
		OwnerID:     ownerID,
		Title:       d.Title,
		Description: d.Description,
		About:       d.About,
		GithubLink:  d.GithubLink,
		ProjectLink: d.ProjectLink,
		File:        d.File,
	})
}

func (w *Writer) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return w.delete.Execute(ctx, id, ownerID)
}
