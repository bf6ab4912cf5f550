package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/gourav132/Show-IT/internal/domain/project"
)

type ListProjectsUseCase struct {
	projectRepo project.Repository
}

func NewListProjectsUseCase(repo project.Repository) *ListProjectsUseCase {
	return &ListProjectsUseCase{projectRepo: repo}
}

// Execute returns the owner's full project collection, newest first. The
// public viewer and the builder's initial snapshot both read through here.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error) {
	ctx, span := tracer.Start(ctx, "ListProjects")
	defer span.End()

	return uc.projectRepo.ListByOwner(ctx, ownerID)
}
