package project

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/gourav132/Show-IT/adapters/event"
	"github.com/gourav132/Show-IT/internal/application/service"
	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type UpdateProjectUseCase struct {
	projectRepo project.Repository
	uploader    service.Uploader
	producer    *event.Producer
	notifier    project.ChangeNotifier
	logger      logger.Logger
}

func NewUpdateProjectUseCase(
	repo project.Repository,
	uploader service.Uploader,
	producer *event.Producer,
	notifier project.ChangeNotifier,
	log logger.Logger,
) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		projectRepo: repo,
		uploader:    uploader,
		producer:    producer,
		notifier:    notifier,
		logger:      log,
	}
}

type UpdateProjectInput struct {
	ProjectID   uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	About       string
	GithubLink  string
	ProjectLink string
	File        io.Reader
}

// Execute replaces the project's fields in place, keeping its id and created
// timestamp. A new cover, when provided, is uploaded before the document
// write under the same public id, so the old blob is overwritten and no
// cleanup pass is needed.
func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*project.Project, error) {

	ctx, span := tracer.Start(ctx, "UpdateProject")
	defer span.End()

	existing, err := uc.projectRepo.FindByID(ctx, input.ProjectID, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.About = input.About
	existing.GithubLink = input.GithubLink
	existing.ProjectLink = input.ProjectLink
	existing.UpdatedAt = time.Now().UTC()

	if err := existing.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	if input.File != nil {
		fileURL, err := uc.uploader.Upload(ctx, input.File, coverFolder(input.OwnerID), existing.ID.String())
		if err != nil {
			span.RecordError(err)
			return nil, apperror.NewUploadFailed("failed to upload project cover", err)
		}
		existing.FileURL = fileURL
	}

	if err := uc.projectRepo.Update(ctx, existing); err != nil {
		span.RecordError(err)
		return nil, apperror.NewWriteFailed("project", err)
	}

	fanOutChange(uc.notifier, uc.producer, uc.logger, existing, event.ProjectEventUpdated)
	return existing, nil
}
